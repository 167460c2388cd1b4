package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/fhuszti/cameraroll-ms-go/internal/model"
)

// Query describes one page read over the media index: every field is a
// predicate ANDed onto an always-true base, plus the sort mode and limit.
// The zero value matches everything.
//
// Query is deliberately mechanism-agnostic: the MariaDB index renders it to
// SQL while Matches/Less evaluate the exact same semantics in memory, so
// the two can never drift apart silently.
type Query struct {
	// Cursor is an exclusive upper bound on the sort key, in milliseconds.
	Cursor *int64
	// UseDateAdded switches filtering and sorting to the synthetic key that
	// falls back to date_added (promoted to ms) when date_taken is unknown.
	UseDateAdded bool
	GroupName    string
	MimeTypes    []string
	AssetType    model.AssetType
	Limit        int
	Offset       int
}

// ParseCursor validates the decimal-string cursor of the wire format.
// The external representation stays a raw decimal string; this only guards
// against garbage before it reaches the index.
func ParseCursor(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// FormatCursor serialises a millisecond sort key back into its wire form.
func FormatCursor(ms int64) string {
	return strconv.FormatInt(ms, 10)
}

// SortKey returns the millisecond key a record sorts (and paginates) under.
// In date-added-aware mode a record without a capture time borrows
// date_added, promoted from seconds to milliseconds.
func SortKey(r *model.MediaRecord, useDateAdded bool) int64 {
	if useDateAdded && r.DateTaken <= 0 {
		return r.DateAdded * 1000
	}
	return r.DateTaken
}

// Matches reports whether a record satisfies every predicate of q.
// Limit and Offset are ignored here; they are paging, not filtering.
func (q Query) Matches(r *model.MediaRecord) bool {
	if q.Cursor != nil {
		if q.UseDateAdded && r.DateTaken <= 0 {
			// date_added is in seconds, the cursor in milliseconds
			if r.DateAdded > *q.Cursor/1000 {
				return false
			}
		} else if r.DateTaken >= *q.Cursor {
			return false
		}
	}

	if q.GroupName != "" && r.GroupName != q.GroupName {
		return false
	}

	switch q.AssetType {
	case model.AssetTypePhotos:
		if !strings.HasPrefix(r.MimeType, "image/") {
			return false
		}
	case model.AssetTypeVideos:
		if !strings.HasPrefix(r.MimeType, "video/") {
			return false
		}
	case model.AssetTypeAll, "":
		if !strings.HasPrefix(r.MimeType, "image/") && !strings.HasPrefix(r.MimeType, "video/") {
			return false
		}
	}

	if len(q.MimeTypes) > 0 {
		found := false
		for _, mt := range q.MimeTypes {
			if r.MimeType == mt {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Less orders a before b per the query sort: key descending, then
// date_modified descending as the tie-break.
func (q Query) Less(a, b *model.MediaRecord) bool {
	ka, kb := SortKey(a, q.UseDateAdded), SortKey(b, q.UseDateAdded)
	if ka != kb {
		return ka > kb
	}
	return a.DateModified > b.DateModified
}

// Apply runs the full query against an in-memory slice: filter, sort,
// offset, limit. Used by tests and any index without its own query engine.
func (q Query) Apply(records []model.MediaRecord) []model.MediaRecord {
	var out []model.MediaRecord
	for i := range records {
		if q.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return q.Less(&out[i], &out[j])
	})

	if q.Offset > 0 {
		if q.Offset >= len(out) {
			return nil
		}
		out = out[q.Offset:]
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}
