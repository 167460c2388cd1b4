package gallery

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fhuszti/cameraroll-ms-go/internal/logger"
	"github.com/fhuszti/cameraroll-ms-go/internal/model"
	"github.com/fhuszti/cameraroll-ms-go/internal/port"
	"github.com/fhuszti/cameraroll-ms-go/internal/query"
)

type photoListerSrv struct {
	index MediaIndex
	meta  MetadataExtractor
}

// compile-time check: *photoListerSrv must satisfy port.PhotoLister
var _ port.PhotoLister = (*photoListerSrv)(nil)

// NewPhotoLister constructs the paginator over the media index.
func NewPhotoLister(index MediaIndex, meta MetadataExtractor) port.PhotoLister {
	return &photoListerSrv{index: index, meta: meta}
}

// GetPhotos returns at most in.First edges, newest first, plus the page
// info needed to resume after the last one. Rows whose metadata cannot be
// extracted are skipped and never backfilled past the fetched set, so a
// page can come back shorter than requested.
func (s *photoListerSrv) GetPhotos(ctx context.Context, in port.GetPhotosInput) (*model.PhotosPage, error) {
	assetType := model.AssetType(in.AssetType)
	if in.AssetType == "" {
		assetType = model.AssetTypePhotos
	}
	// reject bad filters before the index is ever touched
	switch assetType {
	case model.AssetTypePhotos, model.AssetTypeVideos, model.AssetTypeAll:
	default:
		return nil, fmt.Errorf("%w: invalid filter option %q, expected one of '%s', '%s' or '%s'",
			ErrUnableToFilter, in.AssetType, model.AssetTypePhotos, model.AssetTypeVideos, model.AssetTypeAll)
	}

	q := query.Query{
		UseDateAdded: in.UseDateAddedQuery,
		GroupName:    in.GroupName,
		MimeTypes:    in.MimeTypes,
		AssetType:    assetType,
		// one extra row to detect the existence of a next page
		Limit: in.First + 1,
	}
	if in.After != "" {
		cursor, err := query.ParseCursor(in.After)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid cursor %q", ErrUnableToFilter, in.After)
		}
		q.Cursor = &cursor
	}

	rows, err := s.index.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	page := &model.PhotosPage{Edges: make([]model.Edge, 0, in.First)}
	page.PageInfo.HasNextPage = len(rows) > in.First
	if page.PageInfo.HasNextPage {
		// the cursor comes from the last row inside the page, not the
		// extra row fetched past it
		endCursor := query.FormatCursor(query.SortKey(&rows[in.First-1], in.UseDateAddedQuery))
		page.PageInfo.EndCursor = &endCursor
	}

	for i := range rows {
		if len(page.Edges) == in.First {
			break
		}
		edge, err := s.buildEdge(ctx, &rows[i], in)
		if err != nil {
			logger.Warnf(ctx, "skipping media %q: %v", rows[i].FilePath, err)
			continue
		}
		page.Edges = append(page.Edges, *edge)
	}

	return page, nil
}

func (s *photoListerSrv) buildEdge(ctx context.Context, rec *model.MediaRecord, in port.GetPhotosInput) (*model.Edge, error) {
	md, err := s.meta.Extract(ctx, rec, in.UseExifDateTimeOriginal)
	if err != nil {
		return nil, err
	}

	// date_taken is in milliseconds; clients expect seconds here
	timestamp := float64(rec.DateTaken) / 1000
	if in.UseDateAddedQuery && rec.DateTaken <= 0 {
		// date_added is already in seconds
		timestamp = float64(rec.DateAdded)
	}

	return &model.Edge{Node: model.Node{
		Type:      rec.MimeType,
		GroupName: rec.GroupName,
		Timestamp: timestamp,
		Image: model.ImageInfo{
			URI:              "file://" + rec.FilePath,
			Filename:         filepath.Base(rec.FilePath),
			Width:            md.Width,
			Height:           md.Height,
			PlayableDuration: md.PlayableDuration,
		},
		ExifTimestamp: md.ExifTimestamp,
		Location:      md.Location,
	}}, nil
}
