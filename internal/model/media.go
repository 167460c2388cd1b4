package model

import (
	"strings"
	"time"

	"github.com/fhuszti/cameraroll-ms-go/internal/uuid"
)

// AssetType is the coarse media kind filter callers can pass.
type AssetType string

const (
	AssetTypePhotos AssetType = "Photos"
	AssetTypeVideos AssetType = "Videos"
	AssetTypeAll    AssetType = "All"
)

// MediaRecord is one row of the media index. DateTaken is in milliseconds
// (0 when the capture time is unknown), DateAdded and DateModified are in
// seconds, mirroring the units media stores have always used.
type MediaRecord struct {
	ID           uuid.UUID `json:"id"`
	MimeType     string    `json:"mime_type"`
	GroupName    string    `json:"group_name"`
	DateTaken    int64     `json:"date_taken"`
	DateAdded    int64     `json:"date_added"`
	DateModified int64     `json:"date_modified"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	FilePath     string    `json:"file_path"`
	PreviewPath  *string   `json:"preview_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsVideo reports whether the record holds video content.
func (r *MediaRecord) IsVideo() bool {
	return strings.HasPrefix(r.MimeType, "video")
}

// Album is one distinct group name in the index with its item count.
type Album struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}
