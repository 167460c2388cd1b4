package port

import (
	"context"

	"github.com/fhuszti/cameraroll-ms-go/internal/model"
	"github.com/fhuszti/cameraroll-ms-go/internal/uuid"
)

// PhotoLister returns one page of the media library, newest first.
type PhotoLister interface {
	GetPhotos(ctx context.Context, in GetPhotosInput) (*model.PhotosPage, error)
}

// GetPhotosInput mirrors the parameters of the get_photos call. After is
// the decimal-string millisecond cursor of a previous page.
type GetPhotosInput struct {
	First                   int
	After                   string
	GroupName               string
	AssetType               string
	MimeTypes               []string
	UseDateAddedQuery       bool
	UseExifDateTimeOriginal bool
}

// MediaExporter copies a source file into the public pictures tree and
// registers it with the media index.
type MediaExporter interface {
	SaveToCameraRoll(ctx context.Context, in SaveToCameraRollInput) (string, error)
}

type SaveToCameraRollInput struct {
	URI   string
	Album string
}

// AlbumLister returns the distinct albums of the index, most populous first.
type AlbumLister interface {
	ListAlbums(ctx context.Context) ([]model.Album, error)
}

// FileScanner registers (or refreshes) a single file in the media index and
// returns its identifier.
type FileScanner interface {
	ScanFile(ctx context.Context, path string) (uuid.UUID, error)
}

// LibraryRescanner walks the pictures tree and enqueues a scan task for
// every file the index does not know yet. It returns how many were enqueued.
type LibraryRescanner interface {
	RescanLibrary(ctx context.Context) (int, error)
}

// PreviewGenerator renders and records a WebP preview for an indexed media.
type PreviewGenerator interface {
	GeneratePreview(ctx context.Context, id uuid.UUID) error
}
