package gallery

import (
	"context"
	"io"
	"io/fs"

	"github.com/fhuszti/cameraroll-ms-go/internal/model"
	"github.com/fhuszti/cameraroll-ms-go/internal/query"
	"github.com/fhuszti/cameraroll-ms-go/internal/uuid"
)

// MediaIndex is the platform media index: a queryable catalogue of every
// known photo and video plus registration of new files.
type MediaIndex interface {
	Query(ctx context.Context, q query.Query) ([]model.MediaRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.MediaRecord, error)
	FindByPath(ctx context.Context, path string) (*model.MediaRecord, error)
	Insert(ctx context.Context, rec *model.MediaRecord) error
	Update(ctx context.Context, rec *model.MediaRecord) error
	SetPreviewPath(ctx context.Context, id uuid.UUID, previewPath string) error
	ListAlbums(ctx context.Context) ([]model.Album, error)
	ListPaths(ctx context.Context) ([]string, error)
}

// FileStore is the public pictures tree. CreateExclusive must fail with
// fs.ErrExist when the path is already taken, never overwrite.
type FileStore interface {
	ResolveDir(album string) (string, error)
	CreateExclusive(path string) (io.WriteCloser, error)
	Open(path string) (io.ReadCloser, error)
	Stat(path string) (fs.FileInfo, error)
	ListFiles() ([]string, error)
}

// SourceOpener resolves an export source URI (local path, file:// or
// s3://bucket/key) into a byte stream.
type SourceOpener interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// ExtractedMetadata is what the paginator needs per row on top of the
// index columns. ExifTimestamp is in milliseconds.
type ExtractedMetadata struct {
	Width            float64
	Height           float64
	PlayableDuration *int
	ExifTimestamp    *float64
	Location         *model.Location
}

// FileProbe is the best-effort result of probing a file at scan time.
type FileProbe struct {
	MimeType  string
	Width     int
	Height    int
	DateTaken int64 // ms, 0 when unknown
}

// MetadataExtractor reads per-file metadata. Extract fails structurally
// (row gets skipped) when dimensions or an embedded timestamp cannot be
// determined; ProbeFile only fails when the file cannot be read at all.
type MetadataExtractor interface {
	Extract(ctx context.Context, rec *model.MediaRecord, preferDateTimeOriginal bool) (*ExtractedMetadata, error)
	ProbeFile(ctx context.Context, path string) (*FileProbe, error)
}

// Scanner is the in-package face of the file registration service,
// consumed by the exporter.
type Scanner interface {
	ScanFile(ctx context.Context, path string) (uuid.UUID, error)
}

// Dispatcher enqueues background gallery tasks.
type Dispatcher interface {
	EnqueueScanFile(ctx context.Context, path string) error
	EnqueueGeneratePreview(ctx context.Context, id uuid.UUID) error
}

// PreviewEncoder renders a downscaled WebP preview for the given media id
// and returns the path it was written to.
type PreviewEncoder interface {
	Encode(name string, r io.Reader) (string, error)
}

// UUIDGen produces identifiers for newly indexed media.
type UUIDGen func() uuid.UUID
