package mock

import (
	"context"

	"github.com/fhuszti/cameraroll-ms-go/internal/model"
	"github.com/fhuszti/cameraroll-ms-go/internal/port"
	"github.com/fhuszti/cameraroll-ms-go/internal/uuid"
)

// MockPhotoLister implements port.PhotoLister for tests.
type MockPhotoLister struct {
	Out    *model.PhotosPage
	Err    error
	Called bool
	In     port.GetPhotosInput
}

func (m *MockPhotoLister) GetPhotos(ctx context.Context, in port.GetPhotosInput) (*model.PhotosPage, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// MockMediaExporter implements port.MediaExporter for tests.
type MockMediaExporter struct {
	ID     string
	Err    error
	Called bool
	In     port.SaveToCameraRollInput
}

func (m *MockMediaExporter) SaveToCameraRoll(ctx context.Context, in port.SaveToCameraRollInput) (string, error) {
	m.Called = true
	m.In = in
	return m.ID, m.Err
}

// MockAlbumLister implements port.AlbumLister for tests.
type MockAlbumLister struct {
	Out    []model.Album
	Err    error
	Called bool
}

func (m *MockAlbumLister) ListAlbums(ctx context.Context) ([]model.Album, error) {
	m.Called = true
	return m.Out, m.Err
}

// MockFileScanner implements port.FileScanner for tests.
type MockFileScanner struct {
	ID     uuid.UUID
	Err    error
	Called bool
	Paths  []string
}

func (m *MockFileScanner) ScanFile(ctx context.Context, path string) (uuid.UUID, error) {
	m.Called = true
	m.Paths = append(m.Paths, path)
	return m.ID, m.Err
}

// MockLibraryRescanner implements port.LibraryRescanner for tests.
type MockLibraryRescanner struct {
	Count  int
	Err    error
	Called bool
}

func (m *MockLibraryRescanner) RescanLibrary(ctx context.Context) (int, error) {
	m.Called = true
	return m.Count, m.Err
}

// MockPreviewGenerator implements port.PreviewGenerator for tests.
type MockPreviewGenerator struct {
	Err    error
	Called bool
	IDs    []uuid.UUID
}

func (m *MockPreviewGenerator) GeneratePreview(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.IDs = append(m.IDs, id)
	return m.Err
}
