package gallery

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"time"

	"github.com/fhuszti/cameraroll-ms-go/internal/model"
	"github.com/fhuszti/cameraroll-ms-go/internal/query"
	"github.com/fhuszti/cameraroll-ms-go/internal/uuid"
)

var errExtract = errors.New("metadata extraction failed")

// mockIndex serves queries from an in-memory slice through the exact same
// query semantics the SQL index renders, so paginator tests exercise real
// filtering and ordering.
type mockIndex struct {
	records []model.MediaRecord

	queryErr error
	queries  []query.Query

	inserted []*model.MediaRecord
	updated  []*model.MediaRecord
	insErr   error
	updErr   error

	albums    []model.Album
	albumsErr error

	pathsErr error

	getRec *model.MediaRecord
	getErr error

	previews   map[string]string
	previewErr error
}

func (m *mockIndex) Query(ctx context.Context, q query.Query) ([]model.MediaRecord, error) {
	m.queries = append(m.queries, q)
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return q.Apply(m.records), nil
}

func (m *mockIndex) GetByID(ctx context.Context, id uuid.UUID) (*model.MediaRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.getRec != nil {
		return m.getRec, nil
	}
	return nil, ErrMediaNotFound
}

func (m *mockIndex) FindByPath(ctx context.Context, path string) (*model.MediaRecord, error) {
	for i := range m.records {
		if m.records[i].FilePath == path {
			return &m.records[i], nil
		}
	}
	return nil, ErrMediaNotFound
}

func (m *mockIndex) Insert(ctx context.Context, rec *model.MediaRecord) error {
	if m.insErr != nil {
		return m.insErr
	}
	m.inserted = append(m.inserted, rec)
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockIndex) Update(ctx context.Context, rec *model.MediaRecord) error {
	if m.updErr != nil {
		return m.updErr
	}
	m.updated = append(m.updated, rec)
	return nil
}

func (m *mockIndex) SetPreviewPath(ctx context.Context, id uuid.UUID, previewPath string) error {
	if m.previewErr != nil {
		return m.previewErr
	}
	if m.previews == nil {
		m.previews = map[string]string{}
	}
	m.previews[id.String()] = previewPath
	return nil
}

func (m *mockIndex) ListAlbums(ctx context.Context) ([]model.Album, error) {
	return m.albums, m.albumsErr
}

func (m *mockIndex) ListPaths(ctx context.Context) ([]string, error) {
	if m.pathsErr != nil {
		return nil, m.pathsErr
	}
	paths := make([]string, 0, len(m.records))
	for i := range m.records {
		paths = append(paths, m.records[i].FilePath)
	}
	return paths, nil
}

type mockWriteCloser struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (w *mockWriteCloser) Close() error {
	w.closed = true
	return w.closeErr
}

type fakeFileInfo struct {
	name    string
	modTime time.Time
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() fs.FileMode  { return 0o644 }
func (f fakeFileInfo) ModTime() time.Time { return f.modTime }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() any           { return nil }

type mockStore struct {
	dir        string
	resolveErr error
	albums     []string

	existing  map[string]bool
	writers   map[string]*mockWriteCloser
	created   []string
	createErr error
	closeErr  error

	openData map[string][]byte
	openErr  error

	statErr error
	modTime time.Time

	files   []string
	listErr error
}

func (m *mockStore) ResolveDir(album string) (string, error) {
	m.albums = append(m.albums, album)
	if m.resolveErr != nil {
		return "", m.resolveErr
	}
	return m.dir, nil
}

func (m *mockStore) CreateExclusive(path string) (io.WriteCloser, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.existing[path] {
		return nil, fs.ErrExist
	}
	if m.existing == nil {
		m.existing = map[string]bool{}
	}
	if m.writers == nil {
		m.writers = map[string]*mockWriteCloser{}
	}
	m.existing[path] = true
	m.created = append(m.created, path)
	w := &mockWriteCloser{closeErr: m.closeErr}
	m.writers[path] = w
	return w, nil
}

func (m *mockStore) Open(path string) (io.ReadCloser, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	return io.NopCloser(bytes.NewReader(m.openData[path])), nil
}

func (m *mockStore) Stat(path string) (fs.FileInfo, error) {
	if m.statErr != nil {
		return nil, m.statErr
	}
	return fakeFileInfo{name: path, modTime: m.modTime}, nil
}

func (m *mockStore) ListFiles() ([]string, error) {
	return m.files, m.listErr
}

type mockSource struct {
	data    []byte
	openErr error
	readErr error
	opened  []string
	closed  bool
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func (m *mockSource) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	m.opened = append(m.opened, uri)
	if m.openErr != nil {
		return nil, m.openErr
	}
	if m.readErr != nil {
		return &mockReadCloser{r: errReader{m.readErr}, closed: &m.closed}, nil
	}
	return &mockReadCloser{r: bytes.NewReader(m.data), closed: &m.closed}, nil
}

type mockReadCloser struct {
	r      io.Reader
	closed *bool
}

func (m *mockReadCloser) Read(p []byte) (int, error) { return m.r.Read(p) }
func (m *mockReadCloser) Close() error               { *m.closed = true; return nil }

type mockMeta struct {
	out      *ExtractedMetadata
	failFor  map[string]bool
	extracts []string

	probe    *FileProbe
	probeErr error
}

func (m *mockMeta) Extract(ctx context.Context, rec *model.MediaRecord, preferDateTimeOriginal bool) (*ExtractedMetadata, error) {
	m.extracts = append(m.extracts, rec.FilePath)
	if m.failFor[rec.FilePath] {
		return nil, errExtract
	}
	if m.out != nil {
		return m.out, nil
	}
	return &ExtractedMetadata{Width: float64(rec.Width), Height: float64(rec.Height)}, nil
}

func (m *mockMeta) ProbeFile(ctx context.Context, path string) (*FileProbe, error) {
	if m.probeErr != nil {
		return nil, m.probeErr
	}
	if m.probe != nil {
		return m.probe, nil
	}
	return &FileProbe{MimeType: "image/jpeg"}, nil
}

type mockDispatcher struct {
	scans      []string
	previews   []uuid.UUID
	scanErr    error
	previewErr error
}

func (m *mockDispatcher) EnqueueScanFile(ctx context.Context, path string) error {
	if m.scanErr != nil {
		return m.scanErr
	}
	m.scans = append(m.scans, path)
	return nil
}

func (m *mockDispatcher) EnqueueGeneratePreview(ctx context.Context, id uuid.UUID) error {
	if m.previewErr != nil {
		return m.previewErr
	}
	m.previews = append(m.previews, id)
	return nil
}

type mockScanner struct {
	id      uuid.UUID
	err     error
	scanned []string
}

func (m *mockScanner) ScanFile(ctx context.Context, path string) (uuid.UUID, error) {
	m.scanned = append(m.scanned, path)
	if m.err != nil {
		return uuid.UUID{}, m.err
	}
	return m.id, nil
}

type mockEncoder struct {
	path  string
	err   error
	names []string
}

func (m *mockEncoder) Encode(name string, r io.Reader) (string, error) {
	m.names = append(m.names, name)
	if m.err != nil {
		return "", m.err
	}
	return m.path, nil
}
