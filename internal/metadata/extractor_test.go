package metadata

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fhuszti/cameraroll-ms-go/internal/model"
	"github.com/fhuszti/cameraroll-ms-go/internal/uuid"
)

// fsStore is just enough of a file store to feed the extractor from disk.
type fsStore struct{}

func (fsStore) ResolveDir(album string) (string, error) { return "", errors.New("not implemented") }
func (fsStore) CreateExclusive(path string) (io.WriteCloser, error) {
	return nil, errors.New("not implemented")
}
func (fsStore) Open(path string) (io.ReadCloser, error) { return os.Open(path) }
func (fsStore) Stat(path string) (fs.FileInfo, error)   { return os.Stat(path) }
func (fsStore) ListFiles() ([]string, error)            { return nil, errors.New("not implemented") }

type fakeProber struct {
	probe *VideoProbe
	err   error
	paths []string
}

func (p *fakeProber) Probe(ctx context.Context, path string) (*VideoProbe, error) {
	p.paths = append(p.paths, path)
	if p.err != nil {
		return nil, p.err
	}
	return p.probe, nil
}

func writeTestPNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "img.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtract_ImageDecodesDimensions(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), 3, 2)
	e := NewExtractor(fsStore{}, &fakeProber{})
	rec := &model.MediaRecord{ID: uuid.NewUUID(), MimeType: "image/png", FilePath: path}

	md, err := e.Extract(context.Background(), rec, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md.Width != 3 || md.Height != 2 {
		t.Errorf("expected 3x2, got %vx%v", md.Width, md.Height)
	}
	// PNGs carry no EXIF block, which is fine
	if md.ExifTimestamp != nil || md.Location != nil {
		t.Error("expected no EXIF data for a PNG")
	}
	if md.PlayableDuration != nil {
		t.Error("images have no playable duration")
	}
}

func TestExtract_UsesIndexedDimensions(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), 3, 2)
	e := NewExtractor(fsStore{}, &fakeProber{})
	rec := &model.MediaRecord{ID: uuid.NewUUID(), MimeType: "image/png", FilePath: path, Width: 640, Height: 480}

	md, err := e.Extract(context.Background(), rec, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md.Width != 640 || md.Height != 480 {
		t.Errorf("expected indexed 640x480, got %vx%v", md.Width, md.Height)
	}
}

func TestExtract_UndecodableImageFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.jpg")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := NewExtractor(fsStore{}, &fakeProber{})
	rec := &model.MediaRecord{ID: uuid.NewUUID(), MimeType: "image/jpeg", FilePath: path}

	if _, err := e.Extract(context.Background(), rec, false); err == nil {
		t.Fatal("expected an error for undecodable dimensions")
	}
}

func TestExtract_Video(t *testing.T) {
	prober := &fakeProber{probe: &VideoProbe{Width: 1920, Height: 1080, Duration: 12.7}}
	e := NewExtractor(fsStore{}, prober)
	rec := &model.MediaRecord{ID: uuid.NewUUID(), MimeType: "video/mp4", FilePath: "/videos/clip.mp4"}

	md, err := e.Extract(context.Background(), rec, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md.Width != 1920 || md.Height != 1080 {
		t.Errorf("expected 1920x1080, got %vx%v", md.Width, md.Height)
	}
	if md.PlayableDuration == nil || *md.PlayableDuration != 12 {
		t.Errorf("expected duration truncated to 12s, got %v", md.PlayableDuration)
	}
	if len(prober.paths) != 1 || prober.paths[0] != "/videos/clip.mp4" {
		t.Errorf("unexpected probe calls %v", prober.paths)
	}
	// a container without tags yields no timestamp or location
	if md.ExifTimestamp != nil || md.Location != nil {
		t.Error("expected no tag-derived metadata for an untagged video")
	}
}

func TestExtract_VideoCarriesContainerTags(t *testing.T) {
	createdAt := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	prober := &fakeProber{probe: &VideoProbe{
		Width:     1920,
		Height:    1080,
		Duration:  8,
		CreatedAt: &createdAt,
		Location:  &model.Location{Latitude: 48.8577, Longitude: 2.295},
	}}
	e := NewExtractor(fsStore{}, prober)
	rec := &model.MediaRecord{ID: uuid.NewUUID(), MimeType: "video/mp4", FilePath: "/videos/tagged.mp4"}

	md, err := e.Extract(context.Background(), rec, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md.ExifTimestamp == nil || *md.ExifTimestamp != float64(createdAt.UnixMilli()) {
		t.Errorf("expected the creation time in ms, got %v", md.ExifTimestamp)
	}
	if md.Location == nil || md.Location.Latitude != 48.8577 || md.Location.Longitude != 2.295 {
		t.Errorf("expected the container location, got %v", md.Location)
	}
}

func TestExtract_VideoProbeErrorFails(t *testing.T) {
	prober := &fakeProber{err: errors.New("ffprobe missing")}
	e := NewExtractor(fsStore{}, prober)
	rec := &model.MediaRecord{ID: uuid.NewUUID(), MimeType: "video/mp4", FilePath: "/videos/clip.mp4"}

	if _, err := e.Extract(context.Background(), rec, false); err == nil {
		t.Fatal("expected the probe failure to surface")
	}
}

func TestProbeFile_Image(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), 3, 2)
	e := NewExtractor(fsStore{}, &fakeProber{})

	probe, err := e.ProbeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if probe.MimeType != "image/png" {
		t.Errorf("expected image/png, got %q", probe.MimeType)
	}
	if probe.Width != 3 || probe.Height != 2 {
		t.Errorf("expected 3x2, got %dx%d", probe.Width, probe.Height)
	}
}

func TestProbeFile_Video(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	// enough of an MP4 header for content sniffing
	if err := os.WriteFile(path, []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom"), 0o644); err != nil {
		t.Fatal(err)
	}
	createdAt := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	prober := &fakeProber{probe: &VideoProbe{Width: 1920, Height: 1080, CreatedAt: &createdAt}}
	e := NewExtractor(fsStore{}, prober)

	probe, err := e.ProbeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if probe.MimeType != "video/mp4" {
		t.Errorf("expected video/mp4, got %q", probe.MimeType)
	}
	if probe.Width != 1920 || probe.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", probe.Width, probe.Height)
	}
	if probe.DateTaken != createdAt.UnixMilli() {
		t.Errorf("expected the creation time as capture time, got %d", probe.DateTaken)
	}
}

func TestProbeFile_MissingFile(t *testing.T) {
	e := NewExtractor(fsStore{}, &fakeProber{})
	if _, err := e.ProbeFile(context.Background(), "/nowhere/gone.jpg"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
