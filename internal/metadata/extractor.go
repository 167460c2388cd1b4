package metadata

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/fhuszti/cameraroll-ms-go/internal/model"
	"github.com/fhuszti/cameraroll-ms-go/internal/usecase/gallery"

	"github.com/rwcarlsen/goexif/exif"
)

// exifTimeLayout is the timestamp format EXIF blocks carry.
const exifTimeLayout = "2006:01:02 15:04:05"

// Extractor reads per-file metadata for the paginator and the scanner.
// Images are decoded in-process, videos go through the prober.
type Extractor struct {
	store  gallery.FileStore
	prober Prober
}

// compile-time check: *Extractor must satisfy gallery.MetadataExtractor
var _ gallery.MetadataExtractor = (*Extractor)(nil)

func NewExtractor(store gallery.FileStore, prober Prober) *Extractor {
	return &Extractor{store: store, prober: prober}
}

// Extract returns what a page edge needs beyond the index columns. It
// fails when dimensions cannot be determined, or when an embedded
// timestamp exists but cannot be parsed; a file with no EXIF block at all
// is fine.
func (e *Extractor) Extract(ctx context.Context, rec *model.MediaRecord, preferDateTimeOriginal bool) (*gallery.ExtractedMetadata, error) {
	if rec.IsVideo() {
		probe, err := e.prober.Probe(ctx, rec.FilePath)
		if err != nil {
			return nil, err
		}
		duration := int(probe.Duration)
		md := &gallery.ExtractedMetadata{
			Width:            float64(probe.Width),
			Height:           float64(probe.Height),
			PlayableDuration: &duration,
			Location:         probe.Location,
		}
		// containers have no EXIF block; the creation_time tag stands in
		if probe.CreatedAt != nil {
			ms := float64(probe.CreatedAt.UnixMilli())
			md.ExifTimestamp = &ms
		}
		return md, nil
	}

	md := &gallery.ExtractedMetadata{
		Width:  float64(rec.Width),
		Height: float64(rec.Height),
	}
	if rec.Width <= 0 || rec.Height <= 0 {
		w, h, err := e.decodeDimensions(rec.FilePath)
		if err != nil {
			return nil, err
		}
		md.Width, md.Height = float64(w), float64(h)
	}

	if err := e.readExif(rec.FilePath, preferDateTimeOriginal, md); err != nil {
		return nil, err
	}
	return md, nil
}

func (e *Extractor) decodeDimensions(path string) (int, int, error) {
	f, err := e.store.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = f.Close() }()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("could not decode dimensions of %q: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// readExif fills in the embedded timestamp and location. A file without a
// readable EXIF block stays as is; a present but unparsable timestamp is
// an error.
func (e *Extractor) readExif(path string, preferDateTimeOriginal bool, md *gallery.ExtractedMetadata) error {
	f, err := e.store.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	x, err := exif.Decode(f)
	if err != nil {
		return nil
	}

	field := exif.DateTime
	if preferDateTimeOriginal {
		field = exif.DateTimeOriginal
	}
	tag, err := x.Get(field)
	if err != nil && preferDateTimeOriginal {
		tag, err = x.Get(exif.DateTime)
	}
	if err == nil {
		raw, err := tag.StringVal()
		if err != nil {
			return fmt.Errorf("unreadable timestamp tag in %q: %w", path, err)
		}
		ts, err := time.Parse(exifTimeLayout, raw)
		if err != nil {
			return fmt.Errorf("malformed timestamp %q in %q: %w", raw, path, err)
		}
		ms := float64(ts.UnixMilli())
		md.ExifTimestamp = &ms
	}

	if lat, long, err := x.LatLong(); err == nil {
		md.Location = &model.Location{Latitude: lat, Longitude: long}
	}
	return nil
}

// ProbeFile identifies a file for registration: mime type by content
// sniffing, then best-effort dimensions and capture time.
func (e *Extractor) ProbeFile(ctx context.Context, path string) (*gallery.FileProbe, error) {
	f, err := e.store.Open(path)
	if err != nil {
		return nil, err
	}
	head := make([]byte, 512)
	n, err := f.Read(head)
	_ = f.Close()
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}

	probe := &gallery.FileProbe{MimeType: http.DetectContentType(head[:n])}

	switch {
	case strings.HasPrefix(probe.MimeType, "video"):
		if vp, err := e.prober.Probe(ctx, path); err == nil {
			probe.Width, probe.Height = vp.Width, vp.Height
			if vp.CreatedAt != nil {
				probe.DateTaken = vp.CreatedAt.UnixMilli()
			}
		}
	default:
		if w, h, err := e.decodeDimensions(path); err == nil {
			probe.Width, probe.Height = w, h
		}
		md := &gallery.ExtractedMetadata{}
		if err := e.readExif(path, true, md); err == nil && md.ExifTimestamp != nil {
			probe.DateTaken = int64(*md.ExifTimestamp)
		}
	}
	return probe, nil
}
