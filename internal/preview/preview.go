package preview

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/fhuszti/cameraroll-ms-go/internal/usecase/gallery"
)

const defaultMaxWidth = 512

// Encoder renders downscaled lossy WebP previews into a dedicated
// directory, one file per media id.
type Encoder struct {
	dir      string
	maxWidth int
}

// compile-time check: *Encoder must satisfy gallery.PreviewEncoder
var _ gallery.PreviewEncoder = (*Encoder)(nil)

func NewEncoder(dir string) *Encoder {
	return &Encoder{dir: dir, maxWidth: defaultMaxWidth}
}

// Encode decodes the image in r, scales it down to at most maxWidth wide
// and writes it as <name>.webp under the previews directory, returning
// the path written to.
func (e *Encoder) Encode(name string, r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("preview: failed to decode image: %w", err)
	}

	img = e.scaleDown(img)

	buf := &bytes.Buffer{}
	if err := webp.Encode(buf, img, &webp.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("preview: failed to encode WebP: %w", err)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("preview: could not create %q: %w", e.dir, err)
	}
	path := filepath.Join(e.dir, name+".webp")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("preview: could not write %q: %w", path, err)
	}
	return path, nil
}

func (e *Encoder) scaleDown(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= e.maxWidth {
		return img
	}
	h := bounds.Dy() * e.maxWidth / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, e.maxWidth, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
