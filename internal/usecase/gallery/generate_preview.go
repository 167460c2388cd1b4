package gallery

import (
	"context"
	"fmt"

	"github.com/fhuszti/cameraroll-ms-go/internal/logger"
	"github.com/fhuszti/cameraroll-ms-go/internal/port"
	"github.com/fhuszti/cameraroll-ms-go/internal/uuid"
)

type previewSrv struct {
	index MediaIndex
	store FileStore
	enc   PreviewEncoder
}

// compile-time check: *previewSrv must satisfy port.PreviewGenerator
var _ port.PreviewGenerator = (*previewSrv)(nil)

// NewPreviewGenerator constructs the service that renders WebP previews
// for indexed media.
func NewPreviewGenerator(index MediaIndex, store FileStore, enc PreviewEncoder) port.PreviewGenerator {
	return &previewSrv{index: index, store: store, enc: enc}
}

func (s *previewSrv) GeneratePreview(ctx context.Context, id uuid.UUID) error {
	rec, err := s.index.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.IsVideo() {
		// stills for videos would need a frame grab; not worth it yet
		logger.Debugf(ctx, "no preview for video media #%s", id)
		return nil
	}

	f, err := s.store.Open(rec.FilePath)
	if err != nil {
		return fmt.Errorf("open %q: %w", rec.FilePath, err)
	}
	defer closeQuietly(ctx, f, rec.FilePath)

	previewPath, err := s.enc.Encode(rec.ID.String(), f)
	if err != nil {
		return fmt.Errorf("encode preview for media #%s: %w", id, err)
	}

	if err := s.index.SetPreviewPath(ctx, id, previewPath); err != nil {
		return err
	}
	logger.Debugf(ctx, "preview for media #%s written to %q", id, previewPath)
	return nil
}
