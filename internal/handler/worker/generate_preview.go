package worker

import (
	"context"
	"errors"
	"log"

	"github.com/fhuszti/cameraroll-ms-go/internal/port"
	"github.com/fhuszti/cameraroll-ms-go/internal/task"
	"github.com/fhuszti/cameraroll-ms-go/internal/uuid"
)

var errEmptyPath = errors.New("empty path")

// GeneratePreviewHandler handles a generate-preview task.
// It converts the incoming task payload to the identifier expected by
// the gallery.PreviewGenerator service and delegates the call.
func GeneratePreviewHandler(ctx context.Context, p task.GeneratePreviewPayload, svc port.PreviewGenerator) error {
	id, err := uuid.Parse(p.MediaID)
	if err != nil {
		log.Printf("❌  Invalid media ID %q: %v", p.MediaID, err)
		return err
	}

	if err := svc.GeneratePreview(ctx, id); err != nil {
		log.Printf("❌  Failed to generate preview for media #%s: %v", id, err)
		return err
	}

	log.Printf("✅  Successfully generated preview for media #%s", id)
	return nil
}
