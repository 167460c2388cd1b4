package port

import (
	"context"

	"github.com/fhuszti/cameraroll-ms-go/internal/uuid"
)

// TaskDispatcher enqueues asynchronous gallery maintenance tasks.
type TaskDispatcher interface {
	EnqueueScanFile(ctx context.Context, path string) error
	EnqueueGeneratePreview(ctx context.Context, id uuid.UUID) error
}
