package task

import (
	"context"

	"github.com/fhuszti/cameraroll-ms-go/internal/port"
	"github.com/fhuszti/cameraroll-ms-go/internal/uuid"
)

type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueScanFile(ctx context.Context, path string) error {
	return nil
}

func (d *NoopDispatcher) EnqueueGeneratePreview(ctx context.Context, id uuid.UUID) error {
	return nil
}
