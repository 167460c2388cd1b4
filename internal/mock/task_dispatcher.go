package mock

import (
	"context"

	"github.com/fhuszti/cameraroll-ms-go/internal/uuid"
)

// MockDispatcher implements task dispatching for tests.
type MockDispatcher struct {
	ScanCalled bool
	ScanPaths  []string
	ScanErr    error

	PreviewCalled bool
	PreviewIDs    []uuid.UUID
	PreviewErr    error
}

func (m *MockDispatcher) EnqueueScanFile(ctx context.Context, path string) error {
	m.ScanCalled = true
	m.ScanPaths = append(m.ScanPaths, path)
	return m.ScanErr
}

func (m *MockDispatcher) EnqueueGeneratePreview(ctx context.Context, id uuid.UUID) error {
	m.PreviewCalled = true
	m.PreviewIDs = append(m.PreviewIDs, id)
	return m.PreviewErr
}
