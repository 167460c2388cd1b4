package gallery

import (
	"context"
	"fmt"

	"github.com/fhuszti/cameraroll-ms-go/internal/logger"
	"github.com/fhuszti/cameraroll-ms-go/internal/port"
)

type rescannerSrv struct {
	index      MediaIndex
	store      FileStore
	dispatcher Dispatcher
}

// compile-time check: *rescannerSrv must satisfy port.LibraryRescanner
var _ port.LibraryRescanner = (*rescannerSrv)(nil)

// NewLibraryRescanner constructs the service that reconciles the pictures
// tree with the media index.
func NewLibraryRescanner(index MediaIndex, store FileStore, dispatcher Dispatcher) port.LibraryRescanner {
	return &rescannerSrv{index: index, store: store, dispatcher: dispatcher}
}

// RescanLibrary enqueues a scan task for every file under the pictures
// root that the index does not know yet.
func (s *rescannerSrv) RescanLibrary(ctx context.Context) (int, error) {
	files, err := s.store.ListFiles()
	if err != nil {
		return 0, fmt.Errorf("list pictures tree: %w", err)
	}

	known, err := s.index.ListPaths(ctx)
	if err != nil {
		return 0, fmt.Errorf("list indexed paths: %w", err)
	}
	indexed := make(map[string]struct{}, len(known))
	for _, p := range known {
		indexed[p] = struct{}{}
	}

	enqueued := 0
	for _, path := range files {
		if _, ok := indexed[path]; ok {
			continue
		}
		if err := s.dispatcher.EnqueueScanFile(ctx, path); err != nil {
			return enqueued, fmt.Errorf("enqueue scan for %q: %w", path, err)
		}
		enqueued++
	}

	logger.Infof(ctx, "library rescan: %d file(s) enqueued out of %d on disk", enqueued, len(files))
	return enqueued, nil
}
