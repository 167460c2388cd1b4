package worker

import (
	"context"
	"log"

	"github.com/fhuszti/cameraroll-ms-go/internal/port"
	"github.com/fhuszti/cameraroll-ms-go/internal/task"
)

// ScanFileHandler handles a scan-file task: it registers (or refreshes)
// one file of the pictures tree in the media index.
func ScanFileHandler(ctx context.Context, p task.ScanFilePayload, svc port.FileScanner) error {
	if p.Path == "" {
		log.Printf("❌  Empty path in scan-file payload")
		return errEmptyPath
	}

	id, err := svc.ScanFile(ctx, p.Path)
	if err != nil {
		log.Printf("❌  Failed to scan file %q: %v", p.Path, err)
		return err
	}

	log.Printf("✅  Successfully scanned %q as media #%s", p.Path, id)
	return nil
}
