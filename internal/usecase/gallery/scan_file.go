package gallery

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fhuszti/cameraroll-ms-go/internal/logger"
	"github.com/fhuszti/cameraroll-ms-go/internal/model"
	"github.com/fhuszti/cameraroll-ms-go/internal/port"
	"github.com/fhuszti/cameraroll-ms-go/internal/uuid"
)

type scannerSrv struct {
	index MediaIndex
	store FileStore
	meta  MetadataExtractor
	genID UUIDGen
}

// compile-time checks
var (
	_ port.FileScanner = (*scannerSrv)(nil)
	_ Scanner          = (*scannerSrv)(nil)
)

// NewFileScanner constructs the registration service that makes the media
// index aware of a file on disk.
func NewFileScanner(index MediaIndex, store FileStore, meta MetadataExtractor, genID UUIDGen) *scannerSrv {
	return &scannerSrv{index: index, store: store, meta: meta, genID: genID}
}

// ScanFile stats and probes the file at path, then inserts it into the
// index, or refreshes the existing row when the path is already known.
// Probing is best effort: a file whose dimensions or capture time cannot
// be read is still registered with zero values.
func (s *scannerSrv) ScanFile(ctx context.Context, path string) (uuid.UUID, error) {
	fi, err := s.store.Stat(path)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("stat %q: %w", path, err)
	}

	probe, err := s.meta.ProbeFile(ctx, path)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("probe %q: %w", path, err)
	}

	existing, err := s.index.FindByPath(ctx, path)
	if err != nil && !errors.Is(err, ErrMediaNotFound) {
		return uuid.UUID{}, err
	}

	if existing != nil {
		existing.MimeType = probe.MimeType
		existing.GroupName = filepath.Base(filepath.Dir(path))
		existing.DateTaken = probe.DateTaken
		existing.DateModified = fi.ModTime().Unix()
		existing.Width = probe.Width
		existing.Height = probe.Height
		if err := s.index.Update(ctx, existing); err != nil {
			return uuid.UUID{}, err
		}
		logger.Debugf(ctx, "refreshed media #%s for %q", existing.ID, path)
		return existing.ID, nil
	}

	rec := &model.MediaRecord{
		ID:           s.genID(),
		MimeType:     probe.MimeType,
		GroupName:    filepath.Base(filepath.Dir(path)),
		DateTaken:    probe.DateTaken,
		DateAdded:    time.Now().Unix(),
		DateModified: fi.ModTime().Unix(),
		Width:        probe.Width,
		Height:       probe.Height,
		FilePath:     path,
	}
	if err := s.index.Insert(ctx, rec); err != nil {
		return uuid.UUID{}, err
	}
	logger.Debugf(ctx, "registered media #%s for %q", rec.ID, path)
	return rec.ID, nil
}
