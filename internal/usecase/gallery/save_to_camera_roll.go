package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fhuszti/cameraroll-ms-go/internal/logger"
	"github.com/fhuszti/cameraroll-ms-go/internal/port"
)

type exporterSrv struct {
	store      FileStore
	src        SourceOpener
	scanner    Scanner
	dispatcher Dispatcher
}

// compile-time check: *exporterSrv must satisfy port.MediaExporter
var _ port.MediaExporter = (*exporterSrv)(nil)

// NewMediaExporter constructs the exporter that copies files into the
// public pictures tree and registers them with the media index.
func NewMediaExporter(store FileStore, src SourceOpener, scanner Scanner, dispatcher Dispatcher) port.MediaExporter {
	return &exporterSrv{store: store, src: src, scanner: scanner, dispatcher: dispatcher}
}

// SaveToCameraRoll copies the source behind in.URI into the pictures root
// (under in.Album when set), never overwriting an existing file, then has
// the index scan the copy and returns the new identifier.
func (s *exporterSrv) SaveToCameraRoll(ctx context.Context, in port.SaveToCameraRollInput) (string, error) {
	dir, err := s.store.ResolveDir(in.Album)
	if err != nil {
		return "", err
	}

	src, err := s.src.Open(ctx, in.URI)
	if err != nil {
		return "", fmt.Errorf("open source %q: %w", in.URI, err)
	}
	defer closeQuietly(ctx, src, in.URI)

	dest, destPath, err := s.createDest(dir, in.URI)
	if err != nil {
		return "", err
	}

	_, copyErr := io.Copy(dest, src)
	if err := dest.Close(); err != nil {
		// never mask the copy result with a close failure
		logger.Errorf(ctx, "could not close destination %q: %v", destPath, err)
	}
	if copyErr != nil {
		return "", fmt.Errorf("copy %q to %q: %w", in.URI, destPath, copyErr)
	}

	id, err := s.scanner.ScanFile(ctx, destPath)
	if err != nil {
		return "", fmt.Errorf("%w: could not add %q to the media index: %v", ErrUnableToSave, destPath, err)
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueGeneratePreview(ctx, id); err != nil {
			logger.Warnf(ctx, "could not enqueue preview generation for media #%s: %v", id, err)
		}
	}

	return id.String(), nil
}

// createDest opens a brand new file in dir named after the source, walking
// the stem_0.ext, stem_1.ext, … sequence until creation succeeds.
func (s *exporterSrv) createDest(dir, sourceURI string) (io.WriteCloser, string, error) {
	base := filepath.Base(strings.TrimPrefix(sourceURI, "file://"))
	stem, ext := splitExt(base)

	destPath := filepath.Join(dir, base)
	for n := 0; ; n++ {
		w, err := s.store.CreateExclusive(destPath)
		if err == nil {
			return w, destPath, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("create %q: %w", destPath, err)
		}
		destPath = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
	}
}

// splitExt splits a filename at its last dot; the extension keeps the dot
// and is empty when there is none.
func splitExt(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

func closeQuietly(ctx context.Context, c io.Closer, name string) {
	if err := c.Close(); err != nil {
		logger.Errorf(ctx, "could not close %q: %v", name, err)
	}
}
