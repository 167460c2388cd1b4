package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fhuszti/cameraroll-ms-go/internal/usecase/gallery"
)

// LocalStore is the public pictures tree on the local filesystem.
type LocalStore struct {
	root string
}

// compile-time check: *LocalStore must satisfy gallery.FileStore
var _ gallery.FileStore = (*LocalStore)(nil)

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// ResolveDir returns the directory exports land in, creating it if needed.
// An empty album resolves to the pictures root itself.
func (s *LocalStore) ResolveDir(album string) (string, error) {
	dir := s.root
	if album != "" {
		if strings.ContainsAny(album, `/\`) || album == "." || album == ".." {
			return "", fmt.Errorf("%w: invalid album name %q", gallery.ErrUnableToSave, album)
		}
		dir = filepath.Join(s.root, album)
	}

	// any failure to produce a usable directory is a load error, whatever
	// the underlying cause
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: directory %q not created: %v", gallery.ErrUnableToLoad, dir, err)
	}

	fi, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("%w: could not stat directory %q: %v", gallery.ErrUnableToLoad, dir, err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%w: %q is not a directory", gallery.ErrUnableToLoad, dir)
	}
	return dir, nil
}

// CreateExclusive opens path for writing only if nothing exists there yet.
// Callers probe for collisions with errors.Is(err, fs.ErrExist).
func (s *LocalStore) CreateExclusive(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

func (s *LocalStore) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, mapFsErr(err)
	}
	return f, nil
}

func (s *LocalStore) Stat(path string) (fs.FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, mapFsErr(err)
	}
	return fi, nil
}

// ListFiles walks the pictures root and returns every regular file in it,
// leaving out dot-directories like the previews cache.
func (s *LocalStore) ListFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, mapFsErr(fmt.Errorf("walk %q: %w", s.root, err))
	}
	return files, nil
}

func mapFsErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %v", gallery.ErrUnableToLoadPermission, err)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", gallery.ErrUnableToLoad, err)
	}
	return err
}
