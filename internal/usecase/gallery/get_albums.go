package gallery

import (
	"context"

	"github.com/fhuszti/cameraroll-ms-go/internal/model"
	"github.com/fhuszti/cameraroll-ms-go/internal/port"
)

type albumListerSrv struct {
	index MediaIndex
}

// compile-time check: *albumListerSrv must satisfy port.AlbumLister
var _ port.AlbumLister = (*albumListerSrv)(nil)

// NewAlbumLister constructs the album listing service.
func NewAlbumLister(index MediaIndex) port.AlbumLister {
	return &albumListerSrv{index: index}
}

func (s *albumListerSrv) ListAlbums(ctx context.Context) ([]model.Album, error) {
	return s.index.ListAlbums(ctx)
}
