package api

import (
	"net/http"

	"github.com/fhuszti/cameraroll-ms-go/internal/logger"
	"github.com/fhuszti/cameraroll-ms-go/internal/model"
	"github.com/fhuszti/cameraroll-ms-go/internal/port"
)

type ListAlbumsResponse struct {
	Albums []model.Album `json:"albums"`
}

func ListAlbumsHandler(svc port.AlbumLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		albums, err := svc.ListAlbums(r.Context())
		if err != nil {
			WriteGalleryError(w, "Could not list albums", err)
			return
		}
		if albums == nil {
			albums = []model.Album{}
		}

		RespondJSON(w, http.StatusOK, ListAlbumsResponse{Albums: albums})
		logger.Infof(r.Context(), "✅  Successfully returned %d album(s)", len(albums))
	}
}
