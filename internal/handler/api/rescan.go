package api

import (
	"net/http"

	"github.com/fhuszti/cameraroll-ms-go/internal/logger"
	"github.com/fhuszti/cameraroll-ms-go/internal/port"
)

type RescanResponse struct {
	Enqueued bool `json:"enqueued"`
	Count    int  `json:"count"`
}

func RescanHandler(svc port.LibraryRescanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.RescanLibrary(r.Context())
		if err != nil {
			WriteGalleryError(w, "Could not rescan the library", err)
			return
		}

		RespondJSON(w, http.StatusAccepted, RescanResponse{Enqueued: true, Count: count})
		logger.Infof(r.Context(), "✅  Library rescan enqueued %d file(s)", count)
	}
}
