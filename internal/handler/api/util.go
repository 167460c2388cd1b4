package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fhuszti/cameraroll-ms-go/internal/logger"
	"github.com/fhuszti/cameraroll-ms-go/internal/usecase/gallery"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, msg string, err error) {
	WriteErrorCode(w, status, msg, "", err)
}

func WriteErrorCode(w http.ResponseWriter, status int, msg, code string, err error) {
	ctx := context.Background()
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
	} else {
		logger.Error(ctx, "❌  "+msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

// WriteGalleryError folds the gallery sentinels into their HTTP statuses
// and wire codes; anything unclassified is a plain 500.
func WriteGalleryError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, gallery.ErrUnableToFilter):
		WriteErrorCode(w, http.StatusBadRequest, msg, "E_UNABLE_TO_FILTER", err)
	case errors.Is(err, gallery.ErrUnableToLoadPermission):
		WriteErrorCode(w, http.StatusForbidden, msg, "E_UNABLE_TO_LOAD_PERMISSION", err)
	case errors.Is(err, gallery.ErrUnableToLoad):
		WriteErrorCode(w, http.StatusInternalServerError, msg, "E_UNABLE_TO_LOAD", err)
	case errors.Is(err, gallery.ErrUnableToSave):
		WriteErrorCode(w, http.StatusInternalServerError, msg, "E_UNABLE_TO_SAVE", err)
	default:
		WriteError(w, http.StatusInternalServerError, msg, err)
	}
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to write JSON payload: %v", err)
	}
}
