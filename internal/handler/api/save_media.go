package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fhuszti/cameraroll-ms-go/internal/logger"
	"github.com/fhuszti/cameraroll-ms-go/internal/port"
	"github.com/fhuszti/cameraroll-ms-go/internal/task"
	"github.com/fhuszti/cameraroll-ms-go/internal/validation"
)

type SaveMediaRequest struct {
	URI   string `json:"uri" validate:"required"`
	Album string `json:"album" validate:"omitempty,max=120"`
}

type SaveMediaResponse struct {
	ID string `json:"id"`
}

func SaveMediaHandler(svc port.MediaExporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SaveMediaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request", fmt.Errorf("invalid JSON: %w", err))
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "Validation error (could not encode details)", fmt.Errorf("encoding validation errors: %w", err))
				return
			}

			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		in := port.SaveToCameraRollInput(req)
		out := task.Submit(r.Context(), func(ctx context.Context) (string, error) {
			return svc.SaveToCameraRoll(ctx, in)
		})

		select {
		case <-r.Context().Done():
			return
		case res := <-out:
			if res.Err != nil {
				WriteGalleryError(w, "Could not save media", res.Err)
				return
			}
			RespondJSON(w, http.StatusCreated, SaveMediaResponse{ID: res.Value})
			logger.Infof(r.Context(), "✅  Successfully saved media #%s", res.Value)
		}
	}
}
