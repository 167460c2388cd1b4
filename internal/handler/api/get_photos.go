package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fhuszti/cameraroll-ms-go/internal/logger"
	"github.com/fhuszti/cameraroll-ms-go/internal/model"
	"github.com/fhuszti/cameraroll-ms-go/internal/port"
	"github.com/fhuszti/cameraroll-ms-go/internal/task"
	"github.com/fhuszti/cameraroll-ms-go/internal/validation"
)

type GetPhotosRequest struct {
	First                   int      `json:"first" validate:"required,gt=0"`
	After                   string   `json:"after" validate:"omitempty,number"`
	GroupName               string   `json:"groupName"`
	AssetType               string   `json:"assetType" validate:"omitempty,oneof=Photos Videos All"`
	MimeTypes               []string `json:"mimeTypes"`
	UseDateAddedQuery       bool     `json:"useDateAddedQuery"`
	UseExifDateTimeOriginal bool     `json:"useExifDateTimeOriginal"`
}

func GetPhotosHandler(svc port.PhotoLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GetPhotosRequest
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

			// return the validation errors payload directly
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		in := port.GetPhotosInput(req)
		out := task.Submit(r.Context(), func(ctx context.Context) (*model.PhotosPage, error) {
			return svc.GetPhotos(ctx, in)
		})

		select {
		case <-r.Context().Done():
			return
		case res := <-out:
			if res.Err != nil {
				WriteGalleryError(w, "Could not get photos", res.Err)
				return
			}
			RespondJSON(w, http.StatusOK, res.Value)
			logger.Infof(r.Context(), "✅  Successfully returned %d photo(s)", len(res.Value.Edges))
		}
	}
}
