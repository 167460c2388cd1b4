package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	TypeScanFile        = "gallery:scan_file"
	TypeGeneratePreview = "gallery:generate_preview"
)

type ScanFilePayload struct {
	Path string `json:"path"`
}

// NewScanFileTask creates an Asynq task for registering a file with the
// media index.
func NewScanFileTask(path string) (*asynq.Task, error) {
	data, err := json.Marshal(ScanFilePayload{Path: path})
	if err != nil {
		return nil, fmt.Errorf("could not marshal scan-file payload: %w", err)
	}
	return asynq.NewTask(TypeScanFile, data), nil
}

// ParseScanFilePayload parses the task payload to ScanFilePayload.
func ParseScanFilePayload(t *asynq.Task) (ScanFilePayload, error) {
	var p ScanFilePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return ScanFilePayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}

type GeneratePreviewPayload struct {
	MediaID string `json:"media_id"`
}

// NewGeneratePreviewTask creates an Asynq task for rendering a preview of
// a media by ID.
func NewGeneratePreviewTask(mediaID string) (*asynq.Task, error) {
	data, err := json.Marshal(GeneratePreviewPayload{MediaID: mediaID})
	if err != nil {
		return nil, fmt.Errorf("could not marshal generate-preview payload: %w", err)
	}
	return asynq.NewTask(TypeGeneratePreview, data), nil
}

// ParseGeneratePreviewPayload parses the task payload to GeneratePreviewPayload.
func ParseGeneratePreviewPayload(t *asynq.Task) (GeneratePreviewPayload, error) {
	var p GeneratePreviewPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return GeneratePreviewPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
