package metadata

import (
	"context"
	"time"

	"github.com/fhuszti/cameraroll-ms-go/internal/model"
)

// VideoProbe is what a media prober reports for a video file. CreatedAt
// and Location are best effort, read from the container tags when present.
type VideoProbe struct {
	Width     int
	Height    int
	Duration  float64 // seconds
	CreatedAt *time.Time
	Location  *model.Location
}

type Prober interface {
	Probe(ctx context.Context, path string) (*VideoProbe, error)
}
