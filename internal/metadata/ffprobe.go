package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/fhuszti/cameraroll-ms-go/internal/model"
)

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string            `json:"duration"`
	Tags     map[string]string `json:"tags"`
}

type ffprobeStream struct {
	CodecType string `json:"codec_type"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// FFProbe shells out to the ffprobe binary for video files.
type FFProbe struct {
	bin string
}

// compile-time check: *FFProbe must satisfy Prober
var _ Prober = (*FFProbe)(nil)

func NewFFProbe(bin string) *FFProbe {
	if bin == "" {
		bin = "ffprobe"
	}
	return &FFProbe{bin: bin}
}

func (p *FFProbe) Probe(ctx context.Context, path string) (*VideoProbe, error) {
	cmd := exec.CommandContext(ctx, p.bin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed on %q: %w", path, err)
	}

	var out ffprobeOutput
	if err := json.Unmarshal(output, &out); err != nil {
		return nil, fmt.Errorf("could not parse ffprobe output for %q: %w", path, err)
	}

	probe := &VideoProbe{}
	if duration, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
		probe.Duration = duration
	}
	for _, stream := range out.Streams {
		if stream.CodecType == "video" {
			probe.Width = stream.Width
			probe.Height = stream.Height
			break
		}
	}
	readFormatTags(out.Format.Tags, probe)
	return probe, nil
}

// readFormatTags pulls the capture time and GPS coordinates out of the
// container tags. Both are optional and silently skipped when malformed.
func readFormatTags(tags map[string]string, probe *VideoProbe) {
	if raw, ok := tags["creation_time"]; ok {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			probe.CreatedAt = &ts
		}
	}

	raw, ok := tags["location"]
	if !ok {
		raw, ok = tags["com.apple.quicktime.location.ISO6709"]
	}
	if ok {
		if loc, valid := parseISO6709(raw); valid {
			probe.Location = loc
		}
	}
}

// parseISO6709 reads the "+DD.DDDD+DDD.DDDD/" coordinate form MP4
// containers carry, ignoring a trailing altitude component.
func parseISO6709(s string) (*model.Location, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "/")

	var parts []string
	start := 0
	for i := 1; i < len(s); i++ {
		if s[i] == '+' || s[i] == '-' {
			parts = append(parts, s[start:i])
			start = i
		}
	}
	parts = append(parts, s[start:])
	if len(parts) < 2 {
		return nil, false
	}

	lat, latErr := strconv.ParseFloat(parts[0], 64)
	long, longErr := strconv.ParseFloat(parts[1], 64)
	if latErr != nil || longErr != nil {
		return nil, false
	}
	return &model.Location{Latitude: lat, Longitude: long}, true
}
