package metadata

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

const fakeProbeOutput = `{
  "format": {
    "duration": "12.700000",
    "tags": {
      "creation_time": "2023-01-02T03:04:05.000000Z",
      "location": "+48.8577+002.2950/"
    }
  },
  "streams": [
    {"codec_type": "audio"},
    {"codec_type": "video", "width": 1920, "height": 1080}
  ]
}`

func fakeFFProbeBin(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a POSIX shell")
	}
	bin := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return bin
}

func TestFFProbe_ParsesStreams(t *testing.T) {
	bin := fakeFFProbeBin(t, "#!/bin/sh\ncat <<'EOF'\n"+fakeProbeOutput+"\nEOF\n")
	p := NewFFProbe(bin)

	probe, err := p.Probe(context.Background(), "/videos/clip.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if probe.Width != 1920 || probe.Height != 1080 {
		t.Errorf("expected the video stream dimensions, got %dx%d", probe.Width, probe.Height)
	}
	if probe.Duration != 12.7 {
		t.Errorf("expected duration 12.7, got %v", probe.Duration)
	}
	want := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	if probe.CreatedAt == nil || !probe.CreatedAt.Equal(want) {
		t.Errorf("expected creation_time %v, got %v", want, probe.CreatedAt)
	}
	if probe.Location == nil || probe.Location.Latitude != 48.8577 || probe.Location.Longitude != 2.295 {
		t.Errorf("expected location 48.8577,2.295, got %v", probe.Location)
	}
}

func TestFFProbe_SkipsMalformedTags(t *testing.T) {
	out := `{
  "format": {
    "duration": "3.000000",
    "tags": {"creation_time": "yesterday", "location": "somewhere"}
  },
  "streams": [{"codec_type": "video", "width": 640, "height": 480}]
}`
	bin := fakeFFProbeBin(t, "#!/bin/sh\ncat <<'EOF'\n"+out+"\nEOF\n")
	p := NewFFProbe(bin)

	probe, err := p.Probe(context.Background(), "/videos/clip.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if probe.CreatedAt != nil || probe.Location != nil {
		t.Errorf("expected malformed tags to be skipped, got %v / %v", probe.CreatedAt, probe.Location)
	}
	if probe.Width != 640 || probe.Duration != 3 {
		t.Errorf("expected the rest of the probe intact, got %+v", probe)
	}
}

func TestParseISO6709(t *testing.T) {
	tests := []struct {
		in        string
		lat, long float64
		ok        bool
	}{
		{"+48.8577+002.2950/", 48.8577, 2.295, true},
		{"-33.8688+151.2093/", -33.8688, 151.2093, true},
		{"+40.7128-074.0060+010.000/", 40.7128, -74.006, true}, // altitude ignored
		{"48.8577", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range tests {
		loc, ok := parseISO6709(tc.in)
		if ok != tc.ok {
			t.Errorf("%q: expected ok=%v, got %v", tc.in, tc.ok, ok)
			continue
		}
		if ok && (loc.Latitude != tc.lat || loc.Longitude != tc.long) {
			t.Errorf("%q: expected %v,%v got %v,%v", tc.in, tc.lat, tc.long, loc.Latitude, loc.Longitude)
		}
	}
}

func TestFFProbe_BinaryFailure(t *testing.T) {
	bin := fakeFFProbeBin(t, "#!/bin/sh\nexit 1\n")
	p := NewFFProbe(bin)

	if _, err := p.Probe(context.Background(), "/videos/clip.mp4"); err == nil {
		t.Fatal("expected an error when the binary fails")
	}
}

func TestFFProbe_GarbageOutput(t *testing.T) {
	bin := fakeFFProbeBin(t, "#!/bin/sh\necho 'not json'\n")
	p := NewFFProbe(bin)

	if _, err := p.Probe(context.Background(), "/videos/clip.mp4"); err == nil {
		t.Fatal("expected an error for unparsable output")
	}
}
