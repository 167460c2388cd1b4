package gallery

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/cameraroll-ms-go/internal/model"
	"github.com/fhuszti/cameraroll-ms-go/internal/uuid"
)

func TestGeneratePreview_Success(t *testing.T) {
	rec := &model.MediaRecord{ID: uuid.NewUUID(), MimeType: "image/jpeg", FilePath: "/pictures/a.jpg"}
	index := &mockIndex{getRec: rec}
	enc := &mockEncoder{path: "/pictures/.previews/" + rec.ID.String() + ".webp"}
	svc := NewPreviewGenerator(index, &mockStore{openData: map[string][]byte{"/pictures/a.jpg": []byte("jpeg")}}, enc)

	if err := svc.GeneratePreview(context.Background(), rec.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enc.names) != 1 || enc.names[0] != rec.ID.String() {
		t.Errorf("expected the encoder to be named after the media id, got %v", enc.names)
	}
	if got := index.previews[rec.ID.String()]; got != enc.path {
		t.Errorf("expected preview path %q recorded, got %q", enc.path, got)
	}
}

func TestGeneratePreview_SkipsVideos(t *testing.T) {
	rec := &model.MediaRecord{ID: uuid.NewUUID(), MimeType: "video/mp4", FilePath: "/pictures/a.mp4"}
	index := &mockIndex{getRec: rec}
	enc := &mockEncoder{}
	svc := NewPreviewGenerator(index, &mockStore{}, enc)

	if err := svc.GeneratePreview(context.Background(), rec.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enc.names) != 0 {
		t.Error("videos must not be encoded")
	}
	if len(index.previews) != 0 {
		t.Error("no preview path must be recorded for a video")
	}
}

func TestGeneratePreview_UnknownMedia(t *testing.T) {
	svc := NewPreviewGenerator(&mockIndex{getErr: ErrMediaNotFound}, &mockStore{}, &mockEncoder{})

	if err := svc.GeneratePreview(context.Background(), uuid.NewUUID()); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}

func TestGeneratePreview_EncodeError(t *testing.T) {
	rec := &model.MediaRecord{ID: uuid.NewUUID(), MimeType: "image/jpeg", FilePath: "/pictures/a.jpg"}
	encErr := errors.New("decode failed")
	svc := NewPreviewGenerator(&mockIndex{getRec: rec}, &mockStore{}, &mockEncoder{err: encErr})

	if err := svc.GeneratePreview(context.Background(), rec.ID); !errors.Is(err, encErr) {
		t.Fatalf("expected the encode failure, got %v", err)
	}
}
