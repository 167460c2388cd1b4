package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fhuszti/cameraroll-ms-go/internal/mock"
)

func TestRescanHandler_Success(t *testing.T) {
	mockSvc := &mock.MockLibraryRescanner{Count: 7}

	req := httptest.NewRequest(http.MethodPost, "/gallery/rescan", nil)
	rr := httptest.NewRecorder()
	RescanHandler(mockSvc)(rr, req)

	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rr.Code)
	}
	var resp RescanResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if !resp.Enqueued || resp.Count != 7 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestRescanHandler_Failure(t *testing.T) {
	mockSvc := &mock.MockLibraryRescanner{Err: errors.New("broker down")}

	req := httptest.NewRequest(http.MethodPost, "/gallery/rescan", nil)
	rr := httptest.NewRecorder()
	RescanHandler(mockSvc)(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
