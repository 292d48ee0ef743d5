package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"moodscribe/internal/speech"
)

type stubTTS struct {
	pcm []byte
	err error
}

func (c *stubTTS) GenerateSpeech(_ context.Context, _, _ string) ([]byte, error) {
	return c.pcm, c.err
}

func newSpeechHandler(t *testing.T, tts *stubTTS) *SpeechHandler {
	t.Helper()
	svc, err := speech.New(tts, "")
	if err != nil {
		t.Fatalf("speech service: %v", err)
	}
	return NewSpeechHandler(svc)
}

func TestHandleSynthesizeReturnsDataURI(t *testing.T) {
	h := newSpeechHandler(t, &stubTTS{pcm: []byte{1, 2, 3, 4}})

	req := httptest.NewRequest(http.MethodPost, "/api/speech", strings.NewReader(`{"text":"You seem calm today."}`))
	rec := httptest.NewRecorder()
	h.HandleSynthesize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp struct {
		Media string `json:"media"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(resp.Media, "data:audio/wav;base64,") {
		t.Fatalf("unexpected media prefix: %q", resp.Media)
	}
}

func TestHandleSynthesizeEmptyText(t *testing.T) {
	h := newSpeechHandler(t, &stubTTS{pcm: []byte{1}})

	req := httptest.NewRequest(http.MethodPost, "/api/speech", strings.NewReader(`{"text":"   "}`))
	rec := httptest.NewRecorder()
	h.HandleSynthesize(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "No text provided for speech synthesis.") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandleSynthesizeUpstreamFailure(t *testing.T) {
	h := newSpeechHandler(t, &stubTTS{err: errors.New("model unavailable")})

	req := httptest.NewRequest(http.MethodPost, "/api/speech", strings.NewReader(`{"text":"Say something."}`))
	rec := httptest.NewRecorder()
	h.HandleSynthesize(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestHandleSynthesizeMethodNotAllowed(t *testing.T) {
	h := newSpeechHandler(t, &stubTTS{pcm: []byte{1}})

	req := httptest.NewRequest(http.MethodGet, "/api/speech", nil)
	rec := httptest.NewRecorder()
	h.HandleSynthesize(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
