package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"moodscribe/internal/speech"
)

// SpeechHandler serves on-demand text-to-speech.
type SpeechHandler struct {
	svc *speech.Service
}

func NewSpeechHandler(svc *speech.Service) *SpeechHandler {
	return &SpeechHandler{svc: svc}
}

type speechRequest struct {
	Text string `json:"text"`
}

type speechResponse struct {
	Media string `json:"media"`
}

func (h *SpeechHandler) HandleSynthesize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req speechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No text provided for speech synthesis."})
		return
	}

	audio, err := h.svc.Synthesize(r.Context(), req.Text)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error: "Sorry, I couldn't generate audio right now. Please try again later.",
		})
		return
	}
	writeJSON(w, http.StatusOK, speechResponse{Media: audio.DataURI()})
}
