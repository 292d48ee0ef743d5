package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"moodscribe/internal/journal"
	"moodscribe/internal/mood"
)

// JournalHandler serves submission and history endpoints.
type JournalHandler struct {
	orch *journal.Orchestrator
}

func NewJournalHandler(orch *journal.Orchestrator) *JournalHandler {
	return &JournalHandler{orch: orch}
}

type submitTextRequest struct {
	JournalEntry string `json:"journalEntry"`
}

type submitFaceRequest struct {
	PhotoDataURI string `json:"photoDataUri"`
}

type submitResponse struct {
	SubmissionID string        `json:"submissionId"`
	Analysis     mood.Analysis `json:"analysis"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleSubmitText accepts a free-text entry, waits for the classification,
// and responds while persistence and suggestions continue in the background.
func (h *JournalHandler) HandleSubmitText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req submitTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	sub, err := h.orch.SubmitText(r.Context(), req.JournalEntry)
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	analysis, err := sub.WaitAnalysis(r.Context())
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, submitResponse{SubmissionID: sub.ID, Analysis: analysis})
}

// HandleSubmitFace accepts a captured face photo as a data URI.
func (h *JournalHandler) HandleSubmitFace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req submitFaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	mimeType, data, err := decodeDataURI(req.PhotoDataURI)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No photo provided for analysis."})
		return
	}

	sub, err := h.orch.SubmitFace(r.Context(), mimeType, data)
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	analysis, err := sub.WaitAnalysis(r.Context())
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, submitResponse{SubmissionID: sub.ID, Analysis: analysis})
}

type entriesResponse struct {
	Entries []journal.Entry `json:"entries"`
}

// HandleListEntries returns the session's entry list, oldest first.
func (h *JournalHandler) HandleListEntries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, entriesResponse{Entries: h.orch.Entries()})
}

func writeSubmitError(w http.ResponseWriter, err error) {
	var verr *mood.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Msg})
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		writeJSON(w, http.StatusRequestTimeout, errorResponse{Error: "request canceled"})
		return
	}
	writeJSON(w, http.StatusBadGateway, errorResponse{
		Error: "Sorry, I couldn't analyze your entry right now. The AI model returned an unexpected response. Please try again.",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("handler: encode response: %v", err)
	}
}
