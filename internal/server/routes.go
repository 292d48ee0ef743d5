package server

import (
	"net/http"

	"moodscribe/internal/handler"
	"moodscribe/internal/middleware"
)

func NewMux(
	journalHandler *handler.JournalHandler,
	speechHandler *handler.SpeechHandler,
	eventsHandler *handler.EventsHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/journal/entries", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			journalHandler.HandleSubmitText(w, r)
			return
		}
		journalHandler.HandleListEntries(w, r)
	})
	mux.HandleFunc("/api/journal/face", journalHandler.HandleSubmitFace)
	mux.HandleFunc("/api/speech", speechHandler.HandleSynthesize)
	mux.HandleFunc("/ws/journal", eventsHandler.HandleEventsWS)

	return middleware.CORS(mux)
}
