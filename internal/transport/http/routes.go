package http

import (
	"net/http"

	"yesno-quiz/internal/app"
)

// NewRouter mounts the health check, the quiz websocket and the history endpoint.
func NewRouter(registry *app.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", NewWSHandler(registry).ServeWS)
	mux.Handle("/api/history", NewHistoryHandler(registry))
	return mux
}
