package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"yesno-quiz/internal/app"
	"yesno-quiz/internal/domain"
)

type historyResponse struct {
	Profile string    `json:"profile"`
	History []float64 `json:"history"`
	Average float64   `json:"average"`
}

// HistoryHandler serves a profile's score history read-only.
type HistoryHandler struct {
	registry *app.Registry
}

func NewHistoryHandler(registry *app.Registry) *HistoryHandler {
	return &HistoryHandler{registry: registry}
}

func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	profile := strings.TrimSpace(r.URL.Query().Get("profile"))
	scores, err := h.registry.History(r.Context(), profile)
	if err != nil {
		if errors.Is(err, domain.ErrProfileRequired) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("history read failed for profile %q: %v", profile, err)
		http.Error(w, "score history unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(historyResponse{
		Profile: profile,
		History: scores,
		Average: app.Average(scores),
	})
}
