package handlers

import (
	"log/slog"
	"net/http"

	"github.com/courtsidelabs/courtside/api/store"
)

type HeadlinesHandler struct {
	store *store.Store
}

func NewHeadlinesHandler(s *store.Store) *HeadlinesHandler {
	return &HeadlinesHandler{store: s}
}

// Headlines handles GET /headlines.
func (h *HeadlinesHandler) Headlines(w http.ResponseWriter, r *http.Request) {
	headlines, err := h.store.Headlines(r.Context())
	if err != nil {
		slog.Error("headlines query failed", "error", err)
		respondError(w, "could not fetch headlines", http.StatusInternalServerError)
		return
	}
	respondJSON(w, map[string]any{"headlines": headlines}, http.StatusOK)
}
