package handlers

import (
	"net/http"

	"github.com/courtsidelabs/courtside/api/scores"
)

type ScoresHandler struct {
	cache *scores.Cache
}

func NewScoresHandler(cache *scores.Cache) *ScoresHandler {
	return &ScoresHandler{cache: cache}
}

// Scores handles GET /scores. The cache absorbs upstream failures, so this
// always returns a payload.
func (h *ScoresHandler) Scores(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.cache.Get(r.Context()), http.StatusOK)
}
