package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/courtsidelabs/courtside/api/domain"
	"github.com/courtsidelabs/courtside/api/services"
)

type PreviewHandler struct {
	preview *services.Preview
}

func NewPreviewHandler(preview *services.Preview) *PreviewHandler {
	return &PreviewHandler{preview: preview}
}

type previewRequest struct {
	HomeTeamAbbr string `json:"home_team_abbr"`
	AwayTeamAbbr string `json:"away_team_abbr"`
}

type previewResponse struct {
	Answer   string              `json:"answer"`
	Category domain.Category     `json:"category"`
	Sources  []domain.NewsSource `json:"sources,omitempty"`
}

// Preview handles POST /game-preview.
func (h *PreviewHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	home := strings.ToUpper(strings.TrimSpace(req.HomeTeamAbbr))
	away := strings.ToUpper(strings.TrimSpace(req.AwayTeamAbbr))
	if home == "" || away == "" {
		respondError(w, "home_team_abbr and away_team_abbr are required", http.StatusBadRequest)
		return
	}

	result, err := h.preview.Generate(r.Context(), home, away)
	if err != nil {
		slog.Error("game preview failed", "home", home, "away", away, "error", err)
		respondJSON(w, previewResponse{
			Answer:   "Sorry, something went wrong generating the game preview. Please try again.",
			Category: domain.CategoryError,
		}, http.StatusOK)
		return
	}

	respondJSON(w, previewResponse{
		Answer:   result.Answer,
		Category: result.Category,
		Sources:  result.Sources,
	}, http.StatusOK)
}
