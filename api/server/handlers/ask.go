package handlers

import (
	"net/http"
	"strings"

	"github.com/courtsidelabs/courtside/api/domain"
	"github.com/courtsidelabs/courtside/api/services"
)

// maxQuestionLength rejects obviously abusive payloads before any model call.
const maxQuestionLength = 2000

type AskHandler struct {
	router *services.Router
}

func NewAskHandler(router *services.Router) *AskHandler {
	return &AskHandler{router: router}
}

type askRequest struct {
	Question string        `json:"question"`
	History  []domain.Turn `json:"history,omitempty"`
}

type askResponse struct {
	Question string              `json:"question"`
	Category domain.Category     `json:"category"`
	Answer   string              `json:"answer"`
	SQL      string              `json:"sql,omitempty"`
	Sources  []domain.NewsSource `json:"sources,omitempty"`
}

// Ask handles POST /ask.
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		respondError(w, "question is required", http.StatusBadRequest)
		return
	}
	if len(question) > maxQuestionLength {
		respondError(w, "question is too long", http.StatusBadRequest)
		return
	}

	answer := h.router.Route(r.Context(), question, req.History)

	respondJSON(w, askResponse{
		Question: question,
		Category: answer.Category,
		Answer:   answer.Answer,
		SQL:      answer.SQL,
		Sources:  answer.Sources,
	}, http.StatusOK)
}
