package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/courtsidelabs/courtside/api/domain"
	"github.com/courtsidelabs/courtside/api/services"
	"github.com/courtsidelabs/courtside/shared/llm"
)

type stubGen struct {
	responses map[string]string // matched by prompt substring
}

func (s *stubGen) Chat(_ context.Context, req llm.ChatRequest) (string, error) {
	prompt := req.Messages[len(req.Messages)-1].Content
	for needle, response := range s.responses {
		if strings.Contains(prompt, needle) {
			return response, nil
		}
	}
	return prompt, nil // rewrites echo their input
}

type stubQuerier struct{}

func (stubQuerier) QueryReadOnly(context.Context, string, ...any) ([]map[string]any, error) {
	return []map[string]any{}, nil
}

type stubEmbedder struct{}

func (stubEmbedder) Embed(context.Context, string) ([]float32, error) { return []float32{0.1}, nil }

type stubSearcher struct{}

func (stubSearcher) SearchNewsChunks(context.Context, []float32, int) ([]domain.NewsChunk, error) {
	return nil, nil
}

type stubSchedule struct{}

func (stubSchedule) Get(context.Context) domain.Scoreboard { return domain.Scoreboard{} }
func (stubSchedule) Schedule(context.Context) map[string]domain.TeamScheduleEntry {
	return nil
}

func newAskHandler(gen services.Generator) *AskHandler {
	news := services.NewNews(gen, stubEmbedder{}, stubSearcher{})
	stats := services.NewStats(gen, stubQuerier{})
	betting := services.NewBetting(gen, stubQuerier{}, stubSchedule{})
	return NewAskHandler(services.NewRouter(gen, stats, news, betting))
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	h := newAskHandler(&stubGen{})

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question": "   "}`))
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "question is required")
}

func TestAskRejectsMalformedBody(t *testing.T) {
	h := newAskHandler(&stubGen{})

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question": `))
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskOffTopicRoundTrip(t *testing.T) {
	gen := &stubGen{responses: map[string]string{
		"Classify the following": "OFF_TOPIC",
	}}
	h := newAskHandler(gen)

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question": "best pizza in town?"}`))
	rec := httptest.NewRecorder()
	h.Ask(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `"category":"off_topic"`)
	require.Contains(t, body, "best pizza in town?")
}
