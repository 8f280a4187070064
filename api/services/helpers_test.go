package services

import (
	"context"
	"errors"
	"sync"

	"github.com/courtsidelabs/courtside/api/domain"
	"github.com/courtsidelabs/courtside/shared/llm"
)

// fakeGen scripts the model. Responses come from fn when set, otherwise from
// the queue in call order. Safe for concurrent pipelines.
type fakeGen struct {
	mu    sync.Mutex
	fn    func(req llm.ChatRequest) (string, error)
	queue []string
	err   error
	calls []llm.ChatRequest
}

func (f *fakeGen) Chat(_ context.Context, req llm.ChatRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.fn != nil {
		return f.fn(req)
	}
	if f.err != nil {
		return "", f.err
	}
	if len(f.queue) == 0 {
		return "", errors.New("no scripted response left")
	}
	next := f.queue[0]
	f.queue = f.queue[1:]
	return next, nil
}

func (f *fakeGen) prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Messages[len(c.Messages)-1].Content
	}
	return out
}

type fakeQuerier struct {
	mu    sync.Mutex
	fn    func(sql string, args []any) ([]map[string]any, error)
	calls []string
}

func (f *fakeQuerier) QueryReadOnly(_ context.Context, sql string, args ...any) ([]map[string]any, error) {
	f.mu.Lock()
	f.calls = append(f.calls, sql)
	fn := f.fn
	f.mu.Unlock()
	if fn != nil {
		return fn(sql, args)
	}
	return []map[string]any{}, nil
}

func (f *fakeQuerier) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeEmbedder struct {
	vec []float32
	err error
}

func (f *fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	return f.vec, f.err
}

type fakeSearcher struct {
	chunks []domain.NewsChunk
	err    error
}

func (f *fakeSearcher) SearchNewsChunks(context.Context, []float32, int) ([]domain.NewsChunk, error) {
	return f.chunks, f.err
}

type fakeSchedule struct {
	board domain.Scoreboard
	sched map[string]domain.TeamScheduleEntry
}

func (f *fakeSchedule) Get(context.Context) domain.Scoreboard {
	return f.board
}

func (f *fakeSchedule) Schedule(context.Context) map[string]domain.TeamScheduleEntry {
	return f.sched
}
