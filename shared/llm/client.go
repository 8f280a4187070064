// Package llm provides the text-generation and embedding ports over any
// OpenAI-compatible endpoint.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/courtsidelabs/courtside/pkg/metrics"
)

var tracer = otel.GetTracerProvider().Tracer("shared/llm")

// Tier selects which configured model serves a request. The fast tier is for
// classification, intent parsing and short rewrites; the strong tier is for
// SQL generation and final synthesis.
type Tier string

const (
	TierFast   Tier = "fast"
	TierStrong Tier = "strong"
)

type Message struct {
	Role    string
	Content string
}

type ChatRequest struct {
	Messages    []Message
	Tier        Tier
	Temperature float32
	MaxTokens   int
}

// Config holds the configuration for the LLM client.
type Config struct {
	BaseURL        string
	APIKey         string
	Model          string
	FastModel      string
	EmbeddingModel string
	MaxTokens      int
	HTTPClient     *http.Client
	Transport      http.RoundTripper
	Timeout        time.Duration
}

// Option configures a Config.
type Option func(*Config)

// WithModel sets the strong-tier model.
func WithModel(model string) Option {
	return func(c *Config) {
		c.Model = model
	}
}

// WithFastModel sets the fast-tier model.
func WithFastModel(model string) Option {
	return func(c *Config) {
		c.FastModel = model
	}
}

// WithEmbeddingModel sets the default model for embeddings.
func WithEmbeddingModel(model string) Option {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithMaxTokens sets the default max tokens for completions.
func WithMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		c.MaxTokens = maxTokens
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithTransport sets a custom HTTP transport (e.g., for OTEL tracing).
// This is ignored if WithHTTPClient is also used.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Config) {
		c.Transport = rt
	}
}

// WithTimeout sets the HTTP client timeout.
// This is ignored if WithHTTPClient is also used.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// Client wraps the OpenAI-compatible client with tier-aware model selection.
type Client struct {
	api            *openai.Client
	Model          string
	FastModel      string
	EmbeddingModel string
	MaxTokens      int
}

// NewClient creates an OpenAI-compatible client with the given configuration.
// BaseURL should be the full API base URL (e.g., "https://api.openai.com/v1").
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	cfg := &Config{
		BaseURL:        strings.TrimSuffix(baseURL, "/"),
		APIKey:         apiKey,
		Model:          "gpt-4o",
		FastModel:      "gpt-4o-mini",
		EmbeddingModel: "text-embedding-3-small",
		MaxTokens:      2048,
		Timeout:        60 * time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	openaiCfg := openai.DefaultConfig(cfg.APIKey)
	openaiCfg.BaseURL = cfg.BaseURL

	if cfg.HTTPClient != nil {
		openaiCfg.HTTPClient = cfg.HTTPClient
	} else {
		transport := cfg.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		openaiCfg.HTTPClient = &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		}
	}

	return &Client{
		api:            openai.NewClientWithConfig(openaiCfg),
		Model:          cfg.Model,
		FastModel:      cfg.FastModel,
		EmbeddingModel: cfg.EmbeddingModel,
		MaxTokens:      cfg.MaxTokens,
	}
}

func (c *Client) model(tier Tier) string {
	if tier == TierFast {
		return c.FastModel
	}
	return c.Model
}

// Chat submits a prompt to the tier's model and returns the response text.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (string, error) {
	model := c.model(req.Tier)

	ctx, span := tracer.Start(ctx, "llm.chat", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.MaxTokens
	}

	span.SetAttributes(
		attribute.String("llm.model", model),
		attribute.String("llm.tier", string(req.Tier)),
		attribute.Int("llm.request.max_tokens", maxTokens),
		attribute.Int("llm.request.messages", len(req.Messages)),
	)
	if req.Temperature > 0 {
		span.SetAttributes(attribute.Float64("llm.request.temperature", float64(req.Temperature)))
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   maxTokens,
	})
	metrics.LLMRequestDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(model, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("chat completion: %w", err)
	}
	metrics.LLMRequestsTotal.WithLabelValues(model, "ok").Inc()

	span.SetAttributes(
		attribute.Int("llm.usage.input_tokens", resp.Usage.PromptTokens),
		attribute.Int("llm.usage.output_tokens", resp.Usage.CompletionTokens),
		attribute.Int("llm.usage.total_tokens", resp.Usage.TotalTokens),
	)
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response from %s", model)
	}
	span.SetAttributes(
		attribute.String("llm.response.finish_reason", string(resp.Choices[0].FinishReason)),
		attribute.Int("llm.response.content_length", len(resp.Choices[0].Message.Content)),
	)

	return resp.Choices[0].Message.Content, nil
}

// Embed returns the embedding vector for a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, span := tracer.Start(ctx, "llm.embeddings", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(attribute.String("llm.model", c.EmbeddingModel))

	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.EmbeddingModel),
		Input: []string{text},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("create embedding: empty response from %s", c.EmbeddingModel)
	}

	span.SetAttributes(
		attribute.Int("llm.usage.input_tokens", resp.Usage.PromptTokens),
		attribute.Int("llm.response.embeddings", len(resp.Data)),
	)

	return resp.Data[0].Embedding, nil
}
