package config

import (
	"time"

	iconfig "github.com/courtsidelabs/courtside/shared/config"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Scores   ScoresConfig
	Otel     OtelConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL string
	// MaxConns must be at least the widest plan fan-out (game preview: 14).
	MaxConns int
	// QueryTimeout bounds every generated or planned query execution.
	QueryTimeout time.Duration
}

type LLMConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	FastModel      string
	EmbeddingModel string
	MaxTokens      int
}

type ScoresConfig struct {
	TTL time.Duration
}

type OtelConfig struct {
	Endpoint    string
	Environment string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           iconfig.GetEnvWithFallback("COURTSIDE_SERVER_HOST", "HOST", "0.0.0.0"),
			Port:           iconfig.GetEnvIntWithFallback("COURTSIDE_SERVER_PORT", "PORT", 8080),
			AllowedOrigins: iconfig.GetEnvSlice("COURTSIDE_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			URL:          iconfig.GetEnvWithFallback("COURTSIDE_POSTGRES_URL", "DATABASE_URL", "postgres://localhost:5432/nba?sslmode=disable"),
			MaxConns:     iconfig.GetEnvInt("COURTSIDE_DB_MAX_CONNS", 16),
			QueryTimeout: iconfig.GetEnvDuration("COURTSIDE_QUERY_TIMEOUT", 15*time.Second),
		},
		LLM: LLMConfig{
			BaseURL:        iconfig.GetEnvWithFallback("COURTSIDE_LLM_URL", "OPENAI_BASE_URL", "https://api.openai.com/v1"),
			APIKey:         iconfig.GetEnvWithFallback("COURTSIDE_LLM_API_KEY", "OPENAI_API_KEY", ""),
			Model:          iconfig.GetEnv("COURTSIDE_LLM_MODEL", "gpt-4o"),
			FastModel:      iconfig.GetEnv("COURTSIDE_LLM_FAST_MODEL", "gpt-4o-mini"),
			EmbeddingModel: iconfig.GetEnv("COURTSIDE_EMBEDDING_MODEL", "text-embedding-3-small"),
			MaxTokens:      iconfig.GetEnvInt("COURTSIDE_LLM_MAX_TOKENS", 2048),
		},
		Scores: ScoresConfig{
			TTL: iconfig.GetEnvDuration("COURTSIDE_SCORES_TTL", 120*time.Second),
		},
		Otel: OtelConfig{
			Endpoint:    iconfig.GetEnvWithFallback("COURTSIDE_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Environment: iconfig.GetEnvWithFallback("COURTSIDE_ENVIRONMENT", "ENVIRONMENT", "development"),
		},
	}
}
