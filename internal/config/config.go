package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/providers/llm"
)

const (
	RouterLLM       = "llm"
	RouterHeuristic = "heuristic"
)

// Config holds all configuration for the golf agent service
type Config struct {
	// Server configuration
	Port           string   `envconfig:"PORT" default:"8080"`
	Environment    string   `envconfig:"ENVIRONMENT" default:"development"`
	StaticDir      string   `envconfig:"STATIC_DIR" default:"static"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`

	RouterPolicy string `envconfig:"ROUTER_POLICY" default:"llm"` // llm or heuristic

	// Text generation
	LLMProvider     string  `envconfig:"LLM_PROVIDER"` // empty: detect from keys
	LLMModel        string  `envconfig:"LLM_MODEL"`
	LLMTemperature  float32 `envconfig:"LLM_TEMPERATURE" default:"0.3"`
	OpenAIAPIKey    string  `envconfig:"OPENAI_API_KEY"`
	OpenAIAPIBase   string  `envconfig:"OPENAI_API_BASE"`
	AnthropicAPIKey string  `envconfig:"ANTHROPIC_API_KEY"`
	GoogleAPIKey    string  `envconfig:"GOOGLE_API_KEY"`

	// Embeddings for shot recommendations
	EmbeddingProvider string `envconfig:"EMBEDDING_PROVIDER" default:"openai"`
	EmbeddingModel    string `envconfig:"EMBEDDING_MODEL" default:"thenlper/gte-small"`
	EmbeddingAPIBase  string `envconfig:"EMBEDDING_API_BASE"`
	EmbeddingAPIKey   string `envconfig:"EMBEDDING_API_KEY"` // falls back to OPENAI_API_KEY

	// Qdrant vector store
	QdrantHost       string `envconfig:"QDRANT_HOST" required:"true"`
	QdrantPort       int    `envconfig:"QDRANT_PORT" default:"6334"`
	QdrantAPIKey     string `envconfig:"QDRANT_API_KEY" required:"true"`
	QdrantUseTLS     bool   `envconfig:"QDRANT_USE_TLS" default:"true"`
	QdrantCollection string `envconfig:"QDRANT_COLLECTION_NAME" default:"golf_shot_vectors"`

	// External HTTP APIs
	GolfCourseAPIKey  string        `envconfig:"GOLFCOURSE_API_KEY" default:"fake-api-key"`
	GolfCourseAPIURL  string        `envconfig:"GOLFCOURSE_API_URL" default:"https://api.golfcourseapi.com/v1"`
	TavilyAPIKey      string        `envconfig:"TAVILY_API_KEY" required:"true"`
	TavilyAPIURL      string        `envconfig:"TAVILY_API_URL" default:"https://api.tavily.com"`
	HTTPClientTimeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"30s"`

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"false"`
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load reads configuration from environment variables
// It first attempts to load from .env file if it exists, then from environment
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFromEnv()
}

// LoadFromEnv loads configuration directly from environment variables
// without attempting to load .env file (useful for containerized deployments)
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field rules envconfig cannot express.
func (c *Config) Validate() error {
	// envconfig accepts a required variable that is set but empty
	for name, v := range map[string]string{
		"QDRANT_HOST":    c.QdrantHost,
		"QDRANT_API_KEY": c.QdrantAPIKey,
		"TAVILY_API_KEY": c.TavilyAPIKey,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	switch c.RouterPolicy {
	case RouterLLM, RouterHeuristic:
	default:
		return fmt.Errorf("ROUTER_POLICY must be %q or %q, got %q", RouterLLM, RouterHeuristic, c.RouterPolicy)
	}
	if _, err := llm.ResolveProvider(c.LLM()); err != nil {
		return err
	}
	if c.HTTPClientTimeout <= 0 {
		return fmt.Errorf("HTTP_CLIENT_TIMEOUT must be positive")
	}
	return nil
}

// IsProduction reports whether the built frontend should be served.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c *Config) LLM() llm.Settings {
	return llm.Settings{
		Provider: c.LLMProvider,
		Model:    c.LLMModel,
		BaseURL:  c.OpenAIAPIBase,
		Keys: map[string]string{
			llm.ProviderOpenAI:    c.OpenAIAPIKey,
			llm.ProviderAnthropic: c.AnthropicAPIKey,
			llm.ProviderGemini:    c.GoogleAPIKey,
		},
	}
}

func (c *Config) Embedding() llm.EmbedSettings {
	key := c.EmbeddingAPIKey
	if key == "" {
		switch c.EmbeddingProvider {
		case llm.ProviderGemini:
			key = c.GoogleAPIKey
		default:
			key = c.OpenAIAPIKey
		}
	}
	return llm.EmbedSettings{
		Provider: c.EmbeddingProvider,
		Model:    c.EmbeddingModel,
		BaseURL:  c.EmbeddingAPIBase,
		APIKey:   key,
	}
}
