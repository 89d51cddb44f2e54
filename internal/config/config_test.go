package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("QDRANT_HOST", "qdrant.local")
	t.Setenv("QDRANT_API_KEY", "q-key")
	t.Setenv("TAVILY_API_KEY", "t-key")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoadFromEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, RouterLLM, cfg.RouterPolicy)
	assert.InDelta(t, 0.3, cfg.LLMTemperature, 1e-6)
	assert.Equal(t, "thenlper/gte-small", cfg.EmbeddingModel)
	assert.Equal(t, 6334, cfg.QdrantPort)
	assert.True(t, cfg.QdrantUseTLS)
	assert.Equal(t, "golf_shot_vectors", cfg.QdrantCollection)
	assert.Equal(t, "fake-api-key", cfg.GolfCourseAPIKey)
	assert.Equal(t, 30*time.Second, cfg.HTTPClientTimeout)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoadFromEnvMissingRequired(t *testing.T) {
	t.Setenv("QDRANT_HOST", "")
	t.Setenv("QDRANT_API_KEY", "")
	t.Setenv("TAVILY_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("ROUTER_POLICY", "heuristic")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "5s")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, RouterHeuristic, cfg.RouterPolicy)
	assert.Equal(t, 5*time.Second, cfg.HTTPClientTimeout)
}

func TestValidate(t *testing.T) {
	setRequired(t)

	t.Run("bad router policy", func(t *testing.T) {
		t.Setenv("ROUTER_POLICY", "random")
		_, err := LoadFromEnv()
		assert.ErrorContains(t, err, "ROUTER_POLICY")
	})

	t.Run("no llm provider", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("ANTHROPIC_API_KEY", "")
		t.Setenv("GOOGLE_API_KEY", "")
		t.Setenv("LLM_PROVIDER", "")
		_, err := LoadFromEnv()
		assert.Error(t, err)
	})

	t.Run("explicit mock needs no keys", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("LLM_PROVIDER", "mock")
		_, err := LoadFromEnv()
		assert.NoError(t, err)
	})
}

func TestEmbeddingKeyFallback(t *testing.T) {
	cfg := &Config{EmbeddingProvider: "openai", OpenAIAPIKey: "sk-1", GoogleAPIKey: "g-1"}
	assert.Equal(t, "sk-1", cfg.Embedding().APIKey)

	cfg.EmbeddingProvider = "gemini"
	assert.Equal(t, "g-1", cfg.Embedding().APIKey)

	cfg.EmbeddingAPIKey = "e-1"
	assert.Equal(t, "e-1", cfg.Embedding().APIKey)
}
