package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

var ErrNoProvider = errors.New("llm: no provider configured; set LLM_PROVIDER or a provider API key")

// Settings selects and configures a provider. Keys holds the API key per
// provider name so an empty Provider can be auto-detected. BaseURL applies to
// the OpenAI-compatible provider only.
type Settings struct {
	Provider string
	Model    string
	BaseURL  string
	Keys     map[string]string
}

// DefaultModel returns the chat model used when LLM_MODEL is unset.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4"
	case ProviderAnthropic:
		return "claude-3-5-sonnet-latest"
	case ProviderGemini:
		return "gemini-1.5-flash"
	}
	return ""
}

// ResolveProvider returns the explicit provider or, when empty, the first of
// openai, anthropic, gemini that has a key. The mock is never auto-selected.
func ResolveProvider(s Settings) (string, error) {
	prov := strings.ToLower(strings.TrimSpace(s.Provider))
	switch prov {
	case ProviderMock:
		return prov, nil
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
		if strings.TrimSpace(s.Keys[prov]) == "" {
			return "", fmt.Errorf("llm: provider %q selected but its API key is empty", prov)
		}
		return prov, nil
	case "":
		for _, p := range []string{ProviderOpenAI, ProviderAnthropic, ProviderGemini} {
			if strings.TrimSpace(s.Keys[p]) != "" {
				return p, nil
			}
		}
		return "", ErrNoProvider
	}
	return "", fmt.Errorf("llm: unknown provider %q", s.Provider)
}

// NewClient builds the chat client for the resolved provider.
func NewClient(ctx context.Context, s Settings) (Client, error) {
	prov, err := ResolveProvider(s)
	if err != nil {
		return nil, err
	}
	model := strings.TrimSpace(s.Model)
	if model == "" {
		model = DefaultModel(prov)
	}
	key := strings.TrimSpace(s.Keys[prov])
	switch prov {
	case ProviderOpenAI:
		return NewOpenAIClient(key, s.BaseURL, model), nil
	case ProviderAnthropic:
		return NewAnthropicClient(key, "", model), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, key, model)
	default:
		return &MockClient{}, nil
	}
}

// EmbedSettings configures the embedding backend.
type EmbedSettings struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
}

func NewEmbedder(ctx context.Context, s EmbedSettings) (Embedder, error) {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "", ProviderOpenAI:
		if s.APIKey == "" && s.BaseURL == "" {
			return nil, errors.New("llm: embeddings need EMBEDDING_API_KEY or EMBEDDING_API_BASE")
		}
		return NewOpenAIEmbedder(s.APIKey, s.BaseURL, s.Model), nil
	case ProviderGemini:
		if s.APIKey == "" {
			return nil, errors.New("llm: gemini embeddings need an API key")
		}
		return NewGeminiEmbedder(ctx, s.APIKey, s.Model)
	case ProviderMock:
		return &MockEmbedder{}, nil
	}
	return nil, fmt.Errorf("llm: unknown embedding provider %q", s.Provider)
}
