package llm

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProvider(t *testing.T) {
	keys := map[string]string{ProviderAnthropic: "a", ProviderGemini: "g"}

	p, err := ResolveProvider(Settings{Keys: keys})
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, p)

	p, err = ResolveProvider(Settings{Provider: " Gemini ", Keys: keys})
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, p)

	_, err = ResolveProvider(Settings{Provider: "openai", Keys: keys})
	assert.Error(t, err)

	_, err = ResolveProvider(Settings{})
	assert.ErrorIs(t, err, ErrNoProvider)

	p, err = ResolveProvider(Settings{Provider: "mock"})
	require.NoError(t, err)
	assert.Equal(t, ProviderMock, p)

	_, err = ResolveProvider(Settings{Provider: "llama"})
	assert.Error(t, err)
}

func TestDefaultModel(t *testing.T) {
	assert.Equal(t, "gpt-4", DefaultModel(ProviderOpenAI))
	assert.Equal(t, "claude-3-5-sonnet-latest", DefaultModel(ProviderAnthropic))
	assert.Equal(t, "gemini-1.5-flash", DefaultModel(ProviderGemini))
}

func TestNewClientSelectsProvider(t *testing.T) {
	c, err := NewClient(context.Background(), Settings{Keys: map[string]string{ProviderOpenAI: "sk"}})
	require.NoError(t, err)
	oc, ok := c.(*OpenAIClient)
	require.True(t, ok)
	assert.Equal(t, "gpt-4", oc.model)

	c, err = NewClient(context.Background(), Settings{Provider: "anthropic", Model: "claude-x", Keys: map[string]string{ProviderAnthropic: "k"}})
	require.NoError(t, err)
	assert.IsType(t, &AnthropicClient{}, c)

	c, err = NewClient(context.Background(), Settings{Provider: "mock"})
	require.NoError(t, err)
	assert.IsType(t, &MockClient{}, c)
}

func TestNewEmbedder(t *testing.T) {
	e, err := NewEmbedder(context.Background(), EmbedSettings{Model: "thenlper/gte-small", BaseURL: "http://localhost:8081/v1"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIEmbedder{}, e)

	_, err = NewEmbedder(context.Background(), EmbedSettings{Provider: "openai"})
	assert.Error(t, err)

	_, err = NewEmbedder(context.Background(), EmbedSettings{Provider: "gemini"})
	assert.Error(t, err)

	_, err = NewEmbedder(context.Background(), EmbedSettings{Provider: "word2vec"})
	assert.Error(t, err)
}

func TestOpenAIClientAgainstCompatibleServer(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/chat/completions":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"search_golfpedia"},"finish_reason":"stop"}]}`))
		case "/v1/embeddings":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.5,0.25]}],"model":"gte"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewOpenAIClient("sk", srv.URL+"/v1/", "gpt-4")
	out, err := c.Generate(context.Background(), Request{System: "sys", Prompt: "hi", Temperature: 0})
	require.NoError(t, err)
	assert.Equal(t, "search_golfpedia", out)

	msgs := body["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Contains(t, body, "temperature")

	e := NewOpenAIEmbedder("", srv.URL+"/v1", "gte")
	vec, err := e.Embed(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.25}, vec)
}

func TestMockClient(t *testing.T) {
	m := &MockClient{}
	ctx := context.Background()

	out, err := m.Generate(ctx, Request{Prompt: "Classify this golf-related query into one of the following categories:\n...\nQuery: \"Compare Rahm and Scheffler\" "})
	require.NoError(t, err)
	assert.Equal(t, "get_pro_stats", out)

	out, err = m.Generate(ctx, Request{System: "You are a golf shot planner assistant.", Prompt: "Query: fix my slice"})
	require.NoError(t, err)
	var intent map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &intent))
	assert.Contains(t, intent, "club")

	out, err = m.Generate(ctx, Request{Prompt: "You are a golf research assistant. Here is the tool result:\n\nPar is 72.\n\nPlease summarize the answer"})
	require.NoError(t, err)
	assert.Equal(t, "Par is 72.", out)
}

func TestMockEmbedderIsDeterministicUnitVector(t *testing.T) {
	e := &MockEmbedder{}
	a, err := e.Embed(context.Background(), "avoid a hook with a 7 iron")
	require.NoError(t, err)
	b, _ := e.Embed(context.Background(), "avoid a hook with a 7 iron")
	assert.Equal(t, a, b)
	assert.Len(t, a, 384)

	var norm float64
	for _, v := range a {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
}
