package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/models"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/providers/llm"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/providers/vectorstore"
)

const (
	NoShotRecommendations = "No relevant shot recommendations found."

	shotSearchLimit = 5

	shotIntentPrompt = "You are a golf shot planner assistant. " +
		"Given a golfer's query, extract the structured intent behind the shot.\n\n" +
		"Respond in JSON with:\n" +
		"- distance (number or 'unknown')\n" +
		"- intent ('avoid' or 'achieve')\n" +
		"- shape (or 'unknown')\n" +
		"- club (or 'unknown')"
)

var shotIntentFields = []string{"distance", "intent", "shape", "club"}

// ShotRecommendationsTool rewrites the query into a shot description, embeds
// it and returns the closest stored recommendations.
type ShotRecommendationsTool struct {
	LLM            llm.Client
	Embedder       llm.Embedder
	Index          vectorstore.Searcher
	EmbeddingModel string
}

func (t *ShotRecommendationsTool) ID() models.ToolID { return models.ToolShotRecommendations }

func (t *ShotRecommendationsTool) Execute(ctx context.Context, query string) (string, error) {
	log := zerolog.Ctx(ctx).With().Str("tool", string(t.ID())).Logger()
	log.Debug().Str("query", query).Msg("tool called")

	sentence, err := t.describeShot(ctx, query)
	if err != nil {
		return "", err
	}
	log.Debug().Str("search", sentence).Msg("shot intent rendered")

	vec, err := t.Embedder.Embed(ctx, sentence)
	if err != nil {
		return "", newError(t.ID(), KindTransport, fmt.Errorf("embed query: %w", err))
	}

	hits, err := t.Index.Search(ctx, vec, shotSearchLimit)
	if err != nil {
		if errors.Is(err, vectorstore.ErrDimensionMismatch) {
			return "", newError(t.ID(), KindConfig, fmt.Errorf(
				"the embedding model (%s) produces vectors of a different dimension than the collection expects; "+
					"check EMBEDDING_MODEL against the model used to build the collection: %w", t.EmbeddingModel, err))
		}
		return "", newError(t.ID(), KindTransport, err)
	}
	if len(hits) == 0 {
		return NoShotRecommendations, nil
	}
	lines := make([]string, 0, len(hits))
	for _, h := range hits {
		lines = append(lines, fmt.Sprintf("Score: %.4f | %s", h.Score, h.Text))
	}
	return strings.Join(lines, "\n"), nil
}

func (t *ShotRecommendationsTool) describeShot(ctx context.Context, query string) (string, error) {
	raw, err := t.LLM.Generate(ctx, llm.Request{
		System: shotIntentPrompt,
		Prompt: "Query: " + query,
	})
	if err != nil {
		return "", newError(t.ID(), KindTransport, fmt.Errorf("extract shot intent: %w", err))
	}
	intent, err := parseShotIntent(raw)
	if err != nil {
		return "", newError(t.ID(), KindMalformed, err)
	}
	return fmt.Sprintf("The golfer is planning a %s-yard shot and wants to %s a %s using %s.",
		intent["distance"], intent["intent"], intent["shape"], intent["club"]), nil
}

// parseShotIntent decodes the extractor's reply into display strings. Every
// field must be present.
func parseShotIntent(raw string) (map[string]string, error) {
	dec := json.NewDecoder(strings.NewReader(stripCodeFence(raw)))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("failed to parse shot intent as JSON: %w", err)
	}
	out := make(map[string]string, len(shotIntentFields))
	for _, f := range shotIntentFields {
		v, ok := obj[f]
		if !ok {
			return nil, fmt.Errorf("shot intent missing %q", f)
		}
		switch x := v.(type) {
		case nil:
			out[f] = "unknown"
		case string:
			out[f] = x
		case json.Number:
			out[f] = x.String()
		default:
			out[f] = fmt.Sprint(x)
		}
	}
	return out, nil
}

// stripCodeFence removes a surrounding ```json fence if the model added one.
func stripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if idx := strings.IndexByte(t, '\n'); idx != -1 {
		t = t[idx+1:]
	}
	if j := strings.LastIndex(t, "```"); j != -1 {
		t = t[:j]
	}
	return strings.TrimSpace(t)
}
