package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/models"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/observability"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/providers/llm"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/tools"
)

// LLMRouter asks the model for a single category label. The label is returned
// as-is after trimming; an unknown label fails later at registry lookup.
type LLMRouter struct {
	Client      llm.Client
	Registry    *tools.Registry
	Temperature float32
}

func (r *LLMRouter) Route(ctx context.Context, query string) (models.ToolID, error) {
	if query == "" {
		return "", ErrEmptyQuery
	}
	raw, err := r.Client.Generate(ctx, llm.Request{
		Prompt:      buildRoutePrompt(r.Registry.Entries(), query),
		Temperature: r.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("classify query: %w", err)
	}
	id := models.ToolID(normalizeLabel(raw))
	observability.RecordRoute("llm", string(id))
	zerolog.Ctx(ctx).Debug().Str("policy", "llm").Str("raw", raw).Str("tool", string(id)).Msg("query routed")
	return id, nil
}

func buildRoutePrompt(entries []tools.Entry, query string) string {
	var b strings.Builder
	b.WriteString("Classify this golf-related query into one of the following categories:\n")
	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "- %q: %s\n", string(e.ID), e.Description)
		labels = append(labels, string(e.ID))
	}
	b.WriteString("\nRespond with just one word: ")
	if n := len(labels); n > 1 {
		b.WriteString(strings.Join(labels[:n-1], ", ") + ", or " + labels[n-1])
	} else {
		b.WriteString(strings.Join(labels, ""))
	}
	fmt.Fprintf(&b, ".\n\nQuery: \"%s\" ", query)
	return b.String()
}

// normalizeLabel strips whitespace, surrounding quotes or backticks and a
// trailing period from a one-word reply.
func normalizeLabel(s string) string {
	t := strings.TrimSpace(s)
	t = strings.TrimSuffix(t, ".")
	t = strings.Trim(t, "\"'`")
	return strings.TrimSpace(t)
}
