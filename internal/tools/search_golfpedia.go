package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/models"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/providers/tavily"
)

// NoSummaryAvailable is returned when the search produced neither an answer
// nor any results.
const NoSummaryAvailable = "No summary available for this query."

const maxSearchResults = 5

type WebSearcher interface {
	Search(ctx context.Context, query string) (*tavily.Response, error)
}

// SearchGolfpediaTool answers general golf questions from a web search.
// Search failures abort the request.
type SearchGolfpediaTool struct {
	Searcher WebSearcher
}

func (t *SearchGolfpediaTool) ID() models.ToolID { return models.ToolSearchGolfpedia }

func (t *SearchGolfpediaTool) Execute(ctx context.Context, query string) (string, error) {
	zerolog.Ctx(ctx).Debug().Str("tool", string(t.ID())).Str("query", query).Msg("tool called")

	res, err := t.Searcher.Search(ctx, query)
	if err != nil {
		return "", newError(t.ID(), KindTransport, err)
	}
	if res == nil {
		return NoSummaryAvailable, nil
	}
	if res.Answer != nil {
		return *res.Answer, nil
	}
	if len(res.Results) == 0 {
		return NoSummaryAvailable, nil
	}

	items := res.Results
	if len(items) > maxSearchResults {
		items = items[:maxSearchResults]
	}
	lines := make([]string, 0, len(items))
	for i, r := range items {
		lines = append(lines, fmt.Sprintf("%d. %s\n   %s\n   Source: %s", i+1, htmlToText(r.Title), htmlToText(r.Content), r.URL))
	}
	return strings.Join(lines, "\n"), nil
}
