package agents

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/models"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/observability"
)

// ErrEmptyQuery is returned by every router for an empty query. Whitespace
// is routed like any other text.
var ErrEmptyQuery = errors.New("query is required")

// Router picks exactly one tool for a query.
type Router interface {
	Route(ctx context.Context, query string) (models.ToolID, error)
}

// HeuristicRouter is a keyword-based router. It never selects the shot
// recommendation tool.
type HeuristicRouter struct{}

func (HeuristicRouter) Route(ctx context.Context, query string) (models.ToolID, error) {
	if query == "" {
		return "", ErrEmptyQuery
	}
	q := strings.ToLower(query)
	id := models.ToolSearchGolfpedia
	switch {
	case strings.Contains(q, "stat") || strings.Contains(q, "compare"):
		id = models.ToolProStats
	case strings.Contains(q, "course") || strings.Contains(q, "yardage"):
		id = models.ToolCourseInsights
	}
	observability.RecordRoute("heuristic", string(id))
	zerolog.Ctx(ctx).Debug().Str("policy", "heuristic").Str("tool", string(id)).Msg("query routed")
	return id, nil
}
