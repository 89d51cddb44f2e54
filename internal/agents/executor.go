package agents

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/models"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/observability"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/tools"
)

type Executor interface {
	Execute(ctx context.Context, id models.ToolID, query string) (*models.Result, error)
}

// ToolExecutor dispatches to the registry and applies each entry's failure
// policy. A registry miss is returned as models.ErrUnknownTool.
type ToolExecutor struct {
	Registry *tools.Registry
}

func (e *ToolExecutor) Execute(ctx context.Context, id models.ToolID, query string) (*models.Result, error) {
	entry, err := e.Registry.Lookup(id)
	if err != nil {
		observability.RecordToolInvocation(string(id), "unknown")
		return nil, err
	}
	log := zerolog.Ctx(ctx).With().Str("tool", string(id)).Logger()

	output, err := entry.Tool.Execute(ctx, query)
	if err == nil {
		observability.RecordToolInvocation(string(id), "success")
		return &models.Result{ToolID: id, Output: output}, nil
	}

	var te *tools.Error
	if entry.OnFailure == tools.DegradeToText && errors.As(err, &te) && te.Degradable() {
		observability.RecordToolInvocation(string(id), "degraded")
		log.Warn().Err(err).Str("kind", string(te.Kind)).Msg("tool failed, continuing with fallback text")
		return &models.Result{ToolID: id, Output: te.Fallback, Degraded: true}, nil
	}
	observability.RecordToolInvocation(string(id), "error")
	log.Error().Err(err).Str("kind", string(tools.KindOf(err))).Msg("tool failed")
	return nil, err
}
