package orchestrator

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/agents"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/models"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/observability"
)

// PipelineError is returned when a run ends in FAILED. From is the last stage
// reached before the failure. Its message is the underlying error's.
type PipelineError struct {
	From models.Stage
	Err  error
}

func (e *PipelineError) Error() string { return e.Err.Error() }

func (e *PipelineError) Unwrap() error { return e.Err }

// Orchestrator drives one query through route, tool and summarize. It holds
// no per-request state and is safe for concurrent use.
type Orchestrator struct {
	Router     agents.Router
	Executor   agents.Executor
	Summarizer agents.Summarizer
}

func New(router agents.Router, executor agents.Executor, summarizer agents.Summarizer) *Orchestrator {
	return &Orchestrator{Router: router, Executor: executor, Summarizer: summarizer}
}

// Run executes the pipeline for query. The returned state is always non-nil
// and terminal. On failure the error is a *PipelineError.
func (o *Orchestrator) Run(ctx context.Context, requestID, query string) (*models.PipelineState, error) {
	st := models.NewPipelineState(requestID, query)
	log := zerolog.Ctx(ctx)
	log.Info().Str("query", query).Msg("pipeline started")

	start := time.Now()
	id, err := o.Router.Route(ctx, query)
	observability.ObserveStage("route", start)
	if err != nil {
		return o.fail(ctx, st, err)
	}
	st.ToolID = id
	st.Stage = models.StageRouted

	start = time.Now()
	res, err := o.Executor.Execute(ctx, id, query)
	observability.ObserveStage("tool", start)
	if err != nil {
		return o.fail(ctx, st, err)
	}
	st.ToolResult = &res.Output
	st.Stage = models.StageToolExecuted
	log.Debug().Str("tool", string(id)).Bool("degraded", res.Degraded).Int("bytes", len(res.Output)).Msg("tool executed")

	start = time.Now()
	answer, err := o.Summarizer.Summarize(ctx, query, res.Output)
	observability.ObserveStage("summarize", start)
	if err != nil {
		return o.fail(ctx, st, err)
	}
	st.FinalResponse = &answer
	st.Stage = models.StageSummarized

	observability.RecordRequest("success")
	log.Info().Str("tool", string(id)).Msg("pipeline completed")
	return st, nil
}

func (o *Orchestrator) fail(ctx context.Context, st *models.PipelineState, err error) (*models.PipelineState, error) {
	perr := &PipelineError{From: st.Stage, Err: err}
	st.Stage = models.StageFailed
	st.Error = err.Error()
	observability.RecordRequest("error")
	zerolog.Ctx(ctx).Error().Err(err).Str("from", string(perr.From)).Msg("pipeline failed")
	return st, perr
}
