package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/agents"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/api"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/config"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/models"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/observability"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/orchestrator"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/providers/golfcourse"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/providers/llm"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/providers/tavily"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/providers/vectorstore"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/tools"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.GetLogger().Fatal().Err(err).Msg("invalid configuration")
	}
	observability.InitLogger(cfg.LogLevel, cfg.LogPretty)
	logger := observability.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := build(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("startup failed")
	}
	defer app.close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Str("router", cfg.RouterPolicy).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		app.close()
		os.Exit(1)
	}
}

type services struct {
	handler http.Handler
	closers []func() error
}

func (a *services) close() {
	for _, c := range a.closers {
		_ = c()
	}
	a.closers = nil
}

// build constructs every client up front and wires the pipeline.
func build(ctx context.Context, cfg *config.Config) (*services, error) {
	a := &services{}
	logger := observability.GetLogger()

	client, err := llm.NewClient(ctx, cfg.LLM())
	if err != nil {
		return nil, err
	}
	if c, ok := client.(interface{ Close() error }); ok {
		a.closers = append(a.closers, c.Close)
	}
	embedder, err := llm.NewEmbedder(ctx, cfg.Embedding())
	if err != nil {
		a.close()
		return nil, err
	}
	if c, ok := embedder.(interface{ Close() error }); ok {
		a.closers = append(a.closers, c.Close)
	}
	index, err := vectorstore.NewQdrant(vectorstore.Config{
		Host:       cfg.QdrantHost,
		Port:       cfg.QdrantPort,
		APIKey:     cfg.QdrantAPIKey,
		UseTLS:     cfg.QdrantUseTLS,
		Collection: cfg.QdrantCollection,
	})
	if err != nil {
		a.close()
		return nil, err
	}
	a.closers = append(a.closers, index.Close)

	search, err := tavily.New(cfg.TavilyAPIKey, cfg.TavilyAPIURL, cfg.HTTPClientTimeout)
	if err != nil {
		a.close()
		return nil, err
	}
	stats, err := tools.NewProStatsTool()
	if err != nil {
		a.close()
		return nil, err
	}

	registry, err := tools.NewRegistry(
		tools.Entry{
			ID:          models.ToolProStats,
			Tool:        stats,
			Description: "if it compares or asks about player stats",
		},
		tools.Entry{
			ID:          models.ToolCourseInsights,
			Tool:        &tools.CourseInsightsTool{API: golfcourse.New(cfg.GolfCourseAPIKey, cfg.GolfCourseAPIURL, cfg.HTTPClientTimeout)},
			Description: "if it's asking about a specific golf course",
			OnFailure:   tools.DegradeToText,
		},
		tools.Entry{
			ID: models.ToolShotRecommendations,
			Tool: &tools.ShotRecommendationsTool{
				LLM:            client,
				Embedder:       embedder,
				Index:          index,
				EmbeddingModel: cfg.EmbeddingModel,
			},
			Description: "if it's asking about club selection, shot technique, or avoiding certain shot patterns",
		},
		tools.Entry{
			ID:          models.ToolSearchGolfpedia,
			Tool:        &tools.SearchGolfpediaTool{Searcher: search},
			Description: "for all other general golf knowledge",
		},
	)
	if err != nil {
		a.close()
		return nil, err
	}

	var router agents.Router = agents.HeuristicRouter{}
	if cfg.RouterPolicy == config.RouterLLM {
		router = &agents.LLMRouter{Client: client, Registry: registry, Temperature: cfg.LLMTemperature}
	}
	orch := orchestrator.New(
		router,
		&agents.ToolExecutor{Registry: registry},
		&agents.LLMSummarizer{Client: client, Temperature: cfg.LLMTemperature},
	)

	opts := api.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		MetricsEnabled: cfg.MetricsEnabled,
	}
	if cfg.IsProduction() {
		opts.StaticDir = cfg.StaticDir
	}
	a.handler = api.NewServer(orch, registry, opts).Handler()

	for _, e := range registry.Entries() {
		logger.Debug().Str("tool", string(e.ID)).Str("on_failure", e.OnFailure.String()).Msg("tool registered")
	}
	return a, nil
}
