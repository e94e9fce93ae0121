package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mahendramedapati27/unimatch/internal/config"
	"github.com/mahendramedapati27/unimatch/internal/db"
	"github.com/mahendramedapati27/unimatch/internal/db/memory"
	"github.com/mahendramedapati27/unimatch/internal/db/qdrant"
	dbValkey "github.com/mahendramedapati27/unimatch/internal/db/valkey"
	"github.com/mahendramedapati27/unimatch/internal/domain"
	logpkg "github.com/mahendramedapati27/unimatch/internal/logger"
	"github.com/mahendramedapati27/unimatch/internal/metrics"
	"github.com/mahendramedapati27/unimatch/internal/observability"
	"github.com/mahendramedapati27/unimatch/internal/repository/embcache"
	"github.com/mahendramedapati27/unimatch/internal/repository/program"
	openaiTransport "github.com/mahendramedapati27/unimatch/internal/transport/openai"
	"github.com/mahendramedapati27/unimatch/internal/usecase/advice"
	embeddinguc "github.com/mahendramedapati27/unimatch/internal/usecase/embedding"
	healthuc "github.com/mahendramedapati27/unimatch/internal/usecase/health"
	"github.com/mahendramedapati27/unimatch/internal/usecase/pipeline"
	"github.com/mahendramedapati27/unimatch/internal/usecase/ranking"
	"github.com/mahendramedapati27/unimatch/internal/usecase/search"
	"github.com/mahendramedapati27/unimatch/internal/usecase/verify"
	"github.com/mahendramedapati27/unimatch/internal/version"
)

// app is the wired object graph shared by serve and recommend.
type app struct {
	cfg      config.Config
	env      string
	logger   *zap.Logger
	pipeline *pipeline.Pipeline
	search   *search.Orchestrator
	health   *healthuc.Service
	closers  []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

func loadConfig(path string) (config.Config, string, error) {
	env := config.GetEnv()
	if path != "" {
		cfg, err := config.LoadFile(path)
		return cfg, env, err
	}
	cfg, err := config.Load(env)
	return cfg, env, err
}

// newApp is the composition root.
func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, env, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	a := &app{cfg: cfg, env: env, logger: logger}

	tp, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:    "unimatch",
		ServiceVersion: version.Version,
		Environment:    env,
		OTLPEndpoint:   cfg.Tracing.OTLPEndpoint,
		SampleRate:     cfg.Tracing.SampleRate,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	a.closers = append(a.closers, func() error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return tp.Shutdown(shutdownCtx)
	})

	metrics.Register()

	index, err := openIndex(ctx, cfg.Vector, cfg.Embedding.Dimensions)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, index.Close)
	logger.Info("Connected to vector index",
		zap.String("driver", cfg.Vector.Driver),
		zap.String("collection", cfg.Vector.Collection),
	)

	var cache *dbValkey.Store
	if cfg.Cache.Enabled {
		cache, err = dbValkey.NewStore(dbValkey.Config{Addrs: cfg.Cache.Addrs, Password: cfg.Cache.Password})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("create cache store: %w", err)
		}
		a.closers = append(a.closers, func() error { cache.Close(); return nil })
	}

	base := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   "openai",
		Logger:     logger,
	})
	embedder := buildEmbedder(base, cache, cfg, logger)

	var generator domain.Generator
	var generationHealth healthuc.ProviderChecker
	if cfg.Generation.Enabled {
		gen := openaiTransport.NewGenerator(&openaiTransport.GeneratorConfig{
			Config: openaiTransport.Config{
				APIKey:   cfg.Generation.APIKey,
				BaseURL:  cfg.Generation.BaseURL,
				Model:    cfg.Generation.Model,
				Provider: cfg.Generation.Provider,
				Logger:   logger,
			},
			Temperature: cfg.Generation.Temperature,
			MaxTokens:   cfg.Generation.MaxTokens,
			Timeout:     time.Duration(cfg.Generation.TimeoutSec) * time.Second,
		})
		generator, generationHealth = gen, gen
	}

	a.search = search.New(
		program.New(index, cfg.Vector.Collection),
		embedder,
		search.WithLimit(cfg.Search.Limit),
		search.WithMinResults(cfg.Search.MinResults),
		search.WithLogger(logger.Named("search")),
	)
	a.pipeline = pipeline.New(
		a.search,
		ranking.New(rankingConfig(cfg.Ranking), logger.Named("ranking")),
		advice.New(generator, logger.Named("advice")),
		verify.New(),
	)

	var healthOpts []healthuc.Option
	if generationHealth != nil {
		healthOpts = append(healthOpts, healthuc.WithGeneration(generationHealth))
	}
	if cache != nil {
		healthOpts = append(healthOpts, healthuc.WithCache(cache))
	}
	a.health = healthuc.New(index, base, healthOpts...)

	return a, nil
}

func openIndex(ctx context.Context, cfg config.VectorConfig, dims int) (db.VectorIndex, error) {
	var (
		index db.VectorIndex
		err   error
	)
	switch cfg.Driver {
	case "qdrant":
		index, err = qdrant.New(qdrant.Config{Host: cfg.Host, Port: cfg.Port, APIKey: cfg.APIKey})
	case "memory":
		index, err = memory.New(dims)
	default:
		err = fmt.Errorf("unknown vector driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create vector index: %w", err)
	}

	if err := index.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		return nil, errors.Join(fmt.Errorf("vector index not ready: %w", err), index.Close())
	}
	return index, nil
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented -> Instruction
func buildEmbedder(base domain.Embedder, cache *dbValkey.Store, cfg config.Config, logger *zap.Logger) domain.Embedder {
	embedder := base
	if cache != nil {
		embedder = embcache.New(base, cache, embcache.Config{
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			TTL:        time.Duration(cfg.Cache.TTLHours) * time.Hour,
			Lookups:    metrics.EmbeddingCacheTotal,
		}, logger.Named("embcache"))
	}

	embedder = embeddinguc.NewInstrumentedEmbedder(
		embedder, "openai", cfg.Embedding.Model, cfg.Embedding.Dimensions, logger,
	)

	// Instruction prefix is outermost so the cache key includes it.
	return domain.NewInstructionEmbedder(embedder, cfg.Embedding.QueryInstruction)
}

func rankingConfig(rc config.RankingConfig) ranking.Config {
	return ranking.Config{
		SimilarityWeight: rc.SimilarityWeight,
		FinancialWeight:  rc.FinancialWeight,
		AcademicWeight:   rc.AcademicWeight,
		ReachBelow:       rc.ReachBelow,
		SafetyFrom:       rc.SafetyFrom,
		PromoteAt:        rc.PromoteAt,
		DemoteAt:         rc.DemoteAt,
		ReachShare:       rc.ReachShare,
		TargetShare:      rc.TargetShare,
		SafetyShare:      rc.SafetyShare,
		ShortlistSize:    rc.ShortlistSize,
		MinTotal:         rc.MinTotal,
	}
}
