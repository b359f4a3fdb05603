package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/FACorreiaa/frota-docs/internal/domain/audit"
	"github.com/FACorreiaa/frota-docs/internal/domain/extract"
	"github.com/FACorreiaa/frota-docs/internal/domain/process"
	"github.com/FACorreiaa/frota-docs/internal/domain/registry"
	"github.com/FACorreiaa/frota-docs/internal/domain/resolve"
	"github.com/FACorreiaa/frota-docs/internal/observability"
	"github.com/FACorreiaa/frota-docs/internal/oracle"
	"github.com/FACorreiaa/frota-docs/pkg/config"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config    *config.Config
	Logger    *slog.Logger
	Registry  *registry.Registry
	Resolver  *resolve.Resolver
	Processor *process.Processor
	AuditIdx  *audit.Index
	Metrics   *observability.Metrics
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	reg, err := registry.Load(cfg.Input.RegistryPath)
	if err != nil {
		return nil, err
	}
	deps.Registry = reg
	logger.Info("driver registry loaded",
		slog.String("path", cfg.Input.RegistryPath),
		slog.Int("drivers", reg.Len()),
	)

	if cfg.Observability.MetricsEnabled {
		deps.Metrics = observability.NewMetrics()
	}

	opts := resolve.Options{Logger: logger}
	if deps.Metrics != nil {
		opts.Observer = deps.Metrics.StageObserver()
	}

	timeout := time.Duration(cfg.Oracles.TimeoutSeconds) * time.Second
	probeCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if cfg.Oracles.NEREndpoint != "" {
		ner := oracle.NewNERClient(cfg.Oracles.NEREndpoint, timeout)
		if err := ner.Ping(probeCtx); err != nil {
			logger.Warn("ner oracle unreachable, stage disabled", slog.Any("err", err))
		} else {
			opts.NER = ner
		}
	}

	if cfg.Oracles.EmbedEndpoint != "" {
		embedder := oracle.NewEmbeddingClient(cfg.Oracles.EmbedEndpoint, cfg.Oracles.EmbedModel, timeout)
		if err := embedder.Ping(probeCtx); err != nil {
			logger.Warn("embedding oracle unreachable, stage disabled", slog.Any("err", err))
		} else {
			opts.Embedder = embedder
			opts.Matrix, err = loadOrBuildMatrix(probeCtx, cfg, reg, embedder, logger)
			if err != nil {
				logger.Warn("embedding matrix unavailable, stage disabled", slog.Any("err", err))
				opts.Embedder = nil
			}
		}
	}

	resCfg := resolve.Config{
		NERThreshold:       cfg.Resolution.NERThreshold,
		GlobalThreshold:    cfg.Resolution.GlobalThreshold,
		FinalThreshold:     cfg.Resolution.FinalThreshold,
		EmbeddingThreshold: cfg.Resolution.EmbeddingThreshold,
	}
	deps.Resolver = resolve.New(reg, resCfg, opts)

	if cfg.Input.AuditIndex != "" {
		deps.AuditIdx, err = audit.NewIndex(cfg.Input.AuditIndex)
		if err != nil {
			return nil, err
		}
	}

	source := &extract.Extractor{}
	if cfg.Input.OCRCommand != "" {
		source.OCRCommand = strings.Fields(cfg.Input.OCRCommand)
	}

	deps.Processor = process.NewProcessor(source, deps.Resolver, process.ProcessorOptions{
		Audit:   deps.AuditIdx,
		Metrics: deps.Metrics,
		Logger:  logger,
		DryRun:  cfg.Input.DryRun,
	})

	return deps, nil
}

// loadOrBuildMatrix reuses the cached registry embedding matrix when
// its roster hash and model still match; otherwise it re-encodes the
// roster and rewrites the cache.
func loadOrBuildMatrix(ctx context.Context, cfg *config.Config, reg *registry.Registry, embedder resolve.EmbeddingOracle, logger *slog.Logger) (resolve.EmbeddingMatrix, error) {
	hash := reg.Hash()
	model := cfg.Oracles.EmbedModel
	cachePath := cfg.Oracles.EmbedCachePath

	if cachePath != "" {
		matrix, err := resolve.LoadMatrixCache(cachePath, hash, model)
		switch {
		case err == nil:
			logger.Info("embedding matrix loaded from cache", slog.String("path", cachePath))
			return matrix, nil
		case errors.Is(err, resolve.ErrCacheStale):
			logger.Info("embedding cache stale, rebuilding")
		case !os.IsNotExist(err):
			logger.Warn("embedding cache unreadable, rebuilding", slog.Any("err", err))
		}
	}

	names := make([]string, reg.Len())
	for i, rec := range reg.Records() {
		names[i] = resolve.Normalize(rec.Name)
	}
	matrix, err := resolve.BuildEmbeddingMatrix(ctx, embedder, names)
	if err != nil {
		return nil, err
	}

	if cachePath != "" {
		if err := resolve.SaveMatrixCache(cachePath, hash, model, matrix); err != nil {
			logger.Warn("embedding cache write failed", slog.Any("err", err))
		}
	}
	return matrix, nil
}

// Close releases held resources.
func (d *Dependencies) Close() {
	if d.AuditIdx != nil {
		if err := d.AuditIdx.Close(); err != nil {
			d.Logger.Warn("audit index close failed", slog.Any("err", err))
		}
	}
}
