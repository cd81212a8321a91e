package cmd

import (
	"context"
	"fmt"

	"proc-loader/core/config"
	"proc-loader/core/host"
	"proc-loader/core/loaders"
	"proc-loader/core/logger"
	"proc-loader/core/proc"
	"proc-loader/core/procedures"
	"proc-loader/core/source"
	"proc-loader/core/storage"
	"proc-loader/core/telemetry"
	"proc-loader/feature/integrity"
	"proc-loader/feature/resource"

	"go.uber.org/zap"
)

// runtime is the wired application shared by the commands.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	host    *host.Host
	plugin  *proc.Plugin
	store   storage.Client
	metrics *telemetry.Metrics
	service *resource.Service
	checks  *integrity.Service
}

// bootstrap loads configuration from dir and wires the application.
func bootstrap(ctx context.Context, dir string) (*runtime, error) {
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// The bucket also receives published resources, so a client is created for
	// every source kind but only required by the bucket source.
	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		if cfg.Source.Kind == source.KindBucket {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		logg.Warn("Storage client unavailable, publishing disabled", zap.Error(err))
		store = nil
	}

	rt, err := newRuntime(cfg, logg, store)
	if err != nil {
		return nil, err
	}

	if b, ok := rt.host.Source().(*source.Bucket); ok {
		if err := b.Check(ctx); err != nil {
			logg.Warn("Bucket source is not ready", zap.Error(err))
		}
	}
	return rt, nil
}

// newRuntime wires the host, the proc plugin, the loaders and the built-in
// and configured procedures.
func newRuntime(cfg *config.Config, logg *zap.Logger, store storage.Client) (*runtime, error) {
	src, err := source.New(cfg.Source, store, cfg.Storage.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to create source: %w", err)
	}

	metrics := telemetry.New()

	plugin := proc.New(
		proc.WithLogger(logg),
		proc.WithSettings(cfg.Proc.Settings()),
	)
	procedures.Register(plugin)
	if err := procedures.RegisterExpressions(plugin, cfg.Proc.Expressions); err != nil {
		return nil, err
	}

	h := host.New(src,
		host.WithBaseURL(cfg.Proc.BaseURL),
		host.WithLogger(logg),
		host.WithObserver(metrics),
	).Register(proc.Name, plugin)
	loaders.Register(h)

	return &runtime{
		cfg:     cfg,
		logger:  logg,
		host:    h,
		plugin:  plugin,
		store:   store,
		metrics: metrics,
		service: resource.NewService(h, plugin, logg),
		checks:  integrity.NewService(h, store, cfg.Storage.Bucket, cfg.Integrity, logg),
	}, nil
}
