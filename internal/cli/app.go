package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/chatgraph"
	"github.com/aretw0/chatgraph/internal/config"
	"github.com/aretw0/chatgraph/internal/logging"
	"github.com/aretw0/chatgraph/pkg/adapters/file"
	"github.com/aretw0/chatgraph/pkg/adapters/memory"
	"github.com/aretw0/chatgraph/pkg/adapters/redis"
	"github.com/aretw0/chatgraph/pkg/adapters/sqlite"
	"github.com/aretw0/chatgraph/pkg/observability"
	"github.com/aretw0/chatgraph/pkg/ports"
	"github.com/aretw0/chatgraph/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

// App is the wired runtime shared by the chat, serve and mcp commands.
type App struct {
	Config    config.Config
	Logger    *slog.Logger
	Blueprint *chatgraph.Blueprint
	Store     ports.StateStore
	Manager   *session.Manager
	Registry  *prometheus.Registry

	closers []func() error
}

// NewLogger builds the application logger from the log section.
func NewLogger(cfg config.LogConfig) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(level, cfg.Format), nil
}

// NewApp compiles the graph, opens the store and wires the session manager.
func NewApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}

	metrics := observability.NewMetrics(app.Registry)
	bp, err := chatgraph.Compile(
		file.NewDefinitionSource(cfg.Definition),
		file.NewAvatarSource(cfg.Avatar),
		chatgraph.WithLogger(logger),
		chatgraph.WithName(cfg.Name),
		chatgraph.WithMatcherConfig(cfg.Matcher),
		chatgraph.WithPolicy(cfg.Responses.Policy, cfg.Responses.Seed),
		chatgraph.WithDefaultResponse(cfg.Responses.Default),
		chatgraph.WithLifecycleHooks(metrics.Hooks()),
		chatgraph.WithLifecycleHooks(observability.LogHooks(logger)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.Definition, err)
	}
	app.Blueprint = bp

	store, locker, err := app.openStore(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithLockTTL(cfg.Store.LockTTL),
	}
	if locker != nil {
		opts = append(opts, session.WithLocker(locker))
	}
	app.Manager = session.NewManager(bp, store, opts...)

	logger.Debug("app ready",
		"graph", cfg.Name,
		"nodes", bp.Graph().NodeCount(),
		"edges", bp.Graph().EdgeCount(),
		"store", cfg.Store.Driver,
	)
	return app, nil
}

func (a *App) openStore(ctx context.Context) (ports.StateStore, ports.DistributedLocker, error) {
	sc := a.Config.Store
	switch sc.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil, nil
	case config.DriverFile:
		return file.NewStore(sc.Path), nil, nil
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, sc.DSN)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store, nil, nil
	case config.DriverRedis:
		prefix := sc.Redis.Prefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		store := redis.New(sc.Redis.Addr, sc.Redis.Password, sc.Redis.DB,
			redis.WithPrefix(prefix),
			redis.WithTTL(sc.Redis.TTL),
		)
		a.closers = append(a.closers, store.Close)
		if err := store.Client().Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", sc.Redis.Addr, err)
		}
		if sc.Lock {
			return store, redis.NewLocker(store.Client(), prefix), nil
		}
		return store, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", sc.Driver)
	}
}

// Close releases the store connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
