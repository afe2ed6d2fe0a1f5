package initializer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/backoffice/infra"
	infra_cache "github.com/amirasaad/backoffice/infra/cache"
	infra_eventbus "github.com/amirasaad/backoffice/infra/eventbus"
	infra_repository "github.com/amirasaad/backoffice/infra/repository"
	"github.com/amirasaad/backoffice/pkg/app"
	"github.com/amirasaad/backoffice/pkg/cache"
	"github.com/amirasaad/backoffice/pkg/config"
	"github.com/amirasaad/backoffice/pkg/eventbus"
	"github.com/redis/go-redis/v9"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	deps.Uow = infra_repository.NewUoW(db)

	deps.Codes, err = initCodeStore(context.Background(), cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize activation code store: %w", err)
	}

	deps.EventBus, err = initEventBus(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}
	return deps, nil
}

// initCodeStore uses Redis when a URL is configured and memory otherwise.
func initCodeStore(ctx context.Context, cfg *config.Redis, logger *slog.Logger) (cache.CodeStore, error) {
	if cfg == nil || cfg.URL == "" {
		logger.Info("Activation codes kept in memory")
		return infra_cache.NewMemoryCodeStore(ctx), nil
	}
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, keeping activation codes in memory", "error", err)
		_ = client.Close()
		return infra_cache.NewMemoryCodeStore(ctx), nil
	}
	return infra_cache.NewRedisCodeStore(client, cfg.KeyPrefix, logger), nil
}

// initEventBus selects the bus driver. A redis driver that cannot connect
// falls back to the in-memory bus.
func initEventBus(cfg *config.App, logger *slog.Logger) (eventbus.Bus, error) {
	driver := "memory"
	if cfg.EventBus != nil && cfg.EventBus.Driver != "" {
		driver = cfg.EventBus.Driver
	}
	switch driver {
	case "memory":
		return infra_eventbus.NewWithMemory(logger), nil
	case "redis":
		if cfg.Redis == nil || cfg.Redis.URL == "" {
			return nil, fmt.Errorf("event bus driver redis requires REDIS_URL")
		}
		bus, err := infra_eventbus.NewWithRedis(cfg.Redis.URL, cfg.Redis.KeyPrefix, logger)
		if err != nil {
			logger.Warn("Redis event bus unavailable, falling back to memory", "error", err)
			return infra_eventbus.NewWithMemory(logger), nil
		}
		return bus, nil
	default:
		return nil, fmt.Errorf("unsupported event bus driver %q", driver)
	}
}
