package app

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/bookstore_orders/config"
	"github.com/Gunvolt24/bookstore_orders/internal/cache/breaker"
	"github.com/Gunvolt24/bookstore_orders/internal/cache/loader"
	"github.com/Gunvolt24/bookstore_orders/internal/cache/memory"
	"github.com/Gunvolt24/bookstore_orders/internal/cache/ordercache"
	"github.com/Gunvolt24/bookstore_orders/internal/cache/policy"
	"github.com/Gunvolt24/bookstore_orders/internal/cache/rediscache"
	"github.com/Gunvolt24/bookstore_orders/internal/ports"
)

// orderCache — собранный кэш: хранилище и сервис над ним.
type orderCache struct {
	store   ports.CacheStore
	service *ordercache.Service
}

// newOrderCache — хранилище по cfg.Backend, загрузчик из БД, автомат и политика ошибок.
// Выключенный кэш: (nil, nil).
func newOrderCache(ctx context.Context, cfg config.Cache, repo ports.OrderRepository, log ports.Logger) (*orderCache, error) {
	if !cfg.Enabled {
		log.Infof(ctx, "order cache disabled")
		return nil, nil
	}

	mapStore := loader.NewOrderMapStore(repo, log)

	var store ports.CacheStore
	switch cfg.Backend {
	case config.BackendRedis:
		client, err := rediscache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		store = rediscache.NewStore(client, rediscache.Config{
			Name:         cfg.Name,
			KeyPrefix:    cfg.KeyPrefix,
			TTL:          cfg.TTL(),
			MaxIdle:      cfg.MaxIdle(),
			WriteThrough: cfg.WriteThrough,
			StatsEnabled: cfg.MetricsEnabled,
		}, mapStore, log)
	case config.BackendMemory:
		store = memory.NewStore(memory.Config{
			Name:         cfg.Name,
			MaxSize:      cfg.MaxSize,
			TTL:          cfg.TTL(),
			MaxIdle:      cfg.MaxIdle(),
			WriteThrough: cfg.WriteThrough,
			StatsEnabled: cfg.MetricsEnabled,
		}, mapStore, log)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}

	svc := ordercache.NewService(store, policy.New(breaker.New(), log), log,
		ordercache.WithReadTimeout(cfg.ReadTimeout),
		ordercache.WithWriteTimeout(cfg.WriteTimeout),
		ordercache.WithSettings(ordercache.Settings{
			Backend:        cfg.Backend,
			MaxSize:        cfg.MaxSize,
			TimeToLive:     cfg.TTL(),
			MaxIdle:        cfg.MaxIdle(),
			WriteThrough:   cfg.WriteThrough,
			MetricsEnabled: cfg.MetricsEnabled,
			BackupCount:    cfg.BackupCount,
			ReadBackupData: cfg.ReadBackupData,
		}),
	)

	if n, err := store.Preload(ctx); err != nil {
		log.Warnf(ctx, "cache preload failed: %v", err)
	} else {
		log.Infof(ctx, "order cache ready backend=%s name=%s preloaded=%d", cfg.Backend, cfg.Name, n)
	}

	return &orderCache{store: store, service: svc}, nil
}

// orderCachePort — nil-интерфейс при выключенном кэше (а не интерфейс с nil-указателем внутри).
func (c *orderCache) orderCachePort() ports.OrderCache {
	if c == nil {
		return nil
	}
	return c.service
}

func (c *orderCache) adminPort() ports.CacheAdmin {
	if c == nil {
		return nil
	}
	return c.service
}

func (c *orderCache) close() error {
	if c == nil {
		return nil
	}
	return c.store.Close()
}
