package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/bookstore_orders/internal/cache/stats"
	"github.com/Gunvolt24/bookstore_orders/internal/domain"
)

// CacheStore — распределённое хранилище "номер заказа -> заказ".
// Требования к реализации: потокобезопасность; возврат копий; (nil, nil) при промахе.
// При настроенном OrderMapStore промах Get дочитывает значение из загрузчика,
// Put вызывает Store (write-through), Remove вызывает Delete; Evict загрузчик не трогает.
type CacheStore interface {
	Name() string
	Get(ctx context.Context, key string) (*domain.Order, error)
	Put(ctx context.Context, key string, order *domain.Order) error
	// PutWithTTL — ttl <= 0 означает "без истечения".
	PutWithTTL(ctx context.Context, key string, order *domain.Order, ttl time.Duration) error
	// Replace — заменить значение только если ключ уже есть.
	Replace(ctx context.Context, key string, order *domain.Order) (bool, error)
	Remove(ctx context.Context, key string) (bool, error)
	ContainsKey(ctx context.Context, key string) (bool, error)
	Evict(ctx context.Context, key string) (bool, error)
	Size(ctx context.Context) (int, error)
	Stats() stats.StoreStats
	// Preload — начальная загрузка через LoadAllKeys/LoadAll; возвращает число загруженных записей.
	Preload(ctx context.Context) (int, error)
	Close() error
}

// OrderMapStore — хуки загрузчика, которые хранилище кэша вызывает само.
// Ни один метод не возвращает ошибку: сбои логируются и превращаются в "пусто".
type OrderMapStore interface {
	Load(ctx context.Context, key string) *domain.Order
	LoadAll(ctx context.Context, keys []string) map[string]*domain.Order
	LoadAllKeys(ctx context.Context) []string
	Store(ctx context.Context, key string, order *domain.Order)
	StoreAll(ctx context.Context, orders map[string]*domain.Order)
	Delete(ctx context.Context, key string)
	DeleteAll(ctx context.Context, keys []string)
}
