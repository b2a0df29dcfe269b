package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/bookstore_orders/internal/cache/stats"
	"github.com/Gunvolt24/bookstore_orders/internal/domain"
)

// FallbackFunc — запасной источник заказа (обычно БД).
type FallbackFunc func(ctx context.Context) (*domain.Order, error)

// OrderCache — кэш заказов глазами прикладного слоя.
// Ни один метод не отдаёт наружу ошибку кэша: сбой превращается в false/пусто.
type OrderCache interface {
	FindWithAutomaticFallback(ctx context.Context, key string, fallback FallbackFunc) (*domain.Order, error)
	IsCircuitBreakerOpen() bool
	CacheOrder(ctx context.Context, key string, order *domain.Order) bool
	CacheOrderWithTimeout(ctx context.Context, key string, order *domain.Order) bool
	CacheOrderWithTTL(ctx context.Context, key string, order *domain.Order, ttl time.Duration) bool
	UpdateCachedOrder(ctx context.Context, key string, order *domain.Order) bool
	RemoveFromCache(ctx context.Context, key string) bool
	WarmUpCache(ctx context.Context, keys []string) int
}

// CacheAdmin — диагностика и администрирование кэша (HTTP).
type CacheAdmin interface {
	FindByOrderNumberWithTimeout(ctx context.Context, key string) (*domain.Order, bool)
	EvictFromCache(ctx context.Context, key string) bool
	ExistsInCache(ctx context.Context, key string) bool
	HealthReport(ctx context.Context) stats.HealthReport
	CacheStats(ctx context.Context) stats.CacheStats
	CircuitBreakerStatus() stats.CircuitBreakerStatus
	ResetCircuitBreaker() bool
}
