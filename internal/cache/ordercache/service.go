// Package ordercache: единственная точка входа в кэш заказов для остального кода.
// Ни один метод не возвращает ошибку кэша: сбой превращается в "кэш недоступен для этого вызова".
package ordercache

import (
	"context"
	"strconv"
	"time"

	"github.com/Gunvolt24/bookstore_orders/internal/cache/policy"
	"github.com/Gunvolt24/bookstore_orders/internal/cache/stats"
	"github.com/Gunvolt24/bookstore_orders/internal/domain"
	"github.com/Gunvolt24/bookstore_orders/internal/ports"
	"github.com/Gunvolt24/bookstore_orders/pkg/metrics"
)

const (
	DefaultReadTimeout  = 500 * time.Millisecond
	DefaultWriteTimeout = time.Second

	healthKeyPrefix = "health-check-"
)

// Settings — параметры кэша, которые попадают в отчёт о здоровье.
type Settings struct {
	Backend        string
	MaxSize        int
	TimeToLive     time.Duration
	MaxIdle        time.Duration
	WriteThrough   bool
	MetricsEnabled bool
	BackupCount    int
	ReadBackupData bool
}

// Service — оркестратор: хранилище + политика ошибок + автомат.
type Service struct {
	store  ports.CacheStore
	policy *policy.ErrorPolicy
	log    ports.Logger

	readTimeout  time.Duration
	writeTimeout time.Duration
	settings     Settings
}

var (
	_ ports.OrderCache = (*Service)(nil)
	_ ports.CacheAdmin = (*Service)(nil)
)

type Option func(*Service)

func WithReadTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.readTimeout = d
		}
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

func WithSettings(settings Settings) Option {
	return func(s *Service) { s.settings = settings }
}

// NewService — DI-конструктор.
func NewService(store ports.CacheStore, pol *policy.ErrorPolicy, log ports.Logger, opts ...Option) *Service {
	s := &Service{
		store:        store,
		policy:       pol,
		log:          log,
		readTimeout:  DefaultReadTimeout,
		writeTimeout: DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindByOrderNumber — cache-aside чтение; при сбое или открытом автомате — промах.
func (s *Service) FindByOrderNumber(ctx context.Context, key string) (*domain.Order, bool) {
	order := policy.Execute(ctx, s.policy, policy.OpGet, key, func(ctx context.Context) (*domain.Order, error) {
		return s.store.Get(ctx, key)
	})
	return order, order != nil
}

// FindByOrderNumberWithTimeout — то же, но чтение ограничено readTimeout; таймаут считается сбоем.
func (s *Service) FindByOrderNumberWithTimeout(ctx context.Context, key string) (*domain.Order, bool) {
	order := policy.Execute(ctx, s.policy, policy.OpGetWithTimeout, key, func(ctx context.Context) (*domain.Order, error) {
		return await(ctx, s.readTimeout, func(ctx context.Context) (*domain.Order, error) {
			return s.store.Get(ctx, key)
		})
	})
	return order, order != nil
}

// CacheOrder — положить заказ; nil отклоняется без участия автомата.
func (s *Service) CacheOrder(ctx context.Context, key string, order *domain.Order) bool {
	if !s.acceptable(ctx, key, order) {
		return false
	}
	return s.policy.ExecuteVoid(ctx, policy.OpPut, key, func(ctx context.Context) error {
		return s.store.Put(ctx, key, order)
	})
}

// CacheOrderWithTimeout — запись, ограниченная writeTimeout.
func (s *Service) CacheOrderWithTimeout(ctx context.Context, key string, order *domain.Order) bool {
	if !s.acceptable(ctx, key, order) {
		return false
	}
	return s.policy.ExecuteVoid(ctx, policy.OpPutWithTimeout, key, func(ctx context.Context) error {
		_, err := await(ctx, s.writeTimeout, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.store.Put(ctx, key, order)
		})
		return err
	})
}

// CacheOrderWithTTL — запись с явным сроком жизни вместо TTL хранилища.
func (s *Service) CacheOrderWithTTL(ctx context.Context, key string, order *domain.Order, ttl time.Duration) bool {
	if !s.acceptable(ctx, key, order) {
		return false
	}
	return s.policy.ExecuteVoid(ctx, policy.OpPutWithTTL, key, func(ctx context.Context) error {
		return s.store.PutWithTTL(ctx, key, order, ttl)
	})
}

// UpdateCachedOrder — replace, а если ключа нет — обычный put.
func (s *Service) UpdateCachedOrder(ctx context.Context, key string, order *domain.Order) bool {
	if !s.acceptable(ctx, key, order) {
		return false
	}
	return s.policy.ExecuteVoid(ctx, policy.OpReplace, key, func(ctx context.Context) error {
		replaced, err := s.store.Replace(ctx, key, order)
		if err != nil {
			return err
		}
		if replaced {
			return nil
		}
		return s.store.Put(ctx, key, order)
	})
}

// RemoveFromCache — true и для отсутствующего ключа.
func (s *Service) RemoveFromCache(ctx context.Context, key string) bool {
	return s.policy.ExecuteVoid(ctx, policy.OpRemove, key, func(ctx context.Context) error {
		_, err := s.store.Remove(ctx, key)
		return err
	})
}

func (s *Service) ExistsInCache(ctx context.Context, key string) bool {
	return policy.Execute(ctx, s.policy, policy.OpContains, key, func(ctx context.Context) (bool, error) {
		return s.store.ContainsKey(ctx, key)
	})
}

// EvictFromCache — убрать запись только из кэша, без хуков загрузчика.
func (s *Service) EvictFromCache(ctx context.Context, key string) bool {
	return s.policy.ExecuteVoid(ctx, policy.OpEvict, key, func(ctx context.Context) error {
		_, err := s.store.Evict(ctx, key)
		return err
	})
}

// IsHealthy — put/get/remove пробного заказа; успех закрывает автомат.
func (s *Service) IsHealthy(ctx context.Context) bool {
	return s.policy.CheckHealth(ctx, s.probe(false))
}

// TestCacheConnectivity — как IsHealthy, плюс проверка ContainsKey.
func (s *Service) TestCacheConnectivity(ctx context.Context) bool {
	return s.policy.CheckHealth(ctx, s.probe(true))
}

func (s *Service) ShouldFallbackToDatabase(op policy.Operation) bool {
	return s.policy.ShouldFallbackToDatabase(op)
}

func (s *Service) IsCircuitBreakerOpen() bool {
	return s.policy.Breaker().IsOpen()
}

// ResetCircuitBreaker — закрыть автомат и обнулить статистику ошибок.
func (s *Service) ResetCircuitBreaker() bool {
	s.policy.Reset(context.Background())
	return true
}

// FindWithAutomaticFallback — составная политика чтения:
//   - если политика советует БД (по сути, автомат открыт), кэш не трогаем;
//   - попадание в кэш возвращаем как есть;
//   - промах при закрытом автомате не считаем окончательным и спрашиваем fallback.
func (s *Service) FindWithAutomaticFallback(ctx context.Context, key string, fallback ports.FallbackFunc) (*domain.Order, error) {
	if s.policy.ShouldFallbackToDatabase(policy.OpFindWithFallback) {
		s.log.Debugf(ctx, "cache bypassed for order=%s", key)
		return callFallback(ctx, fallback)
	}
	if order, ok := s.FindByOrderNumber(ctx, key); ok {
		return order, nil
	}
	if !s.IsCircuitBreakerOpen() {
		metrics.CacheFallbacks.WithLabelValues("miss").Inc()
		return callFallback(ctx, fallback)
	}
	return nil, nil
}

// WarmUpCache — последовательно читает ключи через кэш (промах дочитывает загрузчик).
// Возвращает число найденных заказов; частичный неуспех не ошибка.
func (s *Service) WarmUpCache(ctx context.Context, keys []string) int {
	start := time.Now()
	loaded := 0
	for _, key := range keys {
		if ctx.Err() != nil {
			s.log.Warnf(ctx, "cache warm-up interrupted after %d keys: %v", loaded, ctx.Err())
			break
		}
		if s.warmUpOne(ctx, key) {
			loaded++
		}
	}
	s.log.Infof(ctx, "cache warm-up: %d/%d orders in %s", loaded, len(keys), time.Since(start))
	return loaded
}

// CacheStats — размер и локальная статистика; мимо автомата, чтобы диагностика работала всегда.
func (s *Service) CacheStats(ctx context.Context) stats.CacheStats {
	local := s.store.Stats()
	out := stats.CacheStats{
		Name:     s.store.Name(),
		Local:    local,
		HitRatio: local.HitRatio(),
	}
	size, err := await(ctx, s.readTimeout, s.store.Size)
	if err != nil {
		s.log.Warnf(ctx, "cache stats: size failed err=%v", err)
		out.Error = err.Error()
		return out
	}
	out.Size = size
	return out
}

func (s *Service) CircuitBreakerStatus() stats.CircuitBreakerStatus {
	return s.policy.Status()
}

// HealthReport — сводка: связность, автомат, статистика, настройки и рекомендация.
func (s *Service) HealthReport(ctx context.Context) stats.HealthReport {
	connectivity := s.TestCacheConnectivity(ctx)
	status := s.CircuitBreakerStatus()

	report := stats.HealthReport{
		Connectivity:   connectivity,
		CircuitBreaker: status,
		Cache:          s.CacheStats(ctx),
		Config:         s.configDetails(),
		Healthy:        connectivity && !status.Breaker.Open,
	}
	switch {
	case status.Breaker.Open:
		report.Recommendation = "circuit breaker is open: reads are served by the database"
	case !connectivity:
		report.Recommendation = "cache connectivity test failed: check the cache backend"
	case status.TotalErrors > 0:
		report.Recommendation = "cache is healthy but errors were recorded: watch error stats"
	default:
		report.Recommendation = "cache is healthy"
	}
	return report
}

// ------вспомогательные функции------

// warmUpOne — чтение с readTimeout; ошибки прогрева копятся отдельно от обычных чтений.
func (s *Service) warmUpOne(ctx context.Context, key string) bool {
	order := policy.Execute(ctx, s.policy, policy.OpWarmUp, key, func(ctx context.Context) (*domain.Order, error) {
		return await(ctx, s.readTimeout, func(ctx context.Context) (*domain.Order, error) {
			return s.store.Get(ctx, key)
		})
	})
	return order != nil
}

func (s *Service) acceptable(ctx context.Context, key string, order *domain.Order) bool {
	if order == nil {
		s.log.Warnf(ctx, "refusing to cache key=%s: %v", key, policy.ErrNilOrder)
		return false
	}
	return true
}

func (s *Service) probe(withContains bool) func(context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
		defer cancel()

		key := healthKeyPrefix + strconv.FormatInt(time.Now().UnixNano(), 10)
		probe := &domain.Order{OrderNumber: key, Status: domain.StatusNew, CreatedAt: time.Now().UTC()}

		if err := s.store.Put(ctx, key, probe); err != nil {
			return false, err
		}
		defer func() {
			if _, err := s.store.Remove(ctx, key); err != nil {
				s.log.Warnf(ctx, "health probe cleanup failed key=%s err=%v", key, err)
			}
		}()

		got, err := s.store.Get(ctx, key)
		if err != nil {
			return false, err
		}
		if withContains {
			exists, err := s.store.ContainsKey(ctx, key)
			if err != nil {
				return false, err
			}
			if !exists {
				return false, nil
			}
		}
		return got != nil && got.OrderNumber == key, nil
	}
}

func (s *Service) configDetails() map[string]any {
	return map[string]any{
		"name":             s.store.Name(),
		"backend":          s.settings.Backend,
		"max_size":         s.settings.MaxSize,
		"ttl_seconds":      int64(s.settings.TimeToLive / time.Second),
		"max_idle_seconds": int64(s.settings.MaxIdle / time.Second),
		"write_through":    s.settings.WriteThrough,
		"metrics_enabled":  s.settings.MetricsEnabled,
		"backup_count":     s.settings.BackupCount,
		"read_backup_data": s.settings.ReadBackupData,
		"read_timeout_ms":  s.readTimeout.Milliseconds(),
		"write_timeout_ms": s.writeTimeout.Milliseconds(),
	}
}

func callFallback(ctx context.Context, fallback ports.FallbackFunc) (*domain.Order, error) {
	if fallback == nil {
		return nil, nil
	}
	return fallback(ctx)
}
