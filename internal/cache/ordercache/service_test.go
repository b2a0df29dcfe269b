package ordercache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"go.uber.org/atomic"

	"github.com/Gunvolt24/bookstore_orders/internal/cache/breaker"
	"github.com/Gunvolt24/bookstore_orders/internal/cache/memory"
	"github.com/Gunvolt24/bookstore_orders/internal/cache/policy"
	"github.com/Gunvolt24/bookstore_orders/internal/cache/stats"
	"github.com/Gunvolt24/bookstore_orders/internal/domain"
	"github.com/Gunvolt24/bookstore_orders/internal/ports"
	"github.com/Gunvolt24/bookstore_orders/internal/ports/mocks"
)

type noopLogger struct{}

func (noopLogger) Debugf(context.Context, string, ...any) {}
func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

var errStoreDown = errors.New("store down")

// countingStore — обёртка над хранилищем: считает вызовы и умеет падать или тормозить.
type countingStore struct {
	ports.CacheStore
	calls atomic.Int32
	fail  atomic.Bool
	delay time.Duration
}

func (c *countingStore) enter(ctx context.Context) error {
	c.calls.Inc()
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if c.fail.Load() {
		return errStoreDown
	}
	return nil
}

func (c *countingStore) Get(ctx context.Context, key string) (*domain.Order, error) {
	if err := c.enter(ctx); err != nil {
		return nil, err
	}
	return c.CacheStore.Get(ctx, key)
}

func (c *countingStore) Put(ctx context.Context, key string, order *domain.Order) error {
	if err := c.enter(ctx); err != nil {
		return err
	}
	return c.CacheStore.Put(ctx, key, order)
}

func (c *countingStore) Remove(ctx context.Context, key string) (bool, error) {
	if err := c.enter(ctx); err != nil {
		return false, err
	}
	return c.CacheStore.Remove(ctx, key)
}

func (c *countingStore) ContainsKey(ctx context.Context, key string) (bool, error) {
	if err := c.enter(ctx); err != nil {
		return false, err
	}
	return c.CacheStore.ContainsKey(ctx, key)
}

func newMemoryStore(loader ports.OrderMapStore) *memory.Store {
	return memory.NewStore(memory.Config{Name: "orders-test", MaxSize: 100, TTL: time.Hour, StatsEnabled: true}, loader, noopLogger{})
}

func newService(store ports.CacheStore, opts ...Option) *Service {
	return NewService(store, policy.New(breaker.New(), noopLogger{}), noopLogger{}, opts...)
}

func order(number string) *domain.Order {
	return &domain.Order{
		OrderNumber: number,
		Item:        domain.OrderItem{Code: "P100", Name: "Go in Action", Price: 34, Quantity: 1},
		Status:      domain.StatusNew,
	}
}

func TestService_PutExistsFind(t *testing.T) {
	ctx := context.Background()
	svc := newService(newMemoryStore(nil))

	if !svc.CacheOrder(ctx, "ORD-1", order("ORD-1")) {
		t.Fatalf("CacheOrder must succeed")
	}
	if !svc.ExistsInCache(ctx, "ORD-1") {
		t.Fatalf("ORD-1 must exist in cache")
	}
	got, ok := svc.FindByOrderNumber(ctx, "ORD-1")
	if !ok || got.OrderNumber != "ORD-1" || got.Item != order("ORD-1").Item {
		t.Fatalf("unexpected order: %+v ok=%v", got, ok)
	}
}

func TestService_OpenBreakerSkipsStore(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{CacheStore: newMemoryStore(nil)}
	store.fail.Store(true)
	svc := newService(store)

	for i := 0; i < breaker.DefaultFailureThreshold; i++ {
		if _, ok := svc.FindByOrderNumber(ctx, "ORD-X"); ok {
			t.Fatalf("failing store must give a miss")
		}
	}
	if !svc.IsCircuitBreakerOpen() {
		t.Fatalf("breaker must be open after 5 failures")
	}

	before := store.calls.Load()
	if _, ok := svc.FindByOrderNumber(ctx, "ANY"); ok {
		t.Fatalf("open breaker must give a miss")
	}
	if got := store.calls.Load(); got != before {
		t.Fatalf("store must not be called while open: before=%d after=%d", before, got)
	}
}

func TestService_FindWithAutomaticFallback_EmptyCache(t *testing.T) {
	ctx := context.Background()
	svc := newService(newMemoryStore(nil))

	calls := 0
	want := order("ORD-2")
	got, err := svc.FindWithAutomaticFallback(ctx, "ORD-2", func(context.Context) (*domain.Order, error) {
		calls++
		return want, nil
	})
	if err != nil || got != want {
		t.Fatalf("fallback value expected: got=%v err=%v", got, err)
	}
	if calls != 1 {
		t.Fatalf("fallback calls: got=%d want=1", calls)
	}
}

func TestService_FindWithAutomaticFallback_Hit(t *testing.T) {
	ctx := context.Background()
	svc := newService(newMemoryStore(nil))
	svc.CacheOrder(ctx, "ORD-3", order("ORD-3"))

	got, err := svc.FindWithAutomaticFallback(ctx, "ORD-3", func(context.Context) (*domain.Order, error) {
		t.Fatalf("fallback must not be called on a hit")
		return nil, nil
	})
	if err != nil || got == nil || got.OrderNumber != "ORD-3" {
		t.Fatalf("cached value expected: got=%v err=%v", got, err)
	}
}

func TestService_FindWithAutomaticFallback_BreakerOpen(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{CacheStore: newMemoryStore(nil)}
	svc := newService(store)
	for i := 0; i < breaker.DefaultFailureThreshold; i++ {
		svc.policy.Breaker().RecordFailure()
	}

	calls := 0
	got, err := svc.FindWithAutomaticFallback(ctx, "ORD-4", func(context.Context) (*domain.Order, error) {
		calls++
		return order("ORD-4"), nil
	})
	if err != nil || got == nil || calls != 1 {
		t.Fatalf("fallback expected once: got=%v err=%v calls=%d", got, err, calls)
	}
	if store.calls.Load() != 0 {
		t.Fatalf("store must be bypassed")
	}
}

func TestService_FindWithAutomaticFallback_PropagatesFallbackError(t *testing.T) {
	svc := newService(newMemoryStore(nil))
	dbErr := errors.New("db down")

	_, err := svc.FindWithAutomaticFallback(context.Background(), "ORD-5", func(context.Context) (*domain.Order, error) {
		return nil, dbErr
	})
	if !errors.Is(err, dbErr) {
		t.Fatalf("fallback error must propagate, got=%v", err)
	}
}

func TestService_FindWithAutomaticFallback_IsolatedGetErrorsKeepCache(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{CacheStore: newMemoryStore(nil)}
	svc := newService(store)
	svc.CacheOrder(ctx, "ORD-1", order("ORD-1"))

	// редкие сбои вперемешку с успехами: автомат закрыт, счётчик ошибок get растёт
	for i := 0; i < 4; i++ {
		store.fail.Store(true)
		svc.FindByOrderNumber(ctx, "ORD-1")
		store.fail.Store(false)
		if _, ok := svc.FindByOrderNumber(ctx, "ORD-1"); !ok {
			t.Fatalf("healthy read must hit")
		}
	}
	if svc.IsCircuitBreakerOpen() || svc.policy.ErrorCount(policy.OpGet) != 4 {
		t.Fatalf("unexpected state: open=%v get errors=%d", svc.IsCircuitBreakerOpen(), svc.policy.ErrorCount(policy.OpGet))
	}

	store.calls.Store(0)
	fallbacks := 0
	for i := 0; i < 100; i++ {
		got, err := svc.FindWithAutomaticFallback(ctx, "ORD-1", func(context.Context) (*domain.Order, error) {
			fallbacks++
			return nil, nil
		})
		if err != nil || got == nil {
			t.Fatalf("cached value expected: got=%v err=%v", got, err)
		}
	}
	if fallbacks != 0 || store.calls.Load() != 100 {
		t.Fatalf("reads must be served by cache: fallbacks=%d store calls=%d", fallbacks, store.calls.Load())
	}
}

func TestService_FindWithAutomaticFallback_RecoversAfterOpenWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cb := breaker.New(breaker.WithClock(func() time.Time { return now }))
	store := &countingStore{CacheStore: newMemoryStore(nil)}
	svc := NewService(store, policy.New(cb, noopLogger{}), noopLogger{})
	svc.CacheOrder(ctx, "ORD-1", order("ORD-1"))

	store.fail.Store(true)
	for i := 0; i < breaker.DefaultFailureThreshold; i++ {
		svc.FindByOrderNumber(ctx, "ORD-1")
	}
	if !svc.IsCircuitBreakerOpen() {
		t.Fatalf("breaker must be open after %d failures", breaker.DefaultFailureThreshold)
	}

	fallbacks := 0
	fromDB := func(context.Context) (*domain.Order, error) {
		fallbacks++
		return order("ORD-1"), nil
	}
	callsBefore := store.calls.Load()
	if got, err := svc.FindWithAutomaticFallback(ctx, "ORD-1", fromDB); err != nil || got == nil || fallbacks != 1 {
		t.Fatalf("open breaker must route to database: got=%v err=%v fallbacks=%d", got, err, fallbacks)
	}
	if store.calls.Load() != callsBefore {
		t.Fatalf("store must not be touched while breaker is open")
	}

	// кэш ожил, окно открытия прошло: первое же чтение становится пробой
	store.fail.Store(false)
	now = now.Add(breaker.DefaultOpenDuration + time.Second)

	got, err := svc.FindWithAutomaticFallback(ctx, "ORD-1", fromDB)
	if err != nil || got == nil || got.OrderNumber != "ORD-1" {
		t.Fatalf("cached value expected: got=%v err=%v", got, err)
	}
	if fallbacks != 1 {
		t.Fatalf("recovered cache must serve the read, fallbacks=%d", fallbacks)
	}
	if svc.IsCircuitBreakerOpen() || cb.Failures() != 0 {
		t.Fatalf("successful read must close the breaker")
	}
}

func TestService_WarmUpCache(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	loader := mocks.NewMockOrderMapStore(ctrl)
	loader.EXPECT().Load(gomock.Any(), "A").Return(order("A"))
	loader.EXPECT().Load(gomock.Any(), "B").Return(order("B"))
	loader.EXPECT().Load(gomock.Any(), "C").Return(nil)

	svc := newService(newMemoryStore(loader))

	if got := svc.WarmUpCache(ctx, []string{"A", "B", "C"}); got != 2 {
		t.Fatalf("warm-up: got=%d want=2", got)
	}
	if !svc.ExistsInCache(ctx, "A") || !svc.ExistsInCache(ctx, "B") {
		t.Fatalf("warmed keys must be cached")
	}
}

func TestService_WarmUpErrorsTrackedSeparately(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{CacheStore: newMemoryStore(nil)}
	store.fail.Store(true)
	svc := newService(store)

	if got := svc.WarmUpCache(ctx, []string{"A", "B"}); got != 0 {
		t.Fatalf("warm-up over failing store: got=%d want=0", got)
	}
	if n := svc.policy.ErrorCount(policy.OpWarmUp); n != 2 {
		t.Fatalf("warm-up errors: got=%d want=2", n)
	}
	if n := svc.policy.ErrorCount(policy.OpGet); n != 0 {
		t.Fatalf("warm-up must not count as get errors, got=%d", n)
	}
}

func TestService_NilOrderIsNotBreakerEvent(t *testing.T) {
	ctx := context.Background()
	svc := newService(newMemoryStore(nil))
	svc.policy.Breaker().RecordFailure()
	svc.policy.Breaker().RecordFailure()

	if svc.CacheOrder(ctx, "k", nil) || svc.CacheOrderWithTimeout(ctx, "k", nil) ||
		svc.CacheOrderWithTTL(ctx, "k", nil, time.Minute) || svc.UpdateCachedOrder(ctx, "k", nil) {
		t.Fatalf("nil order must be rejected")
	}
	if got := svc.policy.Breaker().Failures(); got != 2 {
		t.Fatalf("failures must stay unchanged: got=%d want=2", got)
	}
}

func TestService_RemoveAbsentKey(t *testing.T) {
	svc := newService(newMemoryStore(nil))

	if !svc.RemoveFromCache(context.Background(), "missing") {
		t.Fatalf("removing an absent key must succeed")
	}
	if svc.policy.Breaker().Failures() != 0 || svc.CircuitBreakerStatus().TotalErrors != 0 {
		t.Fatalf("remove of absent key must not touch breaker state")
	}
}

func TestService_ReadTimeoutIsFailure(t *testing.T) {
	store := &countingStore{CacheStore: newMemoryStore(nil), delay: 200 * time.Millisecond}
	svc := newService(store, WithReadTimeout(20*time.Millisecond))

	if _, ok := svc.FindByOrderNumberWithTimeout(context.Background(), "slow"); ok {
		t.Fatalf("timed out read must be a miss")
	}
	if svc.policy.Breaker().Failures() != 1 {
		t.Fatalf("timeout must be recorded as failure")
	}
	if svc.policy.ErrorCount(policy.OpGetWithTimeout) != 1 {
		t.Fatalf("timeout must be counted for get_with_timeout")
	}
}

func TestService_WriteTimeout(t *testing.T) {
	ctx := context.Background()
	fast := newService(newMemoryStore(nil))
	if !fast.CacheOrderWithTimeout(ctx, "ORD-1", order("ORD-1")) {
		t.Fatalf("fast write must succeed")
	}

	store := &countingStore{CacheStore: newMemoryStore(nil), delay: 200 * time.Millisecond}
	slow := newService(store, WithWriteTimeout(20*time.Millisecond))
	if slow.CacheOrderWithTimeout(ctx, "ORD-1", order("ORD-1")) {
		t.Fatalf("slow write must time out")
	}
}

func TestService_CacheOrderWithTTL(t *testing.T) {
	ctx := context.Background()
	svc := newService(newMemoryStore(nil))

	if !svc.CacheOrderWithTTL(ctx, "ORD-T", order("ORD-T"), time.Minute) {
		t.Fatalf("put with ttl must succeed")
	}
	if !svc.ExistsInCache(ctx, "ORD-T") {
		t.Fatalf("entry must exist")
	}
}

func TestService_UpdateCachedOrder(t *testing.T) {
	ctx := context.Background()
	svc := newService(newMemoryStore(nil))

	// отсутствует: обычный put
	if !svc.UpdateCachedOrder(ctx, "ORD-U", order("ORD-U")) {
		t.Fatalf("update of absent key must fall back to put")
	}

	upd := order("ORD-U")
	upd.Status = domain.StatusInProcess
	if !svc.UpdateCachedOrder(ctx, "ORD-U", upd) {
		t.Fatalf("update of present key must succeed")
	}
	got, _ := svc.FindByOrderNumber(ctx, "ORD-U")
	if got.Status != domain.StatusInProcess {
		t.Fatalf("status not updated: %v", got.Status)
	}
}

func TestService_EvictFromCache(t *testing.T) {
	ctx := context.Background()
	svc := newService(newMemoryStore(nil))
	svc.CacheOrder(ctx, "ORD-E", order("ORD-E"))

	if !svc.EvictFromCache(ctx, "ORD-E") {
		t.Fatalf("evict must succeed")
	}
	if svc.ExistsInCache(ctx, "ORD-E") {
		t.Fatalf("evicted key must be gone")
	}
}

func TestService_HealthCheckClosesBreaker(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{CacheStore: newMemoryStore(nil)}
	svc := newService(store)
	for i := 0; i < breaker.DefaultFailureThreshold; i++ {
		svc.policy.Breaker().RecordFailure()
	}

	store.fail.Store(true)
	if svc.IsHealthy(ctx) {
		t.Fatalf("failing store must not be healthy")
	}
	if !svc.IsCircuitBreakerOpen() {
		t.Fatalf("failed probe must leave breaker open")
	}

	store.fail.Store(false)
	if !svc.TestCacheConnectivity(ctx) {
		t.Fatalf("working store must pass connectivity test")
	}
	if svc.IsCircuitBreakerOpen() {
		t.Fatalf("successful probe must close breaker")
	}
	if n, _ := store.Size(ctx); n != 0 {
		t.Fatalf("probe entry must be cleaned up, size=%d", n)
	}
}

func TestService_ShouldFallbackAndReset(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{CacheStore: newMemoryStore(nil)}
	store.fail.Store(true)
	svc := newService(store)

	for i := 0; i < 4; i++ {
		svc.CacheOrder(ctx, "k", order("k"))
	}
	if !svc.ShouldFallbackToDatabase(policy.OpPut) {
		t.Fatalf("4 put errors must recommend database fallback")
	}

	if !svc.ResetCircuitBreaker() {
		t.Fatalf("reset must report success")
	}
	if svc.ShouldFallbackToDatabase(policy.OpPut) || svc.IsCircuitBreakerOpen() {
		t.Fatalf("reset must clear breaker and error stats")
	}
}

func TestService_HealthReport(t *testing.T) {
	ctx := context.Background()
	svc := newService(newMemoryStore(nil), WithSettings(Settings{Backend: "memory", MaxSize: 100, TimeToLive: time.Hour}))
	svc.CacheOrder(ctx, "ORD-1", order("ORD-1"))
	svc.FindByOrderNumber(ctx, "ORD-1")

	report := svc.HealthReport(ctx)
	if !report.Healthy || !report.Connectivity {
		t.Fatalf("healthy report expected: %+v", report)
	}
	if report.Cache.Name != "orders-test" || report.Cache.Size != 1 {
		t.Fatalf("unexpected cache stats: %+v", report.Cache)
	}
	if report.Config["backend"] != "memory" || report.Config["ttl_seconds"] != int64(3600) {
		t.Fatalf("unexpected config: %+v", report.Config)
	}
	if report.Recommendation != "cache is healthy" {
		t.Fatalf("unexpected recommendation: %q", report.Recommendation)
	}

	for i := 0; i < breaker.DefaultFailureThreshold; i++ {
		svc.policy.Breaker().RecordFailure()
	}
	// Проба в отчёте закроет автомат, поэтому проверяем статус до неё.
	if st := svc.CircuitBreakerStatus(); !st.Breaker.Open {
		t.Fatalf("breaker must be open: %+v", st)
	}
}

func TestService_CacheStatsSizeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockCacheStore(ctrl)
	store.EXPECT().Stats().Return(stats.StoreStats{Gets: 4, Hits: 1})
	store.EXPECT().Name().Return("orders-mock")
	store.EXPECT().Size(gomock.Any()).Return(0, errStoreDown)

	svc := newService(store)
	st := svc.CacheStats(context.Background())
	if st.Error == "" || st.HitRatio != 0.25 || st.Name != "orders-mock" {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if svc.policy.Breaker().Failures() != 0 {
		t.Fatalf("stats must bypass the breaker")
	}
}

func TestAwait_RecoversPanic(t *testing.T) {
	_, err := await(context.Background(), time.Second, func(context.Context) (int, error) {
		panic("boom")
	})
	if !errors.Is(err, policy.ErrCacheOperation) {
		t.Fatalf("panic must become ErrCacheOperation, got=%v", err)
	}
}
