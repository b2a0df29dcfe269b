// Package breaker реализует автоматический выключатель кэша: после серии сбоев кэш
// временно считается недоступным, и вызывающий код идёт сразу в БД.
package breaker

import (
	"time"

	"go.uber.org/atomic"

	"github.com/Gunvolt24/bookstore_orders/internal/cache/stats"
	"github.com/Gunvolt24/bookstore_orders/pkg/metrics"
)

const (
	DefaultFailureThreshold = 5
	DefaultOpenDuration     = 2 * time.Minute
)

// CircuitBreaker — состояние без блокировок; гонки вида "два потока одновременно
// открыли автомат" допустимы, итоговое состояние всё равно сходится.
type CircuitBreaker struct {
	threshold int32
	openFor   time.Duration
	now       func() time.Time

	failures atomic.Int32
	open     atomic.Bool
	openedAt atomic.Time
	probing  atomic.Bool
}

type Option func(*CircuitBreaker)

func WithThreshold(n int) Option {
	return func(b *CircuitBreaker) {
		if n > 0 {
			b.threshold = int32(n)
		}
	}
}

func WithOpenDuration(d time.Duration) Option {
	return func(b *CircuitBreaker) {
		if d > 0 {
			b.openFor = d
		}
	}
}

// WithClock — источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(b *CircuitBreaker) {
		if now != nil {
			b.now = now
		}
	}
}

// New — автомат в состоянии "закрыт".
func New(opts ...Option) *CircuitBreaker {
	b := &CircuitBreaker{
		threshold: DefaultFailureThreshold,
		openFor:   DefaultOpenDuration,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// IsOpen — автомат открыт и окно открытия ещё не истекло. Чистое чтение:
// после окна возвращает false, но пробу не выдаёт (см. Allow).
func (b *CircuitBreaker) IsOpen() bool {
	return b.open.Load() && b.now().Sub(b.openedAt.Load()) < b.openFor
}

// Allow — можно ли выполнить операцию. В закрытом состоянии всегда true;
// после окна открытия ровно один вызов получает true (пробная операция),
// остальные получают false до исхода пробы или до следующего окна.
func (b *CircuitBreaker) Allow() bool {
	if !b.open.Load() {
		return true
	}
	now := b.now()
	if now.Sub(b.openedAt.Load()) < b.openFor {
		return false
	}
	if !b.probing.CompareAndSwap(false, true) {
		return false
	}
	defer b.probing.Store(false)

	// Пробу мог выдать соседний поток, пока мы ждали флаг.
	if now.Sub(b.openedAt.Load()) < b.openFor {
		return false
	}
	b.openedAt.Store(now)
	return true
}

// RecordSuccess — сбрасывает счётчик; возвращает true, если автомат был открыт и закрылся.
func (b *CircuitBreaker) RecordSuccess() bool {
	b.failures.Store(0)
	if b.open.CompareAndSwap(true, false) {
		b.openedAt.Store(time.Time{})
		metrics.CircuitBreakerOpen.Set(0)
		return true
	}
	return false
}

// RecordFailure — увеличивает счётчик; возвращает true, если этот вызов открыл автомат.
// Неудачная проба в открытом состоянии начинает окно заново.
func (b *CircuitBreaker) RecordFailure() bool {
	n := b.failures.Inc()
	if n < b.threshold {
		return false
	}
	b.openedAt.Store(b.now())
	if b.open.CompareAndSwap(false, true) {
		metrics.CircuitBreakerOpen.Set(1)
		metrics.CircuitBreakerOpenedTotal.Inc()
		return true
	}
	return false
}

// Reset — принудительно закрыть автомат и обнулить счётчики.
func (b *CircuitBreaker) Reset() {
	b.failures.Store(0)
	b.open.Store(false)
	b.openedAt.Store(time.Time{})
	b.probing.Store(false)
	metrics.CircuitBreakerOpen.Set(0)
}

func (b *CircuitBreaker) Failures() int {
	return int(b.failures.Load())
}

// Snapshot — состояние для диагностики; не выдаёт пробу.
func (b *CircuitBreaker) Snapshot() stats.BreakerSnapshot {
	snap := stats.BreakerSnapshot{
		Open:         b.open.Load(),
		FailureCount: b.failures.Load(),
		Threshold:    b.threshold,
		OpenDuration: b.openFor,
	}
	if snap.Open {
		snap.OpenedAt = b.openedAt.Load()
		if remaining := b.openFor - b.now().Sub(snap.OpenedAt); remaining > 0 {
			snap.RemainingOpen = remaining
		}
	}
	return snap
}
