// Package policy оборачивает вызовы кэша: гейт автомата, учёт ошибок,
// подмена результата запасным значением.
package policy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/atomic"

	"github.com/Gunvolt24/bookstore_orders/internal/cache/breaker"
	"github.com/Gunvolt24/bookstore_orders/internal/cache/stats"
	"github.com/Gunvolt24/bookstore_orders/internal/ports"
	"github.com/Gunvolt24/bookstore_orders/pkg/metrics"
)

// DefaultFallbackErrorThreshold — после стольких ошибок операции чтение идёт сразу в БД.
const DefaultFallbackErrorThreshold = 3

type errorStat struct {
	count atomic.Int64
	last  atomic.Time
}

// ErrorPolicy — потокобезопасна; одна на процесс вместе с автоматом.
type ErrorPolicy struct {
	breaker *breaker.CircuitBreaker
	log     ports.Logger
	now     func() time.Time

	fallbackThreshold int64
	errors            [opCount]errorStat
}

// New — DI-конструктор.
func New(cb *breaker.CircuitBreaker, log ports.Logger) *ErrorPolicy {
	return &ErrorPolicy{
		breaker:           cb,
		log:               log,
		now:               time.Now,
		fallbackThreshold: DefaultFallbackErrorThreshold,
	}
}

func (p *ErrorPolicy) Breaker() *breaker.CircuitBreaker { return p.breaker }

// ExecuteWithFallback — выполнить операцию кэша. При открытом автомате fn не вызывается;
// при ошибке или панике fn результат заменяется на fallback(). Ошибка наружу не уходит.
func ExecuteWithFallback[T any](
	ctx context.Context,
	p *ErrorPolicy,
	op Operation,
	key string,
	fn func(context.Context) (T, error),
	fallback func() T,
) T {
	if !p.breaker.Allow() {
		p.skip(ctx, op, key)
		return fallback()
	}

	start := time.Now()
	val, err := call(ctx, fn)
	metrics.CacheOperationDuration.WithLabelValues(op.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		p.fail(ctx, op, key, err)
		return fallback()
	}
	p.succeed(ctx)
	return val
}

// Execute — ExecuteWithFallback с нулевым значением в качестве запасного.
func Execute[T any](ctx context.Context, p *ErrorPolicy, op Operation, key string, fn func(context.Context) (T, error)) T {
	return ExecuteWithFallback(ctx, p, op, key, fn, func() T {
		var zero T
		return zero
	})
}

// ExecuteVoid — для операций записи: true, если операция выполнена без ошибки.
func (p *ErrorPolicy) ExecuteVoid(ctx context.Context, op Operation, key string, fn func(context.Context) error) bool {
	return ExecuteWithFallback(ctx, p, op, key, func(ctx context.Context) (bool, error) {
		if err := fn(ctx); err != nil {
			return false, err
		}
		return true, nil
	}, func() bool { return false })
}

// ShouldFallbackToDatabase — автомат открыт или у операции накопилось больше порога ошибок.
func (p *ErrorPolicy) ShouldFallbackToDatabase(op Operation) bool {
	if p.breaker.IsOpen() {
		metrics.CacheFallbacks.WithLabelValues("circuit_open").Inc()
		return true
	}
	if op >= 0 && op < opCount && p.errors[op].count.Load() > p.fallbackThreshold {
		metrics.CacheFallbacks.WithLabelValues("error_rate").Inc()
		return true
	}
	return false
}

// CheckHealth — выполнить пробу; успех принудительно закрывает автомат.
// Неудача состояние автомата не меняет.
func (p *ErrorPolicy) CheckHealth(ctx context.Context, probe func(context.Context) (bool, error)) bool {
	ok, err := call(ctx, probe)
	if err != nil {
		p.recordError(OpHealthCheck)
		p.log.Warnf(ctx, "cache health check failed err=%v", err)
		return false
	}
	if !ok {
		p.log.Warnf(ctx, "cache health check returned unexpected data")
		return false
	}
	if p.breaker.RecordSuccess() {
		p.log.Infof(ctx, "circuit breaker closed after successful health check")
	}
	return true
}

// Reset — закрыть автомат и обнулить счётчики ошибок.
func (p *ErrorPolicy) Reset(ctx context.Context) {
	p.breaker.Reset()
	for i := range p.errors {
		p.errors[i].count.Store(0)
		p.errors[i].last.Store(time.Time{})
	}
	p.log.Infof(ctx, "cache error state reset")
}

// Status — снимок автомата и операций, по которым были ошибки.
func (p *ErrorPolicy) Status() stats.CircuitBreakerStatus {
	status := stats.CircuitBreakerStatus{Breaker: p.breaker.Snapshot()}
	for _, op := range Operations() {
		n := p.errors[op].count.Load()
		if n == 0 {
			continue
		}
		status.Errors = append(status.Errors, stats.ErrorStat{
			Operation:   op.String(),
			Count:       n,
			LastErrorAt: p.errors[op].last.Load(),
		})
		status.TotalErrors += n
	}
	return status
}

// ErrorCount — число ошибок операции.
func (p *ErrorPolicy) ErrorCount(op Operation) int64 {
	if op < 0 || op >= opCount {
		return 0
	}
	return p.errors[op].count.Load()
}

// ------вспомогательные функции------

func (p *ErrorPolicy) skip(ctx context.Context, op Operation, key string) {
	p.recordError(op)
	metrics.CacheErrors.WithLabelValues(op.String(), "circuit_open").Inc()
	p.log.Debugf(ctx, "cache %s skipped key=%s: %v", op, key, ErrCacheUnavailable)
}

func (p *ErrorPolicy) fail(ctx context.Context, op Operation, key string, err error) {
	p.recordError(op)
	kind := "failure"
	if errors.Is(err, ErrCacheTimeout) || errors.Is(err, context.DeadlineExceeded) {
		kind = "timeout"
	}
	metrics.CacheErrors.WithLabelValues(op.String(), kind).Inc()
	p.log.Warnf(ctx, "cache %s failed key=%s err=%v", op, key, err)

	if p.breaker.RecordFailure() {
		p.log.Errorf(ctx, "circuit breaker opened after %d consecutive failures", p.breaker.Failures())
	}
}

func (p *ErrorPolicy) succeed(ctx context.Context) {
	if p.breaker.RecordSuccess() {
		p.log.Infof(ctx, "circuit breaker closed")
	}
}

func (p *ErrorPolicy) recordError(op Operation) {
	if op < 0 || op >= opCount {
		return
	}
	p.errors[op].count.Inc()
	p.errors[op].last.Store(p.now())
}

// call — паника внутри операции кэша считается её сбоем.
func call[T any](ctx context.Context, fn func(context.Context) (T, error)) (val T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrCacheOperation, r)
		}
	}()
	return fn(ctx)
}
