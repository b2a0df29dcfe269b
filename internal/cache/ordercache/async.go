package ordercache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/bookstore_orders/internal/cache/policy"
)

type result[T any] struct {
	val T
	err error
}

// await — запускает fn в отдельной горутине и ждёт результат не дольше timeout.
// По истечении срока возвращает policy.ErrCacheTimeout; контекст fn при этом отменяется.
func await[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan result[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result[T]{err: fmt.Errorf("%w: panic: %v", policy.ErrCacheOperation, r)}
			}
		}()
		val, err := fn(ctx)
		done <- result[T]{val: val, err: err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%w after %s", policy.ErrCacheTimeout, timeout)
		}
		return zero, ctx.Err()
	}
}
