// Пакет ctxmeta: метаданные запроса в context.Context: request_id,
// номер заказа, trace/span активного спана. Общий для HTTP, Kafka и логгера.
package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type (
	requestIDKey   struct{}
	orderNumberKey struct{}
)

// WithRequestID — пустой id контекст не меняет.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, requestIDKey{})
}

// WithOrderNumber — номер заказа, с которым работает текущая операция.
func WithOrderNumber(ctx context.Context, orderNumber string) context.Context {
	return withString(ctx, orderNumberKey{}, orderNumber)
}

func OrderNumberFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, orderNumberKey{})
}

// TraceIDFromContext — trace_id активного спана, если спан валиден.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return "", false
	}
	return sc.TraceID().String(), true
}

func SpanIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasSpanID() {
		return "", false
	}
	return sc.SpanID().String(), true
}

// Fields — пары ключ/значение для структурного лога; отсутствующие пропускаются.
func Fields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	var fields []any
	add := func(key string, get func(context.Context) (string, bool)) {
		if v, ok := get(ctx); ok {
			fields = append(fields, key, v)
		}
	}
	add("request_id", RequestIDFromContext)
	add("order_number", OrderNumberFromContext)
	add("trace_id", TraceIDFromContext)
	add("span_id", SpanIDFromContext)
	return fields
}

func withString(ctx context.Context, key any, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func stringFrom(ctx context.Context, key any) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(key).(string)
	return v, ok && v != ""
}
