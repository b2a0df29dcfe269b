package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const defaultEndpoint = "localhost:4318"

// Options — параметры трассировки.
type Options struct {
	ServiceName string
	// Endpoint — host:port OTLP/HTTP коллектора (без схемы).
	Endpoint    string
	SampleRatio float64
}

// Shutdown — сброс буфера спанов и остановка провайдера.
type Shutdown func(context.Context) error

// Setup — OTLP/HTTP экспорт, глобальные провайдер и пропагаторы (TraceContext + Baggage).
func Setup(ctx context.Context, opts Options) (Shutdown, error) {
	opts = opts.normalized()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(opts.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	tp := NewProvider(exporter, opts)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown, nil
}

// NewProvider — провайдер с батч-экспортом в exporter.
// Семплинг по доле trace_id, решение родителя наследуется: цепочка HTTP → Kafka не рвётся.
func NewProvider(exporter sdktrace.SpanExporter, opts Options) *sdktrace.TracerProvider {
	opts = opts.normalized()
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(opts.ServiceName),
		)),
	)
}

func (o Options) normalized() Options {
	if o.Endpoint == "" {
		o.Endpoint = defaultEndpoint
	}
	if o.ServiceName == "" {
		o.ServiceName = "bookstore-orders"
	}
	o.SampleRatio = min(max(o.SampleRatio, 0), 1)
	return o
}
