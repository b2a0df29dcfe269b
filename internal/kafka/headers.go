package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/Gunvolt24/bookstore_orders/pkg/ctxmeta"
)

const (
	headerRequestID = "X-Request-ID"
	headerEventType = "event-type"
)

var _ propagation.TextMapCarrier = headerCarrier{}

// headerCarrier — заголовки сообщения Kafka как носитель trace-контекста.
type headerCarrier struct {
	headers *[]kafka.Header
}

func (c headerCarrier) Get(key string) string {
	for _, h := range *c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c headerCarrier) Set(key, value string) {
	for i := range *c.headers {
		if (*c.headers)[i].Key == key {
			(*c.headers)[i].Value = []byte(value)
			return
		}
	}
	*c.headers = append(*c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*c.headers))
	for _, h := range *c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

// injectMeta — request_id и trace-контекст в заголовки исходящего сообщения.
func injectMeta(ctx context.Context, headers *[]kafka.Header) {
	carrier := headerCarrier{headers: headers}
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		carrier.Set(headerRequestID, rid)
	}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
}

// extractMeta — обратная операция для входящего сообщения.
func extractMeta(ctx context.Context, msg *kafka.Message) context.Context {
	carrier := headerCarrier{headers: &msg.Headers}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)
	return ctxmeta.WithRequestID(ctx, carrier.Get(headerRequestID))
}
