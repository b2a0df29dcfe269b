package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/bookstore_orders/pkg/ctxmeta"
	"github.com/Gunvolt24/bookstore_orders/pkg/metrics"
	"github.com/Gunvolt24/bookstore_orders/pkg/validate"
)

// handleMessage — true, если оффсет можно коммитить.
// Trace-контекст и request_id берутся из заголовков сообщения.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	msgCtx, span := c.tracer.Start(extractMeta(ctx, msg), "kafka.consume order",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.destination", topic),
			attribute.Int("messaging.kafka.partition", msg.Partition),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		))
	defer span.End()
	msgCtx = ctxmeta.WithOrderNumber(msgCtx, string(msg.Key))

	ctxTimeout, cancel := context.WithTimeout(msgCtx, c.processTimeout)
	err := c.service.SaveFromMessage(ctxTimeout, msg.Value)
	cancel()
	if err != nil {
		span.RecordError(err)
	}

	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return true
	case errors.Is(err, validate.ErrInvalidOrder):
		// невалидное не станет валидным при повторе
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(msgCtx, "invalid order message offset=%d key=%s: %v (skipped)", msg.Offset, msg.Key, err)
		return true
	default:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(msgCtx, "process failed offset=%d: %v (will retry without commit)", msg.Offset, err)
		return false
	}
}

// commit — ошибка коммита только логируется: сообщение будет перечитано, а сохранение идемпотентно.
func (c *Consumer) commit(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, err)
	}
}

// sleepCtx — false, если ctx отменили раньше, чем прошло d.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
