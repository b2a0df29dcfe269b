package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/bookstore_orders/internal/domain"
	"github.com/Gunvolt24/bookstore_orders/internal/ports"
	"github.com/Gunvolt24/bookstore_orders/pkg/metrics"
)

const eventTypeOrderCreated = "order.created"

var _ ports.EventPublisher = (*Producer)(nil)

// writer — минимальный контракт над kafka.Writer для подмены в тестах.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer — публикация OrderCreatedEvent в Kafka.
type Producer struct {
	writer    writer
	topic     string
	log       ports.Logger
	closeOnce sync.Once
}

func NewProducer(cfg *ProducerConfig, log ports.Logger) *Producer {
	return &Producer{
		writer: cfg.Writer(),
		topic:  cfg.Topic,
		log:    log,
	}
}

// PublishOrderCreated — JSON события, ключ — номер заказа (события одного заказа в одной партиции).
func (p *Producer) PublishOrderCreated(ctx context.Context, event domain.OrderCreatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order created event: %w", err)
	}

	headers := []kafka.Header{{Key: headerEventType, Value: []byte(eventTypeOrderCreated)}}
	injectMeta(ctx, &headers)

	msg := kafka.Message{
		Key:     []byte(event.OrderNumber),
		Value:   payload,
		Headers: headers,
		Time:    event.CreatedAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.KafkaEventsPublished.WithLabelValues(p.topic, "error").Inc()
		return fmt.Errorf("publish order created order=%s: %w", event.OrderNumber, err)
	}

	metrics.KafkaEventsPublished.WithLabelValues(p.topic, "ok").Inc()
	p.log.Debugf(ctx, "order created event published order=%s event_id=%s", event.OrderNumber, event.EventID)
	return nil
}

// Close — дожидается отправки буфера и закрывает writer.
func (p *Producer) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}
