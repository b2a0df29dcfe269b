package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/bookstore_orders/internal/domain"
	"github.com/Gunvolt24/bookstore_orders/internal/kafka/mocks"
	"github.com/Gunvolt24/bookstore_orders/pkg/ctxmeta"
	"github.com/Gunvolt24/bookstore_orders/pkg/metrics"
)

func newTestProducer(w writer, topic string) *Producer {
	return &Producer{writer: w, topic: topic, log: nopLogger{}}
}

func testEvent() domain.OrderCreatedEvent {
	return domain.OrderCreatedEvent{
		EventID:     "ev-1",
		OrderNumber: "ORD-1",
		ProductCode: "P100",
		Quantity:    2,
		Customer:    domain.Customer{Name: "Ann", Email: "ann@example.com", Phone: "+100"},
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestProducer_PublishOrderCreated(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)
	const topic = "orders.new.publish-ok"

	var sent kafka.Message
	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			sent = msgs[0]
			return nil
		})

	ctx := ctxmeta.WithRequestID(context.Background(), "rid-42")
	if err := newTestProducer(w, topic).PublishOrderCreated(ctx, testEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(sent.Key) != "ORD-1" {
		t.Fatalf("message key: want ORD-1, got %q", sent.Key)
	}
	var got domain.OrderCreatedEvent
	if err := json.Unmarshal(sent.Value, &got); err != nil {
		t.Fatalf("payload is not json: %v", err)
	}
	if got.OrderNumber != "ORD-1" || got.ProductCode != "P100" || got.Quantity != 2 || got.Customer.Email != "ann@example.com" {
		t.Fatalf("unexpected payload: %+v", got)
	}

	carrier := headerCarrier{headers: &sent.Headers}
	if carrier.Get(headerEventType) != eventTypeOrderCreated {
		t.Fatalf("event-type header missing: %v", sent.Headers)
	}
	if carrier.Get(headerRequestID) != "rid-42" {
		t.Fatalf("request id header missing: %v", sent.Headers)
	}
	if v := testutil.ToFloat64(metrics.KafkaEventsPublished.WithLabelValues(topic, "ok")); v != 1 {
		t.Fatalf("published metric: want 1, got %v", v)
	}
}

func TestProducer_PublishError(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)
	const topic = "orders.new.publish-err"
	brokerErr := errors.New("broker down")

	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(brokerErr)

	err := newTestProducer(w, topic).PublishOrderCreated(context.Background(), testEvent())
	if !errors.Is(err, brokerErr) {
		t.Fatalf("want wrapped broker error, got %v", err)
	}
	if v := testutil.ToFloat64(metrics.KafkaEventsPublished.WithLabelValues(topic, "error")); v != 1 {
		t.Fatalf("error metric: want 1, got %v", v)
	}
}

func TestProducer_CloseOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)
	w.EXPECT().Close().Return(nil).Times(1)

	p := newTestProducer(w, "orders.new")
	if err := p.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second close must be a no-op, got %v", err)
	}
}

func TestHeaderCarrier_SetReplaces(t *testing.T) {
	var headers []kafka.Header
	c := headerCarrier{headers: &headers}

	c.Set("traceparent", "a")
	c.Set("traceparent", "b")
	c.Set(headerRequestID, "rid")

	if len(headers) != 2 || c.Get("traceparent") != "b" {
		t.Fatalf("unexpected headers: %+v", headers)
	}
	if keys := c.Keys(); len(keys) != 2 || keys[0] != "traceparent" || keys[1] != headerRequestID {
		t.Fatalf("unexpected keys: %v", keys)
	}
	if c.Get("missing") != "" {
		t.Fatalf("missing header must be empty")
	}
}

func TestExtractMeta_RequestID(t *testing.T) {
	msg := kafka.Message{Headers: []kafka.Header{{Key: headerRequestID, Value: []byte("rid-7")}}}

	ctx := extractMeta(context.Background(), &msg)
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); !ok || rid != "rid-7" {
		t.Fatalf("request id not extracted: %q %v", rid, ok)
	}
}
