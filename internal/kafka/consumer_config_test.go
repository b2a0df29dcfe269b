package kafka_test

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	mykafka "github.com/Gunvolt24/bookstore_orders/internal/kafka"
)

func TestConsumerConfig_ReaderConfig(t *testing.T) {
	offsets := map[string]int64{
		"first":        kafkago.FirstOffset,
		" FiRsT \n":    kafkago.FirstOffset,
		"":             kafkago.LastOffset,
		"LAST":         kafkago.LastOffset,
		"from-the-70s": kafkago.LastOffset,
	}

	for in, want := range offsets {
		cfg := mykafka.ConsumerConfig{Brokers: []string{"k1:9092", "k2:9092"}, Topic: "orders", GroupID: "orders-cache", StartOffset: in}
		rc := cfg.ReaderConfig()

		if rc.StartOffset != want {
			t.Fatalf("StartOffset(%q): want %d, got %d", in, want, rc.StartOffset)
		}
		if rc.Topic != "orders" || rc.GroupID != "orders-cache" || len(rc.Brokers) != 2 {
			t.Fatalf("reader config not propagated: %+v", rc)
		}
		// оффсеты коммитятся вручную после обработки
		if rc.CommitInterval != 0 {
			t.Fatalf("CommitInterval: want 0, got %v", rc.CommitInterval)
		}
	}
}

func TestProducerConfig_Writer(t *testing.T) {
	w := (&mykafka.ProducerConfig{Brokers: []string{"k1:9092"}, Topic: "orders.new"}).Writer()
	defer w.Close()

	if w.Topic != "orders.new" || w.WriteTimeout != 5*time.Second {
		t.Fatalf("unexpected writer: topic=%s timeout=%s", w.Topic, w.WriteTimeout)
	}
	if w.RequiredAcks != kafkago.RequireAll {
		t.Fatalf("events must be acknowledged by all replicas")
	}
	if _, ok := w.Balancer.(*kafkago.Hash); !ok {
		t.Fatalf("key hash balancer keeps one order in one partition, got %T", w.Balancer)
	}

	w2 := (&mykafka.ProducerConfig{Topic: "x", WriteTimeout: time.Second}).Writer()
	defer w2.Close()
	if w2.WriteTimeout != time.Second {
		t.Fatalf("explicit write timeout ignored: %s", w2.WriteTimeout)
	}
}
