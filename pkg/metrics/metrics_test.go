package metrics_test

import (
	"testing"

	"github.com/Gunvolt24/bookstore_orders/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	// Должно выполняться без паники даже при повторном вызове.
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestKafkaCounters_Inc(t *testing.T) {
	metrics.MustRegister()

	beforeConsumed := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("orders"))
	beforePublished := testutil.ToFloat64(metrics.KafkaEventsPublished.WithLabelValues("orders.new", "ok"))

	metrics.KafkaMessagesConsumed.WithLabelValues("orders").Inc()
	metrics.KafkaEventsPublished.WithLabelValues("orders.new", "ok").Inc()

	if got := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("orders")); got != beforeConsumed+1 {
		t.Fatalf("KafkaMessagesConsumed: got=%v want=%v", got, beforeConsumed+1)
	}
	if got := testutil.ToFloat64(metrics.KafkaEventsPublished.WithLabelValues("orders.new", "ok")); got != beforePublished+1 {
		t.Fatalf("KafkaEventsPublished: got=%v want=%v", got, beforePublished+1)
	}
}

func TestCacheOps_CountersByLabel(t *testing.T) {
	metrics.MustRegister()

	hitBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit"))
	missBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("miss"))

	metrics.CacheOps.WithLabelValues("hit").Inc()
	metrics.CacheOps.WithLabelValues("hit").Inc()

	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit")); got != hitBefore+2 {
		t.Fatalf("CacheOps(hit): got=%v want=%v", got, hitBefore+2)
	}
	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("miss")); got != missBefore {
		t.Fatalf("CacheOps(miss): got=%v want=%v", got, missBefore)
	}
}

func TestCacheErrors_ByOperationAndKind(t *testing.T) {
	metrics.MustRegister()

	before := testutil.ToFloat64(metrics.CacheErrors.WithLabelValues("get", "circuit_open"))
	metrics.CacheErrors.WithLabelValues("get", "circuit_open").Inc()

	if got := testutil.ToFloat64(metrics.CacheErrors.WithLabelValues("get", "circuit_open")); got != before+1 {
		t.Fatalf("CacheErrors(get,circuit_open): got=%v want=%v", got, before+1)
	}
}

func TestCircuitBreakerGauge_Set(t *testing.T) {
	metrics.MustRegister()

	cur := testutil.ToFloat64(metrics.CircuitBreakerOpen)
	metrics.CircuitBreakerOpen.Set(1)
	if got := testutil.ToFloat64(metrics.CircuitBreakerOpen); got != 1 {
		t.Fatalf("CircuitBreakerOpen: got=%v want=1", got)
	}
	metrics.CircuitBreakerOpen.Set(cur) // вернуть как было
}
