package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
	KafkaEventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_events_published_total",
			Help: "Order events written to Kafka",
		},
		[]string{"topic", "result"}, // ok|error
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache store operations",
		},
		[]string{"op"}, // hit|miss|expired|evicted|loaded|put|removed
	)
	CacheSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
		[]string{"cache"},
	)
	CacheErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_errors_total",
			Help: "Cache operation errors by kind",
		},
		[]string{"operation", "kind"}, // failure|circuit_open|timeout|panic
	)
	CacheOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cache_operation_duration_seconds",
			Help:    "Duration of guarded cache operations",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)
	CacheFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_database_fallbacks_total",
			Help: "Reads served by the database because the cache was skipped or empty",
		},
		[]string{"reason"}, // circuit_open|error_rate|miss
	)
)

var (
	CircuitBreakerOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_circuit_breaker_open",
			Help: "1 when the cache circuit breaker is open",
		},
	)
	CircuitBreakerOpenedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_circuit_breaker_opened_total",
			Help: "How many times the cache circuit breaker has opened",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрация в глобальном реестре; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, KafkaEventsPublished,
			CacheOps, CacheSize, CacheErrors, CacheOperationDuration, CacheFallbacks,
			CircuitBreakerOpen, CircuitBreakerOpenedTotal,
		)
	})
}
