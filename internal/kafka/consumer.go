package kafka

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/bookstore_orders/internal/ports"
	"github.com/Gunvolt24/bookstore_orders/pkg/metrics"
)

var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — то, что нужно консьюмеру от kafka.Reader (подменяется моком в тестах).
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// orderSaver — разбор, валидация и сохранение заказа из тела сообщения.
type orderSaver interface {
	SaveFromMessage(ctx context.Context, raw []byte) error
}

// Consumer — входящие заказы из Kafka с ручным коммитом оффсетов.
type Consumer struct {
	reader         reader
	service        orderSaver
	log            ports.Logger
	tracer         trace.Tracer
	processTimeout time.Duration

	// fetchBackoff — паузы между неудачными FetchMessage;
	// failBackoff — паузы после подряд идущих временных ошибок обработки.
	// Оба используются только из цикла Run.
	fetchBackoff backoff.BackOff
	failBackoff  backoff.BackOff

	closeOnce sync.Once
}

// NewConsumer — конструктор; нулевые таймауты заменяются значениями по умолчанию.
func NewConsumer(cfg *ConsumerConfig, service orderSaver, log ports.Logger) *Consumer {
	processTimeout := cfg.ProcessTimeout
	if processTimeout <= 0 {
		processTimeout = 5 * time.Second
	}
	retryInitial := cfg.RetryInitial
	if retryInitial <= 0 {
		retryInitial = time.Second
	}
	retryMax := cfg.RetryMax
	if retryMax <= 0 {
		retryMax = 30 * time.Second
	}

	return &Consumer{
		reader:         kafka.NewReader(cfg.ReaderConfig()),
		service:        service,
		log:            log,
		tracer:         otel.Tracer("kafka.Consumer"),
		processTimeout: processTimeout,
		fetchBackoff:   newBackoff(retryInitial, retryMax),
		failBackoff:    newBackoff(min(retryInitial, 500*time.Millisecond), retryMax),
	}
}

// newBackoff — экспоненциальная пауза с джиттером ±50% и без ограничения по общему времени.
func newBackoff(initial, maxInterval time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.MaxInterval = maxInterval
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Run — основной цикл до отмены ctx:
//   - обработано или невалидно: коммит (невалидное больше не читаем);
//   - временная ошибка: без коммита, сообщение придёт снова после перезапуска группы (at-least-once).
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "order consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			pause := c.fetchBackoff.NextBackOff()
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", err, pause)
			if !sleepCtx(ctx, pause) {
				return ctx.Err()
			}
			continue
		}
		c.fetchBackoff.Reset()
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if c.handleMessage(ctx, rc.Topic, &msg) {
			c.failBackoff.Reset()
			c.commit(ctx, &msg)
			continue
		}
		if !sleepCtx(ctx, c.failBackoff.NextBackOff()) {
			return ctx.Err()
		}
	}
}

// Close — закрывает reader; повторные вызовы ничего не делают.
func (c *Consumer) Close() (err error) {
	c.closeOnce.Do(func() {
		err = c.reader.Close()
	})
	return err
}
