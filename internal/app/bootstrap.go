package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/bookstore_orders/config"
	"github.com/Gunvolt24/bookstore_orders/internal/kafka"
	"github.com/Gunvolt24/bookstore_orders/internal/ports"
	"github.com/Gunvolt24/bookstore_orders/internal/repo/postgres"
	rest "github.com/Gunvolt24/bookstore_orders/internal/transport/http"
	"github.com/Gunvolt24/bookstore_orders/internal/usecase"
	"github.com/Gunvolt24/bookstore_orders/pkg/logger"
	"github.com/Gunvolt24/bookstore_orders/pkg/metrics"
	"github.com/Gunvolt24/bookstore_orders/pkg/telemetry"
	"github.com/Gunvolt24/bookstore_orders/pkg/validate"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// App — HTTP-сервер и консьюмер входящих заказов поверх общего сервиса заказов.
type App struct {
	Logger          ports.Logger
	HTTPServer      *http.Server
	KafkaConsumer   ports.MessageConsumer
	gracefulTimeout time.Duration
}

// Cleanup — освобождение ресурсов, поднятых Bootstrap.
type Cleanup func()

// releaser — стек освобождения ресурсов: закрываются в обратном порядке открытия.
type releaser struct {
	log   ports.Logger
	steps []func(context.Context) error
	names []string
}

func (r *releaser) push(name string, fn func(context.Context) error) {
	r.names = append(r.names, name)
	r.steps = append(r.steps, fn)
}

func (r *releaser) release(ctx context.Context) {
	for i := len(r.steps) - 1; i >= 0; i-- {
		if err := r.steps[i](ctx); err != nil {
			r.log.Warnf(ctx, "release %s: %v", r.names[i], err)
		}
	}
	r.steps, r.names = nil, nil
}

// ginMode — режим Gin по строке конфигурации; неизвестное значение — debug.
func ginMode(mode string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		return gin.ReleaseMode, true
	case "test":
		return gin.TestMode, true
	case "", "debug":
		return gin.DebugMode, true
	default:
		return gin.DebugMode, false
	}
}

// Bootstrap — сборка приложения: Postgres, кэш заказов, Kafka, HTTP.
// При ошибке уже поднятые ресурсы освобождаются до возврата.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	logg, syncLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}
	rel := &releaser{log: logg}
	rel.push("logger", func(context.Context) error { return syncLogger() })
	fail := func(err error) (*App, Cleanup, error) {
		rel.release(context.Background())
		return nil, func() {}, err
	}

	metrics.MustRegister()

	if cfg.Tracing.Enabled {
		shutdownTrace, err := telemetry.Setup(ctx, telemetry.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			// без трейсинга сервис работоспособен
			logg.Warnf(ctx, "tracing disabled: %v", err)
		} else {
			logg.Infof(ctx, "tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			rel.push("tracing", shutdownTrace)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		return fail(err)
	}
	rel.push("postgres", func(context.Context) error { pool.Close(); return nil })

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			return fail(err)
		}
	}

	repo := postgres.NewOrderRepository(pool)
	cache, err := newOrderCache(ctx, cfg.Cache, repo, logg)
	if err != nil {
		return fail(err)
	}
	rel.push("order cache", func(context.Context) error { return cache.close() })

	opts := []usecase.Option{usecase.WithTerminalTTL(cfg.Cache.TerminalTTL())}
	if cfg.Kafka.EventsTopic != "" {
		producer := kafka.NewProducer(&kafka.ProducerConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.EventsTopic}, logg)
		rel.push("kafka producer", func(context.Context) error { return producer.Close() })
		opts = append(opts, usecase.WithEventPublisher(producer))
	}
	orders := usecase.NewOrderService(repo, cache.orderCachePort(), logg, validate.NewOrderValidator(), opts...)

	if n := cfg.Cache.WarmUpN; n > 0 {
		if _, err := orders.WarmUpCache(ctx, n); err != nil {
			logg.Warnf(ctx, "cache warm-up failed: %v", err)
		}
	}

	consumer := kafka.NewConsumer(&kafka.ConsumerConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.GroupID,
		Topic:          cfg.Kafka.Topic,
		StartOffset:    cfg.Kafka.StartOffset,
		ProcessTimeout: cfg.Kafka.ProcessTimeout,
		RetryInitial:   cfg.Kafka.RetryInitial,
		RetryMax:       cfg.Kafka.RetryMax,
	}, orders, logg)
	rel.push("kafka consumer", func(context.Context) error { return consumer.Close() })

	app := &App{
		Logger:          logg,
		HTTPServer:      newHTTPServer(ctx, cfg, rest.NewHandler(orders, cache.adminPort(), logg, cfg.HTTP.HandlerTimeout), logg),
		KafkaConsumer:   consumer,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}
	return app, func() { rel.release(context.Background()) }, nil
}

func newHTTPServer(ctx context.Context, cfg *config.Config, h *rest.Handler, log ports.Logger) *http.Server {
	mode, known := ginMode(cfg.HTTP.GinMode)
	if !known {
		log.Warnf(ctx, "unknown GIN_MODE=%q, using debug", cfg.HTTP.GinMode)
	}
	gin.SetMode(mode)

	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	return &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           rest.NewRouter(h, "", otelServiceName),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}
}

// Run — HTTP-сервер и консьюмер до отмены ctx или первой фатальной ошибки любого из них,
// затем корректная остановка обоих. Отмена ctx: штатное завершение (nil).
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Infof(ctx, "order consumer starting")
		err := a.KafkaConsumer.Run(gctx)
		if gctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		a.Logger.Infof(ctx, "http server listening addr=%s", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Infof(ctx, "stopping http server and consumer")
		a.shutdown(ctx)
		return nil
	})

	err := g.Wait()
	if err != nil {
		a.Logger.Errorf(ctx, "background component failed: %v", err)
	}
	a.Logger.Infof(ctx, "orders service stopped")
	return err
}

func (a *App) shutdown(ctx context.Context) {
	timeout := a.gracefulTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	// ctx уже отменён: на остановку отдельный бюджет
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := a.HTTPServer.Shutdown(stopCtx); err != nil {
		a.Logger.Warnf(ctx, "http shutdown: %v", err)
	}
	if err := a.KafkaConsumer.Close(); err != nil {
		a.Logger.Warnf(ctx, "consumer close: %v", err)
	}
}
