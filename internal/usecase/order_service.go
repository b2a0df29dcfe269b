package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/bookstore_orders/internal/domain"
	"github.com/Gunvolt24/bookstore_orders/internal/ports"
	"github.com/Gunvolt24/bookstore_orders/pkg/metrics"
	"github.com/Gunvolt24/bookstore_orders/pkg/validate"
)

// ErrOrderNotFound — заказа с таким номером нет в БД.
var ErrOrderNotFound = errors.New("order not found")

// DefaultTerminalTTL — сколько держать в кэше доставленный или отменённый заказ.
const DefaultTerminalTTL = 5 * time.Minute

var _ ports.OrderService = (*OrderService)(nil)

// OrderService — прикладная логика работы с заказами (без знаний о транспорте).
type OrderService struct {
	repo      ports.OrderRepository // авторитетное хранилище
	cache     ports.OrderCache      // nil — кэш выключен
	events    ports.EventPublisher  // nil — события не публикуются
	log       ports.Logger
	validator ports.OrderValidator

	terminalTTL time.Duration
	tracer      trace.Tracer
}

type Option func(*OrderService)

// WithEventPublisher — публиковать OrderCreatedEvent после сохранения заказа.
func WithEventPublisher(p ports.EventPublisher) Option {
	return func(s *OrderService) { s.events = p }
}

// WithTerminalTTL — срок жизни в кэше для заказов в конечном статусе (0 — как у остальных).
func WithTerminalTTL(d time.Duration) Option {
	return func(s *OrderService) {
		if d >= 0 {
			s.terminalTTL = d
		}
	}
}

// NewOrderService — DI-конструктор. cache может быть nil.
func NewOrderService(
	repo ports.OrderRepository,
	cache ports.OrderCache,
	log ports.Logger,
	validator ports.OrderValidator,
	opts ...Option,
) *OrderService {
	s := &OrderService{
		repo:        repo,
		cache:       cache,
		log:         log,
		validator:   validator,
		terminalTTL: DefaultTerminalTTL,
		tracer:      otel.Tracer("usecase.OrderService"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindOrder — заказ по номеру: кэш с автоматическим переходом на БД.
// Возвращает (*Order, nil) или (nil, nil), если записи нет.
func (s *OrderService) FindOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.FindOrder",
		trace.WithAttributes(attribute.String("order.number", orderNumber)))
	defer span.End()

	if s.cache == nil {
		return s.findInRepo(ctx, orderNumber, false)
	}

	askedRepo := false
	order, err := s.cache.FindWithAutomaticFallback(ctx, orderNumber, func(ctx context.Context) (*domain.Order, error) {
		askedRepo = true
		return s.findInRepo(ctx, orderNumber, true)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if order == nil && !askedRepo && s.cache.IsCircuitBreakerOpen() {
		// Автомат открылся посреди чтения, а БД ещё не спрашивали: промах кэша ничего не значит.
		metrics.CacheFallbacks.WithLabelValues("opened_during_read").Inc()
		s.log.Warnf(ctx, "circuit breaker opened during read order=%s, reading database", orderNumber)
		return s.findInRepo(ctx, orderNumber, false)
	}
	return order, nil
}

// CreateOrder — валидация, номер заказа, сохранение, кэш и событие.
func (s *OrderService) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder")
	defer span.End()

	if err := s.create(ctx, order, false); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("order.number", order.OrderNumber))
	return order, nil
}

// SaveFromMessage — сохранить заказ, пришедший из Kafka (raw JSON).
// Шаги:
//  1. строгий парсинг JSON (DisallowUnknownFields) → отлавливаем незадокументированные поля;
//  2. доменная валидация (вернёт validate.ErrInvalidOrder при проблемах);
//  3. сохранение в БД, затем запись в кэш с таймаутом и событие.
func (s *OrderService) SaveFromMessage(ctx context.Context, raw []byte) error {
	order, err := validate.DecodeOrderStrict(raw)
	if err != nil {
		s.log.Warnf(ctx, "invalid message err=%v", err)
		return err
	}
	return s.create(ctx, order, true)
}

// ListOrders — проксирование в репозиторий (пагинация уже валидирована на верхнем уровне).
func (s *OrderService) ListOrders(ctx context.Context, limit, offset int) ([]domain.OrderSummary, error) {
	return s.repo.ListOrders(ctx, limit, offset)
}

// UpdateStatus — смена статуса в БД и обновление кэша.
// Если кэш обновить не удалось, запись из него удаляется, чтобы не отдавать старый статус.
func (s *OrderService) UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", validate.ErrInvalidOrder, status)
	}

	order, err := s.repo.UpdateStatus(ctx, orderNumber, status)
	if err != nil {
		s.log.Errorf(ctx, "repo.UpdateStatus failed order=%s err=%v", orderNumber, err)
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	s.refreshCache(ctx, order)
	s.log.Infof(ctx, "order status updated order=%s status=%s", orderNumber, status)
	return order, nil
}

// WarmUpCache — прогрев кэша последними N заказами из БД.
// Если n <= 0 или кэш выключен, прогрев не выполняется (но это не ошибка).
func (s *OrderService) WarmUpCache(ctx context.Context, n int) (int, error) {
	if n <= 0 {
		s.log.Warnf(ctx, "cache warm-up skipped: n <= 0 (n=%d)", n)
		return 0, nil
	}
	if s.cache == nil {
		s.log.Warnf(ctx, "cache warm-up skipped: cache disabled")
		return 0, nil
	}

	keys, err := s.repo.LastOrderNumbers(ctx, n)
	if err != nil {
		s.log.Errorf(ctx, "repo.LastOrderNumbers failed n=%d err=%v", n, err)
		return 0, err
	}
	return s.cache.WarmUpCache(ctx, keys), nil
}

// ------вспомогательные функции------

func (s *OrderService) findInRepo(ctx context.Context, orderNumber string, populate bool) (*domain.Order, error) {
	start := time.Now()
	order, err := s.repo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		s.log.Errorf(ctx, "repo.FindByOrderNumber failed order=%s err=%v", orderNumber, err)
		return nil, err
	}
	s.log.Debugf(ctx, "db fetch order=%s took=%s", orderNumber, time.Since(start))

	if order != nil && populate && !s.cache.CacheOrder(ctx, orderNumber, order) {
		s.log.Warnf(ctx, "cache populate skipped order=%s", orderNumber)
	}
	return order, nil
}

// create — общий путь для HTTP и Kafka; timed — запись в кэш ограничена по времени.
func (s *OrderService) create(ctx context.Context, order *domain.Order, timed bool) error {
	if err := s.validator.Validate(ctx, order); err != nil {
		s.log.Warnf(ctx, "validation failed err=%v", err)
		return fmt.Errorf("validation failed: %w", err)
	}

	if order.OrderNumber == "" {
		order.OrderNumber = uuid.NewString()
	}
	order.Status = domain.StatusNew

	if err := s.repo.Save(ctx, order); err != nil {
		s.log.Errorf(ctx, "repo.Save failed order=%s err=%v", order.OrderNumber, err)
		return fmt.Errorf("failed to save order: %w", err)
	}

	if s.cache != nil {
		var cached bool
		if timed {
			cached = s.cache.CacheOrderWithTimeout(ctx, order.OrderNumber, order)
		} else {
			cached = s.cache.CacheOrder(ctx, order.OrderNumber, order)
		}
		if !cached {
			s.log.Warnf(ctx, "order not cached order=%s", order.OrderNumber)
		}
	}

	if s.events != nil {
		event := domain.NewOrderCreatedEvent(uuid.NewString(), order)
		if err := s.events.PublishOrderCreated(ctx, event); err != nil {
			s.log.Warnf(ctx, "publish order created failed order=%s err=%v", order.OrderNumber, err)
		}
	}

	s.log.Infof(ctx, "order saved number=%s product=%s qty=%d", order.OrderNumber, order.Item.Code, order.Item.Quantity)
	return nil
}

func (s *OrderService) refreshCache(ctx context.Context, order *domain.Order) {
	if s.cache == nil {
		return
	}
	var ok bool
	if order.Status.Terminal() && s.terminalTTL > 0 {
		ok = s.cache.CacheOrderWithTTL(ctx, order.OrderNumber, order, s.terminalTTL)
	} else {
		ok = s.cache.UpdateCachedOrder(ctx, order.OrderNumber, order)
	}
	if ok {
		return
	}
	if !s.cache.RemoveFromCache(ctx, order.OrderNumber) {
		s.log.Warnf(ctx, "stale cache entry may remain order=%s", order.OrderNumber)
	}
}
