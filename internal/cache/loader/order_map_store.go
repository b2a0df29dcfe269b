// Package loader: мост между промахом кэша и БД.
package loader

import (
	"context"
	"time"

	"github.com/Gunvolt24/bookstore_orders/internal/domain"
	"github.com/Gunvolt24/bookstore_orders/internal/ports"
)

// orderFinder — минимальный контракт БД, нужный загрузчику.
type orderFinder interface {
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	FindByOrderNumbers(ctx context.Context, orderNumbers []string) ([]*domain.Order, error)
}

// OrderMapStore — загрузчик для хранилища кэша. Читает из БД, запись в БД не делает:
// заказ сохраняет сервис заказов до того, как положить его в кэш.
type OrderMapStore struct {
	repo orderFinder
	log  ports.Logger
}

var _ ports.OrderMapStore = (*OrderMapStore)(nil)

// NewOrderMapStore — DI-конструктор.
func NewOrderMapStore(repo orderFinder, log ports.Logger) *OrderMapStore {
	return &OrderMapStore{repo: repo, log: log}
}

// Load — заказ по номеру; nil, если его нет или БД ответила ошибкой.
func (s *OrderMapStore) Load(ctx context.Context, key string) *domain.Order {
	start := time.Now()
	order, err := s.repo.FindByOrderNumber(ctx, key)
	if err != nil {
		s.log.Errorf(ctx, "cache loader: load failed order_number=%s err=%v", key, err)
		return nil
	}
	if order == nil {
		s.log.Debugf(ctx, "cache loader: order not found order_number=%s", key)
		return nil
	}
	s.log.Debugf(ctx, "cache loader: loaded order_number=%s took=%s", key, time.Since(start))
	return order
}

// LoadAll — одним запросом; при ошибке запроса — по одному ключу.
// Ненайденные и упавшие ключи в результат не попадают.
func (s *OrderMapStore) LoadAll(ctx context.Context, keys []string) map[string]*domain.Order {
	result := make(map[string]*domain.Order, len(keys))
	if len(keys) == 0 {
		return result
	}

	orders, err := s.repo.FindByOrderNumbers(ctx, keys)
	if err == nil {
		for _, order := range orders {
			if order != nil {
				result[order.OrderNumber] = order
			}
		}
		s.log.Debugf(ctx, "cache loader: bulk loaded %d of %d orders", len(result), len(keys))
		return result
	}

	s.log.Warnf(ctx, "cache loader: bulk load failed, loading one by one keys=%d err=%v", len(keys), err)
	for _, key := range keys {
		if ctx.Err() != nil {
			break
		}
		if order := s.Load(ctx, key); order != nil {
			result[key] = order
		}
	}
	return result
}

// LoadAllKeys — перечисление всех заказов не поддерживается: холодный кэш стартует пустым.
func (s *OrderMapStore) LoadAllKeys(ctx context.Context) []string {
	s.log.Debugf(ctx, "cache loader: key enumeration disabled, starting with empty cache")
	return nil
}

// Store — только журналирование; несовпадение ключа и номера заказа — повод для предупреждения.
func (s *OrderMapStore) Store(ctx context.Context, key string, order *domain.Order) {
	if order != nil && order.OrderNumber != key {
		s.log.Warnf(ctx, "cache loader: key mismatch key=%s order_number=%s", key, order.OrderNumber)
		return
	}
	s.log.Debugf(ctx, "cache loader: store order_number=%s (persisted by order service)", key)
}

func (s *OrderMapStore) StoreAll(ctx context.Context, orders map[string]*domain.Order) {
	s.log.Debugf(ctx, "cache loader: store batch size=%d (persisted by order service)", len(orders))
}

// Delete — заказы из БД не удаляются.
func (s *OrderMapStore) Delete(ctx context.Context, key string) {
	s.log.Debugf(ctx, "cache loader: delete order_number=%s ignored", key)
}

func (s *OrderMapStore) DeleteAll(ctx context.Context, keys []string) {
	s.log.Debugf(ctx, "cache loader: delete batch size=%d ignored", len(keys))
}
