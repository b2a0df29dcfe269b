package ports

import (
	"context"

	"github.com/Gunvolt24/bookstore_orders/internal/domain"
)

// OrderRepository — авторитетное хранилище заказов.
// Методы поиска возвращают (nil, nil), если записи нет.
type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	FindByOrderNumbers(ctx context.Context, orderNumbers []string) ([]*domain.Order, error)
	ListOrders(ctx context.Context, limit, offset int) ([]domain.OrderSummary, error)
	LastOrderNumbers(ctx context.Context, n int) ([]string, error)
	UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus) (*domain.Order, error)
}
