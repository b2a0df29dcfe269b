package ports

import (
	"context"

	"github.com/Gunvolt24/bookstore_orders/internal/domain"
)

// OrderService — сервис заказов для транспортного слоя.
type OrderService interface {
	FindOrder(ctx context.Context, orderNumber string) (*domain.Order, error)
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ListOrders(ctx context.Context, limit, offset int) ([]domain.OrderSummary, error)
	UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus) (*domain.Order, error)
	WarmUpCache(ctx context.Context, n int) (int, error)
}
