package ports

import (
	"context"

	"github.com/Gunvolt24/bookstore_orders/internal/domain"
)

// OrderValidator — доменная проверка заказа перед сохранением; ошибка оборачивает validate.ErrInvalidOrder.
type OrderValidator interface {
	Validate(ctx context.Context, order *domain.Order) error
}
