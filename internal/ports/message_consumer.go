package ports

import (
	"context"

	"github.com/Gunvolt24/bookstore_orders/internal/domain"
)

// MessageConsumer — фоновый потребитель входящих заказов.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}

// EventPublisher — публикация доменных событий о заказах.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event domain.OrderCreatedEvent) error
	Close() error
}
