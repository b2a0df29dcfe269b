package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Gunvolt24/bookstore_orders/internal/domain"
	"github.com/Gunvolt24/bookstore_orders/internal/ports"
)

var _ ports.OrderValidator = (*OrderValidator)(nil)

// ErrInvalidOrder — заказ не прошёл разбор или проверку; повтор не поможет.
var ErrInvalidOrder = errors.New("order validation failed")

// OrderValidator — проверка полей заказа, пришедшего из HTTP или Kafka.
type OrderValidator struct{}

func NewOrderValidator() *OrderValidator { return &OrderValidator{} }

// Validate — ошибка оборачивает ErrInvalidOrder и validation.Errors с ключами вида "customer.email".
// order_number и status не проверяются: их назначает сервис при создании.
func (v *OrderValidator) Validate(_ context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order is nil", ErrInvalidOrder)
	}

	errs := validation.Errors{
		"customer.name":    validation.Validate(strings.TrimSpace(order.Customer.Name), validation.Required),
		"customer.email":   validation.Validate(order.Customer.Email, validation.Required, is.EmailFormat),
		"customer.phone":   validation.Validate(strings.TrimSpace(order.Customer.Phone), validation.Required),
		"delivery_address": validation.Validate(strings.TrimSpace(order.DeliveryAddress), validation.Required),
		"item.code":        validation.Validate(order.Item.Code, validation.Required),
		"item.name":        validation.Validate(order.Item.Name, validation.Required),
		"item.price":       validation.Validate(order.Item.Price, validation.Min(0.0)),
		"item.quantity":    validation.Validate(order.Item.Quantity, validation.Min(1)),
	}.Filter()
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOrder, errs)
	}
	return nil
}
