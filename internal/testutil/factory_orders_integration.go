//go:build integration

package testutil

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/Gunvolt24/bookstore_orders/internal/domain"
)

func UniqSuffix() string { return gofakeit.LetterN(4) + gofakeit.DigitN(6) }

// MakeOrder — валидный заказ со случайными, но правдоподобными данными.
func MakeOrder(opts ...func(*domain.Order)) domain.Order {
	o := domain.Order{
		OrderNumber: "ORD-" + gofakeit.UUID(),
		CustomerID:  int64(gofakeit.IntRange(1, 1_000_000)),
		Customer: domain.Customer{
			Name:  gofakeit.Name(),
			Email: gofakeit.Email(),
			Phone: gofakeit.Phone(),
		},
		DeliveryAddress: gofakeit.Address().Address,
		Item: domain.OrderItem{
			Code:     gofakeit.Numerify("P###"),
			Name:     gofakeit.BookTitle(),
			Price:    float64(gofakeit.IntRange(100, 9_999)) / 100,
			Quantity: gofakeit.IntRange(1, 5),
		},
		Status:    domain.StatusNew,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func WithOrderNumber(number string) func(*domain.Order) {
	return func(o *domain.Order) { o.OrderNumber = number }
}

func WithStatus(status domain.OrderStatus) func(*domain.Order) {
	return func(o *domain.Order) { o.Status = status }
}

func WithQuantity(q int) func(*domain.Order) {
	return func(o *domain.Order) { o.Item.Quantity = q }
}
