package domain

import "time"

// OrderStatus — жизненный цикл заказа.
type OrderStatus string

const (
	StatusNew       OrderStatus = "NEW"
	StatusInProcess OrderStatus = "IN_PROCESS"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
	StatusError     OrderStatus = "ERROR"
)

// Valid — статус входит в известный набор.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInProcess, StatusDelivered, StatusCancelled, StatusError:
		return true
	}
	return false
}

// Terminal — после этих статусов заказ больше не меняется.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Customer — контактные данные покупателя.
type Customer struct {
	Name  string `json:"name" msgpack:"name"`
	Email string `json:"email" msgpack:"email"`
	Phone string `json:"phone" msgpack:"phone"`
}

// OrderItem — позиция заказа (одна на заказ).
type OrderItem struct {
	Code     string  `json:"code" msgpack:"code"`
	Name     string  `json:"name" msgpack:"name"`
	Price    float64 `json:"price" msgpack:"price"`
	Quantity int     `json:"quantity" msgpack:"quantity"`
}

// Order — заказ; ключ в кэше и бизнес-идентификатор — OrderNumber.
type Order struct {
	ID              int64       `json:"id" msgpack:"id"`
	OrderNumber     string      `json:"order_number" msgpack:"order_number"`
	CustomerID      int64       `json:"customer_id" msgpack:"customer_id"`
	Customer        Customer    `json:"customer" msgpack:"customer"`
	DeliveryAddress string      `json:"delivery_address" msgpack:"delivery_address"`
	Item            OrderItem   `json:"item" msgpack:"item"`
	Status          OrderStatus `json:"status" msgpack:"status"`
	CreatedAt       time.Time   `json:"created_at" msgpack:"created_at"`
	UpdatedAt       *time.Time  `json:"updated_at,omitempty" msgpack:"updated_at,omitempty"`
}

// Clone — глубокая копия, чтобы изменения снаружи не затрагивали закэшированное значение.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	cp := *o
	if o.UpdatedAt != nil {
		updated := *o.UpdatedAt
		cp.UpdatedAt = &updated
	}
	return &cp
}

// OrderSummary — строка списка заказов.
type OrderSummary struct {
	OrderNumber  string      `json:"order_number"`
	CustomerName string      `json:"customer_name"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// OrderCreatedEvent — событие, публикуемое после сохранения нового заказа.
type OrderCreatedEvent struct {
	EventID     string    `json:"event_id"`
	OrderNumber string    `json:"order_number"`
	ProductCode string    `json:"product_code"`
	Quantity    int       `json:"quantity"`
	Customer    Customer  `json:"customer"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewOrderCreatedEvent — событие по только что сохранённому заказу.
func NewOrderCreatedEvent(eventID string, order *Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		EventID:     eventID,
		OrderNumber: order.OrderNumber,
		ProductCode: order.Item.Code,
		Quantity:    order.Item.Quantity,
		Customer:    order.Customer,
		CreatedAt:   order.CreatedAt,
	}
}
