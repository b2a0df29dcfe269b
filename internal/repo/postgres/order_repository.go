package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/bookstore_orders/internal/domain"
	"github.com/Gunvolt24/bookstore_orders/internal/ports"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

const orderColumns = `
	id, order_number, customer_id, customer_name, customer_email, customer_phone,
	delivery_address, product_code, product_name, product_price, quantity,
	status, created_at, updated_at`

// OrderRepository — реализация репозитория заказов на Postgres (pgxpool).
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository - конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

// Save — идемпотентный upsert по order_number; заполняет ID и метки времени из БД.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	if order == nil || order.OrderNumber == "" {
		return errors.New("order is empty or order_number is required")
	}

	var createdAt *time.Time
	if !order.CreatedAt.IsZero() {
		createdAt = &order.CreatedAt
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO orders (
			order_number, customer_id, customer_name, customer_email, customer_phone,
			delivery_address, product_code, product_name, product_price, quantity,
			status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, COALESCE($12, now()))
		ON CONFLICT (order_number) DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			customer_name = EXCLUDED.customer_name,
			customer_email = EXCLUDED.customer_email,
			customer_phone = EXCLUDED.customer_phone,
			delivery_address = EXCLUDED.delivery_address,
			product_code = EXCLUDED.product_code,
			product_name = EXCLUDED.product_name,
			product_price = EXCLUDED.product_price,
			quantity = EXCLUDED.quantity,
			status = EXCLUDED.status,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`,
		order.OrderNumber, order.CustomerID, order.Customer.Name, order.Customer.Email, order.Customer.Phone,
		order.DeliveryAddress, order.Item.Code, order.Item.Name, order.Item.Price, order.Item.Quantity,
		string(order.Status), createdAt,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert order: %w", err)
	}
	return nil
}

// FindByOrderNumber — заказ по номеру. Если не нашли, возвращает (nil, nil).
func (r *OrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}
	return order, nil
}

// FindByOrderNumbers — пакетная выборка; отсутствующие номера просто не попадают в результат.
func (r *OrderRepository) FindByOrderNumbers(ctx context.Context, orderNumbers []string) ([]*domain.Order, error) {
	if len(orderNumbers) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_number = ANY($1::text[])`, orderNumbers)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, len(orderNumbers))
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders rows: %w", err)
	}
	return orders, nil
}

// ListOrders — страница кратких записей, новые первыми.
func (r *OrderRepository) ListOrders(ctx context.Context, limit, offset int) ([]domain.OrderSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, `
		SELECT order_number, customer_name, status, created_at
		FROM orders
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select order summaries: %w", err)
	}
	defer rows.Close()

	list := make([]domain.OrderSummary, 0, limit)
	for rows.Next() {
		var (
			s      domain.OrderSummary
			status string
		)
		if err := rows.Scan(&s.OrderNumber, &s.CustomerName, &status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order summary: %w", err)
		}
		s.Status = domain.OrderStatus(status)
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summary rows: %w", err)
	}
	return list, nil
}

// LastOrderNumbers — номера n последних заказов (для прогрева кэша).
func (r *OrderRepository) LastOrderNumbers(ctx context.Context, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT order_number FROM orders ORDER BY id DESC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("select last order numbers: %w", err)
	}
	defer rows.Close()

	numbers := make([]string, 0, n)
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, fmt.Errorf("scan order number: %w", err)
		}
		numbers = append(numbers, number)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order number rows: %w", err)
	}
	return numbers, nil
}

// UpdateStatus — сменить статус; (nil, nil), если заказа нет.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE orders SET status = $2, updated_at = now()
		WHERE order_number = $1
		RETURNING `+orderColumns, orderNumber, string(status))
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	return order, nil
}

// scanOrder — общий Scan для pgx.Row и pgx.Rows.
func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order  domain.Order
		status string
	)
	if err := row.Scan(
		&order.ID, &order.OrderNumber, &order.CustomerID,
		&order.Customer.Name, &order.Customer.Email, &order.Customer.Phone,
		&order.DeliveryAddress, &order.Item.Code, &order.Item.Name, &order.Item.Price, &order.Item.Quantity,
		&status, &order.CreatedAt, &order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	order.Status = domain.OrderStatus(status)
	return &order, nil
}
