package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/bookstore_orders/internal/domain"
	"github.com/Gunvolt24/bookstore_orders/internal/ports"
)

const maxLineBytes = 10 * 1024 * 1024

// EmitFunc — получатель валидного заказа (вывод, публикация в Kafka и т.п.).
type EmitFunc func(ctx context.Context, order *domain.Order) error

// LineProblem — невалидная запись: номер строки (с 1) и причина.
type LineProblem struct {
	Line        int
	OrderNumber string
	Err         error
}

func (p LineProblem) String() string {
	if p.OrderNumber == "" {
		return fmt.Sprintf("line %d: %v", p.Line, p.Err)
	}
	return fmt.Sprintf("line %d (order %s): %v", p.Line, p.OrderNumber, p.Err)
}

// Report — итог проверки потока заказов.
type Report struct {
	Valid    int
	Invalid  int
	Problems []LineProblem
}

func (r Report) String() string { return fmt.Sprintf("%d valid / %d invalid", r.Valid, r.Invalid) }

// WriteCanonical — EmitFunc, печатающий заказ компактным JSON в отдельной строке.
func WriteCanonical(w io.Writer) EmitFunc {
	return func(_ context.Context, order *domain.Order) error {
		raw, err := json.Marshal(order)
		if err != nil {
			return fmt.Errorf("marshal order: %w", err)
		}
		if _, err := w.Write(append(raw, '\n')); err != nil {
			return fmt.Errorf("write order: %w", err)
		}
		return nil
	}
}

// ValidateJSONLStream — построчная проверка JSONL; валидные заказы уходят в emit.
// Невалидная строка попадает в отчёт и не прерывает поток; ошибка emit прерывает.
func ValidateJSONLStream(ctx context.Context, validator ports.OrderValidator, r io.Reader, emit EmitFunc) (Report, error) {
	var rep Report

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		order, err := ValidateOrderFromJSON(ctx, validator, raw)
		if err != nil {
			rep.Invalid++
			rep.Problems = append(rep.Problems, LineProblem{Line: line, OrderNumber: peekOrderNumber(raw), Err: err})
			continue
		}
		if err := emit(ctx, order); err != nil {
			return rep, fmt.Errorf("line %d: %w", line, err)
		}
		rep.Valid++
	}
	if err := scanner.Err(); err != nil {
		return rep, fmt.Errorf("scan: %w", err)
	}
	return rep, nil
}

// peekOrderNumber — номер заказа из строки, даже если сама строка невалидна.
func peekOrderNumber(raw []byte) string {
	var probe struct {
		OrderNumber string `json:"order_number"`
	}
	if json.Unmarshal(raw, &probe) != nil {
		return ""
	}
	return probe.OrderNumber
}
