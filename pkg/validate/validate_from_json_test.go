package validate

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestValidateOrderFromJSON_OK(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	validJSON := minimalValidOrderJSON("ORD-1", "P-1", "user@example.com")

	order, err := ValidateOrderFromJSON(ctx, validator, []byte(validJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.OrderNumber != "ORD-1" {
		t.Fatalf("unexpected order number: %s", order.OrderNumber)
	}
}

func TestValidateOrderFromJSON_UnknownField(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	raw := `{"unknown":"x",` + minimalValidOrderJSONFields("ORD-2", "P-2", "user@example.com")[1:]
	_, err := ValidateOrderFromJSON(ctx, validator, []byte(raw))
	if err == nil || !strings.Contains(err.Error(), "invalid json") {
		t.Fatalf("expected invalid json error, got: %v", err)
	}
}

func TestValidateOrderFromJSON_TrailingData(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	raw := minimalValidOrderJSON("ORD-3", "P-3", "user@example.com") + "{}"
	_, err := ValidateOrderFromJSON(ctx, validator, []byte(raw))
	if err == nil || !strings.Contains(err.Error(), "trailing data") {
		t.Fatalf("expected trailing data error, got: %v", err)
	}
}

func TestValidateOrderFromJSON_DomainError(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	// Не валиден: пустой email
	raw := minimalValidOrderJSON("ORD-4", "P-4", "")
	_, err := ValidateOrderFromJSON(ctx, validator, []byte(raw))
	if err == nil {
		t.Fatalf("expected domain validation error, got nil")
	}
}

// ---- helpers ----

func minimalValidOrderJSON(orderNumber, productCode, email string) string {
	return `{
  "order_number": "` + orderNumber + `",
  "customer": {"name":"Ann","email":"` + email + `","phone":"+100"},
  "delivery_address": "Main st. 1",
  "item": {"code":"` + productCode + `","name":"Go in Action","price":34.5,"quantity":1}
}`
}

func minimalValidOrderJSONFields(orderNumber, productCode, email string) string {
	// То же, но без ведущей '{', удобно для инъекции "unknown" в начало.
	return ` "order_number": "` + orderNumber + `",
  "customer": {"name":"Ann","email":"` + email + `","phone":"+100"},
  "delivery_address": "Main st. 1",
  "item": {"code":"` + productCode + `","name":"Go in Action","price":34.5,"quantity":1}
}`
}

func TestDecodeOrderStrict_WrapsInvalidOrder(t *testing.T) {
	_, err := DecodeOrderStrict([]byte(`{"order_number":1}`))
	if !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("decode errors must wrap ErrInvalidOrder, got: %v", err)
	}
}
