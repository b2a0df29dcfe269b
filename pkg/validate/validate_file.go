package validate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/bookstore_orders/internal/ports"
)

// InputFormat — формат входного файла с заказами.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// DetectFormat — FormatAuto по расширению (.jsonl → JSONL, иначе JSON); явный формат не меняется.
func DetectFormat(path string, format InputFormat) InputFormat {
	if format != FormatAuto {
		return format
	}
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return FormatJSONL
	}
	return FormatJSON
}

// ValidateFile — проверка файла с заказами; валидные уходят в emit.
// Для одиночного JSON невалидный заказ: ошибка; для JSONL: строка в отчёте.
func ValidateFile(ctx context.Context, validator ports.OrderValidator, path string, format InputFormat, emit EmitFunc) (Report, error) {
	format = DetectFormat(path, format)
	if format != FormatJSON && format != FormatJSONL {
		return Report{}, fmt.Errorf("unsupported format: %s", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ValidateReader(ctx, validator, f, format, emit)
}

// ValidateReader — то же для произвольного reader (stdin); format должен быть явным.
func ValidateReader(ctx context.Context, validator ports.OrderValidator, r io.Reader, format InputFormat, emit EmitFunc) (Report, error) {
	switch format {
	case FormatJSONL:
		return ValidateJSONLStream(ctx, validator, r, emit)
	case FormatJSON:
		raw, err := io.ReadAll(r)
		if err != nil {
			return Report{}, fmt.Errorf("read input: %w", err)
		}
		order, err := ValidateOrderFromJSON(ctx, validator, raw)
		if err != nil {
			return Report{Invalid: 1, Problems: []LineProblem{{Line: 1, OrderNumber: peekOrderNumber(raw), Err: err}}}, err
		}
		if err := emit(ctx, order); err != nil {
			return Report{}, err
		}
		return Report{Valid: 1}, nil
	default:
		return Report{}, fmt.Errorf("unsupported format: %s", format)
	}
}
