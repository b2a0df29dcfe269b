package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/bookstore_orders/internal/domain"
	orderskafka "github.com/Gunvolt24/bookstore_orders/internal/kafka"
	"github.com/Gunvolt24/bookstore_orders/pkg/validate"
)

// CLI проверки заказов. Валидные заказы печатаются в stdout
// либо, с -brokers, публикуются во входной топик сервиса.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl); stdin (jsonl) when empty")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	brokers := flag.String("brokers", "", "comma-separated kafka brokers; publish valid orders instead of printing")
	topic := flag.String("topic", "orders", "kafka topic for -brokers")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	emit := validate.WriteCanonical(os.Stdout)
	if *brokers != "" {
		w := (&orderskafka.ProducerConfig{Brokers: strings.Split(*brokers, ","), Topic: *topic}).Writer()
		w.BatchTimeout = 10 * time.Millisecond
		defer w.Close()
		emit = publishTo(w)
	}

	orderValidator := validate.NewOrderValidator()
	format := validate.InputFormat(*formatStr)

	var (
		rep validate.Report
		err error
	)
	if *inputPath == "" {
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
		rep, err = validate.ValidateReader(ctx, orderValidator, os.Stdin, format, emit)
	} else {
		rep, err = validate.ValidateFile(ctx, orderValidator, *inputPath, format, emit)
	}

	for _, p := range rep.Problems {
		fmt.Fprintln(os.Stderr, p)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, rep)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", rep)
}

// publishTo — EmitFunc, отправляющий заказ в Kafka с ключом order_number.
func publishTo(w *kafka.Writer) validate.EmitFunc {
	return func(ctx context.Context, order *domain.Order) error {
		raw, err := json.Marshal(order)
		if err != nil {
			return fmt.Errorf("marshal order: %w", err)
		}
		if err := w.WriteMessages(ctx, kafka.Message{Key: []byte(order.OrderNumber), Value: raw}); err != nil {
			return fmt.Errorf("publish order %s: %w", order.OrderNumber, err)
		}
		return nil
	}
}
