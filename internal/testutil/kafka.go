//go:build integration

package testutil

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// UniqueTopicAndGroup — уникальные topic/group на основе базового префикса.
func UniqueTopicAndGroup(base string) (topic, group string) {
	s := strings.ToLower(UniqSuffix())
	return fmt.Sprintf("%s-%s", base, s), fmt.Sprintf("%s-group-%s", base, s)
}

// EnsureTopic — создаёт топик через контроллер кластера (если уже есть — это OK) и ждёт его готовности.
// broker: "host:port", "PLAINTEXT://host:port" или список через запятую (берётся первый).
func EnsureTopic(ctx context.Context, broker, topic string) error {
	addr := firstBootstrap(broker)

	conn, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return err
	}
	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return err
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
		return err
	}

	return waitTopicReady(ctx, addr, topic, 5*time.Second)
}

// ReadMessages — читает n сообщений из топика с начала (для проверки продюсера).
func ReadMessages(ctx context.Context, broker, topic string, n int) ([]kafka.Message, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   []string{firstBootstrap(broker)},
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  1 << 20,
	})
	defer r.Close()

	out := make([]kafka.Message, 0, n)
	for len(out) < n {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			return out, fmt.Errorf("read %d/%d: %w", len(out), n, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// ---- helpers ----

// firstBootstrap — первый адрес из bootstrap-строки без схемы вида "PLAINTEXT://".
func firstBootstrap(raw string) string {
	first := strings.TrimSpace(strings.Split(raw, ",")[0])
	if strings.Contains(first, "://") {
		if u, err := url.Parse(first); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return first
}

func waitTopicReady(ctx context.Context, broker, topic string, within time.Duration) error {
	deadline := time.Now().Add(within)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c, err := kafka.DialContext(ctx, "tcp", broker)
		if err == nil {
			parts, perr := c.ReadPartitions(topic)
			_ = c.Close()
			if perr == nil && len(parts) > 0 {
				return nil
			}
			err = perr
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("topic %q not ready: %w", topic, err)
		}
		time.Sleep(200 * time.Millisecond)
	}
}
