package app

import (
	"context"
	"testing"
	"time"

	"github.com/Gunvolt24/bookstore_orders/config"
	"github.com/Gunvolt24/bookstore_orders/internal/domain"
	"github.com/Gunvolt24/bookstore_orders/internal/ports/mocks"
	"github.com/golang/mock/gomock"
)

type quietLogger struct{}

func (quietLogger) Debugf(context.Context, string, ...any) {}
func (quietLogger) Infof(context.Context, string, ...any)  {}
func (quietLogger) Warnf(context.Context, string, ...any)  {}
func (quietLogger) Errorf(context.Context, string, ...any) {}

func memoryCacheConfig() config.Cache {
	return config.Cache{
		Enabled:           true,
		MaxSize:           10,
		TimeToLiveSeconds: 60,
		WriteThrough:      true,
		Backend:           config.BackendMemory,
		Name:              "orders-test",
		ReadTimeout:       time.Second,
		WriteTimeout:      time.Second,
	}
}

func TestNewOrderCache_Disabled_NilPorts(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)

	cfg := memoryCacheConfig()
	cfg.Enabled = false

	c, err := newOrderCache(context.Background(), cfg, repo, quietLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != nil {
		t.Fatalf("want nil cache, got %+v", c)
	}
	// порты должны быть именно nil-интерфейсами
	if c.orderCachePort() != nil || c.adminPort() != nil {
		t.Fatal("disabled cache must yield nil interfaces")
	}
	if err := c.close(); err != nil {
		t.Fatalf("close on nil cache: %v", err)
	}
}

func TestNewOrderCache_Memory_ReadThroughFromRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)

	want := &domain.Order{OrderNumber: "ORD-1", Status: domain.StatusNew}
	repo.EXPECT().FindByOrderNumber(gomock.Any(), "ORD-1").Return(want, nil).Times(1)

	c, err := newOrderCache(context.Background(), memoryCacheConfig(), repo, quietLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = c.close() }()

	ctx := context.Background()
	got, ok := c.service.FindByOrderNumber(ctx, "ORD-1")
	if !ok || got.OrderNumber != "ORD-1" {
		t.Fatalf("want read-through hit, got %+v ok=%v", got, ok)
	}
	// второе чтение: из кэша, БД не трогаем
	if _, ok := c.service.FindByOrderNumber(ctx, "ORD-1"); !ok {
		t.Fatal("want cached hit")
	}

	report := c.adminPort().HealthReport(ctx)
	if !report.Healthy {
		t.Fatalf("memory cache must be healthy: %+v", report)
	}
	if report.Config["backend"] != config.BackendMemory {
		t.Fatalf("unexpected config in report: %+v", report.Config)
	}
}

func TestNewOrderCache_UnknownBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)

	cfg := memoryCacheConfig()
	cfg.Backend = "hazelcast"

	if _, err := newOrderCache(context.Background(), cfg, repo, quietLogger{}); err == nil {
		t.Fatal("want error for unknown backend")
	}
}
