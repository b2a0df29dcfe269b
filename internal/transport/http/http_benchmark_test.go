//go:build !integration

package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/bookstore_orders/internal/domain"
)

// --- Бенчмарки ---

// Базовый бенч: FindOrder: сравниваем LEAN vs FULL пайплайн
func BenchmarkHTTP_GetOrder(b *testing.B) {
	ord := benchOrder("ORD-bench")
	h := NewHandler(svcStub{o: &ord}, nil, nopLogger{}, 2*time.Second)

	lean := makeLeanRouter(h)
	full := makeFullRouter(h)

	b.Run("lean/no-mw", func(b *testing.B) {
		benchServeGET(b, lean, "/api/orders/"+ord.OrderNumber)
	})
	b.Run("full/prod-mw", func(b *testing.B) {
		benchServeGET(b, full, "/api/orders/"+ord.OrderNumber)
	})
}

// Потолок без маршалинга: тот же заказ, но заранее закодированный JSON
func BenchmarkHTTP_GetOrder_PreMarshaledBytes(b *testing.B) {
	ord := benchOrder("ORD-bench")
	raw, _ := json.Marshal(ord)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/api/orders/:orderNumber", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", raw)
	})

	benchServeGET(b, r, "/api/orders/"+ord.OrderNumber)
}

// Пагинация: 10/50/100: рост аллокаций и времени
func BenchmarkHTTP_ListOrders(b *testing.B) {
	for _, n := range []int{10, 50, 100} {
		b.Run("N="+strconv.Itoa(n), func(b *testing.B) {
			list := make([]domain.OrderSummary, 0, n)
			for i := 0; i < n; i++ {
				list = append(list, domain.OrderSummary{
					OrderNumber:  "ORD-" + strconv.Itoa(i),
					CustomerName: "bench",
					Status:       domain.StatusNew,
					CreatedAt:    time.Now().UTC(),
				})
			}
			h := NewHandler(svcStub{list: list}, nil, nopLogger{}, 2*time.Second)

			benchServeGET(b, makeLeanRouter(h), "/api/orders?limit="+strconv.Itoa(n))
		})
	}
}

// Ошибочный путь (404): "цена" роутера и 404-хендлера
func BenchmarkHTTP_404(b *testing.B) {
	h := NewHandler(svcStub{}, nil, nopLogger{}, 2*time.Second)
	r := makeLeanRouter(h)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req, _ := http.NewRequest(http.MethodGet, "/nope", http.NoBody)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != http.StatusNotFound {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}

// --- nopLogger: логгер, который не делает ничего. ---

type nopLogger struct{}

func (nopLogger) Debugf(context.Context, string, ...any) {}
func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// --- Стаб сервиса: заранее подготовленные ответы без аллокаций на вызов ---

type svcStub struct {
	o    *domain.Order
	list []domain.OrderSummary
}

func (s svcStub) FindOrder(context.Context, string) (*domain.Order, error) { return s.o, nil }
func (s svcStub) CreateOrder(_ context.Context, o *domain.Order) (*domain.Order, error) {
	return o, nil
}
func (s svcStub) ListOrders(context.Context, int, int) ([]domain.OrderSummary, error) {
	return s.list, nil
}
func (s svcStub) UpdateStatus(context.Context, string, domain.OrderStatus) (*domain.Order, error) {
	return s.o, nil
}
func (s svcStub) WarmUpCache(context.Context, int) (int, error) { return 0, nil }

// --- функции-помощники ---

func benchOrder(number string) domain.Order {
	return domain.Order{
		OrderNumber:     number,
		CustomerID:      1,
		Customer:        domain.Customer{Name: "bench", Email: "bench@example.com", Phone: "+70000000000"},
		DeliveryAddress: "bench street 1",
		Item:            domain.OrderItem{Code: "P001", Name: "bench book", Price: 10, Quantity: 1},
		Status:          domain.StatusNew,
		CreatedAt:       time.Now().UTC(),
	}
}

func makeLeanRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New() // без Recovery/otel/logger: получаем меньшую аллокацию
	r.GET("/api/orders/:orderNumber", h.getOrder)
	r.GET("/api/orders", h.listOrders)
	return r
}

func makeFullRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	// prod пайплайн из NewRouter
	return NewRouter(h, "", "")
}

func benchServeGET(b *testing.B, r *gin.Engine, path string) {
	b.Helper()
	b.ReportAllocs()
	b.ResetTimer()

	// Параллельный режим ближе к реальности без TCP
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req, _ := http.NewRequest(http.MethodGet, path, http.NoBody)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != http.StatusOK {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}
