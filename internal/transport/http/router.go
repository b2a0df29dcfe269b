package rest

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Gunvolt24/bookstore_orders/internal/ports"
	"github.com/Gunvolt24/bookstore_orders/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Handler — HTTP-обработчики заказов и администрирования кэша.
// cache == nil означает, что кэш выключен: админские ручки отвечают 503.
type Handler struct {
	orders  ports.OrderService
	cache   ports.CacheAdmin
	log     ports.Logger
	timeout time.Duration
}

// NewHandler — DI-конструктор; timeout <= 0 — без ограничения на обработчик.
func NewHandler(orders ports.OrderService, cache ports.CacheAdmin, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{orders: orders, cache: cache, log: log, timeout: timeout}
}

var withOrderNumber = httpx.OrderNumberParam("orderNumber")

// NewRouter — gin.Engine со всеми маршрутами и middleware.
// otelServiceName пустой: трассировка HTTP не подключается.
func NewRouter(h *Handler, staticDir, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log, "/metrics", "/ping"))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		orders := api.Group("/orders")
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:orderNumber", withOrderNumber, h.getOrder)
		orders.PATCH("/:orderNumber/status", withOrderNumber, h.updateStatus)

		cache := api.Group("/cache", h.requireCache)
		cache.GET("/health", h.cacheHealth)
		cache.GET("/stats", h.cacheStats)
		cache.GET("/circuit-breaker", h.circuitBreakerStatus)
		cache.POST("/circuit-breaker/reset", h.resetCircuitBreaker)
		cache.GET("/orders/:orderNumber", withOrderNumber, h.getCachedOrder)
		cache.DELETE("/orders/:orderNumber", withOrderNumber, h.evictCachedOrder)
		cache.POST("/warm-up", h.warmUpCache)
	}

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	return r
}

// requestContext — контекст запроса, ограниченный таймаутом обработчика.
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// requireCache — 503 для админских ручек, если кэш выключен.
func (h *Handler) requireCache(c *gin.Context) {
	if h.cache == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "cache is disabled"})
		return
	}
	c.Next()
}
