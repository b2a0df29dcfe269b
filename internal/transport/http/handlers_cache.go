package rest

import (
	"net/http"

	"github.com/Gunvolt24/bookstore_orders/pkg/httpx"
	"github.com/gin-gonic/gin"
)

const (
	defaultWarmUpN = 100
	maxWarmUpN     = 10_000
)

func (h *Handler) cacheHealth(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	report := h.cache.HealthReport(ctx)
	status := http.StatusOK
	if !report.Healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

func (h *Handler) cacheStats(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	c.JSON(http.StatusOK, h.cache.CacheStats(ctx))
}

func (h *Handler) circuitBreakerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.cache.CircuitBreakerStatus())
}

func (h *Handler) resetCircuitBreaker(c *gin.Context) {
	reset := h.cache.ResetCircuitBreaker()
	h.log.Infof(c.Request.Context(), "circuit breaker reset requested result=%t", reset)
	c.JSON(http.StatusOK, gin.H{"reset": reset, "status": h.cache.CircuitBreakerStatus()})
}

// getCachedOrder — только кэш, без похода в БД.
func (h *Handler) getCachedOrder(c *gin.Context) {
	number := c.Param("orderNumber")

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, ok := h.cache.FindByOrderNumberWithTimeout(ctx, number)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not in cache"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) evictCachedOrder(c *gin.Context) {
	number := c.Param("orderNumber")

	ctx, cancel := h.requestContext(c)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{"order_number": number, "evicted": h.cache.EvictFromCache(ctx, number)})
}

// warmUpCache — прогрев последними n заказами (?n=, по умолчанию 100).
func (h *Handler) warmUpCache(c *gin.Context) {
	n := httpx.QueryInt(c, "n", defaultWarmUpN, 1, maxWarmUpN)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	loaded, err := h.orders.WarmUpCache(ctx, n)
	if err != nil {
		h.writeError(ctx, c, "WarmUpCache", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requested": n, "loaded": loaded})
}
