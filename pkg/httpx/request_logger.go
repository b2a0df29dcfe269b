package httpx

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/bookstore_orders/internal/ports"
)

// RequestLogger — access-лог; уровень зависит от статуса (5xx — error, 4xx — warn).
// Пути из skip (по шаблону маршрута) не логируются.
// request_id, order_number и trace приходят в поля из контекста запроса.
func RequestLogger(log ports.Logger, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if _, ok := skipped[path]; ok {
			return
		}
		if path == "" {
			path = c.Request.URL.Path
		}

		logf := log.Infof
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logf = log.Errorf
		case status >= http.StatusBadRequest:
			logf = log.Warnf
		}
		logf(c.Request.Context(), "http %s %s status=%d ip=%s duration=%s size=%d",
			c.Request.Method, path, c.Writer.Status(), c.ClientIP(), time.Since(start), c.Writer.Size())
	}
}
