package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ClampInt — v в пределах [lo, hi].
func ClampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// QueryInt — целый query-параметр в пределах [lo, hi]; отсутствующий или нечисловой — def.
func QueryInt(c *gin.Context, key string, def, lo, hi int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return ClampInt(v, lo, hi)
}

// ParseLimitOffset — пагинация: limit в [1, maxLimit], offset >= 0 (отрицательный игнорируется).
func ParseLimitOffset(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit = QueryInt(c, "limit", ClampInt(defaultLimit, 1, maxLimit), 1, maxLimit)
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
