package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/Gunvolt24/bookstore_orders/internal/domain"
	"github.com/Gunvolt24/bookstore_orders/internal/usecase"
	"github.com/Gunvolt24/bookstore_orders/pkg/httpx"
	"github.com/Gunvolt24/bookstore_orders/pkg/validate"
	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

func (h *Handler) createOrder(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read body"})
		return
	}
	order, err := validate.DecodeOrderStrict(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	created, err := h.orders.CreateOrder(ctx, order)
	if err != nil {
		h.writeError(ctx, c, "CreateOrder", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) listOrders(c *gin.Context) {
	limit, offset := httpx.ParseLimitOffset(c, defaultListLimit, maxListLimit)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	orders, err := h.orders.ListOrders(ctx, limit, offset)
	if err != nil {
		h.writeError(ctx, c, "ListOrders", err)
		return
	}
	if orders == nil {
		orders = []domain.OrderSummary{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) getOrder(c *gin.Context) {
	number := c.Param("orderNumber")

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.orders.FindOrder(ctx, number)
	if err != nil {
		h.writeError(ctx, c, "FindOrder", err)
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) updateStatus(c *gin.Context) {
	number := c.Param("orderNumber")

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.orders.UpdateStatus(ctx, number, req.Status)
	if err != nil {
		h.writeError(ctx, c, "UpdateStatus", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// writeError — доменные ошибки в HTTP-коды; всё остальное — 500 без подробностей.
func (h *Handler) writeError(ctx context.Context, c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, validate.ErrInvalidOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	case errors.Is(err, context.DeadlineExceeded):
		h.log.Warnf(ctx, "%s timed out err=%v", op, err)
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
	default:
		h.log.Errorf(ctx, "%s failed err=%v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
