package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopmono/storefront/internal/auth"
	"github.com/shopmono/storefront/internal/model"
	"github.com/shopmono/storefront/internal/service"
)

type OrderHandler struct {
	svc      *service.OrderService
	notifier *service.NotificationService
}

func NewOrderHandler(svc *service.OrderService, notifier *service.NotificationService) *OrderHandler {
	return &OrderHandler{svc: svc, notifier: notifier}
}

type createOrderRequest struct {
	Items           []model.OrderItem `json:"items"`
	PaymentProvider string            `json:"payment_provider"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	claims := auth.FromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	o, err := h.svc.Create(c.Request.Context(), claims.Email, req.Items, req.PaymentProvider)
	if err != nil {
		writeError(c, err)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, _ = h.notifier.Dispatch(ctx, "newOrder", map[string]any{
			"orderId":      o.ID,
			"customerName": o.UserEmail,
			"total":        o.Total,
		})
	}()
	c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	claims := auth.FromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	orders, err := h.svc.ListByUser(c.Request.Context(), claims.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}
