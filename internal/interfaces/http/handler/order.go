package handler

import (
	"github.com/gin-gonic/gin"

	orderingapp "github.com/marketplace/backend/internal/application/ordering"
)

// OrderHandler handles the buyer's placed-order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderingapp.OrderService
	authenticate gin.HandlerFunc
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderingapp.OrderService, authenticate gin.HandlerFunc) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		authenticate: authenticate,
	}
}

// ListOrders lists the caller's placed orders, newest first
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListForBuyer(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// GetOrder returns one of the caller's orders
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetForBuyer(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// DeleteOrder removes one of the caller's orders. The active basket
// cannot be deleted this way.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.orderService.DeleteForBuyer(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", h.authenticate)
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.DELETE("/:id", h.DeleteOrder)
	}
}
