package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderingapp "github.com/marketplace/backend/internal/application/ordering"
)

// BasketHandler handles the buyer's basket endpoints
type BasketHandler struct {
	BaseHandler
	basketService *orderingapp.BasketService
	authenticate  gin.HandlerFunc
}

// NewBasketHandler creates a new BasketHandler
func NewBasketHandler(basketService *orderingapp.BasketService, authenticate gin.HandlerFunc) *BasketHandler {
	return &BasketHandler{
		basketService: basketService,
		authenticate:  authenticate,
	}
}

// AddItemsRequest carries basket lines to add or re-pin
type AddItemsRequest struct {
	Items []orderingapp.ItemSpec `json:"items" binding:"required,min=1,dive"`
}

// UpdateItemsRequest carries quantity changes for existing basket lines
type UpdateItemsRequest struct {
	Items []orderingapp.QuantitySpec `json:"items" binding:"required,min=1,dive"`
}

// RemoveItemsRequest carries basket line ids to remove
type RemoveItemsRequest struct {
	Items []uuid.UUID `json:"items" binding:"required,min=1"`
}

// SubmitRequest places the basket as an order against a delivery contact
type SubmitRequest struct {
	ContactID uuid.UUID `json:"contact" binding:"required"`
}

// GetBasket returns the basket, empty when none exists yet
func (h *BasketHandler) GetBasket(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	basket, err := h.basketService.GetBasket(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, basket)
}

// AddItems puts listings in the basket. Re-adding a listing replaces
// its quantity.
func (h *BasketHandler) AddItems(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	created, err := h.basketService.AddItems(c.Request.Context(), userID, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"created": created})
}

// UpdateItems changes quantities of existing basket lines
func (h *BasketHandler) UpdateItems(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	updated, err := h.basketService.UpdateQuantities(c.Request.Context(), userID, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"updated": updated})
}

// RemoveItems deletes basket lines. Ids outside the caller's basket are
// silently skipped.
func (h *BasketHandler) RemoveItems(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req RemoveItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	removed, err := h.basketService.RemoveItems(c.Request.Context(), userID, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"removed": removed})
}

// Submit places the basket as a new order
func (h *BasketHandler) Submit(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.basketService.Submit(c.Request.Context(), userID, req.ContactID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// RegisterRoutes registers all basket routes
func (h *BasketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	basket := rg.Group("/basket", h.authenticate)
	{
		basket.GET("", h.GetBasket)
		basket.POST("/items", h.AddItems)
		basket.PUT("/items", h.UpdateItems)
		basket.DELETE("/items", h.RemoveItems)
		basket.POST("/submit", h.Submit)
	}
}
