package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/marketplace/backend/internal/application/catalog"
	importerapp "github.com/marketplace/backend/internal/application/importer"
	orderingapp "github.com/marketplace/backend/internal/application/ordering"
	"github.com/marketplace/backend/internal/domain/ordering"
)

// PartnerHandler handles the shop-side endpoints: feed import, shop
// state and incoming orders
type PartnerHandler struct {
	BaseHandler
	importService  *importerapp.ImportService
	partnerService *catalogapp.PartnerService
	orderService   *orderingapp.OrderService
	authenticate   gin.HandlerFunc
	requireShop    gin.HandlerFunc
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(
	importService *importerapp.ImportService,
	partnerService *catalogapp.PartnerService,
	orderService *orderingapp.OrderService,
	authenticate gin.HandlerFunc,
	requireShop gin.HandlerFunc,
) *PartnerHandler {
	return &PartnerHandler{
		importService:  importService,
		partnerService: partnerService,
		orderService:   orderService,
		authenticate:   authenticate,
		requireShop:    requireShop,
	}
}

// SetStateRequest toggles whether the shop accepts orders. The value
// accepts the usual boolean spellings (on/off, yes/no, 1/0, ...).
type SetStateRequest struct {
	State string `json:"state" binding:"required"`
}

// AdvanceOrderRequest moves an order to a later state, optionally
// reassigning its delivery contact
type AdvanceOrderRequest struct {
	State   string     `json:"state" binding:"required"`
	Contact *uuid.UUID `json:"contact"`
}

// ImportFeed fetches, validates and reconciles the shop's price list
// from the given URL
func (h *PartnerHandler) ImportFeed(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req importerapp.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	summary, err := h.importService.ImportFromURL(c.Request.Context(), userID, req.URL)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// GetState returns the caller's shop with its accepting-orders flag
func (h *PartnerHandler) GetState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	shop, err := h.partnerService.GetState(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shop)
}

// SetState toggles whether the caller's shop accepts orders
func (h *PartnerHandler) SetState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req SetStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.partnerService.SetState(c.Request.Context(), userID, req.State); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"state": req.State})
}

// ListOrders lists placed orders containing at least one item from a
// shop owned by the caller
func (h *PartnerHandler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListForPartner(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// AdvanceOrder moves an order forward through its lifecycle. The order
// must contain items sold by one of the caller's shops.
func (h *PartnerHandler) AdvanceOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req AdvanceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.Advance(c.Request.Context(), userID, id, ordering.OrderState(req.State), req.Contact)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// RegisterRoutes registers all partner routes
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	partner := rg.Group("/partner", h.authenticate, h.requireShop)
	{
		partner.POST("/import", h.ImportFeed)
		partner.GET("/state", h.GetState)
		partner.POST("/state", h.SetState)
		partner.GET("/orders", h.ListOrders)
		partner.POST("/orders/:id/advance", h.AdvanceOrder)
	}
}
