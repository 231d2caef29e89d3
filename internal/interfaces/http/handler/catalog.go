package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/marketplace/backend/internal/application/catalog"
)

// CatalogHandler handles the public catalog read endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// SearchProducts lists listings of shops currently accepting orders,
// optionally narrowed by shop_id and category_id
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	var query catalogapp.ListingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	listings, err := h.catalogService.SearchListings(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, listings)
}

// GetProduct returns one listing with its parameters
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	listing, err := h.catalogService.GetListing(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, listing)
}

// ListCategories lists all categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// ListShops lists shops currently accepting orders
func (h *CatalogHandler) ListShops(c *gin.Context) {
	shops, err := h.catalogService.ListShops(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shops)
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.SearchProducts)
	rg.GET("/products/:id", h.GetProduct)
	rg.GET("/categories", h.ListCategories)
	rg.GET("/shops", h.ListShops)
}
