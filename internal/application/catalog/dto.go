package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace/backend/internal/domain/catalog"
)

// ListingQuery narrows a catalog search. IDs arrive as raw query strings
// and are parsed fail-soft: an unparseable ID matches nothing.
type ListingQuery struct {
	ShopID     string `form:"shop_id"`
	CategoryID string `form:"category_id"`
}

// ParameterDTO is one listing characteristic in API responses
type ParameterDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ListingDTO is one shop's offer of a product in API responses
type ListingDTO struct {
	ID         uuid.UUID       `json:"id"`
	Shop       string          `json:"shop"`
	ShopID     uuid.UUID       `json:"shop_id"`
	Product    string          `json:"product"`
	Category   string          `json:"category"`
	ExternalID string          `json:"external_id"`
	Model      string          `json:"model"`
	Price      decimal.Decimal `json:"price"`
	PriceRRC   decimal.Decimal `json:"price_rrc"`
	Quantity   int             `json:"quantity"`
	Parameters []ParameterDTO  `json:"parameters"`
}

// ShopDTO is a shop in API responses
type ShopDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	URL   string    `json:"url,omitempty"`
	State bool      `json:"state"`
}

// CategoryDTO is a category in API responses
type CategoryDTO struct {
	ID         uuid.UUID `json:"id"`
	ExternalID int64     `json:"external_id"`
	Name       string    `json:"name"`
}

// ToListingDTO converts a listing with its associations loaded
func ToListingDTO(info *catalog.ProductInfo) *ListingDTO {
	dto := &ListingDTO{
		ID:         info.ID,
		Shop:       info.Shop.Name,
		ShopID:     info.ShopID,
		Product:    info.Product.Name,
		Category:   info.Product.Category.Name,
		ExternalID: info.ExternalID,
		Model:      info.Model,
		Price:      info.Price,
		PriceRRC:   info.PriceRRC,
		Quantity:   info.Quantity,
		Parameters: make([]ParameterDTO, 0, len(info.Parameters)),
	}
	for i := range info.Parameters {
		p := &info.Parameters[i]
		dto.Parameters = append(dto.Parameters, ParameterDTO{
			Name:  p.Parameter.Name,
			Value: p.Value,
		})
	}
	return dto
}

// ToShopDTO converts a shop to its API shape
func ToShopDTO(shop *catalog.Shop) *ShopDTO {
	return &ShopDTO{
		ID:    shop.ID,
		Name:  shop.Name,
		URL:   shop.URL,
		State: shop.IsAcceptingOrders(),
	}
}

// ToCategoryDTO converts a category to its API shape
func ToCategoryDTO(category *catalog.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:         category.ID,
		ExternalID: category.ExternalID,
		Name:       category.Name,
	}
}
