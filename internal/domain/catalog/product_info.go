package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductInfo is the per-shop listing of a product: the partner's SKU, price
// and stock for one product in one shop. Unique on (shop, external SKU).
// Unlike categories, listings follow the replace-all upsert policy: every
// import fully overwrites model, prices, quantity and product reference.
type ProductInfo struct {
	shared.BaseAggregateRoot
	ShopID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_infos_shop_external,priority:1"`
	ExternalID string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_infos_shop_external,priority:2"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Model      string          `gorm:"type:varchar(100)"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PriceRRC   decimal.Decimal `gorm:"column:price_rrc;type:numeric(12,2);not null"`
	Quantity   int             `gorm:"not null"`
	Shop       Shop
	Product    Product
	Parameters []ProductParameter `gorm:"foreignKey:ProductInfoID"`
}

// TableName returns the table name for GORM
func (ProductInfo) TableName() string {
	return "product_infos"
}

// NewProductInfo creates a new listing for a product in a shop
func NewProductInfo(shopID, productID uuid.UUID, externalID, model string, price, priceRRC decimal.Decimal, quantity int) (*ProductInfo, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Listing shop cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Listing product cannot be empty")
	}
	if externalID == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "Listing external ID cannot be empty")
	}
	if err := validateListingValues(price, priceRRC, quantity); err != nil {
		return nil, err
	}

	return &ProductInfo{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ShopID:            shopID,
		ExternalID:        externalID,
		ProductID:         productID,
		Model:             model,
		Price:             price,
		PriceRRC:          priceRRC,
		Quantity:          quantity,
	}, nil
}

// Replace overwrites every mutable field of the listing (replace-all policy)
func (p *ProductInfo) Replace(productID uuid.UUID, model string, price, priceRRC decimal.Decimal, quantity int) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Listing product cannot be empty")
	}
	if err := validateListingValues(price, priceRRC, quantity); err != nil {
		return err
	}

	p.ProductID = productID
	p.Model = model
	p.Price = price
	p.PriceRRC = priceRRC
	p.Quantity = quantity
	p.UpdatedAt = time.Now()

	return nil
}

func validateListingValues(price, priceRRC decimal.Decimal, quantity int) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Listing price cannot be negative")
	}
	if priceRRC.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Recommended retail price cannot be negative")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Listing quantity cannot be negative")
	}
	return nil
}
