package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Shop represents a partner's storefront. Every shop is owned by exactly one
// partner principal; the import pipeline resolves it by (name, owner).
type Shop struct {
	shared.BaseAggregateRoot
	Name    string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_shops_name_owner,priority:1"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shops_name_owner,priority:2;index"`
	URL     string    `gorm:"type:varchar(500)"`
	// State marks whether the shop is currently accepting orders. Inactive
	// shops are excluded from every buyer-facing catalog query.
	State      bool       `gorm:"not null;default:true"`
	Categories []Category `gorm:"many2many:shop_categories"`
}

// TableName returns the table name for GORM
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates a new shop for the given owner
func NewShop(ownerID uuid.UUID, name string) (*Shop, error) {
	if err := validateShopName(name); err != nil {
		return nil, err
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Shop owner cannot be empty")
	}

	return &Shop{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		OwnerID:           ownerID,
		State:             true,
	}, nil
}

// SetState toggles whether the shop accepts orders
func (s *Shop) SetState(state bool) {
	s.State = state
	s.UpdatedAt = time.Now()
}

// SetURL records the feed source URL last used for this shop
func (s *Shop) SetURL(url string) {
	s.URL = url
	s.UpdatedAt = time.Now()
}

// IsAcceptingOrders returns true if the shop is open for buyers
func (s *Shop) IsAcceptingOrders() bool {
	return s.State
}

func validateShopName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Shop name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Shop name cannot exceed 100 characters")
	}
	return nil
}
