package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ListingFilter narrows a catalog listing query. Nil fields are ignored.
type ListingFilter struct {
	ShopID     *uuid.UUID
	CategoryID *uuid.UUID
}

// ShopRepository defines the interface for shop persistence
type ShopRepository interface {
	// FindByID finds a shop by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)

	// FindByOwner finds the shop owned by a partner principal.
	// When the owner has several shop rows the most recently created wins.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*Shop, error)

	// FindActive finds all shops currently accepting orders
	FindActive(ctx context.Context) ([]Shop, error)

	// Save creates or updates a shop
	Save(ctx context.Context, shop *Shop) error

	// UpdateStateByOwner sets the accepting-orders state on every shop the
	// owner has; returns the number of rows updated
	UpdateStateByOwner(ctx context.Context, ownerID uuid.UUID, state bool) (int64, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindAll returns every category
	FindAll(ctx context.Context) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error
}

// ProductInfoRepository defines the read side of the listing store
type ProductInfoRepository interface {
	// FindByID finds a listing by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductInfo, error)

	// Search returns listings of active shops matching the filter, with shop,
	// product, category and parameters loaded, de-duplicated
	Search(ctx context.Context, filter ListingFilter) ([]ProductInfo, error)
}

// ImportStore is the write surface used by the feed reconciler. Every method
// is an idempotent upsert keyed by the stated business key. Implementations
// are scoped to one database transaction: the reconciler either commits all
// of its writes or none of them.
type ImportStore interface {
	// GetOrCreateShop resolves the shop keyed by (name, owner)
	GetOrCreateShop(ctx context.Context, ownerID uuid.UUID, name string) (*Shop, bool, error)

	// SaveShop persists changes to a shop resolved in this import
	SaveShop(ctx context.Context, shop *Shop) error

	// EnsureCategory upserts a category by external ID; the name is set only
	// on creation (create-only policy)
	EnsureCategory(ctx context.Context, externalID int64, name string) (*Category, bool, error)

	// LinkCategoryToShop adds the category to the shop's set, idempotently
	LinkCategoryToShop(ctx context.Context, categoryID, shopID uuid.UUID) error

	// GetOrCreateProduct resolves a product by (name, category)
	GetOrCreateProduct(ctx context.Context, name string, categoryID uuid.UUID) (*Product, bool, error)

	// UpsertProductInfo upserts a listing by (shop, external ID), overwriting
	// every mutable field (replace-all policy); returns the persisted row
	UpsertProductInfo(ctx context.Context, info *ProductInfo) (*ProductInfo, bool, error)

	// EnsureParameter upserts a parameter by name (create-only)
	EnsureParameter(ctx context.Context, name string) (*Parameter, bool, error)

	// UpsertProductParameter upserts a parameter value by
	// (product info, parameter), overwriting the value
	UpsertProductParameter(ctx context.Context, productInfoID, parameterID uuid.UUID, value string) (bool, error)
}
