package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/ordering"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&catalog.Shop{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.ProductInfo{},
		&catalog.Parameter{},
		&catalog.ProductParameter{},
		&ordering.Contact{},
		&ordering.Order{},
		&ordering.OrderItem{},
	))
	return db
}

// seedListing creates a shop, category, product and one listing
func seedListing(t *testing.T, db *gorm.DB, ownerID uuid.UUID, shopName, productName, externalID string) *catalog.ProductInfo {
	t.Helper()
	store := NewGormImportStore(db)
	ctx := context.Background()

	shop, _, err := store.GetOrCreateShop(ctx, ownerID, shopName)
	require.NoError(t, err)

	category, _, err := store.EnsureCategory(ctx, 224, "Smartphones")
	require.NoError(t, err)
	require.NoError(t, store.LinkCategoryToShop(ctx, category.ID, shop.ID))

	product, _, err := store.GetOrCreateProduct(ctx, productName, category.ID)
	require.NoError(t, err)

	info, err := catalog.NewProductInfo(
		shop.ID, product.ID, externalID, "model",
		decimal.NewFromInt(100), decimal.NewFromInt(120), 5,
	)
	require.NoError(t, err)
	persisted, _, err := store.UpsertProductInfo(ctx, info)
	require.NoError(t, err)
	return persisted
}
