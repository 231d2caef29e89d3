package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketplace/backend/internal/application/importer"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/infrastructure/lock"
)

func TestGetOrCreateShopKeyedByNameAndOwner(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormImportStore(db)
	ctx := context.Background()
	ownerID := uuid.New()

	shop, created, err := store.GetOrCreateShop(ctx, ownerID, "Svyaznoy")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := store.GetOrCreateShop(ctx, ownerID, "Svyaznoy")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, shop.ID, again.ID)

	// a renamed feed gets a fresh shop row; the old one stays
	renamed, created, err := store.GetOrCreateShop(ctx, ownerID, "Renamed Shop")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, shop.ID, renamed.ID)

	// the same name under a different owner is a different shop
	other, created, err := store.GetOrCreateShop(ctx, uuid.New(), "Svyaznoy")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, shop.ID, other.ID)
}

func TestSaveShopRecordsFeedURL(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormImportStore(db)
	ctx := context.Background()
	ownerID := uuid.New()

	shop, _, err := store.GetOrCreateShop(ctx, ownerID, "Svyaznoy")
	require.NoError(t, err)

	shop.SetURL("https://partner.example.com/feed.yaml")
	require.NoError(t, store.SaveShop(ctx, shop))

	reloaded, _, err := store.GetOrCreateShop(ctx, ownerID, "Svyaznoy")
	require.NoError(t, err)
	assert.Equal(t, "https://partner.example.com/feed.yaml", reloaded.URL)
}

func TestEnsureCategoryNeverRenames(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormImportStore(db)
	ctx := context.Background()

	category, created, err := store.EnsureCategory(ctx, 224, "Smartphones")
	require.NoError(t, err)
	assert.True(t, created)

	same, created, err := store.EnsureCategory(ctx, 224, "Renamed")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, category.ID, same.ID)
	assert.Equal(t, "Smartphones", same.Name)
}

func TestLinkCategoryToShopIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormImportStore(db)
	ctx := context.Background()

	shop, _, err := store.GetOrCreateShop(ctx, uuid.New(), "Svyaznoy")
	require.NoError(t, err)
	category, _, err := store.EnsureCategory(ctx, 224, "Smartphones")
	require.NoError(t, err)

	require.NoError(t, store.LinkCategoryToShop(ctx, category.ID, shop.ID))
	require.NoError(t, store.LinkCategoryToShop(ctx, category.ID, shop.ID))

	var count int64
	require.NoError(t, db.Table("shop_categories").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertProductInfoReplacesAllFields(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormImportStore(db)
	ctx := context.Background()
	ownerID := uuid.New()

	first := seedListing(t, db, ownerID, "Svyaznoy", "Widget", "123")

	// same (shop, external id), new values
	replacement, err := catalog.NewProductInfo(
		first.ShopID, first.ProductID, "123", "widget/v2",
		decimal.NewFromInt(90), decimal.NewFromInt(110), 2,
	)
	require.NoError(t, err)
	persisted, created, err := store.UpsertProductInfo(ctx, replacement)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, persisted.ID)
	assert.Equal(t, "widget/v2", persisted.Model)
	assert.Equal(t, "90", persisted.Price.String())
	assert.Equal(t, 2, persisted.Quantity)

	var count int64
	require.NoError(t, db.Model(&catalog.ProductInfo{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertProductParameterOverwritesValue(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormImportStore(db)
	ctx := context.Background()

	listing := seedListing(t, db, uuid.New(), "Svyaznoy", "Widget", "123")
	parameter, _, err := store.EnsureParameter(ctx, "color")
	require.NoError(t, err)

	created, err := store.UpsertProductParameter(ctx, listing.ID, parameter.ID, "red")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.UpsertProductParameter(ctx, listing.ID, parameter.ID, "blue")
	require.NoError(t, err)
	assert.False(t, created)

	var value catalog.ProductParameter
	require.NoError(t, db.First(&value, "product_info_id = ?", listing.ID).Error)
	assert.Equal(t, "blue", value.Value)
}

const widgetFeed = `
shop: Svyaznoy
categories:
  - id: 224
    name: Smartphones
goods:
  - id: 123
    category: 224
    model: widget/basic
    name: Widget
    price: 100
    price_rrc: 120
    quantity: 5
    parameters:
      color: red
`

type staticFetcher struct {
	body []byte
}

func (f *staticFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	return f.body, nil
}

func TestImportThenSearchScenario(t *testing.T) {
	db := setupTestDB(t)
	ownerID := uuid.New()

	svc := importer.NewImportService(
		&staticFetcher{body: []byte(widgetFeed)},
		lock.NewMemoryLocker(),
		NewGormImportScope(db),
	)

	summary, err := svc.ImportFromURL(context.Background(), ownerID, "https://partner.example.com/feed.yaml")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ListingsCreated)

	listings, err := NewGormProductInfoRepository(db).Search(context.Background(), catalog.ListingFilter{})
	require.NoError(t, err)
	require.Len(t, listings, 1)

	listing := listings[0]
	assert.Equal(t, "Widget", listing.Product.Name)
	assert.Equal(t, "123", listing.ExternalID)
	assert.Equal(t, "Svyaznoy", listing.Shop.Name)
	assert.Equal(t, "Smartphones", listing.Product.Category.Name)
	require.Len(t, listing.Parameters, 1)
	assert.Equal(t, "color", listing.Parameters[0].Parameter.Name)
	assert.Equal(t, "red", listing.Parameters[0].Value)

	// a second import of the same feed changes nothing
	summary, err = svc.ImportFromURL(context.Background(), ownerID, "https://partner.example.com/feed.yaml")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.ListingsCreated)
	assert.Equal(t, 1, summary.ListingsUpdated)

	listings, err = NewGormProductInfoRepository(db).Search(context.Background(), catalog.ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, listings, 1)
}

func TestSearchExcludesShopsNotAcceptingOrders(t *testing.T) {
	db := setupTestDB(t)
	activeOwner := uuid.New()
	inactiveOwner := uuid.New()

	seedListing(t, db, activeOwner, "Active Shop", "Widget", "1")
	seedListing(t, db, inactiveOwner, "Closed Shop", "Gadget", "2")

	shopRepo := NewGormShopRepository(db)
	updated, err := shopRepo.UpdateStateByOwner(context.Background(), inactiveOwner, false)
	require.NoError(t, err)
	require.Equal(t, int64(1), updated)

	listings, err := NewGormProductInfoRepository(db).Search(context.Background(), catalog.ListingFilter{})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Active Shop", listings[0].Shop.Name)
}

func TestSearchFiltersByShopAndCategory(t *testing.T) {
	db := setupTestDB(t)
	listing := seedListing(t, db, uuid.New(), "Svyaznoy", "Widget", "1")
	seedListing(t, db, uuid.New(), "Other Shop", "Gadget", "2")

	repo := NewGormProductInfoRepository(db)

	byShop, err := repo.Search(context.Background(), catalog.ListingFilter{ShopID: &listing.ShopID})
	require.NoError(t, err)
	require.Len(t, byShop, 1)
	assert.Equal(t, listing.ID, byShop[0].ID)

	var product catalog.Product
	require.NoError(t, db.First(&product, "id = ?", listing.ProductID).Error)
	byCategory, err := repo.Search(context.Background(), catalog.ListingFilter{CategoryID: &product.CategoryID})
	require.NoError(t, err)
	// both listings share the seeded category
	assert.Len(t, byCategory, 2)
}
