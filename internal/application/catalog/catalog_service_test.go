package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// MockShopRepository is a mock implementation of catalog.ShopRepository
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Shop), args.Error(1)
}

func (m *MockShopRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*catalog.Shop, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Shop), args.Error(1)
}

func (m *MockShopRepository) FindActive(ctx context.Context) ([]catalog.Shop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Shop), args.Error(1)
}

func (m *MockShopRepository) Save(ctx context.Context, shop *catalog.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

func (m *MockShopRepository) UpdateStateByOwner(ctx context.Context, ownerID uuid.UUID, state bool) (int64, error) {
	args := m.Called(ctx, ownerID, state)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// MockProductInfoRepository is a mock implementation of catalog.ProductInfoRepository
type MockProductInfoRepository struct {
	mock.Mock
}

func (m *MockProductInfoRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductInfo), args.Error(1)
}

func (m *MockProductInfoRepository) Search(ctx context.Context, filter catalog.ListingFilter) ([]catalog.ProductInfo, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ProductInfo), args.Error(1)
}

func sampleListing() catalog.ProductInfo {
	price, _ := decimal.NewFromString("110000")
	rrc, _ := decimal.NewFromString("116990")
	return catalog.ProductInfo{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: shared.NewBaseEntity()},
		ShopID:            uuid.New(),
		ExternalID:        "4216292",
		Model:             "apple/iphone/xs-max",
		Price:             price,
		PriceRRC:          rrc,
		Quantity:          14,
		Shop:              catalog.Shop{Name: "Svyaznoy"},
		Product: catalog.Product{
			Name:     "Smartphone Apple iPhone XS Max",
			Category: catalog.Category{Name: "Smartphones"},
		},
		Parameters: []catalog.ProductParameter{
			{Value: "gold", Parameter: catalog.Parameter{Name: "Color"}},
		},
	}
}

func TestSearchListings(t *testing.T) {
	listingRepo := new(MockProductInfoRepository)
	svc := NewCatalogService(new(MockShopRepository), new(MockCategoryRepository), listingRepo)

	listingRepo.On("Search", mock.Anything, catalog.ListingFilter{}).Return([]catalog.ProductInfo{sampleListing()}, nil)

	dtos, err := svc.SearchListings(context.Background(), ListingQuery{})
	require.NoError(t, err)

	require.Len(t, dtos, 1)
	assert.Equal(t, "Svyaznoy", dtos[0].Shop)
	assert.Equal(t, "Smartphones", dtos[0].Category)
	assert.Equal(t, "110000", dtos[0].Price.String())
	require.Len(t, dtos[0].Parameters, 1)
	assert.Equal(t, "Color", dtos[0].Parameters[0].Name)
	assert.Equal(t, "gold", dtos[0].Parameters[0].Value)
}

func TestSearchListingsPassesParsedFilter(t *testing.T) {
	listingRepo := new(MockProductInfoRepository)
	svc := NewCatalogService(new(MockShopRepository), new(MockCategoryRepository), listingRepo)

	shopID := uuid.New()
	categoryID := uuid.New()
	expected := catalog.ListingFilter{ShopID: &shopID, CategoryID: &categoryID}
	listingRepo.On("Search", mock.Anything, mock.MatchedBy(func(f catalog.ListingFilter) bool {
		return f.ShopID != nil && *f.ShopID == *expected.ShopID &&
			f.CategoryID != nil && *f.CategoryID == *expected.CategoryID
	})).Return([]catalog.ProductInfo{}, nil)

	_, err := svc.SearchListings(context.Background(), ListingQuery{
		ShopID:     shopID.String(),
		CategoryID: categoryID.String(),
	})
	require.NoError(t, err)
	listingRepo.AssertExpectations(t)
}

func TestSearchListingsUnparseableFilterMatchesNothing(t *testing.T) {
	listingRepo := new(MockProductInfoRepository)
	svc := NewCatalogService(new(MockShopRepository), new(MockCategoryRepository), listingRepo)

	dtos, err := svc.SearchListings(context.Background(), ListingQuery{ShopID: "42"})
	require.NoError(t, err)
	assert.Empty(t, dtos)
	listingRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestListShops(t *testing.T) {
	shopRepo := new(MockShopRepository)
	svc := NewCatalogService(shopRepo, new(MockCategoryRepository), new(MockProductInfoRepository))

	shop, err := catalog.NewShop(uuid.New(), "Svyaznoy")
	require.NoError(t, err)
	shopRepo.On("FindActive", mock.Anything).Return([]catalog.Shop{*shop}, nil)

	dtos, err := svc.ListShops(context.Background())
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "Svyaznoy", dtos[0].Name)
	assert.True(t, dtos[0].State)
}

func TestPartnerSetState(t *testing.T) {
	shopRepo := new(MockShopRepository)
	svc := NewPartnerService(shopRepo)
	ownerID := uuid.New()

	shopRepo.On("UpdateStateByOwner", mock.Anything, ownerID, false).Return(int64(1), nil)

	require.NoError(t, svc.SetState(context.Background(), ownerID, "off"))
	shopRepo.AssertExpectations(t)
}

func TestPartnerSetStateSpellings(t *testing.T) {
	truthy := []string{"y", "YES", "t", "True", "ON", "1"}
	falsy := []string{"n", "No", "f", "FALSE", "off", "0"}

	for _, raw := range truthy {
		value, ok := parseBool(raw)
		assert.True(t, ok, raw)
		assert.True(t, value, raw)
	}
	for _, raw := range falsy {
		value, ok := parseBool(raw)
		assert.True(t, ok, raw)
		assert.False(t, value, raw)
	}
	for _, raw := range []string{"", "maybe", "2"} {
		_, ok := parseBool(raw)
		assert.False(t, ok, raw)
	}
}

func TestPartnerSetStateRejectsGarbage(t *testing.T) {
	svc := NewPartnerService(new(MockShopRepository))

	err := svc.SetState(context.Background(), uuid.New(), "maybe")
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestPartnerSetStateWithoutShop(t *testing.T) {
	shopRepo := new(MockShopRepository)
	svc := NewPartnerService(shopRepo)
	ownerID := uuid.New()

	shopRepo.On("UpdateStateByOwner", mock.Anything, ownerID, true).Return(int64(0), nil)

	err := svc.SetState(context.Background(), ownerID, "on")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
