package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/catalog"
)

// CatalogService serves the buyer-facing read side of the catalog
type CatalogService struct {
	shopRepo     catalog.ShopRepository
	categoryRepo catalog.CategoryRepository
	listingRepo  catalog.ProductInfoRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	shopRepo catalog.ShopRepository,
	categoryRepo catalog.CategoryRepository,
	listingRepo catalog.ProductInfoRepository,
) *CatalogService {
	return &CatalogService{
		shopRepo:     shopRepo,
		categoryRepo: categoryRepo,
		listingRepo:  listingRepo,
	}
}

// SearchListings returns listings of shops currently accepting orders,
// optionally narrowed by shop and category. Filter IDs that do not parse
// are treated as matching nothing rather than as an error.
func (s *CatalogService) SearchListings(ctx context.Context, query ListingQuery) ([]ListingDTO, error) {
	filter := catalog.ListingFilter{}

	if query.ShopID != "" {
		id, err := uuid.Parse(query.ShopID)
		if err != nil {
			return []ListingDTO{}, nil
		}
		filter.ShopID = &id
	}
	if query.CategoryID != "" {
		id, err := uuid.Parse(query.CategoryID)
		if err != nil {
			return []ListingDTO{}, nil
		}
		filter.CategoryID = &id
	}

	listings, err := s.listingRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]ListingDTO, 0, len(listings))
	for i := range listings {
		dtos = append(dtos, *ToListingDTO(&listings[i]))
	}
	return dtos, nil
}

// GetListing returns one listing by ID with its parameters
func (s *CatalogService) GetListing(ctx context.Context, id uuid.UUID) (*ListingDTO, error) {
	info, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToListingDTO(info), nil
}

// ListCategories returns every category
func (s *CatalogService) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, *ToCategoryDTO(&categories[i]))
	}
	return dtos, nil
}

// ListShops returns shops currently accepting orders
func (s *CatalogService) ListShops(ctx context.Context) ([]ShopDTO, error) {
	shops, err := s.shopRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]ShopDTO, 0, len(shops))
	for i := range shops {
		dtos = append(dtos, *ToShopDTO(&shops[i]))
	}
	return dtos, nil
}
