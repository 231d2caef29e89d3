package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormProductInfoRepository implements the read side of the listing store
type GormProductInfoRepository struct {
	db *gorm.DB
}

// NewGormProductInfoRepository creates a new GormProductInfoRepository
func NewGormProductInfoRepository(db *gorm.DB) *GormProductInfoRepository {
	return &GormProductInfoRepository{db: db}
}

// FindByID finds a listing with its shop, product, category and parameters
func (r *GormProductInfoRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductInfo, error) {
	var info catalog.ProductInfo
	if err := r.db.WithContext(ctx).
		Preload("Shop").
		Preload("Product").
		Preload("Product.Category").
		Preload("Parameters").
		Preload("Parameters.Parameter").
		First(&info, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &info, nil
}

// Search returns listings of shops currently accepting orders, optionally
// narrowed by shop and product category. The join keeps each listing a
// single row.
func (r *GormProductInfoRepository) Search(ctx context.Context, filter catalog.ListingFilter) ([]catalog.ProductInfo, error) {
	query := r.db.WithContext(ctx).
		Model(&catalog.ProductInfo{}).
		Joins("JOIN shops ON shops.id = product_infos.shop_id").
		Where("shops.state = ?", true).
		Preload("Shop").
		Preload("Product").
		Preload("Product.Category").
		Preload("Parameters").
		Preload("Parameters.Parameter")

	if filter.ShopID != nil {
		query = query.Where("product_infos.shop_id = ?", *filter.ShopID)
	}
	if filter.CategoryID != nil {
		query = query.
			Joins("JOIN products ON products.id = product_infos.product_id").
			Where("products.category_id = ?", *filter.CategoryID)
	}

	var infos []catalog.ProductInfo
	if err := query.Find(&infos).Error; err != nil {
		return nil, err
	}
	return infos, nil
}

var _ catalog.ProductInfoRepository = (*GormProductInfoRepository)(nil)
