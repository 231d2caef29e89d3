package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormShopRepository implements ShopRepository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// FindByID finds a shop by its ID
func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Shop, error) {
	var shop catalog.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// FindByOwner finds the shop owned by a partner principal. An owner whose
// feed renamed the shop ends up with several rows; the newest one wins.
func (r *GormShopRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*catalog.Shop, error) {
	var shop catalog.Shop
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// FindActive finds all shops currently accepting orders
func (r *GormShopRepository) FindActive(ctx context.Context) ([]catalog.Shop, error) {
	var shops []catalog.Shop
	if err := r.db.WithContext(ctx).
		Where("state = ?", true).
		Order("name").
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// Save creates or updates a shop
func (r *GormShopRepository) Save(ctx context.Context, shop *catalog.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

// UpdateStateByOwner sets the accepting-orders state on every shop the
// owner has; returns the number of rows updated
func (r *GormShopRepository) UpdateStateByOwner(ctx context.Context, ownerID uuid.UUID, state bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&catalog.Shop{}).
		Where("owner_id = ?", ownerID).
		Update("state", state)
	return result.RowsAffected, result.Error
}

var _ catalog.ShopRepository = (*GormShopRepository)(nil)
