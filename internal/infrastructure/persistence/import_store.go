package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/application/importer"
	"github.com/marketplace/backend/internal/domain/catalog"
)

// GormImportStore implements catalog.ImportStore on one GORM handle.
// Handed a transaction it gives the feed reconciler all-or-nothing writes.
type GormImportStore struct {
	db *gorm.DB
}

// NewGormImportStore creates a new GormImportStore
func NewGormImportStore(db *gorm.DB) *GormImportStore {
	return &GormImportStore{db: db}
}

// GetOrCreateShop resolves the shop keyed by (name, owner). A feed that
// renames the shop therefore creates a fresh shop row; the old rows and
// their listings stay untouched.
func (s *GormImportStore) GetOrCreateShop(ctx context.Context, ownerID uuid.UUID, name string) (*catalog.Shop, bool, error) {
	var shop catalog.Shop
	err := s.db.WithContext(ctx).
		Where("name = ? AND owner_id = ?", name, ownerID).
		First(&shop).Error
	if err == nil {
		return &shop, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	created, err := catalog.NewShop(ownerID, name)
	if err != nil {
		return nil, false, err
	}
	if err := s.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// SaveShop persists changes to a shop resolved in this import
func (s *GormImportStore) SaveShop(ctx context.Context, shop *catalog.Shop) error {
	return s.db.WithContext(ctx).Save(shop).Error
}

// EnsureCategory upserts a category by external ID. The name is written
// only on creation; later feeds never rename a category.
func (s *GormImportStore) EnsureCategory(ctx context.Context, externalID int64, name string) (*catalog.Category, bool, error) {
	var category catalog.Category
	err := s.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&category).Error
	if err == nil {
		return &category, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	created, err := catalog.NewCategory(externalID, name)
	if err != nil {
		return nil, false, err
	}
	if err := s.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// LinkCategoryToShop adds the category to the shop's set, idempotently
func (s *GormImportStore) LinkCategoryToShop(ctx context.Context, categoryID, shopID uuid.UUID) error {
	return s.db.WithContext(ctx).Exec(
		"INSERT INTO shop_categories (shop_id, category_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		shopID, categoryID,
	).Error
}

// GetOrCreateProduct resolves a product by (name, category)
func (s *GormImportStore) GetOrCreateProduct(ctx context.Context, name string, categoryID uuid.UUID) (*catalog.Product, bool, error) {
	var product catalog.Product
	err := s.db.WithContext(ctx).
		Where("name = ? AND category_id = ?", name, categoryID).
		First(&product).Error
	if err == nil {
		return &product, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	created, err := catalog.NewProduct(name, categoryID)
	if err != nil {
		return nil, false, err
	}
	if err := s.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// UpsertProductInfo upserts a listing by (shop, external ID), overwriting
// every mutable field
func (s *GormImportStore) UpsertProductInfo(ctx context.Context, info *catalog.ProductInfo) (*catalog.ProductInfo, bool, error) {
	var existing catalog.ProductInfo
	err := s.db.WithContext(ctx).
		Where("shop_id = ? AND external_id = ?", info.ShopID, info.ExternalID).
		First(&existing).Error
	if err == nil {
		if err := existing.Replace(info.ProductID, info.Model, info.Price, info.PriceRRC, info.Quantity); err != nil {
			return nil, false, err
		}
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, false, err
		}
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if err := s.db.WithContext(ctx).Create(info).Error; err != nil {
		return nil, false, err
	}
	return info, true, nil
}

// EnsureParameter upserts a parameter by name (create-only)
func (s *GormImportStore) EnsureParameter(ctx context.Context, name string) (*catalog.Parameter, bool, error) {
	var parameter catalog.Parameter
	err := s.db.WithContext(ctx).
		Where("name = ?", name).
		First(&parameter).Error
	if err == nil {
		return &parameter, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	created, err := catalog.NewParameter(name)
	if err != nil {
		return nil, false, err
	}
	if err := s.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// UpsertProductParameter upserts a parameter value by
// (product info, parameter), overwriting the value
func (s *GormImportStore) UpsertProductParameter(ctx context.Context, productInfoID, parameterID uuid.UUID, value string) (bool, error) {
	var existing catalog.ProductParameter
	err := s.db.WithContext(ctx).
		Where("product_info_id = ? AND parameter_id = ?", productInfoID, parameterID).
		First(&existing).Error
	if err == nil {
		existing.SetValue(value)
		return false, s.db.WithContext(ctx).Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	created, err := catalog.NewProductParameter(productInfoID, parameterID, value)
	if err != nil {
		return false, err
	}
	return true, s.db.WithContext(ctx).Create(created).Error
}

// GormImportScope implements importer.TransactionScope using GORM
// transactions
type GormImportScope struct {
	db *gorm.DB
}

// NewGormImportScope creates a new GormImportScope
func NewGormImportScope(db *gorm.DB) *GormImportScope {
	return &GormImportScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormImportScope) Execute(ctx context.Context, fn func(store catalog.ImportStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormImportStore(tx))
	})
}

var (
	_ catalog.ImportStore       = (*GormImportStore)(nil)
	_ importer.TransactionScope = (*GormImportScope)(nil)
)
