package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/ordering"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// preloadOrder loads the associations every order read needs: items with
// their listings, the listing's shop and product, and the contact
func (r *GormOrderRepository) preloadOrder(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.ProductInfo").
		Preload("Items.ProductInfo.Shop").
		Preload("Items.ProductInfo.Product").
		Preload("Contact")
}

// FindByID finds an order by ID regardless of buyer
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.preloadOrder(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForBuyer finds an order by ID scoped to its buyer
func (r *GormOrderRepository) FindByIDForBuyer(ctx context.Context, buyerID, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.preloadOrder(ctx).
		Where("buyer_id = ? AND id = ?", buyerID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindBasket finds the buyer's basket order with its items loaded
func (r *GormOrderRepository) FindBasket(ctx context.Context, buyerID uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.preloadOrder(ctx).
		Where("buyer_id = ? AND state = ?", buyerID, ordering.OrderStateBasket).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetOrCreateBasket resolves the buyer's basket order, creating it lazily
// on first write
func (r *GormOrderRepository) GetOrCreateBasket(ctx context.Context, buyerID uuid.UUID) (*ordering.Order, error) {
	basket, err := r.FindBasket(ctx, buyerID)
	if err == nil {
		return basket, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	created, err := ordering.NewBasket(buyerID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, err
	}
	return created, nil
}

// FindSubmittedByBuyer returns the buyer's orders excluding the basket,
// newest first
func (r *GormOrderRepository) FindSubmittedByBuyer(ctx context.Context, buyerID uuid.UUID) ([]ordering.Order, error) {
	var orders []ordering.Order
	if err := r.preloadOrder(ctx).
		Where("buyer_id = ? AND state <> ?", buyerID, ordering.OrderStateBasket).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindSubmittedByShopOwner returns orders containing at least one item sold
// by a shop the principal owns. The subquery keeps each order a single row
// however many of the partner's listings it contains.
func (r *GormOrderRepository) FindSubmittedByShopOwner(ctx context.Context, ownerID uuid.UUID) ([]ordering.Order, error) {
	sub := r.db.
		Table("order_items").
		Select("order_items.order_id").
		Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
		Joins("JOIN shops ON shops.id = product_infos.shop_id").
		Where("shops.owner_id = ?", ownerID)

	var orders []ordering.Order
	if err := r.preloadOrder(ctx).
		Where("state <> ?", ordering.OrderStateBasket).
		Where("id IN (?)", sub).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Omit("Items", "Contact").Save(order).Error
}

// Delete removes an order and its items
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&ordering.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ordering.Order{}, "id = ?", id).Error
	})
}

// UpsertItem adds a listing to an order or, when the listing is already
// present, replaces the line's quantity
func (r *GormOrderRepository) UpsertItem(ctx context.Context, orderID, productInfoID uuid.UUID, quantity int) (bool, error) {
	var existing ordering.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND product_info_id = ?", orderID, productInfoID).
		First(&existing).Error
	if err == nil {
		return false, r.db.WithContext(ctx).
			Model(&existing).
			Update("quantity", quantity).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	item, err := ordering.NewOrderItem(orderID, productInfoID, quantity)
	if err != nil {
		return false, err
	}
	return true, r.db.WithContext(ctx).Create(item).Error
}

// DeleteItems removes the given item IDs scoped to the order; IDs that do
// not belong to the order are skipped and not counted
func (r *GormOrderRepository) DeleteItems(ctx context.Context, orderID uuid.UUID, itemIDs []uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("order_id = ? AND id IN ?", orderID, itemIDs).
		Delete(&ordering.OrderItem{})
	return result.RowsAffected, result.Error
}

// UpdateItemQuantity sets the quantity of one item scoped to the order
func (r *GormOrderRepository) UpdateItemQuantity(ctx context.Context, orderID, itemID uuid.UUID, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&ordering.OrderItem{}).
		Where("order_id = ? AND id = ?", orderID, itemID).
		Update("quantity", quantity)
	return result.RowsAffected, result.Error
}

var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
