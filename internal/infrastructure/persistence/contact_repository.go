package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/ordering"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByIDForUser finds a contact by ID scoped to its owner
func (r *GormContactRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*ordering.Contact, error) {
	var contact ordering.Contact
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindByUser returns all contacts of a user
func (r *GormContactRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]ordering.Contact, error) {
	var contacts []ordering.Contact
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *ordering.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// DeleteForUser removes the given contact IDs scoped to the user
func (r *GormContactRepository) DeleteForUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&ordering.Contact{})
	return result.RowsAffected, result.Error
}

var _ ordering.ContactRepository = (*GormContactRepository)(nil)
