package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Contact is a buyer's delivery address and phone. Orders reference a contact
// when they leave the basket state.
type Contact struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	City      string    `gorm:"type:varchar(50);not null"`
	Street    string    `gorm:"type:varchar(100);not null"`
	House     string    `gorm:"type:varchar(15)"`
	Structure string    `gorm:"type:varchar(15)"`
	Building  string    `gorm:"type:varchar(15)"`
	Apartment string    `gorm:"type:varchar(15)"`
	Phone     string    `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a delivery contact for a buyer
func NewContact(userID uuid.UUID, city, street, phone string) (*Contact, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Contact user cannot be empty")
	}

	fields := map[string][]string{}
	if city == "" {
		fields["city"] = append(fields["city"], "city is required")
	}
	if street == "" {
		fields["street"] = append(fields["street"], "street is required")
	}
	if phone == "" {
		fields["phone"] = append(fields["phone"], "phone is required")
	}
	if len(fields) > 0 {
		return nil, shared.NewValidationError(fields)
	}

	return &Contact{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		City:       city,
		Street:     street,
		Phone:      phone,
	}, nil
}

// ContactUpdate carries a partial contact update; nil fields are left as-is
type ContactUpdate struct {
	City      *string
	Street    *string
	House     *string
	Structure *string
	Building  *string
	Apartment *string
	Phone     *string
}

// Apply applies a partial update to the contact
func (c *Contact) Apply(update ContactUpdate) error {
	fields := map[string][]string{}
	if update.City != nil && *update.City == "" {
		fields["city"] = append(fields["city"], "city cannot be empty")
	}
	if update.Street != nil && *update.Street == "" {
		fields["street"] = append(fields["street"], "street cannot be empty")
	}
	if update.Phone != nil && *update.Phone == "" {
		fields["phone"] = append(fields["phone"], "phone cannot be empty")
	}
	if len(fields) > 0 {
		return shared.NewValidationError(fields)
	}

	if update.City != nil {
		c.City = *update.City
	}
	if update.Street != nil {
		c.Street = *update.Street
	}
	if update.House != nil {
		c.House = *update.House
	}
	if update.Structure != nil {
		c.Structure = *update.Structure
	}
	if update.Building != nil {
		c.Building = *update.Building
	}
	if update.Apartment != nil {
		c.Apartment = *update.Apartment
	}
	if update.Phone != nil {
		c.Phone = *update.Phone
	}
	c.UpdatedAt = time.Now()

	return nil
}
