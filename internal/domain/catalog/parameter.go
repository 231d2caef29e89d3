package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Parameter is a global named attribute (e.g. "color"), unique by name.
// Parameters are create-only: a name is never renamed once introduced.
type Parameter struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Parameter) TableName() string {
	return "parameters"
}

// NewParameter creates a new named parameter
func NewParameter(name string) (*Parameter, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Parameter name cannot be empty")
	}
	return &Parameter{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// ProductParameter is the value of one parameter for one listing.
// Unique on (product_info, parameter); the value follows replace-all upserts.
type ProductParameter struct {
	shared.BaseEntity
	ProductInfoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_parameters_info_param,priority:1"`
	ParameterID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_parameters_info_param,priority:2"`
	Value         string    `gorm:"type:varchar(200);not null"`
	Parameter     Parameter
}

// TableName returns the table name for GORM
func (ProductParameter) TableName() string {
	return "product_parameters"
}

// NewProductParameter creates a parameter value for a listing
func NewProductParameter(productInfoID, parameterID uuid.UUID, value string) (*ProductParameter, error) {
	if productInfoID == uuid.Nil || parameterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Product parameter references cannot be empty")
	}
	return &ProductParameter{
		BaseEntity:    shared.NewBaseEntity(),
		ProductInfoID: productInfoID,
		ParameterID:   parameterID,
		Value:         value,
	}, nil
}

// SetValue overwrites the parameter value
func (p *ProductParameter) SetValue(value string) {
	p.Value = value
	p.UpdatedAt = time.Now()
}
