package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace/backend/internal/domain/ordering"
)

// ItemSpec names one listing and the quantity to put in the basket
type ItemSpec struct {
	ProductInfoID uuid.UUID `json:"product_info" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,gt=0"`
}

// QuantitySpec sets the quantity of one existing basket line. Zero is a
// valid quantity; removal is a separate operation.
type QuantitySpec struct {
	ItemID   uuid.UUID `json:"id" binding:"required"`
	Quantity int       `json:"quantity" binding:"gte=0"`
}

// OrderItemDTO is one order line in API responses
type OrderItemDTO struct {
	ID            uuid.UUID       `json:"id"`
	ProductInfoID uuid.UUID       `json:"product_info"`
	Product       string          `json:"product"`
	Shop          string          `json:"shop"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Amount        decimal.Decimal `json:"amount"`
}

// ContactDTO is a delivery contact in API responses
type ContactDTO struct {
	ID        uuid.UUID `json:"id"`
	City      string    `json:"city"`
	Street    string    `json:"street"`
	House     string    `json:"house,omitempty"`
	Structure string    `json:"structure,omitempty"`
	Building  string    `json:"building,omitempty"`
	Apartment string    `json:"apartment,omitempty"`
	Phone     string    `json:"phone"`
}

// OrderDTO is an order in API responses. Total is computed at read time
// from the current item quantities and listing prices.
type OrderDTO struct {
	ID        uuid.UUID       `json:"id"`
	State     string          `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	Total     decimal.Decimal `json:"total_sum"`
	Items     []OrderItemDTO  `json:"ordered_items"`
	Contact   *ContactDTO     `json:"contact,omitempty"`
}

// CreateContactRequest carries a new delivery contact
type CreateContactRequest struct {
	City      string `json:"city" binding:"required"`
	Street    string `json:"street" binding:"required"`
	House     string `json:"house"`
	Structure string `json:"structure"`
	Building  string `json:"building"`
	Apartment string `json:"apartment"`
	Phone     string `json:"phone" binding:"required"`
}

// UpdateContactRequest carries a partial contact update
type UpdateContactRequest struct {
	City      *string `json:"city"`
	Street    *string `json:"street"`
	House     *string `json:"house"`
	Structure *string `json:"structure"`
	Building  *string `json:"building"`
	Apartment *string `json:"apartment"`
	Phone     *string `json:"phone"`
}

// ToOrderDTO converts an order aggregate to its API shape
func ToOrderDTO(order *ordering.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:        order.ID,
		State:     order.State.String(),
		CreatedAt: order.CreatedAt,
		Total:     order.Total(),
		Items:     make([]OrderItemDTO, 0, len(order.Items)),
	}
	for i := range order.Items {
		item := &order.Items[i]
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:            item.ID,
			ProductInfoID: item.ProductInfoID,
			Product:       item.ProductInfo.Product.Name,
			Shop:          item.ProductInfo.Shop.Name,
			Quantity:      item.Quantity,
			Price:         item.ProductInfo.Price,
			Amount:        item.Amount(),
		})
	}
	if order.Contact != nil {
		dto.Contact = ToContactDTO(order.Contact)
	}
	return dto
}

// ToContactDTO converts a contact to its API shape
func ToContactDTO(contact *ordering.Contact) *ContactDTO {
	return &ContactDTO{
		ID:        contact.ID,
		City:      contact.City,
		Street:    contact.Street,
		House:     contact.House,
		Structure: contact.Structure,
		Building:  contact.Building,
		Apartment: contact.Apartment,
		Phone:     contact.Phone,
	}
}
