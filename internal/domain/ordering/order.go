package ordering

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderState represents the state of an order
type OrderState string

const (
	// OrderStateBasket is the buyer's mutable in-progress cart. Every buyer
	// has at most one order in this state, lazily created on first write.
	OrderStateBasket     OrderState = "basket"
	OrderStateNew        OrderState = "new"
	OrderStateProcessing OrderState = "processing"
	OrderStateShipped    OrderState = "shipped"
	OrderStateDelivered  OrderState = "delivered"
)

// stateRank orders the states for forward-only transition checks
var stateRank = map[OrderState]int{
	OrderStateBasket:     0,
	OrderStateNew:        1,
	OrderStateProcessing: 2,
	OrderStateShipped:    3,
	OrderStateDelivered:  4,
}

// IsValid checks if the state is a valid OrderState
func (s OrderState) IsValid() bool {
	_, ok := stateRank[s]
	return ok
}

// String returns the string representation of OrderState
func (s OrderState) String() string {
	return string(s)
}

// IsManageable reports whether the state is a legal target for the manual
// update operation. The basket state can only be left through checkout.
func (s OrderState) IsManageable() bool {
	return s.IsValid() && s != OrderStateBasket
}

// CanAdvanceTo checks if the state can move to the target via the manual
// update operation: targets are the checkout-committed states only, and the
// transition never goes backwards
func (s OrderState) CanAdvanceTo(target OrderState) bool {
	if s == OrderStateBasket || !target.IsManageable() {
		return false
	}
	return stateRank[target] >= stateRank[s]
}

// OrderItem is one listing in an order. Unique on (order, product info):
// re-adding the same listing to a basket replaces the quantity instead of
// creating a second line.
type OrderItem struct {
	shared.BaseEntity
	OrderID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_items_order_listing,priority:1"`
	ProductInfoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_items_order_listing,priority:2"`
	Quantity      int       `gorm:"not null"`
	ProductInfo   catalog.ProductInfo
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates an order line for a listing
func NewOrderItem(orderID, productInfoID uuid.UUID, quantity int) (*OrderItem, error) {
	if productInfoID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LISTING", "Order item listing cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Order item quantity must be positive")
	}
	return &OrderItem{
		BaseEntity:    shared.NewBaseEntity(),
		OrderID:       orderID,
		ProductInfoID: productInfoID,
		Quantity:      quantity,
	}, nil
}

// Amount returns quantity x listing price. Requires ProductInfo to be loaded.
func (i *OrderItem) Amount() decimal.Decimal {
	return i.ProductInfo.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a buyer's order aggregate, from basket through delivery
type Order struct {
	shared.BaseAggregateRoot
	BuyerID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	State     OrderState `gorm:"type:varchar(20);not null;default:'basket';index"`
	ContactID *uuid.UUID `gorm:"type:uuid"`
	Contact   *Contact
	Items     []OrderItem `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewBasket creates the buyer's basket order
func NewBasket(buyerID uuid.UUID) (*Order, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Order buyer cannot be empty")
	}
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           buyerID,
		State:             OrderStateBasket,
	}, nil
}

// Submit promotes the basket to a placed order. A delivery contact is
// mandatory before leaving the basket state.
func (o *Order) Submit(contactID uuid.UUID) error {
	if o.State != OrderStateBasket {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit order in %s state", o.State))
	}
	if contactID == uuid.Nil {
		return shared.ErrMissingContact
	}

	o.ContactID = &contactID
	o.State = OrderStateNew
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return nil
}

// Advance moves the order to a later fulfillment state
func (o *Order) Advance(target OrderState) error {
	if !o.State.CanAdvanceTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move order from %s to %s", o.State, target))
	}

	o.State = target
	o.UpdatedAt = time.Now()

	return nil
}

// SetContact reassigns the delivery contact
func (o *Order) SetContact(contactID uuid.UUID) error {
	if contactID == uuid.Nil {
		return shared.ErrMissingContact
	}
	o.ContactID = &contactID
	o.UpdatedAt = time.Now()
	return nil
}

// IsBasket returns true while the order is the buyer's mutable cart
func (o *Order) IsBasket() bool {
	return o.State == OrderStateBasket
}

// CanDelete returns true if the order may be deleted. An active basket is
// never deletable; it must be emptied of items instead.
func (o *Order) CanDelete() bool {
	return o.State != OrderStateBasket
}

// Total returns the read-time projection of the order total:
// the sum of quantity x listing price over all items. Never persisted.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for idx := range o.Items {
		total = total.Add(o.Items[idx].Amount())
	}
	return total
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// ShopOwnerIDs returns the distinct owners of the shops selling the order's
// items, in first-seen order. Requires items with their shops loaded.
func (o *Order) ShopOwnerIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(o.Items))
	owners := make([]uuid.UUID, 0, len(o.Items))
	for idx := range o.Items {
		ownerID := o.Items[idx].ProductInfo.Shop.OwnerID
		if ownerID == uuid.Nil {
			continue
		}
		if _, ok := seen[ownerID]; ok {
			continue
		}
		seen[ownerID] = struct{}{}
		owners = append(owners, ownerID)
	}
	return owners
}

// HasItemsFromOwner reports whether any item is sold by a shop the given
// principal owns. Requires items with their shops loaded.
func (o *Order) HasItemsFromOwner(ownerID uuid.UUID) bool {
	for idx := range o.Items {
		if o.Items[idx].ProductInfo.Shop.OwnerID == ownerID {
			return true
		}
	}
	return false
}
