package ordering

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Event types for the ordering domain
const (
	EventTypeOrderPlaced = "ordering.order.placed"
)

// OrderPlacedEvent is emitted when a basket is submitted as an order.
// Notification fan-out (buyer confirmation, partner alerts) hangs off it.
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	BuyerID uuid.UUID `json:"buyer_id"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, "Order", order.ID),
		OrderID:         order.ID,
		BuyerID:         order.BuyerID,
	}
}
