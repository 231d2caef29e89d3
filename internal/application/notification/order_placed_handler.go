package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/ordering"
	"github.com/marketplace/backend/internal/domain/shared"
)

// OrderPlacedHandler confirms a placed order to its buyer
type OrderPlacedHandler struct {
	logger    *zap.Logger
	notifier  Notifier
	userRepo  identity.UserRepository
	orderRepo ordering.OrderRepository
}

// NewOrderPlacedHandler creates a new OrderPlacedHandler
func NewOrderPlacedHandler(
	logger *zap.Logger,
	notifier Notifier,
	userRepo identity.UserRepository,
	orderRepo ordering.OrderRepository,
) *OrderPlacedHandler {
	return &OrderPlacedHandler{
		logger:    logger,
		notifier:  notifier,
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderPlacedHandler) EventTypes() []string {
	return []string{ordering.EventTypeOrderPlaced}
}

// Handle confirms the order to its buyer and fans out one notification to
// the owner of every shop with items in the order. The total is computed
// from the order's current items, same as every other read.
func (h *OrderPlacedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*ordering.OrderPlacedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	buyer, err := h.userRepo.FindByID(ctx, placed.BuyerID)
	if err != nil {
		h.logger.Error("failed to load buyer for order confirmation",
			zap.String("order_id", placed.OrderID.String()),
			zap.Error(err))
		return err
	}

	order, orderErr := h.orderRepo.FindByID(ctx, placed.OrderID)

	body := fmt.Sprintf("Your order %s has been placed.", placed.OrderID)
	if orderErr == nil {
		body = fmt.Sprintf("Your order %s has been placed. Total: %s", placed.OrderID, order.Total())
	}

	msg := Message{
		Kind:    KindOrderPlaced,
		To:      buyer.Email,
		Subject: "Order status update",
		Body:    body,
		Meta: map[string]string{
			"order_id": placed.OrderID.String(),
		},
	}
	if err := h.notifier.Send(ctx, msg); err != nil {
		h.logger.Error("failed to send order confirmation",
			zap.String("order_id", placed.OrderID.String()),
			zap.Error(err))
		return err
	}

	h.logger.Info("order confirmation sent",
		zap.String("order_id", placed.OrderID.String()),
		zap.String("email", buyer.Email))

	if orderErr != nil {
		h.logger.Error("failed to load order for partner notifications",
			zap.String("order_id", placed.OrderID.String()),
			zap.Error(orderErr))
		return orderErr
	}
	h.notifyShopOwners(ctx, order)
	return nil
}

// notifyShopOwners sends one message per owning partner. A failed partner
// notification is logged and never blocks the remaining ones.
func (h *OrderPlacedHandler) notifyShopOwners(ctx context.Context, order *ordering.Order) {
	for _, ownerID := range order.ShopOwnerIDs() {
		owner, err := h.userRepo.FindByID(ctx, ownerID)
		if err != nil {
			h.logger.Error("failed to load shop owner for order notification",
				zap.String("order_id", order.ID.String()),
				zap.String("owner_id", ownerID.String()),
				zap.Error(err))
			continue
		}

		msg := Message{
			Kind:    KindOrderReceived,
			To:      owner.Email,
			Subject: "New order",
			Body:    fmt.Sprintf("Order %s contains items from your shop.", order.ID),
			Meta: map[string]string{
				"order_id": order.ID.String(),
			},
		}
		if err := h.notifier.Send(ctx, msg); err != nil {
			h.logger.Error("failed to notify shop owner",
				zap.String("order_id", order.ID.String()),
				zap.String("email", owner.Email),
				zap.Error(err))
			continue
		}

		h.logger.Info("shop owner notified of new order",
			zap.String("order_id", order.ID.String()),
			zap.String("email", owner.Email))
	}
}
