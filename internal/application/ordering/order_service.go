package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/ordering"
	"github.com/marketplace/backend/internal/domain/shared"
)

// OrderService handles placed orders for buyers and partners
type OrderService struct {
	orderRepo ordering.OrderRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo ordering.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// ListForBuyer returns the buyer's placed orders with read-time totals.
// The basket never shows up here.
func (s *OrderService) ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]OrderDTO, error) {
	orders, err := s.orderRepo.FindSubmittedByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, *ToOrderDTO(&orders[i]))
	}
	return dtos, nil
}

// GetForBuyer returns one of the buyer's orders by ID
func (s *OrderService) GetForBuyer(ctx context.Context, buyerID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.orderRepo.FindByIDForBuyer(ctx, buyerID, orderID)
	if err != nil {
		return nil, err
	}
	return ToOrderDTO(order), nil
}

// Advance moves a placed order to a later fulfillment state, optionally
// reassigning the delivery contact at the same time. Only a partner with
// items in the order may move it; baskets are not reachable through this
// operation and transitions never go backwards.
func (s *OrderService) Advance(ctx context.Context, ownerID, orderID uuid.UUID, target ordering.OrderState, contactID *uuid.UUID) (*OrderDTO, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.HasItemsFromOwner(ownerID) {
		return nil, shared.ErrForbidden
	}

	if err := order.Advance(target); err != nil {
		return nil, err
	}
	if contactID != nil {
		if err := order.SetContact(*contactID); err != nil {
			return nil, err
		}
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	return ToOrderDTO(order), nil
}

// DeleteForBuyer removes one of the buyer's placed orders. The active
// basket is protected; it can only be emptied, never deleted.
func (s *OrderService) DeleteForBuyer(ctx context.Context, buyerID, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByIDForBuyer(ctx, buyerID, orderID)
	if err != nil {
		return err
	}

	if !order.CanDelete() {
		return shared.ErrBasketActive
	}
	return s.orderRepo.Delete(ctx, order.ID)
}

// ListForPartner returns placed orders that contain at least one item sold
// by a shop the partner owns. Baskets are excluded and an order spanning
// several of the partner's listings appears once.
func (s *OrderService) ListForPartner(ctx context.Context, ownerID uuid.UUID) ([]OrderDTO, error) {
	orders, err := s.orderRepo.FindSubmittedByShopOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, *ToOrderDTO(&orders[i]))
	}
	return dtos, nil
}
