package ordering

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace/backend/internal/domain/ordering"
	"github.com/marketplace/backend/internal/domain/shared"
)

// BasketService handles the buyer's mutable cart
type BasketService struct {
	orderRepo      ordering.OrderRepository
	contactRepo    ordering.ContactRepository
	eventPublisher shared.EventPublisher
}

// NewBasketService creates a new BasketService
func NewBasketService(orderRepo ordering.OrderRepository, contactRepo ordering.ContactRepository) *BasketService {
	return &BasketService{
		orderRepo:   orderRepo,
		contactRepo: contactRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *BasketService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetBasket returns the buyer's basket. A buyer who never added anything
// gets an empty basket view, not an error.
func (s *BasketService) GetBasket(ctx context.Context, buyerID uuid.UUID) (*OrderDTO, error) {
	basket, err := s.orderRepo.FindBasket(ctx, buyerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &OrderDTO{
				State: ordering.OrderStateBasket.String(),
				Total: decimal.Zero,
				Items: []OrderItemDTO{},
			}, nil
		}
		return nil, err
	}
	return ToOrderDTO(basket), nil
}

// AddItems puts listings into the basket, creating it on first use.
// A listing already in the basket gets its quantity replaced rather than
// a second line. Returns the number of lines created.
func (s *BasketService) AddItems(ctx context.Context, buyerID uuid.UUID, specs []ItemSpec) (int, error) {
	if len(specs) == 0 {
		return 0, shared.NewValidationError(map[string][]string{
			"items": {"items are required"},
		})
	}
	for _, spec := range specs {
		if spec.ProductInfoID == uuid.Nil || spec.Quantity <= 0 {
			return 0, shared.NewValidationError(map[string][]string{
				"items": {"each item needs a listing and a positive quantity"},
			})
		}
	}

	basket, err := s.orderRepo.GetOrCreateBasket(ctx, buyerID)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, spec := range specs {
		wasCreated, err := s.orderRepo.UpsertItem(ctx, basket.ID, spec.ProductInfoID, spec.Quantity)
		if err != nil {
			return created, err
		}
		if wasCreated {
			created++
		}
	}
	return created, nil
}

// RemoveItems deletes the given lines from the basket. IDs that are not in
// the buyer's basket are skipped silently. Returns the number removed.
func (s *BasketService) RemoveItems(ctx context.Context, buyerID uuid.UUID, itemIDs []uuid.UUID) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, shared.NewValidationError(map[string][]string{
			"items": {"item ids are required"},
		})
	}

	basket, err := s.orderRepo.FindBasket(ctx, buyerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return s.orderRepo.DeleteItems(ctx, basket.ID, itemIDs)
}

// UpdateQuantities sets new quantities on existing basket lines. Any
// non-negative quantity is accepted; zero keeps the line with nothing on
// it. Lines not in the buyer's basket are skipped. Returns the number of
// lines changed.
func (s *BasketService) UpdateQuantities(ctx context.Context, buyerID uuid.UUID, specs []QuantitySpec) (int64, error) {
	if len(specs) == 0 {
		return 0, shared.NewValidationError(map[string][]string{
			"items": {"items are required"},
		})
	}
	for _, spec := range specs {
		if spec.Quantity < 0 {
			return 0, shared.NewValidationError(map[string][]string{
				"items": {"quantity cannot be negative"},
			})
		}
	}

	basket, err := s.orderRepo.FindBasket(ctx, buyerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	var updated int64
	for _, spec := range specs {
		n, err := s.orderRepo.UpdateItemQuantity(ctx, basket.ID, spec.ItemID, spec.Quantity)
		if err != nil {
			return updated, err
		}
		updated += n
	}
	return updated, nil
}

// Submit places the basket as an order against one of the buyer's delivery
// contacts. The contact must belong to the buyer. Order totals stay a read
// projection; nothing about prices is frozen here.
func (s *BasketService) Submit(ctx context.Context, buyerID, contactID uuid.UUID) (*OrderDTO, error) {
	if contactID == uuid.Nil {
		return nil, shared.ErrMissingContact
	}

	contact, err := s.contactRepo.FindByIDForUser(ctx, buyerID, contactID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrMissingContact
		}
		return nil, err
	}

	basket, err := s.orderRepo.FindBasket(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if basket.ItemCount() == 0 {
		return nil, shared.NewDomainError("EMPTY_BASKET", "Cannot place an order with an empty basket")
	}

	if err := basket.Submit(contact.ID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, basket); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, basket.GetDomainEvents()...)
	}
	basket.ClearDomainEvents()

	basket.Contact = contact
	return ToOrderDTO(basket), nil
}
