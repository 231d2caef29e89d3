package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// PartnerService handles the shop owner's view of their own shop
type PartnerService struct {
	shopRepo catalog.ShopRepository
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(shopRepo catalog.ShopRepository) *PartnerService {
	return &PartnerService{shopRepo: shopRepo}
}

// GetState returns the partner's shop with its accepting-orders flag
func (s *PartnerService) GetState(ctx context.Context, ownerID uuid.UUID) (*ShopDTO, error) {
	shop, err := s.shopRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ToShopDTO(shop), nil
}

// SetState flips the accepting-orders flag on every shop the partner owns.
// The raw value accepts the usual boolean spellings ("on", "true", "1", ...).
func (s *PartnerService) SetState(ctx context.Context, ownerID uuid.UUID, rawState string) error {
	state, ok := parseBool(rawState)
	if !ok {
		return shared.NewValidationError(map[string][]string{
			"state": {"state must be a boolean value"},
		})
	}

	updated, err := s.shopRepo.UpdateStateByOwner(ctx, ownerID, state)
	if err != nil {
		return err
	}
	if updated == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// parseBool accepts the spellings partners actually send in forms
func parseBool(raw string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes", "t", "true", "on", "1":
		return true, true
	case "n", "no", "f", "false", "off", "0":
		return false, true
	default:
		return false, false
	}
}
