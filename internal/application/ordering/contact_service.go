package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/ordering"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ContactService handles a buyer's delivery contacts
type ContactService struct {
	contactRepo ordering.ContactRepository
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo ordering.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// List returns all contacts of the user
func (s *ContactService) List(ctx context.Context, userID uuid.UUID) ([]ContactDTO, error) {
	contacts, err := s.contactRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]ContactDTO, 0, len(contacts))
	for i := range contacts {
		dtos = append(dtos, *ToContactDTO(&contacts[i]))
	}
	return dtos, nil
}

// Create stores a new delivery contact for the user
func (s *ContactService) Create(ctx context.Context, userID uuid.UUID, req CreateContactRequest) (*ContactDTO, error) {
	contact, err := ordering.NewContact(userID, req.City, req.Street, req.Phone)
	if err != nil {
		return nil, err
	}
	contact.House = req.House
	contact.Structure = req.Structure
	contact.Building = req.Building
	contact.Apartment = req.Apartment

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}
	return ToContactDTO(contact), nil
}

// Update applies a partial update to one of the user's contacts
func (s *ContactService) Update(ctx context.Context, userID, contactID uuid.UUID, req UpdateContactRequest) (*ContactDTO, error) {
	contact, err := s.contactRepo.FindByIDForUser(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	err = contact.Apply(ordering.ContactUpdate{
		City:      req.City,
		Street:    req.Street,
		House:     req.House,
		Structure: req.Structure,
		Building:  req.Building,
		Apartment: req.Apartment,
		Phone:     req.Phone,
	})
	if err != nil {
		return nil, err
	}

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}
	return ToContactDTO(contact), nil
}

// Delete removes the given contacts, skipping IDs that belong to someone
// else. Returns the number removed.
func (s *ContactService) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, shared.NewValidationError(map[string][]string{
			"items": {"contact ids are required"},
		})
	}
	return s.contactRepo.DeleteForUser(ctx, userID, ids)
}
