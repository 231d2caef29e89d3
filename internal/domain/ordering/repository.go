package ordering

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID regardless of buyer
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForBuyer finds an order by ID scoped to its buyer
	FindByIDForBuyer(ctx context.Context, buyerID, id uuid.UUID) (*Order, error)

	// FindBasket finds the buyer's basket order with items, listings and
	// their products loaded; shared.ErrNotFound when the buyer has none
	FindBasket(ctx context.Context, buyerID uuid.UUID) (*Order, error)

	// GetOrCreateBasket resolves the buyer's basket order, creating it
	// lazily on first write
	GetOrCreateBasket(ctx context.Context, buyerID uuid.UUID) (*Order, error)

	// FindSubmittedByBuyer returns the buyer's orders excluding the basket,
	// with items, listings and contact loaded
	FindSubmittedByBuyer(ctx context.Context, buyerID uuid.UUID) ([]Order, error)

	// FindSubmittedByShopOwner returns orders containing at least one item
	// sold by a shop the principal owns, excluding baskets, de-duplicated
	FindSubmittedByShopOwner(ctx context.Context, ownerID uuid.UUID) ([]Order, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error

	// Delete removes an order and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// UpsertItem adds a listing to an order or, when the listing is already
	// present, replaces the line's quantity; reports whether a line was created
	UpsertItem(ctx context.Context, orderID, productInfoID uuid.UUID, quantity int) (bool, error)

	// DeleteItems removes the given item IDs scoped to the order; IDs that
	// do not belong to the order are skipped and not counted
	DeleteItems(ctx context.Context, orderID uuid.UUID, itemIDs []uuid.UUID) (int64, error)

	// UpdateItemQuantity sets the quantity of one item scoped to the order;
	// returns the number of rows changed (0 when the item is not in the order)
	UpdateItemQuantity(ctx context.Context, orderID, itemID uuid.UUID, quantity int) (int64, error)
}

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	// FindByIDForUser finds a contact by ID scoped to its owner
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Contact, error)

	// FindByUser returns all contacts of a user
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Contact, error)

	// Save creates or updates a contact
	Save(ctx context.Context, contact *Contact) error

	// DeleteForUser removes the given contact IDs scoped to the user;
	// foreign IDs are skipped and not counted
	DeleteForUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
}
