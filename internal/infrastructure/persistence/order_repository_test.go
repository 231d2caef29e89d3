package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketplace/backend/internal/domain/ordering"
	"github.com/marketplace/backend/internal/domain/shared"
)

func TestGetOrCreateBasketIsLazy(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	buyerID := uuid.New()

	_, err := repo.FindBasket(ctx, buyerID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	basket, err := repo.GetOrCreateBasket(ctx, buyerID)
	require.NoError(t, err)
	assert.True(t, basket.IsBasket())

	again, err := repo.GetOrCreateBasket(ctx, buyerID)
	require.NoError(t, err)
	assert.Equal(t, basket.ID, again.ID)
}

func TestUpsertItemReplacesQuantity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	buyerID := uuid.New()

	listing := seedListing(t, db, uuid.New(), "Svyaznoy", "Widget", "1")
	basket, err := repo.GetOrCreateBasket(ctx, buyerID)
	require.NoError(t, err)

	created, err := repo.UpsertItem(ctx, basket.ID, listing.ID, 2)
	require.NoError(t, err)
	assert.True(t, created)

	// re-adding the same listing pins the quantity, no second line
	created, err = repo.UpsertItem(ctx, basket.ID, listing.ID, 7)
	require.NoError(t, err)
	assert.False(t, created)

	loaded, err := repo.FindBasket(ctx, buyerID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 7, loaded.Items[0].Quantity)
	// total reflects the pinned quantity: 7 x 100
	assert.Equal(t, "700", loaded.Total().String())
}

func TestDeleteItemsSkipsForeignIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	listingA := seedListing(t, db, uuid.New(), "Shop A", "Widget", "1")
	listingB := seedListing(t, db, uuid.New(), "Shop B", "Gadget", "2")

	mine, err := repo.GetOrCreateBasket(ctx, uuid.New())
	require.NoError(t, err)
	theirs, err := repo.GetOrCreateBasket(ctx, uuid.New())
	require.NoError(t, err)

	_, err = repo.UpsertItem(ctx, mine.ID, listingA.ID, 1)
	require.NoError(t, err)
	_, err = repo.UpsertItem(ctx, theirs.ID, listingB.ID, 1)
	require.NoError(t, err)

	var theirItem ordering.OrderItem
	require.NoError(t, db.First(&theirItem, "order_id = ?", theirs.ID).Error)
	var myItem ordering.OrderItem
	require.NoError(t, db.First(&myItem, "order_id = ?", mine.ID).Error)

	// the foreign basket's item id is silently skipped
	removed, err := repo.DeleteItems(ctx, mine.ID, []uuid.UUID{myItem.ID, theirItem.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var count int64
	require.NoError(t, db.Model(&ordering.OrderItem{}).Where("order_id = ?", theirs.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateItemQuantityScopedToOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	listing := seedListing(t, db, uuid.New(), "Svyaznoy", "Widget", "1")
	basket, err := repo.GetOrCreateBasket(ctx, uuid.New())
	require.NoError(t, err)
	_, err = repo.UpsertItem(ctx, basket.ID, listing.ID, 2)
	require.NoError(t, err)

	var item ordering.OrderItem
	require.NoError(t, db.First(&item, "order_id = ?", basket.ID).Error)

	changed, err := repo.UpdateItemQuantity(ctx, basket.ID, item.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)

	// an item id paired with the wrong order changes nothing
	changed, err = repo.UpdateItemQuantity(ctx, uuid.New(), item.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), changed)
}

func TestFindSubmittedByBuyerExcludesBasket(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	contactRepo := NewGormContactRepository(db)
	ctx := context.Background()
	buyerID := uuid.New()

	listing := seedListing(t, db, uuid.New(), "Svyaznoy", "Widget", "1")

	contact, err := ordering.NewContact(buyerID, "Moscow", "Tverskaya", "+70000000000")
	require.NoError(t, err)
	require.NoError(t, contactRepo.Save(ctx, contact))

	basket, err := repo.GetOrCreateBasket(ctx, buyerID)
	require.NoError(t, err)
	_, err = repo.UpsertItem(ctx, basket.ID, listing.ID, 1)
	require.NoError(t, err)

	// nothing placed yet
	orders, err := repo.FindSubmittedByBuyer(ctx, buyerID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	placed, err := repo.FindBasket(ctx, buyerID)
	require.NoError(t, err)
	require.NoError(t, placed.Submit(contact.ID))
	require.NoError(t, repo.Save(ctx, placed))

	orders, err = repo.FindSubmittedByBuyer(ctx, buyerID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, ordering.OrderStateNew, orders[0].State)
	require.NotNil(t, orders[0].Contact)
	assert.Equal(t, "Moscow", orders[0].Contact.City)

	// the submitted order left the basket slate empty
	_, err = repo.FindBasket(ctx, buyerID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestFindSubmittedByShopOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	contactRepo := NewGormContactRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	listingA := seedListing(t, db, ownerID, "My Shop", "Widget", "1")
	listingB := seedListing(t, db, ownerID, "My Shop", "Gadget", "2")
	foreign := seedListing(t, db, uuid.New(), "Other Shop", "Thing", "3")

	buyerID := uuid.New()
	contact, err := ordering.NewContact(buyerID, "Moscow", "Tverskaya", "+70000000000")
	require.NoError(t, err)
	require.NoError(t, contactRepo.Save(ctx, contact))

	// one placed order holding two of the partner's listings
	placed, err := repo.GetOrCreateBasket(ctx, buyerID)
	require.NoError(t, err)
	_, err = repo.UpsertItem(ctx, placed.ID, listingA.ID, 1)
	require.NoError(t, err)
	_, err = repo.UpsertItem(ctx, placed.ID, listingB.ID, 1)
	require.NoError(t, err)
	loaded, err := repo.FindBasket(ctx, buyerID)
	require.NoError(t, err)
	require.NoError(t, loaded.Submit(contact.ID))
	require.NoError(t, repo.Save(ctx, loaded))

	// another buyer's basket with the partner's listing stays invisible
	otherBuyer := uuid.New()
	basket, err := repo.GetOrCreateBasket(ctx, otherBuyer)
	require.NoError(t, err)
	_, err = repo.UpsertItem(ctx, basket.ID, listingA.ID, 1)
	require.NoError(t, err)

	// an order with only foreign listings stays invisible too
	foreignBuyer := uuid.New()
	foreignContact, err := ordering.NewContact(foreignBuyer, "Kazan", "Bauman", "+70000000001")
	require.NoError(t, err)
	require.NoError(t, contactRepo.Save(ctx, foreignContact))
	foreignOrder, err := repo.GetOrCreateBasket(ctx, foreignBuyer)
	require.NoError(t, err)
	_, err = repo.UpsertItem(ctx, foreignOrder.ID, foreign.ID, 1)
	require.NoError(t, err)
	loadedForeign, err := repo.FindBasket(ctx, foreignBuyer)
	require.NoError(t, err)
	require.NoError(t, loadedForeign.Submit(foreignContact.ID))
	require.NoError(t, repo.Save(ctx, loadedForeign))

	orders, err := repo.FindSubmittedByShopOwner(ctx, ownerID)
	require.NoError(t, err)
	// the order appears once despite holding two of the partner's listings
	require.Len(t, orders, 1)
	assert.Equal(t, placed.ID, orders[0].ID)
}

func TestDeleteRemovesOrderAndItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	listing := seedListing(t, db, uuid.New(), "Svyaznoy", "Widget", "1")
	basket, err := repo.GetOrCreateBasket(ctx, uuid.New())
	require.NoError(t, err)
	_, err = repo.UpsertItem(ctx, basket.ID, listing.ID, 1)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, basket.ID))

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&ordering.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&ordering.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), itemCount)
}

func TestContactDeleteForUserScoped(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormContactRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	mine, err := ordering.NewContact(userID, "Moscow", "Tverskaya", "+70000000000")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, mine))

	otherID := uuid.New()
	theirs, err := ordering.NewContact(otherID, "Kazan", "Bauman", "+70000000001")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, theirs))

	removed, err := repo.DeleteForUser(ctx, userID, []uuid.UUID{mine.ID, theirs.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	remaining, err := repo.FindByUser(ctx, otherID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
