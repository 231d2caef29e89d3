package importer

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

const (
	// DefaultLockTTL bounds how long one partner's import lock may be held
	DefaultLockTTL = 5 * time.Minute
)

// FeedFetcher retrieves the raw feed document from a partner URL
type FeedFetcher interface {
	// Fetch downloads the document at the given URL
	Fetch(ctx context.Context, feedURL string) ([]byte, error)
}

// Locker serializes imports per owner. Acquire fails fast when another
// import for the same owner is already running.
type Locker interface {
	// Acquire takes the named lock for at most ttl; ok is false when the
	// lock is already held
	Acquire(ctx context.Context, name string, ttl time.Duration) (ok bool, err error)
	// Release frees the named lock
	Release(ctx context.Context, name string) error
}

// ImportService reconciles partner price feeds into the catalog
type ImportService struct {
	fetcher FeedFetcher
	locker  Locker
	scope   TransactionScope
	lockTTL time.Duration
}

// NewImportService creates a new ImportService
func NewImportService(fetcher FeedFetcher, locker Locker, scope TransactionScope) *ImportService {
	return &ImportService{
		fetcher: fetcher,
		locker:  locker,
		scope:   scope,
		lockTTL: DefaultLockTTL,
	}
}

// SetLockTTL overrides the per-owner import lock TTL
func (s *ImportService) SetLockTTL(ttl time.Duration) {
	s.lockTTL = ttl
}

// ImportFromURL downloads, validates and reconciles one feed for the given
// owner. Validation sees the whole feed before any write, and all writes
// happen in a single transaction, so a failed import never leaves a
// half-applied catalog. Concurrent imports for the same owner are rejected.
func (s *ImportService) ImportFromURL(ctx context.Context, ownerID uuid.UUID, feedURL string) (*ImportSummary, error) {
	parsed, err := url.ParseRequestURI(feedURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, shared.NewValidationError(map[string][]string{
			"url": {"Invalid url"},
		})
	}

	lockName := "import:" + ownerID.String()
	ok, err := s.locker.Acquire(ctx, lockName, s.lockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.NewDomainError("IMPORT_IN_PROGRESS", "Another import for this account is already running")
	}
	defer func() {
		_ = s.locker.Release(context.WithoutCancel(ctx), lockName)
	}()

	raw, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	feed, err := ParseFeed(raw)
	if err != nil {
		return nil, err
	}
	if err := feed.Validate(); err != nil {
		return nil, err
	}

	summary := &ImportSummary{Shop: feed.Shop}
	err = s.scope.Execute(ctx, func(store catalog.ImportStore) error {
		return s.reconcile(ctx, store, ownerID, feedURL, feed, summary)
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// reconcile applies one validated feed through the import store. Categories
// and parameters follow the create-only naming policy; listings are fully
// replaced.
func (s *ImportService) reconcile(ctx context.Context, store catalog.ImportStore, ownerID uuid.UUID, feedURL string, feed *Feed, summary *ImportSummary) error {
	shop, created, err := store.GetOrCreateShop(ctx, ownerID, feed.Shop)
	if err != nil {
		return err
	}
	summary.ShopCreated = created

	// remember where this shop's catalog was last imported from
	if shop.URL != feedURL {
		shop.SetURL(feedURL)
		if err := store.SaveShop(ctx, shop); err != nil {
			return err
		}
	}

	categories := make(map[int64]uuid.UUID, len(feed.Categories))
	for _, fc := range feed.Categories {
		category, created, err := store.EnsureCategory(ctx, fc.ID, fc.Name)
		if err != nil {
			return err
		}
		if created {
			summary.CategoriesCreated++
		}
		summary.CategoriesSeen++
		if err := store.LinkCategoryToShop(ctx, category.ID, shop.ID); err != nil {
			return err
		}
		categories[fc.ID] = category.ID
	}

	for i := range feed.Goods {
		good := &feed.Goods[i]
		categoryID := categories[good.Category]

		product, created, err := store.GetOrCreateProduct(ctx, good.Name, categoryID)
		if err != nil {
			return err
		}
		if created {
			summary.ProductsCreated++
		}

		info, err := catalog.NewProductInfo(
			shop.ID, product.ID, string(good.ID), good.Model,
			good.Price.Decimal, good.PriceRRC.Decimal, good.Quantity,
		)
		if err != nil {
			return err
		}
		persisted, created, err := store.UpsertProductInfo(ctx, info)
		if err != nil {
			return err
		}
		if created {
			summary.ListingsCreated++
		} else {
			summary.ListingsUpdated++
		}

		for _, name := range good.SortedParameterNames() {
			parameter, _, err := store.EnsureParameter(ctx, name)
			if err != nil {
				return err
			}
			if _, err := store.UpsertProductParameter(ctx, persisted.ID, parameter.ID, good.Parameters[name]); err != nil {
				return err
			}
			summary.ParametersWritten++
		}
	}

	return nil
}
