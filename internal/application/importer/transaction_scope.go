package importer

import (
	"context"

	"github.com/marketplace/backend/internal/domain/catalog"
)

// TransactionScope provides transactional access to the catalog import store.
// A feed reconciliation runs entirely within one Execute call so a failure
// midway leaves the previously imported catalog untouched.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(store catalog.ImportStore) error) error
}

// NoOpTransactionScope runs the function against a plain store without a
// real transaction. Useful in tests.
type NoOpTransactionScope struct {
	store catalog.ImportStore
}

// NewNoOpTransactionScope creates a NoOpTransactionScope around the given store.
func NewNoOpTransactionScope(store catalog.ImportStore) *NoOpTransactionScope {
	return &NoOpTransactionScope{store: store}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(store catalog.ImportStore) error) error {
	return fn(s.store)
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
