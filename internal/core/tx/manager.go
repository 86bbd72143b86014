// Package tx provides transaction management abstractions.
// Domain services depend on these interfaces rather than on a specific
// database implementation; the concrete manager lives in
// infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager defines the contract for unit-of-work management.
// Implementations handle BEGIN, COMMIT, ROLLBACK, and nested reuse.
type Manager interface {
	// RunInTransaction executes fn within a database transaction.
	// If fn returns an error, the transaction is rolled back; if fn
	// succeeds, it is committed. Nested calls reuse the transaction
	// already present in ctx.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transaction support.
// Use for queries that don't modify data.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
