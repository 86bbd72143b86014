package ledger

import (
	"context"
	"time"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
)

// Repository persists on-hand balances and the movement journal.
type Repository interface {
	// GetOnHandForUpdate reads a product's on-hand quantity and locks
	// the row for the remainder of the current transaction.
	GetOnHandForUpdate(ctx context.Context, productID id.ID) (types.Quantity, error)

	// SetOnHand writes a product's on-hand quantity. The row must
	// already be locked via GetOnHandForUpdate.
	SetOnHand(ctx context.Context, productID id.ID, quantity types.Quantity) error

	// RecordMovement appends a journal entry for an adjustment.
	RecordMovement(ctx context.Context, movement *entity.StockMovement) error

	// ListMovements returns journal entries, newest first.
	ListMovements(ctx context.Context, filter MovementFilter) ([]MovementRow, error)
}

// MovementFilter narrows the movement journal query.
type MovementFilter struct {
	ProductID  id.ID
	RecorderID id.ID
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}

// MovementRow is a journal entry enriched with the product name.
type MovementRow struct {
	entity.StockMovement
	ProductName string `db:"product_name" json:"productName"`
}
