package reports

import (
	"context"

	"stockbook/internal/core/types"
)

// Repository defines the read-side queries behind reports.
type Repository interface {
	// GetDashboard aggregates entity counts and document totals.
	GetDashboard(ctx context.Context, lowStockThreshold types.Quantity) (*Dashboard, error)

	// GetLowStock lists products at or below the threshold.
	GetLowStock(ctx context.Context, threshold types.Quantity) ([]LowStockItem, error)

	// GetTurnover computes per-product movement totals over a period.
	GetTurnover(ctx context.Context, filter TurnoverFilter) ([]TurnoverItem, error)

	// GetDocumentTotals aggregates committed documents over a period.
	GetDocumentTotals(ctx context.Context, filter DocumentTotalsFilter) (*DocumentTotals, error)
}
