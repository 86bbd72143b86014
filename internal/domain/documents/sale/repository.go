package sale

import (
	"context"
	"time"

	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain"
)

// ListFilter narrows sale list queries.
type ListFilter struct {
	CustomerID id.ID
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}

// Repository defines the interface for Sale persistence.
type Repository interface {
	// Create inserts the document header. Total is written as zero;
	// SetTotal fills it in once the lines are committed.
	Create(ctx context.Context, doc *Sale) error

	// SaveLines inserts the table part.
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// SetTotal writes the computed total onto the header.
	SetTotal(ctx context.Context, docID id.ID, total types.Money) error

	// GetByID retrieves the header with display names joined in.
	GetByID(ctx context.Context, docID id.ID) (*Sale, error)

	// GetLines retrieves the table part with product names joined in.
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)

	// List retrieves headers matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Sale], error)
}
