package product

import (
	"context"

	"stockbook/internal/core/types"
	"stockbook/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// FindBySKU retrieves a product by its SKU.
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindLowStock retrieves products with quantity on hand at or
	// below the threshold.
	FindLowStock(ctx context.Context, threshold types.Quantity, filter domain.ListFilter) (domain.ListResult[*Product], error)
}
