package handlers

import (
	"context"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// resolveLines parses request lines and snapshots a unit price for
// each: the explicit request price when given, the product's catalog
// price otherwise. Lines are added in request order.
func resolveLines(
	ctx context.Context,
	products *product.Service,
	lines []dto.DocumentLineRequest,
	add func(productID id.ID, quantity types.Quantity, unitPrice types.Money),
) error {
	productIDs := make([]id.ID, 0, len(lines))
	for _, line := range lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return apperror.NewValidation("invalid product id").
				WithDetail("productId", line.ProductID)
		}
		productIDs = append(productIDs, productID)
	}

	byID, err := products.GetMany(ctx, productIDs)
	if err != nil {
		return err
	}

	for i, line := range lines {
		productID := productIDs[i]
		item, ok := byID[productID]
		if !ok {
			return apperror.NewNotFound("product", productID)
		}

		unitPrice := item.UnitPrice
		if line.UnitPrice != nil {
			unitPrice = *line.UnitPrice
		}

		add(productID, line.Quantity, unitPrice)
	}

	return nil
}
