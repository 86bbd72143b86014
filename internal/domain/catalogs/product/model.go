// Package product provides the Product catalog: the items whose stock
// the ledger tracks.
package product

import (
	"context"
	"strings"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/types"
)

// Product is a stockable item.
type Product struct {
	entity.Catalog

	// SKU is the stock keeping unit (unique when set)
	SKU *string `db:"sku" json:"sku,omitempty"`

	// UnitPrice is the current reference price. Document lines snapshot
	// their own unit price at commit time; this is only the default.
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// QuantityOnHand is the current balance, maintained by the stock
	// ledger. Never written through catalog updates.
	QuantityOnHand types.Quantity `db:"quantity_on_hand" json:"quantityOnHand"`

	// Description is an optional long description
	Description *string `db:"description" json:"description,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name string, unitPrice types.Money) *Product {
	return &Product{
		Catalog:   entity.NewCatalog(code, name),
		UnitPrice: unitPrice,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}

	if p.SKU != nil && strings.TrimSpace(*p.SKU) == "" {
		return apperror.NewValidation("sku cannot be blank").
			WithDetail("field", "sku")
	}

	return nil
}
