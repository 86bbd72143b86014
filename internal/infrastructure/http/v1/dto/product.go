package dto

import (
	"stockbook/internal/core/types"
	"stockbook/internal/domain/catalogs/product"
)

// CreateProductRequest creates a product. Code is assigned by the
// numerator when omitted.
type CreateProductRequest struct {
	Code        string      `json:"code"`
	Name        string      `json:"name" binding:"required"`
	SKU         *string     `json:"sku"`
	UnitPrice   types.Money `json:"unitPrice"`
	Description *string     `json:"description"`
}

// ToEntity converts the request to a domain entity.
func (r CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name, r.UnitPrice)
	p.SKU = r.SKU
	p.Description = r.Description
	return p
}

// UpdateProductRequest updates a product. Nil fields are left unchanged.
// QuantityOnHand is ledger-maintained and cannot be set here.
type UpdateProductRequest struct {
	Name        *string      `json:"name"`
	SKU         *string      `json:"sku"`
	UnitPrice   *types.Money `json:"unitPrice"`
	Description *string      `json:"description"`
	Version     int          `json:"version" binding:"required,min=1"`
}

// ApplyTo maps non-nil fields onto the existing entity.
func (r UpdateProductRequest) ApplyTo(p *product.Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.SKU != nil {
		p.SKU = r.SKU
	}
	if r.UnitPrice != nil {
		p.UnitPrice = *r.UnitPrice
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	p.Version = r.Version
}
