package handlers

import (
	"stockbook/internal/domain/catalogs/supplier"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// SupplierHandler is the catalog handler for suppliers.
type SupplierHandler = CatalogHandler[
	*supplier.Supplier,
	dto.CreateSupplierRequest,
	dto.UpdateSupplierRequest,
]

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(base *BaseHandler, service *supplier.Service) *SupplierHandler {
	cfg := CatalogHandlerConfig[*supplier.Supplier, dto.CreateSupplierRequest, dto.UpdateSupplierRequest]{
		Service:    service.CatalogService,
		EntityName: "supplier",
		MapCreateDTO: func(req dto.CreateSupplierRequest) *supplier.Supplier {
			return req.ToEntity()
		},
		ApplyUpdate: func(req dto.UpdateSupplierRequest, existing *supplier.Supplier) {
			req.ApplyTo(existing)
		},
	}
	return NewCatalogHandler(base, cfg)
}
