package handlers

import (
	"stockbook/internal/domain/catalogs/customer"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// CustomerHandler is the catalog handler for customers.
type CustomerHandler = CatalogHandler[
	*customer.Customer,
	dto.CreateCustomerRequest,
	dto.UpdateCustomerRequest,
]

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(base *BaseHandler, service *customer.Service) *CustomerHandler {
	cfg := CatalogHandlerConfig[*customer.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]{
		Service:    service.CatalogService,
		EntityName: "customer",
		MapCreateDTO: func(req dto.CreateCustomerRequest) *customer.Customer {
			return req.ToEntity()
		},
		ApplyUpdate: func(req dto.UpdateCustomerRequest, existing *customer.Customer) {
			req.ApplyTo(existing)
		},
	}
	return NewCatalogHandler(base, cfg)
}
