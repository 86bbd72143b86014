package dto

import (
	"stockbook/internal/domain/catalogs/supplier"
)

// CreateSupplierRequest creates a supplier.
type CreateSupplierRequest struct {
	Code         string  `json:"code"`
	Name         string  `json:"name" binding:"required"`
	ContactEmail *string `json:"contactEmail"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
}

// ToEntity converts the request to a domain entity.
func (r CreateSupplierRequest) ToEntity() *supplier.Supplier {
	s := supplier.NewSupplier(r.Code, r.Name)
	s.ContactEmail = r.ContactEmail
	s.Phone = r.Phone
	s.Address = r.Address
	return s
}

// UpdateSupplierRequest updates a supplier. Nil fields are left unchanged.
type UpdateSupplierRequest struct {
	Name         *string `json:"name"`
	ContactEmail *string `json:"contactEmail"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	Version      int     `json:"version" binding:"required,min=1"`
}

// ApplyTo maps non-nil fields onto the existing entity.
func (r UpdateSupplierRequest) ApplyTo(s *supplier.Supplier) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.ContactEmail != nil {
		s.ContactEmail = r.ContactEmail
	}
	if r.Phone != nil {
		s.Phone = r.Phone
	}
	if r.Address != nil {
		s.Address = r.Address
	}
	s.Version = r.Version
}
