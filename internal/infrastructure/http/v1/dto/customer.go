package dto

import (
	"stockbook/internal/domain/catalogs/customer"
)

// CreateCustomerRequest creates a customer.
type CreateCustomerRequest struct {
	Code         string  `json:"code"`
	Name         string  `json:"name" binding:"required"`
	ContactEmail *string `json:"contactEmail"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
}

// ToEntity converts the request to a domain entity.
func (r CreateCustomerRequest) ToEntity() *customer.Customer {
	c := customer.NewCustomer(r.Code, r.Name)
	c.ContactEmail = r.ContactEmail
	c.Phone = r.Phone
	c.Address = r.Address
	return c
}

// UpdateCustomerRequest updates a customer. Nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Name         *string `json:"name"`
	ContactEmail *string `json:"contactEmail"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	Version      int     `json:"version" binding:"required,min=1"`
}

// ApplyTo maps non-nil fields onto the existing entity.
func (r UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.ContactEmail != nil {
		c.ContactEmail = r.ContactEmail
	}
	if r.Phone != nil {
		c.Phone = r.Phone
	}
	if r.Address != nil {
		c.Address = r.Address
	}
	c.Version = r.Version
}
