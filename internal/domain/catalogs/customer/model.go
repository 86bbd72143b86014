// Package customer provides the Customer catalog: counterparties
// sales are issued to.
package customer

import (
	"context"
	"strings"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
)

// Customer is a sales counterparty.
type Customer struct {
	entity.Catalog

	// ContactEmail is an optional contact address
	ContactEmail *string `db:"contact_email" json:"contactEmail,omitempty"`

	// Phone is an optional contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Address is an optional postal address
	Address *string `db:"address" json:"address,omitempty"`
}

// NewCustomer creates a new Customer.
func NewCustomer(code, name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}
	if c.ContactEmail != nil && *c.ContactEmail != "" && !strings.Contains(*c.ContactEmail, "@") {
		return apperror.NewValidation("invalid contact email").
			WithDetail("field", "contactEmail")
	}
	return nil
}
