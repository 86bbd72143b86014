// Package supplier provides the Supplier catalog: counterparties
// purchases are received from.
package supplier

import (
	"context"
	"strings"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
)

// Supplier is a purchasing counterparty.
type Supplier struct {
	entity.Catalog

	// ContactEmail is an optional contact address
	ContactEmail *string `db:"contact_email" json:"contactEmail,omitempty"`

	// Phone is an optional contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Address is an optional postal address
	Address *string `db:"address" json:"address,omitempty"`
}

// NewSupplier creates a new Supplier.
func NewSupplier(code, name string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}
	if s.ContactEmail != nil && *s.ContactEmail != "" && !strings.Contains(*s.ContactEmail, "@") {
		return apperror.NewValidation("invalid contact email").
			WithDetail("field", "contactEmail")
	}
	return nil
}
