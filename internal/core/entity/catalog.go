package entity

import (
	"context"
	"strings"

	"stockbook/internal/core/apperror"
)

// Catalog is the base type for reference data (products, suppliers,
// customers). Catalogs are mutable and soft-deletable, unlike documents.
type Catalog struct {
	BaseEntity

	// Code is a short unique identifier (auto-generated when blank)
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new catalog entry with the given code and name.
func NewCatalog(code, name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Code:       code,
		Name:       name,
	}
}

// Validate implements Validatable.
func (c *Catalog) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
