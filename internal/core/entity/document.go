package entity

import (
	"context"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
)

// Document is the base type for business transactions (purchases, sales).
// Documents are created in a single unit of work together with their lines
// and are immutable once committed: no update or delete path exists.
type Document struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Number is the document number (auto-generated, unique within type+year)
	Number string `db:"number" json:"number"`

	// Date is the business timestamp, server-assigned at creation.
	Date time.Time `db:"date" json:"date"`

	// CreatedAt is the storage timestamp
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewDocument creates a new Document with generated ID and server timestamps.
func NewDocument() Document {
	now := time.Now().UTC()
	return Document{
		ID:        id.New(),
		Date:      now,
		CreatedAt: now,
	}
}

// Validate implements Validatable.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	// Backdating is allowed for late entry; future periods are not.
	// The 24h allowance absorbs client clock skew across timezones.
	if d.Date.After(time.Now().UTC().Add(24 * time.Hour)) {
		return apperror.NewValidation("date must not be in the future").
			WithDetail("field", "date")
	}
	return nil
}

// GetID returns the document ID.
func (d *Document) GetID() id.ID {
	return d.ID
}
