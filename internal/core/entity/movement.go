package entity

import (
	"time"

	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
)

// Direction defines the stock-effect polarity of a movement.
type Direction string

const (
	// DirectionIncrease adds to quantity-on-hand (purchase)
	DirectionIncrease Direction = "increase"
	// DirectionDecrease subtracts from quantity-on-hand (sale)
	DirectionDecrease Direction = "decrease"
)

// StockMovement is an immutable journal row recorded for every ledger
// adjustment. Movements are never updated; the recorder is the document
// whose commit produced the adjustment.
type StockMovement struct {
	// LineID is the unique identifier for this movement row (UUIDv7)
	LineID id.ID `db:"line_id" json:"lineId"`

	// RecorderID is the document that created this movement
	RecorderID id.ID `db:"recorder_id" json:"recorderId"`

	// RecorderType is the document type (e.g., "Purchase", "Sale")
	RecorderType string `db:"recorder_type" json:"recorderType"`

	// Direction: increase or decrease
	Direction Direction `db:"direction" json:"direction"`

	// ProductID is the product whose quantity-on-hand was adjusted
	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity is the absolute adjustment size (always positive)
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// Period is the business date of the recorder document
	Period time.Time `db:"period" json:"period"`

	// CreatedAt is when the movement was recorded
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewStockMovement creates a new stock movement row.
func NewStockMovement(
	recorderID id.ID,
	recorderType string,
	direction Direction,
	productID id.ID,
	quantity types.Quantity,
	period time.Time,
) *StockMovement {
	return &StockMovement{
		LineID:       id.New(),
		RecorderID:   recorderID,
		RecorderType: recorderType,
		Direction:    direction,
		ProductID:    productID,
		Quantity:     quantity,
		Period:       period,
		CreatedAt:    time.Now().UTC(),
	}
}

// SignedQuantity returns quantity with sign based on direction.
func (m *StockMovement) SignedQuantity() types.Quantity {
	if m.Direction == DirectionDecrease {
		return -m.Quantity
	}
	return m.Quantity
}
