package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/id"
)

func TestNewStockMovement(t *testing.T) {
	recorderID := id.New()
	productID := id.New()
	period := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	m := NewStockMovement(recorderID, "Purchase", DirectionIncrease, productID, 25, period)
	require.NotNil(t, m)

	assert.False(t, id.IsNil(m.LineID))
	assert.Equal(t, recorderID, m.RecorderID)
	assert.Equal(t, "Purchase", m.RecorderType)
	assert.Equal(t, DirectionIncrease, m.Direction)
	assert.Equal(t, productID, m.ProductID)
	assert.EqualValues(t, 25, m.Quantity)
	assert.Equal(t, period, m.Period)
	assert.False(t, m.CreatedAt.IsZero())
}

func TestStockMovement_SignedQuantity(t *testing.T) {
	in := NewStockMovement(id.New(), "Purchase", DirectionIncrease, id.New(), 10, time.Now())
	out := NewStockMovement(id.New(), "Sale", DirectionDecrease, id.New(), 4, time.Now())

	assert.EqualValues(t, 10, in.SignedQuantity())
	assert.EqualValues(t, -4, out.SignedQuantity())
}
