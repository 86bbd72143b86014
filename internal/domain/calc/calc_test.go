package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/types"
)

type testLine struct {
	qty   types.Quantity
	price types.Money
}

func (l testLine) GetQuantity() types.Quantity { return l.qty }
func (l testLine) GetUnitPrice() types.Money   { return l.price }

func TestSubtotal(t *testing.T) {
	tests := []struct {
		name  string
		qty   types.Quantity
		price string
		want  string
	}{
		{"whole units", 5, "10.00", "50.00"},
		{"fractional price", 2, "3.50", "7.00"},
		{"single unit", 1, "0.01", "0.01"},
		{"large quantity", 1000, "19.99", "19990.00"},
		{"repeating cents stay exact", 3, "0.10", "0.30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subtotal(tt.qty, types.MustMoney(tt.price))
			assert.True(t, got.Equal(types.MustMoney(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestTotal(t *testing.T) {
	lines := []testLine{
		{qty: 5, price: types.MustMoney("10.00")},
		{qty: 2, price: types.MustMoney("3.50")},
	}

	total, err := Total(lines)
	require.NoError(t, err)
	assert.True(t, total.Equal(types.MustMoney("57.00")), "got %s", total)
}

func TestTotal_EmptyLines(t *testing.T) {
	_, err := Total([]testLine{})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestTotal_RejectsInvalidLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []testLine
	}{
		{"zero quantity", []testLine{{qty: 0, price: types.MustMoney("5.00")}}},
		{"negative quantity", []testLine{{qty: -3, price: types.MustMoney("5.00")}}},
		{"zero price", []testLine{{qty: 1, price: types.ZeroMoney()}}},
		{"negative price", []testLine{{qty: 1, price: types.MustMoney("-1.00")}}},
		{"bad line after good line", []testLine{
			{qty: 2, price: types.MustMoney("4.00")},
			{qty: 0, price: types.MustMoney("4.00")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Total(tt.lines)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
		})
	}
}
