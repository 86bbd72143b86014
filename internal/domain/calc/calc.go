// Package calc implements line-item amount arithmetic for documents.
//
// All amounts are fixed-point with two decimal places. Subtotals and
// totals are computed exactly; no floating point is involved.
package calc

import (
	"github.com/shopspring/decimal"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/types"
)

// Line is the minimal view of a document line the calculator needs.
type Line interface {
	GetQuantity() types.Quantity
	GetUnitPrice() types.Money
}

// Subtotal computes quantity * unitPrice rounded to two decimal places.
func Subtotal(quantity types.Quantity, unitPrice types.Money) types.Money {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(types.MoneyScale)
}

// Total sums line subtotals. Returns a validation error when the line
// set is empty or any line has a non-positive quantity or price.
func Total[L Line](lines []L) (types.Money, error) {
	if len(lines) == 0 {
		return types.ZeroMoney(), apperror.NewValidation("document must have at least one line")
	}
	total := types.ZeroMoney()
	for i, line := range lines {
		if err := ValidateLine(i, line); err != nil {
			return types.ZeroMoney(), err
		}
		total = total.Add(Subtotal(line.GetQuantity(), line.GetUnitPrice()))
	}
	return total, nil
}

// ValidateLine checks a single line's quantity and price. The index is
// reported in the error detail so callers can point at the bad line.
func ValidateLine(index int, line Line) error {
	if line.GetQuantity() <= 0 {
		return apperror.NewValidation("line quantity must be positive").
			WithDetail("line", index).
			WithDetail("quantity", line.GetQuantity())
	}
	if !line.GetUnitPrice().IsPositive() {
		return apperror.NewValidation("line unit price must be positive").
			WithDetail("line", index).
			WithDetail("unitPrice", line.GetUnitPrice().String())
	}
	return nil
}
