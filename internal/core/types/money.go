// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with fixed-point precision.
// Uses decimal.Decimal to avoid floating-point errors; all currency
// amounts are stored and compared at 2 decimal places.
type Money = decimal.Decimal

// MoneyScale is the number of decimal places for currency storage.
const MoneyScale = 2

// NewMoneyFromString creates a Money value from a string.
// This is the preferred constructor for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Round(MoneyScale), nil
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ZeroMoney returns zero Money value.
func ZeroMoney() Money {
	return decimal.Zero
}

// Quantity is a whole-unit stock quantity. Line quantities are always
// positive; quantity-on-hand is never negative.
type Quantity = int64
