// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// MoneyScale is the number of fractional digits persisted for amounts.
const MoneyScale int32 = 2

// NewMoneyFromString creates a Money value from a string.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func MoneyFromInt(v int) Money {
	return decimal.NewFromInt(int64(v))
}

func Zero() Money {
	return decimal.Zero
}

// Round2 rounds half away from zero to the persisted scale.
func Round2(m Money) Money {
	return m.Round(MoneyScale)
}

// MoneyEqual compares amounts ignoring the internal exponent.
func MoneyEqual(a, b Money) bool {
	return a.Equal(b)
}
