// Package pricing computes invoice amounts.
//
// Unit prices carry a fixed 1.16 deduction on both currency paths and the
// invoice then adds a 16% tax on the subtotal. Amounts keep full precision
// while they accumulate and are rounded to cents only when persisted.
package pricing

import (
	"github.com/shopspring/decimal"

	"negocio/internal/core/types"
)

// Settlement selects which product price a line is priced from.
type Settlement int

const (
	SettlementLocal Settlement = iota
	SettlementUSD
)

var (
	// PriceDivisor is applied to the catalog price of every line.
	PriceDivisor = decimal.RequireFromString("1.16")

	// TaxRate is the flat rate applied to the invoice subtotal.
	TaxRate = decimal.RequireFromString("0.16")
)

// Priced is the part of a product the calculator reads.
type Priced interface {
	GetPriceUSD() types.Money
	GetPriceLocal() types.Money
}

// UnitPrice returns the unrounded unit price of p for the settlement currency.
func UnitPrice(p Priced, s Settlement) types.Money {
	base := p.GetPriceLocal()
	if s == SettlementUSD {
		base = p.GetPriceUSD()
	}
	return base.Div(PriceDivisor)
}

// Tax returns the unrounded tax of a subtotal.
func Tax(subtotal types.Money) types.Money {
	return subtotal.Mul(TaxRate)
}

// Totals are the persisted invoice amounts, rounded to cents.
type Totals struct {
	Subtotal types.Money
	Tax      types.Money
	Total    types.Money
}

// LineAmounts are the persisted amounts of one line, rounded to cents.
type LineAmounts struct {
	UnitPrice types.Money
	LineTotal types.Money
}

// Quote accumulates lines at full precision. The zero value is ready to use.
type Quote struct {
	subtotal types.Money
	quantity int
}

// AddLine prices qty units at unit and returns the rounded amounts to store on the line.
func (q *Quote) AddLine(unit types.Money, qty int) LineAmounts {
	lineTotal := unit.Mul(types.MoneyFromInt(qty))
	q.subtotal = q.subtotal.Add(lineTotal)
	q.quantity += qty
	return LineAmounts{
		UnitPrice: types.Round2(unit),
		LineTotal: types.Round2(lineTotal),
	}
}

// Quantity is the number of units added so far.
func (q *Quote) Quantity() int {
	return q.quantity
}

// Totals rounds subtotal, tax and total independently from the unrounded subtotal.
func (q *Quote) Totals() Totals {
	tax := Tax(q.subtotal)
	return Totals{
		Subtotal: types.Round2(q.subtotal),
		Tax:      types.Round2(tax),
		Total:    types.Round2(q.subtotal.Add(tax)),
	}
}
