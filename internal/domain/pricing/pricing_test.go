package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"negocio/internal/core/types"
)

type fakeProduct struct {
	usd, local types.Money
}

func (f fakeProduct) GetPriceUSD() types.Money   { return f.usd }
func (f fakeProduct) GetPriceLocal() types.Money { return f.local }

func assertMoney(t *testing.T, want string, got types.Money) {
	t.Helper()
	assert.True(t, types.MustMoney(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestUnitPrice_SelectsCurrency(t *testing.T) {
	p := fakeProduct{usd: types.MustMoney("1200.00"), local: types.MustMoney("43500.00")}

	assertMoney(t, "1034.48", types.Round2(UnitPrice(p, SettlementUSD)))
	assertMoney(t, "37500.00", types.Round2(UnitPrice(p, SettlementLocal)))
}

func TestQuote_LaptopScenario(t *testing.T) {
	p := fakeProduct{usd: types.MustMoney("1200.00")}

	var q Quote
	line := q.AddLine(UnitPrice(p, SettlementUSD), 1)
	totals := q.Totals()

	assertMoney(t, "1034.48", line.UnitPrice)
	assertMoney(t, "1034.48", line.LineTotal)
	assertMoney(t, "1034.48", totals.Subtotal)
	assertMoney(t, "165.52", totals.Tax)
	assertMoney(t, "1200.00", totals.Total)
	assert.Equal(t, 1, q.Quantity())
}

func TestQuote_AccumulatesAtFullPrecision(t *testing.T) {
	p := fakeProduct{usd: types.MustMoney("1200.00")}
	unit := UnitPrice(p, SettlementUSD) // 1034.4827...

	var q Quote
	line := q.AddLine(unit, 3)
	totals := q.Totals()

	// 3 × 1034.4827... = 3103.448..., not 3 × 1034.48
	assertMoney(t, "3103.45", line.LineTotal)
	assertMoney(t, "3103.45", totals.Subtotal)
	assertMoney(t, "3600.00", totals.Total)
}

func TestQuote_TotalIsRoundedSubtotalTimesOnePointSixteen(t *testing.T) {
	prices := []string{"10.01", "99.99", "0.05", "1234.57", "7.77"}

	var q Quote
	var unrounded types.Money
	for i, s := range prices {
		unit := UnitPrice(fakeProduct{local: types.MustMoney(s)}, SettlementLocal)
		q.AddLine(unit, i+1)
		unrounded = unrounded.Add(unit.Mul(types.MoneyFromInt(i + 1)))
	}

	totals := q.Totals()
	assertMoney(t, types.Round2(unrounded).String(), totals.Subtotal)
	assertMoney(t, types.Round2(unrounded.Mul(types.MustMoney("1.16"))).String(), totals.Total)
}

func TestQuote_Empty(t *testing.T) {
	var q Quote
	totals := q.Totals()
	assert.True(t, totals.Total.IsZero())
	assert.Equal(t, 0, q.Quantity())
}
