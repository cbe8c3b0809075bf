// Package invoice implements invoice creation with serialized inventory reservation.
package invoice

import (
	"context"
	"strings"
	"time"

	"negocio/internal/core/apperror"
	"negocio/internal/core/id"
	"negocio/internal/core/types"
	"negocio/internal/domain/catalogs/client"
	"negocio/internal/domain/catalogs/product"
	"negocio/internal/domain/pricing"
)

// PaymentMethod is how the client settles the invoice.
type PaymentMethod string

const (
	PaymentBank  PaymentMethod = "bank"
	PaymentCash  PaymentMethod = "cash"
	PaymentPOS   PaymentMethod = "pos"
	PaymentUSD   PaymentMethod = "usd"
	PaymentOther PaymentMethod = "other"
)

// paymentAliases maps accepted request values, including the Spanish ones, to methods.
var paymentAliases = map[string]PaymentMethod{
	"bank":     PaymentBank,
	"banco":    PaymentBank,
	"cash":     PaymentCash,
	"efectivo": PaymentCash,
	"pos":      PaymentPOS,
	"usd":      PaymentUSD,
	"dolares":  PaymentUSD,
	"dólares":  PaymentUSD,
	"other":    PaymentOther,
	"otro":     PaymentOther,
}

// ParsePaymentMethod accepts canonical and Spanish names, case-insensitively.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	m, ok := paymentAliases[strings.ToLower(strings.TrimSpace(s))]
	return m, ok
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentBank, PaymentCash, PaymentPOS, PaymentUSD, PaymentOther:
		return true
	}
	return false
}

// Settlement picks the product price used for unit prices.
func (m PaymentMethod) Settlement() pricing.Settlement {
	if m == PaymentUSD {
		return pricing.SettlementUSD
	}
	return pricing.SettlementLocal
}

// Invoice is created once with its lines and never modified afterwards.
type Invoice struct {
	ID        id.ID     `db:"id" json:"id"`
	Number    string    `db:"number" json:"number"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	ClientID      id.ID         `db:"client_id" json:"clientId"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`

	Subtotal types.Money `db:"subtotal" json:"subtotal"`
	Tax      types.Money `db:"tax" json:"tax"`
	Total    types.Money `db:"total" json:"total"`

	// ClientName is resolved for display, not stored
	ClientName string `db:"client_name" json:"clientName"`

	Lines []Line `db:"-" json:"lines,omitempty"`
}

// Line is one product on an invoice. Quantity always equals len(Serials).
type Line struct {
	ID        id.ID `db:"id" json:"id"`
	InvoiceID id.ID `db:"invoice_id" json:"invoiceId"`
	ProductID id.ID `db:"product_id" json:"productId"`
	LineNo    int   `db:"line_no" json:"lineNo"`

	Quantity  int         `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	LineTotal types.Money `db:"line_total" json:"lineTotal"`

	// Serials is the archival record of the consumed items
	Serials []string `db:"serials" json:"serials"`

	ProductName string `db:"product_name" json:"productName"`
}

func newInvoice(c *client.Client, method PaymentMethod) *Invoice {
	return &Invoice{
		ID:            id.New(),
		CreatedAt:     time.Now().UTC(),
		ClientID:      c.ID,
		PaymentMethod: method,
		ClientName:    c.FullName(),
	}
}

func (inv *Invoice) addLine(p *product.Product, amounts pricing.LineAmounts, serials []string) {
	inv.Lines = append(inv.Lines, Line{
		ID:          id.New(),
		InvoiceID:   inv.ID,
		ProductID:   p.ID,
		LineNo:      len(inv.Lines) + 1,
		Quantity:    len(serials),
		UnitPrice:   amounts.UnitPrice,
		LineTotal:   amounts.LineTotal,
		Serials:     append([]string(nil), serials...),
		ProductName: p.Name,
	})
}

func (inv *Invoice) setTotals(t pricing.Totals) {
	inv.Subtotal = t.Subtotal
	inv.Tax = t.Tax
	inv.Total = t.Total
}

// Quantity is the total number of units on the invoice.
func (inv *Invoice) Quantity() int {
	n := 0
	for _, l := range inv.Lines {
		n += l.Quantity
	}
	return n
}

// Validate checks the invariants that must hold before the invoice is persisted.
func (inv *Invoice) Validate(ctx context.Context) error {
	if id.IsNil(inv.ClientID) {
		return apperror.NewValidation("client is required").WithDetail("field", "clientId")
	}
	if !inv.PaymentMethod.Valid() {
		return apperror.NewValidation("invalid payment method").
			WithDetail("field", "paymentMethod").
			WithDetail("value", string(inv.PaymentMethod))
	}
	if len(inv.Lines) == 0 {
		return apperror.NewValidation("at least one product is required").WithDetail("field", "lines")
	}
	for i, l := range inv.Lines {
		if l.Quantity <= 0 || l.Quantity != len(l.Serials) {
			return apperror.NewValidation("line quantity must equal its serial count").
				WithDetail("line", i+1)
		}
		if l.UnitPrice.IsNegative() || l.LineTotal.IsNegative() {
			return apperror.NewValidation("line amounts must not be negative").
				WithDetail("line", i+1)
		}
	}
	if inv.Total.LessThan(inv.Subtotal) {
		return apperror.NewValidation("total must include the subtotal")
	}
	return nil
}
