package document_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"negocio/internal/core/id"
	"negocio/internal/domain"
	"negocio/internal/domain/documents/invoice"
)

func TestInvoiceRepo_InsertColumns(t *testing.T) {
	repo := NewInvoiceRepo(nil)
	assert.Equal(t, []string{
		"id", "number", "created_at", "client_id", "payment_method",
		"subtotal", "tax", "total",
	}, repo.insertCols)
}

func TestInvoiceRepo_ListQuery(t *testing.T) {
	repo := NewInvoiceRepo(nil)
	clientID := id.New()
	method := invoice.PaymentUSD
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	sql, args, err := repo.listQuery(invoice.ListFilter{
		ListFilter:    domain.ListFilter{Search: "FAC"},
		ClientID:      &clientID,
		PaymentMethod: &method,
		DateFrom:      &from,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "JOIN clients c ON c.id = i.client_id")
	assert.Contains(t, sql, "WHERE i.client_id = $1 AND i.payment_method = $2 AND i.created_at >= $3")
	assert.Contains(t, sql, "i.number ILIKE $4")
	assert.Equal(t, []any{clientID.String(), "usd", from, "%FAC%", "%FAC%"}, args)
}

func TestParseOrderBy(t *testing.T) {
	got, err := parseOrderBy("", invoiceOrderCols, "i.created_at DESC")
	require.NoError(t, err)
	assert.Equal(t, "i.created_at DESC", got)

	got, err = parseOrderBy("-total", invoiceOrderCols, "")
	require.NoError(t, err)
	assert.Equal(t, "i.total DESC", got)

	_, err = parseOrderBy("client_id", invoiceOrderCols, "")
	assert.Error(t, err)
}
