package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"negocio/internal/core/apperror"
	"negocio/internal/core/id"
	"negocio/internal/domain"
	"negocio/internal/domain/documents/invoice"
	"negocio/internal/infrastructure/storage/postgres"
)

const (
	invoicesTable     = "invoices"
	invoiceLinesTable = "invoice_lines"
)

var invoiceOrderCols = map[string]string{
	"number":     "i.number",
	"created_at": "i.created_at",
	"createdAt":  "i.created_at",
	"total":      "i.total",
}

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	*BaseDocumentRepo
}

var _ invoice.Repository = (*InvoiceRepo)(nil)

func NewInvoiceRepo(txm *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(txm, invoicesTable, "invoice",
			postgres.WithoutColumns(postgres.ExtractDBColumns[invoice.Invoice](), "client_name"),
		),
	}
}

// Create inserts the header and all lines in two statements.
func (r *InvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	if err := r.insertHeader(ctx, inv); err != nil {
		return err
	}
	if len(inv.Lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(invoiceLinesTable).
		Columns(
			"id", "invoice_id", "product_id", "line_no",
			"quantity", "unit_price", "line_total", "serials",
		)
	for _, line := range inv.Lines {
		q = q.Values(
			line.ID, inv.ID, line.ProductID, line.LineNo,
			line.Quantity, line.UnitPrice, line.LineTotal, line.Serials,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "invoice line", inv.Number)
	}
	return nil
}

func (r *InvoiceRepo) headerSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(
			"i.id", "i.number", "i.created_at", "i.client_id", "i.payment_method",
			"i.subtotal", "i.tax", "i.total",
			"TRIM(c.first_name || ' ' || c.last_name) AS client_name",
		).
		From(invoicesTable + " i").
		Join("clients c ON c.id = i.client_id")
}

func (r *InvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	sql, args, err := r.headerSelect().Where(squirrel.Eq{"i.id": invoiceID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	inv := new(invoice.Invoice)
	if err := pgxscan.Get(ctx, r.querier(ctx), inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("invoice", invoiceID.String())
		}
		return nil, postgres.MapError(err, "invoice", invoiceID.String())
	}
	return inv, nil
}

func (r *InvoiceRepo) GetLines(ctx context.Context, invoiceID id.ID) ([]invoice.Line, error) {
	sql, args, err := r.Builder().
		Select(
			"l.id", "l.invoice_id", "l.product_id", "l.line_no",
			"l.quantity", "l.unit_price", "l.line_total", "l.serials",
			"p.name AS product_name",
		).
		From(invoiceLinesTable + " l").
		Join("products p ON p.id = l.product_id").
		Where(squirrel.Eq{"l.invoice_id": invoiceID}).
		OrderBy("l.line_no").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []invoice.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	return lines, nil
}

func (r *InvoiceRepo) listQuery(filter invoice.ListFilter) squirrel.SelectBuilder {
	q := r.headerSelect()

	if filter.ClientID != nil {
		q = q.Where(squirrel.Eq{"i.client_id": *filter.ClientID})
	}
	if filter.PaymentMethod != nil {
		q = q.Where(squirrel.Eq{"i.payment_method": string(*filter.PaymentMethod)})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"i.created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.Lt{"i.created_at": *filter.DateTo})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"i.number": pattern},
			squirrel.Expr("(c.first_name || ' ' || c.last_name) ILIKE ?", pattern),
		})
	}
	return q
}

func (r *InvoiceRepo) List(ctx context.Context, filter invoice.ListFilter) (domain.ListResult[*invoice.Invoice], error) {
	result := domain.ListResult[*invoice.Invoice]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.listQuery(filter)

	total, err := r.count(ctx, q)
	if err != nil {
		return result, err
	}
	result.TotalCount = total

	orderBy, err := parseOrderBy(filter.OrderBy, invoiceOrderCols, "i.created_at DESC")
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, r.querier(ctx), &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list invoices: %w", err)
	}
	return result, nil
}
