// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"negocio/internal/domain/reports"
	"negocio/internal/infrastructure/storage/postgres"
)

// SalesRepo aggregates invoices for report snapshots.
type SalesRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

var _ reports.SalesSource = (*SalesRepo)(nil)

func NewSalesRepo(txm *postgres.TxManager) *SalesRepo {
	return &SalesRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *SalesRepo) totalsQuery(from, to time.Time) squirrel.SelectBuilder {
	return r.builder.
		Select("COUNT(*)", "COALESCE(SUM(total), 0)").
		From("invoices").
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": to})
}

func (r *SalesRepo) topProductsQuery(from, to time.Time, topN int) squirrel.SelectBuilder {
	return r.builder.
		Select("p.name AS name", "SUM(l.quantity) AS quantity").
		From("invoice_lines l").
		Join("invoices i ON i.id = l.invoice_id").
		Join("products p ON p.id = l.product_id").
		Where(squirrel.GtOrEq{"i.created_at": from}).
		Where(squirrel.Lt{"i.created_at": to}).
		GroupBy("p.name").
		OrderBy("quantity DESC", "p.name ASC").
		Limit(uint64(topN))
}

// SalesSnapshot counts invoices, sums revenue and ranks products by units sold in [from, to).
func (r *SalesRepo) SalesSnapshot(ctx context.Context, from, to time.Time, topN int) (*reports.SalesSnapshot, error) {
	querier := r.txm.GetQuerier(ctx)
	snap := &reports.SalesSnapshot{TopProducts: []reports.ProductSales{}}

	sql, args, err := r.totalsQuery(from, to).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build totals query: %w", err)
	}
	if err := querier.QueryRow(ctx, sql, args...).Scan(&snap.InvoiceCount, &snap.Revenue); err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}

	sql, args, err = r.topProductsQuery(from, to, topN).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top products query: %w", err)
	}
	if err := pgxscan.Select(ctx, querier, &snap.TopProducts, sql, args...); err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	return snap, nil
}
