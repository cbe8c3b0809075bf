package catalog_repo

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"

	"negocio/internal/core/apperror"
	"negocio/internal/core/id"
	"negocio/internal/core/types"
	"negocio/internal/domain/catalogs/product"
	"negocio/internal/infrastructure/storage/postgres"
)

const productTable = "products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

var _ product.Repository = (*ProductRepo)(nil)

func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(txm,
			TableConfig{
				Table:        productTable,
				Entity:       "product",
				SearchCols:   []string{"name", "description"},
				DefaultOrder: "name",
				ReadOnlyCols: []string{"stock"},
			},
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return new(product.Product) },
		),
	}
}

func (r *ProductRepo) FindByName(ctx context.Context, name string) (*product.Product, error) {
	return r.FindOne(ctx, r.byName(name), name)
}

func (r *ProductRepo) FindByNameForUpdate(ctx context.Context, name string) (*product.Product, error) {
	return r.FindOne(ctx, r.byNameForUpdate(name), name)
}

func (r *ProductRepo) byNameForUpdate(name string) squirrel.SelectBuilder {
	return r.byName(name).Suffix("FOR UPDATE")
}

func (r *ProductRepo) byName(name string) squirrel.SelectBuilder {
	return r.baseSelect().Where("LOWER(name) = LOWER(?)", name)
}

// AdjustStock adds delta to the stock counter. The stock >= 0 check constraint rejects underflow.
func (r *ProductRepo) AdjustStock(ctx context.Context, productID id.ID, delta int) error {
	sql, args, err := r.Builder().
		Update(productTable).
		Set("stock", squirrel.Expr("stock + ?", delta)).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": productID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build adjust stock: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "product", productID.String())
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}
	return nil
}

// SetStock writes the given stock values in one batch.
func (r *ProductRepo) SetStock(ctx context.Context, stock map[id.ID]int) error {
	queries, err := r.setStockQueries(stock)
	if err != nil {
		return err
	}
	if err := r.txm.ExecuteBatch(ctx, queries); err != nil {
		return postgres.MapError(err, "product", "stock")
	}
	return nil
}

// setStockQueries orders the updates by id so concurrent writers lock in the same order.
func (r *ProductRepo) setStockQueries(stock map[id.ID]int) ([]postgres.BatchQuery, error) {
	ids := make([]id.ID, 0, len(stock))
	for k := range stock {
		ids = append(ids, k)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	queries := make([]postgres.BatchQuery, 0, len(ids))
	for _, productID := range ids {
		sql, args, err := r.Builder().
			Update(productTable).
			Set("stock", stock[productID]).
			Set("version", squirrel.Expr("version + 1")).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": productID}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build set stock: %w", err)
		}
		queries = append(queries, postgres.BatchQuery{SQL: sql, Args: args})
	}
	return queries, nil
}

// RefreshLocalPrices recomputes every local price from the USD price.
func (r *ProductRepo) RefreshLocalPrices(ctx context.Context, rate types.Money) (int64, error) {
	sql, args, err := r.Builder().
		Update(productTable).
		Set("price_local", squirrel.Expr("ROUND(price_usd * ?, 2)", rate)).
		Set("updated_at", squirrel.Expr("NOW()")).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build refresh prices: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "product", "price_local")
	}
	return result.RowsAffected(), nil
}
