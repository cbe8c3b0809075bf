package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"negocio/internal/core/id"
	"negocio/internal/domain/catalogs/item"
	"negocio/internal/infrastructure/storage/postgres"
)

const itemTable = "items"

// ItemRepo implements item.Repository.
type ItemRepo struct {
	*BaseCatalogRepo[*item.Item]
}

var _ item.Repository = (*ItemRepo)(nil)

func NewItemRepo(txm *postgres.TxManager) *ItemRepo {
	return &ItemRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(txm,
			TableConfig{
				Table:        itemTable,
				Entity:       "item",
				SearchCols:   []string{"serial"},
				DefaultOrder: "serial",
			},
			postgres.ExtractDBColumns[item.Item](),
			func() *item.Item { return new(item.Item) },
		),
	}
}

func (r *ItemRepo) FindBySerial(ctx context.Context, serial string) (*item.Item, error) {
	return r.FindOne(ctx, r.baseSelect().Where(squirrel.Eq{"serial": serial}), serial)
}

// CreateMany streams the items with COPY.
func (r *ItemRepo) CreateMany(ctx context.Context, items []*item.Item) error {
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		data := postgres.StructToMap(it)
		row := make([]any, len(r.selectCols))
		for i, col := range r.selectCols {
			row[i] = data[col]
		}
		rows = append(rows, row)
	}

	if _, err := r.txm.CopyRows(ctx, itemTable, r.selectCols, rows); err != nil {
		return postgres.MapError(err, "item", "serial")
	}
	return nil
}

func (r *ItemRepo) LockBySerials(ctx context.Context, productID id.ID, serials []string) ([]*item.Item, error) {
	sql, args, err := r.lockBySerialsQuery(productID, serials).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lock items: %w", err)
	}

	var items []*item.Item
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, postgres.MapError(err, "item", productID.String())
	}
	return items, nil
}

// lockBySerialsQuery only matches serials attached to productID.
func (r *ItemRepo) lockBySerialsQuery(productID id.ID, serials []string) squirrel.SelectBuilder {
	return r.baseSelect().
		Where(squirrel.Eq{"product_id": productID}).
		Where("serial = ANY(?)", serials).
		OrderBy("serial").
		Suffix("FOR UPDATE")
}

func (r *ItemRepo) DeleteByIDs(ctx context.Context, ids []id.ID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	sql, args, err := r.deleteByIDsQuery(ids).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete items: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "item", "ids")
	}
	return result.RowsAffected(), nil
}

func (r *ItemRepo) deleteByIDsQuery(ids []id.ID) squirrel.DeleteBuilder {
	return r.Builder().
		Delete(itemTable).
		Where("id = ANY(?)", ids)
}
