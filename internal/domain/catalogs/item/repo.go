package item

import (
	"context"

	"negocio/internal/core/id"
	"negocio/internal/domain"
)

type Repository interface {
	domain.CatalogRepository[*Item]

	FindBySerial(ctx context.Context, serial string) (*Item, error)

	// CreateMany bulk-inserts items; it must run inside a transaction.
	CreateMany(ctx context.Context, items []*Item) error

	// LockBySerials returns the items of productID among serials, locked FOR UPDATE.
	LockBySerials(ctx context.Context, productID id.ID, serials []string) ([]*Item, error)

	// DeleteByIDs removes consumed items and reports how many rows went away.
	DeleteByIDs(ctx context.Context, ids []id.ID) (int64, error)
}

// StockAdjuster keeps the owning product's stock in step with its items.
type StockAdjuster interface {
	AdjustStock(ctx context.Context, productID id.ID, delta int) error
}

// ProductLookup checks that the owning product exists.
type ProductLookup interface {
	Exists(ctx context.Context, productID id.ID) (bool, error)
}
