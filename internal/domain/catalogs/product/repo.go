package product

import (
	"context"

	"negocio/internal/core/id"
	"negocio/internal/core/types"
	"negocio/internal/domain"
)

// Repository defines the interface for Product persistence.
// Update never writes stock; stock changes go through AdjustStock and SetStock.
type Repository interface {
	domain.CatalogRepository[*Product]

	FindByName(ctx context.Context, name string) (*Product, error)

	// FindByNameForUpdate locks the row until the transaction ends.
	FindByNameForUpdate(ctx context.Context, name string) (*Product, error)

	AdjustStock(ctx context.Context, productID id.ID, delta int) error

	// SetStock writes absolute stock values for several products in one round-trip.
	SetStock(ctx context.Context, stock map[id.ID]int) error

	// RefreshLocalPrices sets price_local = round(price_usd * rate, 2) for every product.
	RefreshLocalPrices(ctx context.Context, rate types.Money) (int64, error)
}

// CategoryLookup is the part of the category catalog products depend on.
type CategoryLookup interface {
	Exists(ctx context.Context, categoryID id.ID) (bool, error)
}
