package invoice

import (
	"context"
	"time"

	"negocio/internal/core/id"
	"negocio/internal/domain"
	"negocio/internal/domain/catalogs/client"
	"negocio/internal/domain/catalogs/item"
	"negocio/internal/domain/catalogs/product"
)

// Repository persists invoices. There is no update or delete.
type Repository interface {
	// Create inserts the header and all lines.
	Create(ctx context.Context, inv *Invoice) error

	// GetByID returns the header with ClientName resolved.
	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)

	// GetLines returns lines in line order with ProductName resolved.
	GetLines(ctx context.Context, invoiceID id.ID) ([]Line, error)

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error)
}

// ListFilter for filtering invoices.
type ListFilter struct {
	domain.ListFilter

	ClientID      *id.ID
	PaymentMethod *PaymentMethod
	DateFrom      *time.Time
	DateTo        *time.Time // exclusive
}

// ClientFinder resolves the invoiced client from its display name.
type ClientFinder interface {
	FindByFullName(ctx context.Context, fullName string) (*client.Client, error)
}

// ProductStore is the part of the product catalog the workflow locks and updates.
type ProductStore interface {
	FindByNameForUpdate(ctx context.Context, name string) (*product.Product, error)
	SetStock(ctx context.Context, stock map[id.ID]int) error
}

// ItemStore is the part of the item catalog the workflow consumes.
type ItemStore interface {
	LockBySerials(ctx context.Context, productID id.ID, serials []string) ([]*item.Item, error)
	DeleteByIDs(ctx context.Context, ids []id.ID) (int64, error)
}

// NumberAllocator hands out invoice numbers inside the current transaction.
type NumberAllocator interface {
	Next(ctx context.Context) (string, error)
}
