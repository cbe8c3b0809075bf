package client

import (
	"context"

	"negocio/internal/domain"
)

// Repository defines the interface for Client persistence.
type Repository interface {
	domain.CatalogRepository[*Client]

	// FindByName matches first and last name case-insensitively; the oldest match wins.
	FindByName(ctx context.Context, firstName, lastName string) (*Client, error)

	FindByTaxID(ctx context.Context, taxID string) (*Client, error)
}
