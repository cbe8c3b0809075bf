package category

import (
	"context"

	"negocio/internal/domain"
)

type Repository interface {
	domain.CatalogRepository[*Category]

	FindByName(ctx context.Context, name string) (*Category, error)
}
