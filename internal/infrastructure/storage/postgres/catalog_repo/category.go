package catalog_repo

import (
	"context"

	"negocio/internal/domain/catalogs/category"
	"negocio/internal/infrastructure/storage/postgres"
)

const categoryTable = "categories"

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*BaseCatalogRepo[*category.Category]
}

var _ category.Repository = (*CategoryRepo)(nil)

func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(txm,
			TableConfig{
				Table:        categoryTable,
				Entity:       "category",
				SearchCols:   []string{"name", "description"},
				DefaultOrder: "name",
			},
			postgres.ExtractDBColumns[category.Category](),
			func() *category.Category { return new(category.Category) },
		),
	}
}

func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*category.Category, error) {
	return r.FindOne(ctx, r.baseSelect().Where("LOWER(name) = LOWER(?)", name), name)
}
