// Package category provides product categories.
package category

import (
	"negocio/internal/core/entity"
)

// Category groups products. Deleting a category deletes its products.
type Category struct {
	entity.Catalog
}

func NewCategory(name, description string) *Category {
	return &Category{Catalog: entity.NewCatalog(name, description)}
}
