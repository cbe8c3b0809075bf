package entity

import (
	"context"
	"strings"

	"negocio/internal/core/apperror"
)

// Catalog is the base type for named reference data: categories and products.
type Catalog struct {
	BaseEntity

	// Name is the natural key used by lookups during invoicing.
	Name string `db:"name" json:"name"`

	Description string `db:"description" json:"description"`
}

func NewCatalog(name, description string) Catalog {
	return Catalog{
		BaseEntity:  NewBaseEntity(),
		Name:        strings.TrimSpace(name),
		Description: description,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if len(c.Name) > 200 {
		return apperror.NewValidation("name is too long").
			WithDetail("field", "name").
			WithDetail("max", 200)
	}
	return nil
}

func (c *Catalog) GetName() string { return c.Name }
