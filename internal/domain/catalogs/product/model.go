// Package product provides the product catalog with two-currency pricing.
package product

import (
	"context"

	"negocio/internal/core/apperror"
	"negocio/internal/core/entity"
	"negocio/internal/core/id"
	"negocio/internal/core/types"
)

// Product is a sellable article. Stock counts the product's available Items.
type Product struct {
	entity.Catalog

	// PriceUSD is the reference price in foreign currency
	PriceUSD types.Money `db:"price_usd" json:"priceUsd"`

	// PriceLocal is PriceUSD times the last exchange rate, refreshed out of band
	PriceLocal types.Money `db:"price_local" json:"priceLocal"`

	Stock int `db:"stock" json:"stock"`

	CategoryID id.ID `db:"category_id" json:"categoryId"`
}

func NewProduct(name, description string, categoryID id.ID, priceUSD, priceLocal types.Money) *Product {
	return &Product{
		Catalog:    entity.NewCatalog(name, description),
		PriceUSD:   priceUSD,
		PriceLocal: priceLocal,
		CategoryID: categoryID,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(p.CategoryID) {
		return apperror.NewValidation("category is required").
			WithDetail("field", "categoryId")
	}
	if p.PriceUSD.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "priceUsd")
	}
	if p.PriceLocal.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "priceLocal")
	}
	if p.Stock < 0 {
		return apperror.NewValidation("stock must not be negative").
			WithDetail("field", "stock")
	}
	return nil
}

// Reserve takes qty units from the in-memory stock.
func (p *Product) Reserve(qty int) error {
	if qty > p.Stock {
		return apperror.NewInsufficientStock(p.Name, qty, p.Stock)
	}
	p.Stock -= qty
	return nil
}

func (p *Product) GetPriceUSD() types.Money { return p.PriceUSD }

func (p *Product) GetPriceLocal() types.Money { return p.PriceLocal }
