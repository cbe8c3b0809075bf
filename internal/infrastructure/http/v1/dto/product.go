package dto

import (
	"negocio/internal/core/id"
	"negocio/internal/core/types"
	"negocio/internal/domain/catalogs/product"
)

// CreateProductRequest has no stock: stock follows the product's items.
type CreateProductRequest struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description"`
	CategoryID  id.ID       `json:"categoryId"`
	PriceUSD    types.Money `json:"priceUsd"`
	PriceLocal  types.Money `json:"priceLocal"`
}

func (r *CreateProductRequest) ToEntity() *product.Product {
	return product.NewProduct(r.Name, r.Description, r.CategoryID, r.PriceUSD, r.PriceLocal)
}

type UpdateProductRequest struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description"`
	CategoryID  id.ID       `json:"categoryId"`
	PriceUSD    types.Money `json:"priceUsd"`
	PriceLocal  types.Money `json:"priceLocal"`
	Version     int         `json:"version" binding:"required,min=1"`
}

func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.CategoryID = r.CategoryID
	p.PriceUSD = r.PriceUSD
	p.PriceLocal = r.PriceLocal
	p.Version = r.Version
}

type ProductResponse struct {
	BaseResponse
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CategoryID  string      `json:"categoryId"`
	PriceUSD    types.Money `json:"priceUsd"`
	PriceLocal  types.Money `json:"priceLocal"`
	Stock       int         `json:"stock"`
}

func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		BaseResponse: FromBase(p.BaseEntity),
		Name:         p.Name,
		Description:  p.Description,
		CategoryID:   p.CategoryID.String(),
		PriceUSD:     p.PriceUSD,
		PriceLocal:   p.PriceLocal,
		Stock:        p.Stock,
	}
}

// RefreshPricesResponse reports the rate applied by an on-demand refresh.
type RefreshPricesResponse struct {
	Rate    types.Money `json:"rate"`
	Updated int64       `json:"updated"`
}

func FromRefreshResult(r product.RefreshResult) RefreshPricesResponse {
	return RefreshPricesResponse{Rate: r.Rate, Updated: r.Updated}
}
