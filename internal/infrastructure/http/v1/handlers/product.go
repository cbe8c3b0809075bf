package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"negocio/internal/domain/catalogs/product"
	"negocio/internal/infrastructure/http/v1/dto"
)

// PriceRefresher recomputes local prices from the current exchange rate.
type PriceRefresher interface {
	Refresh(ctx context.Context) (product.RefreshResult, error)
}

// ProductHandler adds the on-demand price refresh to the generic catalog routes.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	refresher PriceRefresher
}

func NewProductHandler(base *BaseHandler, service *product.Service, refresher PriceRefresher) *ProductHandler {
	catalog := NewCatalogHandler(base, CatalogHandlerConfig[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]{
		Service:    service.CatalogService,
		EntityName: "product",
		MapCreateDTO: func(req dto.CreateProductRequest) *product.Product {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(p *product.Product) any {
			return dto.FromProduct(p)
		},
	})
	return &ProductHandler{CatalogHandler: catalog, refresher: refresher}
}

// RefreshPrices handles POST /products/refresh-prices. No rate available is a 503.
func (h *ProductHandler) RefreshPrices(c *gin.Context) {
	res, err := h.refresher.Refresh(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromRefreshResult(res))
}
