package handlers

import (
	"github.com/gin-gonic/gin"

	"negocio/internal/domain/catalogs/item"
	"negocio/internal/infrastructure/http/v1/dto"
)

// ItemHandler adds bulk receiving to the generic catalog routes.
type ItemHandler struct {
	*CatalogHandler[*item.Item, dto.CreateItemRequest, dto.UpdateItemRequest]
	service *item.Service
}

func NewItemHandler(base *BaseHandler, service *item.Service) *ItemHandler {
	catalog := NewCatalogHandler(base, CatalogHandlerConfig[*item.Item, dto.CreateItemRequest, dto.UpdateItemRequest]{
		Service:    service.CatalogService,
		EntityName: "item",
		MapCreateDTO: func(req dto.CreateItemRequest) *item.Item {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateItemRequest, existing *item.Item) *item.Item {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(it *item.Item) any {
			return dto.FromItem(it)
		},
	})
	return &ItemHandler{CatalogHandler: catalog, service: service}
}

// Receive handles POST /items/receive.
func (h *ItemHandler) Receive(c *gin.Context) {
	var req dto.ReceiveItemsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	items, err := h.service.Receive(c.Request.Context(), req.ProductID, req.Serials)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, gin.H{"items": dto.FromItems(items)})
}
