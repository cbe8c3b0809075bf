package dto

import (
	"negocio/internal/core/id"
	"negocio/internal/domain/catalogs/item"
)

type CreateItemRequest struct {
	Serial    string `json:"serial" binding:"required"`
	ProductID id.ID  `json:"productId"`
}

func (r *CreateItemRequest) ToEntity() *item.Item {
	return item.NewItem(r.ProductID, r.Serial)
}

// UpdateItemRequest can only correct a serial; items never move between products.
type UpdateItemRequest struct {
	Serial  string `json:"serial" binding:"required"`
	Version int    `json:"version" binding:"required,min=1"`
}

func (r *UpdateItemRequest) ApplyTo(it *item.Item) {
	it.Serial = r.Serial
	it.Version = r.Version
}

// ReceiveItemsRequest registers a delivery of serialized units.
type ReceiveItemsRequest struct {
	ProductID id.ID    `json:"productId"`
	Serials   []string `json:"serials" binding:"required,min=1"`
}

type ItemResponse struct {
	BaseResponse
	Serial    string `json:"serial"`
	ProductID string `json:"productId"`
}

func FromItem(it *item.Item) *ItemResponse {
	return &ItemResponse{
		BaseResponse: FromBase(it.BaseEntity),
		Serial:       it.Serial,
		ProductID:    it.ProductID.String(),
	}
}

func FromItems(items []*item.Item) []*ItemResponse {
	out := make([]*ItemResponse, len(items))
	for i, it := range items {
		out[i] = FromItem(it)
	}
	return out
}
