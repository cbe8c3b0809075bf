package handlers

import (
	"negocio/internal/domain/catalogs/client"
	"negocio/internal/infrastructure/http/v1/dto"
)

type ClientHTTPHandler = CatalogHandler[
	*client.Client,
	dto.CreateClientRequest,
	dto.UpdateClientRequest,
]

func NewClientHandler(base *BaseHandler, service *client.Service) *ClientHTTPHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*client.Client, dto.CreateClientRequest, dto.UpdateClientRequest]{
		Service:    service.CatalogService,
		EntityName: "client",
		MapCreateDTO: func(req dto.CreateClientRequest) *client.Client {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateClientRequest, existing *client.Client) *client.Client {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(c *client.Client) any {
			return dto.FromClient(c)
		},
	})
}
