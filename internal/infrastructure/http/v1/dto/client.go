package dto

import (
	"negocio/internal/domain/catalogs/client"
)

// CreateClientRequest is the request body for creating a client.
type CreateClientRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName"`
	Email     *string `json:"email"`
	TaxID     *string `json:"taxId"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
}

func (r *CreateClientRequest) ToEntity() *client.Client {
	c := client.NewClient(r.FirstName, r.LastName)
	c.Email = r.Email
	c.TaxID = r.TaxID
	c.Address = r.Address
	c.Phone = r.Phone
	return c
}

// UpdateClientRequest replaces every editable field; Version must match the stored row.
type UpdateClientRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName"`
	Email     *string `json:"email"`
	TaxID     *string `json:"taxId"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	Version   int     `json:"version" binding:"required,min=1"`
}

func (r *UpdateClientRequest) ApplyTo(c *client.Client) {
	c.FirstName = r.FirstName
	c.LastName = r.LastName
	c.Email = r.Email
	c.TaxID = r.TaxID
	c.Address = r.Address
	c.Phone = r.Phone
	c.Version = r.Version
}

type ClientResponse struct {
	BaseResponse
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	FullName  string  `json:"fullName"`
	Email     *string `json:"email,omitempty"`
	TaxID     *string `json:"taxId,omitempty"`
	Address   *string `json:"address,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

func FromClient(c *client.Client) *ClientResponse {
	return &ClientResponse{
		BaseResponse: FromBase(c.BaseEntity),
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		FullName:     c.FullName(),
		Email:        c.Email,
		TaxID:        c.TaxID,
		Address:      c.Address,
		Phone:        c.Phone,
	}
}
