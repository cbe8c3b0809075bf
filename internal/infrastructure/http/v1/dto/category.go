package dto

import (
	"negocio/internal/domain/catalogs/category"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (r *CreateCategoryRequest) ToEntity() *category.Category {
	return category.NewCategory(r.Name, r.Description)
}

type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Version     int    `json:"version" binding:"required,min=1"`
}

func (r *UpdateCategoryRequest) ApplyTo(c *category.Category) {
	c.Name = r.Name
	c.Description = r.Description
	c.Version = r.Version
}

type CategoryResponse struct {
	BaseResponse
	Name        string `json:"name"`
	Description string `json:"description"`
}

func FromCategory(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		BaseResponse: FromBase(c.BaseEntity),
		Name:         c.Name,
		Description:  c.Description,
	}
}
