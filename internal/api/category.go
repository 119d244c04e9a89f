// File: internal/api/category.go
package api

import "time"

// swagger:model api.CreateCategoryRequest
type CreateCategoryRequest struct {
	Description string `json:"description" validate:"required" example:"Beverages"`
}

// UpdateCategoryRequest 部分更新，nil 欄位不修改
// swagger:model api.UpdateCategoryRequest
type UpdateCategoryRequest struct {
	Description *string `json:"description"`
}

// swagger:model api.CategoryResponse
type CategoryResponse struct {
	ID          int       `json:"id" example:"1"`
	Description string    `json:"description" example:"Beverages"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// swagger:model api.CategoryListResponse
type CategoryListResponse struct {
	Data  []CategoryResponse `json:"data"`
	Count int                `json:"count"`
}
