// File: internal/api/product.go
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// swagger:model api.CreateProductRequest
type CreateProductRequest struct {
	Reference   string          `json:"reference" validate:"required,max=8" example:"REF00001"`
	Description string          `json:"description" validate:"required" example:"Mineral water 500ml"`
	UnitPrice   decimal.Decimal `json:"unit_price" example:"2.50"`
	CategoryID  *int            `json:"category_id"`
}

// UpdateProductRequest 部分更新，nil 欄位不修改
// swagger:model api.UpdateProductRequest
type UpdateProductRequest struct {
	Reference   *string          `json:"reference" validate:"omitempty,max=8"`
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	CategoryID  *int             `json:"category_id"`
}

// CategoryRef 是巢狀回應中的分類摘要
// swagger:model api.CategoryRef
type CategoryRef struct {
	ID          int    `json:"id" example:"1"`
	Description string `json:"description" example:"Beverages"`
}

// swagger:model api.ProductResponse
type ProductResponse struct {
	ID          int             `json:"id" example:"1"`
	Reference   string          `json:"reference" example:"REF00001"`
	Description string          `json:"description" example:"Mineral water 500ml"`
	UnitPrice   decimal.Decimal `json:"unit_price" example:"2.50"`
	Category    *CategoryRef    `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// swagger:model api.ProductListResponse
type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Count int               `json:"count"`
}
