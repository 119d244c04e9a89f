// File: internal/api/order.go
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// swagger:model api.CreateOrderRequest
type CreateOrderRequest struct {
	Code     string    `json:"code" validate:"required,max=5" example:"A0001"`
	Emission time.Time `json:"emission" validate:"required"`
	Delivery time.Time `json:"delivery" validate:"required"`
	ClientID *int      `json:"client_id"`
}

// UpdateOrderRequest 部分更新，nil 欄位不修改
// swagger:model api.UpdateOrderRequest
type UpdateOrderRequest struct {
	Code     *string    `json:"code" validate:"omitempty,max=5"`
	Emission *time.Time `json:"emission"`
	Delivery *time.Time `json:"delivery"`
	ClientID *int       `json:"client_id"`
}

// ClientRef 是巢狀回應中的客戶摘要
// swagger:model api.ClientRef
type ClientRef struct {
	ID   int    `json:"id" example:"1"`
	Name string `json:"name" example:"Bob"`
}

// OrderResponse 的 PriceTotal 為讀取時計算的明細加總，從不落地
// swagger:model api.OrderResponse
type OrderResponse struct {
	ID         int             `json:"id" example:"1"`
	Code       string          `json:"code" example:"A0001"`
	Emission   time.Time       `json:"emission"`
	Delivery   time.Time       `json:"delivery"`
	Client     *ClientRef      `json:"client"`
	PriceTotal decimal.Decimal `json:"price_total" example:"9.00"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// swagger:model api.OrderListResponse
type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Count int             `json:"count"`
}
