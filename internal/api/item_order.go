// File: internal/api/item_order.go
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// swagger:model api.CreateItemOrderRequest
type CreateItemOrderRequest struct {
	ProductID *int             `json:"product_id"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"required" example:"2.50"`
	Quantity  int              `json:"quantity" validate:"required,min=1" example:"3"`
}

// UpdateItemOrderRequest 部分更新，nil 欄位不修改；明細不可跨訂單搬移
// swagger:model api.UpdateItemOrderRequest
type UpdateItemOrderRequest struct {
	ProductID *int             `json:"product_id"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Quantity  *int             `json:"quantity" validate:"omitempty,min=1"`
}

// OrderRef 是巢狀回應中的訂單摘要
// swagger:model api.OrderRef
type OrderRef struct {
	ID   int    `json:"id" example:"1"`
	Code string `json:"code" example:"A0001"`
}

// ProductRef 是巢狀回應中的商品摘要
// swagger:model api.ProductRef
type ProductRef struct {
	ID          int    `json:"id" example:"1"`
	Description string `json:"description" example:"Mineral water 500ml"`
}

// ItemOrderResponse 的 Value 為單價乘以數量的讀取時計算值
// swagger:model api.ItemOrderResponse
type ItemOrderResponse struct {
	ID        int             `json:"id" example:"1"`
	Order     *OrderRef       `json:"order"`
	Product   *ProductRef     `json:"product"`
	UnitPrice decimal.Decimal `json:"unit_price" example:"2.50"`
	Quantity  int             `json:"quantity" example:"3"`
	Value     decimal.Decimal `json:"value" example:"7.50"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// swagger:model api.ItemOrderListResponse
type ItemOrderListResponse struct {
	Data  []ItemOrderResponse `json:"data"`
	Count int                 `json:"count"`
}
