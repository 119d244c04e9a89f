// File: internal/model/item_order.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemOrder struct {
	ID        int             `db:"id" json:"id"`
	OrderID   *int            `db:"order_id" json:"order_id"`
	ProductID *int            `db:"product_id" json:"product_id"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	Quantity  int             `db:"quantity" json:"quantity"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// ItemOrderDetail 是查詢用的讀取模型，附帶訂單代碼與商品描述
type ItemOrderDetail struct {
	ItemOrder
	OrderCode          string `db:"order_code" json:"-"`
	ProductDescription string `db:"product_description" json:"-"`
}
