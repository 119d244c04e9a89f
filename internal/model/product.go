// File: internal/model/product.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int             `db:"id" json:"id"`
	Reference   string          `db:"reference" json:"reference"`
	Description string          `db:"description" json:"description"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	CategoryID  *int            `db:"category_id" json:"category_id"`
	UserID      *int            `db:"user_id" json:"-"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// ProductDetail 是查詢用的讀取模型，附帶所屬分類的描述
type ProductDetail struct {
	Product
	CategoryDescription string `db:"category_description" json:"-"`
}
