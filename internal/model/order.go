// File: internal/model/order.go
package model

import "time"

type Order struct {
	ID        int       `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Emission  time.Time `db:"emission" json:"emission"`
	Delivery  time.Time `db:"delivery" json:"delivery"`
	ClientID  *int      `db:"client_id" json:"client_id"`
	UserID    *int      `db:"user_id" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// OrderDetail 是查詢用的讀取模型，附帶客戶名稱
// 訂單總額不在此處，由 store.OrderTotal / store.OrderTotals 另行計算
type OrderDetail struct {
	Order
	ClientName string `db:"client_name" json:"-"`
}
