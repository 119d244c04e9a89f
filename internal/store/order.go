// File: internal/store/order.go
package store

import (
	"context"
	"fmt"
	"time"

	"cart-api/internal/database"
	"cart-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func CreateOrder(ctx context.Context, db database.DB, o *model.Order) (*model.Order, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO orders (code, emission, delivery, client_id, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		o.Code,
		o.Emission,
		o.Delivery,
		o.ClientID,
		o.UserID,
	)
	if err := row.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateOrder: %w", err)
	}
	return o, nil
}

func GetOrderByID(ctx context.Context, db database.DB, userID, orderID int) (*model.OrderDetail, error) {
	row := db.QueryRow(ctx,
		`SELECT o.id, o.code, o.emission, o.delivery, o.client_id, o.user_id,
		        o.created_at, o.updated_at, COALESCE(c.name, '')
		 FROM orders o
		 LEFT JOIN clients c ON c.id = o.client_id
		 WHERE o.id = $1 AND o.user_id = $2`,
		orderID,
		userID,
	)
	o := &model.OrderDetail{}
	if err := row.Scan(
		&o.ID,
		&o.Code,
		&o.Emission,
		&o.Delivery,
		&o.ClientID,
		&o.UserID,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.ClientName,
	); err != nil {
		return nil, fmt.Errorf("GetOrderByID: %w", err)
	}
	return o, nil
}

func ListOrders(ctx context.Context, db database.DB, userID int, search string, page int) ([]model.OrderDetail, int, error) {
	var count int
	if err := db.QueryRow(ctx,
		`SELECT count(*)
		 FROM orders o
		 LEFT JOIN clients c ON c.id = o.client_id
		 WHERE o.user_id = $1
		   AND ($2 = ''
		     OR o.code ILIKE '%' || $2 || '%'
		     OR c.name ILIKE '%' || $2 || '%')`,
		userID, search,
	).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("ListOrders: %w", err)
	}

	rows, err := db.Query(ctx,
		`SELECT o.id, o.code, o.emission, o.delivery, o.client_id, o.user_id,
		        o.created_at, o.updated_at, COALESCE(c.name, '')
		 FROM orders o
		 LEFT JOIN clients c ON c.id = o.client_id
		 WHERE o.user_id = $1
		   AND ($2 = ''
		     OR o.code ILIKE '%' || $2 || '%'
		     OR c.name ILIKE '%' || $2 || '%')
		 ORDER BY o.code
		 LIMIT $3 OFFSET $4`,
		userID, search, PageLimit, pageOffset(page),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListOrders: %w", err)
	}
	defer rows.Close()

	var orders []model.OrderDetail
	for rows.Next() {
		var o model.OrderDetail
		if err := rows.Scan(
			&o.ID,
			&o.Code,
			&o.Emission,
			&o.Delivery,
			&o.ClientID,
			&o.UserID,
			&o.CreatedAt,
			&o.UpdatedAt,
			&o.ClientName,
		); err != nil {
			return nil, 0, fmt.Errorf("ListOrders: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListOrders: %w", err)
	}
	return orders, count, nil
}

// OrderUpdate 的 nil 欄位表示不修改
type OrderUpdate struct {
	Code     *string
	Emission *time.Time
	Delivery *time.Time
	ClientID *int
}

func UpdateOrder(ctx context.Context, db database.DB, userID, orderID int, up OrderUpdate) (*model.Order, error) {
	row := db.QueryRow(ctx,
		`UPDATE orders
		 SET code       = COALESCE($3::varchar, code),
		     emission   = COALESCE($4::timestamptz, emission),
		     delivery   = COALESCE($5::timestamptz, delivery),
		     client_id  = COALESCE($6::integer, client_id),
		     updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, code, emission, delivery, client_id, user_id, created_at, updated_at`,
		orderID,
		userID,
		up.Code,
		up.Emission,
		up.Delivery,
		up.ClientID,
	)
	o := &model.Order{}
	if err := row.Scan(
		&o.ID,
		&o.Code,
		&o.Emission,
		&o.Delivery,
		&o.ClientID,
		&o.UserID,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("UpdateOrder: %w", err)
	}
	return o, nil
}

func DeleteOrder(ctx context.Context, db database.DB, userID, orderID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM orders WHERE id = $1 AND user_id = $2`,
		orderID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteOrder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteOrder: %w", pgx.ErrNoRows)
	}
	return nil
}

// OrderTotal 計算單筆訂單的總額：sum(unit_price * quantity)
// 無任何品項時回傳 0
func OrderTotal(ctx context.Context, db database.DB, orderID int) (decimal.Decimal, error) {
	row := db.QueryRow(ctx,
		`SELECT COALESCE(sum(unit_price * quantity), 0)
		 FROM item_orders
		 WHERE order_id = $1`,
		orderID,
	)
	var total decimal.Decimal
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("OrderTotal: %w", err)
	}
	return total, nil
}

// OrderTotals 以單一 GROUP BY 查詢計算多筆訂單的總額，避免逐筆查詢
// 結果包含所有傳入的訂單編號，無品項者為 0
func OrderTotals(ctx context.Context, db database.DB, orderIDs []int) (map[int]decimal.Decimal, error) {
	totals := make(map[int]decimal.Decimal, len(orderIDs))
	for _, id := range orderIDs {
		totals[id] = decimal.Zero
	}
	if len(orderIDs) == 0 {
		return totals, nil
	}

	rows, err := db.Query(ctx,
		`SELECT order_id, sum(unit_price * quantity)
		 FROM item_orders
		 WHERE order_id = ANY($1)
		 GROUP BY order_id`,
		orderIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("OrderTotals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var total decimal.Decimal
		if err := rows.Scan(&id, &total); err != nil {
			return nil, fmt.Errorf("OrderTotals: %w", err)
		}
		totals[id] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("OrderTotals: %w", err)
	}
	return totals, nil
}
