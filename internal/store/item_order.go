// File: internal/store/item_order.go
package store

import (
	"context"
	"fmt"

	"cart-api/internal/database"
	"cart-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func CreateItemOrder(ctx context.Context, db database.DB, it *model.ItemOrder) (*model.ItemOrder, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO item_orders (order_id, product_id, unit_price, quantity)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		it.OrderID,
		it.ProductID,
		it.UnitPrice,
		it.Quantity,
	)
	if err := row.Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateItemOrder: %w", err)
	}
	return it, nil
}

func GetItemOrderByID(ctx context.Context, db database.DB, orderID, itemID int) (*model.ItemOrderDetail, error) {
	row := db.QueryRow(ctx,
		`SELECT i.id, i.order_id, i.product_id, i.unit_price, i.quantity,
		        i.created_at, i.updated_at, o.code, COALESCE(p.description, '')
		 FROM item_orders i
		 JOIN orders o ON o.id = i.order_id
		 LEFT JOIN products p ON p.id = i.product_id
		 WHERE i.id = $1 AND i.order_id = $2`,
		itemID,
		orderID,
	)
	it := &model.ItemOrderDetail{}
	if err := row.Scan(
		&it.ID,
		&it.OrderID,
		&it.ProductID,
		&it.UnitPrice,
		&it.Quantity,
		&it.CreatedAt,
		&it.UpdatedAt,
		&it.OrderCode,
		&it.ProductDescription,
	); err != nil {
		return nil, fmt.Errorf("GetItemOrderByID: %w", err)
	}
	return it, nil
}

func ListItemOrders(ctx context.Context, db database.DB, orderID int, page int) ([]model.ItemOrderDetail, int, error) {
	var count int
	if err := db.QueryRow(ctx,
		`SELECT count(*) FROM item_orders WHERE order_id = $1`,
		orderID,
	).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("ListItemOrders: %w", err)
	}

	rows, err := db.Query(ctx,
		`SELECT i.id, i.order_id, i.product_id, i.unit_price, i.quantity,
		        i.created_at, i.updated_at, o.code, COALESCE(p.description, '')
		 FROM item_orders i
		 JOIN orders o ON o.id = i.order_id
		 LEFT JOIN products p ON p.id = i.product_id
		 WHERE i.order_id = $1
		 ORDER BY i.id
		 LIMIT $2 OFFSET $3`,
		orderID, PageLimit, pageOffset(page),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListItemOrders: %w", err)
	}
	defer rows.Close()

	var items []model.ItemOrderDetail
	for rows.Next() {
		var it model.ItemOrderDetail
		if err := rows.Scan(
			&it.ID,
			&it.OrderID,
			&it.ProductID,
			&it.UnitPrice,
			&it.Quantity,
			&it.CreatedAt,
			&it.UpdatedAt,
			&it.OrderCode,
			&it.ProductDescription,
		); err != nil {
			return nil, 0, fmt.Errorf("ListItemOrders: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListItemOrders: %w", err)
	}
	return items, count, nil
}

// ItemOrderUpdate 的 nil 欄位表示不修改；品項不可移轉至其他訂單
type ItemOrderUpdate struct {
	ProductID *int
	UnitPrice *decimal.Decimal
	Quantity  *int
}

func UpdateItemOrder(ctx context.Context, db database.DB, orderID, itemID int, up ItemOrderUpdate) (*model.ItemOrder, error) {
	row := db.QueryRow(ctx,
		`UPDATE item_orders
		 SET product_id = COALESCE($3::integer, product_id),
		     unit_price = COALESCE($4::numeric, unit_price),
		     quantity   = COALESCE($5::integer, quantity),
		     updated_at = now()
		 WHERE id = $1 AND order_id = $2
		 RETURNING id, order_id, product_id, unit_price, quantity, created_at, updated_at`,
		itemID,
		orderID,
		up.ProductID,
		up.UnitPrice,
		up.Quantity,
	)
	it := &model.ItemOrder{}
	if err := row.Scan(
		&it.ID,
		&it.OrderID,
		&it.ProductID,
		&it.UnitPrice,
		&it.Quantity,
		&it.CreatedAt,
		&it.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("UpdateItemOrder: %w", err)
	}
	return it, nil
}

func DeleteItemOrder(ctx context.Context, db database.DB, orderID, itemID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM item_orders WHERE id = $1 AND order_id = $2`,
		itemID,
		orderID,
	)
	if err != nil {
		return fmt.Errorf("DeleteItemOrder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteItemOrder: %w", pgx.ErrNoRows)
	}
	return nil
}
