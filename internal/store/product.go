// File: internal/store/product.go
package store

import (
	"context"
	"fmt"

	"cart-api/internal/database"
	"cart-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func CreateProduct(ctx context.Context, db database.DB, p *model.Product) (*model.Product, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO products (reference, description, unit_price, category_id, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		p.Reference,
		p.Description,
		p.UnitPrice,
		p.CategoryID,
		p.UserID,
	)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateProduct: %w", err)
	}
	return p, nil
}

func GetProductByID(ctx context.Context, db database.DB, userID, productID int) (*model.ProductDetail, error) {
	row := db.QueryRow(ctx,
		`SELECT p.id, p.reference, p.description, p.unit_price, p.category_id, p.user_id,
		        p.created_at, p.updated_at, COALESCE(c.description, '')
		 FROM products p
		 LEFT JOIN categories c ON c.id = p.category_id
		 WHERE p.id = $1 AND p.user_id = $2`,
		productID,
		userID,
	)
	p := &model.ProductDetail{}
	if err := row.Scan(
		&p.ID,
		&p.Reference,
		&p.Description,
		&p.UnitPrice,
		&p.CategoryID,
		&p.UserID,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.CategoryDescription,
	); err != nil {
		return nil, fmt.Errorf("GetProductByID: %w", err)
	}
	return p, nil
}

func ListProducts(ctx context.Context, db database.DB, userID int, search string, page int) ([]model.ProductDetail, int, error) {
	var count int
	if err := db.QueryRow(ctx,
		`SELECT count(*)
		 FROM products p
		 LEFT JOIN categories c ON c.id = p.category_id
		 WHERE p.user_id = $1
		   AND ($2 = ''
		     OR p.reference ILIKE '%' || $2 || '%'
		     OR p.description ILIKE '%' || $2 || '%'
		     OR c.description ILIKE '%' || $2 || '%')`,
		userID, search,
	).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("ListProducts: %w", err)
	}

	rows, err := db.Query(ctx,
		`SELECT p.id, p.reference, p.description, p.unit_price, p.category_id, p.user_id,
		        p.created_at, p.updated_at, COALESCE(c.description, '')
		 FROM products p
		 LEFT JOIN categories c ON c.id = p.category_id
		 WHERE p.user_id = $1
		   AND ($2 = ''
		     OR p.reference ILIKE '%' || $2 || '%'
		     OR p.description ILIKE '%' || $2 || '%'
		     OR c.description ILIKE '%' || $2 || '%')
		 ORDER BY p.description
		 LIMIT $3 OFFSET $4`,
		userID, search, PageLimit, pageOffset(page),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListProducts: %w", err)
	}
	defer rows.Close()

	var products []model.ProductDetail
	for rows.Next() {
		var p model.ProductDetail
		if err := rows.Scan(
			&p.ID,
			&p.Reference,
			&p.Description,
			&p.UnitPrice,
			&p.CategoryID,
			&p.UserID,
			&p.CreatedAt,
			&p.UpdatedAt,
			&p.CategoryDescription,
		); err != nil {
			return nil, 0, fmt.Errorf("ListProducts: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListProducts: %w", err)
	}
	return products, count, nil
}

// ProductUpdate 的 nil 欄位表示不修改
type ProductUpdate struct {
	Reference   *string
	Description *string
	UnitPrice   *decimal.Decimal
	CategoryID  *int
}

func UpdateProduct(ctx context.Context, db database.DB, userID, productID int, up ProductUpdate) (*model.Product, error) {
	row := db.QueryRow(ctx,
		`UPDATE products
		 SET reference   = COALESCE($3::varchar, reference),
		     description = COALESCE($4::text, description),
		     unit_price  = COALESCE($5::numeric, unit_price),
		     category_id = COALESCE($6::integer, category_id),
		     updated_at  = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, reference, description, unit_price, category_id, user_id, created_at, updated_at`,
		productID,
		userID,
		up.Reference,
		up.Description,
		up.UnitPrice,
		up.CategoryID,
	)
	p := &model.Product{}
	if err := row.Scan(
		&p.ID,
		&p.Reference,
		&p.Description,
		&p.UnitPrice,
		&p.CategoryID,
		&p.UserID,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("UpdateProduct: %w", err)
	}
	return p, nil
}

func DeleteProduct(ctx context.Context, db database.DB, userID, productID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM products WHERE id = $1 AND user_id = $2`,
		productID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteProduct: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteProduct: %w", pgx.ErrNoRows)
	}
	return nil
}
