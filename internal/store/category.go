// File: internal/store/category.go
package store

import (
	"context"
	"fmt"

	"cart-api/internal/database"
	"cart-api/internal/model"

	"github.com/jackc/pgx/v5"
)

func CreateCategory(ctx context.Context, db database.DB, c *model.Category) (*model.Category, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO categories (description, user_id)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		c.Description,
		c.UserID,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateCategory: %w", err)
	}
	return c, nil
}

func GetCategoryByID(ctx context.Context, db database.DB, userID, categoryID int) (*model.Category, error) {
	row := db.QueryRow(ctx,
		`SELECT id, description, user_id, created_at, updated_at
		 FROM categories
		 WHERE id = $1 AND user_id = $2`,
		categoryID,
		userID,
	)
	c := &model.Category{}
	if err := row.Scan(&c.ID, &c.Description, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("GetCategoryByID: %w", err)
	}
	return c, nil
}

func ListCategories(ctx context.Context, db database.DB, userID int, search string, page int) ([]model.Category, int, error) {
	var count int
	if err := db.QueryRow(ctx,
		`SELECT count(*) FROM categories
		 WHERE user_id = $1
		   AND ($2 = '' OR description ILIKE '%' || $2 || '%')`,
		userID, search,
	).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("ListCategories: %w", err)
	}

	rows, err := db.Query(ctx,
		`SELECT id, description, user_id, created_at, updated_at
		 FROM categories
		 WHERE user_id = $1
		   AND ($2 = '' OR description ILIKE '%' || $2 || '%')
		 ORDER BY description
		 LIMIT $3 OFFSET $4`,
		userID, search, PageLimit, pageOffset(page),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListCategories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Description, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("ListCategories: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListCategories: %w", err)
	}
	return categories, count, nil
}

// CategoryUpdate 的 nil 欄位表示不修改
type CategoryUpdate struct {
	Description *string
}

func UpdateCategory(ctx context.Context, db database.DB, userID, categoryID int, up CategoryUpdate) (*model.Category, error) {
	row := db.QueryRow(ctx,
		`UPDATE categories
		 SET description = COALESCE($3::text, description),
		     updated_at  = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, description, user_id, created_at, updated_at`,
		categoryID,
		userID,
		up.Description,
	)
	c := &model.Category{}
	if err := row.Scan(&c.ID, &c.Description, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("UpdateCategory: %w", err)
	}
	return c, nil
}

func DeleteCategory(ctx context.Context, db database.DB, userID, categoryID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`,
		categoryID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteCategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteCategory: %w", pgx.ErrNoRows)
	}
	return nil
}
