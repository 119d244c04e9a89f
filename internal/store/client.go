// File: internal/store/client.go
package store

import (
	"context"
	"fmt"

	"cart-api/internal/database"
	"cart-api/internal/model"

	"github.com/jackc/pgx/v5"
)

func CreateClient(ctx context.Context, db database.DB, c *model.Client) (*model.Client, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO clients (name, last_name, email, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		c.Name,
		c.LastName,
		c.Email,
		c.UserID,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateClient: %w", err)
	}
	return c, nil
}

func GetClientByID(ctx context.Context, db database.DB, userID, clientID int) (*model.Client, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, last_name, email, user_id, created_at, updated_at
		 FROM clients
		 WHERE id = $1 AND user_id = $2`,
		clientID,
		userID,
	)
	c := &model.Client{}
	if err := row.Scan(&c.ID, &c.Name, &c.LastName, &c.Email, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("GetClientByID: %w", err)
	}
	return c, nil
}

func ListClients(ctx context.Context, db database.DB, userID int, search string, page int) ([]model.Client, int, error) {
	var count int
	if err := db.QueryRow(ctx,
		`SELECT count(*) FROM clients
		 WHERE user_id = $1
		   AND ($2 = ''
		     OR name ILIKE '%' || $2 || '%'
		     OR last_name ILIKE '%' || $2 || '%'
		     OR email ILIKE '%' || $2 || '%')`,
		userID, search,
	).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("ListClients: %w", err)
	}

	rows, err := db.Query(ctx,
		`SELECT id, name, last_name, email, user_id, created_at, updated_at
		 FROM clients
		 WHERE user_id = $1
		   AND ($2 = ''
		     OR name ILIKE '%' || $2 || '%'
		     OR last_name ILIKE '%' || $2 || '%'
		     OR email ILIKE '%' || $2 || '%')
		 ORDER BY name
		 LIMIT $3 OFFSET $4`,
		userID, search, PageLimit, pageOffset(page),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListClients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.LastName, &c.Email, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("ListClients: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListClients: %w", err)
	}
	return clients, count, nil
}

// ClientUpdate 的 nil 欄位表示不修改
type ClientUpdate struct {
	Name     *string
	LastName *string
	Email    *string
}

func UpdateClient(ctx context.Context, db database.DB, userID, clientID int, up ClientUpdate) (*model.Client, error) {
	row := db.QueryRow(ctx,
		`UPDATE clients
		 SET name       = COALESCE($3::varchar, name),
		     last_name  = COALESCE($4::text, last_name),
		     email      = COALESCE($5::varchar, email),
		     updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, name, last_name, email, user_id, created_at, updated_at`,
		clientID,
		userID,
		up.Name,
		up.LastName,
		up.Email,
	)
	c := &model.Client{}
	if err := row.Scan(&c.ID, &c.Name, &c.LastName, &c.Email, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("UpdateClient: %w", err)
	}
	return c, nil
}

func DeleteClient(ctx context.Context, db database.DB, userID, clientID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM clients WHERE id = $1 AND user_id = $2`,
		clientID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteClient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteClient: %w", pgx.ErrNoRows)
	}
	return nil
}
