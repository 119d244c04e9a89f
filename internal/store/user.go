// File: internal/store/user.go
package store

import (
	"context"
	"fmt"

	"cart-api/internal/database"
	"cart-api/internal/model"

	"github.com/jackc/pgx/v5"
)

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (username, first_name, last_name, email, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		u.Username,
		u.FirstName,
		u.LastName,
		u.Email,
		u.PasswordHash,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, username, first_name, last_name, email, password_hash, created_at, updated_at
		 FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, username, first_name, last_name, email, password_hash, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

func ListUsers(ctx context.Context, db database.DB, search string, page int) ([]model.User, int, error) {
	var count int
	if err := db.QueryRow(ctx,
		`SELECT count(*) FROM users
		 WHERE $1 = ''
		    OR username ILIKE '%' || $1 || '%'
		    OR first_name ILIKE '%' || $1 || '%'
		    OR last_name ILIKE '%' || $1 || '%'
		    OR email ILIKE '%' || $1 || '%'`,
		search,
	).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("ListUsers: %w", err)
	}

	rows, err := db.Query(ctx,
		`SELECT id, username, first_name, last_name, email, password_hash, created_at, updated_at
		 FROM users
		 WHERE $1 = ''
		    OR username ILIKE '%' || $1 || '%'
		    OR first_name ILIKE '%' || $1 || '%'
		    OR last_name ILIKE '%' || $1 || '%'
		    OR email ILIKE '%' || $1 || '%'
		 ORDER BY username
		 LIMIT $2 OFFSET $3`,
		search, PageLimit, pageOffset(page),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.FirstName,
			&u.LastName,
			&u.Email,
			&u.PasswordHash,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListUsers: %w", err)
	}
	return users, count, nil
}

// UserUpdate 的 nil 欄位表示不修改
type UserUpdate struct {
	Username  *string
	FirstName *string
	LastName  *string
	Email     *string
}

func UpdateUser(ctx context.Context, db database.DB, userID int, up UserUpdate) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users
		 SET username   = COALESCE($2::varchar, username),
		     first_name = COALESCE($3::varchar, first_name),
		     last_name  = COALESCE($4::varchar, last_name),
		     email      = COALESCE($5::varchar, email),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING id, username, first_name, last_name, email, password_hash, created_at, updated_at`,
		userID,
		up.Username,
		up.FirstName,
		up.LastName,
		up.Email,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("UpdateUser: %w", err)
	}
	return u, nil
}

func UpdateUserPassword(ctx context.Context, db database.DB, userID int, passwordHash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $2, updated_at = now()
		 WHERE id = $1`,
		userID,
		passwordHash,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserPassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserPassword: %w", pgx.ErrNoRows)
	}
	return nil
}

func DeleteUser(ctx context.Context, db database.DB, userID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", pgx.ErrNoRows)
	}
	return nil
}
