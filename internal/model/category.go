// File: internal/model/category.go
package model

import "time"

type Category struct {
	ID          int       `db:"id" json:"id"`
	Description string    `db:"description" json:"description"`
	UserID      *int      `db:"user_id" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
