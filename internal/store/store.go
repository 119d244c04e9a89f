// File: internal/store/store.go
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PageLimit 每頁固定回傳筆數
const PageLimit = 10

// pageOffset 將 1 起算的頁碼轉為 OFFSET，page < 1 視為第一頁
func pageOffset(page int) int {
	if page < 1 {
		page = 1
	}
	return PageLimit * (page - 1)
}

// IsUniqueViolation 判斷錯誤是否為唯一鍵衝突 (SQLSTATE 23505)
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
