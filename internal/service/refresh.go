// File: internal/service/refresh.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"cart-api/internal/cache"
)

// refreshTokenPrefix 是 refresh token 在 redis 的 key 前綴
const refreshTokenPrefix = "refresh:"

// 測試可覆寫以下變數
var (
	randRead      = rand.Read
	jsonMarshal   = json.Marshal
	jsonUnmarshal = json.Unmarshal
)

// RefreshTokenData 是 refresh token 對應的負載，存於 redis
type RefreshTokenData struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// IssueRefreshToken 產生不透明 refresh token 並以 TTL 存入快取
func IssueRefreshToken(ctx context.Context, c cache.Cache, userID int, username string, ttl time.Duration) (string, error) {
	buf := make([]byte, 32)
	if _, err := randRead(buf); err != nil {
		return "", fmt.Errorf("IssueRefreshToken: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	data, err := jsonMarshal(RefreshTokenData{UserID: userID, Username: username})
	if err != nil {
		return "", fmt.Errorf("IssueRefreshToken: %w", err)
	}

	if err := c.Set(ctx, refreshTokenPrefix+token, data, ttl).Err(); err != nil {
		return "", fmt.Errorf("IssueRefreshToken: %w", err)
	}
	return token, nil
}

// ValidateRefreshToken 驗證 refresh token 並回傳其負載
func ValidateRefreshToken(ctx context.Context, c cache.Cache, token string) (*RefreshTokenData, error) {
	raw, err := c.Get(ctx, refreshTokenPrefix+token).Result()
	if err != nil {
		return nil, fmt.Errorf("ValidateRefreshToken: %w", err)
	}
	var data RefreshTokenData
	if err := jsonUnmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("ValidateRefreshToken: %w", err)
	}
	return &data, nil
}

// RevokeRefreshToken 註銷 refresh token
func RevokeRefreshToken(ctx context.Context, c cache.Cache, token string) error {
	if err := c.Del(ctx, refreshTokenPrefix+token).Err(); err != nil {
		return fmt.Errorf("RevokeRefreshToken: %w", err)
	}
	return nil
}
