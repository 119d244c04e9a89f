// File: internal/api/user.go
package api

import "time"

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,max=40" example:"alice"`
	FirstName string `json:"first_name" validate:"required,max=100" example:"Alice"`
	LastName  string `json:"last_name" validate:"required,max=50" example:"Liddell"`
	Email     string `json:"email" validate:"required,email,max=120" example:"alice@example.com"`
	Password  string `json:"password" validate:"required" example:"Aw3s0m#01"`
}

// UpdateUserRequest 部分更新，nil 欄位不修改
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Username  *string `json:"username" validate:"omitempty,max=40"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=50"`
	Email     *string `json:"email" validate:"omitempty,email,max=120"`
	Password  *string `json:"password"`
}

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Aw3s0m#01"`
}

// swagger:model api.RefreshRequest
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// swagger:model api.UserResponse
type UserResponse struct {
	ID        int       `json:"id" example:"1"`
	Username  string    `json:"username" example:"alice"`
	FirstName string    `json:"first_name" example:"Alice"`
	LastName  string    `json:"last_name" example:"Liddell"`
	Email     string    `json:"email" example:"alice@example.com"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterResponse 註冊成功後回傳使用者資料與存取令牌
// swagger:model api.RegisterResponse
type RegisterResponse struct {
	UserResponse
	Token string `json:"token"`
}

// swagger:model api.TokenResponse
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type" example:"Bearer"`
	ExpiresIn    int    `json:"expires_in" example:"86400"`
	RefreshToken string `json:"refresh_token"`
}

// swagger:model api.UserListResponse
type UserListResponse struct {
	Data  []UserResponse `json:"data"`
	Count int            `json:"count"`
}
