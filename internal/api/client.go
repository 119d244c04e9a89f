// File: internal/api/client.go
package api

import "time"

// swagger:model api.CreateClientRequest
type CreateClientRequest struct {
	Name     string `json:"name" validate:"required,max=250" example:"Bob"`
	LastName string `json:"last_name" validate:"required" example:"Stone"`
	Email    string `json:"email" validate:"required,email,max=120" example:"bob@example.com"`
}

// UpdateClientRequest 部分更新，nil 欄位不修改
// swagger:model api.UpdateClientRequest
type UpdateClientRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=250"`
	LastName *string `json:"last_name"`
	Email    *string `json:"email" validate:"omitempty,email,max=120"`
}

// swagger:model api.ClientResponse
type ClientResponse struct {
	ID        int       `json:"id" example:"1"`
	Name      string    `json:"name" example:"Bob"`
	LastName  string    `json:"last_name" example:"Stone"`
	Email     string    `json:"email" example:"bob@example.com"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// swagger:model api.ClientListResponse
type ClientListResponse struct {
	Data  []ClientResponse `json:"data"`
	Count int              `json:"count"`
}
