// File: internal/handler/clients/client.go
package clients

import (
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"cart-api/internal/api"
	"cart-api/internal/database"
	"cart-api/internal/middleware"
	"cart-api/internal/model"
	"cart-api/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// 測試可覆寫以下變數
var (
	createClient  = store.CreateClient
	getClientByID = store.GetClientByID
	listClients   = store.ListClients
	updateClient  = store.UpdateClient
	deleteClient  = store.DeleteClient
)

func toClientResponse(cl *model.Client) api.ClientResponse {
	return api.ClientResponse{
		ID:        cl.ID,
		Name:      cl.Name,
		LastName:  cl.LastName,
		Email:     cl.Email,
		CreatedAt: cl.CreatedAt,
		UpdatedAt: cl.UpdatedAt,
	}
}

// CreateClientHandler 建立客戶，擁有者取自 JWT
// @Summary     Create a client
// @Tags        clients
// @Accept      json
// @Produce     json
// @Param       body body api.CreateClientRequest true "客戶資料"
// @Success     201 {object} api.ClientResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /client [post]
func CreateClientHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateClientRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		req.Email = strings.ToLower(req.Email)
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
		}

		uid := middleware.CallerID(c)
		cl, err := createClient(c.Request().Context(), db, &model.Client{
			Name:     req.Name,
			LastName: req.LastName,
			Email:    req.Email,
			UserID:   &uid,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, toClientResponse(cl))
	}
}

// ListClientsHandler 分頁查詢呼叫者的客戶
// @Summary     List clients
// @Description 僅回傳呼叫者擁有的客戶，固定每頁 10 筆
// @Tags        clients
// @Produce     json
// @Param       page   query int    false "頁碼 (1 起算)"
// @Param       search query string false "搜尋關鍵字 (name/last_name/email)"
// @Success     200 {object} api.ClientListResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /client [get]
func ListClientsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, _ := strconv.Atoi(c.QueryParam("page"))
		search := c.QueryParam("search")

		clientsRows, count, err := listClients(c.Request().Context(), db, middleware.CallerID(c), search, page)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		data := make([]api.ClientResponse, 0, len(clientsRows))
		for i := range clientsRows {
			data = append(data, toClientResponse(&clientsRows[i]))
		}
		return c.JSON(http.StatusOK, api.ClientListResponse{Data: data, Count: count})
	}
}

// GetClientHandler 查詢單一客戶，他人的客戶視為不存在
// @Summary     Get a client by ID
// @Tags        clients
// @Produce     json
// @Param       id path int true "客戶 ID"
// @Success     200 {object} api.ClientResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /client/{id} [get]
func GetClientHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid client ID"})
		}
		cl, err := getClientByID(c.Request().Context(), db, middleware.CallerID(c), id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "client not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toClientResponse(cl))
	}
}

// UpdateClientHandler 部分更新客戶，空 payload 視為無操作
// @Summary     Update a client by ID
// @Tags        clients
// @Accept      json
// @Produce     json
// @Param       id   path int                     true "客戶 ID"
// @Param       body body api.UpdateClientRequest true "欲更新的欄位"
// @Success     200 {object} api.ClientResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /client/{id} [put]
func UpdateClientHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid client ID"})
		}

		var req api.UpdateClientRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		for field, v := range map[string]*string{
			"name":      req.Name,
			"last_name": req.LastName,
			"email":     req.Email,
		} {
			if v != nil && *v == "" {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: field + " is not allowed to be empty"})
			}
		}
		if req.Email != nil {
			lower := strings.ToLower(*req.Email)
			if _, err := mail.ParseAddress(lower); err != nil {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
			}
			req.Email = &lower
		}

		cl, err := updateClient(c.Request().Context(), db, middleware.CallerID(c), id, store.ClientUpdate{
			Name:     req.Name,
			LastName: req.LastName,
			Email:    req.Email,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "client not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toClientResponse(cl))
	}
}

// DeleteClientHandler 刪除客戶
// @Summary     Delete a client by ID
// @Tags        clients
// @Produce     json
// @Param       id path int true "客戶 ID"
// @Success     200 "Empty body"
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /client/{id} [delete]
func DeleteClientHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid client ID"})
		}
		if err := deleteClient(c.Request().Context(), db, middleware.CallerID(c), id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "client not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusOK)
	}
}
