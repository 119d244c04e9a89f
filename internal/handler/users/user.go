// File: internal/handler/users/user.go
package users

import (
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"cart-api/internal/api"
	"cart-api/internal/database"
	"cart-api/internal/middleware"
	"cart-api/internal/model"
	"cart-api/internal/service"
	"cart-api/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// 測試可覆寫以下變數
var (
	hashPassword             = service.HashPassword
	validatePasswordStrength = service.ValidatePasswordStrength
	authenticateUser         = service.AuthenticateUser
	issueAccessToken         = service.IssueAccessToken
	issueRefreshToken        = service.IssueRefreshToken
	validateRefreshToken     = service.ValidateRefreshToken
	revokeRefreshToken       = service.RevokeRefreshToken
	createUser               = store.CreateUser
	getUserByID              = store.GetUserByID
	getUserByEmail           = store.GetUserByEmail
	listUsers                = store.ListUsers
	updateUser               = store.UpdateUser
	updateUserPassword       = store.UpdateUserPassword
	deleteUser               = store.DeleteUser
)

const accessTokenTTL = 24 * time.Hour

func toUserResponse(u *model.User) api.UserResponse {
	return api.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// RegisterHandler 註冊新使用者並回傳存取令牌
// @Summary     Register a new user
// @Description 建立新帳號並直接回傳存取令牌 (Email 會自動轉小寫)
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body api.CreateUserRequest true "使用者資料"
// @Success     201 {object} api.RegisterResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /user [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		if err := validatePasswordStrength(req.Password); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		req.Email = strings.ToLower(req.Email)
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			Username:     req.Username,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			PasswordHash: hash,
		})
		if err != nil {
			if store.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "username or email already taken"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		token, err := issueAccessToken(*user, accessTokenTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to issue token"})
		}

		return c.JSON(http.StatusCreated, api.RegisterResponse{
			UserResponse: toUserResponse(user),
			Token:        token,
		})
	}
}

// ListUsersHandler 分頁查詢使用者
// @Summary     List users
// @Description 依頁碼與關鍵字查詢使用者，固定每頁 10 筆
// @Tags        users
// @Produce     json
// @Param       page   query int    false "頁碼 (1 起算)"
// @Param       search query string false "搜尋關鍵字"
// @Success     200 {object} api.UserListResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /user [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, _ := strconv.Atoi(c.QueryParam("page"))
		search := c.QueryParam("search")

		users, count, err := listUsers(c.Request().Context(), db, search, page)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		data := make([]api.UserResponse, 0, len(users))
		for i := range users {
			data = append(data, toUserResponse(&users[i]))
		}
		return c.JSON(http.StatusOK, api.UserListResponse{Data: data, Count: count})
	}
}

// GetUserHandler 查詢單一使用者
// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者詳細資料 (不含密碼)
// @Tags        users
// @Produce     json
// @Param       id path int true "使用者 ID"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /user/{id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// UpdateUserHandler 更新自己的帳號資料
// @Summary     Update a user by ID
// @Description 僅能更新自己的帳號，nil 欄位不修改；帶 password 會重新驗證強度並雜湊
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path int                   true "使用者 ID"
// @Param       body body api.UpdateUserRequest true "欲更新的欄位"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /user/{id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		// 僅能操作自己的帳號，不洩漏他人帳號是否存在
		if middleware.CallerID(c) != id {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		// validator 的 omitempty 會略過指向空字串的指標，需手動拒絕
		for field, v := range map[string]*string{
			"username":   req.Username,
			"first_name": req.FirstName,
			"last_name":  req.LastName,
			"email":      req.Email,
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
		if req.Password != nil {
			if err := validatePasswordStrength(*req.Password); err != nil {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
			}
		}

		user, err := updateUser(c.Request().Context(), db, id, store.UserUpdate{
			Username:  req.Username,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			if store.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "username or email already taken"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		if req.Password != nil {
			hash, err := hashPassword(*req.Password)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
			}
			if err := updateUserPassword(c.Request().Context(), db, id, hash); err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
			}
		}

		return c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// DeleteUserHandler 刪除自己的帳號
// @Summary     Delete a user by ID
// @Description 僅能刪除自己的帳號
// @Tags        users
// @Produce     json
// @Param       id path int true "使用者 ID"
// @Success     200 "Empty body"
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /user/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		if middleware.CallerID(c) != id {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		}
		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusOK)
	}
}
