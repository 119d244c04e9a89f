// File: internal/handler/categories/category.go
package categories

import (
	"errors"
	"net/http"
	"strconv"

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
	createCategory  = store.CreateCategory
	getCategoryByID = store.GetCategoryByID
	listCategories  = store.ListCategories
	updateCategory  = store.UpdateCategory
	deleteCategory  = store.DeleteCategory
)

func toCategoryResponse(cat *model.Category) api.CategoryResponse {
	return api.CategoryResponse{
		ID:          cat.ID,
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt,
		UpdatedAt:   cat.UpdatedAt,
	}
}

// CreateCategoryHandler 建立分類，擁有者取自 JWT
// @Summary     Create a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       body body api.CreateCategoryRequest true "分類資料"
// @Success     201 {object} api.CategoryResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /category [post]
func CreateCategoryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateCategoryRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		uid := middleware.CallerID(c)
		cat, err := createCategory(c.Request().Context(), db, &model.Category{
			Description: req.Description,
			UserID:      &uid,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, toCategoryResponse(cat))
	}
}

// ListCategoriesHandler 分頁查詢呼叫者的分類
// @Summary     List categories
// @Description 僅回傳呼叫者擁有的分類，固定每頁 10 筆
// @Tags        categories
// @Produce     json
// @Param       page   query int    false "頁碼 (1 起算)"
// @Param       search query string false "搜尋關鍵字 (description)"
// @Success     200 {object} api.CategoryListResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /category [get]
func ListCategoriesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, _ := strconv.Atoi(c.QueryParam("page"))
		search := c.QueryParam("search")

		cats, count, err := listCategories(c.Request().Context(), db, middleware.CallerID(c), search, page)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		data := make([]api.CategoryResponse, 0, len(cats))
		for i := range cats {
			data = append(data, toCategoryResponse(&cats[i]))
		}
		return c.JSON(http.StatusOK, api.CategoryListResponse{Data: data, Count: count})
	}
}

// GetCategoryHandler 查詢單一分類，他人的分類視為不存在
// @Summary     Get a category by ID
// @Tags        categories
// @Produce     json
// @Param       id path int true "分類 ID"
// @Success     200 {object} api.CategoryResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /category/{id} [get]
func GetCategoryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid category ID"})
		}
		cat, err := getCategoryByID(c.Request().Context(), db, middleware.CallerID(c), id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "category not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toCategoryResponse(cat))
	}
}

// UpdateCategoryHandler 部分更新分類，空 payload 視為無操作
// @Summary     Update a category by ID
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id   path int                       true "分類 ID"
// @Param       body body api.UpdateCategoryRequest true "欲更新的欄位"
// @Success     200 {object} api.CategoryResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /category/{id} [put]
func UpdateCategoryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid category ID"})
		}

		var req api.UpdateCategoryRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		if req.Description != nil && *req.Description == "" {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "description is not allowed to be empty"})
		}

		cat, err := updateCategory(c.Request().Context(), db, middleware.CallerID(c), id, store.CategoryUpdate{
			Description: req.Description,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "category not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toCategoryResponse(cat))
	}
}

// DeleteCategoryHandler 刪除分類
// @Summary     Delete a category by ID
// @Tags        categories
// @Produce     json
// @Param       id path int true "分類 ID"
// @Success     200 "Empty body"
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /category/{id} [delete]
func DeleteCategoryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid category ID"})
		}
		if err := deleteCategory(c.Request().Context(), db, middleware.CallerID(c), id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "category not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusOK)
	}
}
