// File: internal/handler/products/product.go
package products

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
	createProduct  = store.CreateProduct
	getProductByID = store.GetProductByID
	listProducts   = store.ListProducts
	updateProduct  = store.UpdateProduct
	deleteProduct  = store.DeleteProduct
)

func toProductResponse(p *model.ProductDetail) api.ProductResponse {
	resp := api.ProductResponse{
		ID:          p.ID,
		Reference:   p.Reference,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.CategoryID != nil {
		resp.Category = &api.CategoryRef{ID: *p.CategoryID, Description: p.CategoryDescription}
	}
	return resp
}

// CreateProductHandler 建立商品，擁有者取自 JWT
// @Summary     Create a product
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       body body api.CreateProductRequest true "商品資料"
// @Success     201 {object} api.ProductResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /product [post]
func CreateProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateProductRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		if req.UnitPrice.IsNegative() {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "unit_price must not be negative"})
		}

		uid := middleware.CallerID(c)
		p, err := createProduct(c.Request().Context(), db, &model.Product{
			Reference:   req.Reference,
			Description: req.Description,
			UnitPrice:   req.UnitPrice,
			CategoryID:  req.CategoryID,
			UserID:      &uid,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		// 建立後重新讀取以附帶分類描述
		detail, err := getProductByID(c.Request().Context(), db, uid, p.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, toProductResponse(detail))
	}
}

// ListProductsHandler 分頁查詢呼叫者的商品
// @Summary     List products
// @Description 僅回傳呼叫者擁有的商品，固定每頁 10 筆
// @Tags        products
// @Produce     json
// @Param       page   query int    false "頁碼 (1 起算)"
// @Param       search query string false "搜尋關鍵字 (reference/description/分類描述)"
// @Success     200 {object} api.ProductListResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /product [get]
func ListProductsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, _ := strconv.Atoi(c.QueryParam("page"))
		search := c.QueryParam("search")

		products, count, err := listProducts(c.Request().Context(), db, middleware.CallerID(c), search, page)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		data := make([]api.ProductResponse, 0, len(products))
		for i := range products {
			data = append(data, toProductResponse(&products[i]))
		}
		return c.JSON(http.StatusOK, api.ProductListResponse{Data: data, Count: count})
	}
}

// GetProductHandler 查詢單一商品，他人的商品視為不存在
// @Summary     Get a product by ID
// @Tags        products
// @Produce     json
// @Param       id path int true "商品 ID"
// @Success     200 {object} api.ProductResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /product/{id} [get]
func GetProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid product ID"})
		}
		p, err := getProductByID(c.Request().Context(), db, middleware.CallerID(c), id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "product not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toProductResponse(p))
	}
}

// UpdateProductHandler 部分更新商品，空 payload 視為無操作
// @Summary     Update a product by ID
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       id   path int                      true "商品 ID"
// @Param       body body api.UpdateProductRequest true "欲更新的欄位"
// @Success     200 {object} api.ProductResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /product/{id} [put]
func UpdateProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid product ID"})
		}

		var req api.UpdateProductRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		for field, v := range map[string]*string{
			"reference":   req.Reference,
			"description": req.Description,
		} {
			if v != nil && *v == "" {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: field + " is not allowed to be empty"})
			}
		}
		if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "unit_price must not be negative"})
		}

		uid := middleware.CallerID(c)
		p, err := updateProduct(c.Request().Context(), db, uid, id, store.ProductUpdate{
			Reference:   req.Reference,
			Description: req.Description,
			UnitPrice:   req.UnitPrice,
			CategoryID:  req.CategoryID,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "product not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		detail, err := getProductByID(c.Request().Context(), db, uid, p.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toProductResponse(detail))
	}
}

// DeleteProductHandler 刪除商品
// @Summary     Delete a product by ID
// @Tags        products
// @Produce     json
// @Param       id path int true "商品 ID"
// @Success     200 "Empty body"
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /product/{id} [delete]
func DeleteProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid product ID"})
		}
		if err := deleteProduct(c.Request().Context(), db, middleware.CallerID(c), id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "product not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusOK)
	}
}
