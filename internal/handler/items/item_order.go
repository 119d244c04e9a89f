// File: internal/handler/items/item_order.go
package items

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
	"github.com/shopspring/decimal"
)

// 測試可覆寫以下變數
var (
	getOrderByID     = store.GetOrderByID
	getProductByID   = store.GetProductByID
	createItemOrder  = store.CreateItemOrder
	getItemOrderByID = store.GetItemOrderByID
	listItemOrders   = store.ListItemOrders
	updateItemOrder  = store.UpdateItemOrder
	deleteItemOrder  = store.DeleteItemOrder
)

func toItemOrderResponse(it *model.ItemOrderDetail) api.ItemOrderResponse {
	resp := api.ItemOrderResponse{
		ID:        it.ID,
		UnitPrice: it.UnitPrice,
		Quantity:  it.Quantity,
		Value:     it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
	if it.OrderID != nil {
		resp.Order = &api.OrderRef{ID: *it.OrderID, Code: it.OrderCode}
	}
	if it.ProductID != nil {
		resp.Product = &api.ProductRef{ID: *it.ProductID, Description: it.ProductDescription}
	}
	return resp
}

// resolveOrder 先在呼叫者範圍內解析父訂單，他人的訂單視為不存在
func resolveOrder(c echo.Context, db database.DB) (int, error) {
	orderID, err := strconv.Atoi(c.Param("order"))
	if err != nil {
		return 0, c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid order ID"})
	}
	if _, err := getOrderByID(c.Request().Context(), db, middleware.CallerID(c), orderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "order not found"})
		}
		return 0, c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
	}
	return orderID, nil
}

// CreateItemOrderHandler 在指定訂單下建立明細
// @Summary     Create an item order
// @Tags        item-orders
// @Accept      json
// @Produce     json
// @Param       order path int                         true "訂單 ID"
// @Param       body  body api.CreateItemOrderRequest true "明細資料"
// @Success     201 {object} api.ItemOrderResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /item-order/{order} [post]
func CreateItemOrderHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		orderID, err := resolveOrder(c, db)
		if err != nil || orderID == 0 {
			return err
		}

		var req api.CreateItemOrderRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		if req.UnitPrice.IsNegative() {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "unit_price must not be negative"})
		}
		// 引用他人的商品視為不存在
		if req.ProductID != nil {
			if _, err := getProductByID(ctx, db, middleware.CallerID(c), *req.ProductID); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "product not found"})
				}
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
			}
		}

		it, err := createItemOrder(ctx, db, &model.ItemOrder{
			OrderID:   &orderID,
			ProductID: req.ProductID,
			UnitPrice: *req.UnitPrice,
			Quantity:  req.Quantity,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		detail, err := getItemOrderByID(ctx, db, orderID, it.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, toItemOrderResponse(detail))
	}
}

// ListItemOrdersHandler 分頁查詢指定訂單的明細
// @Summary     List item orders
// @Description 僅回傳指定訂單 (必須屬於呼叫者) 的明細，固定每頁 10 筆
// @Tags        item-orders
// @Produce     json
// @Param       order path  int true  "訂單 ID"
// @Param       page  query int false "頁碼 (1 起算)"
// @Success     200 {object} api.ItemOrderListResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /item-order/{order} [get]
func ListItemOrdersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		orderID, err := resolveOrder(c, db)
		if err != nil || orderID == 0 {
			return err
		}
		page, _ := strconv.Atoi(c.QueryParam("page"))

		items, count, err := listItemOrders(c.Request().Context(), db, orderID, page)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		data := make([]api.ItemOrderResponse, 0, len(items))
		for i := range items {
			data = append(data, toItemOrderResponse(&items[i]))
		}
		return c.JSON(http.StatusOK, api.ItemOrderListResponse{Data: data, Count: count})
	}
}

// GetItemOrderHandler 查詢單一明細
// @Summary     Get an item order by ID
// @Tags        item-orders
// @Produce     json
// @Param       order path int true "訂單 ID"
// @Param       id    path int true "明細 ID"
// @Success     200 {object} api.ItemOrderResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /item-order/{order}/{id} [get]
func GetItemOrderHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		orderID, err := resolveOrder(c, db)
		if err != nil || orderID == 0 {
			return err
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid item order ID"})
		}
		it, err := getItemOrderByID(c.Request().Context(), db, orderID, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "item order not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toItemOrderResponse(it))
	}
}

// UpdateItemOrderHandler 部分更新明細，明細不可跨訂單搬移
// @Summary     Update an item order by ID
// @Tags        item-orders
// @Accept      json
// @Produce     json
// @Param       order path int                         true "訂單 ID"
// @Param       id    path int                         true "明細 ID"
// @Param       body  body api.UpdateItemOrderRequest true "欲更新的欄位"
// @Success     200 {object} api.ItemOrderResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /item-order/{order}/{id} [put]
func UpdateItemOrderHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		orderID, err := resolveOrder(c, db)
		if err != nil || orderID == 0 {
			return err
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid item order ID"})
		}

		var req api.UpdateItemOrderRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "unit_price must not be negative"})
		}
		if req.Quantity != nil && *req.Quantity < 1 {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "quantity must be at least 1"})
		}
		if req.ProductID != nil {
			if _, err := getProductByID(ctx, db, middleware.CallerID(c), *req.ProductID); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "product not found"})
				}
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
			}
		}

		it, err := updateItemOrder(ctx, db, orderID, id, store.ItemOrderUpdate{
			ProductID: req.ProductID,
			UnitPrice: req.UnitPrice,
			Quantity:  req.Quantity,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "item order not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		detail, err := getItemOrderByID(ctx, db, orderID, it.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toItemOrderResponse(detail))
	}
}

// DeleteItemOrderHandler 刪除明細
// @Summary     Delete an item order by ID
// @Tags        item-orders
// @Produce     json
// @Param       order path int true "訂單 ID"
// @Param       id    path int true "明細 ID"
// @Success     200 "Empty body"
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /item-order/{order}/{id} [delete]
func DeleteItemOrderHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		orderID, err := resolveOrder(c, db)
		if err != nil || orderID == 0 {
			return err
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid item order ID"})
		}
		if err := deleteItemOrder(c.Request().Context(), db, orderID, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "item order not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusOK)
	}
}
