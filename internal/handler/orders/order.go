// File: internal/handler/orders/order.go
package orders

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
	createOrder   = store.CreateOrder
	getOrderByID  = store.GetOrderByID
	listOrders    = store.ListOrders
	updateOrder   = store.UpdateOrder
	deleteOrder   = store.DeleteOrder
	orderTotal    = store.OrderTotal
	orderTotals   = store.OrderTotals
	getClientByID = store.GetClientByID
)

func toOrderResponse(o *model.OrderDetail, total decimal.Decimal) api.OrderResponse {
	resp := api.OrderResponse{
		ID:         o.ID,
		Code:       o.Code,
		Emission:   o.Emission,
		Delivery:   o.Delivery,
		PriceTotal: total,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	if o.ClientID != nil {
		resp.Client = &api.ClientRef{ID: *o.ClientID, Name: o.ClientName}
	}
	return resp
}

// CreateOrderHandler 建立訂單，擁有者取自 JWT；client_id 必須屬於呼叫者
// @Summary     Create an order
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       body body api.CreateOrderRequest true "訂單資料"
// @Success     201 {object} api.OrderResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /order [post]
func CreateOrderHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		var req api.CreateOrderRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		uid := middleware.CallerID(c)
		// 引用他人的客戶視為不存在
		if req.ClientID != nil {
			if _, err := getClientByID(ctx, db, uid, *req.ClientID); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "client not found"})
				}
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
			}
		}

		o, err := createOrder(ctx, db, &model.Order{
			Code:     req.Code,
			Emission: req.Emission,
			Delivery: req.Delivery,
			ClientID: req.ClientID,
			UserID:   &uid,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		// 建立後重新讀取以附帶客戶名稱，新訂單總額必為 0
		detail, err := getOrderByID(ctx, db, uid, o.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, toOrderResponse(detail, decimal.Zero))
	}
}

// ListOrdersHandler 分頁查詢呼叫者的訂單，總額以單次分組查詢計算
// @Summary     List orders
// @Description 僅回傳呼叫者擁有的訂單，固定每頁 10 筆，每筆附帶明細總額
// @Tags        orders
// @Produce     json
// @Param       page   query int    false "頁碼 (1 起算)"
// @Param       search query string false "搜尋關鍵字 (code/客戶名稱)"
// @Success     200 {object} api.OrderListResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /order [get]
func ListOrdersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		page, _ := strconv.Atoi(c.QueryParam("page"))
		search := c.QueryParam("search")

		rows, count, err := listOrders(ctx, db, middleware.CallerID(c), search, page)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		ids := make([]int, 0, len(rows))
		for i := range rows {
			ids = append(ids, rows[i].ID)
		}
		totals, err := orderTotals(ctx, db, ids)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		data := make([]api.OrderResponse, 0, len(rows))
		for i := range rows {
			data = append(data, toOrderResponse(&rows[i], totals[rows[i].ID]))
		}
		return c.JSON(http.StatusOK, api.OrderListResponse{Data: data, Count: count})
	}
}

// GetOrderHandler 查詢單一訂單與其明細總額
// @Summary     Get an order by ID
// @Tags        orders
// @Produce     json
// @Param       id path int true "訂單 ID"
// @Success     200 {object} api.OrderResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /order/{id} [get]
func GetOrderHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid order ID"})
		}
		o, err := getOrderByID(ctx, db, middleware.CallerID(c), id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "order not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		total, err := orderTotal(ctx, db, o.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toOrderResponse(o, total))
	}
}

// UpdateOrderHandler 部分更新訂單，空 payload 視為無操作
// @Summary     Update an order by ID
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       id   path int                    true "訂單 ID"
// @Param       body body api.UpdateOrderRequest true "欲更新的欄位"
// @Success     200 {object} api.OrderResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /order/{id} [put]
func UpdateOrderHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid order ID"})
		}

		var req api.UpdateOrderRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		if req.Code != nil && *req.Code == "" {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "code is not allowed to be empty"})
		}

		uid := middleware.CallerID(c)
		if req.ClientID != nil {
			if _, err := getClientByID(ctx, db, uid, *req.ClientID); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "client not found"})
				}
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
			}
		}

		o, err := updateOrder(ctx, db, uid, id, store.OrderUpdate{
			Code:     req.Code,
			Emission: req.Emission,
			Delivery: req.Delivery,
			ClientID: req.ClientID,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "order not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		detail, err := getOrderByID(ctx, db, uid, o.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		total, err := orderTotal(ctx, db, o.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toOrderResponse(detail, total))
	}
}

// DeleteOrderHandler 刪除訂單，其明細由外鍵 CASCADE 一併移除
// @Summary     Delete an order by ID
// @Tags        orders
// @Produce     json
// @Param       id path int true "訂單 ID"
// @Success     200 "Empty body"
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /order/{id} [delete]
func DeleteOrderHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid order ID"})
		}
		if err := deleteOrder(c.Request().Context(), db, middleware.CallerID(c), id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "order not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusOK)
	}
}
