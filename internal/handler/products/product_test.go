package products

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cart-api/internal/database"
	"cart-api/internal/middleware"
	"cart-api/internal/model"
	"cart-api/internal/service"
	"cart-api/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func newJSONCtx(e *echo.Echo, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: 7})
	return c, rec
}

func newIDCtx(e *echo.Echo, method, id, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/product/"+id, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/product/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	c.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: 7})
	return c, rec
}

func restore() {
	createProduct = store.CreateProduct
	getProductByID = store.GetProductByID
	listProducts = store.ListProducts
	updateProduct = store.UpdateProduct
	deleteProduct = store.DeleteProduct
}

func TestCreateProductHandler(t *testing.T) {
	e := echo.New()

	t.Run("negative price", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost,
			`{"reference":"REF00001","description":"Water","unit_price":"-1.00"}`)
		require.NoError(t, CreateProductHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "unit_price must not be negative")
	})

	t.Run("owner forced from claims", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		var gotOwner *int
		createProduct = func(_ context.Context, _ database.DB, p *model.Product) (*model.Product, error) {
			gotOwner = p.UserID
			p.ID = 1
			return p, nil
		}
		getProductByID = func(_ context.Context, _ database.DB, userID, id int) (*model.ProductDetail, error) {
			require.Equal(t, 7, userID)
			return &model.ProductDetail{Product: model.Product{ID: id, Reference: "REF00001",
				UnitPrice: decimal.RequireFromString("2.50")}}, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPost,
			`{"reference":"REF00001","description":"Water","unit_price":"2.50"}`)
		require.NoError(t, CreateProductHandler(nil)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, gotOwner)
		require.Equal(t, 7, *gotOwner)
		require.Contains(t, rec.Body.String(), `"unit_price":"2.5"`)
	})
}

func TestGetProductHandler(t *testing.T) {
	e := echo.New()

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		getProductByID = func(context.Context, database.DB, int, int) (*model.ProductDetail, error) {
			return nil, pgx.ErrNoRows
		}
		ctx, rec := newIDCtx(e, http.MethodGet, "9", "")
		require.NoError(t, GetProductHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "product not found")
	})

	t.Run("success nests category", func(t *testing.T) {
		t.Cleanup(restore)
		catID := 4
		getProductByID = func(_ context.Context, _ database.DB, userID, id int) (*model.ProductDetail, error) {
			return &model.ProductDetail{
				Product:             model.Product{ID: id, Reference: "REF00001", CategoryID: &catID},
				CategoryDescription: "Beverages",
			}, nil
		}
		ctx, rec := newIDCtx(e, http.MethodGet, "3", "")
		require.NoError(t, GetProductHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"category":{"id":4,"description":"Beverages"}`)
	})

	t.Run("nil category stays null", func(t *testing.T) {
		t.Cleanup(restore)
		getProductByID = func(_ context.Context, _ database.DB, _, id int) (*model.ProductDetail, error) {
			return &model.ProductDetail{Product: model.Product{ID: id}}, nil
		}
		ctx, rec := newIDCtx(e, http.MethodGet, "3", "")
		require.NoError(t, GetProductHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"category":null`)
	})
}

func TestListProductsHandler(t *testing.T) {
	e := echo.New()

	t.Run("scoped to caller", func(t *testing.T) {
		t.Cleanup(restore)
		var gotUser int
		listProducts = func(_ context.Context, _ database.DB, userID int, search string, page int) ([]model.ProductDetail, int, error) {
			gotUser = userID
			return nil, 0, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodGet, "")
		require.NoError(t, ListProductsHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 7, gotUser)
		require.Contains(t, rec.Body.String(), `"data":[]`)
	})
}

func TestUpdateProductHandler(t *testing.T) {
	e := echo.New()

	t.Run("empty reference", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newIDCtx(e, http.MethodPut, "1", `{"reference":""}`)
		require.NoError(t, UpdateProductHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "reference is not allowed to be empty")
	})

	t.Run("negative price", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newIDCtx(e, http.MethodPut, "1", `{"unit_price":"-0.01"}`)
		require.NoError(t, UpdateProductHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		updateProduct = func(context.Context, database.DB, int, int, store.ProductUpdate) (*model.Product, error) {
			return nil, pgx.ErrNoRows
		}
		ctx, rec := newIDCtx(e, http.MethodPut, "1", `{"description":"New"}`)
		require.NoError(t, UpdateProductHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		updateProduct = func(_ context.Context, _ database.DB, userID, id int, up store.ProductUpdate) (*model.Product, error) {
			require.Equal(t, 7, userID)
			require.NotNil(t, up.Description)
			return &model.Product{ID: id}, nil
		}
		getProductByID = func(_ context.Context, _ database.DB, _, id int) (*model.ProductDetail, error) {
			return &model.ProductDetail{Product: model.Product{ID: id, Description: "New"}}, nil
		}
		ctx, rec := newIDCtx(e, http.MethodPut, "1", `{"description":"New"}`)
		require.NoError(t, UpdateProductHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "New")
	})
}

func TestDeleteProductHandler(t *testing.T) {
	e := echo.New()

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		deleteProduct = func(context.Context, database.DB, int, int) error { return pgx.ErrNoRows }
		ctx, rec := newIDCtx(e, http.MethodDelete, "9", "")
		require.NoError(t, DeleteProductHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		deleteProduct = func(context.Context, database.DB, int, int) error { return errors.New("boom") }
		ctx, rec := newIDCtx(e, http.MethodDelete, "1", "")
		require.NoError(t, DeleteProductHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		deleteProduct = func(context.Context, database.DB, int, int) error { return nil }
		ctx, rec := newIDCtx(e, http.MethodDelete, "1", "")
		require.NoError(t, DeleteProductHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
