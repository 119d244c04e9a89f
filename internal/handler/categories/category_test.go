package categories

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
	req := httptest.NewRequest(method, "/category/"+id, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/category/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	c.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: 7})
	return c, rec
}

func restore() {
	createCategory = store.CreateCategory
	getCategoryByID = store.GetCategoryByID
	listCategories = store.ListCategories
	updateCategory = store.UpdateCategory
	deleteCategory = store.DeleteCategory
}

func TestCreateCategoryHandler(t *testing.T) {
	e := echo.New()

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, "{")
		require.NoError(t, CreateCategoryHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("owner forced from claims", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		var gotOwner *int
		createCategory = func(_ context.Context, _ database.DB, cat *model.Category) (*model.Category, error) {
			gotOwner = cat.UserID
			cat.ID = 1
			return cat, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"description":"Beverages"}`)
		require.NoError(t, CreateCategoryHandler(nil)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, gotOwner)
		require.Equal(t, 7, *gotOwner)
	})
}

func TestListCategoriesHandler(t *testing.T) {
	e := echo.New()

	t.Run("scoped to caller", func(t *testing.T) {
		t.Cleanup(restore)
		var gotUser int
		listCategories = func(_ context.Context, _ database.DB, userID int, _ string, _ int) ([]model.Category, int, error) {
			gotUser = userID
			return []model.Category{{ID: 1, Description: "Beverages"}}, 1, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodGet, "")
		require.NoError(t, ListCategoriesHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 7, gotUser)
		require.Contains(t, rec.Body.String(), `"count":1`)
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		listCategories = func(context.Context, database.DB, int, string, int) ([]model.Category, int, error) {
			return nil, 0, errors.New("boom")
		}
		ctx, rec := newJSONCtx(e, http.MethodGet, "")
		require.NoError(t, ListCategoriesHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetCategoryHandler(t *testing.T) {
	e := echo.New()

	t.Run("bad id", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newIDCtx(e, http.MethodGet, "abc", "")
		require.NoError(t, GetCategoryHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found hides ownership", func(t *testing.T) {
		t.Cleanup(restore)
		getCategoryByID = func(context.Context, database.DB, int, int) (*model.Category, error) {
			return nil, pgx.ErrNoRows
		}
		ctx, rec := newIDCtx(e, http.MethodGet, "9", "")
		require.NoError(t, GetCategoryHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "category not found")
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		getCategoryByID = func(_ context.Context, _ database.DB, userID, id int) (*model.Category, error) {
			require.Equal(t, 7, userID)
			return &model.Category{ID: id, Description: "Beverages"}, nil
		}
		ctx, rec := newIDCtx(e, http.MethodGet, "3", "")
		require.NoError(t, GetCategoryHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"id":3`)
	})
}

func TestUpdateCategoryHandler(t *testing.T) {
	e := echo.New()

	t.Run("empty provided field", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newIDCtx(e, http.MethodPut, "1", `{"description":""}`)
		require.NoError(t, UpdateCategoryHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "description is not allowed to be empty")
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		updateCategory = func(context.Context, database.DB, int, int, store.CategoryUpdate) (*model.Category, error) {
			return nil, pgx.ErrNoRows
		}
		ctx, rec := newIDCtx(e, http.MethodPut, "1", `{"description":"Food"}`)
		require.NoError(t, UpdateCategoryHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("success returns updated object", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		updateCategory = func(_ context.Context, _ database.DB, userID, id int, up store.CategoryUpdate) (*model.Category, error) {
			require.Equal(t, 7, userID)
			require.NotNil(t, up.Description)
			return &model.Category{ID: id, Description: *up.Description}, nil
		}
		ctx, rec := newIDCtx(e, http.MethodPut, "1", `{"description":"Food"}`)
		require.NoError(t, UpdateCategoryHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Food")
	})
}

func TestDeleteCategoryHandler(t *testing.T) {
	e := echo.New()

	t.Run("repeat delete stays 404", func(t *testing.T) {
		t.Cleanup(restore)
		deleteCategory = func(context.Context, database.DB, int, int) error { return pgx.ErrNoRows }
		for i := 0; i < 2; i++ {
			ctx, rec := newIDCtx(e, http.MethodDelete, "9", "")
			require.NoError(t, DeleteCategoryHandler(nil)(ctx))
			require.Equal(t, http.StatusNotFound, rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		deleteCategory = func(context.Context, database.DB, int, int) error { return nil }
		ctx, rec := newIDCtx(e, http.MethodDelete, "1", "")
		require.NoError(t, DeleteCategoryHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Body.String())
	})
}
