// File: internal/store/product_test.go
package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"cart-api/internal/database"
	"cart-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func scanProductDetail(p model.ProductDetail, dest ...any) {
	*dest[0].(*int) = p.ID
	*dest[1].(*string) = p.Reference
	*dest[2].(*string) = p.Description
	*dest[3].(*decimal.Decimal) = p.UnitPrice
	*dest[4].(**int) = p.CategoryID
	*dest[5].(**int) = p.UserID
	*dest[6].(*time.Time) = p.CreatedAt
	*dest[7].(*time.Time) = p.UpdatedAt
	*dest[8].(*string) = p.CategoryDescription
}

func TestProductStore(t *testing.T) {
	now := time.Now().UTC()
	sample := model.ProductDetail{
		Product: model.Product{
			ID:          2,
			Reference:   "REF00001",
			Description: "Water",
			UnitPrice:   decimal.RequireFromString("2.50"),
			CategoryID:  intp(3),
			UserID:      intp(7),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		CategoryDescription: "Beverages",
	}

	/* CreateProduct */
	t.Run("Create ok", func(t *testing.T) {
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, "Water", args[1])
				require.Equal(t, intp(3), args[3])
				return &fakeRow{scanFn: func(dest ...any) {
					*dest[0].(*int) = 2
					*dest[1].(*time.Time) = now
					*dest[2].(*time.Time) = now
				}}
			},
		}
		prod := sample.Product
		prod.ID = 0
		got, err := CreateProduct(context.Background(), p, &prod)
		require.NoError(t, err)
		require.Equal(t, 2, got.ID)
	})

	t.Run("Create err", func(t *testing.T) {
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRow{scanErr: errors.New("insert fail")}
			},
		}
		prod := sample.Product
		_, err := CreateProduct(context.Background(), p, &prod)
		require.Error(t, err)
	})

	/* GetProductByID */
	t.Run("Get ok with category", func(t *testing.T) {
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, []any{2, 7}, args)
				return &fakeRow{scanFn: func(dest ...any) { scanProductDetail(sample, dest...) }}
			},
		}
		got, err := GetProductByID(context.Background(), p, 7, 2)
		require.NoError(t, err)
		require.Equal(t, "Beverages", got.CategoryDescription)
		require.True(t, got.UnitPrice.Equal(decimal.RequireFromString("2.5")))
	})

	t.Run("Get ok without category", func(t *testing.T) {
		orphan := sample
		orphan.CategoryID = nil
		orphan.CategoryDescription = ""
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRow{scanFn: func(dest ...any) { scanProductDetail(orphan, dest...) }}
			},
		}
		got, err := GetProductByID(context.Background(), p, 7, 2)
		require.NoError(t, err)
		require.Nil(t, got.CategoryID)
		require.Empty(t, got.CategoryDescription)
	})

	t.Run("Get not found", func(t *testing.T) {
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := GetProductByID(context.Background(), p, 7, 99)
		require.ErrorIs(t, err, pgx.ErrNoRows)
	})

	/* ListProducts */
	t.Run("List ok", func(t *testing.T) {
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, []any{7, "wat"}, args)
				return countRow(3)
			},
			QueryFn: func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
				require.Equal(t, []any{7, "wat", PageLimit, 0}, args)
				return &fakeRows{
					rows:   3,
					scanFn: func(_ int, dest ...any) { scanProductDetail(sample, dest...) },
				}, nil
			},
		}
		list, count, err := ListProducts(context.Background(), p, 7, "wat", 1)
		require.NoError(t, err)
		require.Equal(t, 3, count)
		require.Len(t, list, 3)
	})

	t.Run("List scan err", func(t *testing.T) {
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row { return countRow(1) },
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return &fakeRows{rows: 1, scanErr: errors.New("scan fail")}, nil
			},
		}
		_, _, err := ListProducts(context.Background(), p, 7, "", 1)
		require.Error(t, err)
	})

	/* UpdateProduct */
	t.Run("Update ok", func(t *testing.T) {
		price := decimal.RequireFromString("3.10")
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, 2, args[0])
				require.Equal(t, 7, args[1])
				require.Equal(t, &price, args[4])
				return &fakeRow{scanFn: func(dest ...any) {
					*dest[0].(*int) = sample.ID
					*dest[1].(*string) = sample.Reference
					*dest[2].(*string) = sample.Description
					*dest[3].(*decimal.Decimal) = price
					*dest[4].(**int) = sample.CategoryID
					*dest[5].(**int) = sample.UserID
					*dest[6].(*time.Time) = now
					*dest[7].(*time.Time) = now
				}}
			},
		}
		got, err := UpdateProduct(context.Background(), p, 7, 2, ProductUpdate{UnitPrice: &price})
		require.NoError(t, err)
		require.True(t, got.UnitPrice.Equal(price))
	})

	t.Run("Update not found", func(t *testing.T) {
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := UpdateProduct(context.Background(), p, 7, 99, ProductUpdate{})
		require.ErrorIs(t, err, pgx.ErrNoRows)
	})

	/* DeleteProduct */
	t.Run("Delete ok", func(t *testing.T) {
		p := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
				require.Equal(t, []any{2, 7}, args)
				return pgconn.NewCommandTag("DELETE 1"), nil
			},
		}
		require.NoError(t, DeleteProduct(context.Background(), p, 7, 2))
	})

	t.Run("Delete no rows", func(t *testing.T) {
		p := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("DELETE 0"), nil
			},
		}
		err := DeleteProduct(context.Background(), p, 7, 2)
		require.ErrorIs(t, err, pgx.ErrNoRows)
	})
}
