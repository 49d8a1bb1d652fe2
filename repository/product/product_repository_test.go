package product_test

import (
	"context"
	"testing"

	"github.com/muhammadheryan/eyewear-store/model"
	productrepo "github.com/muhammadheryan/eyewear-store/repository/product"
	"github.com/muhammadheryan/eyewear-store/repository/sqlitetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(id, name string, price string) *model.Product {
	return &model.Product{
		ID:         id,
		Name:       name,
		Brand:      "Lenskart",
		Price:      decimal.RequireFromString(price),
		Stock:      10,
		ImageURL:   "https://cdn.example.com/" + id + ".png",
		CategoryID: "cat-eyeglasses",
		FrameType:  model.FrameTypeHalfRim,
		LensType:   model.LensTypeBlueCut,
	}
}

func TestProductRepository_CRUD(t *testing.T) {
	db := sqlitetest.New(t)
	repo := productrepo.NewProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newProduct("p2", "Zeta Round", "1200")))
	require.NoError(t, repo.Create(ctx, newProduct("p1", "Alpha Aviator", "499.99")))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Alpha Aviator", items[0].Name)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("499.99")))

	got, err := repo.GetByID(ctx, "p2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.FrameTypeHalfRim, got.FrameType)

	got.Price = decimal.NewFromInt(999)
	got.Offer = "10% off"
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByID(ctx, "p2")
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(999)))
	assert.Equal(t, "10% off", updated.Offer)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repo.Delete(ctx, "p2"))
	missing, err := repo.GetByID(ctx, "p2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepository_GetByIDs(t *testing.T) {
	db := sqlitetest.New(t)
	repo := productrepo.NewProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newProduct("p1", "A", "100")))
	require.NoError(t, repo.Create(ctx, newProduct("p2", "B", "200")))
	require.NoError(t, repo.Create(ctx, newProduct("p3", "C", "300")))

	items, err := repo.GetByIDs(ctx, []string{"p1", "p3", "unknown"})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	empty, err := repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
