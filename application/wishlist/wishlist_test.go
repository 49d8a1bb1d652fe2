package wishlist_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	appwishlist "github.com/muhammadheryan/eyewear-store/application/wishlist"
	"github.com/muhammadheryan/eyewear-store/constant"
	productmocks "github.com/muhammadheryan/eyewear-store/mocks/repository/product"
	"github.com/muhammadheryan/eyewear-store/model"
	"github.com/muhammadheryan/eyewear-store/repository/kv"
	cerr "github.com/muhammadheryan/eyewear-store/utils/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) (appwishlist.WishlistApp, *productmocks.ProductRepository) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	productRepo := productmocks.NewProductRepository(t)
	return appwishlist.NewWishlistApp(kv.NewRedisStore(client), productRepo), productRepo
}

func TestWishlistApp_Toggle(t *testing.T) {
	app, _ := newApp(t)
	ctx := context.Background()

	added, err := app.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = app.Toggle(ctx, "u1", "p2")
	require.NoError(t, err)
	assert.True(t, added)

	ok, err := app.IsWishlisted(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	count, err := app.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	added, err = app.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, added)

	items, err := app.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []model.WishlistItem{{ProductID: "p2"}}, items)
}

func TestWishlistApp_RequiresUser(t *testing.T) {
	app, _ := newApp(t)

	_, err := app.Toggle(context.Background(), "", "p1")
	assert.True(t, cerr.IsType(err, constant.ErrUnauthorize))

	_, err = app.Toggle(context.Background(), "u1", "")
	assert.True(t, cerr.IsType(err, constant.ErrInvalidRequest))
}

func TestWishlistApp_View(t *testing.T) {
	app, productRepo := newApp(t)
	ctx := context.Background()

	_, err := app.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	_, err = app.Toggle(ctx, "u1", "gone")
	require.NoError(t, err)

	productRepo.
		On("GetByIDs", mock.Anything, []string{"p1", "gone"}).
		Return([]model.Product{{ID: "p1", Name: "Round Classic"}}, nil).
		Once()

	view, err := app.View(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Count)
	assert.Equal(t, "Round Classic", view.Items[0].Name)
}
