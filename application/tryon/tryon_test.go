package tryon_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/muhammadheryan/eyewear-store/application/tryon"
	"github.com/muhammadheryan/eyewear-store/cmd/config"
	"github.com/muhammadheryan/eyewear-store/constant"
	productmocks "github.com/muhammadheryan/eyewear-store/mocks/repository/product"
	"github.com/muhammadheryan/eyewear-store/model"
	"github.com/muhammadheryan/eyewear-store/repository/kv"
	cerr "github.com/muhammadheryan/eyewear-store/utils/errors"
	"github.com/muhammadheryan/eyewear-store/utils/imaging"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const userID = "u1"

var testConfig = config.TryOnConfig{
	BaseWidthPercent:    25,
	BrightnessThreshold: 240,
	FetchTimeout:        time.Second,
}

func pngOf(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type env struct {
	mr       *miniredis.Miniredis
	store    kv.Store
	products *productmocks.ProductRepository
	app      tryon.TryOnApp
}

func newEnv(t *testing.T) *env {
	return newEnvWithConfig(t, testConfig)
}

func newEnvWithConfig(t *testing.T, cfg config.TryOnConfig) *env {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	e := &env{
		mr:       mr,
		store:    kv.NewRedisStore(client),
		products: productmocks.NewProductRepository(t),
	}
	e.app = tryon.NewTryOnApp(cfg, e.store, e.products, nil)
	t.Cleanup(e.app.Close)
	return e
}

func (e *env) subscribers() int {
	return e.mr.PubSubNumSub("kv:changes")["kv:changes"]
}

func (e *env) open(t *testing.T) *tryon.Compositor {
	c, err := e.app.Open(context.Background(), userID)
	require.NoError(t, err)
	return c
}

func TestTryOnApp_Open(t *testing.T) {
	t.Run("requires a user", func(t *testing.T) {
		e := newEnv(t)
		_, err := e.app.Open(context.Background(), "")
		assert.True(t, cerr.IsType(err, constant.ErrUnauthorize))
	})

	t.Run("defaults when nothing is stored", func(t *testing.T) {
		e := newEnv(t)
		c := e.open(t)
		assert.Equal(t, model.DefaultTryOnState(), c.State())

		again := e.open(t)
		assert.Same(t, c, again)
	})

	t.Run("restores stored state", func(t *testing.T) {
		e := newEnv(t)
		stored := model.TryOnState{OffsetX: 10, OffsetY: 20, Scale: 1.5, RotationDegrees: 15, RemoveBackground: true}
		require.NoError(t, e.store.Set(context.Background(), "tryon:"+userID, stored))

		assert.Equal(t, stored, e.open(t).State())
	})

	t.Run("unreadable stored state falls back to defaults", func(t *testing.T) {
		e := newEnv(t)
		require.NoError(t, e.store.Set(context.Background(), "tryon:"+userID, "garbage"))

		assert.Equal(t, model.DefaultTryOnState(), e.open(t).State())
	})
}

func TestCompositor_MutationsArePersisted(t *testing.T) {
	e := newEnv(t)
	c := e.open(t)
	ctx := context.Background()

	require.NoError(t, c.SetOffset(ctx, 30, 70))
	require.NoError(t, c.SetScale(ctx, 3))
	require.NoError(t, c.Rotate(ctx, 1))
	require.NoError(t, c.Rotate(ctx, 1))
	require.NoError(t, c.Rotate(ctx, -1))

	want := model.TryOnState{OffsetX: 30, OffsetY: 70, Scale: 3, RotationDegrees: 5}
	assert.Equal(t, want, c.State())

	var stored model.TryOnState
	found, err := e.store.Get(ctx, "tryon:"+userID, &stored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, stored)

	require.NoError(t, c.ResetRotation(ctx))
	assert.Zero(t, c.State().RotationDegrees)

	require.NoError(t, c.SetRotation(ctx, -725))
	assert.Equal(t, -725.0, c.State().RotationDegrees)

	assert.True(t, cerr.IsType(c.SetScale(ctx, 0), constant.ErrInvalidRequest))
}

func TestCompositor_LoadPhoto(t *testing.T) {
	e := newEnv(t)
	c := e.open(t)

	err := c.LoadPhoto(context.Background(), []byte("definitely not an image"))
	assert.True(t, cerr.IsType(err, constant.ErrImageDecode))
	assert.Nil(t, c.State().UserPhoto)

	photo := pngOf(t, 4, 4, color.Black)
	require.NoError(t, c.LoadPhoto(context.Background(), photo))

	stored := c.State().UserPhoto
	require.NotNil(t, stored)
	assert.True(t, strings.HasPrefix(*stored, "data:image/png;base64,"))
	_, data, err := imaging.ParseDataURL(*stored)
	require.NoError(t, err)
	assert.Equal(t, photo, data)
}

func TestCompositor_Drag(t *testing.T) {
	e := newEnv(t)
	c := e.open(t)
	ctx := context.Background()

	// no active drag
	require.NoError(t, c.DragMove(ctx, 500, 500, 400, 200))
	assert.Equal(t, 50.0, c.State().OffsetX)

	require.NoError(t, c.BeginDrag(100, 100))
	assert.True(t, c.View().Dragging)

	require.NoError(t, c.DragMove(ctx, 140, 100, 400, 200))
	assert.InDelta(t, 60, c.State().OffsetX, 1e-9)
	assert.InDelta(t, 50, c.State().OffsetY, 1e-9)

	// measured from the drag start, not the previous move
	require.NoError(t, c.DragMove(ctx, 120, 80, 400, 200))
	assert.InDelta(t, 55, c.State().OffsetX, 1e-9)
	assert.InDelta(t, 40, c.State().OffsetY, 1e-9)

	c.EndDrag()
	assert.False(t, c.View().Dragging)
	require.NoError(t, c.DragMove(ctx, 400, 400, 400, 200))
	assert.InDelta(t, 55, c.State().OffsetX, 1e-9)

	assert.True(t, cerr.IsType(c.DragMove(ctx, 1, 1, 0, 200), constant.ErrInvalidRequest))
}

func TestCompositor_Reset(t *testing.T) {
	e := newEnv(t)
	c := e.open(t)
	ctx := context.Background()

	require.NoError(t, c.LoadPhoto(ctx, pngOf(t, 2, 2, color.White)))
	require.NoError(t, c.SetScale(ctx, 2))

	err := c.Reset(ctx, false)
	assert.True(t, cerr.IsType(err, constant.ErrConfirmationRequired))
	assert.Equal(t, 2.0, c.State().Scale)

	require.NoError(t, c.Reset(ctx, true))
	assert.Equal(t, model.DefaultTryOnState(), c.State())

	var stored model.TryOnState
	found, err := e.store.Get(ctx, "tryon:"+userID, &stored)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCompositor_BackgroundRemoval(t *testing.T) {
	e := newEnv(t)
	c := e.open(t)
	ctx := context.Background()

	white := pngOf(t, 3, 3, color.White)
	e.products.On("GetByID", mock.Anything, "p1").
		Return(&model.Product{ID: "p1", ImageURL: imaging.DataURL("image/png", white)}, nil)

	ov, err := c.Overlay(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ov.Filtered)
	assert.Equal(t, white, ov.Data)

	enabled, err := c.ToggleBackgroundRemoval(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)

	ov, err = c.Overlay(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ov.Filtered)
	assert.Equal(t, "image/png", ov.ContentType)
	img, err := png.Decode(bytes.NewReader(ov.Data))
	require.NoError(t, err)
	_, _, _, a := img.At(1, 1).RGBA()
	assert.Zero(t, a)

	enabled, err = c.ToggleBackgroundRemoval(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)

	ov, err = c.Overlay(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, white, ov.Data)
}

func TestCompositor_OverlayFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("not really a png"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	e := newEnv(t)
	c := e.open(t)
	ctx := context.Background()
	_, err := c.ToggleBackgroundRemoval(ctx)
	require.NoError(t, err)

	t.Run("unreachable source", func(t *testing.T) {
		e.products.On("GetByID", mock.Anything, "gone").
			Return(&model.Product{ID: "gone", ImageURL: srv.URL + "/gone.png"}, nil)

		ov, err := c.Overlay(ctx, "gone")
		require.NoError(t, err)
		assert.Empty(t, ov.Data)
		assert.Equal(t, srv.URL+"/gone.png", ov.SourceURL)
	})

	t.Run("undecodable source keeps the original", func(t *testing.T) {
		e.products.On("GetByID", mock.Anything, "broken").
			Return(&model.Product{ID: "broken", ImageURL: srv.URL + "/broken.png"}, nil)

		ov, err := c.Overlay(ctx, "broken")
		require.NoError(t, err)
		assert.False(t, ov.Filtered)
		assert.Equal(t, []byte("not really a png"), ov.Data)
		assert.Equal(t, "image/png", ov.ContentType)
	})

	t.Run("unknown product", func(t *testing.T) {
		e.products.On("GetByID", mock.Anything, "nope").Return(nil, nil)

		_, err := c.Overlay(ctx, "nope")
		assert.True(t, cerr.IsType(err, constant.ErrNotFound))
	})
}

func TestCompositor_Render(t *testing.T) {
	e := newEnv(t)
	c := e.open(t)
	ctx := context.Background()

	e.products.On("GetByID", mock.Anything, "p1").
		Return(&model.Product{ID: "p1", ImageURL: imaging.DataURL("image/png", pngOf(t, 20, 10, color.NRGBA{R: 255, A: 255}))}, nil)

	_, err := c.Render(ctx, "p1")
	assert.True(t, cerr.IsType(err, constant.ErrInvalidRequest))

	require.NoError(t, c.LoadPhoto(ctx, pngOf(t, 80, 40, color.NRGBA{B: 255, A: 255})))
	out, err := c.Render(ctx, "p1")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 80, 40), img.Bounds())

	r, _, b, _ := img.At(40, 20).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, b)
	r, _, b, _ = img.At(2, 2).RGBA()
	assert.Zero(t, r)
	assert.Equal(t, uint32(0xffff), b)

	p := c.Placement(80, 40, 2)
	assert.Equal(t, model.OverlayPlacement{CenterX: 40, CenterY: 20, Width: 20, Height: 10}, p)
}

func TestCompositor_ReloadsOnExternalChange(t *testing.T) {
	e := newEnv(t)
	c := e.open(t)

	other := model.TryOnState{OffsetX: 12, OffsetY: 34, Scale: 2, RotationDegrees: 90}
	require.NoError(t, e.store.Set(context.Background(), "tryon:"+userID, other))

	assert.Eventually(t, func() bool { return c.State() == other }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, e.store.Remove(context.Background(), "tryon:"+userID))
	assert.Eventually(t, func() bool { return c.State() == model.DefaultTryOnState() }, 2*time.Second, 10*time.Millisecond)
}

func TestTryOnApp_SignOutClosesCompositor(t *testing.T) {
	e := newEnv(t)
	c := e.open(t)
	require.NoError(t, c.BeginDrag(1, 1))

	e.app.HandleAuthChange(model.AuthChange{Event: constant.AuthEventSignedOut, UserID: userID})

	assert.False(t, c.View().Dragging)
	assert.True(t, cerr.IsType(c.SetScale(context.Background(), 2), constant.ErrNotFound))

	reopened := e.open(t)
	assert.NotSame(t, c, reopened)
}

func TestTryOnApp_SharesOneSubscription(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	users := []string{"u1", "u2", "u3", "u4", "u5"}
	for _, id := range users {
		_, err := e.app.Open(ctx, id)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, e.subscribers())

	other := model.TryOnState{OffsetX: 10, OffsetY: 20, Scale: 1.5}
	require.NoError(t, e.store.Set(ctx, "tryon:u3", other))
	c3, err := e.app.Open(ctx, "u3")
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return c3.State() == other }, 2*time.Second, 10*time.Millisecond)

	for _, id := range users {
		e.app.Leave(id)
	}
	assert.Eventually(t, func() bool { return e.subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)

	// reopening subscribes again
	_, err = e.app.Open(ctx, "u1")
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return e.subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestTryOnApp_EvictsIdleCompositors(t *testing.T) {
	cfg := testConfig
	cfg.IdleTimeout = 50 * time.Millisecond
	e := newEnvWithConfig(t, cfg)

	c := e.open(t)
	require.NoError(t, c.SetScale(context.Background(), 1.5))
	assert.Equal(t, 1, e.subscribers())

	assert.Eventually(t, func() bool {
		return cerr.IsType(c.SetRotation(context.Background(), 10), constant.ErrNotFound)
	}, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return e.subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)

	// the persisted state survives eviction
	reopened := e.open(t)
	assert.NotSame(t, c, reopened)
	assert.Equal(t, 1.5, reopened.State().Scale)
}
