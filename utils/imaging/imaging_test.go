package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/muhammadheryan/eyewear-store/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encode(t *testing.T, img image.Image) []byte {
	t.Helper()
	data, err := EncodePNG(img)
	require.NoError(t, err)
	return data
}

func decodeNRGBA(t *testing.T, data []byte) *image.NRGBA {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	out, ok := img.(*image.NRGBA)
	require.True(t, ok, "expected NRGBA, got %T", img)
	return out
}

func TestRemoveBackground(t *testing.T) {
	t.Run("nothing above threshold keeps alpha", func(t *testing.T) {
		src := solid(4, 3, color.NRGBA{R: 240, G: 240, B: 240, A: 255})
		src.Set(1, 1, color.NRGBA{R: 255, G: 255, B: 10, A: 200})
		src.Set(2, 2, color.NRGBA{R: 12, G: 34, B: 56, A: 128})

		out, err := RemoveBackground(encode(t, src), DefaultThreshold)
		require.NoError(t, err)

		got := decodeNRGBA(t, out)
		assert.Equal(t, src.Pix, got.Pix)
	})

	t.Run("all white becomes transparent", func(t *testing.T) {
		src := solid(5, 5, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

		out, err := RemoveBackground(encode(t, src), DefaultThreshold)
		require.NoError(t, err)

		got := decodeNRGBA(t, out)
		for i := 3; i < len(got.Pix); i += 4 {
			assert.Zero(t, got.Pix[i])
		}
	})

	t.Run("only bright pixels are cleared", func(t *testing.T) {
		src := solid(2, 1, color.NRGBA{R: 241, G: 250, B: 255, A: 255})
		src.Set(1, 0, color.NRGBA{R: 241, G: 240, B: 255, A: 255})

		out, err := RemoveBackground(encode(t, src), DefaultThreshold)
		require.NoError(t, err)

		got := decodeNRGBA(t, out)
		assert.Equal(t, uint8(0), got.NRGBAAt(0, 0).A)
		assert.Equal(t, uint8(255), got.NRGBAAt(1, 0).A)
	})

	t.Run("jpeg input is re-encoded as png", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, solid(8, 8, color.White), &jpeg.Options{Quality: 100}))

		out, err := RemoveBackground(buf.Bytes(), DefaultThreshold)
		require.NoError(t, err)

		_, format, err := Inspect(out)
		require.NoError(t, err)
		assert.Equal(t, "png", format)
	})

	t.Run("unreadable input", func(t *testing.T) {
		_, err := RemoveBackground([]byte("<html>"), DefaultThreshold)
		assert.Error(t, err)
	})
}

func TestDataURL(t *testing.T) {
	data := encode(t, solid(1, 1, color.Black))
	url := DataURL("image/png", data)
	assert.True(t, bytes.HasPrefix([]byte(url), []byte("data:image/png;base64,")))

	contentType, got, err := ParseDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, data, got)

	for _, bad := range []string{"image/png;base64,AAAA", "data:image/png;base64", "data:image/png,AAAA", "data:image/png;base64,@@"} {
		_, _, err := ParseDataURL(bad)
		assert.Error(t, err, bad)
	}
}

func TestInspect(t *testing.T) {
	cfg, format, err := Inspect(encode(t, solid(7, 3, color.Black)))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 7, cfg.Width)
	assert.Equal(t, 3, cfg.Height)
	assert.Equal(t, "image/png", ContentType(format, nil))

	_, _, err = Inspect([]byte("not an image"))
	assert.Error(t, err)
}

func TestPlacement(t *testing.T) {
	tests := []struct {
		name   string
		w, h   float64
		aspect float64
		state  model.TryOnState
		want   model.OverlayPlacement
	}{
		{
			name:   "defaults",
			w:      400,
			h:      300,
			aspect: 2,
			state:  model.DefaultTryOnState(),
			want:   model.OverlayPlacement{CenterX: 200, CenterY: 150, Width: 100, Height: 50},
		},
		{
			name:   "scaled and rotated",
			w:      400,
			h:      300,
			aspect: 2,
			state:  model.TryOnState{OffsetX: 25, OffsetY: 10, Scale: 2, RotationDegrees: -15},
			want:   model.OverlayPlacement{CenterX: 100, CenterY: 30, Width: 200, Height: 100, RotationDegrees: -15},
		},
		{
			name:   "offsets outside the container are kept",
			w:      200,
			h:      100,
			aspect: 0,
			state:  model.TryOnState{OffsetX: 150, OffsetY: -20, Scale: 0.5},
			want:   model.OverlayPlacement{CenterX: 300, CenterY: -20, Width: 25, Height: 25},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Placement(tt.w, tt.h, tt.aspect, tt.state, 25)
			assert.InDelta(t, tt.want.CenterX, got.CenterX, 1e-9)
			assert.InDelta(t, tt.want.CenterY, got.CenterY, 1e-9)
			assert.InDelta(t, tt.want.Width, got.Width, 1e-9)
			assert.InDelta(t, tt.want.Height, got.Height, 1e-9)
			assert.Equal(t, tt.want.RotationDegrees, got.RotationDegrees)
		})
	}
}

func TestRender(t *testing.T) {
	blue := color.RGBA{B: 255, A: 255}
	red := color.RGBA{R: 255, A: 255}
	photo := solid(100, 100, blue)
	overlay := solid(20, 10, red)

	tests := []struct {
		name     string
		rotation float64
		inside   image.Point
		outside  image.Point
	}{
		{name: "upright", inside: image.Pt(60, 50), outside: image.Pt(50, 60)},
		{name: "quarter turn", rotation: 90, inside: image.Pt(50, 60), outside: image.Pt(60, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := model.TryOnState{OffsetX: 50, OffsetY: 50, Scale: 1, RotationDegrees: tt.rotation}
			p := Placement(100, 100, 2, state, 25)

			out := Render(photo, overlay, p)
			require.Equal(t, photo.Bounds(), out.Bounds())
			assert.Equal(t, red, out.RGBAAt(50, 50))
			assert.Equal(t, red, out.RGBAAt(tt.inside.X, tt.inside.Y))
			assert.Equal(t, blue, out.RGBAAt(tt.outside.X, tt.outside.Y))
			assert.Equal(t, blue, out.RGBAAt(2, 2))
		})
	}

	t.Run("zero size overlay leaves the photo", func(t *testing.T) {
		out := Render(photo, overlay, model.OverlayPlacement{CenterX: 50, CenterY: 50})
		assert.Equal(t, blue, out.RGBAAt(50, 50))
	})
}
