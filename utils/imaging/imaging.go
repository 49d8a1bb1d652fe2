// Package imaging holds the pixel work behind the try-on view: decoding
// uploaded photos, stripping light backgrounds from frame images and
// compositing a frame over a photo.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"net/http"
	"strings"

	"github.com/muhammadheryan/eyewear-store/model"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	_ "golang.org/x/image/webp"
)

// DefaultThreshold is the brightness above which a channel counts as white.
const DefaultThreshold uint8 = 240

// Inspect decodes only the header of data. It fails for anything the
// registered decoders do not accept.
func Inspect(data []byte) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("decode image config: %w", err)
	}
	return cfg, format, nil
}

// ContentType maps a decoder format name to its MIME type.
func ContentType(format string, data []byte) string {
	switch format {
	case "png", "jpeg", "gif", "webp", "bmp":
		return "image/" + format
	}
	return http.DetectContentType(data)
}

func DataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURL accepts only base64 data URLs.
func ParseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data url")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data url")
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("data url is not base64")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data url: %w", err)
	}
	return contentType, data, nil
}

func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// RemoveBackground makes every pixel whose red, green and blue values all
// exceed threshold fully transparent and returns the result as PNG. Other
// pixels keep their color and alpha.
func RemoveBackground(data []byte, threshold uint8) ([]byte, error) {
	src, err := Decode(data)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	for i := 0; i+3 < len(dst.Pix); i += 4 {
		if dst.Pix[i] > threshold && dst.Pix[i+1] > threshold && dst.Pix[i+2] > threshold {
			dst.Pix[i+3] = 0
		}
	}

	return EncodePNG(dst)
}

// Placement positions the overlay inside a container. The center sits at the
// state offsets (percent of the container) and the width is basePercent of
// the container width times the scale. aspect is overlay width over height.
func Placement(containerW, containerH, aspect float64, state model.TryOnState, basePercent float64) model.OverlayPlacement {
	width := containerW * basePercent / 100 * state.Scale
	height := width
	if aspect > 0 {
		height = width / aspect
	}
	return model.OverlayPlacement{
		CenterX:         containerW * state.OffsetX / 100,
		CenterY:         containerH * state.OffsetY / 100,
		Width:           width,
		Height:          height,
		RotationDegrees: state.RotationDegrees,
	}
}

// Render draws overlay onto a copy of photo at p, where p is expressed in
// photo pixels.
func Render(photo, overlay image.Image, p model.OverlayPlacement) *image.RGBA {
	pb := photo.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, pb.Dx(), pb.Dy()))
	draw.Draw(dst, dst.Bounds(), photo, pb.Min, draw.Src)

	ob := overlay.Bounds()
	if ob.Empty() || p.Width <= 0 || p.Height <= 0 {
		return dst
	}

	sw, sh := float64(ob.Dx()), float64(ob.Dy())
	kx, ky := p.Width/sw, p.Height/sh
	rad := p.RotationDegrees * math.Pi / 180
	sin, cos := math.Sincos(rad)

	// source center maps to the placement center, then scale and rotate
	scx := float64(ob.Min.X) + sw/2
	scy := float64(ob.Min.Y) + sh/2
	a, b := kx*cos, -ky*sin
	d, e := kx*sin, ky*cos
	s2d := f64.Aff3{
		a, b, p.CenterX - (a*scx + b*scy),
		d, e, p.CenterY - (d*scx + e*scy),
	}

	draw.BiLinear.Transform(dst, s2d, overlay, ob, draw.Over, nil)
	return dst
}

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
