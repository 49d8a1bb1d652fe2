package tryon

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"sync"

	"github.com/muhammadheryan/eyewear-store/cmd/config"
	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
	"github.com/muhammadheryan/eyewear-store/repository/kv"
	productRepo "github.com/muhammadheryan/eyewear-store/repository/product"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	"github.com/muhammadheryan/eyewear-store/utils/imaging"
	"github.com/muhammadheryan/eyewear-store/utils/logger"
	"go.uber.org/zap"
)

const (
	ScaleMin     = 0.5
	ScaleMax     = 2.5
	RotationStep = 5.0

	maxOverlayBytes = 10 << 20
)

type dragRef struct {
	pointerX float64
	pointerY float64
	offsetX  float64
	offsetY  float64
}

type cachedOverlay struct {
	original    []byte
	contentType string
	filtered    []byte
}

// Compositor holds one user's try-on state. It is safe for concurrent use.
type Compositor struct {
	userID      string
	key         string
	cfg         config.TryOnConfig
	store       kv.Store
	productRepo productRepo.ProductRepository
	httpClient  *http.Client

	mu       sync.Mutex
	state    model.TryOnState
	drag     *dragRef
	overlays map[string]*cachedOverlay
	closed   bool
}

func (c *Compositor) UserID() string { return c.userID }

func (c *Compositor) State() model.TryOnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Compositor) View() *model.TryOnView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &model.TryOnView{
		State:    c.state,
		Dragging: c.drag != nil,
		ScaleMin: ScaleMin,
		ScaleMax: ScaleMax,
		Step:     RotationStep,
	}
}

// LoadPhoto replaces the user photo. Anything the registered image decoders
// reject fails with ErrImageDecode.
func (c *Compositor) LoadPhoto(ctx context.Context, data []byte) error {
	_, format, err := imaging.Inspect(data)
	if err != nil {
		logger.Info("[LoadPhoto] undecodable photo", zap.String("user_id", c.userID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrImageDecode)
	}
	photo := imaging.DataURL(imaging.ContentType(format, data), data)

	return c.mutate(ctx, "[LoadPhoto]", func(s *model.TryOnState) {
		s.UserPhoto = &photo
	})
}

// BeginDrag records the pointer position and the current offset as the
// reference every following move is measured against.
func (c *Compositor) BeginDrag(x, y float64) error {
	if !finite(x, y) {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	c.drag = &dragRef{pointerX: x, pointerY: y, offsetX: c.state.OffsetX, offsetY: c.state.OffsetY}
	return nil
}

// DragMove sets the offset to the drag start offset plus the pointer delta
// as a percentage of the container. Moves without an active drag are
// ignored.
func (c *Compositor) DragMove(ctx context.Context, x, y, containerW, containerH float64) error {
	if !finite(x, y, containerW, containerH) || containerW <= 0 || containerH <= 0 {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	c.mu.Lock()
	ref := c.drag
	c.mu.Unlock()
	if ref == nil {
		return nil
	}

	offsetX := ref.offsetX + (x-ref.pointerX)/containerW*100
	offsetY := ref.offsetY + (y-ref.pointerY)/containerH*100
	return c.mutate(ctx, "[DragMove]", func(s *model.TryOnState) {
		s.OffsetX = offsetX
		s.OffsetY = offsetY
	})
}

func (c *Compositor) EndDrag() {
	c.mu.Lock()
	c.drag = nil
	c.mu.Unlock()
}

func (c *Compositor) SetOffset(ctx context.Context, x, y float64) error {
	if !finite(x, y) {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return c.mutate(ctx, "[SetOffset]", func(s *model.TryOnState) {
		s.OffsetX = x
		s.OffsetY = y
	})
}

// SetScale stores the scale as given. The 0.5 to 2.5 range is enforced by
// the input controls, not here.
func (c *Compositor) SetScale(ctx context.Context, scale float64) error {
	if !finite(scale) || scale <= 0 {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return c.mutate(ctx, "[SetScale]", func(s *model.TryOnState) {
		s.Scale = scale
	})
}

func (c *Compositor) SetRotation(ctx context.Context, degrees float64) error {
	if !finite(degrees) {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return c.mutate(ctx, "[SetRotation]", func(s *model.TryOnState) {
		s.RotationDegrees = degrees
	})
}

// Rotate turns the overlay by one step per unit of steps; negative is
// counter-clockwise.
func (c *Compositor) Rotate(ctx context.Context, steps int) error {
	return c.mutate(ctx, "[Rotate]", func(s *model.TryOnState) {
		s.RotationDegrees += float64(steps) * RotationStep
	})
}

func (c *Compositor) ResetRotation(ctx context.Context) error {
	return c.mutate(ctx, "[ResetRotation]", func(s *model.TryOnState) {
		s.RotationDegrees = 0
	})
}

// ToggleBackgroundRemoval flips the filter flag. Filtered overlays are
// recomputed once on the next read after each toggle.
func (c *Compositor) ToggleBackgroundRemoval(ctx context.Context) (bool, error) {
	var enabled bool
	err := c.mutate(ctx, "[ToggleBackgroundRemoval]", func(s *model.TryOnState) {
		s.RemoveBackground = !s.RemoveBackground
		enabled = s.RemoveBackground
	})
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	for _, o := range c.overlays {
		o.filtered = nil
	}
	c.mu.Unlock()
	return enabled, nil
}

// Placement lays the overlay out in a container of the given size.
func (c *Compositor) Placement(containerW, containerH, aspect float64) model.OverlayPlacement {
	return imaging.Placement(containerW, containerH, aspect, c.State(), c.cfg.BaseWidthPercent)
}

// Overlay returns the image to display for a product. With background
// removal on, an unreadable source falls back to the unfiltered image.
func (c *Compositor) Overlay(ctx context.Context, productID string) (*model.OverlayImage, error) {
	product, err := c.productRepo.GetByID(ctx, productID)
	if err != nil {
		logger.Error("[Overlay] err productRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	out := &model.OverlayImage{ProductID: product.ID, SourceURL: product.ImageURL}

	c.mu.Lock()
	cached, ok := c.overlays[product.ID]
	c.mu.Unlock()
	if !ok {
		data, contentType, err := c.fetch(ctx, product.ImageURL)
		if err != nil {
			logger.Warn("[Overlay] overlay source unreadable",
				zap.String("product_id", product.ID),
				zap.String("error", err.Error()))
			return out, nil
		}
		cached = &cachedOverlay{original: data, contentType: contentType}
		c.mu.Lock()
		c.overlays[product.ID] = cached
		c.mu.Unlock()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	out.ContentType = cached.contentType
	out.Data = cached.original
	if !c.state.RemoveBackground {
		return out, nil
	}

	if cached.filtered == nil {
		filtered, err := imaging.RemoveBackground(cached.original, c.cfg.BrightnessThreshold)
		if err != nil {
			logger.Warn("[Overlay] background removal skipped",
				zap.String("product_id", product.ID),
				zap.String("error", err.Error()))
			return out, nil
		}
		cached.filtered = filtered
	}
	out.ContentType = "image/png"
	out.Data = cached.filtered
	out.Filtered = true
	return out, nil
}

// Render composites the product overlay over the stored photo and returns a
// PNG. The photo size is the container.
func (c *Compositor) Render(ctx context.Context, productID string) ([]byte, error) {
	state := c.State()
	if state.UserPhoto == nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	_, photoData, err := imaging.ParseDataURL(*state.UserPhoto)
	if err != nil {
		logger.Warn("[Render] err imaging.ParseDataURL", zap.String("user_id", c.userID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrImageDecode)
	}
	photo, err := imaging.Decode(photoData)
	if err != nil {
		logger.Warn("[Render] err imaging.Decode photo", zap.String("user_id", c.userID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrImageDecode)
	}

	ov, err := c.Overlay(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(ov.Data) == 0 {
		return nil, errors.SetCustomError(constant.ErrImageDecode)
	}
	overlay, err := imaging.Decode(ov.Data)
	if err != nil {
		logger.Warn("[Render] err imaging.Decode overlay", zap.String("product_id", productID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrImageDecode)
	}

	pb, ob := photo.Bounds(), overlay.Bounds()
	aspect := float64(ob.Dx()) / float64(ob.Dy())
	placement := imaging.Placement(float64(pb.Dx()), float64(pb.Dy()), aspect, state, c.cfg.BaseWidthPercent)

	out, err := imaging.EncodePNG(imaging.Render(photo, overlay, placement))
	if err != nil {
		logger.Error("[Render] err imaging.EncodePNG", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return out, nil
}

// Reset clears the stored state back to defaults. It requires explicit
// confirmation.
func (c *Compositor) Reset(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return errors.SetCustomError(constant.ErrConfirmationRequired)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	if err := c.store.Remove(ctx, c.key); err != nil {
		logger.Error("[Reset] err store.Remove", zap.String("user_id", c.userID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrPersistence)
	}
	c.state = model.DefaultTryOnState()
	c.drag = nil
	for _, o := range c.overlays {
		o.filtered = nil
	}
	return nil
}

// Reload re-reads the stored state. It runs when another view changes the
// same key.
func (c *Compositor) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}

	state, err := c.restore(ctx)
	if err != nil {
		return err
	}
	if state.RemoveBackground != c.state.RemoveBackground {
		for _, o := range c.overlays {
			o.filtered = nil
		}
	}
	c.state = state
	return nil
}

// Close releases the drag. Later mutations fail with ErrNotFound.
func (c *Compositor) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drag = nil
	c.closed = true
}

func (c *Compositor) restore(ctx context.Context) (model.TryOnState, error) {
	state := model.DefaultTryOnState()
	found, err := c.store.Get(ctx, c.key, &state)
	if err != nil {
		logger.Error("[restore] err store.Get", zap.String("user_id", c.userID), zap.String("error", err.Error()))
		return model.TryOnState{}, errors.SetCustomError(constant.ErrInternal)
	}
	if !found {
		return model.DefaultTryOnState(), nil
	}
	return state, nil
}

// mutate applies fn to the state and writes it through to the store. The
// in-memory state only changes when the write succeeds.
func (c *Compositor) mutate(ctx context.Context, method string, fn func(*model.TryOnState)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	next := c.state
	fn(&next)
	if err := c.store.Set(ctx, c.key, next); err != nil {
		logger.Error(method+" err store.Set", zap.String("user_id", c.userID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrPersistence)
	}
	c.state = next
	return nil
}

// fetch reads an overlay source. Data URLs are decoded in place; anything
// else is fetched over HTTP.
func (c *Compositor) fetch(ctx context.Context, source string) ([]byte, string, error) {
	if strings.HasPrefix(source, "data:") {
		contentType, data, err := imaging.ParseDataURL(source)
		return data, contentType, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch overlay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch overlay: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxOverlayBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read overlay: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
