package transport

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/eyewear-store/application/tryon"
	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
	utilsContext "github.com/muhammadheryan/eyewear-store/utils/context"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	validatorx "github.com/muhammadheryan/eyewear-store/utils/validator"
)

// ToggleBackgroundResponse reports the filter flag after a toggle.
type ToggleBackgroundResponse struct {
	RemoveBackground bool `json:"remove_background"`
}

func (s *RestHandler) compositor(r *http.Request) (*tryon.Compositor, error) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)
	return s.TryOnApp.Open(ctx, userID)
}

// GetTryOn handler
// @Summary Try-on state
// @Tags TryOn
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.TryOnView
// @Router /tryon [get]
func (s *RestHandler) GetTryOn(w http.ResponseWriter, r *http.Request) {
	c, err := s.compositor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, c.View())
}

// UploadTryOnPhoto handler
// @Summary Load the user photo
// @Tags TryOn
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Photo"
// @Success 200 {object} model.TryOnView
// @Failure 400 {object} Response
// @Router /tryon/photo [post]
func (s *RestHandler) UploadTryOnPhoto(w http.ResponseWriter, r *http.Request) {
	_, data, found, err := readUpload(r, "photo")
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	c, err := s.compositor(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := c.LoadPhoto(r.Context(), data); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, c.View())
}

// UpdateTryOnTransform handler
// @Summary Set offset, scale or rotation
// @Description Omitted fields are left unchanged
// @Tags TryOn
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.TransformRequest true "Transform"
// @Success 200 {object} model.TryOnView
// @Router /tryon/transform [put]
func (s *RestHandler) UpdateTryOnTransform(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.TransformRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	c, err := s.compositor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.OffsetX != nil || req.OffsetY != nil {
		current := c.State()
		x, y := current.OffsetX, current.OffsetY
		if req.OffsetX != nil {
			x = *req.OffsetX
		}
		if req.OffsetY != nil {
			y = *req.OffsetY
		}
		if err := c.SetOffset(ctx, x, y); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Scale != nil {
		if err := c.SetScale(ctx, *req.Scale); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Rotation != nil {
		if err := c.SetRotation(ctx, *req.Rotation); err != nil {
			writeError(w, err)
			return
		}
	}

	writeSuccess(w, c.View())
}

// RotateTryOn handler
// @Summary Rotate by one step or reset
// @Tags TryOn
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.RotateRequest true "left, right or reset"
// @Success 200 {object} model.TryOnView
// @Router /tryon/rotate [post]
func (s *RestHandler) RotateTryOn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RotateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	c, err := s.compositor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	switch req.Direction {
	case "left":
		err = c.Rotate(ctx, -1)
	case "right":
		err = c.Rotate(ctx, 1)
	default:
		err = c.ResetRotation(ctx)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, c.View())
}

// DragTryOn handler
// @Summary Drag the overlay
// @Description phase is begin, move or end. Width and height are the container size in pixels
// @Tags TryOn
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param phase path string true "begin, move or end"
// @Param request body model.DragRequest false "Pointer"
// @Success 200 {object} model.TryOnView
// @Router /tryon/drag/{phase} [post]
func (s *RestHandler) DragTryOn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, err := s.compositor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	phase := mux.Vars(r)["phase"]
	if phase == "end" {
		c.EndDrag()
		writeSuccess(w, c.View())
		return
	}

	var req model.DragRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	switch phase {
	case "begin":
		err = c.BeginDrag(req.X, req.Y)
	case "move":
		err = c.DragMove(ctx, req.X, req.Y, req.Width, req.Height)
	default:
		err = errors.SetCustomError(constant.ErrNotFound)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, c.View())
}

// ToggleTryOnBackground handler
// @Summary Toggle background removal
// @Tags TryOn
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ToggleBackgroundResponse
// @Router /tryon/background [post]
func (s *RestHandler) ToggleTryOnBackground(w http.ResponseWriter, r *http.Request) {
	c, err := s.compositor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	enabled, err := c.ToggleBackgroundRemoval(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, ToggleBackgroundResponse{RemoveBackground: enabled})
}

// LeaveTryOn handler
// @Summary Leave the try-on view
// @Description Releases the in-memory compositor. Persisted state is kept
// @Tags TryOn
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /tryon/leave [post]
func (s *RestHandler) LeaveTryOn(w http.ResponseWriter, r *http.Request) {
	userID, _ := utilsContext.GetUserID(r.Context())
	s.TryOnApp.Leave(userID)

	writeSuccess(w, nil)
}

// ResetTryOn handler
// @Summary Reset try-on state
// @Description Requires {"confirm": true}
// @Tags TryOn
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ResetRequest true "Confirmation"
// @Success 200 {object} model.TryOnView
// @Failure 428 {object} Response
// @Router /tryon [delete]
func (s *RestHandler) ResetTryOn(w http.ResponseWriter, r *http.Request) {
	var req model.ResetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	c, err := s.compositor(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := c.Reset(r.Context(), req.Confirm); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, c.View())
}

// GetTryOnOverlay handler
// @Summary Displayable overlay image
// @Description Filtered when background removal is on. Redirects to the source image when it cannot be read
// @Tags TryOn
// @Produce png,jpeg
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {file} binary
// @Router /tryon/{productId}/overlay [get]
func (s *RestHandler) GetTryOnOverlay(w http.ResponseWriter, r *http.Request) {
	c, err := s.compositor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	overlay, err := c.Overlay(r.Context(), mux.Vars(r)["productId"])
	if err != nil {
		writeError(w, err)
		return
	}
	if len(overlay.Data) == 0 {
		http.Redirect(w, r, overlay.SourceURL, http.StatusFound)
		return
	}

	writeImage(w, overlay.ContentType, overlay.Data)
}

// RenderTryOn handler
// @Summary Photo with the overlay composited
// @Tags TryOn
// @Produce png
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {file} binary
// @Router /tryon/{productId}/render [get]
func (s *RestHandler) RenderTryOn(w http.ResponseWriter, r *http.Request) {
	c, err := s.compositor(r)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := c.Render(r.Context(), mux.Vars(r)["productId"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeImage(w, "image/png", out)
}

func writeImage(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
