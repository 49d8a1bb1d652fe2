package transport

import (
	"encoding/base64"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
	utilsContext "github.com/muhammadheryan/eyewear-store/utils/context"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	validatorx "github.com/muhammadheryan/eyewear-store/utils/validator"
)

// ToggleWishlistResponse reports the state after a toggle.
type ToggleWishlistResponse struct {
	ProductID  string `json:"product_id"`
	Wishlisted bool   `json:"wishlisted"`
}

// GetCart handler
// @Summary Cart with product details
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CartView
// @Router /cart [get]
func (s *RestHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	res, err := s.CartApp.View(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AddCartItem handler
// @Summary Add to cart
// @Description JSON body, or multipart with product_id, quantity and an optional prescription file
// @Tags Cart
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body model.AddToCartRequest true "Item"
// @Success 200 {array} model.CartLine
// @Router /cart/items [post]
func (s *RestHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	var req model.AddToCartRequest
	if isMultipart(r) {
		quantity, err := strconv.Atoi(r.FormValue("quantity"))
		if err != nil {
			quantity = 1
		}
		req = model.AddToCartRequest{ProductID: r.FormValue("product_id"), Quantity: quantity}

		name, data, found, err := readUpload(r, "prescription")
		if err != nil {
			writeError(w, err)
			return
		}
		if found {
			req.Prescription = &model.PrescriptionAttachment{FileName: name, Data: base64.StdEncoding.EncodeToString(data)}
		}
	} else if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CartApp.Add(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateCartItem handler
// @Summary Change line quantity
// @Description A quantity of zero or less removes the line
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.UpdateCartItemRequest true "Line"
// @Success 200 {array} model.CartLine
// @Router /cart/items [put]
func (s *RestHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	var req model.UpdateCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.ProductID == "" {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CartApp.UpdateQuantity(ctx, userID, req.CartLineKey, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// RemoveCartItem handler
// @Summary Remove a line
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CartLineKey true "Line"
// @Success 200 {array} model.CartLine
// @Router /cart/items [delete]
func (s *RestHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	var key model.CartLineKey
	if err := decodeJSON(r, &key); err != nil {
		writeError(w, err)
		return
	}
	if err := validatorx.ValidateStruct(&key); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CartApp.Remove(ctx, userID, key)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ClearCart handler
// @Summary Empty the cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /cart [delete]
func (s *RestHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	if err := s.CartApp.Clear(ctx, userID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// GetWishlist handler
// @Summary Wishlist with product details
// @Tags Wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.WishlistView
// @Router /wishlist [get]
func (s *RestHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	res, err := s.WishlistApp.View(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ToggleWishlist handler
// @Summary Add or remove a wishlist product
// @Tags Wishlist
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} ToggleWishlistResponse
// @Router /wishlist/{productId} [post]
func (s *RestHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)
	productID := mux.Vars(r)["productId"]

	wishlisted, err := s.WishlistApp.Toggle(ctx, userID, productID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, ToggleWishlistResponse{ProductID: productID, Wishlisted: wishlisted})
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// readUpload reads the named multipart file. found is false when the form
// has no such file.
func readUpload(r *http.Request, field string) (name string, data []byte, found bool, err error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return "", nil, false, nil
	}
	if err != nil {
		return "", nil, false, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		return "", nil, false, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return header.Filename, data, true, nil
}
