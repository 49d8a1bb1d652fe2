package transport

import (
	"encoding/base64"
	"net/http"

	"github.com/muhammadheryan/eyewear-store/application/checkout"
	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
	utilsContext "github.com/muhammadheryan/eyewear-store/utils/context"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	validatorx "github.com/muhammadheryan/eyewear-store/utils/validator"
)

// writeCheckoutError adds the page the client should move to for errors that
// end the checkout.
func writeCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.IsType(err, constant.ErrUnauthorize):
		writeErrorRedirect(w, err, checkout.RedirectLogin)
	case errors.IsType(err, constant.ErrEmptyCart):
		writeErrorRedirect(w, err, checkout.RedirectCart)
	default:
		writeError(w, err)
	}
}

func (s *RestHandler) checkoutFlow(r *http.Request) (*checkout.Flow, error) {
	userID, _ := utilsContext.GetUserID(r.Context())
	return s.CheckoutApp.Get(userID)
}

// StartCheckout handler
// @Summary Enter checkout
// @Description Starts a checkout for the current cart, replacing any previous one
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CheckoutView
// @Failure 409 {object} Response
// @Router /checkout [post]
func (s *RestHandler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	flow, err := s.CheckoutApp.Start(ctx, userID)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	writeSuccess(w, flow.View())
}

// GetCheckout handler
// @Summary Current checkout state
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CheckoutView
// @Router /checkout [get]
func (s *RestHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	flow, err := s.checkoutFlow(r)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	writeSuccess(w, flow.View())
}

// LeaveCheckout handler
// @Summary Leave checkout
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /checkout [delete]
func (s *RestHandler) LeaveCheckout(w http.ResponseWriter, r *http.Request) {
	userID, _ := utilsContext.GetUserID(r.Context())
	s.CheckoutApp.Leave(userID)

	writeSuccess(w, nil)
}

// SubmitCheckoutDetails handler
// @Summary Submit shipping details
// @Description Address must be "street, city, pincode" with a digits-only pincode
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ShippingDetails true "Shipping details"
// @Success 200 {object} model.CheckoutView
// @Failure 400 {object} Response
// @Router /checkout/details [post]
func (s *RestHandler) SubmitCheckoutDetails(w http.ResponseWriter, r *http.Request) {
	var req model.ShippingDetails
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	flow, err := s.checkoutFlow(r)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	if err := flow.SubmitDetails(req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, flow.View())
}

// SelectCheckoutPayment handler
// @Summary Select payment method
// @Description cod places the order at once; advance and instant start payment verification
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.SelectPaymentRequest true "Payment method"
// @Success 200 {object} model.CheckoutView
// @Failure 422 {object} Response
// @Router /checkout/payment [post]
func (s *RestHandler) SelectCheckoutPayment(w http.ResponseWriter, r *http.Request) {
	var req model.SelectPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	flow, err := s.checkoutFlow(r)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	if _, err := flow.SelectPayment(r.Context(), req.Method); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, flow.View())
}

// AttachCheckoutProof handler
// @Summary Attach payment proof
// @Tags Checkout
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param proof formData file true "Payment screenshot"
// @Success 200 {object} model.CheckoutView
// @Router /checkout/proof [post]
func (s *RestHandler) AttachCheckoutProof(w http.ResponseWriter, r *http.Request) {
	name, data, found, err := readUpload(r, "proof")
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeError(w, errors.SetCustomError(constant.ErrProofRequired))
		return
	}

	flow, err := s.checkoutFlow(r)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	proof := model.ProofImage{FileName: name, Data: base64.StdEncoding.EncodeToString(data)}
	if err := flow.AttachProof(proof); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, flow.View())
}

// SubmitCheckoutProof handler
// @Summary Place the order after payment
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CheckoutView
// @Failure 503 {object} Response
// @Router /checkout/submit [post]
func (s *RestHandler) SubmitCheckoutProof(w http.ResponseWriter, r *http.Request) {
	flow, err := s.checkoutFlow(r)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	if _, err := flow.SubmitProof(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, flow.View())
}

// CancelCheckoutVerification handler
// @Summary Back to payment selection
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CheckoutView
// @Router /checkout/cancel [post]
func (s *RestHandler) CancelCheckoutVerification(w http.ResponseWriter, r *http.Request) {
	flow, err := s.checkoutFlow(r)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	if err := flow.CancelToPayment(); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, flow.View())
}
