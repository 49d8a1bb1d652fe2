package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/eyewear-store/model"
	utilsContext "github.com/muhammadheryan/eyewear-store/utils/context"
)

// ListMyOrders handler
// @Summary Order history
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Order
// @Router /orders [get]
func (s *RestHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	res, err := s.OrderApp.ListForUser(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AdminListOrders handler
// @Summary All orders
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Order
// @Router /admin/orders [get]
func (s *RestHandler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	res, err := s.OrderApp.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AdminVerificationQueue handler
// @Summary Orders waiting for payment verification
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.VerificationQueueEntry
// @Router /admin/orders/verification-queue [get]
func (s *RestHandler) AdminVerificationQueue(w http.ResponseWriter, r *http.Request) {
	res, err := s.OrderApp.ListVerificationQueue(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AdminUpdateOrderStatus handler
// @Summary Change order status
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body model.UpdateOrderStatusRequest true "Status"
// @Success 200 {object} model.Order
// @Failure 400 {object} Response
// @Router /admin/orders/{id}/status [put]
func (s *RestHandler) AdminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.OrderApp.UpdateStatus(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// InternalEnqueueVerification handler
// @Summary Queue an order for payment verification
// @Description Called by the order event consumer
// @Tags Internal
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} Response
// @Router /internal/v1/order/{id}/verification-queue [post]
func (s *RestHandler) InternalEnqueueVerification(w http.ResponseWriter, r *http.Request) {
	if err := s.OrderApp.EnqueueVerification(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
