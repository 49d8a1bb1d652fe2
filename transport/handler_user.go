package transport

import (
	"net/http"

	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
	utilsContext "github.com/muhammadheryan/eyewear-store/utils/context"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	validatorx "github.com/muhammadheryan/eyewear-store/utils/validator"
)

// MeResponse is the signed-in user with the header badge counts.
type MeResponse struct {
	Profile       *model.Profile `json:"profile"`
	CartCount     int            `json:"cart_count"`
	WishlistCount int            `json:"wishlist_count"`
}

// Register handler
// @Summary Register user
// @Description Register a new user with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.RegisterResponse
// @Failure 400 {object} Response
// @Router /register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email and password and receive a JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} Response
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// SendOTP handler
// @Summary Send phone OTP
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.SendOTPRequest true "Phone in E.164"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /otp/send [post]
func (s *RestHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req model.SendOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.UserApp.SendOTP(r.Context(), &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// VerifyOTP handler
// @Summary Verify phone OTP
// @Description Verifies the code and signs the user in, creating the account on first use
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.VerifyOTPRequest true "Verify Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} Response
// @Router /otp/verify [post]
func (s *RestHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req model.VerifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.VerifyOTP(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Logout handler
// @Summary Logout
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /logout [post]
func (s *RestHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := bearerToken(r)
	if err := s.UserApp.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// GetMe handler
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Router /me [get]
func (s *RestHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	profile, err := s.UserApp.GetProfile(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	cartCount, err := s.CartApp.Count(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	wishlistCount, err := s.WishlistApp.Count(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, MeResponse{Profile: profile, CartCount: cartCount, WishlistCount: wishlistCount})
}

// UpdateMe handler
// @Summary Update profile
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.UpdateProfileRequest true "Profile"
// @Success 200 {object} model.Profile
// @Router /me [put]
func (s *RestHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	var req model.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.UserApp.UpdateProfile(ctx, userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
