package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrCredentialExists
	ErrInvalidPassword
	ErrForbidden
	ErrInvalidOrderStatus
	ErrMissingField
	ErrInvalidAddress
	ErrCODNotEligible
	ErrEmptyCart
	ErrInvalidCheckoutStep
	ErrProofRequired
	ErrTimerExpired
	ErrPersistence
	ErrImageDecode
	ErrConfirmationRequired
	ErrInvalidOTP
	ErrCheckoutNotStarted
	ErrCheckoutInProgress
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:              "success",
	ErrInternal:             "error internal",
	ErrNotFound:             "data not found",
	ErrInvalidRequest:       "invalid request",
	ErrUnauthorize:          "unauthorize request",
	ErrCredentialExists:     "email or phone already exists",
	ErrInvalidPassword:      "password invalid",
	ErrForbidden:            "forbidden",
	ErrInvalidOrderStatus:   "invalid order status",
	ErrMissingField:         "full name and address are required",
	ErrInvalidAddress:       "address must be in the format: street, city, pincode (pincode digits only)",
	ErrCODNotEligible:       "cash on delivery is only available for orders below the cod threshold",
	ErrEmptyCart:            "cart is empty",
	ErrInvalidCheckoutStep:  "action not allowed in current checkout step",
	ErrProofRequired:        "payment proof image is required",
	ErrTimerExpired:         "payment verification timer expired, please select a payment method again",
	ErrPersistence:          "failed to place order, please try again",
	ErrImageDecode:          "image could not be decoded",
	ErrConfirmationRequired: "confirmation required",
	ErrInvalidOTP:           "otp invalid or expired",
	ErrCheckoutNotStarted:   "checkout not started",
	ErrCheckoutInProgress:   "an order is being placed, please wait",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:              http.StatusOK,
	ErrInternal:             http.StatusInternalServerError,
	ErrNotFound:             http.StatusBadRequest,
	ErrInvalidRequest:       http.StatusBadRequest,
	ErrUnauthorize:          http.StatusUnauthorized,
	ErrCredentialExists:     http.StatusBadRequest,
	ErrInvalidPassword:      http.StatusBadRequest,
	ErrForbidden:            http.StatusForbidden,
	ErrInvalidOrderStatus:   http.StatusBadRequest,
	ErrMissingField:         http.StatusBadRequest,
	ErrInvalidAddress:       http.StatusBadRequest,
	ErrCODNotEligible:       http.StatusUnprocessableEntity,
	ErrEmptyCart:            http.StatusConflict,
	ErrInvalidCheckoutStep:  http.StatusConflict,
	ErrProofRequired:        http.StatusBadRequest,
	ErrTimerExpired:         http.StatusGone,
	ErrPersistence:          http.StatusServiceUnavailable,
	ErrImageDecode:          http.StatusBadRequest,
	ErrConfirmationRequired: http.StatusPreconditionRequired,
	ErrInvalidOTP:           http.StatusBadRequest,
	ErrCheckoutNotStarted:   http.StatusNotFound,
	ErrCheckoutInProgress:   http.StatusConflict,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:              "0000",
	ErrInternal:             "0001",
	ErrNotFound:             "0002",
	ErrInvalidRequest:       "0003",
	ErrUnauthorize:          "0004",
	ErrCredentialExists:     "0005",
	ErrInvalidPassword:      "0006",
	ErrForbidden:            "0007",
	ErrInvalidOrderStatus:   "0008",
	ErrMissingField:         "0009",
	ErrInvalidAddress:       "0010",
	ErrCODNotEligible:       "0011",
	ErrEmptyCart:            "0012",
	ErrInvalidCheckoutStep:  "0013",
	ErrProofRequired:        "0014",
	ErrTimerExpired:         "0015",
	ErrPersistence:          "0016",
	ErrImageDecode:          "0017",
	ErrConfirmationRequired: "0018",
	ErrInvalidOTP:           "0019",
	ErrCheckoutNotStarted:   "0020",
	ErrCheckoutInProgress:   "0021",
}
