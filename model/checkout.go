package model

import (
	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/shopspring/decimal"
)

type ShippingDetails struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

type SelectPaymentRequest struct {
	Method constant.PaymentMethod `json:"method" validate:"required,paymentmethod"`
}

// PaymentTarget is what the customer pays to during verification.
type PaymentTarget struct {
	Amount    decimal.Decimal `json:"amount"`
	RequestID string          `json:"request_id"`
}

type CheckoutView struct {
	Step             constant.CheckoutStep  `json:"step"`
	Details          ShippingDetails        `json:"details"`
	PaymentMethod    constant.PaymentMethod `json:"payment_method,omitempty"`
	Total            decimal.Decimal        `json:"total"`
	CODAvailable     bool                   `json:"cod_available"`
	CODThreshold     decimal.Decimal        `json:"cod_threshold"`
	Countdown        int                    `json:"countdown_seconds"`
	ProofAttached    bool                   `json:"proof_attached"`
	ProofFileName    string                 `json:"proof_file_name,omitempty"`
	PaymentTarget    *PaymentTarget         `json:"payment_target,omitempty"`
	Notice           string                 `json:"notice,omitempty"`
	OrderID          string                 `json:"order_id,omitempty"`
	Redirect         string                 `json:"redirect,omitempty"`
	CanSubmitPayment bool                   `json:"can_submit_payment"`
}

// CheckoutResult is returned once an order has been placed.
type CheckoutResult struct {
	Order    *Order `json:"order"`
	Redirect string `json:"redirect"`
}
