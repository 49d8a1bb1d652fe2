package model

import (
	"time"

	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/shopspring/decimal"
)

// PrescriptionAttachment is a prescription file uploaded with a cart line.
type PrescriptionAttachment struct {
	FileName string `json:"file_name" validate:"required"`
	Data     string `json:"data" validate:"required"` // base64
}

// ProofImage is the screenshot evidencing a manual payment.
type ProofImage struct {
	FileName string `json:"file_name" validate:"required"`
	Data     string `json:"data" validate:"required"` // base64
}

type OrderLineItem struct {
	ProductID    string                  `json:"product_id" validate:"required"`
	ProductName  string                  `json:"product_name" validate:"required"`
	Quantity     int                     `json:"quantity" validate:"gte=1"`
	UnitPrice    decimal.Decimal         `json:"unit_price"`
	Prescription *PrescriptionAttachment `json:"prescription,omitempty" validate:"omitempty"`
}

type Order struct {
	ID            string                 `json:"id"`
	UserID        string                 `json:"user_id"`
	FullName      string                 `json:"full_name"`
	Email         string                 `json:"email"`
	Address       string                 `json:"address"`
	TotalAmount   decimal.Decimal        `json:"total_amount"`
	PaymentMethod constant.PaymentMethod `json:"payment_method"`
	ProofImage    *ProofImage            `json:"proof_image,omitempty"`
	Status        constant.OrderStatus   `json:"status"`
	CreatedAt     time.Time              `json:"created_at"`
	Items         []OrderLineItem        `json:"items"`
}

// CreateOrderRequest is an order without id, status and creation time.
type CreateOrderRequest struct {
	UserID        string                 `json:"user_id" validate:"required"`
	FullName      string                 `json:"full_name" validate:"required"`
	Email         string                 `json:"email" validate:"omitempty,email"`
	Address       string                 `json:"address" validate:"required"`
	TotalAmount   decimal.Decimal        `json:"total_amount"`
	PaymentMethod constant.PaymentMethod `json:"payment_method" validate:"required,paymentmethod"`
	ProofImage    *ProofImage            `json:"proof_image,omitempty" validate:"omitempty"`
	Items         []OrderLineItem        `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status constant.OrderStatus `json:"status" validate:"required,orderstatus"`
}

// OrderEntity is the orders table row.
type OrderEntity struct {
	ID            string                 `db:"id"`
	UserID        string                 `db:"user_id"`
	FullName      string                 `db:"full_name"`
	Email         string                 `db:"email"`
	Address       string                 `db:"address"`
	TotalAmount   decimal.Decimal        `db:"total_amount"`
	PaymentMethod constant.PaymentMethod `db:"payment_method"`
	ProofFileName string                 `db:"proof_file_name"`
	ProofData     string                 `db:"proof_data"`
	Status        constant.OrderStatus   `db:"status"`
	CreatedAt     time.Time              `db:"created_at"`
}

// OrderItemEntity is the order_items table row.
type OrderItemEntity struct {
	OrderID              string          `db:"order_id"`
	ProductID            string          `db:"product_id"`
	ProductName          string          `db:"product_name"`
	Quantity             int             `db:"quantity"`
	UnitPrice            decimal.Decimal `db:"unit_price"`
	PrescriptionFileName string          `db:"prescription_file_name"`
	PrescriptionData     string          `db:"prescription_data"`
}

// VerificationQueueEntry is an order waiting for an admin to check its payment.
type VerificationQueueEntry struct {
	OrderID  string    `json:"order_id"`
	QueuedAt time.Time `json:"queued_at"`
}
