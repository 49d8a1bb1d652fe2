package model

import "github.com/shopspring/decimal"

type CartLine struct {
	ProductID    string                  `json:"productId"`
	Quantity     int                     `json:"quantity"`
	Prescription *PrescriptionAttachment `json:"prescription,omitempty"`
}

// CartLineKey identifies a cart line. Lines for the same product are distinct
// when their prescription file names differ.
type CartLineKey struct {
	ProductID            string `json:"product_id" validate:"required"`
	PrescriptionFileName string `json:"prescription_file_name"`
}

func (l CartLine) Key() CartLineKey {
	key := CartLineKey{ProductID: l.ProductID}
	if l.Prescription != nil {
		key.PrescriptionFileName = l.Prescription.FileName
	}
	return key
}

type AddToCartRequest struct {
	ProductID    string                  `json:"product_id" validate:"required"`
	Quantity     int                     `json:"quantity"`
	Prescription *PrescriptionAttachment `json:"prescription,omitempty" validate:"omitempty"`
}

type UpdateCartItemRequest struct {
	CartLineKey
	Quantity int `json:"quantity"`
}

type CartViewItem struct {
	Product              Product         `json:"product"`
	Quantity             int             `json:"quantity"`
	PrescriptionFileName string          `json:"prescription_file_name,omitempty"`
	Subtotal             decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Items []CartViewItem  `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type WishlistItem struct {
	ProductID string `json:"productId"`
}

type WishlistView struct {
	Items []Product `json:"items"`
	Count int       `json:"count"`
}
