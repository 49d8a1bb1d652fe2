package checkout

import (
	"strings"

	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	validatorx "github.com/muhammadheryan/eyewear-store/utils/validator"
)

// ShippingAddress is an address in the "street, city, pincode" form.
type ShippingAddress struct {
	Street  string
	City    string
	Pincode string
}

// ParseAddress accepts exactly three comma separated segments. Street and
// city must be non-empty after trimming and the pincode must be ASCII digits.
func ParseAddress(raw string) (ShippingAddress, bool) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return ShippingAddress{}, false
	}
	addr := ShippingAddress{
		Street:  strings.TrimSpace(parts[0]),
		City:    strings.TrimSpace(parts[1]),
		Pincode: strings.TrimSpace(parts[2]),
	}
	if addr.Street == "" || addr.City == "" || !isDigits(addr.Pincode) {
		return ShippingAddress{}, false
	}
	return addr, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ValidateDetails checks the shipping form before leaving the details step.
func ValidateDetails(details model.ShippingDetails) error {
	if strings.TrimSpace(details.FullName) == "" || strings.TrimSpace(details.Address) == "" {
		return errors.SetCustomError(constant.ErrMissingField)
	}
	if _, ok := ParseAddress(details.Address); !ok {
		return errors.SetCustomError(constant.ErrInvalidAddress)
	}
	if email := strings.TrimSpace(details.Email); email != "" {
		if err := validatorx.ValidateVar(email, "email"); err != nil {
			return errors.SetCustomError(constant.ErrInvalidRequest)
		}
	}
	return nil
}
