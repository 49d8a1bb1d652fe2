package validatorx

import (
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
)

var (
	v   *gpvalidator.Validate
	mut sync.Mutex
)

// Init initializes the validator singleton (idempotent)
func Init() {
	mut.Lock()
	defer mut.Unlock()
	if v != nil {
		return
	}
	v = gpvalidator.New()
	_ = v.RegisterValidation("frametype", func(fl gpvalidator.FieldLevel) bool {
		return model.FrameType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("lenstype", func(fl gpvalidator.FieldLevel) bool {
		return model.LensType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("paymentmethod", func(fl gpvalidator.FieldLevel) bool {
		return constant.PaymentMethod(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("orderstatus", func(fl gpvalidator.FieldLevel) bool {
		return constant.OrderStatus(fl.Field().String()).Valid()
	})
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if v == nil {
		Init()
	}
	return v.Struct(s)
}

// ValidateVar validates a single value against a tag
func ValidateVar(field interface{}, tag string) error {
	if v == nil {
		Init()
	}
	return v.Var(field, tag)
}
