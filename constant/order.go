package constant

type OrderStatus string

const (
	OrderStatusPendingVerification OrderStatus = "pending_verification"
	OrderStatusApproved            OrderStatus = "approved"
	OrderStatusRejected            OrderStatus = "rejected"
	OrderStatusProcessing          OrderStatus = "processing"
	OrderStatusDelivered           OrderStatus = "delivered"
)

// orderStatusTransitions lists the statuses an admin may move an order to.
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingVerification: {OrderStatusApproved, OrderStatusRejected},
	OrderStatusApproved:            {OrderStatusProcessing},
	OrderStatusProcessing:          {OrderStatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPendingVerification, OrderStatusApproved, OrderStatusRejected,
		OrderStatusProcessing, OrderStatusDelivered:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCOD     PaymentMethod = "cod"
	PaymentMethodAdvance PaymentMethod = "advance"
	PaymentMethodInstant PaymentMethod = "instant"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodAdvance || m == PaymentMethodInstant
}

// RequiresProof reports whether the method goes through the verification step.
func (m PaymentMethod) RequiresProof() bool {
	return m == PaymentMethodAdvance || m == PaymentMethodInstant
}
