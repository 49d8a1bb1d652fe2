package constant

type CheckoutStep string

const (
	CheckoutStepDetails      CheckoutStep = "details"
	CheckoutStepPayment      CheckoutStep = "payment"
	CheckoutStepVerification CheckoutStep = "verification"
	CheckoutStepCompleted    CheckoutStep = "completed"
)

func (s CheckoutStep) IsTerminal() bool {
	return s == CheckoutStepCompleted
}

func (s CheckoutStep) String() string {
	return string(s)
}
