package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/muhammadheryan/eyewear-store/application/cart"
	"github.com/muhammadheryan/eyewear-store/application/order"
	"github.com/muhammadheryan/eyewear-store/cmd/config"
	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	"github.com/muhammadheryan/eyewear-store/utils/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	RedirectLogin  = "/login"
	RedirectCart   = "/cart"
	RedirectOrders = "/orders"
)

// TickerFunc starts a ticker and returns its channel and a stop func.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Flow is one user's checkout session. It is safe for concurrent use.
type Flow struct {
	id     string
	userID string

	cfg       config.CheckoutConfig
	window    int
	orderApp  order.OrderApp
	cartApp   cart.CartApp
	group     *singleflight.Group
	newTicker TickerFunc

	mu         sync.Mutex
	items      []model.OrderLineItem
	total      decimal.Decimal
	step       constant.CheckoutStep
	details    model.ShippingDetails
	method     constant.PaymentMethod
	proof      *model.ProofImage
	countdown  int
	notice     string
	submitting bool
	result     *model.CheckoutResult
	stopTicker func()
	closed     bool
}

func (f *Flow) ID() string { return f.id }

func (f *Flow) UserID() string { return f.userID }

// Total is the amount computed when the flow was entered.
func (f *Flow) Total() decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

func (f *Flow) Step() constant.CheckoutStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *Flow) Countdown() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countdown
}

func (f *Flow) codAvailable() bool {
	return f.total.LessThan(f.cfg.CODThreshold)
}

func (f *Flow) SubmitDetails(details model.ShippingDetails) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.usable(); err != nil {
		return err
	}
	if f.step != constant.CheckoutStepDetails && f.step != constant.CheckoutStepPayment {
		return errors.SetCustomError(constant.ErrInvalidCheckoutStep)
	}
	if err := ValidateDetails(details); err != nil {
		return err
	}

	f.details = model.ShippingDetails{
		FullName: strings.TrimSpace(details.FullName),
		Email:    strings.TrimSpace(details.Email),
		Address:  strings.TrimSpace(details.Address),
	}
	f.step = constant.CheckoutStepPayment
	f.notice = ""
	return nil
}

// SelectPayment picks the payment method. Cash on delivery places the order
// right away and returns its result; the other methods start verification
// and return a nil result.
func (f *Flow) SelectPayment(ctx context.Context, method constant.PaymentMethod) (*model.CheckoutResult, error) {
	f.mu.Lock()
	if err := f.usable(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	if f.result != nil && method == f.method {
		result := f.result
		f.mu.Unlock()
		return result, nil
	}
	if f.step != constant.CheckoutStepPayment {
		f.mu.Unlock()
		return nil, errors.SetCustomError(constant.ErrInvalidCheckoutStep)
	}
	if f.submitting {
		f.mu.Unlock()
		if method != constant.PaymentMethodCOD {
			return nil, errors.SetCustomError(constant.ErrInvalidCheckoutStep)
		}
		return f.submit(ctx, constant.CheckoutStepPayment)
	}
	if !method.Valid() {
		f.mu.Unlock()
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	if method == constant.PaymentMethodCOD {
		if !f.codAvailable() {
			f.mu.Unlock()
			return nil, errors.SetCustomError(constant.ErrCODNotEligible)
		}
		f.method = method
		f.notice = ""
		f.mu.Unlock()
		return f.submit(ctx, constant.CheckoutStepPayment)
	}

	f.method = method
	f.notice = ""
	f.enterVerification()
	f.mu.Unlock()
	return nil, nil
}

func (f *Flow) AttachProof(proof model.ProofImage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.usable(); err != nil {
		return err
	}
	if f.step != constant.CheckoutStepVerification || f.submitting {
		return errors.SetCustomError(constant.ErrInvalidCheckoutStep)
	}
	if strings.TrimSpace(proof.FileName) == "" || proof.Data == "" {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	f.proof = &proof
	return nil
}

func (f *Flow) SubmitProof(ctx context.Context) (*model.CheckoutResult, error) {
	f.mu.Lock()
	if err := f.usable(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	if f.result != nil {
		result := f.result
		f.mu.Unlock()
		return result, nil
	}
	f.mu.Unlock()

	return f.submit(ctx, constant.CheckoutStepVerification)
}

// CancelToPayment leaves verification. The countdown is reset and any
// attached proof is dropped.
func (f *Flow) CancelToPayment() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.usable(); err != nil {
		return err
	}
	if f.step != constant.CheckoutStepVerification || f.submitting {
		return errors.SetCustomError(constant.ErrInvalidCheckoutStep)
	}

	f.leaveVerification()
	f.notice = ""
	return nil
}

// Tick advances the verification countdown by one second. When it reaches
// zero the flow falls back to the payment step.
func (f *Flow) Tick() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || f.step != constant.CheckoutStepVerification || f.submitting {
		return
	}

	f.countdown--
	if f.countdown > 0 {
		return
	}

	f.leaveVerification()
	f.notice = constant.ErrorTypeMessage[constant.ErrTimerExpired]
	logger.Info("[Tick] verification window expired", zap.String("user_id", f.userID))
}

// Close stops the countdown. A closed flow rejects every action.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cancelTicker()
	f.closed = true
}

// closeUnlessSubmitting closes the flow unless an order submission is in
// flight. Once closed no submission can start.
func (f *Flow) closeUnlessSubmitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return false
	}
	f.cancelTicker()
	f.closed = true
	return true
}

func (f *Flow) View() *model.CheckoutView {
	f.mu.Lock()
	defer f.mu.Unlock()

	view := &model.CheckoutView{
		Step:             f.step,
		Details:          f.details,
		PaymentMethod:    f.method,
		Total:            f.total,
		CODAvailable:     f.codAvailable(),
		CODThreshold:     f.cfg.CODThreshold,
		Countdown:        f.countdown,
		ProofAttached:    f.proof != nil,
		Notice:           f.notice,
		CanSubmitPayment: f.step == constant.CheckoutStepVerification && f.proof != nil && !f.submitting,
	}
	if f.proof != nil {
		view.ProofFileName = f.proof.FileName
	}
	if f.step == constant.CheckoutStepVerification {
		view.PaymentTarget = &model.PaymentTarget{Amount: f.total, RequestID: f.cfg.PaymentRequestID}
	}
	if f.result != nil {
		view.OrderID = f.result.Order.ID
		view.Redirect = f.result.Redirect
	}
	return view
}

// submit places the order from the given step. Concurrent calls for the
// same flow share one order creation and later calls get the stored result.
func (f *Flow) submit(ctx context.Context, from constant.CheckoutStep) (*model.CheckoutResult, error) {
	v, err, _ := f.group.Do(f.id, func() (interface{}, error) {
		f.mu.Lock()
		if f.result != nil {
			result := f.result
			f.mu.Unlock()
			return result, nil
		}
		if err := f.submittable(from); err != nil {
			f.mu.Unlock()
			return nil, err
		}
		req := f.orderRequest()
		f.submitting = true
		f.mu.Unlock()

		placed, err := f.orderApp.CreateOrder(ctx, req)

		f.mu.Lock()
		defer f.mu.Unlock()
		f.submitting = false

		if err != nil {
			logger.Error("[submit] err orderApp.CreateOrder", zap.String("user_id", f.userID), zap.String("error", err.Error()))
			if errors.IsType(err, constant.ErrProofRequired) {
				return nil, err
			}
			return nil, errors.SetCustomError(constant.ErrPersistence)
		}

		f.cancelTicker()
		f.step = constant.CheckoutStepCompleted
		f.notice = ""
		f.result = &model.CheckoutResult{Order: placed, Redirect: RedirectOrders}

		if err := f.cartApp.Clear(ctx, f.userID); err != nil {
			logger.Warn("[submit] err cartApp.Clear", zap.String("user_id", f.userID), zap.String("error", err.Error()))
		}
		return f.result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.CheckoutResult), nil
}

// submittable must be called with mu held.
func (f *Flow) submittable(from constant.CheckoutStep) error {
	if err := f.usable(); err != nil {
		return err
	}
	if f.step != from {
		return errors.SetCustomError(constant.ErrInvalidCheckoutStep)
	}
	switch from {
	case constant.CheckoutStepPayment:
		if f.method != constant.PaymentMethodCOD {
			return errors.SetCustomError(constant.ErrInvalidCheckoutStep)
		}
		if !f.codAvailable() {
			return errors.SetCustomError(constant.ErrCODNotEligible)
		}
	case constant.CheckoutStepVerification:
		if f.proof == nil {
			return errors.SetCustomError(constant.ErrProofRequired)
		}
	default:
		return errors.SetCustomError(constant.ErrInvalidCheckoutStep)
	}
	return nil
}

func (f *Flow) orderRequest() *model.CreateOrderRequest {
	items := make([]model.OrderLineItem, len(f.items))
	copy(items, f.items)

	req := &model.CreateOrderRequest{
		UserID:        f.userID,
		FullName:      f.details.FullName,
		Email:         f.details.Email,
		Address:       f.details.Address,
		TotalAmount:   f.total,
		PaymentMethod: f.method,
		Items:         items,
	}
	if f.method.RequiresProof() && f.proof != nil {
		proof := *f.proof
		req.ProofImage = &proof
	}
	return req
}

func (f *Flow) usable() error {
	if f.closed {
		return errors.SetCustomError(constant.ErrCheckoutNotStarted)
	}
	return nil
}

// enterVerification must be called with mu held.
func (f *Flow) enterVerification() {
	f.cancelTicker()
	f.step = constant.CheckoutStepVerification
	f.countdown = f.window
	f.proof = nil

	ch, stop := f.newTicker(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	f.stopTicker = func() {
		cancel()
		stop()
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				f.Tick()
			}
		}
	}()
}

// leaveVerification must be called with mu held.
func (f *Flow) leaveVerification() {
	f.cancelTicker()
	f.step = constant.CheckoutStepPayment
	f.countdown = f.window
	f.proof = nil
}

func (f *Flow) cancelTicker() {
	if f.stopTicker != nil {
		f.stopTicker()
		f.stopTicker = nil
	}
}
