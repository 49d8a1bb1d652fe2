package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadheryan/eyewear-store/application/cart"
	"github.com/muhammadheryan/eyewear-store/application/order"
	"github.com/muhammadheryan/eyewear-store/cmd/config"
	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
	productRepo "github.com/muhammadheryan/eyewear-store/repository/product"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	"github.com/muhammadheryan/eyewear-store/utils/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultWindowSeconds = 300

// CheckoutApp keeps one checkout flow per signed-in user.
type CheckoutApp interface {
	// Start enters checkout, replacing any flow the user already had.
	Start(ctx context.Context, userID string) (*Flow, error)
	Get(userID string) (*Flow, error)
	Leave(userID string)
	// HandleAuthChange closes the flow of a user who signed out.
	HandleAuthChange(change model.AuthChange)
	Close()
}

type checkoutAppImpl struct {
	cfg         config.CheckoutConfig
	cartApp     cart.CartApp
	productRepo productRepo.ProductRepository
	orderApp    order.OrderApp
	newTicker   TickerFunc
	group       singleflight.Group

	mu    sync.Mutex
	flows map[string]*Flow
}

// NewCheckoutApp builds the registry. newTicker may be nil to use real
// one-second tickers.
func NewCheckoutApp(cfg config.CheckoutConfig, cartApp cart.CartApp, productRepo productRepo.ProductRepository, orderApp order.OrderApp, newTicker TickerFunc) CheckoutApp {
	if newTicker == nil {
		newTicker = realTicker
	}
	return &checkoutAppImpl{
		cfg:         cfg,
		cartApp:     cartApp,
		productRepo: productRepo,
		orderApp:    orderApp,
		newTicker:   newTicker,
		flows:       make(map[string]*Flow),
	}
}

func (s *checkoutAppImpl) Start(ctx context.Context, userID string) (*Flow, error) {
	if userID == "" {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	// a running submission still owns the cart and will clear it
	s.mu.Lock()
	if previous := s.flows[userID]; previous != nil {
		if !previous.closeUnlessSubmitting() {
			s.mu.Unlock()
			return nil, errors.SetCustomError(constant.ErrCheckoutInProgress)
		}
		delete(s.flows, userID)
	}
	s.mu.Unlock()

	lines, err := s.cartApp.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.SetCustomError(constant.ErrEmptyCart)
	}

	products, err := s.productRepo.GetByIDs(ctx, cart.ProductIDs(lines))
	if err != nil {
		logger.Error("[Start] err productRepo.GetByIDs", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	items, total := priceLines(lines, products)
	if len(items) == 0 {
		return nil, errors.SetCustomError(constant.ErrEmptyCart)
	}

	window := int(s.cfg.VerificationWindow / time.Second)
	if window <= 0 {
		window = defaultWindowSeconds
	}

	flow := &Flow{
		id:        uuid.NewString(),
		userID:    userID,
		cfg:       s.cfg,
		window:    window,
		orderApp:  s.orderApp,
		cartApp:   s.cartApp,
		group:     &s.group,
		newTicker: s.newTicker,
		items:     items,
		total:     total,
		step:      constant.CheckoutStepDetails,
		countdown: window,
	}

	s.mu.Lock()
	previous := s.flows[userID]
	s.flows[userID] = flow
	s.mu.Unlock()

	if previous != nil {
		previous.Close()
	}
	return flow, nil
}

// priceLines joins cart lines with the authoritative product prices. Lines
// whose product no longer exists are dropped.
func priceLines(lines []model.CartLine, products []model.Product) ([]model.OrderLineItem, decimal.Decimal) {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	total := decimal.Zero
	items := make([]model.OrderLineItem, 0, len(lines))
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		items = append(items, model.OrderLineItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			Quantity:     line.Quantity,
			UnitPrice:    product.Price,
			Prescription: line.Prescription,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return items, total
}

func (s *checkoutAppImpl) Get(userID string) (*Flow, error) {
	if userID == "" {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	s.mu.Lock()
	flow, ok := s.flows[userID]
	s.mu.Unlock()
	if !ok {
		return nil, errors.SetCustomError(constant.ErrCheckoutNotStarted)
	}
	return flow, nil
}

func (s *checkoutAppImpl) Leave(userID string) {
	s.mu.Lock()
	flow, ok := s.flows[userID]
	delete(s.flows, userID)
	s.mu.Unlock()

	if ok {
		flow.Close()
	}
}

func (s *checkoutAppImpl) HandleAuthChange(change model.AuthChange) {
	if change.Event != constant.AuthEventSignedOut {
		return
	}
	s.Leave(change.UserID)
}

func (s *checkoutAppImpl) Close() {
	s.mu.Lock()
	flows := s.flows
	s.flows = make(map[string]*Flow)
	s.mu.Unlock()

	for _, flow := range flows {
		flow.Close()
	}
}
