package cart

import (
	"context"
	"strings"

	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
	"github.com/muhammadheryan/eyewear-store/repository/kv"
	productRepo "github.com/muhammadheryan/eyewear-store/repository/product"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	"github.com/muhammadheryan/eyewear-store/utils/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CartApp interface {
	Get(ctx context.Context, userID string) ([]model.CartLine, error)
	Add(ctx context.Context, userID string, req *model.AddToCartRequest) ([]model.CartLine, error)
	// UpdateQuantity sets the quantity of a line. A quantity of zero or less
	// removes the line.
	UpdateQuantity(ctx context.Context, userID string, key model.CartLineKey, quantity int) ([]model.CartLine, error)
	Remove(ctx context.Context, userID string, key model.CartLineKey) ([]model.CartLine, error)
	Clear(ctx context.Context, userID string) error
	Count(ctx context.Context, userID string) (int, error)
	View(ctx context.Context, userID string) (*model.CartView, error)
}

type cartAppImpl struct {
	store       kv.Store
	productRepo productRepo.ProductRepository
}

func NewCartApp(store kv.Store, productRepo productRepo.ProductRepository) CartApp {
	return &cartAppImpl{store: store, productRepo: productRepo}
}

func (s *cartAppImpl) Get(ctx context.Context, userID string) ([]model.CartLine, error) {
	if userID == "" {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	return s.load(ctx, "[Get]", userID)
}

func (s *cartAppImpl) Add(ctx context.Context, userID string, req *model.AddToCartRequest) ([]model.CartLine, error) {
	if userID == "" {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	if req.ProductID == "" || req.Quantity < 1 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	// an unnamed prescription would share the plain line's key
	if rx := req.Prescription; rx != nil && (strings.TrimSpace(rx.FileName) == "" || rx.Data == "") {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	lines, err := s.load(ctx, "[Add]", userID)
	if err != nil {
		return nil, err
	}

	added := model.CartLine{ProductID: req.ProductID, Quantity: req.Quantity, Prescription: req.Prescription}
	merged := false
	for i := range lines {
		if lines[i].Key() == added.Key() {
			lines[i].Quantity += added.Quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, added)
	}

	if err := s.save(ctx, "[Add]", userID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *cartAppImpl) UpdateQuantity(ctx context.Context, userID string, key model.CartLineKey, quantity int) ([]model.CartLine, error) {
	if quantity <= 0 {
		return s.Remove(ctx, userID, key)
	}
	if userID == "" {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	lines, err := s.load(ctx, "[UpdateQuantity]", userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range lines {
		if lines[i].Key() == key {
			lines[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return lines, nil
	}

	if err := s.save(ctx, "[UpdateQuantity]", userID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *cartAppImpl) Remove(ctx context.Context, userID string, key model.CartLineKey) ([]model.CartLine, error) {
	if userID == "" {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	lines, err := s.load(ctx, "[Remove]", userID)
	if err != nil {
		return nil, err
	}

	kept := make([]model.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.Key() != key {
			kept = append(kept, line)
		}
	}

	if err := s.save(ctx, "[Remove]", userID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *cartAppImpl) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.SetCustomError(constant.ErrUnauthorize)
	}
	return s.save(ctx, "[Clear]", userID, []model.CartLine{})
}

// Count is the sum of line quantities.
func (s *cartAppImpl) Count(ctx context.Context, userID string) (int, error) {
	lines, err := s.Get(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count, nil
}

func (s *cartAppImpl) View(ctx context.Context, userID string) (*model.CartView, error) {
	lines, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &model.CartView{Items: make([]model.CartViewItem, 0, len(lines)), Total: decimal.Zero}
	if len(lines) == 0 {
		return view, nil
	}

	products, err := s.productRepo.GetByIDs(ctx, ProductIDs(lines))
	if err != nil {
		logger.Error("[View] err productRepo.GetByIDs", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		item := model.CartViewItem{
			Product:  product,
			Quantity: line.Quantity,
			Subtotal: product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		}
		if line.Prescription != nil {
			item.PrescriptionFileName = line.Prescription.FileName
		}
		view.Items = append(view.Items, item)
		view.Count += line.Quantity
		view.Total = view.Total.Add(item.Subtotal)
	}
	return view, nil
}

// ProductIDs returns the distinct product ids referenced by lines, in order
// of first appearance.
func ProductIDs(lines []model.CartLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}

func (s *cartAppImpl) load(ctx context.Context, op, userID string) ([]model.CartLine, error) {
	var lines []model.CartLine
	ok, err := s.store.Get(ctx, constant.StorageKey(constant.StorageKeyCart, userID), &lines)
	if err != nil {
		logger.Error(op+" err store.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !ok || lines == nil {
		return []model.CartLine{}, nil
	}
	return lines, nil
}

func (s *cartAppImpl) save(ctx context.Context, op, userID string, lines []model.CartLine) error {
	if err := s.store.Set(ctx, constant.StorageKey(constant.StorageKeyCart, userID), lines); err != nil {
		logger.Error(op+" err store.Set", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}
