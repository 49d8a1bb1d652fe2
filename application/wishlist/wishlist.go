package wishlist

import (
	"context"

	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
	"github.com/muhammadheryan/eyewear-store/repository/kv"
	productRepo "github.com/muhammadheryan/eyewear-store/repository/product"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	"github.com/muhammadheryan/eyewear-store/utils/logger"
	"go.uber.org/zap"
)

type WishlistApp interface {
	List(ctx context.Context, userID string) ([]model.WishlistItem, error)
	// Toggle adds the product when absent and removes it otherwise. It
	// reports whether the product is wishlisted afterwards.
	Toggle(ctx context.Context, userID, productID string) (bool, error)
	IsWishlisted(ctx context.Context, userID, productID string) (bool, error)
	Count(ctx context.Context, userID string) (int, error)
	View(ctx context.Context, userID string) (*model.WishlistView, error)
}

type wishlistAppImpl struct {
	store       kv.Store
	productRepo productRepo.ProductRepository
}

func NewWishlistApp(store kv.Store, productRepo productRepo.ProductRepository) WishlistApp {
	return &wishlistAppImpl{store: store, productRepo: productRepo}
}

func (s *wishlistAppImpl) List(ctx context.Context, userID string) ([]model.WishlistItem, error) {
	if userID == "" {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	var items []model.WishlistItem
	ok, err := s.store.Get(ctx, constant.StorageKey(constant.StorageKeyWishlist, userID), &items)
	if err != nil {
		logger.Error("[List] err store.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !ok || items == nil {
		return []model.WishlistItem{}, nil
	}
	return items, nil
}

func (s *wishlistAppImpl) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	if productID == "" {
		return false, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	items, err := s.List(ctx, userID)
	if err != nil {
		return false, err
	}

	kept := make([]model.WishlistItem, 0, len(items)+1)
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	added := len(kept) == len(items)
	if added {
		kept = append(kept, model.WishlistItem{ProductID: productID})
	}

	if err := s.store.Set(ctx, constant.StorageKey(constant.StorageKeyWishlist, userID), kept); err != nil {
		logger.Error("[Toggle] err store.Set", zap.String("error", err.Error()))
		return false, errors.SetCustomError(constant.ErrInternal)
	}
	return added, nil
}

func (s *wishlistAppImpl) IsWishlisted(ctx context.Context, userID, productID string) (bool, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, item := range items {
		if item.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (s *wishlistAppImpl) Count(ctx context.Context, userID string) (int, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// View resolves wishlisted products. Products that no longer exist are left out.
func (s *wishlistAppImpl) View(ctx context.Context, userID string) (*model.WishlistView, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &model.WishlistView{Items: []model.Product{}}
	if len(items) == 0 {
		return view, nil
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		logger.Error("[View] err productRepo.GetByIDs", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			view.Items = append(view.Items, p)
		}
	}
	view.Count = len(view.Items)
	return view, nil
}
