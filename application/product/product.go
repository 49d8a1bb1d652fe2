package product

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/muhammadheryan/eyewear-store/application/wishlist"
	"github.com/muhammadheryan/eyewear-store/constant"
	"github.com/muhammadheryan/eyewear-store/model"
	categoryRepo "github.com/muhammadheryan/eyewear-store/repository/category"
	educationRepo "github.com/muhammadheryan/eyewear-store/repository/education"
	productRepo "github.com/muhammadheryan/eyewear-store/repository/product"
	redisRepo "github.com/muhammadheryan/eyewear-store/repository/redis"
	"github.com/muhammadheryan/eyewear-store/utils/errors"
	"github.com/muhammadheryan/eyewear-store/utils/logger"
	validatorx "github.com/muhammadheryan/eyewear-store/utils/validator"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// tryOnCategories are the category name fragments whose products can be
// tried on virtually.
var tryOnCategories = []string{"eyeglasses", "sunglasses"}

type ProductApp interface {
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	// GetProduct returns the product detail. userID may be empty for
	// anonymous visitors, in which case Wishlisted is always false.
	GetProduct(ctx context.Context, id, userID string) (*model.ProductDetail, error)
	GetProductsByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	CreateProduct(ctx context.Context, req *model.ProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, req *model.ProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
}

type productAppImpl struct {
	productRepo   productRepo.ProductRepository
	categoryRepo  categoryRepo.CategoryRepository
	educationRepo educationRepo.EducationRepository
	redisRepo     redisRepo.Repository
	wishlistApp   wishlist.WishlistApp
}

func NewProductApp(
	productRepo productRepo.ProductRepository,
	categoryRepo categoryRepo.CategoryRepository,
	educationRepo educationRepo.EducationRepository,
	redisRepo redisRepo.Repository,
	wishlistApp wishlist.WishlistApp,
) ProductApp {
	return &productAppImpl{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		educationRepo: educationRepo,
		redisRepo:     redisRepo,
		wishlistApp:   wishlistApp,
	}
}

func (s *productAppImpl) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	items, err := s.productRepo.List(ctx)
	if err != nil {
		logger.Error("[ListProducts] error productRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	fold := cases.Fold()
	search := fold.String(strings.TrimSpace(filter.Search))

	result := make([]model.Product, 0, len(items))
	for _, p := range items {
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if search != "" &&
			!strings.Contains(fold.String(p.Name), search) &&
			!strings.Contains(fold.String(p.Brand), search) {
			continue
		}
		result = append(result, p)
	}

	switch filter.Sort {
	case model.ProductSortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price.LessThan(result[j].Price) })
	case model.ProductSortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price.GreaterThan(result[j].Price) })
	case model.ProductSortNameAsc, "":
		sort.SliceStable(result, func(i, j int) bool { return fold.String(result[i].Name) < fold.String(result[j].Name) })
	default:
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	return result, nil
}

func (s *productAppImpl) GetProduct(ctx context.Context, id, userID string) (*model.ProductDetail, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetProduct] error productRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	detail := &model.ProductDetail{Product: *product}

	if product.CategoryID != "" {
		category, err := s.categoryRepo.GetByID(ctx, product.CategoryID)
		if err != nil {
			logger.Error("[GetProduct] error categoryRepo.GetByID", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if category != nil {
			detail.Category = category
			detail.TryOnAvailable = TryOnAvailable(category.Name)
		}
	}

	if userID != "" && s.wishlistApp != nil {
		wishlisted, err := s.wishlistApp.IsWishlisted(ctx, userID, id)
		if err != nil {
			logger.Warn("[GetProduct] error wishlistApp.IsWishlisted", zap.String("error", err.Error()))
		}
		detail.Wishlisted = wishlisted
	}

	return detail, nil
}

// TryOnAvailable reports whether products of the named category support
// virtual try-on.
func TryOnAvailable(categoryName string) bool {
	name := cases.Fold().String(categoryName)
	for _, c := range tryOnCategories {
		if strings.Contains(name, c) {
			return true
		}
	}
	return false
}

func (s *productAppImpl) GetProductsByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	items, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		logger.Error("[GetProductsByIDs] error productRepo.GetByIDs", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

func (s *productAppImpl) CreateProduct(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	product := toProduct(uuid.NewString(), req)
	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("[CreateProduct] error productRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return product, nil
}

func (s *productAppImpl) UpdateProduct(ctx context.Context, id string, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[UpdateProduct] error productRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	product := toProduct(id, req)
	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("[UpdateProduct] error productRepo.Update", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return product, nil
}

func (s *productAppImpl) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("[DeleteProduct] error productRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *productAppImpl) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := s.categoryRepo.List(ctx)
	if err != nil {
		logger.Error("[ListCategories] error categoryRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

func (s *productAppImpl) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetCategory] error categoryRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if category == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return category, nil
}

func (s *productAppImpl) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	products, err := s.productRepo.Count(ctx)
	if err != nil {
		logger.Error("[Dashboard] error productRepo.Count", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	categories, err := s.categoryRepo.Count(ctx)
	if err != nil {
		logger.Error("[Dashboard] error categoryRepo.Count", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	articles, err := s.educationRepo.Count(ctx)
	if err != nil {
		logger.Error("[Dashboard] error educationRepo.Count", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	queue, err := s.redisRepo.ListVerificationQueue(ctx)
	if err != nil {
		logger.Error("[Dashboard] error redisRepo.ListVerificationQueue", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.DashboardStats{
		Products:             products,
		Categories:           categories,
		EducationArticles:    articles,
		PendingVerifications: len(queue),
	}, nil
}

func validateProduct(req *model.ProductRequest) error {
	if err := validatorx.ValidateStruct(req); err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if req.Price.IsNegative() {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return nil
}

func toProduct(id string, req *model.ProductRequest) *model.Product {
	return &model.Product{
		ID:          id,
		Name:        req.Name,
		Brand:       req.Brand,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Offer:       req.Offer,
		FrameType:   req.FrameType,
		LensType:    req.LensType,
	}
}
