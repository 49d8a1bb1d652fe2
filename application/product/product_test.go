package product_test

import (
	"context"
	"errors"
	"testing"

	appproduct "github.com/muhammadheryan/eyewear-store/application/product"
	"github.com/muhammadheryan/eyewear-store/constant"
	wishlistmocks "github.com/muhammadheryan/eyewear-store/mocks/application/wishlist"
	categorymocks "github.com/muhammadheryan/eyewear-store/mocks/repository/category"
	educationmocks "github.com/muhammadheryan/eyewear-store/mocks/repository/education"
	productmocks "github.com/muhammadheryan/eyewear-store/mocks/repository/product"
	redismocks "github.com/muhammadheryan/eyewear-store/mocks/repository/redis"
	"github.com/muhammadheryan/eyewear-store/model"
	cerr "github.com/muhammadheryan/eyewear-store/utils/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fields struct {
	productRepo   *productmocks.ProductRepository
	categoryRepo  *categorymocks.CategoryRepository
	educationRepo *educationmocks.EducationRepository
	redisRepo     *redismocks.RedisRepository
	wishlistApp   *wishlistmocks.WishlistApp
}

func newFields(t *testing.T) fields {
	return fields{
		productRepo:   productmocks.NewProductRepository(t),
		categoryRepo:  categorymocks.NewCategoryRepository(t),
		educationRepo: educationmocks.NewEducationRepository(t),
		redisRepo:     redismocks.NewRedisRepository(t),
		wishlistApp:   wishlistmocks.NewWishlistApp(t),
	}
}

func (f fields) app() appproduct.ProductApp {
	return appproduct.NewProductApp(f.productRepo, f.categoryRepo, f.educationRepo, f.redisRepo, f.wishlistApp)
}

func catalogue() []model.Product {
	return []model.Product{
		{ID: "1", Name: "Aviator Gold", Brand: "RayBan", Price: decimal.NewFromInt(1500), CategoryID: "sun"},
		{ID: "2", Name: "blue light reader", Brand: "Lenskart", Price: decimal.NewFromInt(499), CategoryID: "eye"},
		{ID: "3", Name: "Cat Eye", Brand: "Vogue", Price: decimal.NewFromInt(800), CategoryID: "eye"},
		{ID: "4", Name: "Drift Sport", Brand: "Oakley", Price: decimal.NewFromInt(2200), CategoryID: "sun"},
	}
}

func ids(items []model.Product) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestProductApp_ListProducts(t *testing.T) {
	tests := []struct {
		name    string
		filter  model.ProductFilter
		want    []string
		wantErr bool
		errCode constant.ErrorType
	}{
		{
			name:   "success: default sort is name ascending, case-insensitive",
			filter: model.ProductFilter{},
			want:   []string{"1", "2", "3", "4"},
		},
		{
			name:   "success: filter by category",
			filter: model.ProductFilter{CategoryID: "eye"},
			want:   []string{"2", "3"},
		},
		{
			name:   "success: search matches brand ignoring case",
			filter: model.ProductFilter{Search: "OAKLEY"},
			want:   []string{"4"},
		},
		{
			name:   "success: search matches name",
			filter: model.ProductFilter{Search: " eye "},
			want:   []string{"3"},
		},
		{
			name:   "success: price ascending",
			filter: model.ProductFilter{Sort: model.ProductSortPriceAsc},
			want:   []string{"2", "3", "1", "4"},
		},
		{
			name:   "success: price descending within category",
			filter: model.ProductFilter{CategoryID: "sun", Sort: model.ProductSortPriceDesc},
			want:   []string{"4", "1"},
		},
		{
			name:    "error: unknown sort",
			filter:  model.ProductFilter{Sort: "popular"},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			f.productRepo.On("List", mock.Anything).Return(catalogue(), nil).Once()

			got, err := f.app().ListProducts(context.Background(), tt.filter)
			if tt.wantErr {
				assert.True(t, cerr.IsType(err, tt.errCode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	t.Run("error: repository fails", func(t *testing.T) {
		f := newFields(t)
		f.productRepo.On("List", mock.Anything).Return(nil, errors.New("db error")).Once()

		_, err := f.app().ListProducts(context.Background(), model.ProductFilter{})
		assert.True(t, cerr.IsType(err, constant.ErrInternal))
	})
}

func TestProductApp_GetProduct(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		mockCall func(f fields)
		want     *model.ProductDetail
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: sunglasses support try-on and wishlist flag is resolved",
			userID: "u1",
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, "1").Return(&catalogue()[0], nil).Once()
				f.categoryRepo.On("GetByID", mock.Anything, "sun").Return(&model.Category{ID: "sun", Name: "Sunglasses"}, nil).Once()
				f.wishlistApp.On("IsWishlisted", mock.Anything, "u1", "1").Return(true, nil).Once()
			},
			want: &model.ProductDetail{
				Product:        catalogue()[0],
				Category:       &model.Category{ID: "sun", Name: "Sunglasses"},
				TryOnAvailable: true,
				Wishlisted:     true,
			},
		},
		{
			name: "success: anonymous visitor, category without try-on",
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, "1").Return(&catalogue()[0], nil).Once()
				f.categoryRepo.On("GetByID", mock.Anything, "sun").Return(&model.Category{ID: "sun", Name: "Contact Lenses"}, nil).Once()
			},
			want: &model.ProductDetail{
				Product:  catalogue()[0],
				Category: &model.Category{ID: "sun", Name: "Contact Lenses"},
			},
		},
		{
			name: "error: product not found",
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, "1").Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: category lookup fails",
			mockCall: func(f fields) {
				f.productRepo.On("GetByID", mock.Anything, "1").Return(&catalogue()[0], nil).Once()
				f.categoryRepo.On("GetByID", mock.Anything, "sun").Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			got, err := f.app().GetProduct(context.Background(), "1", tt.userID)
			if tt.wantErr {
				assert.True(t, cerr.IsType(err, tt.errCode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTryOnAvailable(t *testing.T) {
	assert.True(t, appproduct.TryOnAvailable("Eyeglasses"))
	assert.True(t, appproduct.TryOnAvailable("Kids SUNGLASSES"))
	assert.False(t, appproduct.TryOnAvailable("Contact Lenses"))
	assert.False(t, appproduct.TryOnAvailable(""))
}

func TestProductApp_CreateProduct(t *testing.T) {
	valid := model.ProductRequest{
		Name:       "Aviator",
		Brand:      "RayBan",
		Price:      decimal.NewFromInt(1500),
		Stock:      10,
		ImageURL:   "https://cdn.example.com/aviator.png",
		CategoryID: "sun",
		FrameType:  model.FrameTypeThickRim,
		LensType:   model.LensTypeBlueCut,
	}

	t.Run("success: product created with generated id", func(t *testing.T) {
		f := newFields(t)
		f.productRepo.
			On("Create", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
				return p.ID != "" && p.Name == "Aviator" && p.FrameType == model.FrameTypeThickRim
			})).
			Return(nil).
			Once()

		req := valid
		got, err := f.app().CreateProduct(context.Background(), &req)
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
	})

	invalid := map[string]func(r *model.ProductRequest){
		"unknown frame type": func(r *model.ProductRequest) { r.FrameType = "square" },
		"unknown lens type":  func(r *model.ProductRequest) { r.LensType = "polarized" },
		"negative price":     func(r *model.ProductRequest) { r.Price = decimal.NewFromInt(-1) },
		"missing name":       func(r *model.ProductRequest) { r.Name = "" },
		"bad image url":      func(r *model.ProductRequest) { r.ImageURL = "not a url" },
	}
	for name, mutate := range invalid {
		mutate := mutate
		t.Run("error: "+name, func(t *testing.T) {
			f := newFields(t)
			req := valid
			mutate(&req)

			_, err := f.app().CreateProduct(context.Background(), &req)
			assert.True(t, cerr.IsType(err, constant.ErrInvalidRequest))
		})
	}
}

func TestProductApp_UpdateProduct_NotFound(t *testing.T) {
	f := newFields(t)
	f.productRepo.On("GetByID", mock.Anything, "x").Return(nil, nil).Once()

	_, err := f.app().UpdateProduct(context.Background(), "x", &model.ProductRequest{
		Name:       "Aviator",
		Brand:      "RayBan",
		ImageURL:   "https://cdn.example.com/a.png",
		CategoryID: "sun",
		FrameType:  model.FrameTypeRimless,
	})
	assert.True(t, cerr.IsType(err, constant.ErrNotFound))
}

func TestProductApp_Dashboard(t *testing.T) {
	f := newFields(t)
	f.productRepo.On("Count", mock.Anything).Return(12, nil).Once()
	f.categoryRepo.On("Count", mock.Anything).Return(3, nil).Once()
	f.educationRepo.On("Count", mock.Anything).Return(5, nil).Once()
	f.redisRepo.On("ListVerificationQueue", mock.Anything).Return([]goredis.Z{{Member: "o1"}, {Member: "o2"}}, nil).Once()

	got, err := f.app().Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &model.DashboardStats{Products: 12, Categories: 3, EducationArticles: 5, PendingVerifications: 2}, got)
}
