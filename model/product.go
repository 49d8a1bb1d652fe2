package model

import "github.com/shopspring/decimal"

type FrameType string

const (
	FrameTypeThickRim FrameType = "thick-rim"
	FrameTypeHalfRim  FrameType = "half-rim"
	FrameTypeRimless  FrameType = "rimless"
	FrameTypeStandard FrameType = "standard"
)

func (f FrameType) Valid() bool {
	switch f {
	case FrameTypeThickRim, FrameTypeHalfRim, FrameTypeRimless, FrameTypeStandard:
		return true
	}
	return false
}

type LensType string

const (
	LensTypeNone        LensType = ""
	LensTypeBlueCut     LensType = "blue-cut"
	LensTypeProgressive LensType = "progressive"
	LensTypeBifocal     LensType = "bifocal"
)

func (l LensType) Valid() bool {
	switch l {
	case LensTypeNone, LensTypeBlueCut, LensTypeProgressive, LensTypeBifocal:
		return true
	}
	return false
}

type ProductSort string

const (
	ProductSortNameAsc   ProductSort = "name-asc"
	ProductSortPriceAsc  ProductSort = "price-asc"
	ProductSortPriceDesc ProductSort = "price-desc"
)

type Product struct {
	ID          string          `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Brand       string          `db:"brand" json:"brand"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Stock       int64           `db:"stock" json:"stock"`
	ImageURL    string          `db:"image_url" json:"image_url"`
	Description string          `db:"description" json:"description"`
	CategoryID  string          `db:"category_id" json:"category_id"`
	Offer       string          `db:"offer" json:"offer,omitempty"`
	FrameType   FrameType       `db:"frame_type" json:"frame_type"`
	LensType    LensType        `db:"lens_type" json:"lens_type,omitempty"`
}

// ProductRequest is the admin payload for creating or updating a product.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Brand       string          `json:"brand" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock" validate:"gte=0"`
	ImageURL    string          `json:"image_url" validate:"required,url"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id" validate:"required"`
	Offer       string          `json:"offer"`
	FrameType   FrameType       `json:"frame_type" validate:"required,frametype"`
	LensType    LensType        `json:"lens_type" validate:"lenstype"`
}

type ProductFilter struct {
	CategoryID string
	Search     string
	Sort       ProductSort
}

type Category struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// ProductDetail is a product joined with its category, as shown on the detail page.
type ProductDetail struct {
	Product
	Category       *Category `json:"category,omitempty"`
	TryOnAvailable bool      `json:"try_on_available"`
	Wishlisted     bool      `json:"wishlisted"`
}

type DashboardStats struct {
	Products             int `json:"products"`
	Categories           int `json:"categories"`
	EducationArticles    int `json:"education_articles"`
	PendingVerifications int `json:"pending_verifications"`
}
