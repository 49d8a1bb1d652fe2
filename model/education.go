package model

type EducationArticle struct {
	ID           string `db:"id" json:"id"`
	Title        string `db:"title" json:"title"`
	Content      string `db:"content" json:"content"`
	ImageURL     string `db:"image_url" json:"image_url"`
	DisplayOrder int    `db:"display_order" json:"display_order"`
}

type EducationRequest struct {
	Title        string `json:"title" validate:"required"`
	Content      string `json:"content" validate:"required"`
	ImageURL     string `json:"image_url" validate:"omitempty,url"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}
