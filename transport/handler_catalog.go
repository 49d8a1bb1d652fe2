package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/eyewear-store/model"
	utilsContext "github.com/muhammadheryan/eyewear-store/utils/context"
)

// ListProducts handler
// @Summary List products
// @Tags Catalogue
// @Produce json
// @Param category query string false "Category ID"
// @Param q query string false "Search on name and brand"
// @Param sort query string false "name-asc, price-asc or price-desc"
// @Success 200 {array} model.Product
// @Router /products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.ProductFilter{
		CategoryID: q.Get("category"),
		Search:     q.Get("q"),
		Sort:       model.ProductSort(q.Get("sort")),
	}

	res, err := s.ProductApp.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetProduct handler
// @Summary Product detail
// @Tags Catalogue
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.ProductDetail
// @Failure 400 {object} Response
// @Router /products/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utilsContext.GetUserID(ctx)

	res, err := s.ProductApp.GetProduct(ctx, mux.Vars(r)["id"], userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListCategories handler
// @Summary List categories
// @Tags Catalogue
// @Produce json
// @Success 200 {array} model.Category
// @Router /categories [get]
func (s *RestHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	res, err := s.ProductApp.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetCategory handler
// @Summary Category detail
// @Tags Catalogue
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} model.Category
// @Router /categories/{id} [get]
func (s *RestHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	res, err := s.ProductApp.GetCategory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListEducation handler
// @Summary List education articles
// @Tags Catalogue
// @Produce json
// @Success 200 {array} model.EducationArticle
// @Router /education [get]
func (s *RestHandler) ListEducation(w http.ResponseWriter, r *http.Request) {
	res, err := s.EducationApp.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetEducation handler
// @Summary Education article
// @Tags Catalogue
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} model.EducationArticle
// @Router /education/{id} [get]
func (s *RestHandler) GetEducation(w http.ResponseWriter, r *http.Request) {
	res, err := s.EducationApp.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AdminDashboard handler
// @Summary Back-office counts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.DashboardStats
// @Router /admin/dashboard [get]
func (s *RestHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	res, err := s.ProductApp.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateProduct handler
// @Summary Create product
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ProductRequest true "Product"
// @Success 200 {object} model.Product
// @Router /admin/products [post]
func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ProductApp.CreateProduct(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateProduct handler
// @Summary Update product
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body model.ProductRequest true "Product"
// @Success 200 {object} model.Product
// @Router /admin/products/{id} [put]
func (s *RestHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ProductApp.UpdateProduct(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// DeleteProduct handler
// @Summary Delete product
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} Response
// @Router /admin/products/{id} [delete]
func (s *RestHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.ProductApp.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// CreateEducation handler
// @Summary Create education article
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.EducationRequest true "Article"
// @Success 200 {object} model.EducationArticle
// @Router /admin/education [post]
func (s *RestHandler) CreateEducation(w http.ResponseWriter, r *http.Request) {
	var req model.EducationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.EducationApp.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateEducation handler
// @Summary Update education article
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param request body model.EducationRequest true "Article"
// @Success 200 {object} model.EducationArticle
// @Router /admin/education/{id} [put]
func (s *RestHandler) UpdateEducation(w http.ResponseWriter, r *http.Request) {
	var req model.EducationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.EducationApp.Update(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// DeleteEducation handler
// @Summary Delete education article
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} Response
// @Router /admin/education/{id} [delete]
func (s *RestHandler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	if err := s.EducationApp.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
