package controllers

import (
	"net/http"

	"inkwell/app/middleware"
	"inkwell/app/services"
)

// CategoryController handles HTTP requests for categories
type CategoryController struct {
	categoryService *services.CategoryService
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService *services.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// Index handles GET /api/categories
func (cc *CategoryController) Index(w http.ResponseWriter, r *http.Request) {
	categories, err := cc.categoryService.ListCategories()
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

// Create handles POST /api/categories
func (cc *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeBody(r, &body); err != nil {
		sendError(w, err)
		return
	}

	category, err := cc.categoryService.CreateCategory(middleware.UserID(r), body.Name, body.Description)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, category)
}
