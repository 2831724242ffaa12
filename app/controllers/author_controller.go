package controllers

import (
	"net/http"

	"inkwell/app/services"
)

// AuthorController serves the author directory and per-author engagement
type AuthorController struct {
	userService        *services.UserService
	aggregationService *services.AggregationService
}

// NewAuthorController creates a new AuthorController
func NewAuthorController(userService *services.UserService, aggregationService *services.AggregationService) *AuthorController {
	return &AuthorController{userService: userService, aggregationService: aggregationService}
}

// Index handles GET /api/authors
func (ac *AuthorController) Index(w http.ResponseWriter, r *http.Request) {
	authors, err := ac.userService.ListAuthors()
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"authors": authors})
}

// Engagement handles GET /api/authors/{id}/engagement
func (ac *AuthorController) Engagement(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathID(r, "id")
	if err != nil {
		sendError(w, err)
		return
	}

	rollup, err := ac.aggregationService.AuthorCounts(authorID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, rollup)
}
