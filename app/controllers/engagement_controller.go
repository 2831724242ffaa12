package controllers

import (
	"net/http"

	"inkwell/app/middleware"
	"inkwell/app/services"
)

// EngagementController handles likes, dislikes, favorites and ratings
type EngagementController struct {
	reactionService    *services.ReactionService
	aggregationService *services.AggregationService
}

// NewEngagementController creates a new EngagementController
func NewEngagementController(
	reactionService *services.ReactionService,
	aggregationService *services.AggregationService,
) *EngagementController {
	return &EngagementController{
		reactionService:    reactionService,
		aggregationService: aggregationService,
	}
}

// Like handles POST /api/posts/{id}/like
func (ec *EngagementController) Like(w http.ResponseWriter, r *http.Request) {
	ec.toggle(w, r, ec.reactionService.ToggleLike)
}

// Dislike handles POST /api/posts/{id}/dislike
func (ec *EngagementController) Dislike(w http.ResponseWriter, r *http.Request) {
	ec.toggle(w, r, ec.reactionService.ToggleDislike)
}

func (ec *EngagementController) toggle(w http.ResponseWriter, r *http.Request, fn func(int, int) (*services.ReactionResult, error)) {
	postID, err := pathID(r, "id")
	if err != nil {
		sendError(w, err)
		return
	}

	result, err := fn(middleware.UserID(r), postID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, result)
}

// Favorite handles POST /api/posts/{id}/favorite
func (ec *EngagementController) Favorite(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		sendError(w, err)
		return
	}

	result, err := ec.reactionService.ToggleFavorite(middleware.UserID(r), postID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, result)
}

// Rate handles POST /api/posts/{id}/rate
func (ec *EngagementController) Rate(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		sendError(w, err)
		return
	}

	var body struct {
		Score int `json:"score"`
	}
	if err := decodeBody(r, &body); err != nil {
		sendError(w, err)
		return
	}

	rating, err := ec.reactionService.SubmitRating(middleware.UserID(r), postID, body.Score)
	if err != nil {
		sendError(w, err)
		return
	}

	avg, count, err := ec.aggregationService.AverageRating(postID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"rating":         rating,
		"average_rating": avg,
		"ratings_count":  count,
	})
}

// Favorites handles GET /api/favorites, the caller's reading list with
// optional page and per_page parameters
func (ec *EngagementController) Favorites(w http.ResponseWriter, r *http.Request) {
	favorites, total, err := ec.reactionService.ListFavorites(middleware.UserID(r), queryInt(r, "page"), queryInt(r, "per_page"))
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": favorites,
		"total":     total,
	})
}

// Counts handles GET /api/posts/{id}/engagement
func (ec *EngagementController) Counts(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		sendError(w, err)
		return
	}

	counts, err := ec.aggregationService.PostCounts(postID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, counts)
}
