package controllers

import (
	"net/http"

	"inkwell/app/middleware"
	"inkwell/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Create handles POST /api/posts/{id}/comments
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		sendError(w, err)
		return
	}

	var body struct {
		Content  string `json:"content"`
		ParentID *int   `json:"parent_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		sendError(w, err)
		return
	}

	comment, err := cc.commentService.PostComment(middleware.UserID(r), postID, body.Content, body.ParentID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}

// Index handles GET /api/posts/{id}/comments with an optional page parameter
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		sendError(w, err)
		return
	}

	comments, total, err := cc.commentService.ListComments(postID, queryInt(r, "page"), queryInt(r, "per_page"))
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"comments": comments,
		"total":    total,
	})
}
