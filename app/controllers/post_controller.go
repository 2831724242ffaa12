package controllers

import (
	"net/http"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/services"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Index handles GET /api/posts: the public feed with optional q, category,
// author, sort=rating and page query parameters.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := services.ListOptions{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Author:   q.Get("author"),
		ByRating: q.Get("sort") == "rating",
		Page:     queryInt(r, "page"),
		PerPage:  queryInt(r, "per_page"),
	}

	posts, total, err := pc.postService.ListPublished(opts)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"posts": posts,
		"total": total,
	})
}

// Show handles GET /api/posts/{id}
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, err)
		return
	}

	post, err := pc.postService.GetPost(id)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles POST /api/posts
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var post models.Post
	if err := decodeBody(r, &post); err != nil {
		sendError(w, err)
		return
	}

	created, err := pc.postService.CreatePost(middleware.UserID(r), &post)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/posts/{id}
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, err)
		return
	}

	var post models.Post
	if err := decodeBody(r, &post); err != nil {
		sendError(w, err)
		return
	}
	post.ID = id

	updated, err := pc.postService.UpdatePost(middleware.UserID(r), &post)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/posts/{id}
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, err)
		return
	}

	if err := pc.postService.DeletePost(middleware.UserID(r), id); err != nil {
		sendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Publish handles POST /api/posts/{id}/publish and its unpublish twin
func (pc *PostController) Publish(publish bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			sendError(w, err)
			return
		}

		post, err := pc.postService.SetPublished(middleware.UserID(r), id, publish)
		if err != nil {
			sendError(w, err)
			return
		}
		sendJSON(w, http.StatusOK, post)
	}
}

// ByAuthor handles GET /api/authors/{id}/posts
func (pc *PostController) ByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathID(r, "id")
	if err != nil {
		sendError(w, err)
		return
	}

	posts, err := pc.postService.ListByAuthor(middleware.UserID(r), authorID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}
