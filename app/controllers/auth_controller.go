package controllers

import (
	"net/http"

	"inkwell/app/apperr"
	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/services"

	"github.com/gorilla/mux"
)

// AuthController handles registration, login and profile management
type AuthController struct {
	userService *services.UserService
	jwtSecret   string
}

// NewAuthController creates a new AuthController
func NewAuthController(userService *services.UserService, jwtSecret string) *AuthController {
	return &AuthController{userService: userService, jwtSecret: jwtSecret}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string          `json:"username"`
		Email    string          `json:"email"`
		Password string          `json:"password"`
		UserType models.UserType `json:"user_type"`
	}
	if err := decodeBody(r, &body); err != nil {
		sendError(w, err)
		return
	}

	result, err := ac.userService.Register(body.Username, body.Email, body.Password, body.UserType)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, result)
}

// Verify handles GET /api/auth/verify/{token}
func (ac *AuthController) Verify(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	user, err := ac.userService.VerifyEmail(token)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"verified": true,
		"user":     user,
	})
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		sendError(w, err)
		return
	}

	user, err := ac.userService.Authenticate(body.Username, body.Password)
	if err != nil {
		sendError(w, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, ac.jwtSecret)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// ChangePassword handles POST /api/auth/password
func (ac *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Current string `json:"current_password"`
		New     string `json:"new_password"`
	}
	if err := decodeBody(r, &body); err != nil {
		sendError(w, err)
		return
	}

	if err := ac.userService.ChangePassword(middleware.UserID(r), body.Current, body.New); err != nil {
		sendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Profile handles GET /api/profile
func (ac *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID <= 0 {
		sendError(w, apperr.Unauthenticated("authentication required"))
		return
	}

	profile, err := ac.userService.GetProfile(userID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/profile
func (ac *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Bio         string `json:"bio"`
		Picture     string `json:"picture"`
		SocialMedia string `json:"social_media"`
	}
	if err := decodeBody(r, &body); err != nil {
		sendError(w, err)
		return
	}

	profile, err := ac.userService.UpdateProfile(middleware.UserID(r), body.Bio, body.Picture, body.SocialMedia)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, profile)
}
