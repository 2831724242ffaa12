package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/app/config"
	"inkwell/app/models"
	"inkwell/app/notify"
	"inkwell/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestRouter(t *testing.T) (*mux.Router, *badger.DB) {
	db := setupTestDB(t)
	cfg := config.Default()
	cfg.JWTSecret = "test-secret"
	router := SetupRoutes(db, cfg, &notify.LogNotifier{})
	return router, db
}

// doJSON performs a request with an optional JSON body and bearer token
func doJSON(t *testing.T, router *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), "body: %s", w.Body.String())
}

// registerAndLogin creates a verified account and returns its token and id
func registerAndLogin(t *testing.T, router *mux.Router, db *badger.DB, username string, userType models.UserType) (string, int) {
	t.Helper()
	w := doJSON(t, router, "POST", "/api/auth/register", "", map[string]interface{}{
		"username":  username,
		"email":     username + "@example.com",
		"password":  "supersecret",
		"user_type": userType,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		User models.User `json:"user"`
	}
	decodeResponse(t, w, &created)

	// the token never leaves the API, read it from the store
	userRepo := repositories.NewBadgerUserRepository(db)
	profile, err := userRepo.GetProfile(created.User.ID)
	require.NoError(t, err)

	w = doJSON(t, router, "GET", "/api/auth/verify/"+profile.VerificationToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, "POST", "/api/auth/login", "", map[string]string{
		"username": username,
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	decodeResponse(t, w, &login)
	require.NotEmpty(t, login.Token)
	return login.Token, created.User.ID
}

// createPublishedPost makes a post through the API and publishes it
func createPublishedPost(t *testing.T, router *mux.Router, token, title string) int {
	t.Helper()
	w := doJSON(t, router, "POST", "/api/posts", token, map[string]interface{}{
		"title":   title,
		"content": "some sufficiently long content",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var post models.Post
	decodeResponse(t, w, &post)

	w = doJSON(t, router, "POST", fmt.Sprintf("/api/posts/%d/publish", post.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return post.ID
}
