package routes

import (
	"inkwell/app/config"
	"inkwell/app/controllers"
	"inkwell/app/middleware"
	"inkwell/app/notify"
	"inkwell/app/repositories"
	"inkwell/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// SetupRoutes wires the full API on top of the provided Badger DB and
// returns the router.
func SetupRoutes(db *badger.DB, cfg *config.Config, notifier notify.Notifier) *mux.Router {
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)
	reactionRepo := repositories.NewBadgerReactionRepository(db)
	favoriteRepo := repositories.NewBadgerFavoriteRepository(db)
	ratingRepo := repositories.NewBadgerRatingRepository(db)
	userRepo := repositories.NewBadgerUserRepository(db)
	categoryRepo := repositories.NewBadgerCategoryRepository(db)
	contactRepo := repositories.NewBadgerContactRepository(db)

	postService := services.NewPostService(postRepo, commentRepo, categoryRepo, ratingRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, postRepo, userRepo)
	reactionService := services.NewReactionService(reactionRepo, favoriteRepo, ratingRepo, postRepo, userRepo, notifier)
	aggregationService := services.NewAggregationService(reactionRepo, favoriteRepo, ratingRepo, commentRepo, postRepo)
	userService := services.NewUserService(userRepo, notifier, cfg.BaseURL)
	categoryService := services.NewCategoryService(categoryRepo, userRepo)
	contactService := services.NewContactService(contactRepo, userRepo, notifier, cfg.ContactEmail)

	postController := controllers.NewPostController(postService)
	commentController := controllers.NewCommentController(commentService)
	engagementController := controllers.NewEngagementController(reactionService, aggregationService)
	authController := controllers.NewAuthController(userService, cfg.JWTSecret)
	authorController := controllers.NewAuthorController(userService, aggregationService)
	categoryController := controllers.NewCategoryController(categoryService)
	contactController := controllers.NewContactController(contactService)

	router := mux.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Auth(cfg.JWTSecret))

	api := router.PathPrefix("/api").Subrouter()

	// Posts
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}", postController.Update).Methods("PUT")
	posts.HandleFunc("/{id:[0-9]+}", postController.Delete).Methods("DELETE")
	posts.HandleFunc("/{id:[0-9]+}/publish", postController.Publish(true)).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/unpublish", postController.Publish(false)).Methods("POST")

	// Comments
	posts.HandleFunc("/{id:[0-9]+}/comments", commentController.Index).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/comments", commentController.Create).Methods("POST")

	// Engagement
	posts.HandleFunc("/{id:[0-9]+}/like", engagementController.Like).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/dislike", engagementController.Dislike).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/favorite", engagementController.Favorite).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/rate", engagementController.Rate).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/engagement", engagementController.Counts).Methods("GET")
	api.HandleFunc("/favorites", engagementController.Favorites).Methods("GET")

	// Accounts
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", authController.Register).Methods("POST")
	auth.HandleFunc("/login", authController.Login).Methods("POST")
	auth.HandleFunc("/verify/{token}", authController.Verify).Methods("GET")
	auth.HandleFunc("/password", authController.ChangePassword).Methods("POST")
	api.HandleFunc("/profile", authController.Profile).Methods("GET")
	api.HandleFunc("/profile", authController.UpdateProfile).Methods("PUT")

	// Authors
	api.HandleFunc("/authors", authorController.Index).Methods("GET")
	api.HandleFunc("/authors/{id:[0-9]+}/posts", postController.ByAuthor).Methods("GET")
	api.HandleFunc("/authors/{id:[0-9]+}/engagement", authorController.Engagement).Methods("GET")

	// Categories
	api.HandleFunc("/categories", categoryController.Index).Methods("GET")
	api.HandleFunc("/categories", categoryController.Create).Methods("POST")

	// Contact
	api.HandleFunc("/contact", contactController.Submit).Methods("POST")
	api.HandleFunc("/contact", contactController.Index).Methods("GET")

	return router
}
