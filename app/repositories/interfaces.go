package repositories

import "inkwell/app/models"

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	List(limit, offset int) ([]*models.Post, error)
	ListPublished() ([]*models.Post, error)
	ListByAuthor(authorID int) ([]*models.Post, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	ListByPost(postID int) ([]*models.Comment, error)
	ListTopLevel(postID int) ([]*models.Comment, error)
	ListReplies(parentID int) ([]*models.Comment, error)
	CountByPost(postID int) (int, error)
	DeleteByPost(postID int) error
}

// ReactionRepository defines the interface for like/dislike data access.
// Toggle must be atomic: the read and the conditional write happen in one
// store transaction.
type ReactionRepository interface {
	Toggle(userID, postID int, kind models.ReactionKind) (*models.Reaction, error)
	Get(userID, postID int) (*models.Reaction, error)
	Counts(postID int) (likes, dislikes int, err error)
	DeleteByPost(postID int) error
}

// FavoriteRepository defines the interface for favorite data access
type FavoriteRepository interface {
	Toggle(userID, postID int) (added bool, err error)
	Exists(userID, postID int) (bool, error)
	CountByPost(postID int) (int, error)
	ListByUser(userID int) ([]*models.Favorite, error)
	DeleteByPost(postID int) error
}

// RatingRepository defines the interface for rating data access
type RatingRepository interface {
	Upsert(rating *models.Rating) error
	Get(userID, postID int) (*models.Rating, error)
	AverageByPost(postID int) (avg float64, count int, err error)
	DeleteByPost(postID int) error
}

// UserRepository defines the interface for user and profile data access.
// Create persists the user and its profile in a single transaction.
type UserRepository interface {
	Create(user *models.User, profile *models.Profile) error
	GetByID(id int) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	GetProfile(userID int) (*models.Profile, error)
	GetProfileByToken(token string) (*models.Profile, error)
	UpdateProfile(profile *models.Profile) error
	ListAuthors() ([]*models.User, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id int) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	List() ([]*models.Category, error)
}

// ContactRepository defines the interface for contact message data access
type ContactRepository interface {
	Create(message *models.ContactMessage) error
	List(limit, offset int) ([]*models.ContactMessage, error)
}
