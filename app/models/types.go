package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// UserType distinguishes what a user is allowed to do on the site.
type UserType string

const (
	UserTypeAdmin  UserType = "admin"
	UserTypeAuthor UserType = "author"
	UserTypeReader UserType = "reader"
)

// ReactionKind is the tri-state reaction a user holds on a post. A user has
// at most one Reaction row per post, so like and dislike can never coexist.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// User is an account on the site. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           int       `json:"id" validate:"gte=0"`
	Username     string    `json:"username" validate:"required,min=3,max=50"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-" validate:"required"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile extends a User. Every user has exactly one profile, created in the
// same transaction as the user itself.
type Profile struct {
	UserID            int      `json:"user_id" validate:"gte=0"`
	UserType          UserType `json:"user_type" validate:"required,oneof=admin author reader"`
	Bio               string   `json:"bio" validate:"max=2000"`
	Picture           string   `json:"picture"`
	SocialMedia       string   `json:"social_media" validate:"omitempty,url"`
	EmailVerified     bool     `json:"email_verified"`
	VerificationToken string   `json:"-"`
}

// Category groups blog posts. Names are unique.
type Category struct {
	ID          int    `json:"id" validate:"gte=0"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// Post represents a blog post. Unpublished posts are drafts: they never show
// up in public listings or aggregates.
type Post struct {
	ID            int        `json:"id" validate:"gte=0"`
	Title         string     `json:"title" validate:"required,min=3,max=200"`
	Content       string     `json:"content" validate:"required,min=10"`
	AuthorID      int        `json:"author_id" validate:"required,gt=0"`
	CategoryIDs   []int      `json:"category_ids" validate:"-"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	Published     bool       `json:"published"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Comments      []*Comment `json:"comments,omitempty" validate:"-"`
}

// Reaction is a user's like or dislike on a post, keyed by the (user, post)
// pair in the store.
type Reaction struct {
	UserID    int          `json:"user_id" validate:"required,gt=0"`
	PostID    int          `json:"post_id" validate:"required,gt=0"`
	Kind      ReactionKind `json:"kind" validate:"required,oneof=like dislike"`
	CreatedAt time.Time    `json:"created_at"`
}

// Favorite is a user's bookmark of a post, independent of any reaction.
type Favorite struct {
	UserID    int       `json:"user_id" validate:"required,gt=0"`
	PostID    int       `json:"post_id" validate:"required,gt=0"`
	CreatedAt time.Time `json:"created_at"`
}

// Rating is a 1-5 score a user assigns to a post, one per (user, post);
// resubmitting overwrites the score in place.
type Rating struct {
	UserID    int       `json:"user_id" validate:"required,gt=0"`
	PostID    int       `json:"post_id" validate:"required,gt=0"`
	Score     int       `json:"score" validate:"required,min=1,max=5"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a threaded remark on a post. ParentID is nil for top-level
// comments; a reply's parent must belong to the same post. Comments are
// immutable once created.
type Comment struct {
	ID        int        `json:"id" validate:"gte=0"`
	PostID    int        `json:"post_id" validate:"required,gt=0"`
	UserID    int        `json:"user_id" validate:"required,gt=0"`
	Author    string     `json:"author" validate:"required,min=2,max=50"`
	Content   string     `json:"content" validate:"required,min=1,max=2000"`
	ParentID  *int       `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Replies   []*Comment `json:"replies,omitempty" validate:"-"`
}

// ContactMessage stores a submission from the contact form.
type ContactMessage struct {
	ID          int       `json:"id" validate:"gte=0"`
	Name        string    `json:"name" validate:"required,min=2,max=100"`
	Email       string    `json:"email" validate:"required,email"`
	Message     string    `json:"message" validate:"required,min=1,max=5000"`
	SubmittedAt time.Time `json:"submitted_at"`
}
