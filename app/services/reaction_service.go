package services

import (
	"fmt"

	"inkwell/app/apperr"
	"inkwell/app/models"
	"inkwell/app/notify"
	"inkwell/app/repositories"

	log "github.com/sirupsen/logrus"
)

// ReactionService handles likes, dislikes, favorites and ratings on posts
type ReactionService struct {
	reactionRepo repositories.ReactionRepository
	favoriteRepo repositories.FavoriteRepository
	ratingRepo   repositories.RatingRepository
	postRepo     repositories.PostRepository
	userRepo     repositories.UserRepository
	notifier     notify.Notifier
}

// NewReactionService creates a new ReactionService
func NewReactionService(
	reactionRepo repositories.ReactionRepository,
	favoriteRepo repositories.FavoriteRepository,
	ratingRepo repositories.RatingRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notifier notify.Notifier,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		favoriteRepo: favoriteRepo,
		ratingRepo:   ratingRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

// ReactionResult is the snapshot a toggle hands back for a live UI update
type ReactionResult struct {
	Likes        int    `json:"likes_count"`
	Dislikes     int    `json:"dislikes_count"`
	UserReaction string `json:"user_reaction"` // "like", "dislike" or "none"
}

// FavoriteResult reports the outcome of a favorite toggle
type FavoriteResult struct {
	Added     bool   `json:"added"`
	Favorites int    `json:"favorites_count"`
	Warning   string `json:"warning,omitempty"`
}

// ToggleLike flips the caller's like on a post. Liking while disliked
// replaces the dislike: a pair never holds both.
func (s *ReactionService) ToggleLike(userID, postID int) (*ReactionResult, error) {
	return s.toggle(userID, postID, models.ReactionLike)
}

// ToggleDislike flips the caller's dislike on a post, mirror of ToggleLike
func (s *ReactionService) ToggleDislike(userID, postID int) (*ReactionResult, error) {
	return s.toggle(userID, postID, models.ReactionDislike)
}

func (s *ReactionService) toggle(userID, postID int, kind models.ReactionKind) (*ReactionResult, error) {
	if err := s.checkAccess(userID, postID); err != nil {
		return nil, err
	}

	current, err := s.reactionRepo.Toggle(userID, postID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle reaction: %w", err)
	}

	likes, dislikes, err := s.reactionRepo.Counts(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reactions: %w", err)
	}

	result := &ReactionResult{Likes: likes, Dislikes: dislikes, UserReaction: "none"}
	if current != nil {
		result.UserReaction = string(current.Kind)
	}
	return result, nil
}

// ToggleFavorite flips the caller's bookmark on a post, independent of any
// like or dislike. Adding one triggers a best-effort confirmation email; a
// send failure is reported as a warning, never rolled back.
func (s *ReactionService) ToggleFavorite(userID, postID int) (*FavoriteResult, error) {
	if err := s.checkAccess(userID, postID); err != nil {
		return nil, err
	}

	added, err := s.favoriteRepo.Toggle(userID, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	count, err := s.favoriteRepo.CountByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	result := &FavoriteResult{Added: added, Favorites: count}
	if added {
		result.Warning = s.sendFavoriteMail(userID, postID)
	}
	return result, nil
}

// SubmitRating stores the caller's 1-5 score for a post, overwriting any
// previous score from the same user.
func (s *ReactionService) SubmitRating(userID, postID, score int) (*models.Rating, error) {
	if err := s.checkAccess(userID, postID); err != nil {
		return nil, err
	}

	rating := &models.Rating{UserID: userID, PostID: postID, Score: score}
	if err := rating.Validate(); err != nil {
		return nil, apperr.Invalid("score must be an integer between 1 and 5", err)
	}

	if err := s.ratingRepo.Upsert(rating); err != nil {
		return nil, fmt.Errorf("failed to store rating: %w", err)
	}
	return rating, nil
}

// ListFavorites returns a page of the posts the caller has bookmarked,
// newest bookmark first, along with the total bookmark count.
func (s *ReactionService) ListFavorites(userID, page, perPage int) ([]*models.Post, int, error) {
	if userID <= 0 {
		return nil, 0, apperr.Unauthenticated("authentication required")
	}
	favorites, err := s.favoriteRepo.ListByUser(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list favorites: %w", err)
	}

	posts := make([]*models.Post, 0, len(favorites))
	for _, f := range favorites {
		post, err := s.postRepo.GetByID(f.PostID)
		if err != nil {
			if err == repositories.ErrNotFound {
				continue
			}
			return nil, 0, err
		}
		posts = append(posts, post)
	}

	total := len(posts)
	page, perPage = normalizePage(page, perPage)
	start := (page - 1) * perPage
	if start >= total {
		return []*models.Post{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return posts[start:end], total, nil
}

// checkAccess rejects anonymous callers and missing posts. The HTTP layer
// already requires a login for these routes; the service checks again so it
// cannot be misused from elsewhere.
func (s *ReactionService) checkAccess(userID, postID int) error {
	if userID <= 0 {
		return apperr.Unauthenticated("authentication required")
	}
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if err == repositories.ErrNotFound {
			return apperr.NotFound("post not found", err)
		}
		return err
	}
	return nil
}

func (s *ReactionService) sendFavoriteMail(userID, postID int) string {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		log.WithError(err).Warn("[reaction] favorite saved but user lookup failed, skipping email")
		return "favorite saved, confirmation email skipped"
	}
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		log.WithError(err).Warn("[reaction] favorite saved but post lookup failed, skipping email")
		return "favorite saved, confirmation email skipped"
	}

	subject := "New favorite added"
	body := fmt.Sprintf("You added %q to your favorites.", post.Title)
	if err := s.notifier.Send(user.Email, subject, body); err != nil {
		log.WithError(err).WithField("user", user.Username).
			Warn("[reaction] favorite saved but confirmation email failed")
		return "favorite saved, but the confirmation email could not be sent"
	}
	return ""
}
