package services

import (
	"fmt"
	"math"

	"inkwell/app/apperr"
	"inkwell/app/repositories"
)

// AggregationService computes engagement figures for posts and authors
type AggregationService struct {
	reactionRepo repositories.ReactionRepository
	favoriteRepo repositories.FavoriteRepository
	ratingRepo   repositories.RatingRepository
	commentRepo  repositories.CommentRepository
	postRepo     repositories.PostRepository
}

// NewAggregationService creates a new AggregationService
func NewAggregationService(
	reactionRepo repositories.ReactionRepository,
	favoriteRepo repositories.FavoriteRepository,
	ratingRepo   repositories.RatingRepository,
	commentRepo  repositories.CommentRepository,
	postRepo     repositories.PostRepository,
) *AggregationService {
	return &AggregationService{
		reactionRepo: reactionRepo,
		favoriteRepo: favoriteRepo,
		ratingRepo:   ratingRepo,
		commentRepo:  commentRepo,
		postRepo:     postRepo,
	}
}

// EngagementCounts is the per-post tally of every reaction type
type EngagementCounts struct {
	PostID    int     `json:"post_id"`
	Likes     int     `json:"likes_count"`
	Dislikes  int     `json:"dislikes_count"`
	Favorites int     `json:"favorites_count"`
	Comments  int     `json:"comments_count"`
	Rating    float64 `json:"average_rating"`
	Ratings   int     `json:"ratings_count"`
}

// AuthorRollup sums engagement across an author's published posts
type AuthorRollup struct {
	AuthorID  int                `json:"author_id"`
	Posts     []*EngagementCounts `json:"posts"`
	Likes     int                `json:"likes_count"`
	Dislikes  int                `json:"dislikes_count"`
	Favorites int                `json:"favorites_count"`
	Comments  int                `json:"comments_count"`
	Rating    float64            `json:"average_rating"`
}

// AverageRating returns the mean score for a post rounded to one decimal,
// and the number of ratings behind it. No ratings yields 0.0.
func (s *AggregationService) AverageRating(postID int) (float64, int, error) {
	avg, count, err := s.ratingRepo.AverageByPost(postID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to average ratings: %w", err)
	}
	return round1(avg), count, nil
}

// PostCounts gathers every engagement figure for a single post
func (s *AggregationService) PostCounts(postID int) (*EngagementCounts, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperr.NotFound("post not found", err)
		}
		return nil, err
	}
	return s.countsFor(postID)
}

// AuthorCounts rolls engagement up across the author's published posts.
// The overall rating averages every individual score, not the per-post means.
func (s *AggregationService) AuthorCounts(authorID int) (*AuthorRollup, error) {
	posts, err := s.postRepo.ListByAuthor(authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list author posts: %w", err)
	}

	rollup := &AuthorRollup{AuthorID: authorID, Posts: []*EngagementCounts{}}
	var scoreSum float64
	var scoreCount int
	for _, post := range posts {
		if !post.Published {
			continue
		}
		counts, err := s.countsFor(post.ID)
		if err != nil {
			return nil, err
		}
		rollup.Posts = append(rollup.Posts, counts)
		rollup.Likes += counts.Likes
		rollup.Dislikes += counts.Dislikes
		rollup.Favorites += counts.Favorites
		rollup.Comments += counts.Comments

		avg, count, err := s.ratingRepo.AverageByPost(post.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to average ratings: %w", err)
		}
		scoreSum += avg * float64(count)
		scoreCount += count
	}
	if scoreCount > 0 {
		rollup.Rating = round1(scoreSum / float64(scoreCount))
	}
	return rollup, nil
}

func (s *AggregationService) countsFor(postID int) (*EngagementCounts, error) {
	likes, dislikes, err := s.reactionRepo.Counts(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reactions: %w", err)
	}
	favorites, err := s.favoriteRepo.CountByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}
	comments, err := s.commentRepo.CountByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	avg, ratings, err := s.ratingRepo.AverageByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}
	return &EngagementCounts{
		PostID:    postID,
		Likes:     likes,
		Dislikes:  dislikes,
		Favorites: favorites,
		Comments:  comments,
		Rating:    round1(avg),
		Ratings:   ratings,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
