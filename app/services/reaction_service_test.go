package services

import (
	"fmt"
	"testing"

	"inkwell/app/apperr"
	"inkwell/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReactionService() (*ReactionService, *mockPostRepo, *mockNotifier) {
	postRepo := newMockPostRepo()
	userRepo := newMockUserRepo()
	notifier := &mockNotifier{}
	svc := NewReactionService(
		newMockReactionRepo(),
		newMockFavoriteRepo(),
		newMockRatingRepo(),
		postRepo,
		userRepo,
		notifier,
	)
	userRepo.Create(
		&models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Active: true},
		&models.Profile{UserType: models.UserTypeReader, VerificationToken: "tok"},
	)
	postRepo.Create(&models.Post{Title: "First Post", Content: "hello world there", AuthorID: 1, Published: true})
	return svc, postRepo, notifier
}

func TestToggleLike(t *testing.T) {
	t.Run("first like counts and reports state", func(t *testing.T) {
		svc, _, _ := newTestReactionService()

		result, err := svc.ToggleLike(1, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Likes)
		assert.Equal(t, 0, result.Dislikes)
		assert.Equal(t, "like", result.UserReaction)
	})

	t.Run("second like removes the first", func(t *testing.T) {
		svc, _, _ := newTestReactionService()

		_, err := svc.ToggleLike(1, 1)
		require.NoError(t, err)
		result, err := svc.ToggleLike(1, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Likes)
		assert.Equal(t, "none", result.UserReaction)
	})

	t.Run("like replaces an existing dislike", func(t *testing.T) {
		svc, _, _ := newTestReactionService()

		_, err := svc.ToggleDislike(1, 1)
		require.NoError(t, err)
		result, err := svc.ToggleLike(1, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Likes)
		assert.Equal(t, 0, result.Dislikes)
		assert.Equal(t, "like", result.UserReaction)
	})

	t.Run("anonymous caller is rejected", func(t *testing.T) {
		svc, _, _ := newTestReactionService()

		_, err := svc.ToggleLike(0, 1)
		assert.True(t, apperr.IsCode(err, apperr.ErrUnauthenticated))
	})

	t.Run("missing post is rejected", func(t *testing.T) {
		svc, _, _ := newTestReactionService()

		_, err := svc.ToggleLike(1, 99)
		assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))
	})
}

func TestToggleFavorite(t *testing.T) {
	t.Run("add then remove", func(t *testing.T) {
		svc, _, notifier := newTestReactionService()

		result, err := svc.ToggleFavorite(1, 1)
		require.NoError(t, err)
		assert.True(t, result.Added)
		assert.Equal(t, 1, result.Favorites)
		assert.Empty(t, result.Warning)
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, "alice@example.com", notifier.sent[0].to)

		result, err = svc.ToggleFavorite(1, 1)
		require.NoError(t, err)
		assert.False(t, result.Added)
		assert.Equal(t, 0, result.Favorites)
		// removal sends no mail
		assert.Len(t, notifier.sent, 1)
	})

	t.Run("favorite survives a failed email", func(t *testing.T) {
		svc, _, notifier := newTestReactionService()
		notifier.fail = true

		result, err := svc.ToggleFavorite(1, 1)
		require.NoError(t, err)
		assert.True(t, result.Added)
		assert.NotEmpty(t, result.Warning)
	})

	t.Run("favorite is independent of reactions", func(t *testing.T) {
		svc, _, _ := newTestReactionService()

		_, err := svc.ToggleLike(1, 1)
		require.NoError(t, err)
		_, err = svc.ToggleFavorite(1, 1)
		require.NoError(t, err)

		result, err := svc.ToggleDislike(1, 1)
		require.NoError(t, err)
		assert.Equal(t, "dislike", result.UserReaction)

		fav, err := svc.favoriteRepo.Exists(1, 1)
		require.NoError(t, err)
		assert.True(t, fav)
	})
}

func TestListFavorites(t *testing.T) {
	t.Run("pages newest bookmark first", func(t *testing.T) {
		svc, postRepo, _ := newTestReactionService()
		for i := 2; i <= 12; i++ {
			postRepo.Create(&models.Post{Title: fmt.Sprintf("Post %d", i), Content: "hello world there", AuthorID: 1, Published: true})
		}
		for id := 1; id <= 12; id++ {
			_, err := svc.ToggleFavorite(1, id)
			require.NoError(t, err)
		}

		posts, total, err := svc.ListFavorites(1, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		require.Len(t, posts, 10)
		assert.Equal(t, 12, posts[0].ID)

		posts, total, err = svc.ListFavorites(1, 2, 10)
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		require.Len(t, posts, 2)
		assert.Equal(t, 1, posts[1].ID)

		posts, _, err = svc.ListFavorites(1, 3, 10)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("rejects anonymous callers", func(t *testing.T) {
		svc, _, _ := newTestReactionService()

		_, _, err := svc.ListFavorites(0, 1, 10)
		assert.True(t, apperr.IsCode(err, apperr.ErrUnauthenticated))
	})
}

func TestSubmitRating(t *testing.T) {
	t.Run("stores a valid score", func(t *testing.T) {
		svc, _, _ := newTestReactionService()

		rating, err := svc.SubmitRating(1, 1, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, rating.Score)
	})

	t.Run("resubmit overwrites instead of adding", func(t *testing.T) {
		svc, _, _ := newTestReactionService()

		_, err := svc.SubmitRating(1, 1, 3)
		require.NoError(t, err)
		_, err = svc.SubmitRating(1, 1, 5)
		require.NoError(t, err)

		avg, count, err := svc.ratingRepo.AverageByPost(1)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, 5.0, avg)
	})

	t.Run("rejects out of range scores", func(t *testing.T) {
		svc, _, _ := newTestReactionService()

		for _, score := range []int{0, 6, -1, 42} {
			_, err := svc.SubmitRating(1, 1, score)
			assert.True(t, apperr.IsCode(err, apperr.ErrInvalidInput), "score %d should be rejected", score)
		}
	})

	t.Run("rejects anonymous callers", func(t *testing.T) {
		svc, _, _ := newTestReactionService()

		_, err := svc.SubmitRating(-1, 1, 3)
		assert.True(t, apperr.IsCode(err, apperr.ErrUnauthenticated))
	})
}
