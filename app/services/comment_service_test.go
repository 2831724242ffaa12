package services

import (
	"fmt"
	"testing"

	"inkwell/app/apperr"
	"inkwell/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommentService() *CommentService {
	postRepo := newMockPostRepo()
	userRepo := newMockUserRepo()
	svc := NewCommentService(newMockCommentRepo(), postRepo, userRepo)
	userRepo.Create(
		&models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Active: true},
		&models.Profile{UserType: models.UserTypeReader, VerificationToken: "tok"},
	)
	postRepo.Create(&models.Post{Title: "First Post", Content: "hello world there", AuthorID: 1, Published: true})
	postRepo.Create(&models.Post{Title: "Second Post", Content: "more words here", AuthorID: 1, Published: true})
	return svc
}

func TestPostComment(t *testing.T) {
	t.Run("creates a top-level comment", func(t *testing.T) {
		svc := newTestCommentService()

		comment, err := svc.PostComment(1, 1, "great read", nil)
		require.NoError(t, err)
		assert.Equal(t, "alice", comment.Author)
		assert.Nil(t, comment.ParentID)
		assert.False(t, comment.CreatedAt.IsZero())
	})

	t.Run("creates a reply under its parent", func(t *testing.T) {
		svc := newTestCommentService()

		parent, err := svc.PostComment(1, 1, "great read", nil)
		require.NoError(t, err)

		reply, err := svc.PostComment(1, 1, "agreed", &parent.ID)
		require.NoError(t, err)
		require.NotNil(t, reply.ParentID)
		assert.Equal(t, parent.ID, *reply.ParentID)
	})

	t.Run("replies nest arbitrarily, keeping their immediate parent", func(t *testing.T) {
		svc := newTestCommentService()

		parent, err := svc.PostComment(1, 1, "great read", nil)
		require.NoError(t, err)
		reply, err := svc.PostComment(1, 1, "agreed", &parent.ID)
		require.NoError(t, err)

		// a parent is set once at creation and can only point at an
		// already existing comment, so a cycle can never form
		nested, err := svc.PostComment(1, 1, "me too", &reply.ID)
		require.NoError(t, err)
		require.NotNil(t, nested.ParentID)
		assert.Equal(t, reply.ID, *nested.ParentID)
		assert.Greater(t, nested.ID, reply.ID)
	})

	t.Run("rejects a parent from a different post", func(t *testing.T) {
		svc := newTestCommentService()

		parent, err := svc.PostComment(1, 1, "great read", nil)
		require.NoError(t, err)

		_, err = svc.PostComment(1, 2, "wrong thread", &parent.ID)
		assert.True(t, apperr.IsCode(err, apperr.ErrInvalidInput))
	})

	t.Run("rejects a missing parent", func(t *testing.T) {
		svc := newTestCommentService()

		missing := 999
		_, err := svc.PostComment(1, 1, "orphan", &missing)
		assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))
	})

	t.Run("rejects missing post and anonymous caller", func(t *testing.T) {
		svc := newTestCommentService()

		_, err := svc.PostComment(1, 99, "void", nil)
		assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))

		_, err = svc.PostComment(0, 1, "ghost", nil)
		assert.True(t, apperr.IsCode(err, apperr.ErrUnauthenticated))
	})

	t.Run("rejects empty content", func(t *testing.T) {
		svc := newTestCommentService()

		_, err := svc.PostComment(1, 1, "", nil)
		assert.True(t, apperr.IsCode(err, apperr.ErrInvalidInput))
	})
}

func TestListComments(t *testing.T) {
	t.Run("pages top-level comments newest first with replies attached", func(t *testing.T) {
		svc := newTestCommentService()

		var first *models.Comment
		for i := 1; i <= 12; i++ {
			c, err := svc.PostComment(1, 1, fmt.Sprintf("comment %d", i), nil)
			require.NoError(t, err)
			if first == nil {
				first = c
			}
		}
		_, err := svc.PostComment(1, 1, "a reply", &first.ID)
		require.NoError(t, err)

		page1, total, err := svc.ListComments(1, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		require.Len(t, page1, 10)
		assert.Equal(t, "comment 12", page1[0].Content)

		page2, _, err := svc.ListComments(1, 2, 10)
		require.NoError(t, err)
		require.Len(t, page2, 2)
		assert.Equal(t, "comment 1", page2[1].Content)
		require.Len(t, page2[1].Replies, 1)
		assert.Equal(t, "a reply", page2[1].Replies[0].Content)
	})

	t.Run("replies are not counted as top-level entries", func(t *testing.T) {
		svc := newTestCommentService()

		parent, err := svc.PostComment(1, 1, "parent", nil)
		require.NoError(t, err)
		_, err = svc.PostComment(1, 1, "child", &parent.ID)
		require.NoError(t, err)

		top, total, err := svc.ListComments(1, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, top, 1)

		count, err := svc.CountComments(1)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("missing post yields not found", func(t *testing.T) {
		svc := newTestCommentService()

		_, _, err := svc.ListComments(42, 1, 10)
		assert.True(t, apperr.IsCode(err, apperr.ErrNotFound))
	})
}
