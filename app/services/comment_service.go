package services

import (
	"fmt"

	"inkwell/app/apperr"
	"inkwell/app/models"
	"inkwell/app/repositories"
)

// CommentService handles the threaded discussion under posts
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	userRepo    repositories.UserRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo repositories.CommentRepository,
	postRepo    repositories.PostRepository,
	userRepo    repositories.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// PostComment attaches a comment to a post, or a reply to an existing
// comment when parentID is set. The parent must belong to the same post.
// Replies may nest arbitrarily; parents are set once at creation and only
// ever point at pre-existing comments, so the thread is always a tree.
func (s *CommentService) PostComment(userID, postID int, content string, parentID *int) (*models.Comment, error) {
	if userID <= 0 {
		return nil, apperr.Unauthenticated("authentication required")
	}

	if _, err := s.postRepo.GetByID(postID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperr.NotFound("post not found", err)
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperr.Unauthenticated("unknown user")
		}
		return nil, err
	}

	if parentID != nil {
		parent, err := s.commentRepo.GetByID(*parentID)
		if err != nil {
			if err == repositories.ErrNotFound {
				return nil, apperr.NotFound("parent comment not found", err)
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, apperr.Invalid("parent comment belongs to a different post", nil)
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   userID,
		Author:   user.Username,
		Content:  content,
		ParentID: parentID,
	}
	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return nil, apperr.Invalid("invalid comment", err)
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// ListComments returns one page of top-level comments for a post, newest
// first, each with its replies attached oldest first.
func (s *CommentService) ListComments(postID, page, perPage int) ([]*models.Comment, int, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, 0, apperr.NotFound("post not found", err)
		}
		return nil, 0, err
	}

	top, err := s.commentRepo.ListTopLevel(postID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}

	total := len(top)
	page, perPage = normalizePage(page, perPage)
	start := (page - 1) * perPage
	if start >= total {
		return []*models.Comment{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	top = top[start:end]

	for _, c := range top {
		replies, err := s.commentRepo.ListReplies(c.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list replies: %w", err)
		}
		c.Replies = replies
	}
	return top, total, nil
}

// CountComments returns the number of comments on a post, replies included
func (s *CommentService) CountComments(postID int) (int, error) {
	return s.commentRepo.CountByPost(postID)
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return page, perPage
}
