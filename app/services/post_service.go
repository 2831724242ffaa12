package services

import (
	"fmt"
	"sort"
	"strings"

	"inkwell/app/apperr"
	"inkwell/app/models"
	"inkwell/app/repositories"
)

// PostService handles authoring and browsing of blog posts
type PostService struct {
	postRepo     repositories.PostRepository
	commentRepo  repositories.CommentRepository
	categoryRepo repositories.CategoryRepository
	ratingRepo   repositories.RatingRepository
	userRepo     repositories.UserRepository
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo     repositories.PostRepository,
	commentRepo  repositories.CommentRepository,
	categoryRepo repositories.CategoryRepository,
	ratingRepo   repositories.RatingRepository,
	userRepo     repositories.UserRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		ratingRepo:   ratingRepo,
		userRepo:     userRepo,
	}
}

// ListOptions filters and orders the public post listing
type ListOptions struct {
	Query    string // matches title, content or author username
	Category string // category name
	Author   string // author username
	ByRating bool   // order by average rating instead of recency
	Page     int
	PerPage  int
}

// CreatePost stores a new draft. Only authors and admins may write posts.
func (s *PostService) CreatePost(actorID int, post *models.Post) (*models.Post, error) {
	if err := s.requireAuthor(actorID); err != nil {
		return nil, err
	}
	post.AuthorID = actorID

	if err := s.checkCategories(post.CategoryIDs); err != nil {
		return nil, err
	}

	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return nil, apperr.Invalid("invalid post", err)
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// GetPost fetches a post with its comment thread attached
func (s *PostService) GetPost(id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperr.NotFound("post not found", err)
		}
		return nil, err
	}

	comments, err := s.commentRepo.ListTopLevel(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	for _, c := range comments {
		replies, err := s.commentRepo.ListReplies(c.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list replies: %w", err)
		}
		c.Replies = replies
	}
	post.Comments = comments
	return post, nil
}

// UpdatePost replaces title, content, categories and featured image.
// Only the post's author or an admin may edit it.
func (s *PostService) UpdatePost(actorID int, post *models.Post) (*models.Post, error) {
	existing, err := s.requireOwner(actorID, post.ID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategories(post.CategoryIDs); err != nil {
		return nil, err
	}

	existing.Title = post.Title
	existing.Content = post.Content
	existing.CategoryIDs = post.CategoryIDs
	existing.FeaturedImage = post.FeaturedImage
	existing.BeforeUpdate()

	if err := existing.Validate(); err != nil {
		return nil, apperr.Invalid("invalid post", err)
	}
	if err := s.postRepo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return existing, nil
}

// DeletePost removes a post together with its comments, reactions,
// favorites and ratings in one transaction.
func (s *PostService) DeletePost(actorID, id int) error {
	if _, err := s.requireOwner(actorID, id); err != nil {
		return err
	}
	if err := s.postRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// SetPublished flips a post between draft and published
func (s *PostService) SetPublished(actorID, id int, published bool) (*models.Post, error) {
	post, err := s.requireOwner(actorID, id)
	if err != nil {
		return nil, err
	}
	post.Published = published
	post.BeforeUpdate()
	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// ListPublished returns one page of the public feed, filtered and ordered
// per opts. Returns the page plus the total match count for pagination.
func (s *PostService) ListPublished(opts ListOptions) ([]*models.Post, int, error) {
	posts, err := s.postRepo.ListPublished()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	if opts.Author != "" {
		author, err := s.userRepo.GetByUsername(opts.Author)
		if err != nil {
			if err == repositories.ErrNotFound {
				return []*models.Post{}, 0, nil
			}
			return nil, 0, err
		}
		posts = filterPosts(posts, func(p *models.Post) bool { return p.AuthorID == author.ID })
	}

	if opts.Category != "" {
		cat, err := s.categoryRepo.GetByName(opts.Category)
		if err != nil {
			if err == repositories.ErrNotFound {
				return []*models.Post{}, 0, nil
			}
			return nil, 0, err
		}
		posts = filterPosts(posts, func(p *models.Post) bool { return p.HasCategory(cat.ID) })
	}

	if opts.Query != "" {
		q := strings.ToLower(opts.Query)
		names := s.authorNames(posts)
		posts = filterPosts(posts, func(p *models.Post) bool {
			return strings.Contains(strings.ToLower(p.Title), q) ||
				strings.Contains(strings.ToLower(p.Content), q) ||
				strings.Contains(strings.ToLower(names[p.AuthorID]), q)
		})
	}

	if opts.ByRating {
		if err := s.sortByRating(posts); err != nil {
			return nil, 0, err
		}
	}

	total := len(posts)
	page, perPage := normalizePage(opts.Page, opts.PerPage)
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

// ListByAuthor returns an author's posts, drafts included when the author
// themselves (or an admin) is asking.
func (s *PostService) ListByAuthor(actorID, authorID int) ([]*models.Post, error) {
	publishedOnly := true
	if actorID == authorID {
		publishedOnly = false
	} else if actorID > 0 {
		profile, err := s.userRepo.GetProfile(actorID)
		if err == nil && profile.UserType == models.UserTypeAdmin {
			publishedOnly = false
		}
	}
	posts, err := s.postRepo.ListByAuthor(authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if publishedOnly {
		posts = filterPosts(posts, func(p *models.Post) bool { return p.Published })
	}
	return posts, nil
}

func (s *PostService) requireAuthor(actorID int) error {
	if actorID <= 0 {
		return apperr.Unauthenticated("authentication required")
	}
	profile, err := s.userRepo.GetProfile(actorID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return apperr.Unauthenticated("unknown user")
		}
		return err
	}
	if !profile.IsAuthor() {
		return apperr.New(apperr.ErrForbidden, "only authors can write posts", nil)
	}
	return nil
}

func (s *PostService) requireOwner(actorID, postID int) (*models.Post, error) {
	if actorID <= 0 {
		return nil, apperr.Unauthenticated("authentication required")
	}
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperr.NotFound("post not found", err)
		}
		return nil, err
	}
	if post.AuthorID != actorID {
		profile, err := s.userRepo.GetProfile(actorID)
		if err != nil || profile.UserType != models.UserTypeAdmin {
			return nil, apperr.New(apperr.ErrForbidden, "not your post", nil)
		}
	}
	return post, nil
}

func (s *PostService) checkCategories(ids []int) error {
	for _, id := range ids {
		if _, err := s.categoryRepo.GetByID(id); err != nil {
			if err == repositories.ErrNotFound {
				return apperr.Invalid(fmt.Sprintf("unknown category %d", id), err)
			}
			return err
		}
	}
	return nil
}

func (s *PostService) authorNames(posts []*models.Post) map[int]string {
	names := make(map[int]string)
	for _, p := range posts {
		if _, ok := names[p.AuthorID]; ok {
			continue
		}
		if user, err := s.userRepo.GetByID(p.AuthorID); err == nil {
			names[p.AuthorID] = user.Username
		}
	}
	return names
}

func (s *PostService) sortByRating(posts []*models.Post) error {
	type ranked struct {
		avg   float64
		count int
	}
	ranks := make(map[int]ranked, len(posts))
	for _, p := range posts {
		avg, count, err := s.ratingRepo.AverageByPost(p.ID)
		if err != nil {
			return fmt.Errorf("failed to average ratings: %w", err)
		}
		ranks[p.ID] = ranked{avg, count}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := ranks[posts[i].ID], ranks[posts[j].ID]
		if a.avg != b.avg {
			return a.avg > b.avg
		}
		return a.count > b.count
	})
	return nil
}

func filterPosts(posts []*models.Post, keep func(*models.Post) bool) []*models.Post {
	out := posts[:0:0]
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
