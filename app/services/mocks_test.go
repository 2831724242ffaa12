package services

import (
	"errors"
	"sort"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// In-memory repository fakes backing the service tests. They mirror the
// badger implementations' contracts, ErrNotFound and ErrDuplicate included.

type mockPostRepo struct {
	posts  map[int]*models.Post
	nextID int
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[int]*models.Post)}
}

func (m *mockPostRepo) Create(post *models.Post) error {
	m.nextID++
	post.ID = m.nextID
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *mockPostRepo) GetByID(id int) (*models.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *post
	return &cp, nil
}

func (m *mockPostRepo) List(limit, offset int) ([]*models.Post, error) {
	all := m.scan(func(*models.Post) bool { return true })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *mockPostRepo) ListPublished() ([]*models.Post, error) {
	return m.scan(func(p *models.Post) bool { return p.Published }), nil
}

func (m *mockPostRepo) ListByAuthor(authorID int) ([]*models.Post, error) {
	return m.scan(func(p *models.Post) bool { return p.AuthorID == authorID }), nil
}

func (m *mockPostRepo) Update(post *models.Post) error {
	if _, ok := m.posts[post.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *mockPostRepo) Delete(id int) error {
	if _, ok := m.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *mockPostRepo) scan(keep func(*models.Post) bool) []*models.Post {
	var out []*models.Post
	for _, p := range m.posts {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type mockCommentRepo struct {
	comments map[int]*models.Comment
	nextID   int
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[int]*models.Comment)}
}

func (m *mockCommentRepo) Create(comment *models.Comment) error {
	m.nextID++
	comment.ID = m.nextID
	cp := *comment
	m.comments[comment.ID] = &cp
	return nil
}

func (m *mockCommentRepo) GetByID(id int) (*models.Comment, error) {
	comment, ok := m.comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *comment
	return &cp, nil
}

func (m *mockCommentRepo) ListByPost(postID int) ([]*models.Comment, error) {
	return m.scan(func(c *models.Comment) bool { return c.PostID == postID }, false), nil
}

func (m *mockCommentRepo) ListTopLevel(postID int) ([]*models.Comment, error) {
	return m.scan(func(c *models.Comment) bool {
		return c.PostID == postID && c.ParentID == nil
	}, false), nil
}

func (m *mockCommentRepo) ListReplies(parentID int) ([]*models.Comment, error) {
	return m.scan(func(c *models.Comment) bool {
		return c.ParentID != nil && *c.ParentID == parentID
	}, true), nil
}

func (m *mockCommentRepo) CountByPost(postID int) (int, error) {
	count := 0
	for _, c := range m.comments {
		if c.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (m *mockCommentRepo) DeleteByPost(postID int) error {
	for id, c := range m.comments {
		if c.PostID == postID {
			delete(m.comments, id)
		}
	}
	return nil
}

func (m *mockCommentRepo) scan(keep func(*models.Comment) bool, oldestFirst bool) []*models.Comment {
	var out []*models.Comment
	for _, c := range m.comments {
		if keep(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if oldestFirst {
			return out[i].ID < out[j].ID
		}
		return out[i].ID > out[j].ID
	})
	return out
}

type mockReactionRepo struct {
	reactions map[[2]int]*models.Reaction // key is {postID, userID}
}

func newMockReactionRepo() *mockReactionRepo {
	return &mockReactionRepo{reactions: make(map[[2]int]*models.Reaction)}
}

func (m *mockReactionRepo) Toggle(userID, postID int, kind models.ReactionKind) (*models.Reaction, error) {
	key := [2]int{postID, userID}
	if existing, ok := m.reactions[key]; ok && existing.Kind == kind {
		delete(m.reactions, key)
		return nil, nil
	}
	r := &models.Reaction{UserID: userID, PostID: postID, Kind: kind, CreatedAt: time.Now()}
	m.reactions[key] = r
	cp := *r
	return &cp, nil
}

func (m *mockReactionRepo) Get(userID, postID int) (*models.Reaction, error) {
	r, ok := m.reactions[[2]int{postID, userID}]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockReactionRepo) Counts(postID int) (int, int, error) {
	likes, dislikes := 0, 0
	for _, r := range m.reactions {
		if r.PostID != postID {
			continue
		}
		if r.Kind == models.ReactionLike {
			likes++
		} else {
			dislikes++
		}
	}
	return likes, dislikes, nil
}

func (m *mockReactionRepo) DeleteByPost(postID int) error {
	for key := range m.reactions {
		if key[0] == postID {
			delete(m.reactions, key)
		}
	}
	return nil
}

type mockFavoriteRepo struct {
	favorites map[[2]int]*models.Favorite
}

func newMockFavoriteRepo() *mockFavoriteRepo {
	return &mockFavoriteRepo{favorites: make(map[[2]int]*models.Favorite)}
}

func (m *mockFavoriteRepo) Toggle(userID, postID int) (bool, error) {
	key := [2]int{postID, userID}
	if _, ok := m.favorites[key]; ok {
		delete(m.favorites, key)
		return false, nil
	}
	m.favorites[key] = &models.Favorite{UserID: userID, PostID: postID, CreatedAt: time.Now()}
	return true, nil
}

func (m *mockFavoriteRepo) Exists(userID, postID int) (bool, error) {
	_, ok := m.favorites[[2]int{postID, userID}]
	return ok, nil
}

func (m *mockFavoriteRepo) CountByPost(postID int) (int, error) {
	count := 0
	for key := range m.favorites {
		if key[0] == postID {
			count++
		}
	}
	return count, nil
}

func (m *mockFavoriteRepo) ListByUser(userID int) ([]*models.Favorite, error) {
	var out []*models.Favorite
	for _, f := range m.favorites {
		if f.UserID == userID {
			cp := *f
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockFavoriteRepo) DeleteByPost(postID int) error {
	for key := range m.favorites {
		if key[0] == postID {
			delete(m.favorites, key)
		}
	}
	return nil
}

type mockRatingRepo struct {
	ratings map[[2]int]*models.Rating
}

func newMockRatingRepo() *mockRatingRepo {
	return &mockRatingRepo{ratings: make(map[[2]int]*models.Rating)}
}

func (m *mockRatingRepo) Upsert(rating *models.Rating) error {
	cp := *rating
	m.ratings[[2]int{rating.PostID, rating.UserID}] = &cp
	return nil
}

func (m *mockRatingRepo) Get(userID, postID int) (*models.Rating, error) {
	r, ok := m.ratings[[2]int{postID, userID}]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockRatingRepo) AverageByPost(postID int) (float64, int, error) {
	sum, count := 0, 0
	for key, r := range m.ratings {
		if key[0] == postID {
			sum += r.Score
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (m *mockRatingRepo) DeleteByPost(postID int) error {
	for key := range m.ratings {
		if key[0] == postID {
			delete(m.ratings, key)
		}
	}
	return nil
}

type mockUserRepo struct {
	users    map[int]*models.User
	profiles map[int]*models.Profile
	nextID   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:    make(map[int]*models.User),
		profiles: make(map[int]*models.Profile),
	}
}

func (m *mockUserRepo) Create(user *models.User, profile *models.Profile) error {
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	m.nextID++
	user.ID = m.nextID
	profile.UserID = user.ID
	cu, cp := *user, *profile
	m.users[user.ID] = &cu
	m.profiles[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(id int) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *mockUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepo) Update(user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetProfile(userID int) (*models.Profile, error) {
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *profile
	return &cp, nil
}

func (m *mockUserRepo) GetProfileByToken(token string) (*models.Profile, error) {
	if token == "" {
		return nil, repositories.ErrNotFound
	}
	for _, p := range m.profiles {
		if p.VerificationToken == token {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepo) UpdateProfile(profile *models.Profile) error {
	if _, ok := m.profiles[profile.UserID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *profile
	m.profiles[profile.UserID] = &cp
	return nil
}

func (m *mockUserRepo) ListAuthors() ([]*models.User, error) {
	var out []*models.User
	for id, p := range m.profiles {
		if p.IsAuthor() {
			cp := *m.users[id]
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

type mockCategoryRepo struct {
	categories map[int]*models.Category
	nextID     int
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[int]*models.Category)}
}

func (m *mockCategoryRepo) Create(category *models.Category) error {
	for _, c := range m.categories {
		if c.Name == category.Name {
			return repositories.ErrDuplicate
		}
	}
	m.nextID++
	category.ID = m.nextID
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *mockCategoryRepo) GetByID(id int) (*models.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCategoryRepo) GetByName(name string) (*models.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockCategoryRepo) List() ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range m.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type mockContactRepo struct {
	messages []*models.ContactMessage
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{}
}

func (m *mockContactRepo) Create(message *models.ContactMessage) error {
	message.ID = len(m.messages) + 1
	cp := *message
	m.messages = append(m.messages, &cp)
	return nil
}

func (m *mockContactRepo) List(limit, offset int) ([]*models.ContactMessage, error) {
	// newest first, like the badger implementation
	var out []*models.ContactMessage
	for i := len(m.messages) - 1; i >= 0; i-- {
		cp := *m.messages[i]
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

// mockNotifier records outgoing mail and can be told to fail
type mockNotifier struct {
	sent []sentMail
	fail bool
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *mockNotifier) Send(to, subject, body string) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}
