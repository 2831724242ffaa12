package repositories

import (
	"sort"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}

		return txn.Set(entityKey(PostKeyPrefix, post.ID), data)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entityKey(PostKeyPrefix, id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves a paginated list of posts, drafts included
func (r *BadgerPostRepository) List(limit, offset int) ([]*models.Post, error) {
	all, err := r.scan(func(*models.Post) bool { return true })
	if err != nil {
		return nil, err
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// ListPublished retrieves every published post, newest first
func (r *BadgerPostRepository) ListPublished() ([]*models.Post, error) {
	posts, err := r.scan(func(p *models.Post) bool { return p.Published })
	if err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// ListByAuthor retrieves every post by the given author, newest first
func (r *BadgerPostRepository) ListByAuthor(authorID int) ([]*models.Post, error) {
	posts, err := r.scan(func(p *models.Post) bool { return p.AuthorID == authorID })
	if err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// Update updates an existing post
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(PostKeyPrefix, post.ID)

		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes a post by ID together with all of its engagement rows:
// comments, reactions, favorites and ratings go in the same transaction.
func (r *BadgerPostRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(PostKeyPrefix, id)

		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		for _, prefix := range [][]byte{
			pairScanPrefix(ReactionKeyPrefix, id),
			pairScanPrefix(FavoriteKeyPrefix, id),
			pairScanPrefix(RatingKeyPrefix, id),
		} {
			if err := deleteByPrefix(txn, prefix); err != nil {
				return err
			}
		}

		if err := deleteCommentsByPost(txn, id); err != nil {
			return err
		}

		return txn.Delete(key)
	})
}

// scan iterates every post and keeps the ones matching the filter
func (r *BadgerPostRepository) scan(keep func(*models.Post) bool) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			if keep(&post) {
				posts = append(posts, &post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}
