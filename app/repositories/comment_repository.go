package repositories

import (
	"sort"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create creates a new comment
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		comment.ID = id

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}

		return txn.Set(entityKey(CommentKeyPrefix, comment.ID), data)
	})
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(id int) (*models.Comment, error) {
	var comment models.Comment

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entityKey(CommentKeyPrefix, id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		})
	})

	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost retrieves all comments for a post, replies included
func (r *BadgerCommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	return r.scan(func(c *models.Comment) bool { return c.PostID == postID })
}

// ListTopLevel retrieves the parentless comments of a post, newest first
func (r *BadgerCommentRepository) ListTopLevel(postID int) ([]*models.Comment, error) {
	comments, err := r.scan(func(c *models.Comment) bool {
		return c.PostID == postID && c.ParentID == nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

// ListReplies retrieves the direct replies of a comment, oldest first
func (r *BadgerCommentRepository) ListReplies(parentID int) ([]*models.Comment, error) {
	replies, err := r.scan(func(c *models.Comment) bool {
		return c.ParentID != nil && *c.ParentID == parentID
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(replies, func(i, j int) bool {
		return replies[i].CreatedAt.Before(replies[j].CreatedAt)
	})
	return replies, nil
}

// CountByPost counts every comment on a post, nested replies included
func (r *BadgerCommentRepository) CountByPost(postID int) (int, error) {
	comments, err := r.ListByPost(postID)
	if err != nil {
		return 0, err
	}
	return len(comments), nil
}

// DeleteByPost removes every comment belonging to a post
func (r *BadgerCommentRepository) DeleteByPost(postID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return deleteCommentsByPost(txn, postID)
	})
}

// deleteCommentsByPost removes a post's comments inside an open transaction,
// shared with the post cascade.
func deleteCommentsByPost(txn *badger.Txn, postID int) error {
	opts := badger.DefaultIteratorOptions
	it := txn.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	prefix := []byte(CommentKeyPrefix)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		var comment models.Comment
		err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		})
		if err != nil {
			return err
		}
		if comment.PostID == postID {
			keys = append(keys, item.KeyCopy(nil))
		}
	}
	for _, key := range keys {
		if err := txn.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// scan iterates every comment and keeps the ones matching the filter
func (r *BadgerCommentRepository) scan(keep func(*models.Comment) bool) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CommentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var comment models.Comment
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return err
			}
			if keep(&comment) {
				comments = append(comments, &comment)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}
