package repositories

import (
	"sort"
	"sync"
	"time"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerFavoriteRepository implements FavoriteRepository using BadgerDB
type BadgerFavoriteRepository struct {
	db *badger.DB
	mu sync.Mutex // serializes toggles so optimistic commits cannot starve
}

// NewBadgerFavoriteRepository creates a new BadgerFavoriteRepository
func NewBadgerFavoriteRepository(db *badger.DB) *BadgerFavoriteRepository {
	return &BadgerFavoriteRepository{db: db}
}

// Toggle adds the favorite if absent and removes it if present, in a single
// transaction. Returns whether the favorite was added.
func (r *BadgerFavoriteRepository) Toggle(userID, postID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var added bool

	err := retryOnConflict(func() error {
		return r.db.Update(func(txn *badger.Txn) error {
			key := pairKey(FavoriteKeyPrefix, postID, userID)

			_, err := txn.Get(key)
			if err == nil {
				added = false
				return txn.Delete(key)
			}
			if err != badger.ErrKeyNotFound {
				return err
			}

			favorite := &models.Favorite{
				UserID:    userID,
				PostID:    postID,
				CreatedAt: time.Now(),
			}
			data, err := marshalEntity(favorite)
			if err != nil {
				return err
			}
			added = true
			return txn.Set(key, data)
		})
	})

	if err != nil {
		return false, err
	}
	return added, nil
}

// Exists reports whether the user has favorited the post
func (r *BadgerFavoriteRepository) Exists(userID, postID int) (bool, error) {
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(pairKey(FavoriteKeyPrefix, postID, userID))
		return err
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountByPost counts the favorites of a post
func (r *BadgerFavoriteRepository) CountByPost(postID int) (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := pairScanPrefix(FavoriteKeyPrefix, postID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListByUser retrieves a user's favorites, newest first
func (r *BadgerFavoriteRepository) ListByUser(userID int) ([]*models.Favorite, error) {
	var favorites []*models.Favorite

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(FavoriteKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var favorite models.Favorite
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &favorite)
			})
			if err != nil {
				return err
			}
			if favorite.UserID == userID {
				favorites = append(favorites, &favorite)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(favorites, func(i, j int) bool {
		return favorites[i].CreatedAt.After(favorites[j].CreatedAt)
	})
	return favorites, nil
}

// DeleteByPost removes every favorite of a post
func (r *BadgerFavoriteRepository) DeleteByPost(postID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return deleteByPrefix(txn, pairScanPrefix(FavoriteKeyPrefix, postID))
	})
}
