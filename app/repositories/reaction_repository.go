package repositories

import (
	"sync"
	"time"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerReactionRepository implements ReactionRepository using BadgerDB.
// One row per (post, user) pair holds the tri-state reaction, so a like and
// a dislike from the same user can never coexist.
type BadgerReactionRepository struct {
	db *badger.DB
	mu sync.Mutex // serializes toggles so optimistic commits cannot starve
}

// NewBadgerReactionRepository creates a new BadgerReactionRepository
func NewBadgerReactionRepository(db *badger.DB) *BadgerReactionRepository {
	return &BadgerReactionRepository{db: db}
}

// Toggle applies one like/dislike press inside a single transaction:
// pressing the kind already held removes the row, anything else overwrites
// it. Returns the resulting reaction, or nil when the row was removed.
// Conflicting concurrent toggles serialize on the transaction commit, so the
// pair never ends up holding both kinds.
func (r *BadgerReactionRepository) Toggle(userID, postID int, kind models.ReactionKind) (*models.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result *models.Reaction

	err := retryOnConflict(func() error {
		return r.db.Update(func(txn *badger.Txn) error {
			key := pairKey(ReactionKeyPrefix, postID, userID)

			var current models.Reaction
			item, err := txn.Get(key)
			switch {
			case err == badger.ErrKeyNotFound:
				// no existing reaction, fall through to create
			case err != nil:
				return err
			default:
				if err := item.Value(func(val []byte) error {
					return unmarshalEntity(val, &current)
				}); err != nil {
					return err
				}
				if current.Kind == kind {
					result = nil
					return txn.Delete(key)
				}
			}

			reaction := &models.Reaction{
				UserID:    userID,
				PostID:    postID,
				Kind:      kind,
				CreatedAt: time.Now(),
			}
			data, err := marshalEntity(reaction)
			if err != nil {
				return err
			}
			result = reaction
			return txn.Set(key, data)
		})
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get retrieves the reaction a user holds on a post, ErrNotFound when none
func (r *BadgerReactionRepository) Get(userID, postID int) (*models.Reaction, error) {
	var reaction models.Reaction

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(pairKey(ReactionKeyPrefix, postID, userID))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &reaction)
		})
	})

	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// Counts tallies likes and dislikes for a post in one prefix scan
func (r *BadgerReactionRepository) Counts(postID int) (int, int, error) {
	var likes, dislikes int

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := pairScanPrefix(ReactionKeyPrefix, postID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var reaction models.Reaction
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &reaction)
			})
			if err != nil {
				return err
			}
			switch reaction.Kind {
			case models.ReactionLike:
				likes++
			case models.ReactionDislike:
				dislikes++
			}
		}
		return nil
	})

	if err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}

// DeleteByPost removes every reaction on a post
func (r *BadgerReactionRepository) DeleteByPost(postID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return deleteByPrefix(txn, pairScanPrefix(ReactionKeyPrefix, postID))
	})
}
