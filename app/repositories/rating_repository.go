package repositories

import (
	"time"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerRatingRepository implements RatingRepository using BadgerDB
type BadgerRatingRepository struct {
	db *badger.DB
}

// NewBadgerRatingRepository creates a new BadgerRatingRepository
func NewBadgerRatingRepository(db *badger.DB) *BadgerRatingRepository {
	return &BadgerRatingRepository{db: db}
}

// Upsert stores the rating keyed on (post, user): a resubmission overwrites
// the existing score, never creating a second row for the pair.
func (r *BadgerRatingRepository) Upsert(rating *models.Rating) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := pairKey(RatingKeyPrefix, rating.PostID, rating.UserID)

		var existing models.Rating
		item, err := txn.Get(key)
		switch {
		case err == badger.ErrKeyNotFound:
			rating.CreatedAt = time.Now()
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &existing)
			}); err != nil {
				return err
			}
			// keep the original submission time on overwrite
			rating.CreatedAt = existing.CreatedAt
		}

		data, err := marshalEntity(rating)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Get retrieves the rating a user gave to a post, ErrNotFound when none
func (r *BadgerRatingRepository) Get(userID, postID int) (*models.Rating, error) {
	var rating models.Rating

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(pairKey(RatingKeyPrefix, postID, userID))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &rating)
		})
	})

	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// AverageByPost computes the mean score of a post during the prefix scan,
// without materializing the rating rows. Returns 0 with count 0 when the
// post has no ratings.
func (r *BadgerRatingRepository) AverageByPost(postID int) (float64, int, error) {
	var sum, count int

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := pairScanPrefix(RatingKeyPrefix, postID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rating models.Rating
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &rating)
			})
			if err != nil {
				return err
			}
			sum += rating.Score
			count++
		}
		return nil
	})

	if err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

// DeleteByPost removes every rating of a post
func (r *BadgerRatingRepository) DeleteByPost(postID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return deleteByPrefix(txn, pairScanPrefix(RatingKeyPrefix, postID))
	})
}
