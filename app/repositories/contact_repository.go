package repositories

import (
	"sort"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerContactRepository implements ContactRepository using BadgerDB
type BadgerContactRepository struct {
	db *badger.DB
}

// NewBadgerContactRepository creates a new BadgerContactRepository
func NewBadgerContactRepository(db *badger.DB) *BadgerContactRepository {
	return &BadgerContactRepository{db: db}
}

// Create stores a submitted contact message
func (r *BadgerContactRepository) Create(message *models.ContactMessage) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, ContactSeqKey)
		if err != nil {
			return err
		}
		message.ID = id

		data, err := marshalEntity(message)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(ContactKeyPrefix, id), data)
	})
}

// List retrieves stored messages, newest first, paginated
func (r *BadgerContactRepository) List(limit, offset int) ([]*models.ContactMessage, error) {
	var messages []*models.ContactMessage

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(ContactKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var message models.ContactMessage
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &message)
			})
			if err != nil {
				return err
			}
			messages = append(messages, &message)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(messages, func(i, j int) bool {
		return messages[i].SubmittedAt.After(messages[j].SubmittedAt)
	})

	if offset >= len(messages) {
		return nil, nil
	}
	end := offset + limit
	if end > len(messages) {
		end = len(messages)
	}
	return messages[offset:end], nil
}
