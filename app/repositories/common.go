package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix     = "post:"
	CommentKeyPrefix  = "comment:"
	UserKeyPrefix     = "user:"
	ProfileKeyPrefix  = "profile:"
	CategoryKeyPrefix = "category:"
	ContactKeyPrefix  = "contact:"

	// Engagement rows are keyed by the (post, user) pair itself, so the
	// store's single-key atomicity enforces at-most-one-per-pair.
	ReactionKeyPrefix = "reaction:"
	FavoriteKeyPrefix = "favorite:"
	RatingKeyPrefix   = "rating:"

	// Secondary index prefixes
	UsernameIdxPrefix = "idx:username:"
	EmailIdxPrefix    = "idx:email:"
	TokenIdxPrefix    = "idx:verify:"
	CatNameIdxPrefix  = "idx:catname:"

	// Sequence keys for auto-incrementing IDs
	PostSeqKey     = "seq:post"
	CommentSeqKey  = "seq:comment"
	UserSeqKey     = "seq:user"
	CategorySeqKey = "seq:category"
	ContactSeqKey  = "seq:contact"
)

// entityKey builds the primary key for an entity with an integer ID.
func entityKey(prefix string, id int) []byte {
	return []byte(fmt.Sprintf("%s%d", prefix, id))
}

// pairKey builds the key for a (post, user) engagement row. Post ID comes
// first so per-post scans are a single prefix iteration.
func pairKey(prefix string, postID, userID int) []byte {
	return []byte(fmt.Sprintf("%s%d:%d", prefix, postID, userID))
}

// pairScanPrefix is the prefix covering every engagement row of one post.
func pairScanPrefix(prefix string, postID int) []byte {
	return []byte(fmt.Sprintf("%s%d:", prefix, postID))
}

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id int
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		id = 1
	} else if err != nil {
		return 0, err
	} else {
		err = item.Value(func(val []byte) error {
			id = int(val[0])<<24 | int(val[1])<<16 | int(val[2])<<8 | int(val[3])
			return nil
		})
		if err != nil {
			return 0, err
		}
		id++
	}

	idBytes := []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
	if err := txn.Set([]byte(seqKey), idBytes); err != nil {
		return 0, err
	}

	return id, nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}

// retryOnConflict reruns fn when the store reports a transaction conflict.
// Toggles racing on the same pair are safe to rerun: the desired end state is
// whatever the winning writer left behind, re-applied on a fresh read.
func retryOnConflict(fn func() error) error {
	const maxAttempts = 3
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = fn()
		if err != badger.ErrConflict {
			return err
		}
	}
	return err
}

// deleteByPrefix removes every key under the given prefix within one update
// transaction. Used by the post cascade.
func deleteByPrefix(txn *badger.Txn, prefix []byte) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	for _, key := range keys {
		if err := txn.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
