package repositories

import (
	"fmt"
	"sort"
	"strconv"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB. Secondary
// index keys map username, email and verification token back to the user ID.
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create persists the user and its profile in one transaction. A uniqueness
// violation on username or email fails the whole transaction, so a user can
// never exist without a profile or vice versa.
func (r *BadgerUserRepository) Create(user *models.User, profile *models.Profile) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(usernameIdxKey(user.Username)); err == nil {
			return fmt.Errorf("username %q: %w", user.Username, ErrDuplicate)
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		if _, err := txn.Get(emailIdxKey(user.Email)); err == nil {
			return fmt.Errorf("email %q: %w", user.Email, ErrDuplicate)
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		user.ID = id
		profile.UserID = id

		userData, err := marshalEntity(user)
		if err != nil {
			return err
		}
		profileData, err := marshalEntity(profile)
		if err != nil {
			return err
		}

		if err := txn.Set(entityKey(UserKeyPrefix, id), userData); err != nil {
			return err
		}
		if err := txn.Set(entityKey(ProfileKeyPrefix, id), profileData); err != nil {
			return err
		}
		if err := txn.Set(usernameIdxKey(user.Username), idValue(id)); err != nil {
			return err
		}
		if err := txn.Set(emailIdxKey(user.Email), idValue(id)); err != nil {
			return err
		}
		return txn.Set(tokenIdxKey(profile.VerificationToken), idValue(id))
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(UserKeyPrefix, id), &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username via the index key
func (r *BadgerUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.getByIndex(usernameIdxKey(username))
}

// GetByEmail retrieves a user by email via the index key
func (r *BadgerUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.getByIndex(emailIdxKey(email))
}

// Update updates an existing user record
func (r *BadgerUserRepository) Update(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(UserKeyPrefix, user.ID)
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		data, err := marshalEntity(user)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// GetProfile retrieves the profile for a user ID
func (r *BadgerUserRepository) GetProfile(userID int) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(ProfileKeyPrefix, userID), &profile)
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByToken resolves a verification token to its profile
func (r *BadgerUserRepository) GetProfileByToken(token string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupIndex(txn, tokenIdxKey(token))
		if err != nil {
			return err
		}
		return getEntity(txn, entityKey(ProfileKeyPrefix, id), &profile)
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates an existing profile record and keeps the token index
// in step: clearing or replacing the verification token removes the old index
// key in the same transaction, so a consumed token can never resolve again.
func (r *BadgerUserRepository) UpdateProfile(profile *models.Profile) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(ProfileKeyPrefix, profile.UserID)
		var existing models.Profile
		if err := getEntity(txn, key, &existing); err != nil {
			return err
		}

		if existing.VerificationToken != profile.VerificationToken {
			if existing.VerificationToken != "" {
				if err := txn.Delete(tokenIdxKey(existing.VerificationToken)); err != nil {
					return err
				}
			}
			if profile.VerificationToken != "" {
				if err := txn.Set(tokenIdxKey(profile.VerificationToken), idValue(profile.UserID)); err != nil {
					return err
				}
			}
		}

		data, err := marshalEntity(profile)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// ListAuthors retrieves every user whose profile marks them as an author,
// ordered by username
func (r *BadgerUserRepository) ListAuthors() ([]*models.User, error) {
	var authors []*models.User

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(ProfileKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var profile models.Profile
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &profile)
			})
			if err != nil {
				return err
			}
			if !profile.IsAuthor() {
				continue
			}

			var user models.User
			if err := getEntity(txn, entityKey(UserKeyPrefix, profile.UserID), &user); err != nil {
				return err
			}
			authors = append(authors, &user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(authors, func(i, j int) bool {
		return authors[i].Username < authors[j].Username
	})
	return authors, nil
}

func (r *BadgerUserRepository) getByIndex(idxKey []byte) (*models.User, error) {
	var user models.User
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupIndex(txn, idxKey)
		if err != nil {
			return err
		}
		return getEntity(txn, entityKey(UserKeyPrefix, id), &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func usernameIdxKey(username string) []byte {
	return []byte(UsernameIdxPrefix + username)
}

func emailIdxKey(email string) []byte {
	return []byte(EmailIdxPrefix + email)
}

func tokenIdxKey(token string) []byte {
	return []byte(TokenIdxPrefix + token)
}

func idValue(id int) []byte {
	return []byte(strconv.Itoa(id))
}

// lookupIndex resolves an index key to the integer ID it points at
func lookupIndex(txn *badger.Txn, key []byte) (int, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	var id int
	err = item.Value(func(val []byte) error {
		parsed, err := strconv.Atoi(string(val))
		if err != nil {
			return err
		}
		id = parsed
		return nil
	})
	return id, err
}

// getEntity fetches and unmarshals a single record inside a transaction
func getEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, entity)
	})
}
