package repositories

import (
	"fmt"
	"sort"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCategoryRepository implements CategoryRepository using BadgerDB
type BadgerCategoryRepository struct {
	db *badger.DB
}

// NewBadgerCategoryRepository creates a new BadgerCategoryRepository
func NewBadgerCategoryRepository(db *badger.DB) *BadgerCategoryRepository {
	return &BadgerCategoryRepository{db: db}
}

// Create creates a new category; names are unique
func (r *BadgerCategoryRepository) Create(category *models.Category) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(catNameIdxKey(category.Name)); err == nil {
			return fmt.Errorf("category %q: %w", category.Name, ErrDuplicate)
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, CategorySeqKey)
		if err != nil {
			return err
		}
		category.ID = id

		data, err := marshalEntity(category)
		if err != nil {
			return err
		}
		if err := txn.Set(entityKey(CategoryKeyPrefix, id), data); err != nil {
			return err
		}
		return txn.Set(catNameIdxKey(category.Name), idValue(id))
	})
}

// GetByID retrieves a category by ID
func (r *BadgerCategoryRepository) GetByID(id int) (*models.Category, error) {
	var category models.Category
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(CategoryKeyPrefix, id), &category)
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetByName retrieves a category by its unique name
func (r *BadgerCategoryRepository) GetByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupIndex(txn, catNameIdxKey(name))
		if err != nil {
			return err
		}
		return getEntity(txn, entityKey(CategoryKeyPrefix, id), &category)
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// List retrieves every category ordered by name
func (r *BadgerCategoryRepository) List() ([]*models.Category, error) {
	var categories []*models.Category

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CategoryKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var category models.Category
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &category)
			})
			if err != nil {
				return err
			}
			categories = append(categories, &category)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func catNameIdxKey(name string) []byte {
	return []byte(CatNameIdxPrefix + name)
}
