package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

// CategoryRepository implements storage.CategoryRepository for BadgerDB.
type CategoryRepository struct {
	backend *Backend
}

var _ storage.CategoryRepository = (*CategoryRepository)(nil)

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(backend *Backend) (*CategoryRepository, error) {
	return &CategoryRepository{
		backend: backend,
	}, nil
}

// Close is a no-op; categories hold no sequence.
func (r *CategoryRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *CategoryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddCategories adds one or more categories to storage.
func (r *CategoryRepository) AddCategories(ctx context.Context, categories ...*core.Category) ([]*core.Category, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, category := range categories {
			// Content-based ID from the normalized name
			if category.Id == 0 {
				category.Id = core.IDFromCategoryName(category.Name)
			}

			// Reject duplicates via the name index
			nameKey := makeCategoryNameKey(category.Name)
			if _, err := tx.Get(nameKey); err == nil {
				return storage.ErrDuplicateKey
			} else if err != badger.ErrKeyNotFound {
				return err
			}

			if category.InsertedAt.IsZero() {
				category.InsertedAt = time.Now().UTC()
			}
			category.UpdatedAt = category.InsertedAt

			key := makeCategoryKey(category.Id)
			if err := tx.Set(key, storage.MarshalCategory(category)); err != nil {
				return err
			}
			if err := tx.Set(nameKey, storage.MarshalID(category.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return categories, err
}

// UpdateCategories updates existing categories.
// The category ID is stable across renames; only the name index moves.
func (r *CategoryRepository) UpdateCategories(ctx context.Context, categories ...*core.Category) ([]*core.Category, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, category := range categories {
			key := makeCategoryKey(category.Id)

			old, err := readCategory(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			category.InsertedAt = old.InsertedAt
			category.UpdatedAt = time.Now().UTC()

			// Move the name index on rename
			if old.Key() != category.Key() {
				newNameKey := makeCategoryNameKey(category.Name)
				if _, err := tx.Get(newNameKey); err == nil {
					return storage.ErrDuplicateKey
				} else if err != badger.ErrKeyNotFound {
					return err
				}
				if err := tx.Delete(makeCategoryNameKey(old.Name)); err != nil {
					return err
				}
				if err := tx.Set(newNameKey, storage.MarshalID(category.Id)); err != nil {
					return err
				}
			}

			if err := tx.Set(key, storage.MarshalCategory(category)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return categories, err
}

// DeleteCategories removes categories by their IDs.
func (r *CategoryRepository) DeleteCategories(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeCategoryKey(id)

			category, err := readCategory(tx, key)
			if err != nil {
				return err
			}
			if category == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeCategoryNameKey(category.Name)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetCategory retrieves a single category by ID.
func (r *CategoryRepository) GetCategory(ctx context.Context, id core.ID) (*core.Category, error) {
	var result *core.Category
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readCategory(tx, makeCategoryKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetAllCategories retrieves every stored category.
func (r *CategoryRepository) GetAllCategories(ctx context.Context) ([]*core.Category, error) {
	var results []*core.Category
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(categoryRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var category *core.Category
			err := iter.Item().Value(func(val []byte) error {
				var err error
				category, err = storage.UnmarshalCategory(val)
				return err
			})
			if err != nil {
				return err
			}
			if category != nil {
				results = append(results, category)
			}
		}
		return nil
	}, false)
	return results, err
}

// GetActiveCategories retrieves the categories currently enabled for routing.
func (r *CategoryRepository) GetActiveCategories(ctx context.Context) ([]*core.Category, error) {
	all, err := r.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	var active []*core.Category
	for _, category := range all {
		if category.Active {
			active = append(active, category)
		}
	}
	return active, nil
}

// FindCategoryByName finds a category by name, ignoring case and
// surrounding whitespace.
func (r *CategoryRepository) FindCategoryByName(ctx context.Context, name string) (*core.Category, error) {
	var result *core.Category
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCategoryNameKey(name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var id core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = readCategory(tx, makeCategoryKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetOrCreateCategory finds or creates an active category by name.
func (r *CategoryRepository) GetOrCreateCategory(ctx context.Context, name string) (*core.Category, error) {
	existing, err := r.FindCategoryByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	category := &core.Category{
		Name:   name,
		Active: true,
	}
	_, err = r.AddCategories(ctx, category)
	if err != nil {
		// Another writer may have created it concurrently
		if errors.Is(err, storage.ErrDuplicateKey) || errors.Is(err, badger.ErrConflict) {
			return r.FindCategoryByName(ctx, name)
		}
		return nil, err
	}
	return category, nil
}

// readCategory reads a category from the transaction.
func readCategory(tx *badger.Txn, key []byte) (*core.Category, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var category *core.Category
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		category, unmarshalErr = storage.UnmarshalCategory(val)
		return unmarshalErr
	})
	return category, err
}
