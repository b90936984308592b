package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Entity is a typed record collection on top of Badger. Records live
// under prefix+id and are stored as JSON. An optional unique index maps
// a derived value (for users, the normalized email) back to the id so
// lookups do not scan.
type Entity[T any] struct {
	store   *Store
	prefix  string
	indexes []uniqueIndex[T]
}

// uniqueIndex derives one key per record. Writes fail with
// ErrAlreadyExists when another record already owns the key.
type uniqueIndex[T any] struct {
	name      string
	key       func(*T) string
	normalize func(string) string
}

// NewEntity creates a collection storing T under the given key prefix.
func NewEntity[T any](s *Store, prefix string) *Entity[T] {
	return &Entity[T]{store: s, prefix: prefix}
}

// WithUniqueIndex registers a unique secondary index. normalize is
// applied to lookup values so, for example, email lookups are
// case-insensitive; key must already return normalized values.
func (e *Entity[T]) WithUniqueIndex(name string, key func(*T) string, normalize func(string) string) *Entity[T] {
	e.indexes = append(e.indexes, uniqueIndex[T]{name: name, key: key, normalize: normalize})
	return e
}

func (e *Entity[T]) recordKey(id string) []byte {
	return []byte(e.prefix + id)
}

func (e *Entity[T]) indexKey(name, value string) []byte {
	return []byte(e.prefix + "idx:" + name + ":" + value)
}

// Create stores a new record. It fails with ErrAlreadyExists when the
// id or any index key is already taken.
func (e *Entity[T]) Create(ctx context.Context, id string, record *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(e.recordKey(id)); err == nil {
			return ErrAlreadyExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check record key: %w", err)
		}

		for _, idx := range e.indexes {
			key := e.indexKey(idx.name, idx.key(record))
			if _, err := txn.Get(key); err == nil {
				return fmt.Errorf("index %s conflict: %w", idx.name, ErrAlreadyExists)
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("check index key: %w", err)
			}
		}

		if err := txn.Set(e.recordKey(id), data); err != nil {
			return fmt.Errorf("set record: %w", err)
		}
		for _, idx := range e.indexes {
			if err := txn.Set(e.indexKey(idx.name, idx.key(record)), []byte(id)); err != nil {
				return fmt.Errorf("set index: %w", err)
			}
		}
		return nil
	})
}

// Get retrieves a record by id, or ErrNotFound.
func (e *Entity[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var record T
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(e.recordKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get record: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByIndex resolves value through the named index and returns the
// record it points at, or ErrNotFound.
func (e *Entity[T]) GetByIndex(ctx context.Context, name, value string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, idx := range e.indexes {
		if idx.name == name && idx.normalize != nil {
			value = idx.normalize(value)
			break
		}
	}

	var id string
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(e.indexKey(name, value))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return e.Get(ctx, id)
}

// Update replaces an existing record, moving index entries whose key
// changed. It fails with ErrNotFound for unknown ids and with
// ErrAlreadyExists when a new index key is owned by another record.
func (e *Entity[T]) Update(ctx context.Context, id string, record *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		var old T
		item, err := txn.Get(e.recordKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get record: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &old)
		}); err != nil {
			return err
		}

		for _, idx := range e.indexes {
			oldKey, newKey := idx.key(&old), idx.key(record)
			if oldKey == newKey {
				continue
			}
			if _, err := txn.Get(e.indexKey(idx.name, newKey)); err == nil {
				return fmt.Errorf("index %s conflict: %w", idx.name, ErrAlreadyExists)
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("check index key: %w", err)
			}
			if err := txn.Delete(e.indexKey(idx.name, oldKey)); err != nil {
				return fmt.Errorf("delete old index: %w", err)
			}
			if err := txn.Set(e.indexKey(idx.name, newKey), []byte(id)); err != nil {
				return fmt.Errorf("set index: %w", err)
			}
		}

		if err := txn.Set(e.recordKey(id), data); err != nil {
			return fmt.Errorf("set record: %w", err)
		}
		return nil
	})
}
