package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	pairswap.Persistent
	Validate() error
}

// ModelBucket is implemented by buckets that operates on Models.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db pairswap.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key is present in
	// the database, ErrNotFound otherwise.
	Has(db pairswap.ReadOnlyKVStore, key []byte) error

	// Create saves given model in the database under a key that must not
	// be used yet. ErrDuplicate is returned if the key is taken.
	Create(db pairswap.KVStore, key []byte, m Model) error

	// Put saves given model in the database, overwriting any previous
	// state.
	Put(db pairswap.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db pairswap.KVStore, key []byte) error

	// Each loads every stored model into dest and calls fn with its key,
	// in ascending key order. Returning an error from fn stops the
	// iteration and that error is returned.
	Each(db pairswap.ReadOnlyKVStore, dest Model, fn func(key []byte) error) error

	// IndexKeys returns primary keys of all entities that were indexed
	// under given value by the named index.
	IndexKeys(db pairswap.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error)
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities are indexed under every value returned by the indexer.
func WithIndex(name string, indexer MultiKeyIndexer) ModelBucketOption {
	return func(mb *modelBucket) {
		if _, ok := mb.indexes[name]; ok {
			panic(fmt.Sprintf("index %q declared twice", name))
		}
		mb.indexes[name] = newIndex(mb.name, name, indexer)
	}
}

// NewModelBucket returns a ModelBucket instance storing entities of the
// same type as given model.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}
	mb := &modelBucket{
		name:    name,
		prefix:  append([]byte(name), ':'),
		model:   reflect.TypeOf(m),
		indexes: make(map[string]*index),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	indexes map[string]*index
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte{}, mb.prefix...), key...)
}

func (mb *modelBucket) One(db pairswap.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%s bucket cannot load into %T", mb.name, dest)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot get from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal into %T", dest)
	}
	return nil
}

func (mb *modelBucket) Has(db pairswap.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot query the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s key %X", mb.name, key)
	}
	return nil
}

func (mb *modelBucket) Create(db pairswap.KVStore, key []byte, m Model) error {
	switch err := mb.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "%s key %X already allocated", mb.name, key)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return mb.save(db, key, nil, m)
}

func (mb *modelBucket) Put(db pairswap.KVStore, key []byte, m Model) error {
	var prev Model
	if len(mb.indexes) > 0 {
		old := reflect.New(mb.model.Elem()).Interface().(Model)
		switch err := mb.One(db, key, old); {
		case err == nil:
			prev = old
		case !errors.ErrNotFound.Is(err):
			return err
		}
	}
	return mb.save(db, key, prev, m)
}

func (mb *modelBucket) save(db pairswap.KVStore, key []byte, prev, m Model) error {
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrType, "%s bucket cannot store %T", mb.name, m)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	for _, idx := range mb.indexes {
		if err := idx.update(db, key, prev, m); err != nil {
			return errors.Wrapf(err, "index %s", idx.name)
		}
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db pairswap.KVStore, key []byte) error {
	prev := reflect.New(mb.model.Elem()).Interface().(Model)
	if err := mb.One(db, key, prev); err != nil {
		return err
	}
	for _, idx := range mb.indexes {
		if err := idx.update(db, key, prev, nil); err != nil {
			return errors.Wrapf(err, "index %s", idx.name)
		}
	}
	return db.Delete(mb.dbKey(key))
}

func (mb *modelBucket) Each(db pairswap.ReadOnlyKVStore, dest Model, fn func(key []byte) error) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%s bucket cannot load into %T", mb.name, dest)
	}
	it, err := db.Iterator(mb.prefix, prefixEnd(mb.prefix))
	if err != nil {
		return errors.Wrap(err, "iterator")
	}
	defer it.Release()

	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := dest.Unmarshal(value); err != nil {
			return errors.Wrapf(err, "cannot unmarshal %X", key)
		}
		if err := fn(key[len(mb.prefix):]); err != nil {
			return err
		}
	}
}

func (mb *modelBucket) IndexKeys(db pairswap.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "no index %q in %s bucket", indexName, mb.name)
	}
	return idx.keys(db, value)
}

// prefixEnd returns the smallest key that is greater than all keys with
// given prefix. Nil means there is no such key.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
