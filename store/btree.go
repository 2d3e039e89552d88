package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/pairswap/errors"
)

// freeListSize is the number of btree nodes kept for reuse by all cache
// layers of one store.
const freeListSize = btree.DefaultFreeListSize

// MemStore returns an empty in-memory store. Nothing is persisted.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return newCacheWrap(e, e.NewBatch(), nil)
}

// cacheWrap keeps pending writes in a btree on top of a read only parent.
// Every write is also recorded in the batch, which flushes them into the
// parent on Write.
type cacheWrap struct {
	tree   *btree.BTree
	free   *btree.FreeList
	parent ReadOnlyKVStore
	batch  Batch
}

var _ KVCacheWrap = cacheWrap{}

func newCacheWrap(parent ReadOnlyKVStore, batch Batch, free *btree.FreeList) cacheWrap {
	if free == nil {
		free = btree.NewFreeList(freeListSize)
	}
	return cacheWrap{
		tree:   btree.NewWithFreeList(2, free),
		free:   free,
		parent: parent,
		batch:  batch,
	}
}

// CacheWrap returns a new layer on top of this one. Writing the new layer
// applies its changes to this one only.
func (c cacheWrap) CacheWrap() KVCacheWrap {
	return newCacheWrap(c, c.NewBatch(), c.free)
}

func (c cacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(c)
}

// Write flushes all changes into the parent and empties the cache.
func (c cacheWrap) Write() error {
	err := c.batch.Write()
	c.Discard()
	return err
}

// Discard drops all changes. Released nodes return to the free list.
func (c cacheWrap) Discard() {
	for c.tree.DeleteMin() != nil {
	}
}

func (c cacheWrap) Set(key, value []byte) error {
	c.tree.ReplaceOrInsert(entry{key: key, value: value})
	return c.batch.Set(key, value)
}

func (c cacheWrap) Delete(key []byte) error {
	c.tree.ReplaceOrInsert(entry{key: key, deleted: true})
	return c.batch.Delete(key)
}

// lookup returns the cached entry for the key, if any.
func (c cacheWrap) lookup(key []byte) (entry, bool, error) {
	item := c.tree.Get(entry{key: key})
	if item == nil {
		return entry{}, false, nil
	}
	e, ok := item.(entry)
	if !ok {
		return entry{}, false, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", item)
	}
	return e, true, nil
}

func (c cacheWrap) Get(key []byte) ([]byte, error) {
	e, ok, err := c.lookup(key)
	switch {
	case err != nil:
		return nil, err
	case !ok:
		return c.parent.Get(key)
	case e.deleted:
		return nil, nil
	}
	return e.value, nil
}

func (c cacheWrap) Has(key []byte) (bool, error) {
	e, ok, err := c.lookup(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return c.parent.Has(key)
	}
	return !e.deleted, nil
}

// Iterator returns keys of [start, end) in ascending order, with the
// cached changes applied over the parent content.
func (c cacheWrap) Iterator(start, end []byte) (Iterator, error) {
	return c.iterate(start, end, false)
}

// ReverseIterator is Iterator in descending order.
func (c cacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	return c.iterate(start, end, true)
}

func (c cacheWrap) iterate(start, end []byte, reverse bool) (Iterator, error) {
	var (
		it  Iterator
		err error
	)
	if reverse {
		it, err = c.parent.ReverseIterator(start, end)
	} else {
		it, err = c.parent.Iterator(start, end)
	}
	if err != nil {
		return nil, err
	}
	under, err := ReadAll(it)
	if err != nil {
		return nil, errors.Wrap(err, "read parent")
	}
	ours := rangeEntries(c.tree, start, end)
	if reverse {
		for i, j := 0, len(ours)-1; i < j; i, j = i+1, j-1 {
			ours[i], ours[j] = ours[j], ours[i]
		}
	}
	return NewSliceIterator(merge(under, ours, reverse)), nil
}

// entry is a cached change of a single key. Deleted entries hide the
// parent value.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

// Less orders entries by key.
func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
