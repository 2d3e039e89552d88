package orm

import (
	"bytes"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
)

const indexPrefix = "_i."

// MultiKeyIndexer calculates the secondary index keys for a given model.
type MultiKeyIndexer func(Model) ([][]byte, error)

// index stores a reference for every (value, primary key) pair under
//   _i.<bucket>_<name>:<len(value)><value><primary key>
// so that all primary keys of a value can be read with a prefix scan.
type index struct {
	name    string
	prefix  []byte
	indexer MultiKeyIndexer
}

func newIndex(bucket, name string, indexer MultiKeyIndexer) *index {
	return &index{
		name:    name,
		prefix:  []byte(indexPrefix + bucket + "_" + name + ":"),
		indexer: indexer,
	}
}

func (i *index) valuePrefix(value []byte) []byte {
	p := append([]byte{}, i.prefix...)
	p = append(p, byte(len(value)))
	return append(p, value...)
}

func (i *index) refKey(value, key []byte) []byte {
	return append(i.valuePrefix(value), key...)
}

// update replaces all references of prev with those of next. Nil prev
// means insert, nil next means delete.
func (i *index) update(db pairswap.KVStore, key []byte, prev, next Model) error {
	var old, fresh [][]byte
	var err error
	if prev != nil {
		if old, err = i.indexer(prev); err != nil {
			return errors.Wrap(err, "previous state")
		}
	}
	if next != nil {
		if fresh, err = i.indexer(next); err != nil {
			return errors.Wrap(err, "new state")
		}
	}
	for _, v := range old {
		if contains(fresh, v) {
			continue
		}
		if err := db.Delete(i.refKey(v, key)); err != nil {
			return err
		}
	}
	for _, v := range fresh {
		if len(v) > 255 {
			return errors.Wrapf(errors.ErrInput, "index value too long: %d", len(v))
		}
		if err := db.Set(i.refKey(v, key), []byte{}); err != nil {
			return err
		}
	}
	return nil
}

func (i *index) keys(db pairswap.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	prefix := i.valuePrefix(value)
	it, err := db.Iterator(prefix, prefixEnd(prefix))
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res [][]byte
	for {
		key, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, append([]byte{}, key[len(prefix):]...))
	}
}

func contains(list [][]byte, v []byte) bool {
	for _, e := range list {
		if bytes.Equal(e, v) {
			return true
		}
	}
	return false
}
