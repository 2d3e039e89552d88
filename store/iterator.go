package store

import (
	"bytes"

	"github.com/google/btree"
)

// rangeEntries returns all btree entries within [start, end) in ascending
// order. Nil start or end means unbounded.
func rangeEntries(bt *btree.BTree, start, end []byte) []entry {
	var items []entry
	collect := func(item btree.Item) bool {
		items = append(items, item.(entry))
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		bt.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	return items
}

// merge combines the parent models with the cached items. Both lists must
// be sorted in the same direction. Cached items shadow parent entries with
// the same key and deleted items hide them.
func merge(parent []Model, ours []entry, reverse bool) []Model {
	less := func(a, b []byte) bool {
		if reverse {
			return bytes.Compare(a, b) > 0
		}
		return bytes.Compare(a, b) < 0
	}

	res := make([]Model, 0, len(parent)+len(ours))
	emit := func(e entry) {
		if !e.deleted {
			res = append(res, Pair(e.key, e.value))
		}
	}

	var i, j int
	for i < len(parent) && j < len(ours) {
		pk, ok := parent[i].Key, ours[j].key
		switch {
		case less(pk, ok):
			res = append(res, parent[i])
			i++
		case less(ok, pk):
			emit(ours[j])
			j++
		default:
			emit(ours[j])
			i++
			j++
		}
	}
	res = append(res, parent[i:]...)
	for ; j < len(ours); j++ {
		emit(ours[j])
	}
	return res
}
