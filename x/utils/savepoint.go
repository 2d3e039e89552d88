package utils

import (
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ pairswap.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on Check
func (s Savepoint) OnCheck() Savepoint {
	return Savepoint{
		onCheck:   true,
		onDeliver: s.onDeliver,
	}
}

// OnDeliver returns a savepoint that will trigger on Deliver
func (s Savepoint) OnDeliver() Savepoint {
	return Savepoint{
		onCheck:   s.onCheck,
		onDeliver: true,
	}
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx, next pairswap.Checker) (*pairswap.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}
	var res *pairswap.CheckResult
	err := Atomic(store, func(db pairswap.KVStore) error {
		var err error
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx, next pairswap.Deliverer) (*pairswap.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}
	var res *pairswap.DeliverResult
	err := Atomic(store, func(db pairswap.KVStore) error {
		var err error
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Atomic calls fn with a cache wrap of the store. All writes done by fn are
// written to the store only if fn succeeds, otherwise all of them are
// discarded.
//
// If the store cannot be cache wrapped, fn operates on the store directly.
func Atomic(store pairswap.KVStore, fn func(pairswap.KVStore) error) error {
	cstore, ok := store.(pairswap.CacheableKVStore)
	if !ok {
		return fn(store)
	}

	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
