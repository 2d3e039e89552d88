package utils

import (
	"context"
	"testing"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/store"
	"github.com/iov-one/pairswap/swaptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	derr := errors.ErrState.New("something went wrong")

	cases := map[string]struct {
		save    pairswap.Decorator
		fail    bool
		check   bool // whether to call Check or Deliver
		written bool
	}{
		"savepoint deactivated keeps writes of a failure": {
			save:    NewSavepoint(),
			fail:    true,
			check:   true,
			written: true,
		},
		"check savepoint discards writes of a failure": {
			save:  NewSavepoint().OnCheck(),
			fail:  true,
			check: true,
		},
		"deliver savepoint discards writes of a failure": {
			save: NewSavepoint().OnDeliver(),
			fail: true,
		},
		"check savepoint does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			fail:    true,
			written: true,
		},
		"double activation keeps both behaviors": {
			save: NewSavepoint().OnCheck().OnDeliver(),
			fail: true,
		},
		"success is written": {
			save:    NewSavepoint().OnDeliver(),
			written: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := &swaptest.Handler{Write: &swaptest.Pair{Key: nk, Value: nv}}
			if tc.fail {
				h.CheckErr = derr
				h.DeliverErr = derr
			}
			// Check of the mock does not write, so make it write too.
			handler := swaptest.Decorate(&checkWriter{Handler: h}, tc.save)

			db := store.MemStore()
			var err error
			if tc.check {
				_, err = handler.Check(context.Background(), db, &swaptest.Tx{})
			} else {
				_, err = handler.Deliver(context.Background(), db, &swaptest.Tx{})
			}
			if tc.fail {
				assert.True(t, derr == err || errors.ErrState.Is(err))
			} else {
				assert.NoError(t, err)
			}

			has, err := db.Has(nk)
			require.NoError(t, err)
			assert.Equal(t, tc.written, has)
		})
	}
}

type checkWriter struct {
	*swaptest.Handler
}

func (c *checkWriter) Check(ctx pairswap.Context, db pairswap.KVStore, tx pairswap.Tx) (*pairswap.CheckResult, error) {
	if err := db.Set(c.Write.Key, c.Write.Value); err != nil {
		return nil, err
	}
	return c.Handler.Check(ctx, db, tx)
}

func TestAtomicWithoutCache(t *testing.T) {
	var calls int
	err := Atomic(store.EmptyKVStore{}, func(pairswap.KVStore) error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}
