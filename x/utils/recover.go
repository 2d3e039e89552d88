package utils

import (
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
)

// Recovery converts a panic of any inner handler into an ErrPanic error,
// so a single broken transaction cannot stop the ledger. The panic value is
// logged. Clients only see the redacted error.
type Recovery struct{}

var _ pairswap.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx, next pairswap.Checker) (_ *pairswap.CheckResult, err error) {
	defer recovered(ctx, tx, &err)
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx, next pairswap.Deliverer) (_ *pairswap.DeliverResult, err error) {
	defer recovered(ctx, tx, &err)
	return next.Deliver(ctx, store, tx)
}

// recovered must be called directly by defer.
func recovered(ctx pairswap.Context, tx pairswap.Tx, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", r)
	pairswap.GetLogger(ctx).Error("transaction panicked", "path", pairswap.GetPath(tx), "panic", r)
}
