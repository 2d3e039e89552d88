package sigs

import (
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
)

// Decorator verifies the signatures and adds them to the context
type Decorator struct {
	allowMissingSigs bool
}

var _ pairswap.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator,
// which appends the chainID before checking the signature,
// and requires at least one signature to be present
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx, next pairswap.Checker) (*pairswap.CheckResult, error) {
	ctx, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx, next pairswap.Deliverer) (*pairswap.DeliverResult, error) {
	ctx, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) authenticate(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx) (pairswap.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}
	signers, err := VerifyTxSignatures(store, stx, pairswap.GetChainID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), nil
}
