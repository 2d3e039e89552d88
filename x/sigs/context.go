package sigs

import (
	"context"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx pairswap.Context, signers []pairswap.Address) pairswap.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate reads the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetSigners returns who signed the current Context.
// May be empty
func (a Authenticate) GetSigners(ctx pairswap.Context) []pairswap.Address {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]pairswap.Address)
	return val
}

// HasAddress returns true if given address signed the current Context.
func (a Authenticate) HasAddress(ctx pairswap.Context, addr pairswap.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
