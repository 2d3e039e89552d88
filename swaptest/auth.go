package swaptest

import (
	"context"
	"fmt"

	"github.com/iov-one/pairswap"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced addresses.
// You can use either Signer or Signers (or both) attributes to reference
// addresses. Each time all signers (regardless which attribute) are
// considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer pairswap.Address

	// Signers represents an authentication of multiple signers.
	Signers []pairswap.Address
}

func (a *Auth) GetSigners(pairswap.Context) []pairswap.Address {
	if !a.Signer.IsZero() {
		return append([]pairswap.Address{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx pairswap.Context, addr pairswap.Address) bool {
	if addr.IsZero() {
		return false
	}
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve signers.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context. For
	// convinience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetSigners(ctx pairswap.Context, signers ...pairswap.Address) pairswap.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) GetSigners(ctx pairswap.Context) []pairswap.Address {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	signers, ok := val.([]pairswap.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []pairswap.Address got %T", val))
	}
	return signers
}

func (a *CtxAuth) HasAddress(ctx pairswap.Context, addr pairswap.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
