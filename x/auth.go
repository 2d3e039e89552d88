package x

import (
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
)

// Authenticator tells which addresses authorized the current transaction.
// Handlers receive one in their constructor instead of depending on x/sigs
// directly, so tests can supply signers without signing anything.
type Authenticator interface {
	// GetSigners returns all addresses that authorized the transaction.
	// The first one is the main signer.
	GetSigners(pairswap.Context) []pairswap.Address
	HasAddress(pairswap.Context, pairswap.Address) bool
}

// MainSigner returns the first signer. False is returned if the transaction
// was not signed at all.
func MainSigner(ctx pairswap.Context, auth Authenticator) (pairswap.Address, bool) {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return pairswap.Address{}, false
	}
	return signers[0], true
}

// RequireSigner returns ErrUnauthorized unless addr signed the transaction.
func RequireSigner(ctx pairswap.Context, auth Authenticator, addr pairswap.Address) error {
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "signature of %s missing", addr)
	}
	return nil
}

// Signer resolves the acting party of a message. A message may name it
// explicitly, in which case that address must have signed. Otherwise the
// main signer acts.
func Signer(ctx pairswap.Context, auth Authenticator, declared []byte) (pairswap.Address, error) {
	if len(declared) == 0 {
		main, ok := MainSigner(ctx, auth)
		if !ok {
			return main, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		return main, nil
	}
	addr, err := pairswap.AddressFromBytes(declared)
	if err != nil {
		return addr, err
	}
	return addr, RequireSigner(ctx, auth, addr)
}
