package token

import "github.com/iov-one/pairswap/errors"

// token takes 1030-1040
var (
	// ErrMintMismatch is returned when tokens are moved between accounts
	// of different mints.
	ErrMintMismatch = errors.Register(1030, "mint mismatch")
)
