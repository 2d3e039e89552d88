package escrow

import "github.com/iov-one/pairswap/errors"

// escrow takes 1010-1020
var (
	ErrInvalidDeadline               = errors.Register(1010, "invalid deadline")
	ErrAmountMustBePositive          = errors.Register(1011, "amount must be positive")
	ErrUnknownCaller                 = errors.Register(1012, "unknown caller")
	ErrAlreadyDeposited              = errors.Register(1013, "already deposited")
	ErrAmountMismatch                = errors.Register(1014, "amount mismatch")
	ErrWrongMint                     = errors.Register(1015, "wrong mint")
	ErrTokenAccountAuthorityMismatch = errors.Register(1016, "token account authority mismatch")
	ErrSameParty                     = errors.Register(1017, "both parties are the same")
	ErrSameAsset                     = errors.Register(1018, "both assets are the same")
	ErrVaultMismatch                 = errors.Register(1019, "vault mismatch")
)
