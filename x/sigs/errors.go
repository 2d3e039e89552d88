package sigs

import "github.com/iov-one/pairswap/errors"

// sigs takes 1040-1049
var (
	ErrInvalidSequence = errors.Register(1040, "invalid sequence number")
)
