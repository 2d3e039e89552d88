package token

import (
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r pairswap.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&TransferMsg{}, NewTransferHandler(auth, control))
}

// TransferHandler will handle moving tokens
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ pairswap.Handler = TransferHandler{}

// NewTransferHandler creates a handler for TransferMsg
func NewTransferHandler(auth x.Authenticator, control Controller) TransferHandler {
	return TransferHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and signed by the owner of the
// source account.
func (h TransferHandler) Check(ctx pairswap.Context, db pairswap.KVStore, tx pairswap.Tx) (*pairswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pairswap.CheckResult{}, nil
}

// Deliver moves the tokens from source to destination if all preconditions
// are met.
func (h TransferHandler) Deliver(ctx pairswap.Context, db pairswap.KVStore, tx pairswap.Tx) (*pairswap.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	src, _ := pairswap.AddressFromBytes(msg.Source)
	dst, _ := pairswap.AddressFromBytes(msg.Destination)
	if err := h.control.Transfer(db, src, dst, owner, msg.Amount); err != nil {
		return nil, err
	}
	return &pairswap.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx pairswap.Context, db pairswap.KVStore, tx pairswap.Tx) (*TransferMsg, pairswap.Address, error) {
	var msg TransferMsg
	if err := pairswap.LoadMsg(tx, &msg); err != nil {
		return nil, pairswap.Address{}, errors.Wrap(err, "load msg")
	}
	src, _ := pairswap.AddressFromBytes(msg.Source)
	acc, err := h.control.Account(db, src)
	if err != nil {
		return nil, pairswap.Address{}, errors.Wrap(err, "source")
	}
	if err := x.RequireSigner(ctx, h.auth, acc.Owner); err != nil {
		return nil, pairswap.Address{}, errors.Wrap(err, "source owner")
	}
	return &msg, acc.Owner, nil
}
