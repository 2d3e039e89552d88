package escrow

import (
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r pairswap.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&CreateMsg{}, CreateEscrowHandler{auth: auth, control: control})
	r.Handle(&DepositMsg{}, DepositHandler{auth: auth, control: control})
}

// CreateEscrowHandler creates escrows. The initiator must sign.
type CreateEscrowHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ pairswap.Handler = CreateEscrowHandler{}

// Check just verifies it is properly formed and signed.
func (h CreateEscrowHandler) Check(ctx pairswap.Context, db pairswap.KVStore, tx pairswap.Tx) (*pairswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &pairswap.CheckResult{}, nil
}

// Deliver creates the escrow and its vaults. The escrow address is
// returned as the result data.
func (h CreateEscrowHandler) Deliver(ctx pairswap.Context, db pairswap.KVStore, tx pairswap.Tx) (*pairswap.DeliverResult, error) {
	msg, partyA, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, _, err := h.control.Create(ctx, db, msg.Terms(partyA))
	if err != nil {
		return nil, err
	}
	pairswap.GetLogger(ctx).Info("escrow created", "escrow", addr, "party_a", partyA)
	return &pairswap.DeliverResult{Data: addr[:]}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateEscrowHandler) validate(ctx pairswap.Context, tx pairswap.Tx) (*CreateMsg, pairswap.Address, error) {
	var msg CreateMsg
	if err := pairswap.LoadMsg(tx, &msg); err != nil {
		return nil, pairswap.Address{}, errors.Wrap(err, "load msg")
	}
	partyA, err := x.Signer(ctx, h.auth, msg.PartyA)
	if err != nil {
		return nil, partyA, errors.Wrap(err, "party a")
	}
	return &msg, partyA, nil
}

// DepositHandler funds escrows. The depositor must sign.
type DepositHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ pairswap.Handler = DepositHandler{}

// Check just verifies it is properly formed and signed.
func (h DepositHandler) Check(ctx pairswap.Context, db pairswap.KVStore, tx pairswap.Tx) (*pairswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &pairswap.CheckResult{}, nil
}

// Deliver moves the tokens of the depositor into the vault of its role.
func (h DepositHandler) Deliver(ctx pairswap.Context, db pairswap.KVStore, tx pairswap.Tx) (*pairswap.DeliverResult, error) {
	msg, depositor, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	d := msg.Deposit(depositor)
	role, err := h.control.Deposit(ctx, db, d)
	if err != nil {
		return nil, err
	}
	pairswap.GetLogger(ctx).Info("escrow funded", "escrow", d.Escrow, "role", role)
	return &pairswap.DeliverResult{Log: "deposited by party " + role.String()}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h DepositHandler) validate(ctx pairswap.Context, tx pairswap.Tx) (*DepositMsg, pairswap.Address, error) {
	var msg DepositMsg
	if err := pairswap.LoadMsg(tx, &msg); err != nil {
		return nil, pairswap.Address{}, errors.Wrap(err, "load msg")
	}
	depositor, err := x.Signer(ctx, h.auth, msg.Depositor)
	if err != nil {
		return nil, depositor, errors.Wrap(err, "depositor")
	}
	return &msg, depositor, nil
}
