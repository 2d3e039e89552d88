package sigs

import (
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/swaptest"
)

// StdTx is a signed transaction carrying a mock message.
type StdTx struct {
	swaptest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ pairswap.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &swaptest.Msg{RoutePath: "sigs/test", Serialized: payload}
	return &StdTx{Tx: swaptest.Tx{Msg: msg}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []pairswap.Address
}

var _ pairswap.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx) (*pairswap.CheckResult, error) {
	s.Signers = Authenticate{}.GetSigners(ctx)
	return &pairswap.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx pairswap.Context, store pairswap.KVStore, tx pairswap.Tx) (*pairswap.DeliverResult, error) {
	s.Signers = Authenticate{}.GetSigners(ctx)
	return &pairswap.DeliverResult{}, nil
}
