package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/x/sigs"
	"golang.org/x/crypto/ed25519"
)

// Tx is the transaction format of the ledger. The message is kept
// serialized together with its path, so that it can be decoded into the
// type registered for that path.
type Tx struct {
	Signatures []*sigs.StdSignature
	Path       string
	Msg        []byte

	msg pairswap.Msg
}

var _ pairswap.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns an unsigned transaction carrying given message.
func NewTx(msg pairswap.Msg) (*Tx, error) {
	raw, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal msg")
	}
	return &Tx{Path: msg.Path(), Msg: raw, msg: msg}, nil
}

// GetMsg returns the decoded message. Only transactions created with NewTx
// or decoded by the ledger carry one.
func (tx *Tx) GetMsg() (pairswap.Msg, error) {
	if tx.msg == nil {
		return nil, errors.Wrapf(errors.ErrMsg, "message %q not decoded", tx.Path)
	}
	return tx.msg, nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	return proto.Marshal(&txPB{Path: tx.Path, Msg: tx.Msg})
}

// Sign appends a signature of given key holder.
func (tx *Tx) Sign(key ed25519.PrivateKey, chainID string, seq int64) error {
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return errors.Wrap(err, "sign")
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	return proto.Marshal(&txPB{Signatures: tx.Signatures, Path: tx.Path, Msg: tx.Msg})
}

// Unmarshal loads the serialized form. The message is decoded separately,
// see Decode.
func (tx *Tx) Unmarshal(raw []byte) error {
	var pb txPB
	if err := proto.Unmarshal(raw, &pb); err != nil {
		return err
	}
	*tx = Tx{Signatures: pb.Signatures, Path: pb.Path, Msg: pb.Msg}
	return nil
}

// txPB is the wire form of Tx.
type txPB struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	Path       string               `protobuf:"bytes,2,opt,name=path,proto3" json:"path,omitempty"`
	Msg        []byte               `protobuf:"bytes,3,opt,name=msg,proto3" json:"msg,omitempty"`
}

func (tx *txPB) Reset()         { *tx = txPB{} }
func (tx *txPB) String() string { return proto.CompactTextString(tx) }
func (*txPB) ProtoMessage()     {}

// TxDecoder returns a decoder of transactions carrying messages registered
// with given router.
func TxDecoder(r *Router) pairswap.TxDecoder {
	return func(raw []byte) (pairswap.Tx, error) {
		var tx Tx
		if err := tx.Unmarshal(raw); err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		msg, err := r.NewMsg(tx.Path)
		if err != nil {
			return nil, err
		}
		if err := msg.Unmarshal(tx.Msg); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "message %s: %s", tx.Path, err)
		}
		tx.msg = msg
		return &tx, nil
	}
}
