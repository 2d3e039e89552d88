package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pairswap/errors"
	"golang.org/x/crypto/ed25519"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the Decorator
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the
	// transaction without its signatures.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signatures of signers who signed the
	// transaction.
	GetSignatures() []*StdSignature
}

// StdSignature is an ed25519 signature of a transaction together with the
// public key of the signer and the sequence it was made for.
type StdSignature struct {
	Sequence  int64  `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	PubKey    []byte `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature []byte `protobuf:"bytes,3,opt,name=signature,proto3" json:"signature,omitempty"`
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if len(s.PubKey) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if len(s.PubKey) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrUnauthorized, "public key of %d bytes", len(s.PubKey))
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

func (s *StdSignature) Marshal() ([]byte, error) {
	return proto.Marshal((*stdSignaturePB)(s))
}

func (s *StdSignature) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*stdSignaturePB)(s))
}

type stdSignaturePB StdSignature

func (s *stdSignaturePB) Reset()         { *s = stdSignaturePB{} }
func (s *stdSignaturePB) String() string { return proto.CompactTextString(s) }
func (*stdSignaturePB) ProtoMessage()    {}

// Reset, String and ProtoMessage let a StdSignature be embedded as a
// repeated field of a transaction message.
func (s *StdSignature) Reset()         { *s = StdSignature{} }
func (s *StdSignature) String() string { return proto.CompactTextString((*stdSignaturePB)(s)) }
func (*StdSignature) ProtoMessage()    {}
