package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
)

const (
	pathCreateMsg  = "escrow/create"
	pathDepositMsg = "escrow/deposit"
)

// CreateMsg creates an escrow between the signer (party A) and party B.
type CreateMsg struct {
	// PartyA is the initiator. If not set, the main signer is used.
	PartyA   []byte `protobuf:"bytes,1,opt,name=party_a,json=partyA,proto3" json:"party_a,omitempty"`
	PartyB   []byte `protobuf:"bytes,2,opt,name=party_b,json=partyB,proto3" json:"party_b,omitempty"`
	AssetA   []byte `protobuf:"bytes,3,opt,name=asset_a,json=assetA,proto3" json:"asset_a,omitempty"`
	AssetB   []byte `protobuf:"bytes,4,opt,name=asset_b,json=assetB,proto3" json:"asset_b,omitempty"`
	AmountA  uint64 `protobuf:"varint,5,opt,name=amount_a,json=amountA,proto3" json:"amount_a,omitempty"`
	AmountB  uint64 `protobuf:"varint,6,opt,name=amount_b,json=amountB,proto3" json:"amount_b,omitempty"`
	Deadline int64  `protobuf:"varint,7,opt,name=deadline,proto3" json:"deadline,omitempty"`
}

var _ pairswap.Msg = (*CreateMsg)(nil)

// Path fulfills pairswap.Msg interface to allow routing
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate ensures all addresses are well formed. Deal terms are validated
// by the controller.
func (m *CreateMsg) Validate() error {
	if len(m.PartyA) != 0 {
		if _, err := pairswap.AddressFromBytes(m.PartyA); err != nil {
			return errors.Wrap(err, "party a")
		}
	}
	if _, err := pairswap.AddressFromBytes(m.PartyB); err != nil {
		return errors.Wrap(err, "party b")
	}
	if _, err := pairswap.AddressFromBytes(m.AssetA); err != nil {
		return errors.Wrap(err, "asset a")
	}
	if _, err := pairswap.AddressFromBytes(m.AssetB); err != nil {
		return errors.Wrap(err, "asset b")
	}
	if err := pairswap.UnixTime(m.Deadline).Validate(); err != nil {
		return errors.Wrap(err, "deadline")
	}
	return nil
}

// Terms returns the terms of the escrow with given initiator.
func (m *CreateMsg) Terms(partyA pairswap.Address) Terms {
	t := Terms{
		PartyA:   partyA,
		AmountA:  m.AmountA,
		AmountB:  m.AmountB,
		Deadline: pairswap.UnixTime(m.Deadline),
	}
	copy(t.PartyB[:], m.PartyB)
	copy(t.AssetA[:], m.AssetA)
	copy(t.AssetB[:], m.AssetB)
	return t
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createMsgPB)(m))
}

func (m *CreateMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createMsgPB)(m))
}

type createMsgPB CreateMsg

func (m *createMsgPB) Reset()         { *m = createMsgPB{} }
func (m *createMsgPB) String() string { return proto.CompactTextString(m) }
func (*createMsgPB) ProtoMessage()    {}

// DepositMsg funds the side of an escrow that belongs to the depositor.
type DepositMsg struct {
	// Depositor is the calling party. If not set, the main signer is
	// used.
	Depositor []byte `protobuf:"bytes,1,opt,name=depositor,proto3" json:"depositor,omitempty"`
	Amount    uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
	Escrow    []byte `protobuf:"bytes,3,opt,name=escrow,proto3" json:"escrow,omitempty"`
	// Source is the token account of the depositor.
	Source []byte `protobuf:"bytes,4,opt,name=source,proto3" json:"source,omitempty"`
	VaultA []byte `protobuf:"bytes,5,opt,name=vault_a,json=vaultA,proto3" json:"vault_a,omitempty"`
	VaultB []byte `protobuf:"bytes,6,opt,name=vault_b,json=vaultB,proto3" json:"vault_b,omitempty"`
}

var _ pairswap.Msg = (*DepositMsg)(nil)

// Path fulfills pairswap.Msg interface to allow routing
func (DepositMsg) Path() string {
	return pathDepositMsg
}

// Validate ensures all addresses are well formed.
func (m *DepositMsg) Validate() error {
	if len(m.Depositor) != 0 {
		if _, err := pairswap.AddressFromBytes(m.Depositor); err != nil {
			return errors.Wrap(err, "depositor")
		}
	}
	if _, err := pairswap.AddressFromBytes(m.Escrow); err != nil {
		return errors.Wrap(err, "escrow")
	}
	if _, err := pairswap.AddressFromBytes(m.Source); err != nil {
		return errors.Wrap(err, "source")
	}
	if _, err := pairswap.AddressFromBytes(m.VaultA); err != nil {
		return errors.Wrap(err, "vault a")
	}
	if _, err := pairswap.AddressFromBytes(m.VaultB); err != nil {
		return errors.Wrap(err, "vault b")
	}
	return nil
}

// Deposit returns the deposit request of given caller.
func (m *DepositMsg) Deposit(caller pairswap.Address) Deposit {
	d := Deposit{
		Caller: caller,
		Amount: m.Amount,
	}
	copy(d.Escrow[:], m.Escrow)
	copy(d.Source[:], m.Source)
	copy(d.VaultA[:], m.VaultA)
	copy(d.VaultB[:], m.VaultB)
	return d
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*depositMsgPB)(m))
}

func (m *DepositMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*depositMsgPB)(m))
}

type depositMsgPB DepositMsg

func (m *depositMsgPB) Reset()         { *m = depositMsgPB{} }
func (m *depositMsgPB) String() string { return proto.CompactTextString(m) }
func (*depositMsgPB) ProtoMessage()    {}
