package escrow

import (
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/orm"
)

const recordName = "Escrow"

// RecordSize is the length of a stored escrow record: the discriminator,
// four addresses, two amounts, the deadline, two flags and three bumps.
const RecordSize = orm.DiscriminatorLength + 4*pairswap.AddressLength + 3*8 + 2 + 3

// Role is the position of a party in the escrow.
type Role uint8

const (
	RoleA Role = iota
	RoleB
)

func (r Role) String() string {
	switch r {
	case RoleA:
		return "A"
	case RoleB:
		return "B"
	default:
		return "unknown"
	}
}

// Escrow holds the terms of an exchange between two parties and the
// progress of their deposits.
//
// Terms are fixed at creation. Deposited flags only ever change from false
// to true.
type Escrow struct {
	PartyA     pairswap.Address
	PartyB     pairswap.Address
	AssetA     pairswap.Address
	AssetB     pairswap.Address
	AmountA    uint64
	AmountB    uint64
	Deadline   pairswap.UnixTime
	ADeposited bool
	BDeposited bool
	Bump       uint8
	VaultABump uint8
	VaultBBump uint8
}

var _ orm.Model = (*Escrow)(nil)

// record is the stored layout of an escrow. Field order defines the
// layout and must not change.
type record struct {
	PartyA     pairswap.Address
	PartyB     pairswap.Address
	AssetA     pairswap.Address
	AssetB     pairswap.Address
	AmountA    uint64
	AmountB    uint64
	Deadline   int64
	ADeposited uint8
	BDeposited uint8
	Bump       uint8
	VaultABump uint8
	VaultBBump uint8
}

// Marshal serializes the escrow using its fixed layout.
func (e *Escrow) Marshal() ([]byte, error) {
	return orm.EncodeAccount(recordName, record{
		PartyA:     e.PartyA,
		PartyB:     e.PartyB,
		AssetA:     e.AssetA,
		AssetB:     e.AssetB,
		AmountA:    e.AmountA,
		AmountB:    e.AmountB,
		Deadline:   int64(e.Deadline),
		ADeposited: flag(e.ADeposited),
		BDeposited: flag(e.BDeposited),
		Bump:       e.Bump,
		VaultABump: e.VaultABump,
		VaultBBump: e.VaultBBump,
	})
}

// Unmarshal loads the escrow from its fixed layout.
func (e *Escrow) Unmarshal(raw []byte) error {
	if len(raw) != RecordSize {
		return errors.Wrapf(errors.ErrModel, "escrow record of %d bytes", len(raw))
	}
	var r record
	if err := orm.DecodeAccount(recordName, raw, &r); err != nil {
		return err
	}
	a, err := unflag(r.ADeposited)
	if err != nil {
		return errors.Wrap(err, "a deposited")
	}
	b, err := unflag(r.BDeposited)
	if err != nil {
		return errors.Wrap(err, "b deposited")
	}
	*e = Escrow{
		PartyA:     r.PartyA,
		PartyB:     r.PartyB,
		AssetA:     r.AssetA,
		AssetB:     r.AssetB,
		AmountA:    r.AmountA,
		AmountB:    r.AmountB,
		Deadline:   pairswap.UnixTime(r.Deadline),
		ADeposited: a,
		BDeposited: b,
		Bump:       r.Bump,
		VaultABump: r.VaultABump,
		VaultBBump: r.VaultBBump,
	}
	return nil
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func unflag(v uint8) (bool, error) {
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Wrapf(errors.ErrModel, "invalid bool %d", v)
	}
}

// Validate ensures the escrow terms are sane.
func (e *Escrow) Validate() error {
	if err := pairswap.ValidateAddress(e.PartyA); err != nil {
		return errors.Wrap(err, "party a")
	}
	if err := pairswap.ValidateAddress(e.PartyB); err != nil {
		return errors.Wrap(err, "party b")
	}
	if e.PartyA.Equals(e.PartyB) {
		return errors.Wrap(ErrSameParty, "escrow")
	}
	if err := pairswap.ValidateAddress(e.AssetA); err != nil {
		return errors.Wrap(err, "asset a")
	}
	if err := pairswap.ValidateAddress(e.AssetB); err != nil {
		return errors.Wrap(err, "asset b")
	}
	if e.AssetA.Equals(e.AssetB) {
		return errors.Wrap(ErrSameAsset, "escrow")
	}
	if e.AmountA == 0 || e.AmountB == 0 {
		return errors.Wrapf(ErrAmountMustBePositive, "amounts %d and %d", e.AmountA, e.AmountB)
	}
	if err := e.Deadline.Validate(); err != nil {
		return errors.Wrap(err, "deadline")
	}
	if e.Deadline.IsZero() {
		return errors.Wrap(errors.ErrEmpty, "deadline")
	}
	return nil
}

// IsFunded returns true once both parties deposited.
func (e *Escrow) IsFunded() bool {
	return e.ADeposited && e.BDeposited
}

// RoleOf returns the role of given party. False is returned if the address
// is not a party of this escrow.
func (e *Escrow) RoleOf(addr pairswap.Address) (Role, bool) {
	switch {
	case addr.Equals(e.PartyA):
		return RoleA, true
	case addr.Equals(e.PartyB):
		return RoleB, true
	default:
		return 0, false
	}
}

// Party returns the address of the party acting in given role.
func (e *Escrow) Party(r Role) pairswap.Address {
	if r == RoleA {
		return e.PartyA
	}
	return e.PartyB
}

// Asset returns the mint that given role deposits.
func (e *Escrow) Asset(r Role) pairswap.Address {
	if r == RoleA {
		return e.AssetA
	}
	return e.AssetB
}

// Amount returns the quantity that given role deposits.
func (e *Escrow) Amount(r Role) uint64 {
	if r == RoleA {
		return e.AmountA
	}
	return e.AmountB
}

// Deposited returns true if given role already deposited.
func (e *Escrow) Deposited(r Role) bool {
	if r == RoleA {
		return e.ADeposited
	}
	return e.BDeposited
}

// VaultBump returns the bump of the vault of given role.
func (e *Escrow) VaultBump(r Role) uint8 {
	if r == RoleA {
		return e.VaultABump
	}
	return e.VaultBBump
}

func (e *Escrow) markDeposited(r Role) {
	if r == RoleA {
		e.ADeposited = true
	} else {
		e.BDeposited = true
	}
}

// NewBucket returns a bucket for escrow records, keyed by the escrow
// address and indexed by both parties.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("escrows", &Escrow{},
		orm.WithIndex("party", partyIndex))
}

func partyIndex(m orm.Model) ([][]byte, error) {
	e, ok := m.(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return [][]byte{e.PartyA[:], e.PartyB[:]}, nil
}
