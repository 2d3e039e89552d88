package escrow

import (
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/orm"
	"github.com/iov-one/pairswap/x/token"
	"github.com/iov-one/pairswap/x/utils"
)

// Terms are the conditions of an exchange, fixed at the escrow creation.
type Terms struct {
	PartyA   pairswap.Address
	PartyB   pairswap.Address
	AssetA   pairswap.Address
	AssetB   pairswap.Address
	AmountA  uint64
	AmountB  uint64
	Deadline pairswap.UnixTime
}

// Deposit is a request of a party to fund its side of an escrow.
type Deposit struct {
	// Caller is the authenticated party depositing.
	Caller pairswap.Address
	Amount uint64
	// Escrow is the address of the escrow record.
	Escrow pairswap.Address
	// Source is the token account of the caller that is debited.
	Source pairswap.Address
	// VaultA and VaultB must be the vaults of the escrow.
	VaultA pairswap.Address
	VaultB pairswap.Address
}

// Controller implements the escrow state machine.
type Controller interface {
	// Create validates the terms and allocates the escrow record and both
	// vaults. The current time is taken from the context. Nothing is
	// written unless all allocations succeed.
	Create(ctx pairswap.Context, db pairswap.KVStore, t Terms) (pairswap.Address, *Escrow, error)

	// Deposit moves the agreed amount of the caller's asset into the
	// vault of the caller's role and marks the role as deposited. The
	// operation is all or nothing.
	Deposit(ctx pairswap.Context, db pairswap.KVStore, d Deposit) (Role, error)

	// Get returns the escrow between given parties and its address.
	Get(db pairswap.ReadOnlyKVStore, partyA, partyB pairswap.Address) (pairswap.Address, *Escrow, error)

	// Load returns the escrow stored under given address.
	Load(db pairswap.ReadOnlyKVStore, addr pairswap.Address) (*Escrow, error)

	// Vaults returns the addresses of both vaults of the escrow stored
	// under given address.
	Vaults(db pairswap.ReadOnlyKVStore, addr pairswap.Address) (a, b pairswap.Address, err error)

	// ByParty returns addresses of all escrows that given address takes
	// part in, in either role.
	ByParty(db pairswap.ReadOnlyKVStore, party pairswap.Address) ([]pairswap.Address, error)
}

// NewController returns a controller that moves tokens using given token
// controller.
func NewController(tokens token.Controller) Controller {
	return controller{
		bucket: NewBucket(),
		tokens: tokens,
	}
}

type controller struct {
	bucket orm.ModelBucket
	tokens token.Controller
}

var _ Controller = controller{}

func (c controller) Create(ctx pairswap.Context, db pairswap.KVStore, t Terms) (pairswap.Address, *Escrow, error) {
	var addr pairswap.Address
	conf, err := loadConf(db)
	if err != nil {
		return addr, nil, err
	}
	now, ok := pairswap.BlockUnixTime(ctx)
	if !ok {
		return addr, nil, errors.Wrap(errors.ErrHuman, "block time not present in the context")
	}

	if t.Deadline <= now+pairswap.UnixTime(conf.GracePeriod) {
		return addr, nil, errors.Wrapf(ErrInvalidDeadline,
			"deadline %d must be after %d", t.Deadline, now+pairswap.UnixTime(conf.GracePeriod))
	}
	if t.AmountA == 0 || t.AmountB == 0 {
		return addr, nil, errors.Wrapf(ErrAmountMustBePositive, "amounts %d and %d", t.AmountA, t.AmountB)
	}
	if t.PartyA.Equals(t.PartyB) {
		return addr, nil, errors.Wrapf(ErrSameParty, "%s", t.PartyA)
	}
	if t.AssetA.Equals(t.AssetB) {
		return addr, nil, errors.Wrapf(ErrSameAsset, "%s", t.AssetA)
	}

	addr, bump, err := EscrowAddress(conf.ProgramID, t.PartyA, t.PartyB)
	if err != nil {
		return addr, nil, errors.Wrap(err, "escrow address")
	}
	vaultA, vaultABump, err := VaultAddress(conf.ProgramID, addr, t.AssetA)
	if err != nil {
		return addr, nil, errors.Wrap(err, "vault a address")
	}
	vaultB, vaultBBump, err := VaultAddress(conf.ProgramID, addr, t.AssetB)
	if err != nil {
		return addr, nil, errors.Wrap(err, "vault b address")
	}

	e := &Escrow{
		PartyA:     t.PartyA,
		PartyB:     t.PartyB,
		AssetA:     t.AssetA,
		AssetB:     t.AssetB,
		AmountA:    t.AmountA,
		AmountB:    t.AmountB,
		Deadline:   t.Deadline,
		Bump:       bump,
		VaultABump: vaultABump,
		VaultBBump: vaultBBump,
	}
	err = utils.Atomic(db, func(db pairswap.KVStore) error {
		if err := c.bucket.Create(db, addr[:], e); err != nil {
			return errors.Wrap(err, "escrow")
		}
		if err := c.tokens.Open(db, vaultA, t.AssetA, addr); err != nil {
			return errors.Wrap(err, "vault a")
		}
		if err := c.tokens.Open(db, vaultB, t.AssetB, addr); err != nil {
			return errors.Wrap(err, "vault b")
		}
		return nil
	})
	if err != nil {
		return addr, nil, err
	}
	return addr, e, nil
}

func (c controller) Deposit(ctx pairswap.Context, db pairswap.KVStore, d Deposit) (Role, error) {
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	e, err := c.Load(db, d.Escrow)
	if err != nil {
		return 0, err
	}
	if err := verifyEscrow(conf.ProgramID, d.Escrow, e); err != nil {
		return 0, err
	}
	vaultA, vaultB, err := vaults(conf.ProgramID, d.Escrow, e)
	if err != nil {
		return 0, err
	}
	if !vaultA.Equals(d.VaultA) {
		return 0, errors.Wrapf(ErrVaultMismatch, "vault a is %s, got %s", vaultA, d.VaultA)
	}
	if !vaultB.Equals(d.VaultB) {
		return 0, errors.Wrapf(ErrVaultMismatch, "vault b is %s, got %s", vaultB, d.VaultB)
	}

	role, ok := e.RoleOf(d.Caller)
	if !ok {
		return 0, errors.Wrapf(ErrUnknownCaller, "%s", d.Caller)
	}
	if e.Deposited(role) {
		return role, errors.Wrapf(ErrAlreadyDeposited, "role %s", role)
	}
	if d.Amount != e.Amount(role) {
		return role, errors.Wrapf(ErrAmountMismatch, "want %d, got %d", e.Amount(role), d.Amount)
	}
	src, err := c.tokens.Account(db, d.Source)
	if err != nil {
		return role, errors.Wrap(err, "source")
	}
	if !src.Mint.Equals(e.Asset(role)) {
		return role, errors.Wrapf(ErrWrongMint, "want %s, got %s", e.Asset(role), src.Mint)
	}
	if !src.Owner.Equals(d.Caller) {
		return role, errors.Wrapf(ErrTokenAccountAuthorityMismatch, "account owned by %s", src.Owner)
	}
	now, ok := pairswap.BlockUnixTime(ctx)
	if !ok {
		return role, errors.Wrap(errors.ErrHuman, "block time not present in the context")
	}
	// Expiration is inclusive, as with pairswap.IsExpired.
	if e.Deadline <= now {
		return role, errors.Wrapf(errors.ErrExpired, "deadline %s", e.Deadline)
	}

	vault := vaultA
	if role == RoleB {
		vault = vaultB
	}
	err = utils.Atomic(db, func(db pairswap.KVStore) error {
		if err := c.tokens.Transfer(db, d.Source, vault, d.Caller, d.Amount); err != nil {
			return errors.Wrap(err, "transfer")
		}
		e.markDeposited(role)
		if err := c.bucket.Put(db, d.Escrow[:], e); err != nil {
			return errors.Wrap(err, "save escrow")
		}
		return nil
	})
	return role, err
}

func (c controller) Get(db pairswap.ReadOnlyKVStore, partyA, partyB pairswap.Address) (pairswap.Address, *Escrow, error) {
	conf, err := loadConf(db)
	if err != nil {
		return pairswap.Address{}, nil, err
	}
	addr, _, err := EscrowAddress(conf.ProgramID, partyA, partyB)
	if err != nil {
		return addr, nil, err
	}
	e, err := c.Load(db, addr)
	return addr, e, err
}

func (c controller) Load(db pairswap.ReadOnlyKVStore, addr pairswap.Address) (*Escrow, error) {
	var e Escrow
	if err := c.bucket.One(db, addr[:], &e); err != nil {
		return nil, errors.Wrapf(err, "escrow %s", addr)
	}
	return &e, nil
}

func (c controller) Vaults(db pairswap.ReadOnlyKVStore, addr pairswap.Address) (pairswap.Address, pairswap.Address, error) {
	conf, err := loadConf(db)
	if err != nil {
		return pairswap.Address{}, pairswap.Address{}, err
	}
	e, err := c.Load(db, addr)
	if err != nil {
		return pairswap.Address{}, pairswap.Address{}, err
	}
	return vaults(conf.ProgramID, addr, e)
}

func (c controller) ByParty(db pairswap.ReadOnlyKVStore, party pairswap.Address) ([]pairswap.Address, error) {
	keys, err := c.bucket.IndexKeys(db, "party", party[:])
	if err != nil {
		return nil, err
	}
	res := make([]pairswap.Address, len(keys))
	for i, k := range keys {
		copy(res[i][:], k)
	}
	return res, nil
}
