package token

import (
	"math"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/orm"
)

// Transferer moves tokens between accounts.
type Transferer interface {
	// Transfer moves amount of tokens from src to dst. Authority must be
	// the owner of src.
	Transfer(db pairswap.KVStore, src, dst, authority pairswap.Address, amount uint64) error
}

// Controller is the functionality needed by extensions that operate on
// token accounts.
type Controller interface {
	Transferer

	// Open allocates an empty account at given address. ErrDuplicate is
	// returned if the address is already in use.
	Open(db pairswap.KVStore, addr, mint, owner pairswap.Address) error

	// Mint creates new tokens in given account.
	Mint(db pairswap.KVStore, addr pairswap.Address, amount uint64) error

	// Account returns the account stored under given address.
	Account(db pairswap.ReadOnlyKVStore, addr pairswap.Address) (*Account, error)

	// OwnedBy returns addresses of all accounts of given owner.
	OwnedBy(db pairswap.ReadOnlyKVStore, owner pairswap.Address) ([]pairswap.Address, error)
}

// NewController returns a controller using the default account bucket.
func NewController() Controller {
	return controller{bucket: NewBucket()}
}

type controller struct {
	bucket orm.ModelBucket
}

var _ Controller = controller{}

func (c controller) Open(db pairswap.KVStore, addr, mint, owner pairswap.Address) error {
	if err := pairswap.ValidateAddress(addr); err != nil {
		return errors.Wrap(err, "account address")
	}
	acc := &Account{Mint: mint, Owner: owner}
	if err := c.bucket.Create(db, addr[:], acc); err != nil {
		return errors.Wrapf(err, "open account %s", addr)
	}
	return nil
}

func (c controller) Account(db pairswap.ReadOnlyKVStore, addr pairswap.Address) (*Account, error) {
	var acc Account
	if err := c.bucket.One(db, addr[:], &acc); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &acc, nil
}

func (c controller) Mint(db pairswap.KVStore, addr pairswap.Address, amount uint64) error {
	acc, err := c.Account(db, addr)
	if err != nil {
		return err
	}
	if amount > math.MaxUint64-acc.Amount {
		return errors.Wrapf(errors.ErrOverflow, "mint %d into %s", amount, addr)
	}
	acc.Amount += amount
	return c.bucket.Put(db, addr[:], acc)
}

func (c controller) Transfer(db pairswap.KVStore, src, dst, authority pairswap.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "transfer amount must be positive")
	}
	from, err := c.Account(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	to, err := c.Account(db, dst)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !from.Mint.Equals(to.Mint) {
		return errors.Wrapf(ErrMintMismatch, "source %s, destination %s", from.Mint, to.Mint)
	}
	if !from.Owner.Equals(authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the owner of %s", authority, src)
	}
	if from.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, want %d", from.Amount, amount)
	}
	if src.Equals(dst) {
		return nil
	}
	if amount > math.MaxUint64-to.Amount {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}

	from.Amount -= amount
	to.Amount += amount
	if err := c.bucket.Put(db, src[:], from); err != nil {
		return errors.Wrap(err, "save source")
	}
	if err := c.bucket.Put(db, dst[:], to); err != nil {
		return errors.Wrap(err, "save destination")
	}
	return nil
}

func (c controller) OwnedBy(db pairswap.ReadOnlyKVStore, owner pairswap.Address) ([]pairswap.Address, error) {
	keys, err := c.bucket.IndexKeys(db, "owner", owner[:])
	if err != nil {
		return nil, err
	}
	res := make([]pairswap.Address, len(keys))
	for i, k := range keys {
		copy(res[i][:], k)
	}
	return res, nil
}
