package token

import (
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/orm"
)

const accountName = "TokenAccount"

// AccountSize is the length of a stored token account.
const AccountSize = orm.DiscriminatorLength + 2*pairswap.AddressLength + 8

// Account holds a balance of a single mint.
type Account struct {
	Mint   pairswap.Address
	Owner  pairswap.Address
	Amount uint64
}

var _ orm.Model = (*Account)(nil)

// Validate ensures the account is valid.
func (a *Account) Validate() error {
	if err := pairswap.ValidateAddress(a.Mint); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := pairswap.ValidateAddress(a.Owner); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

// Marshal serializes the account using the fixed account layout.
func (a *Account) Marshal() ([]byte, error) {
	return orm.EncodeAccount(accountName, *a)
}

// Unmarshal loads the account from its fixed layout.
func (a *Account) Unmarshal(raw []byte) error {
	var acc Account
	if err := orm.DecodeAccount(accountName, raw, &acc); err != nil {
		return err
	}
	*a = acc
	return nil
}

// NewBucket returns a bucket for token accounts, keyed by address and
// indexed by the owner.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokens", &Account{},
		orm.WithIndex("owner", ownerIndex))
}

func ownerIndex(m orm.Model) ([][]byte, error) {
	a, ok := m.(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return [][]byte{a.Owner[:]}, nil
}
