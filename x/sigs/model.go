package sigs

import (
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

const userLayout = "UserData"

// maxSequenceValue is limited by the client. The greatest supported
// nonce value at client side is
//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
const maxSequenceValue = (1 << 53) - 1

// UserData keeps the replay protection counter of a signer.
type UserData struct {
	PubKey   pairswap.Address
	Sequence int64
}

var _ orm.Model = (*UserData)(nil)

type userRecord struct {
	PubKey   [pairswap.AddressLength]byte
	Sequence int64
}

func (u *UserData) Marshal() ([]byte, error) {
	return orm.EncodeAccount(userLayout, userRecord{PubKey: u.PubKey, Sequence: u.Sequence})
}

func (u *UserData) Unmarshal(raw []byte) error {
	var r userRecord
	if err := orm.DecodeAccount(userLayout, raw, &r); err != nil {
		return err
	}
	*u = UserData{PubKey: r.PubKey, Sequence: r.Sequence}
	return nil
}

func (u *UserData) Validate() error {
	if err := pairswap.ValidateAddress(u.PubKey); err != nil {
		return errors.Wrap(err, "pubkey")
	}
	if u.Sequence < 0 || u.Sequence > maxSequenceValue {
		return errors.Wrapf(ErrInvalidSequence, "%d", u.Sequence)
	}
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", u.Sequence, expected)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// NewBucket creates the proper bucket for this extension
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}

// loadUser returns the stored user or a fresh one, if the key never signed
// before.
func loadUser(db pairswap.ReadOnlyKVStore, b orm.ModelBucket, key pairswap.Address) (*UserData, error) {
	var u UserData
	switch err := b.One(db, key[:], &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{PubKey: key}, nil
	default:
		return nil, errors.Wrap(err, "load user")
	}
}
