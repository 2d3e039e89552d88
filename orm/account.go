package orm

import (
	"bytes"
	"crypto/sha256"

	"github.com/iov-one/pairswap/errors"
	"github.com/near/borsh-go"
)

// DiscriminatorLength is the length of the tag that prefixes every stored
// account layout.
const DiscriminatorLength = 8

// Discriminator returns the layout tag of an account type with given name.
// It is the first 8 bytes of sha256("account:<name>").
func Discriminator(name string) [DiscriminatorLength]byte {
	sum := sha256.Sum256([]byte("account:" + name))
	var d [DiscriminatorLength]byte
	copy(d[:], sum[:DiscriminatorLength])
	return d
}

// EncodeAccount serializes given layout with borsh, prefixed by the
// discriminator of the named account type. Layout fields are written in
// declaration order, integers are little endian and fixed width.
func EncodeAccount(name string, layout interface{}) ([]byte, error) {
	raw, err := borsh.Serialize(layout)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot encode %s: %s", name, err)
	}
	d := Discriminator(name)
	return append(d[:], raw...), nil
}

// DecodeAccount loads the layout of the named account type from raw. The
// discriminator must match.
func DecodeAccount(name string, raw []byte, layout interface{}) error {
	d := Discriminator(name)
	if len(raw) < DiscriminatorLength || !bytes.Equal(raw[:DiscriminatorLength], d[:]) {
		return errors.Wrapf(errors.ErrType, "not a %s account", name)
	}
	if err := borsh.Deserialize(layout, raw[DiscriminatorLength:]); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot decode %s: %s", name, err)
	}
	return nil
}
