package pairswap

import (
	"github.com/gagliardetto/solana-go"
	"golang.org/x/crypto/ed25519"
	"github.com/iov-one/pairswap/errors"
	"github.com/mr-tron/base58"
)

// Address identifies an account on the ledger. It is either the public key
// of a party or an address derived from a program and a list of seeds.
//
// A derived address is not a valid ed25519 public key, so there is no
// private key able to sign for it. Only the program logic can act on behalf
// of a derived address.
type Address = solana.PublicKey

// AddressLength is the length of all addresses.
const AddressLength = solana.PublicKeyLength

// MaxSeedLength is the maximum length of a single derivation seed.
const MaxSeedLength = solana.MaxSeedLength

// FindAddress returns the address derived from given seeds and the bump
// value that must be appended to the seeds to produce it.
//
// The bump search is deterministic: the same program and seeds always
// produce the same address and bump. Store the bump so that the address can
// later be verified with VerifyAddress without searching again.
func FindAddress(program Address, seeds ...[]byte) (Address, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, program)
	if err != nil {
		return Address{}, 0, errors.Wrapf(errors.ErrInput, "cannot derive address: %s", err)
	}
	return addr, bump, nil
}

// CreateAddress returns the address derived from the program and seeds. The
// last seed is usually the bump returned by FindAddress.
func CreateAddress(program Address, seeds ...[]byte) (Address, error) {
	addr, err := solana.CreateProgramAddress(seeds, program)
	if err != nil {
		return Address{}, errors.Wrapf(errors.ErrInput, "cannot derive address: %s", err)
	}
	return addr, nil
}

// VerifyAddress returns an error if given address is not the one derived
// from the program, seeds and the bump.
func VerifyAddress(program, addr Address, bump uint8, seeds ...[]byte) error {
	all := make([][]byte, 0, len(seeds)+1)
	all = append(all, seeds...)
	all = append(all, []byte{bump})
	derived, err := CreateAddress(program, all...)
	if err != nil {
		return errors.Wrapf(err, "bump %d", bump)
	}
	if !derived.Equals(addr) {
		return errors.Wrapf(errors.ErrInput, "want address %s, got %s", derived, addr)
	}
	return nil
}

// PublicKeyAddress returns the address of the holder of given key. A party
// address is its public key.
func PublicKeyAddress(pub ed25519.PublicKey) Address {
	var a Address
	copy(a[:], pub)
	return a
}

// ParseAddress decodes a base58 encoded address.
func ParseAddress(enc string) (Address, error) {
	raw, err := base58.Decode(enc)
	if err != nil {
		return Address{}, errors.Wrapf(errors.ErrInput, "malformed address %q", enc)
	}
	return AddressFromBytes(raw)
}

// AddressFromBytes returns the address represented by given bytes, as
// carried by messages.
func AddressFromBytes(raw []byte) (Address, error) {
	if len(raw) != AddressLength {
		return Address{}, errors.Wrapf(errors.ErrInput, "invalid address length %d", len(raw))
	}
	var a Address
	copy(a[:], raw)
	return a, nil
}

// ValidateAddress returns an error if the address is not set.
func ValidateAddress(a Address) error {
	if a.IsZero() {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	return nil
}
