package escrow

import (
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
)

var (
	escrowSeed = []byte("escrow")
	vaultSeed  = []byte("vault")
)

// EscrowAddress returns the address of the escrow between given parties
// and its bump. Party order matters.
func EscrowAddress(program, partyA, partyB pairswap.Address) (pairswap.Address, uint8, error) {
	return pairswap.FindAddress(program, escrowSeed, partyA[:], partyB[:])
}

// VaultAddress returns the address of the vault holding given mint for the
// escrow and its bump.
func VaultAddress(program, escrow, mint pairswap.Address) (pairswap.Address, uint8, error) {
	return pairswap.FindAddress(program, vaultSeed, escrow[:], mint[:])
}

// verifyEscrow ensures the record is stored at the address derived from its
// parties and its bump.
func verifyEscrow(program, addr pairswap.Address, e *Escrow) error {
	err := pairswap.VerifyAddress(program, addr, e.Bump, escrowSeed, e.PartyA[:], e.PartyB[:])
	return errors.Wrap(err, "escrow address")
}

// vaults returns the addresses of both vaults of the escrow, re-derived with
// the stored bumps.
func vaults(program, addr pairswap.Address, e *Escrow) (a, b pairswap.Address, err error) {
	a, err = vaultAt(program, addr, e, RoleA)
	if err != nil {
		return a, b, err
	}
	b, err = vaultAt(program, addr, e, RoleB)
	return a, b, err
}

func vaultAt(program, addr pairswap.Address, e *Escrow, r Role) (pairswap.Address, error) {
	mint := e.Asset(r)
	seeds := [][]byte{vaultSeed, addr[:], mint[:], {e.VaultBump(r)}}
	v, err := pairswap.CreateAddress(program, seeds...)
	if err != nil {
		return v, errors.Wrapf(err, "vault %s", r)
	}
	return v, nil
}
