package token

import (
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
)

const optKey = "token"

// GenesisAccount is used to parse the json from genesis file. Addresses are
// base58 encoded.
type GenesisAccount struct {
	Address pairswap.Address `json:"address"`
	Mint    pairswap.Address `json:"mint"`
	Owner   pairswap.Address `json:"owner"`
	Amount  uint64           `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ pairswap.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts pairswap.Options, kv pairswap.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController()
	for i, a := range accts {
		if err := ctrl.Open(kv, a.Address, a.Mint, a.Owner); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if a.Amount == 0 {
			continue
		}
		if err := ctrl.Mint(kv, a.Address, a.Amount); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
