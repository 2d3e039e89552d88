package escrow

import (
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ pairswap.Initializer = Initializer{}

// FromGenesis saves the configuration of the escrow extension. Without a
// configuration in the genesis, defaults are saved.
func (Initializer) FromGenesis(opts pairswap.Options, db pairswap.KVStore) error {
	conf := DefaultConfiguration()
	err := gconf.InitConfig(db, opts, pkgName, &conf)
	if errors.ErrNotFound.Is(err) {
		return gconf.Save(db, pkgName, &conf)
	}
	return err
}
