package escrow

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/gconf"
	"github.com/near/borsh-go"
)

const pkgName = "escrow"

const (
	// DefaultGracePeriod is the minimal time in seconds between the
	// creation of an escrow and its deadline.
	DefaultGracePeriod = 600
)

// DefaultProgramID is the program all escrow and vault addresses are
// derived under, unless configured otherwise.
var DefaultProgramID = solana.MustPublicKeyFromBase58("AsUjRV671ni3WY4NeppvNNMqTHCof8pP5rkTb3ytXvTV")

// Configuration of the escrow extension, saved in the store by gconf.
type Configuration struct {
	// GracePeriod in seconds. A deadline must be further in the future
	// than this when the escrow is created.
	GracePeriod int64 `json:"grace_period"`
	// ProgramID is used to derive escrow and vault addresses.
	ProgramID pairswap.Address `json:"program_id"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration is used when no configuration was saved.
func DefaultConfiguration() Configuration {
	return Configuration{
		GracePeriod: DefaultGracePeriod,
		ProgramID:   DefaultProgramID,
	}
}

func (c *Configuration) Validate() error {
	if c.GracePeriod < 0 {
		return errors.Wrap(errors.ErrInput, "grace period must not be negative")
	}
	if err := pairswap.ValidateAddress(c.ProgramID); err != nil {
		return errors.Wrap(err, "program id")
	}
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	return borsh.Serialize(*c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	var conf Configuration
	if err := borsh.Deserialize(&conf, raw); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	*c = conf
	return nil
}

// loadConf returns the saved configuration or the default one if none was
// saved.
func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, pkgName, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return conf, errors.Wrap(err, "load configuration")
	}
}
