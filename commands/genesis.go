package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/app"
	"github.com/iov-one/pairswap/errors"
	"github.com/spf13/cobra"
)

// Genesis file format.
type Genesis struct {
	ChainID string `json:"chain_id"`
	// GenesisTime is the initial time of the ledger clock.
	GenesisTime pairswap.UnixTime `json:"genesis_time"`
	AppState    pairswap.Options  `json:"app_state"`
}

// loadGenesis tries to load a given file into a Genesis struct
func loadGenesis(path string) (*Genesis, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot read genesis file: %s", err)
	}
	var g Genesis
	if err := json.Unmarshal(b, &g); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot JSON deserialize genesis: %s", err)
	}
	if g.GenesisTime.IsZero() {
		return nil, errors.Wrap(errors.ErrEmpty, "genesis time")
	}
	return &g, nil
}

// newLedger initializes a ledger from given genesis file.
func newLedger(path string, opts ...app.Option) (*app.Ledger, *Genesis, error) {
	g, err := loadGenesis(path)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]app.Option{app.WithBlockTime(g.GenesisTime.Time())}, opts...)
	l, err := app.NewLedger(g.ChainID, g.AppState, opts...)
	if err != nil {
		return nil, nil, err
	}
	return l, g, nil
}

// ValidateCmd ensures that genesis files can initialize a ledger.
func ValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <genesis>...",
		Short: "Validate genesis files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if _, _, err := newLedger(path); err != nil {
					return errors.Wrap(err, path)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			return nil
		},
	}
}
