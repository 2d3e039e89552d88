package commands

import (
	"fmt"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/x/escrow"
	"github.com/spf13/cobra"
)

const flagProgram = "program"

// AddressCmd prints the address of the escrow between two parties and of
// its vaults.
func AddressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address <party a> <party b> [<asset a> <asset b>]",
		Short: "Derive the address of an escrow and its vaults",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 3 {
				return errors.Wrap(errors.ErrInput, "both assets are required to derive vaults")
			}
			program, err := parseAddress(cmd.Flags().GetString(flagProgram))
			if err != nil {
				return errors.Wrap(err, "program")
			}
			addrs := make([]pairswap.Address, len(args))
			for i, a := range args {
				if addrs[i], err = pairswap.ParseAddress(a); err != nil {
					return errors.Wrapf(err, "argument %d", i+1)
				}
			}

			out := cmd.OutOrStdout()
			addr, bump, err := escrow.EscrowAddress(program, addrs[0], addrs[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "escrow\t%s\t%d\n", addr, bump)
			for i, mint := range addrs[2:] {
				vault, bump, err := escrow.VaultAddress(program, addr, mint)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "vault_%c\t%s\t%d\n", 'a'+i, vault, bump)
			}
			return nil
		},
	}
	cmd.Flags().String(flagProgram, escrow.DefaultProgramID.String(), "program the addresses are derived under")
	return cmd
}

func parseAddress(s string, err error) (pairswap.Address, error) {
	if err != nil {
		return pairswap.Address{}, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return pairswap.ParseAddress(s)
}
