package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd returns the pairswap command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pairswap",
		Short:         "Two party escrow ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String(flagConfig, "", "config file, any format supported by viper")
	root.PersistentFlags().String(flagLogLevel, "info", "minimal level of logged entries: debug, info, error or none")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return bindConfig(cmd)
	}

	root.AddCommand(
		KeygenCmd(),
		AddressCmd(),
		ValidateCmd(),
		RunCmd(),
	)
	return root
}
