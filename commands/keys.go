package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ed25519"
)

// KeygenCmd generates an ed25519 key and writes it in the solana-keygen
// file format: a JSON array of the 64 private key bytes.
func KeygenCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "keygen <file>",
		Short: "Generate a new key and print its address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := writeKey(args[0], force)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func writeKey(path string, force bool) (pairswap.Address, error) {
	var addr pairswap.Address
	if _, err := os.Stat(path); err == nil && !force {
		return addr, errors.Wrapf(errors.ErrDuplicate, "key file %s exists", path)
	}
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return addr, errors.Wrap(errors.ErrHuman, err.Error())
	}
	raw := make([]int, len(key))
	for i, b := range key {
		raw[i] = int(b)
	}
	content, err := json.Marshal(raw)
	if err != nil {
		return addr, errors.Wrap(errors.ErrHuman, err.Error())
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		return addr, errors.Wrapf(errors.ErrInput, "write %s: %s", path, err)
	}
	return key.PublicKey(), nil
}

// readKey loads a private key written by keygen or solana-keygen.
func readKey(path string) (ed25519.PrivateKey, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "key file %s: %s", path, err)
	}
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "key file %s: key of %d bytes", path, len(key))
	}
	return ed25519.PrivateKey(key), nil
}
