package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/iov-one/pairswap/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

// EnvPrefix is prepended to the flag name to form the environment variable
// that sets it, for example PAIRSWAP_LOG_LEVEL.
const EnvPrefix = "PAIRSWAP"

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
)

// bindConfig applies values from the config file and the environment to
// all flags of the command that were not set on the command line.
//
// Precedence is: command line, environment, config file, flag default.
func bindConfig(cmd *cobra.Command) error {
	v := viper.New()
	if path, _ := cmd.Flags().GetString(flagConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(errors.ErrInput, "config file %s: %s", path, err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || f.Name == flagConfig {
			return
		}
		if !v.IsSet(f.Name) {
			return
		}
		if e := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); e != nil {
			err = errors.Wrapf(errors.ErrInput, "flag %s: %s", f.Name, e)
		}
	})
	return err
}

// newLogger returns a tendermint logger writing to w that only lets through
// entries of given level or above.
func newLogger(w io.Writer, level string) (log.Logger, error) {
	allowed, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(w)), allowed), nil
}
