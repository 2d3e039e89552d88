package commands

import (
	"encoding/json"
	"os"
	"time"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/app"
	"github.com/iov-one/pairswap/errors"
	"github.com/iov-one/pairswap/x/escrow"
	"github.com/iov-one/pairswap/x/token"
	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ed25519"
)

const (
	flagGenesis  = "genesis"
	flagFailFast = "fail-fast"
)

// Script is a list of operations executed one after another.
type Script struct {
	Steps []Step `json:"steps"`
}

// Step is a single operation of a script. Exactly one of the operations
// must be set. Operations other than Advance are signed with the key read
// from the Key file.
type Step struct {
	Key string `json:"key,omitempty"`
	// Advance moves the ledger clock by given number of seconds.
	Advance  int64         `json:"advance,omitempty"`
	Create   *CreateStep   `json:"create,omitempty"`
	Deposit  *DepositStep  `json:"deposit,omitempty"`
	Transfer *TransferStep `json:"transfer,omitempty"`
}

// CreateStep creates an escrow between the signer and PartyB.
type CreateStep struct {
	PartyB   pairswap.Address  `json:"party_b"`
	AssetA   pairswap.Address  `json:"asset_a"`
	AssetB   pairswap.Address  `json:"asset_b"`
	AmountA  uint64            `json:"amount_a"`
	AmountB  uint64            `json:"amount_b"`
	Deadline pairswap.UnixTime `json:"deadline"`
}

// DepositStep funds the side of the signer. The escrow is given either by
// its address or by its parties.
type DepositStep struct {
	Escrow *pairswap.Address `json:"escrow,omitempty"`
	PartyA *pairswap.Address `json:"party_a,omitempty"`
	PartyB *pairswap.Address `json:"party_b,omitempty"`
	Source pairswap.Address  `json:"source"`
	Amount uint64            `json:"amount"`
}

// TransferStep moves tokens between two accounts of the same mint.
type TransferStep struct {
	Source      pairswap.Address `json:"source"`
	Destination pairswap.Address `json:"destination"`
	Amount      uint64           `json:"amount"`
}

// Report is the outcome of a script run.
type Report struct {
	Steps   []StepReport   `json:"steps"`
	Escrows []EscrowReport `json:"escrows"`
}

// StepReport is the outcome of a single step.
type StepReport struct {
	Index  int    `json:"index"`
	Op     string `json:"op"`
	Signer string `json:"signer,omitempty"`
	Data   string `json:"data,omitempty"`
	Log    string `json:"log,omitempty"`
	Code   uint32 `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
}

// EscrowReport is the state of an escrow after the run.
type EscrowReport struct {
	Address    pairswap.Address  `json:"address"`
	PartyA     pairswap.Address  `json:"party_a"`
	PartyB     pairswap.Address  `json:"party_b"`
	AssetA     pairswap.Address  `json:"asset_a"`
	AssetB     pairswap.Address  `json:"asset_b"`
	AmountA    uint64            `json:"amount_a"`
	AmountB    uint64            `json:"amount_b"`
	Deadline   pairswap.UnixTime `json:"deadline"`
	ADeposited bool              `json:"a_deposited"`
	BDeposited bool              `json:"b_deposited"`
	Funded     bool              `json:"funded"`
	VaultA     pairswap.Address  `json:"vault_a"`
	VaultB     pairswap.Address  `json:"vault_b"`
	BalanceA   uint64            `json:"vault_a_balance"`
	BalanceB   uint64            `json:"vault_b_balance"`
}

// RunCmd executes a script against a ledger initialized from a genesis
// file and prints a JSON report.
func RunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Execute a script of operations and print the resulting state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString(flagLogLevel)
			logger, err := newLogger(cmd.ErrOrStderr(), level)
			if err != nil {
				return err
			}
			genesis, _ := cmd.Flags().GetString(flagGenesis)
			if genesis == "" {
				return errors.Wrap(errors.ErrEmpty, "genesis file")
			}
			failFast, _ := cmd.Flags().GetBool(flagFailFast)

			script, err := loadScript(args[0])
			if err != nil {
				return err
			}
			l, _, err := newLedger(genesis, app.WithLogger(logger))
			if err != nil {
				return err
			}
			report, err := run(l, script, failFast)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	cmd.Flags().String(flagGenesis, "", "genesis file of the ledger")
	cmd.Flags().Bool(flagFailFast, false, "stop at the first failing step")
	return cmd
}

func loadScript(path string) (*Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot read script: %s", err)
	}
	var s Script
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot JSON deserialize script: %s", err)
	}
	return &s, nil
}

// run executes all steps. Failing steps are reported and, unless failFast
// is set, do not stop the run. Only malformed steps abort it.
func run(l *app.Ledger, s *Script, failFast bool) (*Report, error) {
	var report Report
	var escrows []pairswap.Address
	for i, step := range s.Steps {
		sr, err := runStep(l, step)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}
		sr.Index = i
		report.Steps = append(report.Steps, sr)
		if sr.Op == "create" && sr.Error == "" {
			raw, _ := base58.Decode(sr.Data)
			addr, err := pairswap.AddressFromBytes(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "step %d result", i)
			}
			escrows = append(escrows, addr)
		}
		if failFast && sr.Error != "" {
			break
		}
	}

	for _, addr := range escrows {
		er, err := escrowReport(l, addr)
		if err != nil {
			return nil, err
		}
		report.Escrows = append(report.Escrows, er)
	}
	return &report, nil
}

func runStep(l *app.Ledger, step Step) (StepReport, error) {
	if step.Advance != 0 {
		if step.Create != nil || step.Deposit != nil || step.Transfer != nil {
			return StepReport{}, errors.Wrap(errors.ErrInput, "advance cannot be combined with other operations")
		}
		sr := StepReport{Op: "advance"}
		next := l.BlockTime().Add(time.Duration(step.Advance) * time.Second)
		if err := l.SetBlockTime(next); err != nil {
			return sr, err
		}
		sr.Log = pairswap.AsUnixTime(next).String()
		return sr, nil
	}

	key, err := readKey(step.Key)
	if err != nil {
		return StepReport{}, err
	}
	signer := pairswap.PublicKeyAddress(key.Public().(ed25519.PublicKey))

	var (
		op  string
		msg pairswap.Msg
	)
	switch {
	case step.Create != nil && step.Deposit == nil && step.Transfer == nil:
		op = "create"
		c := step.Create
		msg = &escrow.CreateMsg{
			PartyB:   c.PartyB.Bytes(),
			AssetA:   c.AssetA.Bytes(),
			AssetB:   c.AssetB.Bytes(),
			AmountA:  c.AmountA,
			AmountB:  c.AmountB,
			Deadline: int64(c.Deadline),
		}
	case step.Deposit != nil && step.Create == nil && step.Transfer == nil:
		op = "deposit"
		msg, err = depositMsg(l, step.Deposit)
	case step.Transfer != nil && step.Create == nil && step.Deposit == nil:
		op = "transfer"
		t := step.Transfer
		msg = &token.TransferMsg{
			Source:      t.Source.Bytes(),
			Destination: t.Destination.Bytes(),
			Amount:      t.Amount,
		}
	default:
		return StepReport{}, errors.Wrap(errors.ErrInput, "exactly one operation expected")
	}

	sr := StepReport{Op: op, Signer: signer.String()}
	if err == nil {
		var res *pairswap.DeliverResult
		res, err = deliver(l, key, msg)
		if err == nil {
			sr.Data = base58.Encode(res.Data)
			sr.Log = res.Log
		}
	}
	if err != nil {
		sr.Code = errors.Code(err)
		sr.Error = err.Error()
	}
	return sr, nil
}

func depositMsg(l *app.Ledger, d *DepositStep) (*escrow.DepositMsg, error) {
	var addr pairswap.Address
	switch {
	case d.Escrow != nil:
		addr = *d.Escrow
	case d.PartyA != nil && d.PartyB != nil:
		a, _, err := l.Escrow(*d.PartyA, *d.PartyB)
		if err != nil {
			return nil, err
		}
		addr = a
	default:
		return nil, errors.Wrap(errors.ErrInput, "escrow or both parties required")
	}
	_, vaultA, vaultB, err := l.EscrowAt(addr)
	if err != nil {
		return nil, err
	}
	return &escrow.DepositMsg{
		Amount: d.Amount,
		Escrow: addr.Bytes(),
		Source: d.Source.Bytes(),
		VaultA: vaultA.Bytes(),
		VaultB: vaultB.Bytes(),
	}, nil
}

// deliver signs the message with the next nonce of the key owner and
// delivers it.
func deliver(l *app.Ledger, key ed25519.PrivateKey, msg pairswap.Msg) (*pairswap.DeliverResult, error) {
	tx, err := app.NewTx(msg)
	if err != nil {
		return nil, err
	}
	seq, err := l.Nonce(pairswap.PublicKeyAddress(key.Public().(ed25519.PublicKey)))
	if err != nil {
		return nil, err
	}
	if err := tx.Sign(key, l.ChainID(), seq); err != nil {
		return nil, err
	}
	raw, err := tx.Marshal()
	if err != nil {
		return nil, err
	}
	return l.DeliverTx(raw)
}

func escrowReport(l *app.Ledger, addr pairswap.Address) (EscrowReport, error) {
	e, vaultA, vaultB, err := l.EscrowAt(addr)
	if err != nil {
		return EscrowReport{}, err
	}
	accA, err := l.TokenAccount(vaultA)
	if err != nil {
		return EscrowReport{}, err
	}
	accB, err := l.TokenAccount(vaultB)
	if err != nil {
		return EscrowReport{}, err
	}
	return EscrowReport{
		Address:    addr,
		PartyA:     e.PartyA,
		PartyB:     e.PartyB,
		AssetA:     e.AssetA,
		AssetB:     e.AssetB,
		AmountA:    e.AmountA,
		AmountB:    e.AmountB,
		Deadline:   e.Deadline,
		ADeposited: e.ADeposited,
		BDeposited: e.BDeposited,
		Funded:     e.IsFunded(),
		VaultA:     vaultA,
		VaultB:     vaultB,
		BalanceA:   accA.Amount,
		BalanceB:   accB.Amount,
	}, nil
}
