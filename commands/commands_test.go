package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/swaptest"
	"github.com/iov-one/pairswap/x/escrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"
)

// execute runs the root command with given arguments and returns its
// standard output.
func execute(t testing.TB, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestKeygen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alice.json")

	out, err := execute(t, "keygen", path)
	require.NoError(t, err)
	addr, err := pairswap.ParseAddress(strings.TrimSpace(out))
	require.NoError(t, err)

	key, err := readKey(path)
	require.NoError(t, err)
	assert.Equal(t, addr, pairswap.PublicKeyAddress(key.Public().(ed25519.PublicKey)))

	_, err = execute(t, "keygen", path)
	assert.Error(t, err)

	out, err = execute(t, "keygen", "--force", path)
	require.NoError(t, err)
	assert.NotEqual(t, addr.String(), strings.TrimSpace(out))
}

func TestAddress(t *testing.T) {
	a, b := swaptest.NewAddress(t), swaptest.NewAddress(t)
	x, y := swaptest.NewAddress(t), swaptest.NewAddress(t)

	out, err := execute(t, "address", a.String(), b.String(), x.String(), y.String())
	require.NoError(t, err)

	addr, bump, err := escrow.EscrowAddress(escrow.DefaultProgramID, a, b)
	require.NoError(t, err)
	vaultA, _, err := escrow.VaultAddress(escrow.DefaultProgramID, addr, x)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, fmt.Sprintf("escrow\t%s\t%d", addr, bump), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "vault_a\t"+vaultA.String()))

	_, err = execute(t, "address", a.String(), b.String(), x.String())
	assert.Error(t, err)
	_, err = execute(t, "address", a.String(), "not-base58!")
	assert.Error(t, err)
}

func mustJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	aliceKey := filepath.Join(dir, "alice.json")
	bobKey := filepath.Join(dir, "bob.json")
	alice, err := writeKey(aliceKey, false)
	require.NoError(t, err)
	bob, err := writeKey(bobKey, false)
	require.NoError(t, err)

	mintX, mintY := swaptest.SequenceAddress(1), swaptest.SequenceAddress(2)
	aliceX, bobY := swaptest.SequenceAddress(10), swaptest.SequenceAddress(11)

	genesis := map[string]interface{}{
		"chain_id":     "pairswap-run",
		"genesis_time": 1700000000,
		"app_state": map[string]interface{}{
			"token": []map[string]interface{}{
				{"address": aliceX, "mint": mintX, "owner": alice, "amount": 1000},
				{"address": bobY, "mint": mintY, "owner": bob, "amount": 1000},
			},
		},
	}
	genesisPath := filepath.Join(dir, "genesis.json")
	require.NoError(t, os.WriteFile(genesisPath, mustJSON(genesis), 0600))

	script := map[string]interface{}{
		"steps": []map[string]interface{}{
			{"key": aliceKey, "create": map[string]interface{}{
				"party_b": bob, "asset_a": mintX, "asset_b": mintY,
				"amount_a": 100, "amount_b": 50, "deadline": 1700003600,
			}},
			{"key": bobKey, "deposit": map[string]interface{}{
				"party_a": alice, "party_b": bob, "source": bobY, "amount": 49,
			}},
			{"key": bobKey, "deposit": map[string]interface{}{
				"party_a": alice, "party_b": bob, "source": bobY, "amount": 50,
			}},
			{"key": aliceKey, "deposit": map[string]interface{}{
				"party_a": alice, "party_b": bob, "source": aliceX, "amount": 100,
			}},
			{"advance": 60},
		},
	}
	scriptPath := filepath.Join(dir, "script.json")
	require.NoError(t, os.WriteFile(scriptPath, mustJSON(script), 0600))

	_, err = execute(t, "validate", genesisPath)
	require.NoError(t, err)

	out, err := execute(t, "run", "--genesis", genesisPath, "--log-level", "none", scriptPath)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Steps, 5)
	assert.Empty(t, report.Steps[0].Error)
	assert.Equal(t, escrow.ErrAmountMismatch.ABCICode(), report.Steps[1].Code)
	assert.Equal(t, "deposited by party B", report.Steps[2].Log)
	assert.Equal(t, "deposited by party A", report.Steps[3].Log)
	assert.Equal(t, "advance", report.Steps[4].Op)

	require.Len(t, report.Escrows, 1)
	e := report.Escrows[0]
	assert.True(t, e.Funded)
	assert.Equal(t, uint64(100), e.BalanceA)
	assert.Equal(t, uint64(50), e.BalanceB)
	assert.Equal(t, alice, e.PartyA)

	// Fail fast stops at the rejected deposit.
	out, err = execute(t, "run", "--genesis", genesisPath, "--fail-fast", "--log-level", "none", scriptPath)
	require.NoError(t, err)
	report = Report{}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Steps, 2)
	assert.False(t, report.Escrows[0].Funded)
}

func TestRunRequiresGenesis(t *testing.T) {
	_, err := execute(t, "run", "script.json")
	assert.Error(t, err)
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("PAIRSWAP_LOG_LEVEL", "loud")
	dir := t.TempDir()
	genesisPath := filepath.Join(dir, "genesis.json")
	require.NoError(t, os.WriteFile(genesisPath, []byte(`{"chain_id": "pairswap-env", "genesis_time": 1}`), 0600))
	scriptPath := filepath.Join(dir, "script.json")
	require.NoError(t, os.WriteFile(scriptPath, []byte(`{"steps": []}`), 0600))

	// The invalid level from the environment is used.
	_, err := execute(t, "run", "--genesis", genesisPath, scriptPath)
	assert.Error(t, err)

	// The command line takes precedence.
	_, err = execute(t, "run", "--genesis", genesisPath, "--log-level", "error", scriptPath)
	assert.NoError(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	genesisPath := filepath.Join(dir, "genesis.json")
	require.NoError(t, os.WriteFile(genesisPath, []byte(`{"chain_id": "pairswap-conf", "genesis_time": 1}`), 0600))
	scriptPath := filepath.Join(dir, "script.json")
	require.NoError(t, os.WriteFile(scriptPath, []byte(`{"steps": []}`), 0600))
	configPath := filepath.Join(dir, "pairswap.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("genesis: "+genesisPath+"\nlog-level: none\n"), 0600))

	out, err := execute(t, "run", "--config", configPath, scriptPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"steps"`)
}
