package cmd

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/Keyur279/Sia-Cli-tool/pkg/assembly"
	"github.com/Keyur279/Sia-Cli-tool/pkg/blockchain"
	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testKey       = common.PublicKey{0xde, 0xad}
	testRecipient = common.Address{0x33}
	testSignature = strings.Repeat("5a", 64)
)

type cli struct {
	t       *testing.T
	datadir string
	mem     *blockchain.MemoryService
}

func newCLI(t *testing.T) *cli {
	mem := blockchain.NewMemoryService()
	mem.SetTip(common.ChainIndex{Height: 50, ID: common.BlockID{50}})
	mem.SetFeeRate(common.NewCurrency64(10))
	mem.AddUTXO(common.UnspentOutput{
		ID:      common.SiacoinOutputID{1},
		Value:   common.Siacoins(10),
		Address: common.StandardAddress(testKey),
	})

	old := service
	service = func() blockchain.Service { return mem }
	t.Cleanup(func() { service = old })
	return &cli{t: t, datadir: t.TempDir(), mem: mem}
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	full := append([]string{args[0],
		"--public-key", testKey.String(),
		"--datadir", c.datadir,
		"--log-level", "error",
	}, args[1:]...)
	RootCmd.SetArgs(full)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	err := RootCmd.Execute()
	return out.String(), err
}

func TestAddressCommand(t *testing.T) {
	c := newCLI(t)
	out, err := c.run("", "address")
	require.NoError(t, err)
	assert.Equal(t, common.StandardAddress(testKey).String()+"\n", out)
}

func TestSendCommand(t *testing.T) {
	c := newCLI(t)
	out, err := c.run(testSignature+"\n", "send", testRecipient.String(), "1SC")
	require.NoError(t, err)
	assert.Contains(t, out, "Broadcast")

	require.Len(t, c.mem.Broadcasts, 1)
	txn := c.mem.Broadcasts[0]
	require.Len(t, txn.SiacoinInputs, 1)
	assert.Equal(t, []string{testSignature}, txn.SiacoinInputs[0].SatisfiedPolicy.Signatures)
	require.Len(t, txn.SiacoinOutputs, 2)
	assert.Equal(t, testRecipient, txn.SiacoinOutputs[0].Address)
	assert.Equal(t, common.Siacoins(1), txn.SiacoinOutputs[0].Value)
	assert.Equal(t, common.StandardAddress(testKey), txn.SiacoinOutputs[1].Address)
	assert.NoError(t, assembly.CheckBalance([]common.UnspentOutput{txn.SiacoinInputs[0].Parent}, txn.SiacoinOutputs, txn.MinerFee))
}

func TestSendCommandCancelled(t *testing.T) {
	c := newCLI(t)
	out, err := c.run("\n", "send", testRecipient.String(), "1SC")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")
	assert.Empty(t, c.mem.Broadcasts)
}

func TestSendCommandInsufficientFunds(t *testing.T) {
	c := newCLI(t)
	_, err := c.run(testSignature+"\n", "send", testRecipient.String(), "11SC")
	assert.Error(t, err)
	assert.Empty(t, c.mem.Broadcasts)
}

var idPattern = regexp.MustCompile(`ID:\s+(\S+)`)

func TestPrepareAndFinalize(t *testing.T) {
	c := newCLI(t)
	out, err := c.run("", "prepare", testRecipient.String(), "2SC")
	require.NoError(t, err)
	m := idPattern.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	id := m[1]
	assert.Empty(t, c.mem.Broadcasts)

	out, err = c.run("", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, id)

	// a blank argument cancels like an empty line on stdin
	out, err = c.run("", "finalize", id, "  ")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")
	assert.Empty(t, c.mem.Broadcasts)

	out, err = c.run("\n", "finalize", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")
	assert.Empty(t, c.mem.Broadcasts)

	out, err = c.run("", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, id)

	_, err = c.run("", "finalize", id, "00")
	assert.ErrorIs(t, err, assembly.ErrMalformedSignature)
	assert.Empty(t, c.mem.Broadcasts)

	_, err = c.run("", "finalize", id, "sig:"+testSignature)
	require.NoError(t, err)
	assert.Len(t, c.mem.Broadcasts, 1)

	out, err = c.run("", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "No pending transactions")
}

func TestInspectCommand(t *testing.T) {
	c := newCLI(t)
	out, err := c.run("", "prepare", testRecipient.String(), "1SC")
	require.NoError(t, err)
	blob := regexp.MustCompile(`Blob:\s+([0-9a-f]+)`).FindStringSubmatch(out)
	require.Len(t, blob, 2)

	out, err = c.run(blob[1]+"\n", "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "Inputs (1)")
	assert.Contains(t, out, common.SiacoinOutputID{1}.String())
	assert.Contains(t, out, testRecipient.String())

	_, err = c.run("", "inspect", "00")
	assert.Error(t, err)
}

func TestBalanceCommand(t *testing.T) {
	c := newCLI(t)
	c.mem.AddUTXO(common.UnspentOutput{
		ID:             common.SiacoinOutputID{2},
		Value:          common.Siacoins(1),
		Address:        common.StandardAddress(testKey),
		MaturityHeight: 100,
	})
	out, err := c.run("", "balance")
	require.NoError(t, err)
	assert.Contains(t, out, "Spendable: 10 SC")
	assert.Contains(t, out, "Immature:  1 SC")
}
