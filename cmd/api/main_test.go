package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"merchant-pulse/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
ledger:
  capacity: 500
  lookback_days: 3
  merchants: 4
  start_time: "2025-03-17T00:00:00Z"
  seed: 7
feed:
  refresh_interval: "5ms"
  connect_delay: "0s"
  fixed_step: "1s"
log:
  level: "error"
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))
	return path
}

// execute runs the command tree with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCmd(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, "merchant-pulse", root.Use)
	assert.Contains(t, root.Long, "in-memory ledger")

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "export", "simulate"})
}

func TestExport_TransactionsCSV(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, "--config", cfg, "export", "--kind", "transactions", "--range", "year")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, strings.Join(domain.TransactionCSVHeader, ","), lines[0])
	assert.Greater(t, len(lines), 1)
}

func TestExport_MerchantsJSONToFile(t *testing.T) {
	cfg := writeTestConfig(t)
	dest := filepath.Join(t.TempDir(), "merchants.json")

	out, err := execute(t, "-c", cfg, "export", "--kind", "merchants", "--format", "json", "--out", dest)
	require.NoError(t, err)
	assert.Empty(t, out)

	raw, err := os.ReadFile(dest)
	require.NoError(t, err)
	var body struct {
		Merchants []domain.Merchant `json:"merchants"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Len(t, body.Merchants, 4)
}

func TestExport_Rejected(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := execute(t, "-c", cfg, "export", "--kind", "wallets")
	assert.ErrorContains(t, err, "unknown kind")

	_, err = execute(t, "-c", cfg, "export", "--range", "decade")
	assert.ErrorContains(t, err, "unknown range")

	_, err = execute(t, "-c", cfg, "export", "--format", "xml")
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestSimulate_PrintsJSONLines(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, "-c", cfg, "simulate", "-n", "3", "--merchant", "m2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		var msg domain.FeedMessage
		require.NoError(t, json.Unmarshal([]byte(line), &msg))
		assert.Equal(t, domain.FeedMessageNewTransaction, msg.Type)
		require.NotNil(t, msg.Transaction)
		assert.Equal(t, "m2", msg.Transaction.MerchantID)
	}
}

func TestSimulate_Rejected(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := execute(t, "-c", cfg, "simulate", "--merchant", "m404")
	assert.ErrorContains(t, err, "unknown merchant")

	_, err = execute(t, "-c", cfg, "simulate", "-n", "0")
	assert.ErrorContains(t, err, "--ticks")
}
