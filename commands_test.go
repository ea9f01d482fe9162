package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	base := []string{
		"--config", filepath.Join(dir, "config.toml"),
		"--log-file", filepath.Join(dir, "valu.log"),
		"--state", filepath.Join(dir, "state.cbor"),
	}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestMarketCommand(t *testing.T) {
	out, err := run(t, "market", "--sort", "price-asc", "--category", "Furniture")
	require.NoError(t, err)

	assert.Contains(t, out, "Modern Velvet Sofa")
	assert.NotContains(t, out, "Apple Watch SE")
	assert.Contains(t, out, "sorted by value: low to high")
}

func TestMarketCommand_BadSort(t *testing.T) {
	_, err := run(t, "market", "--sort", "cheapest")
	assert.ErrorContains(t, err, "unknown sort mode")
}

func TestAskCommand(t *testing.T) {
	out, err := run(t, "--ephemeral", "ask", "--style", "notty", "what", "is", "my", "total")
	require.NoError(t, err)
	assert.Contains(t, out, "$14,100")
}

func TestHistoryCommand_Plain(t *testing.T) {
	out, err := run(t, "--ephemeral", "history", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Recent transactions")
	assert.Contains(t, out, "Total value $14,100")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	args := []string{"--config", path, "--log-file", filepath.Join(dir, "valu.log"), "--ephemeral", "config", "init"}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "[carousels.stats]"))

	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	assert.ErrorContains(t, cmd.Execute(), "already exists")

	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(append(args, "--force"))
	assert.NoError(t, cmd.Execute())
}

func TestMarketCommand_PersistsListing(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "state.json")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--config", filepath.Join(dir, "config.toml"),
		"--log-file", filepath.Join(dir, "valu.log"),
		"--state", state,
		"market",
	})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(state)
	require.NoError(t, err)
	assert.Contains(t, string(data), "marketplaceItems")
}
