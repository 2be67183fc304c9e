package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ofx-converter/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStatement(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "extrato.csv")
	data := "Data;Histórico;Valor\n05/01/2024;Depósito;1.500,00\nxx;Quebrada;1,00\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", ""}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConvertCommand(t *testing.T) {
	input := writeStatement(t)
	output := filepath.Join(t.TempDir(), "saida.ofx")

	_, stderr, err := execute(t, "convert", input,
		"--date-column", "Data", "--amount-column", "Valor", "--memo-column", "Histórico",
		"--acct-id", "555", "--acct-type", "savings", "-o", output)
	require.NoError(t, err)

	doc, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<ACCTID>555\n")
	assert.Contains(t, string(doc), "<ACCTTYPE>SAVINGS\n")
	assert.Contains(t, string(doc), "<TRNAMT>1500.00\n")
	assert.Contains(t, stderr, "1 linha(s) ignorada(s)")
	assert.Contains(t, stderr, "invalid-date")
}

func TestConvertCommandToStdout(t *testing.T) {
	stdout, _, err := execute(t, "convert", writeStatement(t),
		"--date-column", "Data", "--amount-column", "Valor", "--memo-column", "Histórico", "-o", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "OFXHEADER:100\n"))
}

func TestConvertCommandMissingMapping(t *testing.T) {
	_, _, err := execute(t, "convert", writeStatement(t), "--date-column", "Data", "-o", "-")
	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{"amount", "memo"}, cfgErr.Missing)
}

func TestPreviewCommand(t *testing.T) {
	stdout, _, err := execute(t, "preview", writeStatement(t), "-n", "1")
	require.NoError(t, err)

	var preview domain.Preview
	require.NoError(t, json.Unmarshal([]byte(stdout), &preview))
	assert.Equal(t, []string{"Data", "Histórico", "Valor"}, preview.Columns)
	assert.Len(t, preview.Rows, 1)
	assert.Equal(t, 2, preview.TotalRows)
	assert.Equal(t, "Valor", preview.Suggested.Amount)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Version:")
}
