package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const floatsRuleset = `
name: floats
description: digits with a decimal point, separated by whitespace
definitions:
  - name: DIGIT
    pattern: "[0-9]"
rules:
  - pattern: "{DIGIT}+\\.{DIGIT}+"
    action: "emit:float"
  - pattern: "\\s+"
    action: discard
`

func TestRunCommand_EchoesUnmatchedText(t *testing.T) {
	dir := t.TempDir()
	rsPath := writeFixture(t, dir, "ruleset.yaml", floatsRuleset)
	inputPath := writeFixture(t, dir, "input.txt", "1.2 xy")

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"run", rsPath, inputPath})

	require.NoError(t, root.Execute())
	assert.Equal(t, "xy", out.String())
}

func TestValidateCommand_OK(t *testing.T) {
	dir := t.TempDir()
	rsPath := writeFixture(t, dir, "ruleset.yaml", floatsRuleset)

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"validate", rsPath})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "floats: ok")
}

func TestValidateCommand_RejectsBadPattern(t *testing.T) {
	dir := t.TempDir()
	rsPath := writeFixture(t, dir, "ruleset.yaml", `
name: broken
rules:
  - pattern: "("
`)

	root := NewRootCommand()
	root.SetArgs([]string{"validate", rsPath})
	err := root.Execute()
	assert.Error(t, err)
}

func TestTraceCommand_RecordsSession(t *testing.T) {
	dir := t.TempDir()
	rsPath := writeFixture(t, dir, "ruleset.yaml", floatsRuleset)
	inputPath := writeFixture(t, dir, "input.txt", "1.2 3.4")
	dbPath := filepath.Join(dir, "trace.db")

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"trace", rsPath, inputPath, "--db", dbPath})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "2 token(s)")
	assert.Contains(t, out.String(), "rule selection(s)")
}
