package ruleset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coalmine/flexrt/internal/lexer"
)

const floatsYAML = `
name: floats
definitions:
  - name: DIGIT
    pattern: "[0-9]"
rules:
  - pattern: "{DIGIT}+\\.{DIGIT}+"
    action: emit_float
  - pattern: "\\s+"
    action: discard
`

func TestParse(t *testing.T) {
	rs, err := Parse([]byte(floatsYAML))
	require.NoError(t, err)
	assert.Equal(t, "floats", rs.Name)
	require.Len(t, rs.Definitions, 1)
	require.Len(t, rs.Rules, 2)
}

func TestParse_RejectsUnknownField(t *testing.T) {
	_, err := Parse([]byte("name: x\nrules: []\nbogus_field: 1\n"))
	assert.Error(t, err)
}

func TestParse_RequiresNonEmptyRules(t *testing.T) {
	_, err := Parse([]byte("name: x\nrules: []\n"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	rs, err := Parse([]byte(floatsYAML))
	require.NoError(t, err)

	s := lexer.New()
	var tokens []lexer.Token
	actions := map[string]lexer.Action{
		"emit_float": func(sc *lexer.Scanner) (lexer.Token, error) { return "float:" + sc.Text(), nil },
		"discard":    func(sc *lexer.Scanner) (lexer.Token, error) { return sc.Discard() },
	}
	require.NoError(t, Apply(rs, s, actions))

	s.SetSource("1.2 3.4")
	tokens, err = s.LexAll()
	require.NoError(t, err)
	assert.Equal(t, []lexer.Token{"float:1.2", "float:3.4"}, tokens)
}

func TestHash_StableAndOrderSensitive(t *testing.T) {
	rs1, err := Parse([]byte(floatsYAML))
	require.NoError(t, err)
	rs2, err := Parse([]byte(floatsYAML))
	require.NoError(t, err)

	h1, err := Hash(rs1)
	require.NoError(t, err)
	h2, err := Hash(rs2)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	reordered := *rs1
	reordered.Rules = []Rule{rs1.Rules[1], rs1.Rules[0]}
	h3, err := Hash(&reordered)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}
