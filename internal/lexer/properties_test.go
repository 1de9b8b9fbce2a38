package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests check properties that must hold for any correctly
// behaving scanner, independent of any one ruleset.

func TestProperty_LongestMatch(t *testing.T) {
	s := New()
	var picked string
	require.NoError(t, s.AddRule(Regex(`a`), func(sc *Scanner) (Token, error) {
		picked = "short"
		return "t", nil
	}))
	require.NoError(t, s.AddRule(Regex(`abc`), func(sc *Scanner) (Token, error) {
		picked = "long"
		return "t", nil
	}))

	s.SetSource("abc")
	_, err := s.Lex()
	require.NoError(t, err)
	assert.Equal(t, "long", picked)
}

func TestProperty_OrderTieBreak(t *testing.T) {
	s := New()
	var picked string
	require.NoError(t, s.AddRule(Regex(`[a-z]+`), func(sc *Scanner) (Token, error) {
		picked = "first"
		return "t", nil
	}))
	require.NoError(t, s.AddRule(Regex(`[a-z]+`), func(sc *Scanner) (Token, error) {
		picked = "second"
		return "t", nil
	}))

	s.SetSource("abc")
	_, err := s.Lex()
	require.NoError(t, err)
	assert.Equal(t, "first", picked)
}

func TestProperty_AnchorWeight(t *testing.T) {
	s := New()
	var picked string
	require.NoError(t, s.AddRule(Regex(`^abc`), func(sc *Scanner) (Token, error) {
		picked = "anchored"
		return "t", nil
	}))
	require.NoError(t, s.AddRule(Regex(`abc`), func(sc *Scanner) (Token, error) {
		picked = "unanchored"
		return "t", nil
	}))

	s.SetSource("abc")
	_, err := s.Lex()
	require.NoError(t, err)
	assert.Equal(t, "anchored", picked)
}

func TestProperty_DefaultEchoTotality(t *testing.T) {
	var calls []string
	s := New(WithEchoSink(func(text string) { calls = append(calls, text) }))

	s.SetSource("abc")
	_, err := s.LexAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, calls)
}

func TestProperty_RejectExhaustion(t *testing.T) {
	s := New()
	require.NoError(t, s.AddRule(Literal("x"), func(sc *Scanner) (Token, error) {
		sc.Reject()
		return nil, nil
	}))

	s.SetSource("x")
	tok, err := s.Lex()
	require.NoError(t, err)
	assert.Equal(t, EOF, tok)
	assert.Empty(t, s.rejected)
}

func TestProperty_MoreConcatenation(t *testing.T) {
	s := New()
	require.NoError(t, s.AddRule(Literal("ab"), func(sc *Scanner) (Token, error) {
		sc.More()
		return nil, nil
	}))
	require.NoError(t, s.AddRule(Literal("cd"), func(sc *Scanner) (Token, error) {
		return sc.Text(), nil
	}))

	s.SetSource("abcd")
	tok, err := s.Lex()
	require.NoError(t, err)
	assert.Equal(t, "abcd", tok)
}

func TestProperty_LessInverse(t *testing.T) {
	s := New()
	var textLen int
	var idxAfter int
	require.NoError(t, s.AddRule(Literal("foobar"), func(sc *Scanner) (Token, error) {
		sc.Less(3)
		textLen = len(sc.Text())
		idxAfter = sc.Index()
		return "t", nil
	}))

	s.SetSource("foobar")
	_, err := s.Lex()
	require.NoError(t, err)
	assert.Equal(t, 3, textLen)
	assert.Equal(t, 3, idxAfter) // match started at 0
}

func TestProperty_UnputRoundTrip(t *testing.T) {
	run := func(source string) []Token {
		s := New()
		require.NoError(t, s.AddRule(Regex(`[a-z]+`), func(sc *Scanner) (Token, error) {
			return sc.Text(), nil
		}))
		require.NoError(t, s.AddRule(Regex(`\s+`), func(sc *Scanner) (Token, error) {
			return sc.Discard()
		}))
		s.SetSource(source)
		toks, err := s.LexAll()
		require.NoError(t, err)
		return toks
	}

	direct := run("ab cd")

	s := New()
	require.NoError(t, s.AddRule(Regex(`[a-z]+`), func(sc *Scanner) (Token, error) {
		return sc.Text(), nil
	}))
	require.NoError(t, s.AddRule(Regex(`\s+`), func(sc *Scanner) (Token, error) {
		return sc.Discard()
	}))
	require.NoError(t, s.AddRule(Literal("<ins>"), func(sc *Scanner) (Token, error) {
		sc.Unput("ab cd")
		return sc.Discard()
	}))
	s.SetSource("<ins>")
	viaUnput, err := s.LexAll()
	require.NoError(t, err)

	assert.Equal(t, direct, viaUnput)
}

func TestProperty_StateIsolation(t *testing.T) {
	s := New()
	require.NoError(t, s.AddState("E", true))
	var fired bool
	require.NoError(t, s.AddStateRule("E", Literal("x"), func(sc *Scanner) (Token, error) {
		fired = true
		return "t", nil
	}))

	var echoed string
	s.SetEchoSink(func(text string) { echoed += text })
	s.SetSource("x")
	_, err := s.LexAll()
	require.NoError(t, err)

	assert.False(t, fired, "rule scoped to exclusive state E must not fire while in INITIAL")
	assert.Equal(t, "x", echoed, "falls through to default echo instead")
}

func TestProperty_InitialImplicitMembership(t *testing.T) {
	s := New()
	// registered before any later inclusive state exists
	var fired bool
	require.NoError(t, s.AddRule(Literal("x"), func(sc *Scanner) (Token, error) {
		fired = true
		return "t", nil
	}))
	require.NoError(t, s.AddState("later", false))

	require.NoError(t, s.AddStateRule("later", Literal("y"), nil))

	s.SetSource("x")
	_, err := s.Lex()
	require.NoError(t, err)
	assert.True(t, fired, "rule added with no state-spec is active in INITIAL")

	// confirm it did NOT retroactively attach to "later"
	rulesInLater := s.table["later"]
	for _, r := range rulesInLater {
		assert.NotEqual(t, "x", r.pattern.source, "rule added before state registration must not back-fill into it")
	}
}
