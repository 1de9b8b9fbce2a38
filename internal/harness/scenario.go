package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/coalmine/flexrt/internal/lexer"
	"github.com/coalmine/flexrt/internal/ruleset"
)

// Scenario defines a conformance test scenario: a ruleset, an input
// string, and the expectations a correctly behaving scanner must
// satisfy.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// RulesetPath is the path to a ruleset YAML file, relative to the
	// scenario file location.
	RulesetPath string `yaml:"ruleset"`

	// Input is the source text the scanner runs over.
	Input string `yaml:"input"`

	// ExpectEcho, if non-nil, is the exact ECHO sink output required.
	ExpectEcho *string `yaml:"expect_echo,omitempty"`

	// ExpectTokens, if non-nil, is the exact token stream required
	// (each token rendered with fmt.Sprint).
	ExpectTokens []string `yaml:"expect_tokens,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file, resolving
// RulesetPath relative to the scenario file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if err := validateScenario(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if sc.RulesetPath != "" && !filepath.IsAbs(sc.RulesetPath) {
		sc.RulesetPath = filepath.Join(filepath.Dir(path), sc.RulesetPath)
	}
	return &sc, nil
}

func validateScenario(sc *Scenario) error {
	if sc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if sc.RulesetPath == "" {
		return fmt.Errorf("ruleset is required")
	}
	return nil
}

// Run loads sc's ruleset, resolves its rule actions against the
// standard vocabulary (actions.go), drives a Scanner over sc.Input, and
// checks sc's expectations against what happened.
func Run(sc *Scenario) (*Result, error) {
	rs, err := ruleset.Load(sc.RulesetPath)
	if err != nil {
		return nil, fmt.Errorf("load ruleset: %w", err)
	}

	result := newResult()

	var echoed bytes.Buffer
	s := lexer.New(
		lexer.WithEchoSink(func(text string) { echoed.WriteString(text) }),
		lexer.WithDebugEnabled(true),
		lexer.WithSessionIDGenerator(lexer.NewFixedGenerator(sc.Name)),
	)
	seq := 0
	s.SetTraceSink(func(state, pattern, matchedText string) {
		result.Trace = append(result.Trace, TraceEvent{Seq: seq, State: state, Pattern: pattern, MatchedText: matchedText})
		seq++
	})

	actionNames := make([]string, 0, len(rs.Rules))
	for _, r := range rs.Rules {
		actionNames = append(actionNames, r.Action)
	}
	if err := ruleset.Apply(rs, s, ActionTable(actionNames...)); err != nil {
		return nil, fmt.Errorf("apply ruleset: %w", err)
	}

	s.SetSource(sc.Input)
	tokens, err := s.LexAll()
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	result.Echo = echoed.String()
	for _, tok := range tokens {
		result.Tokens = append(result.Tokens, fmt.Sprint(tok))
	}

	if sc.ExpectEcho != nil && result.Echo != *sc.ExpectEcho {
		result.addError(fmt.Sprintf("echo mismatch: want %q, got %q", *sc.ExpectEcho, result.Echo))
	}
	if sc.ExpectTokens != nil && !equalStrings(sc.ExpectTokens, result.Tokens) {
		result.addError(fmt.Sprintf("token mismatch: want %v, got %v", sc.ExpectTokens, result.Tokens))
	}

	return result, nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
