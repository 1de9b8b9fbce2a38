// Package ruleset loads a declarative, YAML-authored scanner configuration
// and applies it to a lexer.Scanner: the "load a scanner from a file"
// surface every flex-like tool provides alongside hand-assembled
// configuration.
package ruleset

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coalmine/flexrt/internal/lexer"
)

// Definition is one named sub-pattern entry.
type Definition struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// State is one start-condition entry.
type State struct {
	Name      string `yaml:"name"`
	Exclusive bool   `yaml:"exclusive,omitempty"`
}

// Rule is one rule entry. States is absent (nil-spec), ["*"], or a list
// of names, matching lexer.Scanner.AddStateRule's state-spec. Action
// names a key into the caller-supplied action table - YAML cannot encode
// a Go closure, so resolution happens against a map given to Apply.
type Rule struct {
	States  []string `yaml:"states,omitempty"`
	Pattern string   `yaml:"pattern"`
	Literal bool     `yaml:"literal,omitempty"`
	Flags   string   `yaml:"flags,omitempty"`
	Action  string   `yaml:"action,omitempty"`
}

// Ruleset is the declarative form of a Scanner's configuration:
// definitions, states, and rules, plus scanner-wide options.
type Ruleset struct {
	Name             string       `yaml:"name"`
	Description      string       `yaml:"description,omitempty"`
	IgnoreCase       bool         `yaml:"ignore_case,omitempty"`
	NormalizeUnicode bool         `yaml:"normalize_unicode,omitempty"`
	Definitions      []Definition `yaml:"definitions,omitempty"`
	States           []State      `yaml:"states,omitempty"`
	Rules            []Rule       `yaml:"rules"`
}

// Load reads and parses a ruleset YAML file, rejecting unknown fields so
// a typo (e.g. "rule:" instead of "rules:") fails loudly rather than
// silently dropping configuration.
func Load(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ruleset: %w", err)
	}
	return Parse(data)
}

// Parse parses ruleset YAML from data.
func Parse(data []byte) (*Ruleset, error) {
	var rs Ruleset
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rs); err != nil {
		return nil, fmt.Errorf("parse ruleset YAML: %w", err)
	}
	if err := validate(&rs); err != nil {
		return nil, fmt.Errorf("invalid ruleset: %w", err)
	}
	return &rs, nil
}

func validate(rs *Ruleset) error {
	if rs.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(rs.Rules) == 0 {
		return fmt.Errorf("rules list is required and must be non-empty")
	}
	for i, r := range rs.Rules {
		if r.Pattern == "" {
			return fmt.Errorf("rules[%d]: pattern is required", i)
		}
	}
	return nil
}

// stateSpecOf converts a Rule's States list into the any value
// lexer.AddStateRule expects: nil when absent, the bare name when the
// list is exactly ["*"] or a single entry, or the full list otherwise.
func stateSpecOf(states []string) any {
	switch len(states) {
	case 0:
		return nil
	case 1:
		return states[0]
	default:
		return states
	}
}

// Apply installs every definition, state, and rule from rs onto s.
// actions resolves a rule's named action to a lexer.Action; a rule whose
// Action field is empty (or not found in actions) registers with a nil
// action (DISCARD).
func Apply(rs *Ruleset, s *lexer.Scanner, actions map[string]lexer.Action) error {
	s.SetIgnoreCase(rs.IgnoreCase)
	s.SetNormalizeUnicode(rs.NormalizeUnicode)

	for _, d := range rs.Definitions {
		if err := s.AddDefinition(d.Name, d.Pattern); err != nil {
			return fmt.Errorf("definition %q: %w", d.Name, err)
		}
	}
	for _, st := range rs.States {
		if err := s.AddState(st.Name, st.Exclusive); err != nil {
			return fmt.Errorf("state %q: %w", st.Name, err)
		}
	}
	for i, r := range rs.Rules {
		var pat lexer.Pattern
		switch {
		case r.Pattern == lexer.RuleEOF:
			pat = lexer.EOFRule
		case r.Literal:
			pat = lexer.Literal(r.Pattern)
		case r.Flags != "":
			pat = lexer.RegexFlags(r.Pattern, r.Flags)
		default:
			pat = lexer.Regex(r.Pattern)
		}

		var action lexer.Action
		if r.Action != "" {
			action = actions[r.Action]
		}

		if err := s.AddStateRule(stateSpecOf(r.States), pat, action); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}
