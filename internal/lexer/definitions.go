package lexer

import (
	"regexp"

	"golang.org/x/text/cases"
)

// identifierGrammar is the naming grammar definition names and state
// names (checked in AddDefinition and AddState) must satisfy: a leading letter or underscore, then letters, digits,
// underscores, or hyphens.
var identifierGrammar = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// definitionTable holds named sub-patterns available for {name}
// expansion inside later pattern sources. Lookups are case-insensitive;
// definitions are immutable once added and are consulted only at
// rule-compile time, so redefining a name after it has already been
// expanded into a compiled rule has no retroactive effect.
type definitionTable struct {
	fold cases.Caser
	defs map[string]string
}

func newDefinitionTable() *definitionTable {
	return &definitionTable{
		fold: cases.Fold(),
		defs: map[string]string{},
	}
}

func (d *definitionTable) add(name, pattern string) error {
	if !identifierGrammar.MatchString(name) {
		return &ConfigError{Code: ErrInvalidName, Message: "definition name must match [A-Za-z_][A-Za-z0-9_-]*", Name: name}
	}
	if pattern == "" {
		return &ConfigError{Code: ErrEmptyPattern, Message: "definition pattern must not be empty", Name: name}
	}
	d.defs[d.fold.String(name)] = pattern
	return nil
}

func (d *definitionTable) lookup(name string) (string, bool) {
	v, ok := d.defs[d.fold.String(name)]
	return v, ok
}
