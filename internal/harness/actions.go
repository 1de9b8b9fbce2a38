package harness

import (
	"strconv"
	"strings"

	"github.com/coalmine/flexrt/internal/lexer"
)

// StandardActions returns the built-in named-action vocabulary every
// scenario's ruleset rules are resolved against. A rule's action name is
// either a bare verb ("discard", "echo") or "verb:arg" ("emit:float",
// "begin:comment"), since a YAML ruleset cannot name a Go closure.
//
// Verbs:
//
//	discard         - DISCARD (the zero value; listed for clarity)
//	echo            - echo() the matched text
//	echo_reject     - echo() then reject() (the "nested reject echo" idiom)
//	reject          - reject() with no echo
//	more            - more()
//	emit:name       - return the literal token "name"
//	emit_text       - return the matched text itself as the token
//	begin:state     - begin(state)
//	begin           - begin() (back to INITIAL)
//	push:state      - push_state(state)
//	pop             - pop_state()
func StandardActions() map[string]lexer.Action {
	return map[string]lexer.Action{
		"discard":     func(s *lexer.Scanner) (lexer.Token, error) { return s.Discard() },
		"echo":        func(s *lexer.Scanner) (lexer.Token, error) { s.Echo(); return nil, nil },
		"echo_reject": func(s *lexer.Scanner) (lexer.Token, error) { s.Echo(); s.Reject(); return nil, nil },
		"reject":      func(s *lexer.Scanner) (lexer.Token, error) { s.Reject(); return nil, nil },
		"more":        func(s *lexer.Scanner) (lexer.Token, error) { s.More(); return nil, nil },
		"emit_text":   func(s *lexer.Scanner) (lexer.Token, error) { return s.Text(), nil },
		"begin":       func(s *lexer.Scanner) (lexer.Token, error) { return nil, s.Begin() },
		"pop":         func(s *lexer.Scanner) (lexer.Token, error) { return nil, s.PopState() },
	}
}

// ResolveAction resolves a rule action name against the standard
// vocabulary, handling the "verb:arg" forms (emit:, begin:, push:) that
// StandardActions can't express as fixed map entries since they carry a
// parameter.
func ResolveAction(name string) lexer.Action {
	if name == "" {
		return nil
	}
	if action, ok := StandardActions()[name]; ok {
		return action
	}

	verb, arg, hasArg := strings.Cut(name, ":")
	if !hasArg {
		return nil
	}
	switch verb {
	case "emit":
		token := arg
		return func(s *lexer.Scanner) (lexer.Token, error) { return token, nil }
	case "begin":
		state := arg
		return func(s *lexer.Scanner) (lexer.Token, error) { return nil, s.Begin(state) }
	case "push":
		state := arg
		return func(s *lexer.Scanner) (lexer.Token, error) { return nil, s.PushState(state) }
	case "less":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil
		}
		return func(s *lexer.Scanner) (lexer.Token, error) { s.Less(n); return nil, nil }
	default:
		return nil
	}
}

// ActionTable builds the map[string]lexer.Action a ruleset.Apply call
// needs by resolving every given action name via ResolveAction. Names
// ResolveAction does not know are left out of the table.
func ActionTable(names ...string) map[string]lexer.Action {
	table := map[string]lexer.Action{}
	for _, name := range names {
		if action := ResolveAction(name); action != nil {
			table[name] = action
		}
	}
	return table
}
