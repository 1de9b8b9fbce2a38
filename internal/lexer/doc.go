// Package lexer implements a runtime-configurable lexical scanner core in
// the flex tradition: callers register definitions, states, and pattern
// rules at runtime (no generated tables, no code generation step), then
// drive the scanner one token at a time.
//
// The package is split along the five pieces of the pipeline:
//
//	add_definition/add_state/add_rule  -> Pattern Compiler (pattern.go)
//	                                    -> Rule Table      (rules.go, states.go)
//	scan_one/lex/lex_all               -> Match Selector   (selector.go)
//	                                    -> Scan Driver      (driver.go)
//	user rule actions                  -> Action API        (actions.go)
//
// The core never touches a filesystem, a network socket, or process
// standard streams. The only interfaces it needs from the outside world are
// an echo sink and a trace sink, both supplied as plain function values; a
// caller that wants flex's traditional "echo unmatched text to stdout"
// behavior must wire that explicitly (see cmd/lexctl), because stdout
// plumbing belongs to a collaborator, not the core.
package lexer
