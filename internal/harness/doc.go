// Package harness provides conformance testing for flexrt scanners.
//
// The harness loads a ruleset, resolves its named rule actions against a
// small built-in action vocabulary (YAML cannot encode a Go closure, so
// a scenario names one of a fixed set of behaviors - see actions.go),
// drives a lexer.Scanner over a scenario's input, and records everything
// the scanner did so a test can assert on the resulting ECHO output,
// token stream, or trace.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: floats
//	description: "three floats separated by whitespace"
//	ruleset: ../rulesets/floats.yaml
//	input: "1.2 3.4 5.6"
//	expect_tokens: ["float", "float", "float"]
//
// expect_echo and expect_tokens are both optional; a scenario can assert
// on either, both, or neither (relying only on the trace captured in the
// Result for golden comparison).
//
// A scenario runs the real lexer.Scanner against the real ruleset loader.
// There is no mock scanner or manufactured result standing in: the code
// under test is the code that runs.
package harness
