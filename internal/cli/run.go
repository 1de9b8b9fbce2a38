package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coalmine/flexrt/internal/harness"
	"github.com/coalmine/flexrt/internal/lexer"
	"github.com/coalmine/flexrt/internal/ruleset"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
}

// NewRunCommand creates the run command: load a ruleset, scan an input
// file through it, and write whatever the ruleset's rules ECHO to
// stdout.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "run <ruleset.yaml> <input-file>",
		Short:         "Scan a file through a ruleset and print its ECHO output",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(opts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runScan(opts *RunOptions, rulesetPath, inputPath string, cmd *cobra.Command) error {
	rs, err := ruleset.Load(rulesetPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load ruleset", err)
	}

	input, err := os.ReadFile(inputPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}

	out := cmd.OutOrStdout()
	s := lexer.New(lexer.WithEchoSink(func(text string) { fmt.Fprint(out, text) }))

	actionNames := make([]string, 0, len(rs.Rules))
	for _, r := range rs.Rules {
		actionNames = append(actionNames, r.Action)
	}
	if err := ruleset.Apply(rs, s, harness.ActionTable(actionNames...)); err != nil {
		return WrapExitError(ExitCommandError, "failed to apply ruleset", err)
	}

	s.SetSource(string(input))
	if _, err := s.LexAll(); err != nil {
		return WrapExitError(ExitFailure, "scan failed", err)
	}

	return nil
}
