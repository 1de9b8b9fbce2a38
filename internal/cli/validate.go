package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coalmine/flexrt/internal/harness"
	"github.com/coalmine/flexrt/internal/lexer"
	"github.com/coalmine/flexrt/internal/ruleset"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// NewValidateCommand creates the validate command: parse a ruleset and
// compile every rule's pattern against a scratch Scanner, without
// scanning any input. Reports the first compilation error it finds.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "validate <ruleset.yaml>",
		Short:         "Check that a ruleset parses and every rule compiles",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *ValidateOptions, rulesetPath string, cmd *cobra.Command) error {
	rs, err := ruleset.Load(rulesetPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load ruleset", err)
	}

	s := lexer.New()
	actionNames := make([]string, 0, len(rs.Rules))
	for _, r := range rs.Rules {
		actionNames = append(actionNames, r.Action)
	}
	if err := ruleset.Apply(rs, s, harness.ActionTable(actionNames...)); err != nil {
		return WrapExitError(ExitCommandError, "ruleset is invalid", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d rule(s))\n", rs.Name, len(rs.Rules))
	return nil
}
