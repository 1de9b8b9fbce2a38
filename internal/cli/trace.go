package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coalmine/flexrt/internal/harness"
	"github.com/coalmine/flexrt/internal/lexer"
	"github.com/coalmine/flexrt/internal/ruleset"
	"github.com/coalmine/flexrt/internal/tracestore"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
}

// NewTraceCommand creates the trace command: scan an input file with a
// SQLite-backed trace sink attached, then print the session's recorded
// rule selections.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "trace <ruleset.yaml> <input-file>",
		Short:         "Scan a file and print its recorded rule-selection trace",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite trace database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runTrace(opts *TraceOptions, rulesetPath, inputPath string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rs, err := ruleset.Load(rulesetPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load ruleset", err)
	}
	rulesetHash, err := ruleset.Hash(rs)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to hash ruleset", err)
	}

	input, err := os.ReadFile(inputPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}

	ts, err := tracestore.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open trace database", err)
	}
	defer ts.Close()

	sessionGen := lexer.UUIDv7Generator{}
	sessionID := sessionGen.Generate()

	s := lexer.New(
		lexer.WithDebugEnabled(true),
		lexer.WithSessionIDGenerator(lexer.NewFixedGenerator(sessionID)),
	)
	s.SetTraceSink(ts.Sink(sessionID, rulesetHash))

	actionNames := make([]string, 0, len(rs.Rules))
	for _, r := range rs.Rules {
		actionNames = append(actionNames, r.Action)
	}
	if err := ruleset.Apply(rs, s, harness.ActionTable(actionNames...)); err != nil {
		return WrapExitError(ExitCommandError, "failed to apply ruleset", err)
	}

	s.SetSource(string(input))
	tokens, err := s.LexAll()
	if err != nil {
		return WrapExitError(ExitFailure, "scan failed", err)
	}

	events, err := ts.Session(ctx, sessionID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read back session trace", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "session %s: %d token(s), %d rule selection(s)\n", sessionID, len(tokens), len(events))
	for _, e := range events {
		fmt.Fprintf(w, "  [%d] state=%s pattern=%q matched=%q\n", e.Seq, e.State, e.Pattern, e.MatchedText)
	}

	return nil
}
