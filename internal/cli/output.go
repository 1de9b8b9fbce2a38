package cli

import (
	"errors"
	"fmt"
)

// Exit codes for lexctl commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Scan failure
	ExitCommandError = 2 // Command error (bad path, malformed or invalid ruleset, etc.)
)

// ExitError carries a specific process exit code alongside an error.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// WrapExitError wraps err with a process exit code and a human message.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code carried by err, defaulting to
// ExitFailure for errors that aren't an *ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
