package lexer

import (
	"errors"
	"fmt"
)

// ConfigError represents a failure detected while configuring a Scanner:
// registering a definition, a state, or a rule. Configuration errors are
// always returned, never panicked. All of them occur before the scanner
// is driven except UnknownState from Begin/SwitchState/PushState/PopState,
// which a rule action can trigger mid-scan.
type ConfigError struct {
	// Code identifies the error category.
	Code ConfigErrorCode

	// Message is a human-readable description.
	Message string

	// Name is the definition, state, or pattern name involved, when
	// applicable.
	Name string
}

// ConfigErrorCode categorizes configuration-time errors.
type ConfigErrorCode string

const (
	// ErrInvalidName indicates a definition or state name failed the
	// naming grammar, or tried to reuse a reserved name.
	ErrInvalidName ConfigErrorCode = "INVALID_NAME"

	// ErrInvalidPattern indicates a pattern failed to compile, or a flag
	// outside {i, u} was requested.
	ErrInvalidPattern ConfigErrorCode = "INVALID_PATTERN"

	// ErrEmptyPattern indicates a pattern or definition source was empty.
	ErrEmptyPattern ConfigErrorCode = "EMPTY_PATTERN"

	// ErrUnknownState indicates a state-spec named a state that was
	// never registered.
	ErrUnknownState ConfigErrorCode = "UNKNOWN_STATE"

	// ErrEmptyStateSet indicates a state-spec resolved to zero states.
	ErrEmptyStateSet ConfigErrorCode = "EMPTY_STATE_SET"
)

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (name=%q)", e.Code, e.Message, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsConfigError returns true if err is a *ConfigError with the given code.
// Uses errors.As to handle wrapped errors.
func IsConfigError(err error, code ConfigErrorCode) bool {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// StackUnderflowError is returned by PopState when the state stack is
// empty. It is given its own type, rather than a ConfigError code,
// because it is a runtime condition rather than a configuration mistake.
type StackUnderflowError struct{}

// Error implements the error interface.
func (e *StackUnderflowError) Error() string {
	return "pop_state: state stack is empty"
}

// IsStackUnderflowError returns true if err is a *StackUnderflowError.
// Uses errors.As to handle wrapped errors.
func IsStackUnderflowError(err error) bool {
	var se *StackUnderflowError
	return errors.As(err, &se)
}
