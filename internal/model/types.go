// Package model defines the domain types for the podkit CLI.
//
// All entities in this package are transient, single-run representations:
// podkit composes one launcher invocation per run and keeps no state
// between runs.
package model

import (
	"fmt"
)

// ExitCode defines the CLI exit codes per the command contract.
// The contract is narrow: success is 0, and every failure class (probe
// failures, unknown-flag rejection, configuration errors, launch
// errors) shares exit code 1. Scripts only ever need to distinguish
// "composed and launched" from "did not".
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	// Printing help/usage counts as success.
	ExitSuccess ExitCode = 0

	// ExitFailure indicates the run was aborted: a preset probe failed,
	// an unknown flag was rejected, the configuration was invalid, or
	// the launcher could not be started. No partial option list is ever
	// emitted on this path.
	ExitFailure ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// Invocation is the fully composed launcher command for one run.
//
// It is assembled exactly once, after every requested preset has
// contributed its option groups, and is handed to the launcher boundary
// by value: the composition layer copies the option tokens in, and no
// component mutates an Invocation after construction.
type Invocation struct {
	// Launcher is the argv prefix of the external launch command,
	// e.g. ["podman", "run"]. Must contain at least the binary name.
	Launcher []string

	// Options is the composed, deduplicated option token sequence in
	// first-contributed order. Tokens are opaque strings; podkit never
	// interprets their internal structure.
	Options []string

	// Passthrough holds the caller-supplied trailing arguments
	// (everything after the "--" separator). They are forwarded
	// verbatim after all options and are never deduplicated.
	Passthrough []string
}

// Validate checks that the Invocation can actually be executed.
// An empty launcher command cannot be handed to the OS, so it is the
// one structural error worth catching before the exec boundary.
func (inv *Invocation) Validate() error {
	if len(inv.Launcher) == 0 || inv.Launcher[0] == "" {
		return fmt.Errorf("invocation has no launcher command")
	}
	return nil
}

// Argv returns the complete argument vector for the launch:
// launcher prefix, then composed options, then passthrough arguments.
// The result is a fresh slice; mutating it does not affect the Invocation.
func (inv *Invocation) Argv() []string {
	argv := make([]string, 0, len(inv.Launcher)+len(inv.Options)+len(inv.Passthrough))
	argv = append(argv, inv.Launcher...)
	argv = append(argv, inv.Options...)
	argv = append(argv, inv.Passthrough...)
	return argv
}
