// Package model defines the domain types and value objects for the
// podkit CLI.
//
// This package contains pure data structures with no external dependencies.
// The central entity is Invocation, the fully composed launcher command
// (launcher argv prefix, composed options, passthrough arguments) that the
// composition layer hands off by value to the launcher boundary at the end
// of a run. Nothing in this package is persisted; an Invocation lives for
// exactly one run.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
