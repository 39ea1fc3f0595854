package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLIError_Error verifies the error message format with and without
// an underlying wrapped error.
func TestCLIError_Error(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewCLIError(ExitFailure, "wayland socket missing")
		assert.Equal(t, "wayland socket missing", err.Error())
	})

	t.Run("message with wrapped error", func(t *testing.T) {
		underlying := errors.New("no such file or directory")
		err := WrapCLIError(ExitFailure, "wayland socket missing", underlying)
		assert.Equal(t, "wayland socket missing: no such file or directory", err.Error())
	})
}

// TestCLIError_Unwrap verifies that errors.Is can see through a CLIError
// to the wrapped error, per the Go 1.13 wrapping convention.
func TestCLIError_Unwrap(t *testing.T) {
	underlying := errors.New("probe failed")
	err := WrapCLIError(ExitFailure, "preset x11", underlying)

	assert.True(t, errors.Is(err, underlying),
		"errors.Is should find the wrapped error")
	assert.Nil(t, NewCLIError(ExitFailure, "bare").Unwrap(),
		"Unwrap should return nil when nothing is wrapped")
}

// TestCLIError_As verifies that a CLIError wrapped by fmt.Errorf is still
// recoverable with errors.As, which the CLI layer relies on to extract
// exit codes.
func TestCLIError_As(t *testing.T) {
	inner := NewCLIError(ExitFailure, "unknown flag")
	wrapped := fmt.Errorf("run aborted: %w", inner)

	var cliErr *CLIError
	require.True(t, errors.As(wrapped, &cliErr))
	assert.Equal(t, ExitFailure, cliErr.Code)
	assert.Equal(t, "unknown flag", cliErr.Message)
}

// TestInvocation_Argv verifies that Argv concatenates launcher prefix,
// options, and passthrough in that order, and that the returned slice
// is independent of the Invocation's backing arrays.
func TestInvocation_Argv(t *testing.T) {
	inv := &Invocation{
		Launcher:    []string{"podman", "run"},
		Options:     []string{"--env", "DISPLAY=:0", "--security-opt", "label=disable"},
		Passthrough: []string{"fedora:latest", "bash"},
	}

	argv := inv.Argv()
	assert.Equal(t, []string{
		"podman", "run",
		"--env", "DISPLAY=:0", "--security-opt", "label=disable",
		"fedora:latest", "bash",
	}, argv)

	// Mutating the result must not leak back into the Invocation.
	argv[0] = "docker"
	assert.Equal(t, "podman", inv.Launcher[0],
		"Argv must return a copy, not a view of the Invocation")
}

// TestInvocation_Argv_Empty verifies that empty option and passthrough
// slices produce just the launcher prefix.
func TestInvocation_Argv_Empty(t *testing.T) {
	inv := &Invocation{Launcher: []string{"podman", "run"}}
	assert.Equal(t, []string{"podman", "run"}, inv.Argv())
}

// TestInvocation_Validate verifies that only invocations with a non-empty
// launcher command pass validation.
func TestInvocation_Validate(t *testing.T) {
	tests := []struct {
		name     string
		launcher []string
		wantErr  bool
	}{
		{name: "normal launcher", launcher: []string{"podman", "run"}, wantErr: false},
		{name: "single binary", launcher: []string{"podman"}, wantErr: false},
		{name: "nil launcher", launcher: nil, wantErr: true},
		{name: "empty slice", launcher: []string{}, wantErr: true},
		{name: "empty binary name", launcher: []string{""}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Invocation{Launcher: tt.launcher}
			err := inv.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
