// Package cli implements the cobra-based CLI commands for podkit.
//
// Each subcommand (run, show, presets, doctor) is defined in its own
// file within this package. This file defines the root command that
// serves as the parent for all subcommands and handles global flags.
//
// run and show disable cobra's flag parsing: their token order is
// semantic (presets apply in flag order), so the raw arguments are
// routed to the composition driver instead.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/podkit/podkit/internal/launcher"
	"github.com/podkit/podkit/internal/model"
)

// Global flag variables shared across all subcommands. They are bound
// to cobra persistent flags on the root command; run and show set
// verbose through the driver instead, since their raw tokens bypass
// cobra.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose enables diagnostic output on stderr.
	verbose bool
)

// Version, Commit, and Date are set at build time via ldflags,
// injected from the main package.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command. The
// root command itself performs no action; functionality lives in the
// subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "podkit",
		Short: "Container-launch preset composer",
		Long: `podkit translates named integration presets (expose X11, forward the
SSH agent, map the host user, ...) into a deduplicated, ordered option
list for a container-launch command, then runs that command with the
composed options plus your passthrough arguments.

The launcher defaults to "podman run" and is configurable.`,

		// Errors are formatted by Execute (text or JSON), so cobra's
		// own error and usage printing stays off.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewPresetsCommand())
	rootCmd.AddCommand(NewDoctorCommand())

	return rootCmd
}

// Execute runs the root command and translates errors into process
// exit codes. This is the entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		// A launcher that ran and failed already wrote its own
		// diagnostics; adopt its status without adding noise.
		var statusErr *launcher.ExitStatusError
		if errors.As(err, &statusErr) {
			os.Exit(statusErr.Status)
		}

		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitFailure))
	}
}

// printError outputs an error message in the appropriate format (JSON
// or text) based on the --json global flag. Errors go to stderr in
// both modes; stdout is reserved for successful command output.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is
// enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// enableVerbose turns on verbose diagnostics. run and show call this
// when the driver sees --verbose/-v among their raw tokens.
func enableVerbose() {
	verbose = true
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
