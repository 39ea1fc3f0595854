// Package cli — presets.go implements the "podkit presets" command.
//
// presets lists every built-in preset with its summary, as a plain
// table or JSON depending on the --json flag.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/podkit/podkit/internal/preset"
)

// NewPresetsCommand creates the "presets" cobra command.
func NewPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the available presets",
		Long: `List every preset accepted by run and show, with a one-line summary.

Examples:
  podkit presets
  podkit presets --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(cmd)
		},
	}
}

// runPresets prints the registered presets sorted by name.
func runPresets(cmd *cobra.Command) error {
	infos := preset.NewBuiltinRegistry(preset.NewOSHost()).Infos()

	if IsJSONOutput() {
		type resultJSON struct {
			Presets []preset.Info `json:"presets"`
		}
		data, _ := json.MarshalIndent(resultJSON{Presets: infos}, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	for _, info := range infos {
		fmt.Fprintf(cmd.OutOrStdout(), "--%-12s %s\n", info.Name, info.Summary)
	}
	return nil
}
