// Package cli — show.go implements the "podkit show" command.
//
// show runs the exact composition pipeline of run, but hands the
// result to the display launcher: the full command line is printed,
// each token individually single-quoted, instead of being executed.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/podkit/podkit/internal/launcher"
)

// NewShowCommand creates the "show" cobra command.
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [--profile NAME] [PRESET-FLAGS...] [-- PASSTHROUGH...]",
		Short: "Compose preset options and print the launch command",
		Long: `Compose container-launch options exactly as run would, then print the
resulting command line instead of executing it. Each token is printed
individually single-quoted, so the output pastes into a shell
unchanged.

` + presetUsage + `

Examples:
  podkit show --x11 -- fedora firefox
  podkit show --profile dev -- alpine sh`,

		DisableFlagParsing: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			inv, res, err := composeFromArgs(args)
			if err != nil {
				return err
			}
			if res.Help {
				return cmd.Help()
			}
			return launcher.NewDisplayLauncher(cmd.OutOrStdout()).Launch(*inv)
		},
	}
	return cmd
}
