// Package cli — run.go implements the "podkit run" command.
//
// run composes options from preset flags in the order given, then
// hands the launcher command, composed options, and passthrough
// arguments to the executing launcher, which replaces this process.
// This file also holds the composition pipeline shared with show.
package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/podkit/podkit/internal/compose"
	"github.com/podkit/podkit/internal/config"
	"github.com/podkit/podkit/internal/launcher"
	"github.com/podkit/podkit/internal/model"
	"github.com/podkit/podkit/internal/preset"
)

// presetUsage is the static preset listing shared by the run and show
// help texts.
const presetUsage = `Preset flags (applied in the order given):
  --homedir      mount the home directory and start in the current working directory
  --libvirtd     expose the host libvirt control sockets
  --map-user     map the container root user onto the calling user
  --pulseaudio   connect to the host PulseAudio server
  --ssh-agent    forward the running SSH agent socket
  --utf8         force a UTF-8 locale inside the container
  --wayland      expose the active Wayland display socket
  --x11          expose the X11 server socket and DISPLAY

Everything after "--" is passed to the launcher verbatim. A preset
whose host resources are missing aborts the whole run. Tokens matching
no preset are rejected unless the configured dispatch mode is "fold",
which forwards them into the option list verbatim. Even then "-v" and
"--verbose" select podkit's verbose output, never a launcher flag, so
spell volume mounts "--volume" or place them after "--".`

// NewRunCommand creates the "run" cobra command.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [--profile NAME] [PRESET-FLAGS...] [-- PASSTHROUGH...]",
		Short: "Compose preset options and execute the launcher",
		Long: `Compose container-launch options from preset flags and execute the
configured launcher (default: podman run) with the composed options
followed by your passthrough arguments, replacing this process.

` + presetUsage + `

Examples:
  podkit run --x11 --pulseaudio -- fedora firefox
  podkit run --profile dev -- alpine sh
  podkit run --map-user --homedir -- ubuntu bash`,

		// Token order is semantic, so the raw arguments go to the
		// composition driver instead of cobra's flag parser.
		DisableFlagParsing: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			inv, res, err := composeFromArgs(args)
			if err != nil {
				return err
			}
			if res.Help {
				return cmd.Help()
			}
			VerboseLog("Launching: %s", strings.Join(inv.Argv(), " "))
			return launcher.NewExecLauncher().Launch(*inv)
		},
	}
	return cmd
}

// composeFromArgs runs the full composition pipeline for run/show:
// profile selection, configuration loading, the driver walk over the
// raw tokens, and assembly of the final invocation.
//
// When the returned Result has Help set, the invocation is nil and the
// caller prints usage instead of launching.
func composeFromArgs(args []string) (*model.Invocation, *compose.Result, error) {
	// Help wins before any configuration or profile file is consulted,
	// so usage prints even when those files are broken.
	if compose.HasHelpToken(args) {
		return nil, &compose.Result{Help: true}, nil
	}

	profileName, rest, err := cutProfileFlag(args)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, nil, err
	}

	defaults := compose.Defaults{Presets: slices.Clone(cfg.Presets)}
	if profileName != "" {
		profiles, err := config.LoadDefaultProfiles()
		if err != nil {
			return nil, nil, err
		}
		prof, err := profiles.Lookup(profileName)
		if err != nil {
			return nil, nil, err
		}
		defaults.Presets = append(defaults.Presets, prof.Presets...)
		defaults.Options = prof.Options
	}

	mode, err := cfg.DispatchMode()
	if err != nil {
		return nil, nil, err
	}

	registry := preset.NewBuiltinRegistry(preset.NewOSHost())
	driver := compose.NewDriver(registry, mode)

	res, err := driver.Compose(defaults, rest)
	if err != nil {
		return nil, nil, err
	}
	if res.Verbose {
		enableVerbose()
	}
	if profileName != "" {
		VerboseLog("Applied profile %q", profileName)
	}
	if res.Help {
		return nil, res, nil
	}

	launcherArgv, err := cfg.LauncherArgv()
	if err != nil {
		return nil, nil, err
	}

	inv := &model.Invocation{
		Launcher:    launcherArgv,
		Options:     res.Options,
		Passthrough: res.Passthrough,
	}
	VerboseLog("Composed %d option tokens and %d passthrough tokens",
		len(inv.Options), len(inv.Passthrough))
	return inv, res, nil
}

// cutProfileFlag strips a leading "--profile NAME" or "--profile=NAME"
// from the raw tokens. The flag is recognized in first position only;
// after that, every token belongs to the driver.
func cutProfileFlag(args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", args, nil
	}
	switch {
	case args[0] == "--profile":
		if len(args) < 2 || args[1] == compose.Separator {
			return "", nil, model.NewCLIError(model.ExitFailure,
				"--profile requires a profile name")
		}
		return args[1], args[2:], nil
	case strings.HasPrefix(args[0], "--profile="):
		name := strings.TrimPrefix(args[0], "--profile=")
		if name == "" {
			return "", nil, model.NewCLIError(model.ExitFailure,
				"--profile requires a profile name")
		}
		return name, args[1:], nil
	}
	return "", args, nil
}
