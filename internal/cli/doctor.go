// Package cli — doctor.go implements the "podkit doctor" command.
//
// doctor reports the health of everything a run depends on: whether
// the configured launcher binary is on PATH, whether the container
// engine socket is present and answering, and which presets would
// currently succeed. Unhealthy rows are data, not errors: doctor exits
// 0 whenever it can produce the report.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/podkit/podkit/internal/config"
	"github.com/podkit/podkit/internal/engine"
	"github.com/podkit/podkit/internal/preset"
)

// doctorReport is the full diagnosis, shaped for the --json output.
type doctorReport struct {
	Launcher launcherStatus `json:"launcher"`
	Engine   engineStatus   `json:"engine"`
	Presets  []presetStatus `json:"presets"`
}

// launcherStatus reports whether the configured launcher binary
// resolves on PATH.
type launcherStatus struct {
	Command string `json:"command"`
	Path    string `json:"path,omitempty"`
	OK      bool   `json:"ok"`
	Detail  string `json:"detail,omitempty"`
}

// engineStatus reports container-engine API reachability and, when
// the engine answers, the negotiated API version.
type engineStatus struct {
	Host       string `json:"host,omitempty"`
	APIVersion string `json:"api_version,omitempty"`
	OK         bool   `json:"ok"`
	Detail     string `json:"detail,omitempty"`
}

// presetStatus reports whether one preset's probes would pass right
// now.
type presetStatus struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// NewDoctorCommand creates the "doctor" cobra command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the launcher, engine, and preset preconditions",
		Long: `Check everything a run depends on and report per-component status:
the configured launcher binary, the container engine API socket, and
each preset's host preconditions.

The engine check is informational: run hands options to the launcher
binary directly and never needs the engine API itself.

Examples:
  podkit doctor
  podkit doctor --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context(), cmd)
		},
	}
}

// runDoctor loads the configuration, builds the report, and prints it.
func runDoctor(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}

	report := buildDoctorReport(ctx, cfg)

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(report, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	printDoctorText(cmd.OutOrStdout(), report)
	return nil
}

// buildDoctorReport runs every check against the real host. Failures
// land in the report rather than aborting it.
func buildDoctorReport(ctx context.Context, cfg *config.Config) *doctorReport {
	report := &doctorReport{}

	report.Launcher = checkLauncher(cfg)
	report.Engine = checkEngine(ctx)

	registry := preset.NewBuiltinRegistry(preset.NewOSHost())
	for _, name := range registry.Names() {
		status := presetStatus{Name: name, OK: true}
		if err := registry.Probe(name); err != nil {
			status.OK = false
			status.Detail = err.Error()
		}
		report.Presets = append(report.Presets, status)
	}

	return report
}

// checkLauncher resolves the configured launcher command's binary on
// PATH.
func checkLauncher(cfg *config.Config) launcherStatus {
	status := launcherStatus{Command: cfg.Launcher}

	argv, err := cfg.LauncherArgv()
	if err != nil {
		status.Detail = err.Error()
		return status
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		status.Detail = fmt.Sprintf("%q not found in PATH", argv[0])
		return status
	}

	status.OK = true
	status.Path = path
	return status
}

// checkEngine detects the engine socket and pings it.
func checkEngine(ctx context.Context) engineStatus {
	client, err := engine.NewClient()
	if err != nil {
		return engineStatus{Detail: err.Error()}
	}
	defer func() { _ = client.Close() }()

	status := engineStatus{Host: client.Host()}
	if err := client.Ping(ctx); err != nil {
		status.Detail = err.Error()
		return status
	}

	status.OK = true
	// Ping triggers version negotiation, so the client version now
	// reflects what the engine agreed to.
	status.APIVersion = client.Inner().ClientVersion()
	return status
}

// printDoctorText renders the report as one aligned component table.
func printDoctorText(out io.Writer, report *doctorReport) {
	fmt.Fprintf(out, "%-12s %-6s %s\n", "COMPONENT", "STATUS", "DETAIL")

	launcherDetail := report.Launcher.Detail
	if report.Launcher.OK {
		launcherDetail = fmt.Sprintf("%s (%s)", report.Launcher.Command, report.Launcher.Path)
	}
	fmt.Fprintf(out, "%-12s %-6s %s\n", "launcher", statusWord(report.Launcher.OK), launcherDetail)

	engineDetail := report.Engine.Detail
	if report.Engine.OK {
		engineDetail = report.Engine.Host
		if report.Engine.APIVersion != "" {
			engineDetail = fmt.Sprintf("%s (api %s)", report.Engine.Host, report.Engine.APIVersion)
		}
	}
	fmt.Fprintf(out, "%-12s %-6s %s\n", "engine", statusWord(report.Engine.OK), engineDetail)

	for _, status := range report.Presets {
		fmt.Fprintf(out, "%-12s %-6s %s\n", status.Name, statusWord(status.OK), status.Detail)
	}
}

// statusWord renders a check outcome for the text table.
func statusWord(ok bool) string {
	if ok {
		return "ok"
	}
	return "down"
}
