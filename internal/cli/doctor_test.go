package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podkit/podkit/internal/config"
)

// isolateEngine points engine detection at a socket that cannot exist,
// so the check fails fast and deterministically.
func isolateEngine(t *testing.T) {
	t.Helper()
	t.Setenv("CONTAINER_HOST", "unix:///nonexistent/podkit-doctor-test.sock")
}

func TestBuildDoctorReport(t *testing.T) {
	isolateHost(t)
	isolateEngine(t)

	cfg := &config.Config{Launcher: "podkit-missing-binary-2ce1 run"}
	report := buildDoctorReport(context.Background(), cfg)

	t.Run("launcher", func(t *testing.T) {
		assert.False(t, report.Launcher.OK)
		assert.Contains(t, report.Launcher.Detail, "not found in PATH")
		assert.Equal(t, "podkit-missing-binary-2ce1 run", report.Launcher.Command)
	})

	t.Run("engine", func(t *testing.T) {
		assert.False(t, report.Engine.OK)
		assert.NotEmpty(t, report.Engine.Detail)
	})

	t.Run("presets", func(t *testing.T) {
		require.Len(t, report.Presets, 8)

		byName := map[string]bool{}
		for _, status := range report.Presets {
			byName[status.Name] = status.OK
		}
		// No preconditions, so these hold on any host.
		assert.True(t, byName["map-user"])
		assert.True(t, byName["utf8"])
		// The isolated environment has no Wayland display.
		assert.False(t, byName["wayland"])
	})
}

func TestDoctorCommand_JSON(t *testing.T) {
	isolateHost(t)
	isolateEngine(t)

	out, err := execRoot(t, "doctor", "--json")
	require.NoError(t, err)

	var report doctorReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Presets, 8)
	assert.Equal(t, config.DefaultLauncher, report.Launcher.Command)
}

func TestDoctorCommand_Text(t *testing.T) {
	isolateHost(t)
	isolateEngine(t)

	out, err := execRoot(t, "doctor")
	require.NoError(t, err)

	assert.Contains(t, out, "COMPONENT")
	assert.Contains(t, out, "launcher")
	assert.Contains(t, out, "engine")
	assert.Contains(t, out, "wayland")
}

// TestPrintDoctorText renders a crafted report and checks the healthy
// and unhealthy row formats, including the negotiated API version on a
// reachable engine.
func TestPrintDoctorText(t *testing.T) {
	report := &doctorReport{
		Launcher: launcherStatus{Command: "podman run", Path: "/usr/bin/podman", OK: true},
		Engine:   engineStatus{Host: "unix:///run/podman/podman.sock", APIVersion: "1.47", OK: true},
		Presets: []presetStatus{
			{Name: "utf8", OK: true},
			{Name: "wayland", OK: false, Detail: "WAYLAND_DISPLAY is not set"},
		},
	}

	var buf bytes.Buffer
	printDoctorText(&buf, report)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "podman run (/usr/bin/podman)")
	assert.Contains(t, lines[2], "unix:///run/podman/podman.sock (api 1.47)")
	assert.Contains(t, lines[3], "ok")
	assert.Contains(t, lines[4], "down")
	assert.Contains(t, lines[4], "WAYLAND_DISPLAY is not set")
}

func TestStatusWord(t *testing.T) {
	assert.Equal(t, "ok", statusWord(true))
	assert.Equal(t, "down", statusWord(false))
}
