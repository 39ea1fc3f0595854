package launcher

import (
	"fmt"
	"os/exec"

	"github.com/podkit/podkit/internal/model"
)

// Launcher consumes a finished invocation: it executes the launch
// command or renders it, depending on the implementation.
type Launcher interface {
	Launch(inv model.Invocation) error
}

// ExecLauncher executes the invocation for real. On linux the current
// process is replaced; elsewhere the launcher runs as a foreground
// child and its exit status is adopted. The platform-specific Launch
// implementations live in exec_linux.go and exec_other.go.
type ExecLauncher struct{}

// NewExecLauncher returns the executing launcher.
func NewExecLauncher() ExecLauncher {
	return ExecLauncher{}
}

// ExitStatusError reports a launcher process that ran to completion
// and exited non-zero. The CLI adopts the status as its own without
// printing a diagnostic; the launcher already wrote its own.
type ExitStatusError struct {
	// Status is the launcher's exit status.
	Status int
}

func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("launcher exited with status %d", e.Status)
}

// resolveLauncher validates the invocation and locates the launcher
// binary on PATH, returning the resolved path and the full argv.
func resolveLauncher(inv model.Invocation) (string, []string, error) {
	if err := inv.Validate(); err != nil {
		return "", nil, err
	}
	argv := inv.Argv()
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return "", nil, model.WrapCLIError(model.ExitFailure,
			fmt.Sprintf("launcher %q not found in PATH", argv[0]), err)
	}
	return path, argv, nil
}
