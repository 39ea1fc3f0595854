//go:build !linux

package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/podkit/podkit/internal/model"
)

// Launch runs the launcher command as a foreground child wired to the
// caller's standard streams. A non-zero child exit comes back as an
// ExitStatusError so the CLI can adopt the status as its own, matching
// the process-replacement behavior on linux.
func (ExecLauncher) Launch(inv model.Invocation) error {
	path, argv, err := resolveLauncher(inv)
	if err != nil {
		return err
	}

	cmd := exec.Command(path, argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			return &ExitStatusError{Status: exitErr.ExitCode()}
		}
		return model.WrapCLIError(model.ExitFailure,
			fmt.Sprintf("running %s", path), err)
	}
	return nil
}
