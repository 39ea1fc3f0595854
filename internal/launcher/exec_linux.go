//go:build linux

package launcher

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/podkit/podkit/internal/model"
)

// Launch replaces the current process with the launcher command. On
// success it never returns: the launcher inherits the standard
// streams and owns the exit status from here on.
func (ExecLauncher) Launch(inv model.Invocation) error {
	path, argv, err := resolveLauncher(inv)
	if err != nil {
		return err
	}
	if err := unix.Exec(path, argv, os.Environ()); err != nil {
		return model.WrapCLIError(model.ExitFailure,
			fmt.Sprintf("exec %s", path), err)
	}
	return nil
}
