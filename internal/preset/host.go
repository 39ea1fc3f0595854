package preset

import (
	"os"
)

// Host exposes the process environment and filesystem probes that
// preset generators depend on. Production code uses NewOSHost; tests
// substitute fixed tables so scenarios like a missing Wayland socket
// are reproducible.
type Host interface {
	// Getenv returns the value of the named environment variable,
	// empty when unset.
	Getenv(key string) string

	// HomeDir returns the current user's home directory.
	HomeDir() (string, error)

	// WorkingDir returns the process working directory.
	WorkingDir() (string, error)

	// UID returns the numeric user ID of the calling process.
	UID() int

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) bool

	// IsSocket reports whether path exists and is a unix socket.
	IsSocket(path string) bool

	// Exists reports whether path exists at all.
	Exists(path string) bool
}

type osHost struct{}

// NewOSHost returns a Host backed by the real process environment and
// filesystem.
func NewOSHost() Host {
	return osHost{}
}

func (osHost) Getenv(key string) string {
	return os.Getenv(key)
}

func (osHost) HomeDir() (string, error) {
	return os.UserHomeDir()
}

func (osHost) WorkingDir() (string, error) {
	return os.Getwd()
}

func (osHost) UID() int {
	return os.Getuid()
}

func (osHost) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (osHost) IsSocket(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode()&os.ModeSocket != 0
}

func (osHost) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
