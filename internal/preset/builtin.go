package preset

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/podkit/podkit/internal/compose"
)

// Well-known host paths probed by the built-in presets.
const (
	libvirtRunDir = "/run/libvirt"
	x11SocketDir  = "/tmp/.X11-unix"
	driDeviceDir  = "/dev/dri"
	machineIDFile = "/etc/machine-id"
)

// uidMapExtent is the size of the subordinate ID range mapped beyond
// the calling user, matching the default allocation in /etc/subuid.
const uidMapExtent = 65536

// NewBuiltinRegistry returns a registry bound to host with every stock
// preset registered.
func NewBuiltinRegistry(host Host) *Registry {
	r := NewRegistry(host)
	r.Register("homedir", "mount the home directory and start in the current working directory", buildHomedir)
	r.Register("libvirtd", "expose the host libvirt control sockets", buildLibvirtd)
	r.Register("map-user", "map the container root user onto the calling user", buildMapUser)
	r.Register("pulseaudio", "connect to the host PulseAudio server", buildPulseaudio)
	r.Register("ssh-agent", "forward the running SSH agent socket", buildSSHAgent)
	r.Register("utf8", "force a UTF-8 locale inside the container", buildUTF8)
	r.Register("wayland", "expose the active Wayland display socket", buildWayland)
	r.Register("x11", "expose the X11 server socket and DISPLAY", buildX11)
	return r
}

// buildHomedir mounts the caller's home directory at the same path and
// starts the container in the current working directory.
func buildHomedir(host Host, list *compose.OptionList) error {
	home, err := host.HomeDir()
	if err != nil {
		return fmt.Errorf("cannot determine home directory: %w", err)
	}
	cwd, err := host.WorkingDir()
	if err != nil {
		return fmt.Errorf("cannot determine working directory: %w", err)
	}

	list.Add("--volume", home+":"+home)
	list.Add("--workdir", cwd)
	list.Add("--env", "HOME="+home)
	return nil
}

// buildLibvirtd exposes the libvirt runtime directory so tools inside
// the container can reach the host daemon over its unix sockets.
func buildLibvirtd(host Host, list *compose.OptionList) error {
	if !host.IsDir(libvirtRunDir) {
		return fmt.Errorf("libvirt runtime directory %s not found (is libvirtd running?)", libvirtRunDir)
	}

	list.Add("--volume", libvirtRunDir+":"+libvirtRunDir)
	return nil
}

// buildMapUser maps container root onto the calling user so files
// created as root inside land owned by the caller outside. The three
// ranges cover root, the IDs below the caller, and the remainder of
// the subordinate block.
func buildMapUser(host Host, list *compose.OptionList) error {
	uid := host.UID()

	list.Add("--uidmap", fmt.Sprintf("%d:0:1", uid))
	list.Add("--uidmap", fmt.Sprintf("0:1:%d", uid))
	list.Add("--uidmap", fmt.Sprintf("%d:%d:%d", uid+1, uid+1, uidMapExtent-uid))
	list.Add("--security-opt", "label=disable")
	return nil
}

// buildPulseaudio mounts the PulseAudio native socket at the same path
// inside the container. The machine-id mount lets clients pick the
// per-machine default server and cookie.
func buildPulseaudio(host Host, list *compose.OptionList) error {
	runtimeDir := host.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return errors.New("XDG_RUNTIME_DIR is not set")
	}
	sock := filepath.Join(runtimeDir, "pulse", "native")
	if !host.IsSocket(sock) {
		return fmt.Errorf("PulseAudio socket %s not found (is the sound server running?)", sock)
	}

	list.Add("--volume", sock+":"+sock)
	list.Add("--volume", machineIDFile+":"+machineIDFile)
	return nil
}

// buildSSHAgent forwards the SSH agent socket and points SSH_AUTH_SOCK
// inside the container at the mounted path.
func buildSSHAgent(host Host, list *compose.OptionList) error {
	sock := host.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return errors.New("SSH_AUTH_SOCK is not set (is an SSH agent running?)")
	}
	if !host.IsSocket(sock) {
		return fmt.Errorf("SSH agent socket %s not found", sock)
	}

	list.Add("--volume", sock+":"+sock)
	list.Add("--env", "SSH_AUTH_SOCK="+sock)
	return nil
}

// buildUTF8 forces a UTF-8 locale and carries the host terminal type
// through when one is set.
func buildUTF8(host Host, list *compose.OptionList) error {
	list.Add("--env", "LANG=C.UTF-8")
	if term := host.Getenv("TERM"); term != "" {
		list.Add("--env", "TERM="+term)
	}
	return nil
}

// buildWayland exposes the compositor socket named by WAYLAND_DISPLAY.
// The display value is a path relative to XDG_RUNTIME_DIR unless it is
// already absolute, per the Wayland client conventions. The lock file
// rides along because clients probe it before connecting.
func buildWayland(host Host, list *compose.OptionList) error {
	runtimeDir := host.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return errors.New("XDG_RUNTIME_DIR is not set")
	}
	display := host.Getenv("WAYLAND_DISPLAY")
	if display == "" {
		return errors.New("WAYLAND_DISPLAY is not set (is a Wayland compositor running?)")
	}
	sock := display
	if !filepath.IsAbs(sock) {
		sock = filepath.Join(runtimeDir, display)
	}
	lock := sock + ".lock"
	if !host.IsSocket(sock) {
		return fmt.Errorf("Wayland socket %s not found", sock)
	}
	if !host.Exists(lock) {
		return fmt.Errorf("Wayland lock file %s not found", lock)
	}

	list.Add("--env", "XDG_RUNTIME_DIR="+runtimeDir)
	list.Add("--env", "WAYLAND_DISPLAY="+display)
	list.Add("--volume", sock+":"+sock)
	list.Add("--volume", lock+":"+lock)
	return nil
}

// buildX11 exposes the X11 socket directory and DISPLAY. SELinux
// labeling is disabled because the socket directory is shared, and the
// render nodes are passed through when the host has a GPU.
func buildX11(host Host, list *compose.OptionList) error {
	display := host.Getenv("DISPLAY")
	if display == "" {
		return errors.New("DISPLAY is not set (is an X server running?)")
	}
	if !host.IsDir(x11SocketDir) {
		return fmt.Errorf("X11 socket directory %s not found", x11SocketDir)
	}

	list.Add("--env", "DISPLAY="+display)
	list.Add("--volume", x11SocketDir+":"+x11SocketDir)
	list.Add("--security-opt", "label=disable")
	if host.Exists(driDeviceDir) {
		list.Add("--device", driDeviceDir)
	}
	return nil
}
