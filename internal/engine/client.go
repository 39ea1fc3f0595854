package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/docker/docker/client"

	"github.com/podkit/podkit/internal/model"
)

// defaultPingTimeout bounds the reachability check so a wedged daemon
// cannot hang the diagnosis.
const defaultPingTimeout = 5 * time.Second

// Client wraps the Docker Engine SDK client. Socket detection prefers
// podman, since that is the default launcher, but a plain docker setup
// works the same way.
type Client struct {
	inner *client.Client
	host  string
}

// NewClient creates an engine client with automatic socket detection.
func NewClient() (*Client, error) {
	host, err := DetectHost()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitFailure,
			"container engine socket not found", err)
	}
	return NewClientWithHost(host)
}

// NewClientWithHost creates an engine client for the given connection
// string, e.g. "unix:///run/podman/podman.sock".
func NewClientWithHost(host string) (*Client, error) {
	// API version negotiation keeps one binary compatible with
	// whatever engine version is listening.
	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitFailure,
			fmt.Sprintf("creating engine client for host %q", host), err)
	}
	return &Client{inner: c, host: host}, nil
}

// DetectHost returns the connection string for the local engine API.
// Environment overrides win: CONTAINER_HOST (the podman convention)
// then DOCKER_HOST, taken as-is. Otherwise the first existing socket
// from the candidate list is used.
func DetectHost() (string, error) {
	if host := os.Getenv("CONTAINER_HOST"); host != "" {
		return host, nil
	}
	if host := os.Getenv("DOCKER_HOST"); host != "" {
		return host, nil
	}
	return detectUnixSocket(socketCandidates())
}

// socketCandidates lists probe paths from most to least preferred:
// rootless podman, system podman, then the docker socket.
func socketCandidates() []string {
	var paths []string
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		paths = append(paths, filepath.Join(runtimeDir, "podman", "podman.sock"))
	}
	return append(paths,
		"/run/podman/podman.sock",
		"/var/run/docker.sock",
	)
}

// detectUnixSocket returns the host URI for the first path that exists.
// Existence is all that is checked here; Ping verifies that the engine
// actually answers.
func detectUnixSocket(paths []string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf("no engine socket found at any of %v (is the podman service or docker running?)", paths)
}

// Host returns the connection string the client was created with.
func (c *Client) Host() string {
	return c.host
}

// Ping verifies the engine is reachable and responsive, waiting at
// most defaultPingTimeout.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	if _, err := c.inner.Ping(pingCtx); err != nil {
		return model.WrapCLIError(model.ExitFailure,
			fmt.Sprintf("container engine at %s is not responding", c.host), err)
	}
	return nil
}

// Close releases the client's resources. Safe to call more than once.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}

// Inner exposes the underlying SDK client for operations the wrapper
// does not cover.
func (c *Client) Inner() *client.Client {
	return c.inner
}
