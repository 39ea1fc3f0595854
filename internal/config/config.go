package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/shlex"
	"github.com/tidwall/jsonc"

	"github.com/podkit/podkit/internal/compose"
	"github.com/podkit/podkit/internal/model"
)

// DefaultLauncher is the launch command used when the configuration
// names none.
const DefaultLauncher = "podman run"

// configFileName and profileFileName are looked up inside each
// candidate directory from configDirs.
const (
	configFileName  = "config.json"
	profileFileName = "profiles.yaml"
)

// Config is podkit's parsed configuration file. All fields are
// optional; the zero value plus DefaultLauncher is a working setup.
type Config struct {
	// Launcher is the launch command as one shell-like string, e.g.
	// "podman run" or "docker run --rm". It is split into argv words
	// with shlex, so quoted words survive.
	Launcher string `json:"launcher,omitempty"`

	// Dispatch selects how tokens matching no preset are handled
	// before the "--" separator: "strict" rejects them, "fold" appends
	// them to the option list verbatim. Empty means strict.
	Dispatch string `json:"dispatch,omitempty"`

	// Presets are preset names applied on every run, before any
	// command-line flag.
	Presets []string `json:"presets,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{Launcher: DefaultLauncher}
}

// Load reads and parses the configuration file at path. The file may
// contain JSONC comments and trailing commas. Launcher and dispatch
// values are validated here so a broken file fails at startup rather
// than mid-composition.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(model.ExitFailure,
				fmt.Sprintf("config file not found: %s", path), err)
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
		return nil, model.WrapCLIError(model.ExitFailure,
			fmt.Sprintf("parsing config file %s", path), err)
	}
	if cfg.Launcher == "" {
		cfg.Launcher = DefaultLauncher
	}

	if _, err := cfg.DispatchMode(); err != nil {
		return nil, model.WrapCLIError(model.ExitFailure,
			fmt.Sprintf("config file %s", path), err)
	}
	if _, err := cfg.LauncherArgv(); err != nil {
		return nil, model.WrapCLIError(model.ExitFailure,
			fmt.Sprintf("config file %s", path), err)
	}
	return cfg, nil
}

// LoadDefault loads the first configuration file found in the standard
// locations, or the built-in defaults when none exists.
func LoadDefault() (*Config, error) {
	path, ok := Find()
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Find returns the path of the first configuration file present in the
// standard locations and whether one was found.
func Find() (string, bool) {
	return findFile(configFileName)
}

// DispatchMode returns the configured dispatch mode; an empty field
// means strict.
func (c *Config) DispatchMode() (compose.DispatchMode, error) {
	if c.Dispatch == "" {
		return compose.DispatchStrict, nil
	}
	return compose.ParseDispatchMode(c.Dispatch)
}

// LauncherArgv splits the launcher command string into argv words,
// honoring shell quoting.
func (c *Config) LauncherArgv() ([]string, error) {
	command := c.Launcher
	if command == "" {
		command = DefaultLauncher
	}
	words, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("invalid launcher command %q: %w", command, err)
	}
	if len(words) == 0 {
		return nil, errors.New("launcher command is empty")
	}
	return words, nil
}

// configDirs lists candidate podkit configuration directories in
// priority order: $XDG_CONFIG_HOME first, then the home fallback the
// XDG spec defines.
func configDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "podkit"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "podkit"))
	}
	return dirs
}

// findFile returns the first existing file with the given name under
// the candidate directories.
func findFile(name string) (string, bool) {
	for _, dir := range configDirs() {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}
