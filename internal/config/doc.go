// Package config loads podkit's configuration and profile files.
//
// The configuration file (config.json) uses JSONC, so comments and
// trailing commas are tolerated via github.com/tidwall/jsonc before
// parsing with the standard encoding/json library. It names the
// launcher command, the dispatch mode for unrecognized tokens, and
// preset names applied on every run.
//
// Profiles (profiles.yaml) bundle presets and raw launcher options
// under reusable names for the run/show --profile flag.
//
// Both files are searched in $XDG_CONFIG_HOME/podkit, then
// ~/.config/podkit. A missing file is not an error: built-in defaults
// apply.
package config
