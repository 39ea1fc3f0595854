package config

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/podkit/podkit/internal/model"
)

// Profile bundles presets and raw launcher options under a reusable
// name, selected with the run/show --profile flag.
type Profile struct {
	// Description is shown in profile listings.
	Description string `yaml:"description,omitempty"`

	// Presets are preset names applied in order, after the
	// configuration's default presets.
	Presets []string `yaml:"presets,omitempty"`

	// Options are raw launcher options appended verbatim after the
	// profile's presets, without duplicate suppression.
	Options []string `yaml:"options,omitempty"`
}

// Profiles maps profile name to profile, as loaded from profiles.yaml.
type Profiles map[string]Profile

// profileNameRegex validates profile names: alphanumeric + hyphens
// only, must start and end with alphanumeric.
var profileNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)

// ValidateProfileName checks that name is usable as a profile name.
func ValidateProfileName(name string) error {
	if name == "" {
		return fmt.Errorf("profile name must not be empty")
	}
	if !profileNameRegex.MatchString(name) {
		return fmt.Errorf("invalid profile name %q: must contain only alphanumeric characters and hyphens, and start/end with alphanumeric", name)
	}
	return nil
}

// LoadProfiles parses the YAML profile file at path. Every profile
// name in the file is validated.
func LoadProfiles(path string) (Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(model.ExitFailure,
				fmt.Sprintf("profile file not found: %s", path), err)
		}
		return nil, fmt.Errorf("reading profile file %s: %w", path, err)
	}

	var profiles Profiles
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, model.WrapCLIError(model.ExitFailure,
			fmt.Sprintf("parsing profile file %s", path), err)
	}

	for name := range profiles {
		if err := ValidateProfileName(name); err != nil {
			return nil, model.WrapCLIError(model.ExitFailure,
				fmt.Sprintf("profile file %s", path), err)
		}
	}
	return profiles, nil
}

// LoadDefaultProfiles loads the first profile file found in the
// standard locations. No file means no profiles, not an error.
func LoadDefaultProfiles() (Profiles, error) {
	path, ok := findFile(profileFileName)
	if !ok {
		return Profiles{}, nil
	}
	return LoadProfiles(path)
}

// Lookup returns the named profile or an error listing what is
// available.
func (p Profiles) Lookup(name string) (Profile, error) {
	prof, ok := p[name]
	if !ok {
		if len(p) == 0 {
			return Profile{}, model.NewCLIError(model.ExitFailure,
				fmt.Sprintf("unknown profile %q (no profiles defined)", name))
		}
		return Profile{}, model.NewCLIError(model.ExitFailure,
			fmt.Sprintf("unknown profile %q (available: %s)", name, strings.Join(p.Names(), ", ")))
	}
	return prof, nil
}

// Names returns the profile names, sorted.
func (p Profiles) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
