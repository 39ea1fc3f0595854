package preset

import (
	"fmt"
	"slices"

	"github.com/podkit/podkit/internal/compose"
)

// BuildFunc contributes one preset's option groups, probing the host
// for preconditions first. On error the list must be untouched.
type BuildFunc func(host Host, list *compose.OptionList) error

// Info describes a registered preset for listings and diagnostics.
type Info struct {
	// Name is the preset name, without the "--" flag prefix.
	Name string `json:"name"`

	// Summary is a one-line description shown in listings and usage.
	Summary string `json:"summary"`
}

// Registry maps preset names to their generators against a fixed Host.
// It implements compose.Resolver.
type Registry struct {
	host    Host
	entries map[string]regEntry
}

type regEntry struct {
	summary string
	build   BuildFunc
}

// NewRegistry returns an empty registry bound to host.
func NewRegistry(host Host) *Registry {
	return &Registry{
		host:    host,
		entries: make(map[string]regEntry),
	}
}

// Register adds a preset under name. Registering the same name twice
// panics: a duplicate is a wiring mistake that must surface at startup,
// not a condition to handle at runtime.
func (r *Registry) Register(name, summary string, build BuildFunc) {
	if _, exists := r.entries[name]; exists {
		panic(fmt.Sprintf("preset: duplicate registration of %q", name))
	}
	r.entries[name] = regEntry{summary: summary, build: build}
}

// Resolve returns the generator for name, binding it to the registry's
// host. Implements compose.Resolver.
func (r *Registry) Resolve(name string) (compose.Generator, bool) {
	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return func(list *compose.OptionList) error {
		return entry.build(r.host, list)
	}, true
}

// Probe runs the named preset against a throwaway list and reports
// whether its preconditions hold right now. Used by diagnostics.
func (r *Registry) Probe(name string) error {
	gen, ok := r.Resolve(name)
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}
	return gen(compose.NewOptionList())
}

// Names returns all registered preset names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Infos returns all registered presets sorted by name.
func (r *Registry) Infos() []Info {
	infos := make([]Info, 0, len(r.entries))
	for _, name := range r.Names() {
		infos = append(infos, Info{Name: name, Summary: r.entries[name].summary})
	}
	return infos
}
