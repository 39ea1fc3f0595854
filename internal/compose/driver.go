package compose

import (
	"fmt"
	"strings"

	"github.com/podkit/podkit/internal/model"
)

// Separator is the token that ends preset dispatch: everything after it
// is passthrough, forwarded to the launcher verbatim and never
// deduplicated. The separator itself is consumed.
const Separator = "--"

// Meta tokens recognized by the Driver in addition to preset flags.
// They are handled here rather than by cobra because the run/show
// commands disable cobra's flag parsing to keep token order semantic.
const (
	helpFlag    = "--help"
	usageFlag   = "--usage"
	verboseFlag = "--verbose"
	verboseAbbr = "-v"
)

// DispatchMode selects how the Driver treats tokens that are neither a
// recognized preset flag, a meta token, nor the separator.
type DispatchMode int

const (
	// DispatchStrict rejects any unrecognized token before the
	// separator with an error naming it. This is the default: launcher
	// arguments must be placed after "--", so a typo in a preset flag
	// can never silently leak into the launch command.
	DispatchStrict DispatchMode = iota

	// DispatchFold appends unrecognized tokens to the option list
	// verbatim, with no duplicate suppression. This mode lets callers
	// mix raw launcher options between preset flags, at the cost of
	// typo detection.
	DispatchFold
)

// String returns the configuration spelling of the dispatch mode.
func (m DispatchMode) String() string {
	switch m {
	case DispatchFold:
		return "fold"
	default:
		return "strict"
	}
}

// ParseDispatchMode converts a configuration string to a DispatchMode.
// Returns an error if the string matches neither mode.
func ParseDispatchMode(s string) (DispatchMode, error) {
	switch strings.ToLower(s) {
	case "strict":
		return DispatchStrict, nil
	case "fold":
		return DispatchFold, nil
	default:
		return DispatchStrict, fmt.Errorf("invalid dispatch mode: %q (valid: strict, fold)", s)
	}
}

// Generator contributes the option groups of one preset to the shared
// OptionList. A generator must check every precondition before its
// first Add call: on failure it returns a descriptive error and the
// list is guaranteed untouched by that preset.
type Generator func(list *OptionList) error

// Resolver maps a preset name (the flag without its "--" prefix) to its
// generator. The preset registry implements this; tests substitute
// stub tables.
type Resolver interface {
	Resolve(name string) (Generator, bool)
}

// Defaults carries configuration-level inputs applied before any token
// from the command line: preset names from the config file or a
// selected profile, and raw profile options appended verbatim after
// those presets.
type Defaults struct {
	Presets []string
	Options []string
}

// Result is the outcome of a successful composition walk.
type Result struct {
	// Options is a copy of the final option list in first-contributed
	// order.
	Options []string

	// Passthrough holds the tokens after the separator, verbatim.
	Passthrough []string

	// Help is true when --help/--usage appeared before the separator.
	// The caller prints usage and exits 0; Options and Passthrough are
	// empty because nothing was composed.
	Help bool

	// Verbose is true when --verbose/-v appeared before the separator.
	Verbose bool
}

// Driver applies preset generators against a shared OptionList in the
// exact order the presets were requested, then collects passthrough
// arguments. It is the sole writer of the list for the run's duration.
type Driver struct {
	resolver Resolver
	mode     DispatchMode
}

// NewDriver creates a Driver using the given preset resolver and
// dispatch mode.
func NewDriver(resolver Resolver, mode DispatchMode) *Driver {
	return &Driver{resolver: resolver, mode: mode}
}

// HasHelpToken reports whether argv contains --help or --usage before
// the separator. Compose performs the same scan itself; the helper
// exists so callers can honor help before doing any other work, such
// as reading configuration files.
func HasHelpToken(argv []string) bool {
	for _, tok := range argv {
		if tok == Separator {
			return false
		}
		if tok == helpFlag || tok == usageFlag {
			return true
		}
	}
	return false
}

// Compose runs the full composition for one invocation.
//
// defaults come from the configuration file and the selected profile;
// they are applied first, in order, before any flag from argv. argv is
// the raw token sequence of the run/show command.
//
// The walk is a small state machine:
//
//   - "--" ends dispatch; the remaining tokens become Passthrough.
//   - "--help"/"--usage" (anywhere before the separator) short-circuits
//     the whole run: no generator executes, not even for defaults, and
//     the result carries Help=true.
//   - "--verbose"/"-v" toggles the Verbose flag and composes nothing.
//   - A recognized preset flag invokes its generator against the shared
//     list. Requesting a preset twice runs its generator twice; the
//     list's duplicate-window suppression makes the second contribution
//     a no-op.
//   - Anything else is handled per the dispatch mode: rejected
//     (strict) or appended to the list verbatim (fold).
//
// The first generator failure aborts composition: Compose returns the
// error and no Result, so a partial option list can never escape.
func (d *Driver) Compose(defaults Defaults, argv []string) (*Result, error) {
	res := &Result{}

	// Help wins over everything else on the line and leaves the option
	// list untouched, so the scan happens before any generator
	// (including configured defaults) gets a chance to run.
	if HasHelpToken(argv) {
		res.Help = true
		return res, nil
	}

	list := NewOptionList()

	// Configured default presets come first so explicit flags layer on
	// top of them. A name here that matches no preset is a
	// configuration error, reported against the config rather than the
	// command line. Profile options follow the presets verbatim.
	for _, name := range defaults.Presets {
		gen, ok := d.resolver.Resolve(name)
		if !ok {
			return nil, model.NewCLIError(model.ExitFailure,
				fmt.Sprintf("unknown preset %q in configured defaults", name))
		}
		if err := gen(list); err != nil {
			return nil, model.WrapCLIError(model.ExitFailure,
				fmt.Sprintf("preset --%s (from configuration)", name), err)
		}
	}
	list.Append(defaults.Options...)

	for i := 0; i < len(argv); i++ {
		tok := argv[i]

		if tok == Separator {
			// Everything after the separator is passthrough. Copied so
			// the Result does not alias the caller's argv slice.
			rest := argv[i+1:]
			res.Passthrough = make([]string, len(rest))
			copy(res.Passthrough, rest)
			break
		}

		if tok == verboseFlag || tok == verboseAbbr {
			res.Verbose = true
			continue
		}

		if name, isFlag := strings.CutPrefix(tok, "--"); isFlag {
			if gen, ok := d.resolver.Resolve(name); ok {
				if err := gen(list); err != nil {
					return nil, model.WrapCLIError(model.ExitFailure,
						fmt.Sprintf("preset %s", tok), err)
				}
				continue
			}
			if d.mode == DispatchFold {
				list.Append(tok)
				continue
			}
			return nil, model.NewCLIError(model.ExitFailure,
				fmt.Sprintf("unknown flag %q", tok))
		}

		// Not a long flag: a bare word or a single-dash token.
		if d.mode == DispatchFold {
			list.Append(tok)
			continue
		}
		return nil, model.NewCLIError(model.ExitFailure,
			fmt.Sprintf("unexpected argument %q (pass launcher arguments after %q)", tok, Separator))
	}

	res.Options = list.Tokens()
	return res, nil
}
