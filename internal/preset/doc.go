// Package preset defines the built-in launch presets and the registry
// that maps preset flags to their generators.
//
// A preset inspects the host through the Host interface (environment
// variables, home and working directory, filesystem probes) and
// contributes option groups to a compose.OptionList. Generators check
// every precondition before their first contribution, so a failing
// preset never leaves partial options behind.
//
// The Registry implements compose.Resolver and is consulted once per
// preset flag on the command line. NewBuiltinRegistry wires up the
// stock presets; tests register their own.
package preset
