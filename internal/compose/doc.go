// Package compose implements the option-composition engine for the
// podkit CLI: the growing launcher option list and the driver that
// walks the run command's token sequence.
//
// The engine has two halves:
//
//   - OptionList is the single mutable, ordered token sequence for one
//     run. Its Add operation inserts a fixed-arity option group and
//     silently suppresses the insert when an equal contiguous window is
//     already present anywhere in the list, so presets can contribute
//     overlapping groups (e.g. two presets both needing
//     "--security-opt label=disable") without producing duplicates.
//
//   - Driver walks the raw command-line tokens in order, applying preset
//     generators against the shared OptionList and collecting passthrough
//     arguments after the "--" separator. Flag order is semantic (the
//     tokens bypass cobra's flag parsing), and the first generator
//     failure aborts the whole run with no partial output.
//
// Composition is strictly single-threaded: generators run to completion
// one after another, and the Driver's loop is the only writer of the
// OptionList. The finished token sequence is handed off as a copy.
package compose
