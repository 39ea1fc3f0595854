package compose

import "slices"

// OptionList is the ordered, mutable sequence of launcher option tokens
// accumulated during one run. Tokens are opaque strings: a flag like
// "--volume", a path, and a KEY=VALUE environment string are all just
// tokens, and the list never interprets their structure.
//
// The list maintains one invariant: no option group already present as a
// contiguous window is ever appended again (see Add). Insertion order
// among distinct groups is preserved, so the first preset to contribute
// a group determines its position.
//
// An OptionList is created empty at the start of a run, mutated by
// preset generators in the Driver's sequential loop, and read once
// (as a copy) when the final invocation is assembled. It is not safe
// for concurrent use.
type OptionList struct {
	tokens []string
}

// NewOptionList creates an empty option list.
func NewOptionList() *OptionList {
	return &OptionList{}
}

// Add inserts one option group, a fixed-arity tuple of tokens that
// belong together, such as ("--env", "DISPLAY=:0") or the single-token
// group ("--tty").
//
// If the current list already contains a contiguous window of the same
// length that equals the group element-wise, the call is a no-op: the
// duplicate is silently suppressed and no error is raised. Otherwise
// the tokens are appended in order to the end of the list.
//
// The window scan works for any arity, and a matching window counts
// even when it spans the boundary between two previously inserted
// groups.
//
// An empty group is a no-op.
func (l *OptionList) Add(group ...string) {
	if len(group) == 0 {
		return
	}
	if l.Contains(group...) {
		return
	}
	l.tokens = append(l.tokens, group...)
}

// Contains reports whether the given token group occurs in the list as
// a contiguous window, element-wise equal and of the same length.
// An empty group is never contained.
func (l *OptionList) Contains(group ...string) bool {
	k := len(group)
	if k == 0 {
		return false
	}
	for i := 0; i+k <= len(l.tokens); i++ {
		if slices.Equal(l.tokens[i:i+k], group) {
			return true
		}
	}
	return false
}

// Append adds tokens verbatim to the end of the list with no duplicate
// suppression. It exists for the fold dispatch mode and for profile
// extra options, where the caller hands podkit raw launcher tokens and
// expects them forwarded untouched, repeated occurrences included.
func (l *OptionList) Append(tokens ...string) {
	l.tokens = append(l.tokens, tokens...)
}

// Len returns the number of tokens currently in the list.
func (l *OptionList) Len() int {
	return len(l.tokens)
}

// Tokens returns a copy of the accumulated token sequence. Callers may
// mutate the returned slice without affecting the list.
func (l *OptionList) Tokens() []string {
	out := make([]string, len(l.tokens))
	copy(out, l.tokens)
	return out
}
