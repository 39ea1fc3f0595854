package launcher

import (
	"fmt"
	"io"
	"strings"

	"github.com/podkit/podkit/internal/model"
)

// DisplayLauncher renders the launch command to Out instead of
// executing it: one line, every token individually single-quoted,
// tokens separated by spaces. The quoting is unconditional so the line
// pastes into a POSIX shell unchanged regardless of token content.
type DisplayLauncher struct {
	Out io.Writer
}

// NewDisplayLauncher returns a launcher that writes the composed
// command to out.
func NewDisplayLauncher(out io.Writer) DisplayLauncher {
	return DisplayLauncher{Out: out}
}

// Launch writes the shell-quoted command line.
func (l DisplayLauncher) Launch(inv model.Invocation) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	argv := inv.Argv()
	quoted := make([]string, len(argv))
	for i, tok := range argv {
		quoted[i] = shellQuote(tok)
	}

	if _, err := fmt.Fprintln(l.Out, strings.Join(quoted, " ")); err != nil {
		return model.WrapCLIError(model.ExitFailure, "writing command line", err)
	}
	return nil
}

// shellQuote wraps tok in single quotes. An embedded single quote
// closes the quoting, emits an escaped quote, and reopens it, which is
// the portable POSIX spelling.
func shellQuote(tok string) string {
	return "'" + strings.ReplaceAll(tok, "'", `'\''`) + "'"
}
