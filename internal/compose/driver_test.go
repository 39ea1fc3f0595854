package compose

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podkit/podkit/internal/model"
)

// stubResolver is a minimal Resolver backed by a map, standing in for
// the preset registry.
type stubResolver map[string]Generator

func (r stubResolver) Resolve(name string) (Generator, bool) {
	gen, ok := r[name]
	return gen, ok
}

// addGroup returns a generator contributing a single fixed group.
func addGroup(group ...string) Generator {
	return func(list *OptionList) error {
		list.Add(group...)
		return nil
	}
}

// failWith returns a generator that fails without touching the list.
func failWith(err error) Generator {
	return func(list *OptionList) error {
		return err
	}
}

func testResolver() stubResolver {
	return stubResolver{
		"tty":  addGroup("--tty"),
		"utf8": addGroup("--env", "LANG=C.UTF-8"),
		"x11":  addGroup("--env", "DISPLAY=:0"),
	}
}

// TestDriver_Compose_Order verifies that options come out in flag
// order and passthrough stays verbatim.
func TestDriver_Compose_Order(t *testing.T) {
	driver := NewDriver(testResolver(), DispatchStrict)

	res, err := driver.Compose(Defaults{}, []string{"--utf8", "--tty", Separator, "alpine", "sh", "-c", "id"})
	require.NoError(t, err)

	assert.Equal(t, []string{"--env", "LANG=C.UTF-8", "--tty"}, res.Options)
	assert.Equal(t, []string{"alpine", "sh", "-c", "id"}, res.Passthrough)
	assert.False(t, res.Help)
	assert.False(t, res.Verbose)
}

// TestDriver_Compose_RepeatedPreset verifies that asking for a preset
// twice re-runs its generator and the list suppresses the duplicate.
func TestDriver_Compose_RepeatedPreset(t *testing.T) {
	calls := 0
	resolver := stubResolver{
		"tty": func(list *OptionList) error {
			calls++
			list.Add("--tty")
			return nil
		},
	}
	driver := NewDriver(resolver, DispatchStrict)

	res, err := driver.Compose(Defaults{}, []string{"--tty", "--tty"})
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, []string{"--tty"}, res.Options)
}

// TestDriver_Compose_Passthrough verifies separator handling edge
// cases: preset-looking tokens after the separator are not dispatched,
// and a second separator is passthrough content.
func TestDriver_Compose_Passthrough(t *testing.T) {
	tests := []struct {
		name            string
		argv            []string
		wantOptions     []string
		wantPassthrough []string
	}{
		{
			name:            "flags after separator are forwarded",
			argv:            []string{Separator, "--tty", "--utf8"},
			wantOptions:     []string{},
			wantPassthrough: []string{"--tty", "--utf8"},
		},
		{
			name:            "second separator is literal",
			argv:            []string{"--tty", Separator, "sh", Separator, "-c"},
			wantOptions:     []string{"--tty"},
			wantPassthrough: []string{"sh", Separator, "-c"},
		},
		{
			name:            "trailing separator yields empty passthrough",
			argv:            []string{"--tty", Separator},
			wantOptions:     []string{"--tty"},
			wantPassthrough: []string{},
		},
		{
			name:            "no separator yields nil passthrough",
			argv:            []string{"--tty"},
			wantOptions:     []string{"--tty"},
			wantPassthrough: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := NewDriver(testResolver(), DispatchStrict)
			res, err := driver.Compose(Defaults{}, tt.argv)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOptions, res.Options)
			assert.Equal(t, tt.wantPassthrough, res.Passthrough)
		})
	}
}

// TestDriver_Compose_Help verifies the help short-circuit: nothing is
// composed, not even configured defaults, and help tokens after the
// separator do not count.
func TestDriver_Compose_Help(t *testing.T) {
	resolver := stubResolver{
		"boom": failWith(errors.New("must not run")),
	}

	t.Run("help before separator wins", func(t *testing.T) {
		driver := NewDriver(resolver, DispatchStrict)
		res, err := driver.Compose(Defaults{Presets: []string{"boom"}}, []string{"--boom", "--help"})
		require.NoError(t, err)
		assert.True(t, res.Help)
		assert.Empty(t, res.Options)
		assert.Empty(t, res.Passthrough)
	})

	t.Run("usage is an alias", func(t *testing.T) {
		driver := NewDriver(testResolver(), DispatchStrict)
		res, err := driver.Compose(Defaults{}, []string{"--usage"})
		require.NoError(t, err)
		assert.True(t, res.Help)
	})

	t.Run("help after separator is passthrough", func(t *testing.T) {
		driver := NewDriver(testResolver(), DispatchStrict)
		res, err := driver.Compose(Defaults{}, []string{"--tty", Separator, "--help"})
		require.NoError(t, err)
		assert.False(t, res.Help)
		assert.Equal(t, []string{"--help"}, res.Passthrough)
	})
}

// TestHasHelpToken verifies the standalone help scan used before
// configuration loading.
func TestHasHelpToken(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want bool
	}{
		{name: "help present", argv: []string{"--x11", "--help"}, want: true},
		{name: "usage present", argv: []string{"--usage"}, want: true},
		{name: "help after separator", argv: []string{Separator, "--help"}, want: false},
		{name: "no help", argv: []string{"--x11"}, want: false},
		{name: "empty", argv: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasHelpToken(tt.argv))
		})
	}
}

// TestDriver_Compose_Verbose verifies the verbose meta token in both
// spellings, and that fold mode claims "-v" as the meta token rather
// than folding it into the option list.
func TestDriver_Compose_Verbose(t *testing.T) {
	for _, flag := range []string{"--verbose", "-v"} {
		t.Run(flag, func(t *testing.T) {
			driver := NewDriver(testResolver(), DispatchStrict)
			res, err := driver.Compose(Defaults{}, []string{flag, "--tty"})
			require.NoError(t, err)
			assert.True(t, res.Verbose)
			assert.Equal(t, []string{"--tty"}, res.Options)
		})
	}

	t.Run("fold mode still claims -v", func(t *testing.T) {
		driver := NewDriver(testResolver(), DispatchFold)
		res, err := driver.Compose(Defaults{}, []string{"-v", "--rm"})
		require.NoError(t, err)
		assert.True(t, res.Verbose)
		assert.Equal(t, []string{"--rm"}, res.Options)
	})
}

// TestDriver_Compose_Strict verifies strict-mode rejection of tokens
// that match no preset.
func TestDriver_Compose_Strict(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantMsg string
	}{
		{
			name:    "unknown long flag",
			argv:    []string{"--ttty"},
			wantMsg: `unknown flag "--ttty"`,
		},
		{
			name:    "bare word",
			argv:    []string{"alpine"},
			wantMsg: `unexpected argument "alpine"`,
		},
		{
			name:    "single dash token",
			argv:    []string{"-it"},
			wantMsg: `unexpected argument "-it"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := NewDriver(testResolver(), DispatchStrict)
			res, err := driver.Compose(Defaults{}, tt.argv)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var cliErr *model.CLIError
			require.ErrorAs(t, err, &cliErr)
			assert.Equal(t, model.ExitFailure, cliErr.Code)
		})
	}
}

// TestDriver_Compose_Fold verifies fold-mode forwarding: unrecognized
// tokens land in the list verbatim, without duplicate suppression, and
// preset flags still dispatch.
func TestDriver_Compose_Fold(t *testing.T) {
	driver := NewDriver(testResolver(), DispatchFold)

	res, err := driver.Compose(Defaults{}, []string{"--rm", "--tty", "--rm", "-i", Separator, "alpine"})
	require.NoError(t, err)

	assert.Equal(t, []string{"--rm", "--tty", "--rm", "-i"}, res.Options)
	assert.Equal(t, []string{"alpine"}, res.Passthrough)
}

// TestDriver_Compose_Defaults verifies configured default presets run
// before argv flags and that unknown defaults are reported against the
// configuration.
func TestDriver_Compose_Defaults(t *testing.T) {
	t.Run("defaults apply first", func(t *testing.T) {
		driver := NewDriver(testResolver(), DispatchStrict)
		res, err := driver.Compose(Defaults{Presets: []string{"utf8"}}, []string{"--tty"})
		require.NoError(t, err)
		assert.Equal(t, []string{"--env", "LANG=C.UTF-8", "--tty"}, res.Options)
	})

	t.Run("default and flag overlap deduplicates", func(t *testing.T) {
		driver := NewDriver(testResolver(), DispatchStrict)
		res, err := driver.Compose(Defaults{Presets: []string{"utf8"}}, []string{"--utf8"})
		require.NoError(t, err)
		assert.Equal(t, []string{"--env", "LANG=C.UTF-8"}, res.Options)
	})

	t.Run("profile options follow the default presets verbatim", func(t *testing.T) {
		driver := NewDriver(testResolver(), DispatchStrict)
		defaults := Defaults{
			Presets: []string{"utf8"},
			Options: []string{"--rm", "--rm"},
		}
		res, err := driver.Compose(defaults, []string{"--tty"})
		require.NoError(t, err)
		assert.Equal(t, []string{"--env", "LANG=C.UTF-8", "--rm", "--rm", "--tty"}, res.Options)
	})

	t.Run("unknown default name", func(t *testing.T) {
		driver := NewDriver(testResolver(), DispatchStrict)
		res, err := driver.Compose(Defaults{Presets: []string{"nope"}}, nil)
		require.Error(t, err)
		assert.Nil(t, res)
		assert.Contains(t, err.Error(), `unknown preset "nope" in configured defaults`)
	})

	t.Run("failing default names the configuration", func(t *testing.T) {
		resolver := stubResolver{"agent": failWith(errors.New("socket missing"))}
		driver := NewDriver(resolver, DispatchStrict)
		_, err := driver.Compose(Defaults{Presets: []string{"agent"}}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "preset --agent (from configuration)")
		assert.Contains(t, err.Error(), "socket missing")
	})
}

// TestDriver_Compose_GeneratorFailure verifies that the first failing
// generator aborts composition with a wrapped error naming the flag.
func TestDriver_Compose_GeneratorFailure(t *testing.T) {
	cause := errors.New("DISPLAY is not set")
	resolver := stubResolver{
		"tty": addGroup("--tty"),
		"x11": failWith(cause),
	}
	driver := NewDriver(resolver, DispatchStrict)

	res, err := driver.Compose(Defaults{}, []string{"--tty", "--x11", "--tty"})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "preset --x11")
	assert.ErrorIs(t, err, cause)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitFailure, cliErr.Code)
}

// TestDriver_Compose_Empty verifies the degenerate invocation.
func TestDriver_Compose_Empty(t *testing.T) {
	driver := NewDriver(testResolver(), DispatchStrict)

	res, err := driver.Compose(Defaults{}, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Options)
	assert.Nil(t, res.Passthrough)
}

// TestParseDispatchMode covers both spellings, case folding, and the
// error path.
func TestParseDispatchMode(t *testing.T) {
	tests := []struct {
		input   string
		want    DispatchMode
		wantErr bool
	}{
		{input: "strict", want: DispatchStrict},
		{input: "fold", want: DispatchFold},
		{input: "STRICT", want: DispatchStrict},
		{input: "Fold", want: DispatchFold},
		{input: "", wantErr: true},
		{input: "loose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDispatchMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestDispatchMode_String verifies the round trip used by
// configuration reporting.
func TestDispatchMode_String(t *testing.T) {
	assert.Equal(t, "strict", DispatchStrict.String())
	assert.Equal(t, "fold", DispatchFold.String())
}
