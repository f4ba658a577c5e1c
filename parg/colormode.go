package parg

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// ColorMode controls when diagnostics are rendered with ANSI colors.
type ColorMode int

const (
	// ColorAuto enables color when stderr is a terminal.
	ColorAuto ColorMode = iota
	// ColorAutoStdout enables color when stdout is a terminal.
	ColorAutoStdout
	// ColorAlways enables color unconditionally.
	ColorAlways
	// ColorNever disables color unconditionally.
	ColorNever
)

// DefaultColorMode is used for errors that don't set an explicit mode.
var DefaultColorMode = ColorAuto

// UseColor reports whether this mode resolves to colored output right now.
func (m ColorMode) UseColor() bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAutoStdout:
		return isTerminal(os.Stdout)
	default:
		return isTerminal(os.Stderr)
	}
}

// String returns the textual form accepted by FromArg.
func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	case ColorAutoStdout:
		return "auto-stdout"
	default:
		return "auto"
	}
}

// FromArg parses "always", "never", "auto" or "auto-stdout".
func (m *ColorMode) FromArg(arg string) error {
	switch arg {
	case "always":
		*m = ColorAlways
	case "never":
		*m = ColorNever
	case "auto":
		*m = ColorAuto
	case "auto-stdout":
		*m = ColorAutoStdout
	default:
		return ErrorFromMsg(
			KindParseFailed,
			fmt.Sprintf("Invalid color mode `%s`.", arg),
			arg,
		).WithHint("Expected `always`, `never`, `auto` or `auto-stdout`.")
	}
	return nil
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
