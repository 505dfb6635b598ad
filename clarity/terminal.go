package clarity

import (
	"io"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

type fdWriter interface {
	Fd() uintptr
}

// IsTerminal reports whether w is an interactive terminal, including the
// Cygwin and MSYS pseudo terminals on Windows.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	fd := f.Fd()
	return term.IsTerminal(int(fd)) || isatty.IsCygwinTerminal(fd)
}

// TerminalWidth returns the column count of w, or 0 when it is not a
// terminal.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(fdWriter)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}
