package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

// fder is implemented by *os.File; other writers (e.g. bytes.Buffer in
// tests) simply never get colored.
type fder interface {
	Fd() uintptr
}

// supportsColor reports whether w is a terminal that understands ANSI
// escapes, the same gate funxy's term builtins use before emitting color.
func supportsColor(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const (
	ansiRed   = "\x1b[31;1m"
	ansiReset = "\x1b[0m"
)

// Print writes a single formatted diagnostic to w: kind, message, and a
// source excerpt with a caret when a position and excerpt are available
// (§7 "a single formatted error containing kind, message, and source
// excerpt when position is available").
func Print(w io.Writer, err *DiagnosticError) {
	color := supportsColor(w)
	label := string(err.Code)
	if color {
		label = ansiRed + label + ansiReset
	}
	fmt.Fprintf(w, "%s: %s\n", label, err.Message)
	if !err.Pos.IsValid() {
		return
	}
	fmt.Fprintf(w, "  --> %s\n", err.Pos)
	if err.Excerpt == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", err.Excerpt)
	indent := err.Pos.Column - 1
	if indent < 0 {
		indent = 0
	}
	caret := strings.Repeat(" ", 4+indent) + "^"
	if color {
		caret = ansiRed + caret + ansiReset
	}
	fmt.Fprintln(w, caret)
}

// PrintAll prints every diagnostic in order to os.Stderr, prefixed with the
// run id that produced them so multiple invocations' output (e.g.
// concatenated build logs) can be told apart without re-running anything.
func PrintAll(runID uuid.UUID, errs []*DiagnosticError) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "run %s: %d diagnostic(s)\n", runID, len(errs))
	for _, e := range errs {
		Print(os.Stderr, e)
	}
}
