package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects OK/Fail/Info; used by commands and tests.
func SetOutput(out, errOut io.Writer) {
	stdout, stderr = out, errOut
}

// SetColorForcing overrides terminal detection.
func SetColorForcing(force, disable bool) {
	switch {
	case disable:
		lipgloss.SetColorProfile(termenv.Ascii)
	case force:
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

func OK(msg string)   { fmt.Fprintln(stdout, current.Success.Render(current.SymOK+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(stderr, current.Error.Render(current.SymFail+" "+msg)) }
func Info(msg string) { fmt.Fprintln(stdout, current.Muted.Render(msg)) }
