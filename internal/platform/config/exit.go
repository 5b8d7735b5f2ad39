package config

import (
	"fmt"
	"io"
	"os"
)

// Exit codes used by the command-line entrypoints.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// exit is swapped in tests.
var exit = os.Exit

// Exitf writes a formatted error message to stderr and exits with ExitFailure.
func Exitf(format string, args ...any) {
	ExitCodef(ExitFailure, format, args...)
}

// ExitCodef writes a formatted error message to stderr and exits with code.
func ExitCodef(code int, format string, args ...any) {
	writeExit(os.Stderr, code, format, args...)
}

func writeExit(w io.Writer, code int, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
	if code <= 0 {
		code = ExitFailure
	}
	exit(code)
}
