// Command exprvm is the example binary for the expression language: it
// evaluates a single `.expr` file at any pipeline stage, or drops into a
// line-oriented REPL when no file is given. Grounded on the teacher's
// cmd/risor/main.go entry-point shape, scaled down from its cobra-based
// multi-command surface to the single flag-parsed command spec.md §6 names.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(os.Stderr)
	w := newWriter(os.Stdout, os.Stderr, opts.NoColor)

	if opts.Path == "" {
		if err := runRepl(logger, w); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := runFile(logger, w, opts); err != nil {
		os.Exit(1)
	}
}

// newLogger builds a zerolog.Logger writing to w, using a human-readable
// console writer when w is a terminal and structured JSON otherwise,
// matching the teacher's CLI logger setup (risor.go, cmd/risor/*.go).
func newLogger(w *os.File) zerolog.Logger {
	if isatty.IsTerminal(w.Fd()) {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: false}).With().Timestamp().Logger()
	}
	return zerolog.New(w).With().Timestamp().Logger()
}
