package main

import (
	"fmt"
	"io"

	"github.com/deepnoodle-ai/exprvm/errors"
	"github.com/fatih/color"
)

// writer formats pipeline results and diagnostics for the CLI and REPL,
// mirroring the teacher's cmd/risor output.go separation of "how results are
// printed" from "how they are computed".
type writer struct {
	out     io.Writer
	errOut  io.Writer
	noColor bool
}

func newWriter(out, errOut io.Writer, noColor bool) *writer {
	return &writer{out: out, errOut: errOut, noColor: noColor}
}

func (w *writer) colorize(attr color.Attribute, s string) string {
	if w.noColor {
		return s
	}
	return color.New(attr).Sprint(s)
}

func (w *writer) banner(mode string) {
	fmt.Fprintln(w.out, w.colorize(color.FgCyan, "== "+mode+" =="))
}

func (w *writer) value(s string) {
	fmt.Fprintln(w.out, s)
}

// diagnostics prints every accumulated error, with source context via
// errors.Format, one per line, in red.
func (w *writer) diagnostics(filename, source string, errs []error) {
	for _, err := range errs {
		offset := offsetOf(err)
		msg := errors.Format(filename, source, offset, err)
		fmt.Fprint(w.errOut, w.colorize(color.FgRed, msg))
	}
}

// offsetOf extracts the byte offset an error should be reported at, for the
// error kinds this pipeline produces. Errors with no natural offset (e.g. a
// bare RuntimeError with only an instruction offset) report 0.
func offsetOf(err error) int {
	switch e := err.(type) {
	case *errors.LexicalError:
		return spanStart(e.Span)
	case *errors.SyntaxError:
		return spanStart(e.Span)
	case *errors.ResolveError:
		return spanStart(e.Span)
	case *errors.TypeError:
		return spanStart(e.Span)
	case *errors.RuntimeError:
		return 0
	default:
		return 0
	}
}

// spanStart reads the "start..end" rendering a token.Span produces and
// extracts the start offset, avoiding an import of the token package here
// (errors.Spanner only guarantees String(), not field access).
func spanStart(s errors.Spanner) int {
	var start int
	fmt.Sscanf(s.String(), "%d..", &start)
	return start
}
