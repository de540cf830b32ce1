package testing

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Status is the outcome of running a single fixture.
type Status string

const (
	StatusPassed Status = "PASS"
	StatusFailed Status = "FAIL"
	StatusError  Status = "ERROR"
)

// Diff records one stage whose actual output did not match its expected
// file.
type Diff struct {
	Stage    Stage
	Expected string
	Actual   string
}

// Result is the outcome of running one fixture.
type Result struct {
	Name   string
	Path   string
	Status Status
	Error  error
	Diffs  []Diff
}

// Summary aggregates every fixture's Result from one Run.
type Summary struct {
	Results  []*Result
	Duration time.Duration
	Passed   int
	Failed   int
	Errors   int
}

// ComputeTotals tallies Results into Passed/Failed/Errors.
func (s *Summary) ComputeTotals() {
	for _, r := range s.Results {
		switch r.Status {
		case StatusPassed:
			s.Passed++
		case StatusFailed:
			s.Failed++
		case StatusError:
			s.Errors++
		}
	}
}

// Success reports whether every fixture passed.
func (s *Summary) Success() bool {
	return s.Failed == 0 && s.Errors == 0
}

// OutputConfig configures an Output formatter.
type OutputConfig struct {
	Writer   io.Writer
	UseColor bool
}

// Output formats and prints fixture results in go test's RUN/PASS/FAIL
// style, grounded on the teacher's testing/output.go.
type Output struct {
	w        io.Writer
	useColor bool
}

// NewOutput creates a new Output formatter.
func NewOutput(cfg OutputConfig) *Output {
	return &Output{w: cfg.Writer, useColor: cfg.UseColor}
}

// PrintResults renders every result in summary followed by the overall
// pass/fail line.
func (o *Output) PrintResults(summary *Summary) {
	for _, r := range summary.Results {
		o.printResult(r)
	}
	o.printSummary(summary)
}

func (o *Output) printResult(r *Result) {
	fmt.Fprintf(o.w, "=== RUN   %s\n", r.Name)

	var statusStr string
	switch r.Status {
	case StatusPassed:
		statusStr = o.colorize(color.FgGreen, "--- PASS:")
	case StatusFailed:
		statusStr = o.colorize(color.FgRed, "--- FAIL:")
	default:
		statusStr = o.colorize(color.FgRed, "--- ERROR:")
	}
	fmt.Fprintf(o.w, "%s %s\n", statusStr, r.Name)

	if r.Error != nil {
		fmt.Fprintf(o.w, "    %v\n", r.Error)
	}
	for _, d := range r.Diffs {
		o.printDiff(r, &d)
	}
}

func (o *Output) printDiff(r *Result, d *Diff) {
	fmt.Fprintf(o.w, "    %s:%s\n", r.Path, d.Stage)
	fmt.Fprintf(o.w, "        %s: %s\n", o.colorize(color.FgGreen, "want"), oneLine(d.Expected))
	fmt.Fprintf(o.w, "        %s:  %s\n", o.colorize(color.FgRed, "got"), oneLine(d.Actual))
}

func (o *Output) printSummary(summary *Summary) {
	fmt.Fprintln(o.w)
	if summary.Success() {
		fmt.Fprintln(o.w, o.colorize(color.FgGreen, "PASS"))
	} else {
		fmt.Fprintln(o.w, o.colorize(color.FgRed, "FAIL"))
	}

	var parts []string
	if summary.Passed > 0 {
		parts = append(parts, o.colorize(color.FgGreen, fmt.Sprintf("%d passed", summary.Passed)))
	}
	if summary.Failed > 0 {
		parts = append(parts, o.colorize(color.FgRed, fmt.Sprintf("%d failed", summary.Failed)))
	}
	if summary.Errors > 0 {
		parts = append(parts, o.colorize(color.FgRed, fmt.Sprintf("%d errors", summary.Errors)))
	}
	if len(parts) > 0 {
		fmt.Fprintln(o.w, strings.Join(parts, ", "))
	}
}

func (o *Output) colorize(attr color.Attribute, s string) string {
	if !o.useColor {
		return s
	}
	return color.New(attr).Sprint(s)
}

func oneLine(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\\n")
}
