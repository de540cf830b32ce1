// Package testing implements the spec-fixture harness: it discovers paired
// `X.expr` / `X.expr.tokens` / `X.expr.disassembled` / `X.expr.interpreted`
// files, runs the full pipeline over each `X.expr`, and diffs actual output
// against the expected files. Grounded on the teacher's file-discovery and
// reporting shape (`testing/runner.go`, `testing/context.go`,
// `testing/output.go`), adapted from its user-defined-test-function model to
// this language's golden-file comparison model.
package testing

import (
	"strings"

	"github.com/deepnoodle-ai/exprvm/env"
	"github.com/deepnoodle-ai/exprvm/object"
)

// Stage identifies one of the three comparable pipeline outputs a fixture
// may check, per spec.md §6's fixture format.
type Stage string

const (
	StageTokens       Stage = "tokens"
	StageDisassembled Stage = "disassembled"
	StageInterpreted  Stage = "interpreted"
)

// Fixture is one `X.expr` source file paired with whichever expected-output
// files exist alongside it.
type Fixture struct {
	Name   string // base name, without the .expr suffix
	Path   string // path to the .expr file
	Source string

	Expected map[Stage]string // parsed expected file contents, sans flag line

	Vars      []string
	Prompts   []string
	Secrets   []string
	ClientCtx []string
}

// ParseExpected splits raw expected-output file contents into its optional
// leading `//`-flags line and the remainder, per spec.md §6: "Expected files
// may begin with a line starting `//` carrying CLI flags to apply when
// producing the actual output for comparison."
func ParseExpected(raw string) (flagsLine string, body string) {
	if !strings.HasPrefix(raw, "//") {
		return "", raw
	}
	nl := strings.IndexByte(raw, '\n')
	if nl < 0 {
		return strings.TrimPrefix(raw, "//"), ""
	}
	return strings.TrimSpace(strings.TrimPrefix(raw[:nl], "//")), raw[nl+1:]
}

// ApplyFlags parses a flags line of the form
// `--vars a=1 --prompts b=2 --secrets c=3 --client-context d=4` and merges
// the declared names into the Fixture's environment lists, the same
// `NAME[=VALUE]` shape env.ParseNameValue understands.
func (f *Fixture) ApplyFlags(line string) {
	fields := strings.Fields(line)
	var current *[]string
	for _, field := range fields {
		switch field {
		case "--vars":
			current = &f.Vars
			continue
		case "--prompts":
			current = &f.Prompts
			continue
		case "--secrets":
			current = &f.Secrets
			continue
		case "--client-context":
			current = &f.ClientCtx
			continue
		}
		if current != nil {
			*current = append(*current, field)
		}
	}
}

// Env builds the compile-time Env and Runtime this fixture declares, by way
// of env.BuildFromFlags.
func (f *Fixture) Env(builtins []*object.Builtin) (*env.Env, *env.Runtime) {
	return env.BuildFromFlags(builtins, f.Vars, f.Prompts, f.Secrets, f.ClientCtx)
}
