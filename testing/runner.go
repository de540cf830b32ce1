package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deepnoodle-ai/exprvm/builtins"
	"github.com/deepnoodle-ai/exprvm/compiler"
	"github.com/deepnoodle-ai/exprvm/dis"
	"github.com/deepnoodle-ai/exprvm/lexer"
	"github.com/deepnoodle-ai/exprvm/parser"
	"github.com/deepnoodle-ai/exprvm/vm"
	multierror "github.com/hashicorp/go-multierror"
)

// Config holds configuration for a fixture run.
type Config struct {
	// Dirs lists directories to search for `*.expr` fixtures. Defaults to
	// the current directory.
	Dirs []string
}

// DiscoverFixtures finds every `*.expr` file under cfg.Dirs (non-recursive,
// matching the teacher's DiscoverTestFiles shape but over one flat extension
// instead of a `_test.` suffix convention).
func DiscoverFixtures(dirs []string) ([]string, error) {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	var files []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".expr") {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
	}
	return files, nil
}

// Run executes every fixture discovered under cfg and returns a Summary.
func Run(cfg *Config) (*Summary, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	files, err := DiscoverFixtures(cfg.Dirs)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	start := time.Now()
	for _, path := range files {
		summary.Results = append(summary.Results, runFixture(path))
	}
	summary.Duration = time.Since(start)
	summary.ComputeTotals()
	return summary, nil
}

func loadExpected(exprPath string, stage Stage) (string, string, bool) {
	raw, err := os.ReadFile(exprPath + "." + string(stage))
	if err != nil {
		return "", "", false
	}
	flagsLine, body := ParseExpected(string(raw))
	return flagsLine, body, true
}

// runFixture runs the pipeline over one `.expr` file and diffs actual output
// against whichever expected-output files exist alongside it.
func runFixture(path string) *Result {
	name := strings.TrimSuffix(filepath.Base(path), ".expr")
	result := &Result{Name: name, Path: path}

	src, err := os.ReadFile(path)
	if err != nil {
		result.Status = StatusError
		result.Error = err
		return result
	}
	fixture := &Fixture{Name: name, Path: path, Source: string(src)}

	for _, stage := range []Stage{StageTokens, StageDisassembled, StageInterpreted} {
		if flagsLine, body, ok := loadExpected(path, stage); ok {
			if fixture.Expected == nil {
				fixture.Expected = map[Stage]string{}
			}
			fixture.Expected[stage] = body
			if flagsLine != "" {
				fixture.ApplyFlags(flagsLine)
			}
		}
	}

	cenv, rt := fixture.Env(builtins.Registry())

	if expected, ok := fixture.Expected[StageTokens]; ok {
		actual := renderTokens(fixture.Source)
		compareStage(result, StageTokens, expected, actual)
	}

	expr, perrs := parser.Parse(fixture.Source)
	bc, cerrs := compiler.Compile(expr, cenv)

	var merr *multierror.Error
	for _, e := range perrs {
		merr = multierror.Append(merr, e)
	}
	for _, e := range cerrs {
		merr = multierror.Append(merr, e)
	}

	if expected, ok := fixture.Expected[StageDisassembled]; ok {
		actual := dis.Disassemble(bc, cenv)
		compareStage(result, StageDisassembled, expected, actual)
	}

	if expected, ok := fixture.Expected[StageInterpreted]; ok {
		var actual string
		if merr.ErrorOrNil() != nil {
			actual = merr.ErrorOrNil().Error()
		} else if v, err := vm.Interpret(bc, cenv, rt); err != nil {
			actual = err.Error()
		} else {
			actual = v.Display()
		}
		compareStage(result, StageInterpreted, expected, actual)
	}

	if result.Status == "" {
		result.Status = StatusPassed
	}
	return result
}

// renderTokens lexes source and renders each successfully lexed token on
// its own line via token.Token's String(), the format X.expr.tokens
// fixtures are expected to match. Lexical errors are omitted here; they
// surface instead through the interpreted stage's error text.
func renderTokens(source string) string {
	var b strings.Builder
	for _, tok := range lexer.Tokens(lexer.Lex(source)) {
		fmt.Fprintln(&b, tok.String())
	}
	return b.String()
}

func compareStage(result *Result, stage Stage, expected, actual string) {
	if strings.TrimRight(expected, "\n") == strings.TrimRight(actual, "\n") {
		return
	}
	result.Status = StatusFailed
	result.Diffs = append(result.Diffs, Diff{Stage: stage, Expected: expected, Actual: actual})
}
