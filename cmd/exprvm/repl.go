package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/deepnoodle-ai/exprvm/builtins"
	"github.com/deepnoodle-ai/exprvm/compiler"
	"github.com/deepnoodle-ai/exprvm/dis"
	"github.com/deepnoodle-ai/exprvm/env"
	"github.com/deepnoodle-ai/exprvm/lexer"
	"github.com/deepnoodle-ai/exprvm/object"
	"github.com/deepnoodle-ai/exprvm/parser"
	"github.com/deepnoodle-ai/exprvm/vm"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// replMode names one of the five pipeline stages the REPL can stop at,
// selected with `/mode`.
type replMode string

const (
	modeLex         replMode = "lex"
	modeParse       replMode = "parse"
	modeCompile     replMode = "compile"
	modeDisassemble replMode = "disassemble"
	modeInterpret   replMode = "interpret"
)

// repl holds the REPL's running state: the accumulated compile-time and
// runtime environments, the current pipeline-stage mode, input history, and
// the most recently interpreted value, recalled through the `@_` identifier
// per spec.md §6.
type repl struct {
	logger zerolog.Logger
	w      *writer

	mode replMode
	env  *env.Env
	rt   *env.Runtime

	last object.Value

	history []string
}

func runRepl(logger zerolog.Logger, w *writer) error {
	cenv, rt := env.BuildFromFlags(builtins.Registry(), nil, nil, nil, nil)
	r := &repl{logger: logger, w: w, mode: modeInterpret, env: cenv, rt: rt}
	return r.loop()
}

func (r *repl) loop() error {
	fmt.Fprintln(r.w.out, r.w.colorize(color.FgCyan, "exprvm REPL -- /mode, /set, /env, /exit"))

	readLine := r.defaultReader()
	if isatty.IsTerminal(os.Stdin.Fd()) {
		readLine = r.historyReader()
	}

	for {
		fmt.Fprint(r.w.out, "> ")
		line, ok, err := readLine()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history = append(r.history, line)

		if strings.HasPrefix(line, "/") {
			if r.command(line) {
				return nil
			}
			continue
		}

		r.eval(line)
	}
}

// defaultReader reads lines from stdin with bufio.Scanner, used when stdin
// is not a terminal (piped input, test harnesses).
func (r *repl) defaultReader() func() (string, bool, error) {
	scanner := bufio.NewScanner(os.Stdin)
	return func() (string, bool, error) {
		if !scanner.Scan() {
			return "", false, scanner.Err()
		}
		return scanner.Text(), true, nil
	}
}

func (r *repl) command(line string) (exit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/exit":
		return true

	case "/mode":
		if len(fields) != 2 {
			fmt.Fprintln(r.w.errOut, "usage: /mode [lex|parse|compile|disassemble|interpret]")
			return false
		}
		r.mode = replMode(fields[1])
		fmt.Fprintln(r.w.out, "mode set to", r.mode)

	case "/set":
		if len(fields) != 5 || fields[3] != "=" {
			fmt.Fprintln(r.w.errOut, "usage: /set [var|prompt|secret|client] name = value")
			return false
		}
		r.set(fields[1], fields[2], fields[4])

	case "/env":
		r.printEnv()

	default:
		fmt.Fprintln(r.w.errOut, "unknown command:", fields[0])
	}
	return false
}

func (r *repl) set(kind, name, value string) {
	switch kind {
	case "var":
		r.env.Vars = append(r.env.Vars, name)
		r.rt.Vars = append(r.rt.Vars, value)
	case "prompt":
		r.env.Prompts = append(r.env.Prompts, name)
		r.rt.Prompts = append(r.rt.Prompts, value)
	case "secret":
		r.env.Secrets = append(r.env.Secrets, name)
		r.rt.Secrets = append(r.rt.Secrets, value)
	case "client":
		r.env.ClientCtx = append(r.env.ClientCtx, env.ClientCtxDecl{Name: name})
		r.rt.ClientCtx = append(r.rt.ClientCtx, object.String(value))
	default:
		fmt.Fprintln(r.w.errOut, "unknown kind:", kind)
	}
}

func (r *repl) printEnv() {
	fmt.Fprintln(r.w.out, "vars:", r.env.Vars)
	fmt.Fprintln(r.w.out, "prompts:", r.env.Prompts)
	fmt.Fprintln(r.w.out, "secrets:", r.env.Secrets)
	var clientNames []string
	for _, c := range r.env.ClientCtx {
		clientNames = append(clientNames, c.Name)
	}
	fmt.Fprintln(r.w.out, "client-context:", clientNames)
}

// eval runs one line of input through the pipeline up to r.mode, first
// binding `@_` to the most recently interpreted value (see expandRecall).
func (r *repl) eval(line string) {
	line = r.expandRecall(line)

	switch r.mode {
	case modeLex:
		results := lexer.Lex(line)
		for _, tok := range lexer.Tokens(results) {
			r.w.value(tok.String())
		}
		if errs := lexer.Errors(results); len(errs) > 0 {
			r.w.diagnostics("<repl>", line, errs)
		}

	case modeParse:
		expr, errs := parser.Parse(line)
		r.w.value(fmt.Sprintf("%+v", expr))
		r.w.diagnostics("<repl>", line, errs)

	case modeCompile, modeDisassemble:
		expr, perrs := parser.Parse(line)
		bc, cerrs := compiler.Compile(expr, r.env)
		all := append(append([]error{}, perrs...), cerrs...)
		if len(all) > 0 {
			r.w.diagnostics("<repl>", line, all)
			return
		}
		if r.mode == modeDisassemble {
			r.w.value(dis.Disassemble(bc, r.env))
		} else {
			r.w.value(fmt.Sprintf("%d bytes", len(bc.Bytes())))
		}

	default: // modeInterpret
		expr, perrs := parser.Parse(line)
		bc, cerrs := compiler.Compile(expr, r.env)
		all := append(append([]error{}, perrs...), cerrs...)
		if len(all) > 0 {
			r.w.diagnostics("<repl>", line, all)
			return
		}
		v, err := vm.Interpret(bc, r.env, r.rt)
		if err != nil {
			r.w.diagnostics("<repl>", line, []error{err})
			return
		}
		r.last = v
		r.w.value(v.Display())
	}
}

// expandRecall makes `@_` resolve to the most recently interpreted value:
// when line mentions `@_` and a value exists, it declares (or refreshes) a
// client-context entry named `_` holding that value. The line itself is
// returned unchanged.
func (r *repl) expandRecall(line string) string {
	if r.last == nil || !strings.Contains(line, "@_") {
		return line
	}
	idx, _ := r.env.IndexOfClientCtx("_")
	if idx < 0 {
		r.env.ClientCtx = append(r.env.ClientCtx, env.ClientCtxDecl{Name: "_"})
		r.rt.ClientCtx = append(r.rt.ClientCtx, r.last)
	} else {
		r.rt.ClientCtx[idx] = r.last
	}
	return line
}
