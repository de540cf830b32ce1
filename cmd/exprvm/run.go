package main

import (
	"fmt"
	"os"

	"github.com/deepnoodle-ai/exprvm/builtins"
	"github.com/deepnoodle-ai/exprvm/compiler"
	"github.com/deepnoodle-ai/exprvm/dis"
	"github.com/deepnoodle-ai/exprvm/env"
	"github.com/deepnoodle-ai/exprvm/lexer"
	"github.com/deepnoodle-ai/exprvm/parser"
	"github.com/deepnoodle-ai/exprvm/vm"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
)

// runFile reads opts.Path and runs the pipeline up to opts.Mode, printing
// the result (or accumulated diagnostics) via w.
func runFile(logger zerolog.Logger, w *writer, opts *options) error {
	src, err := os.ReadFile(opts.Path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	source := string(src)

	cenv, rt := env.BuildFromFlags(builtins.Registry(), opts.Vars, opts.Prompts, opts.Secrets, opts.ClientCtx)

	switch opts.Mode {
	case "lex":
		results := lexer.Lex(source)
		for _, tok := range lexer.Tokens(results) {
			w.value(tok.String())
		}
		if errs := lexer.Errors(results); len(errs) > 0 {
			w.diagnostics(opts.Path, source, errs)
			return fmt.Errorf("lexing failed")
		}
		return nil

	case "parse":
		expr, errs := parser.Parse(source)
		w.value(fmt.Sprintf("%+v", expr))
		if len(errs) > 0 {
			w.diagnostics(opts.Path, source, errs)
			return fmt.Errorf("parsing failed")
		}
		return nil

	case "compile":
		expr, perrs := parser.Parse(source)
		bc, cerrs := compiler.Compile(expr, cenv)
		allErrs := append(append([]error{}, perrs...), cerrs...)
		if len(allErrs) > 0 {
			w.diagnostics(opts.Path, source, allErrs)
			return fmt.Errorf("compilation failed")
		}
		w.value(fmt.Sprintf("%d bytes, %d strings, %d types", len(bc.Bytes()), len(bc.Strings), len(bc.Types)))
		return nil

	case "disassemble":
		expr, perrs := parser.Parse(source)
		bc, cerrs := compiler.Compile(expr, cenv)
		allErrs := append(append([]error{}, perrs...), cerrs...)
		if len(allErrs) > 0 {
			w.diagnostics(opts.Path, source, allErrs)
			return fmt.Errorf("compilation failed")
		}
		w.value(dis.Disassemble(bc, cenv))
		return nil

	case "interpret", "":
		return runInterpret(logger, w, opts.Path, source, cenv, rt)

	default:
		return fmt.Errorf("unknown mode %q", opts.Mode)
	}
}

// runInterpret compiles and interprets source, tagging the run with a
// correlation id for logging. The vm package itself never logs or
// generates ids; this CLI layer owns both, keeping the library pure.
func runInterpret(logger zerolog.Logger, w *writer, filename, source string, cenv *env.Env, rt *env.Runtime) error {
	corrID, err := uuid.NewV4()
	if err != nil {
		return err
	}
	log := logger.With().Str("correlation_id", corrID.String()).Logger()

	expr, perrs := parser.Parse(source)
	log.Debug().Int("errors", len(perrs)).Msg("parsed")
	if len(perrs) > 0 {
		w.diagnostics(filename, source, perrs)
		return fmt.Errorf("parsing failed")
	}

	bc, cerrs := compiler.Compile(expr, cenv)
	log.Debug().Int("bytecode_bytes", len(bc.Bytes())).Int("errors", len(cerrs)).Msg("compiled")
	if len(cerrs) > 0 {
		w.diagnostics(filename, source, cerrs)
		return fmt.Errorf("compilation failed")
	}

	result, err := vm.Interpret(bc, cenv, rt)
	if err != nil {
		log.Debug().Err(err).Msg("vm halted with error")
		w.diagnostics(filename, source, []error{err})
		return err
	}
	log.Debug().Str("halt_reason", "success").Msg("vm halted")

	w.value(result.Display())
	return nil
}
