package main

import (
	"flag"
	"fmt"
)

// repeatedFlag collects every occurrence of a repeated `--flag NAME[=VALUE]`
// argument, the hand-rolled flag.Value the teacher's cmd/risor options.go
// favors over a heavier flag library for a small, fixed CLI surface.
type repeatedFlag []string

func (r *repeatedFlag) String() string {
	return fmt.Sprintf("%v", []string(*r))
}

func (r *repeatedFlag) Set(value string) error {
	*r = append(*r, value)
	return nil
}

// options holds the parsed command-line configuration for one run of the
// exprvm binary, per spec.md §6's CLI surface.
type options struct {
	Vars      repeatedFlag
	Prompts   repeatedFlag
	Secrets   repeatedFlag
	ClientCtx repeatedFlag

	Mode    string
	NoColor bool
	Path    string // positional .expr source file, empty to start the REPL
}

// parseOptions builds an options struct from args (normally os.Args[1:]).
func parseOptions(args []string) (*options, error) {
	fs := flag.NewFlagSet("exprvm", flag.ContinueOnError)
	opts := &options{}

	fs.Var(&opts.Vars, "vars", "declare a variable as NAME[=VALUE] (repeatable)")
	fs.Var(&opts.Prompts, "prompts", "declare a prompt as NAME[=VALUE] (repeatable)")
	fs.Var(&opts.Secrets, "secrets", "declare a secret as NAME[=VALUE] (repeatable)")
	fs.Var(&opts.ClientCtx, "client-context", "declare a client-context entry as NAME[=VALUE] (repeatable)")
	fs.StringVar(&opts.Mode, "mode", "interpret", "pipeline stage to run: lex|parse|compile|disassemble|interpret")
	fs.BoolVar(&opts.NoColor, "no-color", false, "disable colorized output")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		opts.Path = fs.Arg(0)
	}
	return opts, nil
}
