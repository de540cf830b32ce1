// Package env defines the compile-time and runtime environments the
// resolver/compiler and the virtual machine consult: six ordered name lists
// mirrored by parallel value lists at runtime.
package env

import (
	"strings"

	"github.com/deepnoodle-ai/exprvm/object"
	"github.com/deepnoodle-ai/exprvm/types"
)

// ClientCtxDecl is one client-context entry's compile-time declaration: its
// name and the static Type the host promises to supply at runtime.
type ClientCtxDecl struct {
	Name string
	Type types.Type
}

// Env is the compile-time environment: indexed name lists for each of the
// six lookup kinds. Indices are stable and are emitted directly into
// bytecode GET operands.
type Env struct {
	Builtins     []*object.Builtin
	UserBuiltins []*object.Builtin
	Vars         []string
	Prompts      []string
	Secrets      []string
	ClientCtx    []ClientCtxDecl
}

// New returns an Env seeded with the standard builtin registry and no
// vars/prompts/secrets/client-context entries.
func New(builtins []*object.Builtin) *Env {
	return &Env{Builtins: builtins}
}

// WithUserBuiltins returns a copy of e with the given user-supplied builtins
// appended to the USER_BUILTIN lookup list.
func (e *Env) WithUserBuiltins(fns ...*object.Builtin) *Env {
	n := *e
	n.UserBuiltins = append(append([]*object.Builtin{}, e.UserBuiltins...), fns...)
	return &n
}

// IndexOfBuiltin returns the index of name in Builtins, or -1.
func (e *Env) IndexOfBuiltin(name string) int {
	for i, b := range e.Builtins {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// IndexOfUserBuiltin returns the index of name in UserBuiltins, or -1.
func (e *Env) IndexOfUserBuiltin(name string) int {
	for i, b := range e.UserBuiltins {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// IndexOfVar, IndexOfPrompt, and IndexOfSecret return the index of name in
// the respective list, or -1.
func (e *Env) IndexOfVar(name string) int    { return indexOf(e.Vars, name) }
func (e *Env) IndexOfPrompt(name string) int { return indexOf(e.Prompts, name) }
func (e *Env) IndexOfSecret(name string) int { return indexOf(e.Secrets, name) }

// IndexOfClientCtx returns the index and declared Type of name in
// ClientCtx, or (-1, Unknown) if absent.
func (e *Env) IndexOfClientCtx(name string) (int, types.Type) {
	for i, c := range e.ClientCtx {
		if c.Name == name {
			return i, c.Type
		}
	}
	return -1, types.Unknown
}

func indexOf(list []string, name string) int {
	for i, v := range list {
		if v == name {
			return i
		}
	}
	return -1
}

// Runtime is the runtime environment: ordered value lists parallel to the
// compile-time environment's Vars/Prompts/Secrets/ClientCtx lists. Built-ins
// and user-builtins are taken from the compile-time Env directly; no
// runtime value array is needed for them.
type Runtime struct {
	Vars      []string
	Prompts   []string
	Secrets   []string
	ClientCtx []object.Value
}

// Var, Prompt, and Secret return the string value at index, or ("", false)
// if the index is out of range.
func (r *Runtime) Var(index int) (string, bool)    { return stringAt(r.Vars, index) }
func (r *Runtime) Prompt(index int) (string, bool) { return stringAt(r.Prompts, index) }
func (r *Runtime) Secret(index int) (string, bool) { return stringAt(r.Secrets, index) }

// ClientCtxValue returns the typed value at index, or (nil, false) if the
// index is out of range.
func (r *Runtime) ClientCtxValue(index int) (object.Value, bool) {
	if index < 0 || index >= len(r.ClientCtx) {
		return nil, false
	}
	return r.ClientCtx[index], true
}

func stringAt(list []string, index int) (string, bool) {
	if index < 0 || index >= len(list) {
		return "", false
	}
	return list[index], true
}

// NameValue is a single parsed `NAME[=VALUE]` CLI/fixture flag, per spec.md
// §6's CLI surface.
type NameValue struct {
	Name  string
	Value string
}

// ParseNameValue splits a `NAME[=VALUE]` flag argument on its first '='. A
// bare NAME with no '=' yields an empty Value.
func ParseNameValue(s string) NameValue {
	if i := strings.IndexByte(s, '='); i >= 0 {
		return NameValue{Name: s[:i], Value: s[i+1:]}
	}
	return NameValue{Name: s}
}

// BuildFromFlags builds a compile-time Env and a matching Runtime from
// repeated `--vars`/`--prompts`/`--secrets`/`--client-context` flag values,
// the shape spec.md §6 specifies for the example binaries and the spec
// fixture format's leading `//` flag line. Client-context entries are
// declared with the top type Value (the CLI has no syntax for a narrower
// type) and their runtime value is always the supplied string, wrapped in
// object.String -- which is assignable to a Value-typed parameter.
func BuildFromFlags(builtins []*object.Builtin, vars, prompts, secrets, clientCtx []string) (*Env, *Runtime) {
	ce := &Env{Builtins: builtins}
	rt := &Runtime{}
	for _, s := range vars {
		nv := ParseNameValue(s)
		ce.Vars = append(ce.Vars, nv.Name)
		rt.Vars = append(rt.Vars, nv.Value)
	}
	for _, s := range prompts {
		nv := ParseNameValue(s)
		ce.Prompts = append(ce.Prompts, nv.Name)
		rt.Prompts = append(rt.Prompts, nv.Value)
	}
	for _, s := range secrets {
		nv := ParseNameValue(s)
		ce.Secrets = append(ce.Secrets, nv.Name)
		rt.Secrets = append(rt.Secrets, nv.Value)
	}
	for _, s := range clientCtx {
		nv := ParseNameValue(s)
		ce.ClientCtx = append(ce.ClientCtx, ClientCtxDecl{Name: nv.Name, Type: types.Value})
		rt.ClientCtx = append(rt.ClientCtx, object.String(nv.Value))
	}
	return ce, rt
}
