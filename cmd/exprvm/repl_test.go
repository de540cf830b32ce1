package main

import (
	"bytes"
	"testing"

	"github.com/deepnoodle-ai/exprvm/builtins"
	"github.com/deepnoodle-ai/exprvm/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepl() (*repl, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cenv, rt := env.BuildFromFlags(builtins.Registry(), nil, nil, nil, nil)
	w := newWriter(&out, &errOut, true)
	return &repl{mode: modeInterpret, env: cenv, rt: rt, w: w}, &out, &errOut
}

func TestSetVarDeclaresNameAndValue(t *testing.T) {
	r, _, errOut := newTestRepl()
	exit := r.command("/set var greeting = hello")
	require.False(t, exit)
	require.Empty(t, errOut.String())

	idx := r.env.IndexOfVar("greeting")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "hello", r.rt.Vars[idx])
}

func TestSetRejectsMalformedInvocation(t *testing.T) {
	r, _, errOut := newTestRepl()
	exit := r.command("/set var greeting hello")
	require.False(t, exit)
	assert.Contains(t, errOut.String(), "usage: /set")
	assert.Equal(t, -1, r.env.IndexOfVar("greeting"))
}

func TestSetClientContextDeclaresEntry(t *testing.T) {
	r, _, _ := newTestRepl()
	r.command("/set client session = abc123")

	idx, _ := r.env.IndexOfClientCtx("session")
	require.GreaterOrEqual(t, idx, 0)
	v, ok := r.rt.ClientCtxValue(idx)
	require.True(t, ok)
	assert.Equal(t, "abc123", v.Display())
}

func TestModeCommandSwitchesStage(t *testing.T) {
	r, out, _ := newTestRepl()
	r.command("/mode disassemble")
	assert.Equal(t, modeDisassemble, r.mode)
	assert.Contains(t, out.String(), "disassemble")
}

func TestExitCommandStopsLoop(t *testing.T) {
	r, _, _ := newTestRepl()
	assert.True(t, r.command("/exit"))
}
