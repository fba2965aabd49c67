package repl

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/object"
	"github.com/vela-lang/vela/internal/scope"
)

func newTestSession() (*Session, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return New(&out, &errOut, strings.NewReader("")), &out, &errOut
}

func TestEvalLinePrintsNonNullResult(t *testing.T) {
	s, out, errOut := newTestSession()
	s.evalLine("1 + 2", "<repl>")
	assert.Contains(t, out.String(), "3")
	assert.Empty(t, errOut.String())
}

func TestEvalLineSuppressesSemicolonResult(t *testing.T) {
	s, out, _ := newTestSession()
	s.evalLine("1 + 2;", "<repl>")
	assert.Empty(t, out.String())
}

func TestEvalLineReportsRuntimeError(t *testing.T) {
	s, out, errOut := newTestSession()
	s.evalLine("1 / 0", "<repl>")
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "DivisionByZero")
}

func TestEvalLineReportsParseError(t *testing.T) {
	s, _, errOut := newTestSession()
	s.evalLine("var = ;", "<repl>")
	assert.NotEmpty(t, errOut.String())
}

func TestSessionPersistsBindingsAcrossLines(t *testing.T) {
	s, out, _ := newTestSession()
	s.evalLine("var x = 41;", "<repl>")
	s.evalLine("x + 1", "<repl>")
	assert.Contains(t, out.String(), "42")
}

func TestRunMetaQuit(t *testing.T) {
	s, _, _ := newTestSession()
	assert.True(t, s.runMeta("$quit"))
}

func TestRunMetaEraseResetsState(t *testing.T) {
	s, out, _ := newTestSession()
	s.evalLine("var x = 1;", "<repl>")
	quit := s.runMeta("$erase")
	require.False(t, quit)

	s.evalLine("x", "<repl>")
	// x no longer exists in the fresh interpreter: evaluating it raises an
	// UnknownIdentifier runtime error rather than resolving the old binding.
	assert.NotContains(t, out.String(), "1")
}

func TestRunMetaLoadfile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/script.vl"
	require.NoError(t, os.WriteFile(path, []byte("40 + 2"), 0o644))

	s, out, _ := newTestSession()
	quit := s.runMeta("$loadfile " + path)
	require.False(t, quit)
	assert.Contains(t, out.String(), "42")
}

func TestRunMetaLoadmodUnknown(t *testing.T) {
	s, _, errOut := newTestSession()
	quit := s.runMeta("$loadmod nosuchmodule")
	require.False(t, quit)
	assert.Contains(t, errOut.String(), "unknown module")
}

func TestRunMetaLoadmodRegistered(t *testing.T) {
	RegisterModule("test-probe", func(reg *object.Registry, global *scope.Scope) {
		reg.RegisterFactory("Probe", func() *object.Type {
			return object.NewType("Probe", nil)
		})
	})
	s, out, _ := newTestSession()
	quit := s.runMeta("$loadmod test-probe")
	require.False(t, quit)
	assert.Contains(t, out.String(), "loaded")
}

func TestRunMetaUnknownCommand(t *testing.T) {
	s, _, errOut := newTestSession()
	quit := s.runMeta("$bogus")
	require.False(t, quit)
	assert.Contains(t, errOut.String(), "unknown meta-command")
}
