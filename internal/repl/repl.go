// Package repl implements the line-at-a-time interactive loop: ordinary
// input is parsed and evaluated on a persistent interpreter, lines
// starting with '$' are meta-commands handled by the driver itself.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	verrors "github.com/vela-lang/vela/internal/errors"
	"github.com/vela-lang/vela/internal/interp"
	"github.com/vela-lang/vela/internal/intrinsics"
	"github.com/vela-lang/vela/internal/object"
	"github.com/vela-lang/vela/internal/parser"
	"github.com/vela-lang/vela/internal/scope"
	"github.com/vela-lang/vela/internal/value"
)

// ModuleLoader installs an optional intrinsic module's types into reg/global.
// $loadmod looks one up by name; Vela itself ships none (no windowing/COM
// surface is in scope), but a host program can register one before Run.
type ModuleLoader func(reg *object.Registry, global *scope.Scope)

var modules = map[string]ModuleLoader{}

// RegisterModule makes a module available to $loadmod under name.
func RegisterModule(name string, loader ModuleLoader) {
	modules[name] = loader
}

const prompt = "vela> "

// Session drives the read-eval-print loop against one interpreter,
// recreated wholesale on $erase.
type Session struct {
	out    io.Writer
	errOut io.Writer
	in     io.Reader
	ip     *interp.Interpreter
	opts   []interp.Option

	errColor *color.Color
	valColor *color.Color
}

// New creates a Session writing to out/errOut and reading interpreter
// input (e.g. ReadLine) from in. opts are forwarded to every interpreter
// the session builds, including the fresh one $erase constructs.
func New(out, errOut io.Writer, in io.Reader, opts ...interp.Option) *Session {
	s := &Session{
		out:      out,
		errOut:   errOut,
		in:       in,
		opts:     opts,
		errColor: color.New(color.FgRed),
		valColor: color.New(color.FgGreen),
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.ip = interp.New(s.out, s.errOut, s.in, intrinsics.Register, s.opts...)
}

// Run drives the loop until $quit or EOF on stdin.
func (s *Session) Run() error {
	lin := liner.NewLiner()
	defer lin.Close()
	lin.SetCtrlCAborts(true)

	for {
		line, err := lin.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		lin.AppendHistory(line)

		if strings.HasPrefix(strings.TrimSpace(line), "$") {
			if quit := s.runMeta(strings.TrimSpace(line)); quit {
				return nil
			}
			continue
		}
		s.evalLine(line, "<repl>")
	}
}

// evalLine parses and evaluates one line of ordinary source against the
// session's persistent interpreter, printing a non-Null result and
// reporting parse or runtime errors without aborting the session.
func (s *Session) evalLine(line, file string) {
	prog, errs, lexErrs := parser.Parse(line)
	if len(lexErrs) > 0 {
		s.reportMessage(lexErrs[0])
		return
	}
	if len(errs) > 0 {
		se := verrors.New(errs[0].Pos, errs[0].Code, errs[0].Message, line, file)
		s.reportError(se)
		return
	}

	result, err := s.ip.Run(prog, line, file)
	if err != nil {
		s.reportError(err)
		return
	}
	if result.Kind() != value.KNull {
		fmt.Fprintln(s.out, s.valColor.Sprint(s.ip.Display(result)))
	}
}

func (s *Session) reportError(err error) {
	if se, ok := err.(*verrors.SourceError); ok {
		s.reportMessage(se.Format(true))
		return
	}
	s.reportMessage(err.Error())
}

func (s *Session) reportMessage(msg string) {
	fmt.Fprintln(s.errOut, s.errColor.Sprint(msg))
}

// runMeta handles a single '$'-prefixed command, reporting true when the
// session should terminate ($quit).
func (s *Session) runMeta(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "$quit":
		return true

	case "$erase":
		s.reset()
		fmt.Fprintln(s.out, "runtime state cleared")

	case "$loadfile":
		if len(args) != 1 {
			s.reportMessage("$loadfile requires a path")
			return false
		}
		content, err := os.ReadFile(args[0])
		if err != nil {
			s.reportMessage(fmt.Sprintf("failed to read %s: %s", args[0], err))
			return false
		}
		s.evalLine(string(content), args[0])

	case "$loadmod":
		if len(args) != 1 {
			s.reportMessage("$loadmod requires a module name")
			return false
		}
		loader, ok := modules[args[0]]
		if !ok {
			s.reportMessage(fmt.Sprintf("unknown module %q", args[0]))
			return false
		}
		loader(s.ip.Registry, s.globalScope())
		fmt.Fprintf(s.out, "module %q loaded\n", args[0])

	default:
		s.reportMessage(fmt.Sprintf("unknown meta-command %q", cmd))
	}
	return false
}

// globalScope exposes the interpreter's outermost scope to module loaders,
// mirroring the callback interp.New already takes for intrinsics.Register.
func (s *Session) globalScope() *scope.Scope {
	return s.ip.GlobalScope()
}
