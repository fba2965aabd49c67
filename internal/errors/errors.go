// Package errors formats parse and runtime diagnostics with source
// context: a file:line:column header, the offending source line, and a
// caret pointing at the column, with optional ANSI coloring.
package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/vela-lang/vela/internal/token"
)

// SourceError is a single diagnostic anchored to a source position.
type SourceError struct {
	Message string
	Code    string
	Source  string
	File    string
	Pos     token.Position
	cause   error
}

// New creates a SourceError with no underlying cause.
func New(pos token.Position, code, message, source, file string) *SourceError {
	return &SourceError{Pos: pos, Code: code, Message: message, Source: source, File: file}
}

// Wrap attaches pos/source/file context to an internal error, preserving
// its stack trace via github.com/pkg/errors for --trace output.
func Wrap(cause error, pos token.Position, source, file string) *SourceError {
	return &SourceError{
		Pos:     pos,
		Code:    "RuntimeError",
		Message: cause.Error(),
		Source:  source,
		File:    file,
		cause:   errors.WithStack(cause),
	}
}

func (e *SourceError) Error() string { return e.Format(false) }

// Unwrap lets errors.Is/As reach the wrapped cause, if any.
func (e *SourceError) Unwrap() error { return e.cause }

// Format renders the error with a line/column header, the source line,
// and a caret indicator. color adds ANSI codes for terminal output.
func (e *SourceError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s: error in %s:%s\n", e.Code, e.File, e.Pos)
	} else {
		fmt.Fprintf(&sb, "%s: error at %s\n", e.Code, e.Pos)
	}

	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteByte('^')
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteByte('\n')
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of diagnostics, numbering them when there is
// more than one.
func FormatAll(errs []*SourceError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[%d/%d] ", i+1, len(errs))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
