// Package errors formats source-level syntax errors with source context,
// line/column information, and a caret pointing at the offending position.
// It is used for scanner/parser failures raised before a VM error Dict can
// even be constructed (see internal/ierrors for the runtime error-value
// taxonomy that takes over once the VM is running).
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/lispcore/internal/lexer"
)

// SyntaxError represents a single scan/parse failure with position and
// source context.
type SyntaxError struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

func NewSyntaxError(pos lexer.Position, message, source, file string) *SyntaxError {
	return &SyntaxError{Pos: pos, Message: message, Source: source, File: file}
}

func (e *SyntaxError) Error() string {
	return e.Format(false)
}

// Format renders the file:line:column header, the offending source line,
// a caret, and the message. If color is true, ANSI codes highlight the
// caret and message.
func (e *SyntaxError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
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

func (e *SyntaxError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
