// Package repl implements the line reader and REPL driver spec §6 carves
// out as "peripheral, but still fully implemented": tab expansion and line
// buffering feeding an internal/parser.Parser, and the `>>> `/`... `
// prompt-switching loop built on top of it.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/lispcore/internal/errors"
	"github.com/cwbudde/lispcore/internal/ierrors"
	"github.com/cwbudde/lispcore/internal/object"
	"github.com/cwbudde/lispcore/internal/parser"
	"github.com/cwbudde/lispcore/internal/vm"
)

const (
	promptNew  = ">>> "
	promptCont = "... "
	tabWidth   = 8
)

// lineReader buffers raw input lines and expands tabs to spaces, so column
// positions the lexer reports line up with what a terminal displays.
type lineReader struct {
	scanner *bufio.Scanner
}

func newLineReader(in io.Reader) *lineReader {
	return &lineReader{scanner: bufio.NewScanner(in)}
}

// readLine returns the next input line (tab-expanded, newline appended so
// the parser sees line structure), or ok=false at end of input.
func (r *lineReader) readLine() (line string, ok bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	return expandTabs(r.scanner.Text()) + "\n", true
}

func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var sb strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			spaces := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		sb.WriteRune(r)
		col++
	}
	return sb.String()
}

// Run drives the interactive REPL: prompt, read, parse, eval, print,
// looping until in hits EOF. Each top-level expression is evaluated
// against the same persistent VM, so `define`d names survive across
// lines. An unbalanced expression (open list, dangling quote) switches the
// prompt to `... ` and keeps accumulating lines until it completes or a
// genuine syntax error is hit, per spec §6's "is inside an expression".
func Run(in io.Reader, out io.Writer, v *vm.VM) {
	lr := newLineReader(in)
	var buf strings.Builder

	fmt.Fprint(out, promptNew)
	for {
		line, ok := lr.readLine()
		if !ok {
			fmt.Fprintln(out)
			return
		}
		buf.WriteString(line)

		exprs, parseErr := parseBuffered(v, buf.String())
		if parseErr != nil {
			if _, incomplete := parseErr.(parser.ErrIncomplete); incomplete {
				fmt.Fprint(out, promptCont)
				continue
			}
			fmt.Fprintln(out, parseErr.Error())
			buf.Reset()
			fmt.Fprint(out, promptNew)
			continue
		}

		for _, expr := range exprs {
			evalAndPrint(out, v, expr)
		}
		buf.Reset()
		fmt.Fprint(out, promptNew)
	}
}

// parseBuffered reads every complete top-level expression out of source.
// The parser's in-progress expression stack is registered as a GC root for
// the duration of the parse, matching the VM's root-set contract while a
// read is in flight.
func parseBuffered(v *vm.VM, source string) ([]*object.Object, error) {
	p := parser.New(v.Heap, source, "<stdin>")
	v.SetActiveParser(p)
	defer v.SetActiveParser(nil)

	var exprs []*object.Object
	for {
		expr, ok, err := p.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return exprs, nil
		}
		exprs = append(exprs, expr)
	}
}

func evalAndPrint(out io.Writer, v *vm.VM, expr *object.Object) {
	value, errVal, ok := v.Eval(expr)
	if !ok {
		printRuntimeError(out, v, errVal)
		return
	}
	if object.IsNil(value) {
		return
	}
	fmt.Fprintln(out, object.Repr(value))
}

func printRuntimeError(out io.Writer, v *vm.VM, errVal *object.Object) {
	kind, _ := v.Errors.KindOf(errVal)
	message, _ := ierrors.Message(errVal)
	traceback, _ := ierrors.Traceback(errVal)
	fmt.Fprintln(out, errors.FormatRuntimeError(kind.String(), message, traceback))
}
