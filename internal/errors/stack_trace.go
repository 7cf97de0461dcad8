package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/lispcore/internal/object"
)

// StackFrame is a single captured traceback entry: the source expression a
// live evaluation-stack frame was evaluating (spec §4.F). Unlike the
// teacher's DWScript StackFrame (function name + position), this
// interpreter's frames don't carry named functions — closures are
// anonymous — so the frame identity *is* the source form itself.
type StackFrame struct {
	Expr *object.Object
}

// String renders the frame's reader-faithful source form.
func (sf StackFrame) String() string {
	return object.Repr(sf.Expr)
}

// StackTrace is a captured call stack, oldest (bottom) first — matching
// the teacher's ordering convention and the Cons-list order spec §4.F
// calls "most recent call last".
type StackTrace []StackFrame

// String renders one source form per line, most recent call last, each
// indented two spaces — the layout spec §7 "User visibility" calls for.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, f := range st {
		sb.WriteString("  ")
		sb.WriteString(f.String())
		if i < len(st)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Reverse returns a new StackTrace with frames in reverse order.
func (st StackTrace) Reverse() StackTrace {
	reversed := make(StackTrace, len(st))
	for i, frame := range st {
		reversed[len(st)-1-i] = frame
	}
	return reversed
}

// Top returns the most recent (last) frame, or nil if empty.
func (st StackTrace) Top() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[len(st)-1]
}

// Bottom returns the oldest (first) frame, or nil if empty.
func (st StackTrace) Bottom() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[0]
}

func (st StackTrace) Depth() int { return len(st) }

func NewStackFrame(expr *object.Object) StackFrame {
	return StackFrame{Expr: expr}
}

func NewStackTrace() StackTrace {
	return make(StackTrace, 0)
}

// FromObjectList converts the Cons-list form of a traceback (as stored in
// an error Dict's `traceback` entry) into a StackTrace for formatting.
func FromObjectList(list *object.Object) StackTrace {
	var out StackTrace
	for !object.IsNil(list) {
		if list.Kind != object.KindCons {
			break
		}
		out = append(out, StackFrame{Expr: list.First})
		list = list.Rest
	}
	return out
}

// FormatRuntimeError renders the top-level presentation spec §7 describes:
// the error type symbol, the message, and the indented traceback, closing
// with the tail-call-hiding caveat.
func FormatRuntimeError(kind, message string, traceback *object.Object) string {
	trace := FromObjectList(traceback)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", kind, message)
	if trace.Depth() > 0 {
		sb.WriteString("Traceback (most recent call last):\n")
		sb.WriteString(trace.String())
		sb.WriteString("\n")
	}
	sb.WriteString("(tail calls may have hidden intermediate frames)")
	return sb.String()
}
