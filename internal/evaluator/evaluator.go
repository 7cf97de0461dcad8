// Package evaluator implements the step function over the evaluation
// stack's top frame: special-form dispatch, the Call frame's one-phase
// macro short-circuit, tail-call rewriting via swap_top, and the
// error/traceback propagation spec §4.E-§4.F describe. It never recurses
// on the host call stack — every control-flow decision is a push, a
// swap_top, or a pop against internal/evalstack.
package evaluator

import (
	"github.com/cwbudde/lispcore/internal/env"
	"github.com/cwbudde/lispcore/internal/evalstack"
	"github.com/cwbudde/lispcore/internal/heap"
	"github.com/cwbudde/lispcore/internal/ierrors"
	"github.com/cwbudde/lispcore/internal/object"
	"github.com/cwbudde/lispcore/internal/parser"
)

// Context bundles the pieces step() and begin_eval need, independent of
// any concrete VM type — internal/vm constructs one of these and owns the
// error slot it points at.
type Context struct {
	Heap   *heap.Heap
	Stack  *evalstack.Stack
	Errors *ierrors.Constants

	// ErrSlot is the VM's error slot, shared with primitives (`throw`
	// writes through the same pointer). Nil-valued (not a nil Go pointer)
	// means no error is pending.
	ErrSlot **object.Object

	// ReadFile backs `import`; injected so the evaluator doesn't import
	// os directly and stays testable with an in-memory file set.
	ReadFile func(path string) (string, error)

	MaxImportDepth int
	importDepth    int

	// activeParser, when non-nil, is a parser mid-read on behalf of
	// `import` — its in-progress expression stack joins the root set for
	// the duration of that read, the same way internal/vm's own
	// activeParser does for a REPL/file read (spec §3.3).
	activeParser *parser.Parser
}

// GCRoots exposes any in-progress import parser's roots so internal/vm's
// own GCRoots can fold them into the heap's root walk.
func (ctx *Context) GCRoots() []*object.Object {
	if ctx.activeParser == nil {
		return nil
	}
	return ctx.activeParser.GCRoots()
}

const defaultMaxImportDepth = 32

// NewContext wires a Context with the default import-nesting bound.
func NewContext(h *heap.Heap, s *evalstack.Stack, errs *ierrors.Constants, errSlot **object.Object, readFile func(string) (string, error)) *Context {
	return &Context{
		Heap: h, Stack: s, Errors: errs, ErrSlot: errSlot,
		ReadFile: readFile, MaxImportDepth: defaultMaxImportDepth,
	}
}

type frameMode uint8

const (
	keepFrame frameMode = iota
	removeFrame
)

// Eval is the entry contract from spec §4.E: stack must be empty on entry,
// and is empty again on return, whether or not an error was raised. It
// returns the evaluated value, or an error value if ok is false.
func Eval(ctx *Context, env *object.Object, expr *object.Object) (value *object.Object, errVal *object.Object, ok bool) {
	if !ctx.Stack.Empty() {
		panic("evaluator: Eval called with a non-empty stack")
	}
	*ctx.ErrSlot = ctx.Heap.Nil()

	result := ctx.Heap.Nil()
	if !beginEval(ctx, keepFrame, env, expr, &result) {
		return nil, *ctx.ErrSlot, false
	}

	for !ctx.Stack.Empty() {
		if step(ctx) {
			continue
		}
		for !ctx.Stack.Empty() && ctx.Stack.Top().Kind != evalstack.KindTry {
			ctx.Stack.Pop()
		}
		if ctx.Stack.Empty() {
			return nil, *ctx.ErrSlot, false
		}
		// Resume: the next step() call dispatches the Try frame's
		// error branch (see stepTry).
	}

	if object.IsNil(result) {
		return ctx.Heap.Nil(), nil, true
	}
	return result.First, nil, true
}

func step(ctx *Context) bool {
	f := ctx.Stack.Top()
	switch f.Kind {
	case evalstack.KindCall:
		return stepCall(ctx, f)
	case evalstack.KindIf:
		return stepIf(ctx, f)
	case evalstack.KindDo:
		return stepDo(ctx, f)
	case evalstack.KindDefine:
		return stepDefine(ctx, f)
	case evalstack.KindFn:
		return stepFn(ctx, f)
	case evalstack.KindMacro:
		return stepMacroForm(ctx, f)
	case evalstack.KindImport:
		return stepImport(ctx, f)
	case evalstack.KindQuote:
		return stepQuote(ctx, f)
	case evalstack.KindTry:
		return stepTry(ctx, f)
	default:
		panic("evaluator: unknown frame kind")
	}
}

// begin_eval (spec §4.E): classify expr and either resolve it immediately
// (self-evaluating values, symbol lookups) or install a frame to step it.
// mode selects whether a Cons form gets pushed (KEEP, non-tail position)
// or swapped in for the current frame (REMOVE, tail position) — the sole
// tail-call mechanism.
func beginEval(ctx *Context, mode frameMode, scope *object.Object, expr *object.Object, resultsList **object.Object) bool {
	if object.IsNil(expr) {
		return finishClassify(ctx, mode, resultsList, ctx.Heap.Nil())
	}
	switch expr.Kind {
	case object.KindInt, object.KindString, object.KindPrimitive, object.KindClosure, object.KindMacro:
		return finishClassify(ctx, mode, resultsList, expr)
	case object.KindSymbol:
		v, found := env.Find(scope, expr.Str)
		if !found {
			return raiseNameError(ctx, expr.Str)
		}
		return finishClassify(ctx, mode, resultsList, v)
	case object.KindCons:
		return beginCons(ctx, mode, scope, expr, resultsList)
	default:
		return raiseTypeError(ctx, "eval", expr)
	}
}

func beginCons(ctx *Context, mode frameMode, scope *object.Object, expr *object.Object, resultsList **object.Object) bool {
	head := expr.First
	kind, isSpecial := specialFormKind(head)
	if isSpecial {
		frame := &evalstack.Frame{
			Kind: kind, Expr: expr, Env: scope,
			Unevaluated: expr.Rest, Evaluated: ctx.Heap.Nil(),
			ResultsList: resultsList,
		}
		return pushOrSwap(ctx, mode, frame)
	}
	frame := &evalstack.Frame{
		Kind: evalstack.KindCall, Expr: expr, Env: scope,
		Unevaluated: expr, Evaluated: ctx.Heap.Nil(),
		ResultsList: resultsList,
	}
	return pushOrSwap(ctx, mode, frame)
}

func specialFormKind(head *object.Object) (evalstack.Kind, bool) {
	if object.IsNil(head) || head.Kind != object.KindSymbol {
		return 0, false
	}
	switch head.Str {
	case "if":
		return evalstack.KindIf, true
	case "do":
		return evalstack.KindDo, true
	case "define":
		return evalstack.KindDefine, true
	case "fn":
		return evalstack.KindFn, true
	case "macro":
		return evalstack.KindMacro, true
	case "import":
		return evalstack.KindImport, true
	case "quote":
		return evalstack.KindQuote, true
	case "try":
		return evalstack.KindTry, true
	default:
		return 0, false
	}
}

func pushOrSwap(ctx *Context, mode frameMode, frame *evalstack.Frame) bool {
	if mode == keepFrame {
		if err := ctx.Stack.Push(frame); err != nil {
			return raiseStackOverflow(ctx)
		}
		return true
	}
	ctx.Stack.SwapTop(frame)
	return true
}

// finishClassify handles the self-evaluating/symbol-resolved case of
// begin_eval: no frame was pushed to compute value, so in KEEP mode the
// current (calling) frame is left untouched; in REMOVE mode the calling
// frame's work is already done and gets popped here in its place.
func finishClassify(ctx *Context, mode frameMode, resultsList **object.Object, value *object.Object) bool {
	if resultsList != nil {
		nc, err := ctx.Heap.NewCons(value, *resultsList)
		if err != nil {
			return raiseOutOfMemory(ctx)
		}
		*resultsList = nc
	}
	if mode == removeFrame {
		ctx.Stack.Pop()
	}
	return true
}

// finishFrame completes whichever frame is on top: appends value to
// resultsList and unconditionally pops — used by every frame kind's
// terminal branch, regardless of how the frame itself was installed
// (pushed or swapped).
func finishFrame(ctx *Context, resultsList **object.Object, value *object.Object) bool {
	if resultsList != nil {
		nc, err := ctx.Heap.NewCons(value, *resultsList)
		if err != nil {
			return raiseOutOfMemory(ctx)
		}
		*resultsList = nc
	}
	ctx.Stack.Pop()
	return true
}

// reverseInPlace reverses a Cons list built by repeated prepend (as
// evaluated-argument accumulation does) by rewriting Rest pointers. Safe
// only for lists the evaluator itself just built and that are not yet
// reachable from anywhere else (spec §3.2's carve-out for evaluator-owned
// construction).
func reverseInPlace(nilObj *object.Object, list *object.Object) *object.Object {
	prev := nilObj
	cur := list
	for !object.IsNil(cur) {
		next := cur.Rest
		cur.Rest = prev
		prev = cur
		cur = next
	}
	return prev
}
