package evaluator

import (
	"github.com/cwbudde/lispcore/internal/evalstack"
	"github.com/cwbudde/lispcore/internal/object"
	"github.com/cwbudde/lispcore/internal/parser"
)

// stepImport implements `(import "path")`: open the file, parse every
// top-level form, and swap in a Do frame that evaluates them as an
// implicit `do` in the importing environment. Concurrent import depth is
// bounded (spec §4.E) to guard against runaway nesting; the guard is
// released as soon as the file has been read, matching the source's
// narrow per-read reentrancy guard rather than a deep call-chain limit.
func stepImport(ctx *Context, f *evalstack.Frame) bool {
	if object.ListLen(f.Unevaluated) != 1 {
		return raiseSyntaxError(ctx, "import takes exactly 1 form: (import \"path\")")
	}
	pathObj := f.Unevaluated.First
	if object.IsNil(pathObj) || pathObj.Kind != object.KindString {
		return raiseTypeError(ctx, "import", pathObj)
	}

	if ctx.importDepth >= ctx.MaxImportDepth {
		return raiseStackOverflow(ctx)
	}
	ctx.importDepth++
	source, err := ctx.ReadFile(pathObj.Str)
	ctx.importDepth--
	if err != nil {
		return raiseOSError(ctx, err)
	}

	body, ok := parseImportBody(ctx, f, source, pathObj.Str)
	if !ok {
		return false // a raise* helper already set the error slot
	}

	newFrame := &evalstack.Frame{
		Kind: evalstack.KindDo, Expr: f.Expr, Env: f.Env,
		Unevaluated: body, Evaluated: ctx.Heap.Nil(),
		ResultsList: f.ResultsList,
	}
	ctx.Stack.SwapTop(newFrame)
	return true
}

// parseImportBody reads every top-level form out of an imported file and
// assembles them into a proper list, the way parser.ParseAll does — but
// unlike ParseAll, it keeps the whole read inside the GC's root set. The
// live parser itself is installed on ctx (mirroring internal/vm's
// activeParser exposure for REPL/file reads), and each form is anchored
// into f's scratch locals (the frame currently on top of the stack) as
// soon as it is parsed, so a collection triggered mid-parse — by parsing
// itself, or by building the final list — can never sweep a form that
// isn't reachable from any Go-level root yet.
func parseImportBody(ctx *Context, f *evalstack.Frame, source, file string) (*object.Object, bool) {
	p := parser.New(ctx.Heap, source, file)
	ctx.activeParser = p
	defer func() { ctx.activeParser = nil }()

	var forms []*object.Object
	for {
		expr, more, err := p.Next()
		if err != nil {
			if inc, isInc := err.(parser.ErrIncomplete); isInc {
				return nil, raiseSyntaxError(ctx, inc.Error())
			}
			return nil, raiseSyntaxError(ctx, err.Error())
		}
		if !more {
			break
		}
		if _, err := ctx.Stack.CreateLocal(expr); err != nil {
			return nil, raiseStackOverflow(ctx)
		}
		forms = append(forms, expr)
	}

	body, err := ctx.Heap.NewList(forms...)
	if err != nil {
		return nil, raiseOutOfMemory(ctx)
	}
	return body, true
}

// stepTry implements `(try e)` (spec §4.E, §7): the sole recovery
// mechanism. On success it yields the single-element list (value); on
// failure it clears the error slot and yields the two-element list
// (() error-object).
func stepTry(ctx *Context, f *evalstack.Frame) bool {
	if !object.IsNil(*ctx.ErrSlot) {
		errVal := *ctx.ErrSlot
		*ctx.ErrSlot = ctx.Heap.Nil()
		result, err := ctx.Heap.NewList(ctx.Heap.Nil(), errVal)
		if err != nil {
			return raiseOutOfMemory(ctx)
		}
		return finishFrame(ctx, f.ResultsList, result)
	}

	if object.IsNil(f.Evaluated) {
		if object.ListLen(f.Unevaluated) != 1 {
			return raiseSyntaxError(ctx, "try takes exactly 1 form: (try e)")
		}
		next := f.Unevaluated.First
		ok := beginEval(ctx, keepFrame, f.Env, next, &f.Evaluated)
		f.Unevaluated = ctx.Heap.Nil()
		return ok
	}

	value := f.Evaluated.First
	result, err := ctx.Heap.NewList(value)
	if err != nil {
		return raiseOutOfMemory(ctx)
	}
	return finishFrame(ctx, f.ResultsList, result)
}
