package evaluator

import (
	"github.com/cwbudde/lispcore/internal/env"
	"github.com/cwbudde/lispcore/internal/evalstack"
	"github.com/cwbudde/lispcore/internal/object"
)

// stepCall implements the Call frame protocol (spec §4.E). unevaluated
// starts as the whole source form (callee position first, then
// arguments); each step peels one element and begin-evals it into
// evaluated. Once the callee has been evaluated (evaluated holds exactly
// one element) and it is a Macro, the remaining unevaluated elements —
// still raw, unevaluated argument expressions — are handed to the macro
// directly: this is the one-phase macro dispatch (spec §9's resolved
// Open Question).
func stepCall(ctx *Context, f *evalstack.Frame) bool {
	if !object.IsNil(f.Unevaluated) {
		if calleeIsMacro(f.Evaluated) {
			return stepCallMacro(ctx, f)
		}
		next := f.Unevaluated.First
		ok := beginEval(ctx, keepFrame, f.Env, next, &f.Evaluated)
		f.Unevaluated = f.Unevaluated.Rest
		return ok
	}

	f.Evaluated = reverseInPlace(ctx.Heap.Nil(), f.Evaluated)
	callee := f.Evaluated.First
	args := f.Evaluated.Rest

	switch {
	case object.IsNil(callee):
		return raiseTypeError(ctx, "call", callee)
	case callee.Kind == object.KindPrimitive:
		result, ok := callee.Prim(args)
		if !ok {
			return false // the primitive has already set ctx's error slot
		}
		return finishFrame(ctx, f.ResultsList, result)
	case callee.Kind == object.KindClosure:
		return tailCallClosure(ctx, f, callee, args)
	case callee.Kind == object.KindMacro:
		return stepCallMacro(ctx, f) // a macro called with no arguments
	default:
		return raiseTypeError(ctx, "call", callee)
	}
}

// calleeIsMacro reports whether evaluated holds exactly the evaluated
// callee (one element) and it is a Macro — the only point in the Call
// frame's stepping where this check can be true, since evaluated only
// ever grows.
func calleeIsMacro(evaluated *object.Object) bool {
	if object.IsNil(evaluated) || evaluated.Kind != object.KindCons {
		return false
	}
	if !object.IsNil(evaluated.Rest) {
		return false
	}
	head := evaluated.First
	return !object.IsNil(head) && head.Kind == object.KindMacro
}

// stepCallMacro binds the macro's params directly to the still-unevaluated
// argument list, then swaps the Call frame for a Do frame that runs the
// macro body in the new binding environment. That Do frame delivers the
// body's value straight to the Call frame's results list: the value is the
// call's result and is not evaluated a second time. No separate frame kind
// is needed: the Do frame is driven by the ordinary stepDo logic.
func stepCallMacro(ctx *Context, f *evalstack.Frame) bool {
	macroObj := f.Evaluated.First
	rawArgs := f.Unevaluated

	argEnv, err := env.Create(ctx.Heap, macroObj.Call.Env)
	if err != nil {
		return raiseOutOfMemory(ctx)
	}
	if bindErr := env.Bind(ctx.Heap, argEnv, macroObj.Call.Params, rawArgs); bindErr != nil {
		return raiseBindError(ctx, bindErr)
	}

	body := &evalstack.Frame{
		Kind: evalstack.KindDo, Expr: f.Expr, Env: argEnv,
		Unevaluated: macroObj.Call.Body, Evaluated: ctx.Heap.Nil(),
		ResultsList: f.ResultsList,
	}
	ctx.Stack.SwapTop(body)
	return true
}

// tailCallClosure is the TCO hand-off for an ordinary closure call:
// destructure-bind params to the evaluated argument list in a fresh
// environment, then swap_top a Do frame running the closure's body —
// consuming O(1) stack depth for chains of tail calls (spec §4.E, §8).
func tailCallClosure(ctx *Context, f *evalstack.Frame, closure, args *object.Object) bool {
	argEnv, err := env.Create(ctx.Heap, closure.Call.Env)
	if err != nil {
		return raiseOutOfMemory(ctx)
	}
	if bindErr := env.Bind(ctx.Heap, argEnv, closure.Call.Params, args); bindErr != nil {
		return raiseBindError(ctx, bindErr)
	}
	body := &evalstack.Frame{
		Kind: evalstack.KindDo, Expr: f.Expr, Env: argEnv,
		Unevaluated: closure.Call.Body, Evaluated: ctx.Heap.Nil(),
		ResultsList: f.ResultsList,
	}
	ctx.Stack.SwapTop(body)
	return true
}
