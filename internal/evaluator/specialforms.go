package evaluator

import (
	"github.com/cwbudde/lispcore/internal/env"
	"github.com/cwbudde/lispcore/internal/evalstack"
	"github.com/cwbudde/lispcore/internal/object"
)

// stepIf implements `(if c t)` / `(if c t e)` (spec §4.E). frame.Evaluated
// is Nil until the condition has been evaluated; frame.Unevaluated always
// holds whatever hasn't been consumed yet, in order (c, t, [e]).
func stepIf(ctx *Context, f *evalstack.Frame) bool {
	if object.IsNil(f.Evaluated) {
		n := object.ListLen(f.Unevaluated)
		if n < 2 {
			return raiseSyntaxError(ctx, "if requires a condition and a then-branch: (if c t [e])")
		}
		if n > 3 {
			return raiseSyntaxError(ctx, "if takes at most 3 forms: (if c t [e])")
		}
		cond := f.Unevaluated.First
		ok := beginEval(ctx, keepFrame, f.Env, cond, &f.Evaluated)
		f.Unevaluated = f.Unevaluated.Rest
		return ok
	}

	cond := f.Evaluated.First
	if object.IsTruthy(cond) {
		then := f.Unevaluated.First
		return beginEval(ctx, removeFrame, f.Env, then, f.ResultsList)
	}

	f.Unevaluated = f.Unevaluated.Rest // drop `then`, leaving [] or (else)
	if object.IsNil(f.Unevaluated) {
		return finishFrame(ctx, f.ResultsList, ctx.Heap.Nil())
	}
	return beginEval(ctx, removeFrame, f.Env, f.Unevaluated.First, f.ResultsList)
}

// stepDo implements `(do e1 … eN)`: every sub-expression but the last is
// evaluated and discarded (results_list = nil); the last is tail-evaluated.
// An empty body yields Nil.
func stepDo(ctx *Context, f *evalstack.Frame) bool {
	if object.IsNil(f.Unevaluated) {
		return finishFrame(ctx, f.ResultsList, ctx.Heap.Nil())
	}
	if object.IsNil(f.Unevaluated.Rest) {
		return beginEval(ctx, removeFrame, f.Env, f.Unevaluated.First, f.ResultsList)
	}
	next := f.Unevaluated.First
	ok := beginEval(ctx, keepFrame, f.Env, next, nil)
	f.Unevaluated = f.Unevaluated.Rest
	return ok
}

// stepDefine implements `(define target value)`: evaluate value once, then
// destructure-bind target to it in the current environment. The bound
// value is also define's result.
func stepDefine(ctx *Context, f *evalstack.Frame) bool {
	if object.IsNil(f.Evaluated) {
		if object.ListLen(f.Unevaluated) != 2 {
			return raiseSyntaxError(ctx, "define requires exactly 2 forms: (define target value)")
		}
		valueExpr := f.Unevaluated.Rest.First
		return beginEval(ctx, keepFrame, f.Env, valueExpr, &f.Evaluated)
	}

	target := f.Unevaluated.First
	value := f.Evaluated.First
	if err := env.Bind(ctx.Heap, f.Env, target, value); err != nil {
		return raiseBindError(ctx, err)
	}
	return finishFrame(ctx, f.ResultsList, value)
}

// stepFn and stepMacro construct Closure/Macro values from `(fn params
// body…)` / `(macro params body…)`. Params must be a Nil or Cons bind
// target (unlike general bind targets, a bare Symbol is not accepted here
// — spec §4.E "Params must be valid bind target of Cons or Nil shape").
func stepFn(ctx *Context, f *evalstack.Frame) bool {
	return stepCallable(ctx, f, "fn", ctx.Heap.NewClosure)
}

func stepMacroForm(ctx *Context, f *evalstack.Frame) bool {
	return stepCallable(ctx, f, "macro", ctx.Heap.NewMacro)
}

func stepCallable(ctx *Context, f *evalstack.Frame, formName string, build func(capturedEnv, params, body *object.Object) (*object.Object, error)) bool {
	if object.ListLen(f.Unevaluated) < 2 {
		return raiseSyntaxError(ctx, formName+" requires params and at least one body form: ("+formName+" params body...)")
	}
	params := f.Unevaluated.First
	body := f.Unevaluated.Rest
	if !object.IsNil(params) && params.Kind != object.KindCons {
		return raiseSyntaxError(ctx, formName+" params must be () or a list of bind targets")
	}
	val, err := build(f.Env, params, body)
	if err != nil {
		return raiseOutOfMemory(ctx)
	}
	return finishFrame(ctx, f.ResultsList, val)
}

// stepQuote implements `(quote x)`: yield x unevaluated.
func stepQuote(ctx *Context, f *evalstack.Frame) bool {
	if object.ListLen(f.Unevaluated) != 1 {
		return raiseSyntaxError(ctx, "quote takes exactly 1 form: (quote x)")
	}
	return finishFrame(ctx, f.ResultsList, f.Unevaluated.First)
}
