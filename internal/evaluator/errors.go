package evaluator

import (
	"fmt"

	"github.com/cwbudde/lispcore/internal/env"
	"github.com/cwbudde/lispcore/internal/evalstack"
	"github.com/cwbudde/lispcore/internal/ierrors"
	"github.com/cwbudde/lispcore/internal/object"
)

// captureTraceback walks the live stack from the top down, collecting each
// frame's source expression into a Cons-list ordered oldest-call-first,
// most-recent-call-last (spec §4.F): walking top-down and prepending as we
// go naturally produces that order, since the first frame prepended (the
// topmost, most recent) ends up innermost.
func captureTraceback(ctx *Context) *object.Object {
	list := ctx.Heap.Nil()
	ctx.Stack.IterFromTop(func(f *evalstack.Frame) bool {
		if object.IsNil(f.Expr) {
			return true
		}
		nc, err := ctx.Heap.NewCons(f.Expr, list)
		if err != nil {
			// Traceback capture must not itself fail evaluation; a
			// truncated traceback is preferable to masking the real
			// error with an OOM.
			return false
		}
		list = nc
		return true
	})
	return list
}

// CaptureTraceback exposes captureTraceback to internal/vm, so the
// `traceback` primitive can snapshot the live call stack the same way a
// raised error does, without this package depending on internal/builtins.
func CaptureTraceback(ctx *Context) *object.Object {
	return captureTraceback(ctx)
}

func raise(ctx *Context, kind ierrors.Kind, message string) bool {
	traceback := captureTraceback(ctx)
	*ctx.ErrSlot = ierrors.New(ctx.Heap, ctx.Errors, kind, message, traceback)
	return false
}

func raiseTypeError(ctx *Context, where string, got *object.Object) bool {
	return raise(ctx, ierrors.TypeError, fmt.Sprintf("%s: invalid operand type %s", where, object.TypeOf(got)))
}

func raiseNameError(ctx *Context, name string) bool {
	return raise(ctx, ierrors.NameError, fmt.Sprintf("unbound name %q", name))
}

func raiseSyntaxError(ctx *Context, message string) bool {
	return raise(ctx, ierrors.SyntaxError, message)
}

func raiseStackOverflow(ctx *Context) bool {
	return raise(ctx, ierrors.StackOverflowError, "stack overflow")
}

func raiseOSError(ctx *Context, err error) bool {
	return raise(ctx, ierrors.OSError, err.Error())
}

// raiseOutOfMemory signals the hard-limit failure using the pre-allocated
// sentinel (spec §4.B, §4.F): no traceback capture, since that itself
// would require an allocation that could fail again.
func raiseOutOfMemory(ctx *Context) bool {
	*ctx.ErrSlot = ctx.Errors.OOM
	return false
}

// raiseBindError maps env.Bind's structured failure kinds onto the
// BindingError runtime kind (spec §4.C, §7).
func raiseBindError(ctx *Context, bindErr error) bool {
	be, ok := bindErr.(*env.BindError)
	if !ok {
		return raise(ctx, ierrors.BindingError, bindErr.Error())
	}
	return raise(ctx, ierrors.BindingError, be.Error())
}
