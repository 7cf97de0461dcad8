package builtins

import (
	"github.com/cwbudde/lispcore/internal/ierrors"
	"github.com/cwbudde/lispcore/internal/object"
)

// typeOf implements `type`: the variant name of its single argument, as a
// Symbol (spec's `type_of`, exposed to source).
func (c *Context) typeOf(args *object.Object) (*object.Object, bool) {
	a, ok := c.unpack1("type", args)
	if !ok {
		return nil, false
	}
	sym, err := c.Heap.NewSymbol(object.TypeOf(a))
	if err != nil {
		return c.oom()
	}
	return sym, true
}

// traceback implements `traceback`: the current evaluation stack's
// traceback, excluding the `(traceback)` call itself. Capture order is
// oldest-call-first, most-recent-call-last (spec §4.F), and the running
// call is the most recent frame on the stack, so its entry is the last
// element of the captured list, not the first.
func (c *Context) tracebackCall(args *object.Object) (*object.Object, bool) {
	if !object.IsNil(args) {
		return c.raise(ierrors.CallError, "traceback expects 0 arguments")
	}
	trace := c.Traceback()
	elems := object.ListSlice(trace)
	if len(elems) == 0 {
		return trace, true
	}
	out, err := c.Heap.NewList(elems[:len(elems)-1]...)
	if err != nil {
		return c.oom()
	}
	return out, true
}

// throw implements `throw`: sets the error slot directly to its argument
// and reports failure, the sole way source code raises an error value.
// The argument must not be Nil.
func (c *Context) throw(args *object.Object) (*object.Object, bool) {
	a, ok := c.unpack1("throw", args)
	if !ok {
		return nil, false
	}
	if object.IsNil(a) {
		return c.raise(ierrors.TypeError, "throw: argument must not be Nil")
	}
	c.SetError(a)
	return nil, false
}
