// Package builtins defines the primitive bindings the globals environment
// exposes to source programs (spec §6 "Source language surface"):
// arithmetic, comparison, list, dict, string/display, and introspection
// primitives. Each is a Primitive object — a host closure over a shared
// Context rather than the VM itself, so this package never imports
// internal/vm or internal/evaluator and stays free of their call-stack
// machinery.
package builtins

import (
	"io"

	"github.com/cwbudde/lispcore/internal/heap"
	"github.com/cwbudde/lispcore/internal/ierrors"
	"github.com/cwbudde/lispcore/internal/object"
)

// Context is the shared state every primitive closes over: the heap to
// allocate results from, the error-kind constants to build structured
// error values from, a callback to set the VM's error slot (the same
// slot `throw` and a failing step share), and a callback to capture the
// live evaluation stack's traceback for error construction.
type Context struct {
	Heap      *heap.Heap
	Errors    *ierrors.Constants
	SetError  func(*object.Object)
	Traceback func() *object.Object

	// Stdout is where `print` writes; Install sets it to the writer its
	// caller passes, or to io.Discard when that is nil, so callers (e.g.
	// tests) choose whether primitive output is shown.
	Stdout io.Writer
}

func (c *Context) raise(kind ierrors.Kind, message string) (*object.Object, bool) {
	c.SetError(ierrors.New(c.Heap, c.Errors, kind, message, c.Traceback()))
	return nil, false
}

func (c *Context) oom() (*object.Object, bool) {
	c.SetError(c.Errors.OOM)
	return nil, false
}

func (c *Context) bool(v bool) *object.Object {
	if v {
		return c.Heap.True()
	}
	return c.Heap.Nil()
}
