// Package vm wires the heap, evaluation stack, environment chain, interned
// error constants and primitive bindings into the single façade the REPL
// and CLI drive: spec §4's "the VM" as one constructible, GC-rootable
// value.
package vm

import (
	"io"

	"github.com/cwbudde/lispcore/internal/builtins"
	"github.com/cwbudde/lispcore/internal/env"
	"github.com/cwbudde/lispcore/internal/evalstack"
	"github.com/cwbudde/lispcore/internal/evaluator"
	"github.com/cwbudde/lispcore/internal/heap"
	"github.com/cwbudde/lispcore/internal/ierrors"
	"github.com/cwbudde/lispcore/internal/object"
	"github.com/cwbudde/lispcore/internal/parser"
)

// VM owns every piece of live state a running program needs: the heap, the
// bounded evaluation stack, the global environment, the interned error
// constants, and the pending error slot primitives and the evaluator share.
type VM struct {
	Heap    *heap.Heap
	Stack   *evalstack.Stack
	Globals *object.Object
	Errors  *ierrors.Constants

	errSlot *object.Object
	ctx     *evaluator.Context

	// activeParser, when non-nil, is the parser currently mid-read — its
	// in-progress expression stack joins the root set for the duration of
	// a single REPL/file read (spec §3.3).
	activeParser *parser.Parser
}

// Option configures a VM at construction.
type Option func(*VM, *[]heap.Option)

// WithHeapOptions forwards options to the underlying heap.New call.
func WithHeapOptions(opts ...heap.Option) Option {
	return func(_ *VM, ho *[]heap.Option) { *ho = append(*ho, opts...) }
}

// WithStackCapacity overrides the default evaluation-stack limits.
func WithStackCapacity(maxFrames, maxScratch int) Option {
	return func(v *VM, _ *[]heap.Option) { v.Stack = evalstack.NewWithCapacity(maxFrames, maxScratch) }
}

// New builds a VM with its globals populated by every primitive binding
// (internal/builtins). stdout is where `print` writes; nil means
// io.Discard. readFile backs `import` and has no default: the caller
// supplies a filesystem-backed reader, since this package doesn't import os
// directly.
func New(stdout io.Writer, readFile func(path string) (string, error)) (*VM, error) {
	return NewWithOptions(stdout, readFile)
}

// NewWithOptions is New with Heap/Stack tuning options, primarily for tests
// that want small limits to exercise StackOverflow/OutOfMemory paths.
func NewWithOptions(stdout io.Writer, readFile func(path string) (string, error), opts ...Option) (*VM, error) {
	v := &VM{Stack: evalstack.New()}
	var heapOpts []heap.Option
	for _, opt := range opts {
		opt(v, &heapOpts)
	}
	v.Heap = heap.New(heapOpts...)
	v.Heap.SetRoots(v)

	errs, err := ierrors.NewConstants(v.Heap)
	if err != nil {
		return nil, err
	}
	v.Errors = errs

	globals, err := env.Create(v.Heap, v.Heap.Nil())
	if err != nil {
		return nil, err
	}
	v.Globals = globals

	v.errSlot = v.Heap.Nil()
	if err := builtins.Install(v.Heap, v.Globals, v.Errors, v.setError, v.captureTraceback, stdout); err != nil {
		return nil, err
	}

	v.ctx = evaluator.NewContext(v.Heap, v.Stack, v.Errors, &v.errSlot, readFile)
	return v, nil
}

func (v *VM) setError(errObj *object.Object) { v.errSlot = errObj }

// captureTraceback lets a primitive (`traceback`) ask for the same
// traceback capture the evaluator itself uses when raising an error,
// without importing internal/evaluator.
func (v *VM) captureTraceback() *object.Object {
	return evaluator.CaptureTraceback(v.ctx)
}

// Eval evaluates expr in the global environment, per spec §4.E's Eval
// contract: the evaluation stack is empty on entry and on return.
func (v *VM) Eval(expr *object.Object) (value *object.Object, errVal *object.Object, ok bool) {
	return evaluator.Eval(v.ctx, v.Globals, expr)
}

// SetActiveParser installs p's in-progress expression stack into the root
// set for the duration of a read; pass nil to clear it once the read
// completes. The REPL and file-mode drivers call this around their whole
// parse loop.
func (v *VM) SetActiveParser(p *parser.Parser) { v.activeParser = p }

// GCRoots implements heap.Roots: every directly-reachable object the VM,
// its globals, its evaluation stack, its interned error constants, and any
// in-flight parser hold live.
func (v *VM) GCRoots() []*object.Object {
	roots := []*object.Object{v.Globals, v.errSlot}
	roots = append(roots, v.Errors.GCRoots()...)
	roots = append(roots, v.Stack.GCRoots()...)
	roots = append(roots, v.ctx.GCRoots()...)
	if v.activeParser != nil {
		roots = append(roots, v.activeParser.GCRoots()...)
	}
	return roots
}
