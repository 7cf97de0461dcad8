package env_test

import (
	"testing"

	"github.com/cwbudde/lispcore/internal/env"
	"github.com/cwbudde/lispcore/internal/heap"
	"github.com/cwbudde/lispcore/internal/object"
)

type noRoots struct{ o []*object.Object }

func (r *noRoots) GCRoots() []*object.Object { return r.o }

func newHeap(t *testing.T) (*heap.Heap, *noRoots) {
	t.Helper()
	h := heap.New()
	r := &noRoots{}
	h.SetRoots(r)
	return h, r
}

func mustInt(t *testing.T, h *heap.Heap, n int64) *object.Object {
	t.Helper()
	v, err := h.NewInt(n)
	if err != nil {
		t.Fatalf("NewInt: %v", err)
	}
	return v
}

func mustList(t *testing.T, h *heap.Heap, elems ...*object.Object) *object.Object {
	t.Helper()
	lst, err := h.NewList(elems...)
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	return lst
}

func TestDefineAndFind(t *testing.T) {
	h, roots := newHeap(t)
	scope, err := env.Create(h, h.Nil())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	roots.o = []*object.Object{scope}

	if err := env.Define(h, scope, "x", mustInt(t, h, 42)); err != nil {
		t.Fatalf("Define: %v", err)
	}
	v, found := env.Find(scope, "x")
	if !found {
		t.Fatalf("expected to find x")
	}
	if object.Repr(v) != "42" {
		t.Fatalf("x = %s, want 42", object.Repr(v))
	}

	if _, found := env.Find(scope, "y"); found {
		t.Fatalf("y should not be bound")
	}
}

func TestFindWalksOuterScopes(t *testing.T) {
	h, roots := newHeap(t)
	outer, err := env.Create(h, h.Nil())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	roots.o = []*object.Object{outer}
	if err := env.Define(h, outer, "x", mustInt(t, h, 1)); err != nil {
		t.Fatalf("Define: %v", err)
	}

	inner, err := env.Create(h, outer)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	roots.o = []*object.Object{inner}
	if err := env.Define(h, inner, "y", mustInt(t, h, 2)); err != nil {
		t.Fatalf("Define: %v", err)
	}

	if v, found := env.Find(inner, "x"); !found || object.Repr(v) != "1" {
		t.Fatalf("expected to find outer x=1, got %v %v", v, found)
	}
	if v, found := env.Find(inner, "y"); !found || object.Repr(v) != "2" {
		t.Fatalf("expected to find inner y=2, got %v %v", v, found)
	}

	// An inner definition does not leak back into the outer scope.
	if _, found := env.Find(outer, "y"); found {
		t.Fatalf("y should not be visible from outer")
	}
}

func TestBindSimpleList(t *testing.T) {
	h, roots := newHeap(t)
	scope, err := env.Create(h, h.Nil())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	roots.o = []*object.Object{scope}

	symX, _ := h.NewSymbol("x")
	symY, _ := h.NewSymbol("y")
	target := mustList(t, h, symX, symY)
	value := mustList(t, h, mustInt(t, h, 1), mustInt(t, h, 2))

	if err := env.Bind(h, scope, target, value); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if v, found := env.Find(scope, "x"); !found || object.Repr(v) != "1" {
		t.Fatalf("x = %v %v", v, found)
	}
	if v, found := env.Find(scope, "y"); !found || object.Repr(v) != "2" {
		t.Fatalf("y = %v %v", v, found)
	}
}

func TestBindVariadicTail(t *testing.T) {
	h, roots := newHeap(t)
	scope, err := env.Create(h, h.Nil())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	roots.o = []*object.Object{scope}

	symX, _ := h.NewSymbol("x")
	symAmp, _ := h.NewSymbol("&")
	symRest, _ := h.NewSymbol("rest")
	target := mustList(t, h, symX, symAmp, symRest)
	value := mustList(t, h, mustInt(t, h, 1), mustInt(t, h, 2), mustInt(t, h, 3))

	if err := env.Bind(h, scope, target, value); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if v, found := env.Find(scope, "x"); !found || object.Repr(v) != "1" {
		t.Fatalf("x = %v %v", v, found)
	}
	rest, found := env.Find(scope, "rest")
	if !found {
		t.Fatalf("expected rest binding")
	}
	if object.Repr(rest) != "(2 3)" {
		t.Fatalf("rest = %s, want (2 3)", object.Repr(rest))
	}
}

func TestBindCountMismatchIsError(t *testing.T) {
	h, roots := newHeap(t)
	scope, err := env.Create(h, h.Nil())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	roots.o = []*object.Object{scope}

	symX, _ := h.NewSymbol("x")
	symY, _ := h.NewSymbol("y")
	target := mustList(t, h, symX, symY)
	value := mustList(t, h, mustInt(t, h, 1))

	err = env.Bind(h, scope, target, value)
	if err == nil {
		t.Fatalf("expected a value-count-mismatch error")
	}
	bindErr, ok := err.(*env.BindError)
	if !ok {
		t.Fatalf("error type = %T, want *env.BindError", err)
	}
	if bindErr.Kind != env.ValueCountMismatch {
		t.Fatalf("bind error kind = %v, want ValueCountMismatch", bindErr.Kind)
	}
}

// TestBindVariadicTailListShapeMismatchIsError covers `(a & (b c))` bound
// against too few rest values: the tail target after '&' is itself a Cons,
// and its shape must be checked against the assembled rest list before
// apply ever indexes into it, or a too-short rest value slice panics
// instead of reporting ValueCountMismatch.
func TestBindVariadicTailListShapeMismatchIsError(t *testing.T) {
	h, roots := newHeap(t)
	scope, err := env.Create(h, h.Nil())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	roots.o = []*object.Object{scope}

	symA, _ := h.NewSymbol("a")
	symAmp, _ := h.NewSymbol("&")
	symB, _ := h.NewSymbol("b")
	symC, _ := h.NewSymbol("c")
	tailTarget := mustList(t, h, symB, symC)
	target := mustList(t, h, symA, symAmp, tailTarget)
	value := mustList(t, h, mustInt(t, h, 1), mustInt(t, h, 2))

	err = env.Bind(h, scope, target, value)
	if err == nil {
		t.Fatalf("expected a value-count-mismatch error, bind succeeded")
	}
	bindErr, ok := err.(*env.BindError)
	if !ok {
		t.Fatalf("error type = %T, want *env.BindError", err)
	}
	if bindErr.Kind != env.ValueCountMismatch {
		t.Fatalf("bind error kind = %v, want ValueCountMismatch", bindErr.Kind)
	}
}

// TestBindVariadicTailListShapeMatch covers the success path for the same
// nested-Cons-after-'&' shape, with exactly the right number of rest
// values.
func TestBindVariadicTailListShapeMatch(t *testing.T) {
	h, roots := newHeap(t)
	scope, err := env.Create(h, h.Nil())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	roots.o = []*object.Object{scope}

	symA, _ := h.NewSymbol("a")
	symAmp, _ := h.NewSymbol("&")
	symB, _ := h.NewSymbol("b")
	symC, _ := h.NewSymbol("c")
	tailTarget := mustList(t, h, symB, symC)
	target := mustList(t, h, symA, symAmp, tailTarget)
	value := mustList(t, h, mustInt(t, h, 1), mustInt(t, h, 2), mustInt(t, h, 3))

	if err := env.Bind(h, scope, target, value); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if v, found := env.Find(scope, "a"); !found || object.Repr(v) != "1" {
		t.Fatalf("a = %v %v", v, found)
	}
	if v, found := env.Find(scope, "b"); !found || object.Repr(v) != "2" {
		t.Fatalf("b = %v %v", v, found)
	}
	if v, found := env.Find(scope, "c"); !found || object.Repr(v) != "3" {
		t.Fatalf("c = %v %v", v, found)
	}
}
