package parser

import (
	"testing"

	"github.com/cwbudde/lispcore/internal/heap"
	"github.com/cwbudde/lispcore/internal/object"
)

func newHeap(t *testing.T) *heap.Heap {
	t.Helper()
	h := heap.New(heap.WithSoftLimit(1 << 16))
	h.SetRoots(noRoots{})
	return h
}

type noRoots struct{}

func (noRoots) GCRoots() []*object.Object { return nil }

func TestParseAllSimpleForms(t *testing.T) {
	h := newHeap(t)
	exprs, err := ParseAll(h, `(+ 1 2 3)`, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exprs) != 1 {
		t.Fatalf("expected 1 top-level form, got %d", len(exprs))
	}
	if got := object.Repr(exprs[0]); got != "(+ 1 2 3)" {
		t.Fatalf("repr = %q", got)
	}
}

func TestParseAllMultipleForms(t *testing.T) {
	h := newHeap(t)
	exprs, err := ParseAll(h, `1 "two" three`, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exprs) != 3 {
		t.Fatalf("expected 3 forms, got %d", len(exprs))
	}
}

func TestParseQuoteDesugars(t *testing.T) {
	h := newHeap(t)
	exprs, err := ParseAll(h, `'(1 2 3)`, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exprs) != 1 {
		t.Fatalf("expected 1 form, got %d", len(exprs))
	}
	if got := object.Repr(exprs[0]); got != "'(1 2 3)" {
		t.Fatalf("repr = %q, want '(1 2 3)", got)
	}
}

func TestParseAllUnclosedListIsSyntaxError(t *testing.T) {
	h := newHeap(t)
	_, err := ParseAll(h, `(+ 1 2`, "")
	if err == nil {
		t.Fatalf("expected syntax error for unclosed list")
	}
}

func TestNextReportsIncompleteForReplContinuation(t *testing.T) {
	h := newHeap(t)
	p := New(h, `(+ 1 2`, "")
	_, _, err := p.Next()
	if err == nil {
		t.Fatalf("expected ErrIncomplete")
	}
	if _, ok := err.(ErrIncomplete); !ok {
		t.Fatalf("expected ErrIncomplete, got %T: %v", err, err)
	}
	if !p.InProgress() {
		t.Fatalf("parser should report InProgress after an incomplete list")
	}
}

func TestNextEmptyInputIsCleanEOF(t *testing.T) {
	h := newHeap(t)
	p := New(h, ``, "")
	_, ok, err := p.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false at EOF")
	}
}

func TestParseNilLiteral(t *testing.T) {
	h := newHeap(t)
	exprs, err := ParseAll(h, `()`, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !object.IsNil(exprs[0]) {
		t.Fatalf("expected () to parse as Nil")
	}
}
