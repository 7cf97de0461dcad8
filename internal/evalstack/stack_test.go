package evalstack

import (
	"testing"

	"github.com/cwbudde/lispcore/internal/object"
)

func TestPushPopTop(t *testing.T) {
	s := New()
	if !s.Empty() {
		t.Fatalf("new stack should be empty")
	}
	f1 := &Frame{Kind: KindDo}
	if err := s.Push(f1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Top() != f1 {
		t.Fatalf("Top() did not return pushed frame")
	}
	popped := s.Pop()
	if popped != f1 {
		t.Fatalf("Pop() returned wrong frame")
	}
	if !s.Empty() {
		t.Fatalf("stack should be empty after popping only frame")
	}
}

func TestSwapTopReplacesWithoutGrowingDepth(t *testing.T) {
	s := New()
	_ = s.Push(&Frame{Kind: KindCall})
	depthBefore := s.Depth()

	replacement := &Frame{Kind: KindDo}
	s.SwapTop(replacement)

	if s.Depth() != depthBefore {
		t.Fatalf("SwapTop changed depth: before=%d after=%d", depthBefore, s.Depth())
	}
	if s.Top() != replacement {
		t.Fatalf("SwapTop did not install replacement frame")
	}
}

func TestPushBeyondCapacityOverflows(t *testing.T) {
	s := NewWithCapacity(3, 100)
	for i := 0; i < 3; i++ {
		if err := s.Push(&Frame{Kind: KindDo}); err != nil {
			t.Fatalf("unexpected overflow at frame %d: %v", i, err)
		}
	}
	if err := s.Push(&Frame{Kind: KindDo}); err == nil {
		t.Fatalf("expected stack overflow")
	} else if _, ok := err.(ErrStackOverflow); !ok {
		t.Fatalf("expected ErrStackOverflow, got %T", err)
	}
}

func TestCreateLocalBeyondCapacityOverflows(t *testing.T) {
	s := NewWithCapacity(100, 2)
	_ = s.Push(&Frame{Kind: KindCall})
	if _, err := s.CreateLocal(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.CreateLocal(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.CreateLocal(nil); err == nil {
		t.Fatalf("expected scratch-local overflow")
	}
}

func TestIterFromTopOrder(t *testing.T) {
	s := New()
	_ = s.Push(&Frame{Kind: KindDo, Expr: &object.Object{Kind: object.KindInt, Int: 1}})
	_ = s.Push(&Frame{Kind: KindCall, Expr: &object.Object{Kind: object.KindInt, Int: 2}})

	var seen []int64
	s.IterFromTop(func(f *Frame) bool {
		seen = append(seen, f.Expr.Int)
		return true
	})
	if len(seen) != 2 || seen[0] != 2 || seen[1] != 1 {
		t.Fatalf("IterFromTop order wrong: %v", seen)
	}
}

func TestGCRootsCollectsScratchAndFields(t *testing.T) {
	s := New()
	env := &object.Object{Kind: object.KindCons}
	_ = s.Push(&Frame{Kind: KindCall, Env: env})
	local := &object.Object{Kind: object.KindInt, Int: 42}
	_, _ = s.CreateLocal(local)

	roots := s.GCRoots()
	found := false
	for _, r := range roots {
		if r == local {
			found = true
		}
	}
	if !found {
		t.Fatalf("scratch local not present in GCRoots")
	}
}
