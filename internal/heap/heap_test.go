package heap

import (
	"testing"

	"github.com/cwbudde/lispcore/internal/object"
)

type fakeRoots struct {
	objs []*object.Object
}

func (f *fakeRoots) GCRoots() []*object.Object { return f.objs }

func TestCollectFreesUnreachable(t *testing.T) {
	h := New(WithSoftLimit(1<<20), WithHardLimit(1<<22))
	roots := &fakeRoots{}
	h.SetRoots(roots)

	kept, _ := h.NewInt(1)
	_, _ = h.NewInt(2) // unreachable

	roots.objs = []*object.Object{kept}

	before := h.Size()
	h.Collect()
	after := h.Size()

	if after >= before {
		t.Fatalf("expected Collect to shrink live set: before=%d after=%d", before, after)
	}

	t.Run("all objects white after collection", func(t *testing.T) {
		for it := h.objects; it != nil; it = it.Next {
			if it.Color != object.White {
				t.Errorf("object %v has color %v, want White", it, it.Color)
			}
		}
	})
}

func TestCollectTracesConsChildren(t *testing.T) {
	h := New()
	roots := &fakeRoots{}
	h.SetRoots(roots)

	a, _ := h.NewInt(1)
	b, _ := h.NewInt(2)
	cons, _ := h.NewCons(a, h.Nil())
	cons2, _ := h.NewCons(b, cons)

	roots.objs = []*object.Object{cons2}
	h.Collect()

	if !object.Equals(cons2.First, b) {
		t.Fatalf("cons2.First mutated by GC")
	}
	if !object.Equals(cons2.Rest.First, a) {
		t.Fatalf("nested cons child not preserved")
	}
}

func TestAllocateGrowsSoftLimitAfterCollection(t *testing.T) {
	h := New(WithSoftLimit(4), WithHardLimit(1000))
	roots := &fakeRoots{}
	h.SetRoots(roots)

	for i := 0; i < 20; i++ {
		if _, err := h.NewInt(int64(i)); err != nil {
			t.Fatalf("unexpected allocation failure at i=%d: %v", i, err)
		}
	}
}

func TestAllocateReportsOutOfMemoryWithoutMutatingState(t *testing.T) {
	h := New(WithSoftLimit(2), WithHardLimit(3))
	roots := &fakeRoots{}
	h.SetRoots(roots)

	sizeBefore := h.Size()
	var lastErr error
	for i := 0; i < 10; i++ {
		_, err := h.NewInt(int64(i))
		if err != nil {
			lastErr = err
			break
		}
	}
	if lastErr == nil {
		t.Fatalf("expected an out-of-memory error")
	}
	if _, ok := lastErr.(ErrOutOfMemory); !ok {
		t.Fatalf("expected ErrOutOfMemory, got %T: %v", lastErr, lastErr)
	}
	if h.Size() != sizeBefore {
		t.Fatalf("out-of-memory allocation mutated heap size: before=%d after=%d", sizeBefore, h.Size())
	}

	// The heap must remain usable: a later Collect + smaller request can
	// still succeed once the hard limit's room is re-established is not
	// guaranteed here (hard limit is fixed), but Collect itself must not
	// panic or corrupt state.
	h.Collect()
}
