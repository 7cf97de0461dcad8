// Package heap implements the allocator and tri-color mark-sweep collector
// described in spec §4.B: a non-moving, stop-the-world collector over an
// intrusive linked list of objects, driven by a soft/hard allocation
// threshold supplied at construction and grown geometrically after each
// collection.
package heap

import (
	"fmt"

	"github.com/cwbudde/lispcore/internal/object"
)

// Roots supplies the root set the collector traces from. It is installed
// once, at VM construction, via Heap.SetRoots — mirroring the teacher
// VM's single allocator-roots wiring and persimmon's
// allocator_set_roots(vm->allocator, ...).
type Roots interface {
	// GCRoots returns every directly-reachable object the VM, evaluator,
	// stack, environments and in-flight parser hold live references to.
	GCRoots() []*object.Object
}

const (
	DefaultSoftLimit = 1 << 12 // objects
	DefaultHardLimit = 1 << 22 // objects
	DefaultGrowth    = 4.0 / 3.0
)

// Heap owns every live Object and runs the collector on threshold crossing.
type Heap struct {
	objects *object.Object // head of the intrusive allocation list
	roots   Roots

	size int // current count of live (allocated, not yet swept) objects

	softLimit int
	hardLimit int
	growth    float64

	collecting bool

	// oom is pre-allocated at construction so that signalling
	// out-of-memory can never itself require an allocation.
	oom *object.Object

	// nilObj and trueObj are the interned constants every root set must
	// include (spec §3.3): the unique empty list/falsity value and the
	// canonical truth symbol.
	nilObj  *object.Object
	trueObj *object.Object

	Collections int // number of completed mark-sweep cycles, for diagnostics
}

// Option configures a Heap at construction.
type Option func(*Heap)

func WithSoftLimit(n int) Option { return func(h *Heap) { h.softLimit = n } }
func WithHardLimit(n int) Option { return func(h *Heap) { h.hardLimit = n } }
func WithGrowth(f float64) Option { return func(h *Heap) { h.growth = f } }

func New(opts ...Option) *Heap {
	h := &Heap{
		softLimit: DefaultSoftLimit,
		hardLimit: DefaultHardLimit,
		growth:    DefaultGrowth,
	}
	for _, opt := range opts {
		opt(h)
	}
	// The OOM sentinel is linked into the heap list like any other object
	// so the sweep pass sees it, but it is never freed: mark always seeds
	// h.oom (and the interned nil and true constants below) alongside
	// whatever GCRoots returns, so they survive every collection.
	h.oom = h.link(&object.Object{Kind: object.KindDict, Dict: object.NewDictData()})
	h.nilObj = h.link(&object.Object{Kind: object.KindNil})
	h.trueObj = h.link(&object.Object{Kind: object.KindSymbol, Str: "true"})
	return h
}

// Nil returns the interned, unique empty-list/falsity value.
func (h *Heap) Nil() *object.Object { return h.nilObj }

// True returns the canonical truth symbol bound to the name "true".
func (h *Heap) True() *object.Object { return h.trueObj }

// SetRoots installs the authoritative root source. It must be called
// exactly once, before the first allocation that might trigger a
// collection; calling it twice is a programmer error.
func (h *Heap) SetRoots(r Roots) {
	if h.roots != nil {
		panic("heap: SetRoots called more than once")
	}
	h.roots = r
}

// OutOfMemoryObject returns the pre-allocated sentinel used to signal a
// hard-limit failure without allocating.
func (h *Heap) OutOfMemoryObject() *object.Object { return h.oom }

// link pushes obj onto the intrusive allocation list and accounts for it in
// the live size, returning obj for convenience.
func (h *Heap) link(obj *object.Object) *object.Object {
	obj.Color = object.White
	obj.Next = h.objects
	h.objects = obj
	h.size++
	return obj
}

// ErrOutOfMemory is returned by Allocate when the hard limit would be
// exceeded even after a collection.
type ErrOutOfMemory struct{}

func (ErrOutOfMemory) Error() string { return "out of memory" }

// Allocate returns a fresh white object built from template, running the
// collector first if the post-allocation heap size would cross the soft
// limit. It reports ErrOutOfMemory, without mutating heap state, if the
// hard limit would still be exceeded afterward.
func (h *Heap) Allocate(template object.Object) (*object.Object, error) {
	if h.collecting {
		panic("heap: Allocate called while collecting")
	}
	if h.size+1 >= h.softLimit {
		h.Collect()
		h.softLimit = min(h.size+1+int(float64(h.softLimit)*h.growth), h.hardLimit)
	}
	if h.size+1 > h.hardLimit {
		return nil, ErrOutOfMemory{}
	}
	obj := template
	return h.link(&obj), nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Collect runs one full stop-the-world mark-sweep cycle. It is safe to call
// directly (e.g. from tests asserting the post-invariant) as well as from
// Allocate.
func (h *Heap) Collect() {
	if h.collecting {
		panic("heap: Collect re-entered")
	}
	h.collecting = true
	defer func() { h.collecting = false }()

	h.mark()
	h.sweep()
	h.Collections++
}

func (h *Heap) mark() {
	var gray []*object.Object
	seed := func(o *object.Object) {
		if o == nil {
			return
		}
		if o.Color == object.White {
			o.Color = object.Gray
			gray = append(gray, o)
		}
	}

	if h.roots != nil {
		for _, r := range h.roots.GCRoots() {
			seed(r)
		}
	}
	seed(h.oom)
	seed(h.nilObj)
	seed(h.trueObj)

	for len(gray) > 0 {
		obj := gray[len(gray)-1]
		gray = gray[:len(gray)-1]
		for _, child := range obj.Children() {
			seed(child)
		}
		obj.Color = object.Black
	}
}

func (h *Heap) sweep() {
	var prev *object.Object
	count := 0
	for it := h.objects; it != nil; {
		next := it.Next
		if it.Color == object.Black {
			it.Color = object.White
			prev = it
			count++
		} else {
			// unreachable: unlink
			if prev == nil {
				h.objects = next
			} else {
				prev.Next = next
			}
		}
		it = next
	}
	h.size = count
}

// Size returns the number of currently live objects, for diagnostics.
func (h *Heap) Size() int { return h.size }

// Stats is a small diagnostic snapshot, useful for tests and the debug CLI.
type Stats struct {
	Live        int
	SoftLimit   int
	HardLimit   int
	Collections int
}

func (h *Heap) Stats() Stats {
	return Stats{Live: h.size, SoftLimit: h.softLimit, HardLimit: h.hardLimit, Collections: h.Collections}
}

func (s Stats) String() string {
	return fmt.Sprintf("live=%d soft=%d hard=%d gcs=%d", s.Live, s.SoftLimit, s.HardLimit, s.Collections)
}
