package ierrors

import (
	"github.com/cwbudde/lispcore/internal/heap"
	"github.com/cwbudde/lispcore/internal/object"
)

// Constants interns the small set of symbols error construction needs, so
// that building an error Dict never has to allocate a fresh Symbol for
// "type"/"message"/"traceback" or for the kind name. They are part of the
// VM's interned-constants table (spec §3.3, §4.G) and therefore part of
// the GC root set — callers must keep the Constants reachable (the VM
// façade does, via its own GCRoots).
type Constants struct {
	TypeKey      *object.Object
	MessageKey   *object.Object
	TracebackKey *object.Object
	kindSymbols  [len(names)]*object.Object

	// OOM is the pre-allocated OutOfMemoryError Dict (spec §4.B, §4.F):
	// signalling it must never itself require an allocation.
	OOM *object.Object
}

func NewConstants(h *heap.Heap) (*Constants, error) {
	c := &Constants{}
	var err error
	if c.TypeKey, err = h.NewSymbol("type"); err != nil {
		return nil, err
	}
	if c.MessageKey, err = h.NewSymbol("message"); err != nil {
		return nil, err
	}
	if c.TracebackKey, err = h.NewSymbol("traceback"); err != nil {
		return nil, err
	}
	for i, n := range names {
		sym, err := h.NewSymbol(n)
		if err != nil {
			return nil, err
		}
		c.kindSymbols[i] = sym
	}

	msg, err := h.NewString("out of memory")
	if err != nil {
		return nil, err
	}
	c.OOM, err = c.build(h, OutOfMemoryError, msg, h.Nil())
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GCRoots exposes the interned table to the heap's root walk.
func (c *Constants) GCRoots() []*object.Object {
	roots := []*object.Object{c.TypeKey, c.MessageKey, c.TracebackKey, c.OOM}
	roots = append(roots, c.kindSymbols[:]...)
	return roots
}

func (c *Constants) build(h *heap.Heap, kind Kind, message *object.Object, traceback *object.Object) (*object.Object, error) {
	d, err := h.NewDict()
	if err != nil {
		return nil, err
	}
	d.Dict.Put(c.TypeKey, c.kindSymbols[kind])
	d.Dict.Put(c.MessageKey, message)
	d.Dict.Put(c.TracebackKey, traceback)
	return d, nil
}

// New builds a fresh error Dict of the given kind and message, with the
// given traceback list (most-recent-call-last; see internal/evaluator's
// traceback capture). On allocation failure inside error construction
// itself, New falls back to the pre-allocated OOM sentinel rather than
// propagating a second allocation failure.
func New(h *heap.Heap, c *Constants, kind Kind, message string, traceback *object.Object) *object.Object {
	msgObj, err := h.NewString(message)
	if err != nil {
		return c.OOM
	}
	d, err := c.build(h, kind, msgObj, traceback)
	if err != nil {
		return c.OOM
	}
	return d
}

// KindOf inspects an error Dict's `type` entry and reports the matching
// Kind, if any.
func (c *Constants) KindOf(errObj *object.Object) (Kind, bool) {
	if object.IsNil(errObj) || errObj.Kind != object.KindDict {
		return 0, false
	}
	v, ok := errObj.Dict.Get(c.TypeKey)
	if !ok {
		return 0, false
	}
	for i, sym := range c.kindSymbols {
		if object.Equals(sym, v) {
			return Kind(i), true
		}
	}
	return 0, false
}

// Message extracts the `message` string from an error Dict, if present.
func Message(errObj *object.Object) (string, bool) {
	if object.IsNil(errObj) || errObj.Kind != object.KindDict {
		return "", false
	}
	ks, vs := errObj.Dict.Entries()
	for i, k := range ks {
		if !object.IsNil(k) && k.Kind == object.KindSymbol && k.Str == "message" {
			if !object.IsNil(vs[i]) && vs[i].Kind == object.KindString {
				return vs[i].Str, true
			}
		}
	}
	return "", false
}

// Traceback extracts the `traceback` list from an error Dict, if present.
func Traceback(errObj *object.Object) (*object.Object, bool) {
	if object.IsNil(errObj) || errObj.Kind != object.KindDict {
		return nil, false
	}
	ks, vs := errObj.Dict.Entries()
	for i, k := range ks {
		if !object.IsNil(k) && k.Kind == object.KindSymbol && k.Str == "traceback" {
			return vs[i], true
		}
	}
	return nil, false
}
