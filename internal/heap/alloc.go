package heap

import "github.com/cwbudde/lispcore/internal/object"

// These constructors are the only place callers should build heap objects:
// every one goes through Allocate so the collector sees it the moment it
// exists, and every one can trigger a GC (and therefore an OutOfMemory
// failure) — callers holding other freshly-built objects across such a call
// must anchor them in a frame scratch local first (see internal/evalstack).

func (h *Heap) NewInt(v int64) (*object.Object, error) {
	return h.Allocate(object.Object{Kind: object.KindInt, Int: v})
}

func (h *Heap) NewString(s string) (*object.Object, error) {
	return h.Allocate(object.Object{Kind: object.KindString, Str: s})
}

func (h *Heap) NewSymbol(s string) (*object.Object, error) {
	return h.Allocate(object.Object{Kind: object.KindSymbol, Str: s})
}

// NewCons builds {first, rest}. Per the invariant in spec §3.2, rest must
// be Cons or Nil; callers that violate this are constructing an improper
// list and Cons-consuming code downstream treats it as a shape error, not a
// panic.
func (h *Heap) NewCons(first, rest *object.Object) (*object.Object, error) {
	return h.Allocate(object.Object{Kind: object.KindCons, First: first, Rest: rest})
}

func (h *Heap) NewDict() (*object.Object, error) {
	return h.Allocate(object.Object{Kind: object.KindDict, Dict: object.NewDictData()})
}

func (h *Heap) NewPrimitive(name string, fn object.PrimitiveFunc) (*object.Object, error) {
	return h.Allocate(object.Object{Kind: object.KindPrimitive, PrimID: name, Prim: fn})
}

func (h *Heap) NewClosure(env, params, body *object.Object) (*object.Object, error) {
	return h.Allocate(object.Object{Kind: object.KindClosure, Call: &object.Callable{Env: env, Params: params, Body: body}})
}

func (h *Heap) NewMacro(env, params, body *object.Object) (*object.Object, error) {
	return h.Allocate(object.Object{Kind: object.KindMacro, Call: &object.Callable{Env: env, Params: params, Body: body}})
}

// NewList builds a proper list from elems in order, allocating len(elems)
// Cons cells. The caller is responsible for anchoring elems across the
// allocations that build it if any element was itself freshly allocated in
// the same step (see evalstack.Frame.Scratch).
func (h *Heap) NewList(elems ...*object.Object) (*object.Object, error) {
	result := h.Nil()
	for i := len(elems) - 1; i >= 0; i-- {
		var err error
		result, err = h.NewCons(elems[i], result)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
