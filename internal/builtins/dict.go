package builtins

import (
	"fmt"

	"github.com/cwbudde/lispcore/internal/ierrors"
	"github.com/cwbudde/lispcore/internal/object"
)

// dict implements `dict`: alternating key/value arguments build a fresh
// Dict; an odd argument count is a CallError (spec §6).
func (c *Context) dict(args *object.Object) (*object.Object, bool) {
	elems := object.ListSlice(args)
	if len(elems)%2 != 0 {
		return c.raise(ierrors.CallError, fmt.Sprintf("dict expects an even number of arguments, got %d", len(elems)))
	}
	d, err := c.Heap.NewDict()
	if err != nil {
		return c.oom()
	}
	for i := 0; i < len(elems); i += 2 {
		d.Dict.Put(elems[i], elems[i+1])
	}
	return d, true
}

// get implements `get`: (get key dict); a missing key is a KeyError.
func (c *Context) get(args *object.Object) (*object.Object, bool) {
	key, d, ok := c.unpack2("get", args)
	if !ok {
		return nil, false
	}
	if object.IsNil(d) || d.Kind != object.KindDict {
		return c.raise(ierrors.TypeError, fmt.Sprintf("get: expected Dict, got %s", object.TypeOf(d)))
	}
	v, found := d.Dict.Get(key)
	if !found {
		return c.raise(ierrors.KeyError, fmt.Sprintf("key not found: %s", object.Repr(key)))
	}
	return v, true
}

// put implements `put`: (put key value dict); mutates dict in place and
// returns it, matching the source's in-place dict-storage semantics
// (dicts are logically immutable only to user code before they are
// reachable — see spec §3.2 — but `put` is itself the sanctioned mutator).
func (c *Context) put(args *object.Object) (*object.Object, bool) {
	elems := object.ListSlice(args)
	if len(elems) != 3 {
		return c.raise(ierrors.CallError, fmt.Sprintf("put expects 3 arguments, got %d", len(elems)))
	}
	key, value, d := elems[0], elems[1], elems[2]
	if object.IsNil(d) || d.Kind != object.KindDict {
		return c.raise(ierrors.TypeError, fmt.Sprintf("put: expected Dict, got %s", object.TypeOf(d)))
	}
	d.Dict.Put(key, value)
	return d, true
}
