package builtins

import (
	"fmt"

	"github.com/cwbudde/lispcore/internal/ierrors"
	"github.com/cwbudde/lispcore/internal/object"
)

// list implements `list`: its argument list, unchanged, is already the
// result.
func (c *Context) list(args *object.Object) (*object.Object, bool) {
	return args, true
}

// first implements `first`: the argument must itself be a proper list
// headed by a Cons — `(first ())` is a TypeError (spec §8 scenario 4), not
// an out-of-range miss.
func (c *Context) first(args *object.Object) (*object.Object, bool) {
	lst, ok := c.unpack1("first", args)
	if !ok {
		return nil, false
	}
	if object.IsNil(lst) || lst.Kind != object.KindCons {
		return c.raise(ierrors.TypeError, fmt.Sprintf("first: expected Cons, got %s", object.TypeOf(lst)))
	}
	return lst.First, true
}

// rest implements `rest`: the tail of a Cons-headed argument.
func (c *Context) rest(args *object.Object) (*object.Object, bool) {
	lst, ok := c.unpack1("rest", args)
	if !ok {
		return nil, false
	}
	if object.IsNil(lst) || lst.Kind != object.KindCons {
		return c.raise(ierrors.TypeError, fmt.Sprintf("rest: expected Cons, got %s", object.TypeOf(lst)))
	}
	return lst.Rest, true
}

// prepend implements `prepend`: (prepend element list) conses element
// onto list.
func (c *Context) prepend(args *object.Object) (*object.Object, bool) {
	elem, lst, ok := c.unpack2("prepend", args)
	if !ok {
		return nil, false
	}
	if !object.IsNil(lst) && lst.Kind != object.KindCons {
		return c.raise(ierrors.TypeError, fmt.Sprintf("prepend: expected Cons or Nil, got %s", object.TypeOf(lst)))
	}
	nc, err := c.Heap.NewCons(elem, lst)
	if err != nil {
		return c.oom()
	}
	return nc, true
}

// reverse implements `reverse`: a fresh list with elements in reverse
// order, leaving the argument untouched (it may still be reachable
// elsewhere, unlike the evaluator's own in-place reversal of its
// internal accumulators).
func (c *Context) reverse(args *object.Object) (*object.Object, bool) {
	lst, ok := c.unpack1("reverse", args)
	if !ok {
		return nil, false
	}
	if !object.IsNil(lst) && lst.Kind != object.KindCons {
		return c.raise(ierrors.TypeError, fmt.Sprintf("reverse: expected Cons or Nil, got %s", object.TypeOf(lst)))
	}
	elems := object.ListSlice(lst)
	out := c.Heap.Nil()
	for _, e := range elems {
		nc, err := c.Heap.NewCons(e, out)
		if err != nil {
			return c.oom()
		}
		out = nc
	}
	return out, true
}

// concat implements `concat`: appends every argument list in order into a
// fresh list.
func (c *Context) concat(args *object.Object) (*object.Object, bool) {
	var elems []*object.Object
	for _, a := range object.ListSlice(args) {
		if !object.IsNil(a) && a.Kind != object.KindCons {
			return c.raise(ierrors.TypeError, fmt.Sprintf("concat: expected Cons or Nil, got %s", object.TypeOf(a)))
		}
		elems = append(elems, object.ListSlice(a)...)
	}
	out, err := c.Heap.NewList(elems...)
	if err != nil {
		return c.oom()
	}
	return out, true
}
