package builtins

import (
	"fmt"

	"github.com/cwbudde/lispcore/internal/ierrors"
	"github.com/cwbudde/lispcore/internal/object"
)

// plus implements `+`: sums every argument, 0 for no arguments.
func (c *Context) plus(args *object.Object) (*object.Object, bool) {
	var acc int64
	for _, a := range object.ListSlice(args) {
		v, ok := c.requireInt(a)
		if !ok {
			return nil, false
		}
		acc += v
	}
	return c.newInt(acc)
}

// minus implements `-`: with no arguments yields 0; with one argument
// yields it unchanged; with more, subtracts the rest from the first.
func (c *Context) minus(args *object.Object) (*object.Object, bool) {
	if object.IsNil(args) {
		return c.newInt(0)
	}
	first, ok := c.requireInt(args.First)
	if !ok {
		return nil, false
	}
	acc := first
	for _, a := range object.ListSlice(args.Rest) {
		v, ok := c.requireInt(a)
		if !ok {
			return nil, false
		}
		acc -= v
	}
	return c.newInt(acc)
}

// multiply implements `*`: product of every argument, 1 for no arguments.
func (c *Context) multiply(args *object.Object) (*object.Object, bool) {
	acc := int64(1)
	for _, a := range object.ListSlice(args) {
		v, ok := c.requireInt(a)
		if !ok {
			return nil, false
		}
		acc *= v
	}
	return c.newInt(acc)
}

// divide implements `/`: with no arguments yields 1; with one argument
// yields it unchanged (division's identity); with more, divides the
// first by each of the rest in turn. A zero divisor among the rest is a
// ZeroDivisionError — the first argument itself is never checked against
// zero, since it is the dividend, not a divisor.
func (c *Context) divide(args *object.Object) (*object.Object, bool) {
	if object.IsNil(args) {
		return c.newInt(1)
	}
	first, ok := c.requireInt(args.First)
	if !ok {
		return nil, false
	}
	acc := first
	for _, a := range object.ListSlice(args.Rest) {
		v, ok := c.requireInt(a)
		if !ok {
			return nil, false
		}
		if v == 0 {
			return c.raise(ierrors.ZeroDivisionError, "division by zero")
		}
		acc /= v
	}
	return c.newInt(acc)
}

func (c *Context) requireInt(o *object.Object) (int64, bool) {
	if object.IsNil(o) || o.Kind != object.KindInt {
		c.raise(ierrors.TypeError, fmt.Sprintf("expected Int, got %s", object.TypeOf(o)))
		return 0, false
	}
	return o.Int, true
}

func (c *Context) newInt(v int64) (*object.Object, bool) {
	r, err := c.Heap.NewInt(v)
	if err != nil {
		return c.oom()
	}
	return r, true
}
