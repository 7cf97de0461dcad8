package builtins

import (
	"fmt"

	"github.com/cwbudde/lispcore/internal/ierrors"
	"github.com/cwbudde/lispcore/internal/object"
)

// eqp implements `eq?`: structural/identity equality per object.Equals,
// yielding the canonical truth symbol or Nil — never a bare host bool.
func (c *Context) eqp(args *object.Object) (*object.Object, bool) {
	lhs, rhs, ok := c.unpack2("eq?", args)
	if !ok {
		return nil, false
	}
	return c.bool(object.Equals(lhs, rhs)), true
}

// not implements `not`: true only for Nil.
func (c *Context) not(args *object.Object) (*object.Object, bool) {
	a, ok := c.unpack1("not", args)
	if !ok {
		return nil, false
	}
	return c.bool(object.IsNil(a)), true
}

func (c *Context) unpack1(form string, args *object.Object) (*object.Object, bool) {
	if object.ListLen(args) != 1 {
		c.raise(ierrors.CallError, fmt.Sprintf("%s expects 1 argument, got %d", form, object.ListLen(args)))
		return nil, false
	}
	return args.First, true
}

func (c *Context) unpack2(form string, args *object.Object) (*object.Object, *object.Object, bool) {
	if object.ListLen(args) != 2 {
		c.raise(ierrors.CallError, fmt.Sprintf("%s expects 2 arguments, got %d", form, object.ListLen(args)))
		return nil, nil, false
	}
	return args.First, args.Rest.First, true
}
