package builtins

import (
	"io"
	"strings"

	"github.com/cwbudde/lispcore/internal/object"
)

// str implements `str`: concatenates the print form of every argument
// (space-free, unlike `print`), empty string for no arguments.
func (c *Context) str(args *object.Object) (*object.Object, bool) {
	var sb strings.Builder
	for _, a := range object.ListSlice(args) {
		sb.WriteString(object.Print(a))
	}
	r, err := c.Heap.NewString(sb.String())
	if err != nil {
		return c.oom()
	}
	return r, true
}

// repr implements `repr`: the reader-faithful form of exactly one value.
func (c *Context) repr(args *object.Object) (*object.Object, bool) {
	a, ok := c.unpack1("repr", args)
	if !ok {
		return nil, false
	}
	r, err := c.Heap.NewString(object.Repr(a))
	if err != nil {
		return c.oom()
	}
	return r, true
}

// print implements `print`: writes every argument's print form to stdout,
// space-separated, with a trailing newline, and yields Nil.
func (c *Context) print(args *object.Object) (*object.Object, bool) {
	elems := object.ListSlice(args)
	for i, a := range elems {
		if i > 0 {
			io.WriteString(c.Stdout, " ")
		}
		io.WriteString(c.Stdout, object.Print(a))
	}
	io.WriteString(c.Stdout, "\n")
	return c.Heap.Nil(), true
}
