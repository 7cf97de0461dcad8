package builtins

import (
	"io"

	"github.com/cwbudde/lispcore/internal/env"
	"github.com/cwbudde/lispcore/internal/heap"
	"github.com/cwbudde/lispcore/internal/ierrors"
	"github.com/cwbudde/lispcore/internal/object"
)

// Install builds the shared Context and defines every primitive into
// globals, in the same order try_define_primitives registers them in the
// source. stdout is where `print` writes; pass nil to default to io.Discard
// (callers wanting real console output pass os.Stdout).
func Install(
	h *heap.Heap,
	globals *object.Object,
	errs *ierrors.Constants,
	setError func(*object.Object),
	traceback func() *object.Object,
	stdout io.Writer,
) error {
	if stdout == nil {
		stdout = io.Discard
	}
	c := &Context{Heap: h, Errors: errs, SetError: setError, Traceback: traceback, Stdout: stdout}

	entries := []struct {
		name string
		fn   object.PrimitiveFunc
	}{
		{"eq?", c.eqp},
		{"not", c.not},
		{"str", c.str},
		{"repr", c.repr},
		{"print", c.print},
		{"+", c.plus},
		{"-", c.minus},
		{"*", c.multiply},
		{"/", c.divide},
		{"list", c.list},
		{"first", c.first},
		{"rest", c.rest},
		{"prepend", c.prepend},
		{"reverse", c.reverse},
		{"concat", c.concat},
		{"dict", c.dict},
		{"get", c.get},
		{"put", c.put},
		{"type", c.typeOf},
		{"traceback", c.tracebackCall},
		{"throw", c.throw},
	}

	for _, e := range entries {
		prim, err := h.NewPrimitive(e.name, e.fn)
		if err != nil {
			return err
		}
		if err := env.Define(h, globals, e.name, prim); err != nil {
			return err
		}
	}
	return nil
}
