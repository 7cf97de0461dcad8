// Package ierrors builds and classifies the interpreter's runtime error
// values: Dicts with `type`, `message`, and `traceback` keys (spec §6/§7).
// Unlike Go's own error type, these are heap objects and therefore subject
// to GC like any other value — they flow through the same error slot,
// `try` recovery, and traceback machinery as every other object.
package ierrors

// Kind is the closed set of ten error kinds from spec §7.
type Kind int

const (
	OSError Kind = iota
	TypeError
	SyntaxError
	CallError
	NameError
	ZeroDivisionError
	OutOfMemoryError
	StackOverflowError
	BindingError
	KeyError
)

var names = [...]string{
	"OSError",
	"TypeError",
	"SyntaxError",
	"CallError",
	"NameError",
	"ZeroDivisionError",
	"OutOfMemoryError",
	"StackOverflowError",
	"BindingError",
	"KeyError",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(names) {
		return "UnknownError"
	}
	return names[k]
}
