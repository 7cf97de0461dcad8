package builtins_test

import (
	"io"
	"testing"

	"github.com/cwbudde/lispcore/internal/object"
	"github.com/cwbudde/lispcore/internal/parser"
	"github.com/cwbudde/lispcore/internal/vm"
)

func eval(t *testing.T, source string) (*object.Object, *object.Object, bool) {
	t.Helper()
	machine, err := vm.New(io.Discard, func(string) (string, error) { return "", nil })
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	p := parser.New(machine.Heap, source, "<test>")
	machine.SetActiveParser(p)
	defer machine.SetActiveParser(nil)

	value := machine.Heap.Nil()
	var errVal *object.Object
	ok := true
	for {
		expr, more, perr := p.Next()
		if perr != nil {
			t.Fatalf("parse error: %v", perr)
		}
		if !more {
			return value, nil, true
		}
		value, errVal, ok = machine.Eval(expr)
		if !ok {
			return nil, errVal, false
		}
	}
}

func TestPrimitivesRepr(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"eq-true", `(eq? 1 1)`, "true"},
		{"eq-false", `(eq? 1 2)`, "()"},
		{"not-nil", `(not ())`, "true"},
		{"not-nonnil", `(not 1)`, "()"},
		{"str-int", `(str 42)`, `"42"`},
		{"repr-string", `(repr "hi")`, `"\"hi\""`},
		{"plus-no-args", `(+)`, "0"},
		{"plus-identity", `(+ 5)`, "5"},
		{"minus-identity", `(- 5)`, "5"},
		{"times-no-args", `(*)`, "1"},
		{"divide", `(/ 10 2)`, "5"},
		{"list", `(list 1 2 3)`, "(1 2 3)"},
		{"first", `(first (list 1 2 3))`, "1"},
		{"rest", `(rest (list 1 2 3))`, "(2 3)"},
		{"prepend", `(prepend 0 (list 1 2))`, "(0 1 2)"},
		{"reverse", `(reverse (list 1 2 3))`, "(3 2 1)"},
		{"concat", `(concat (list 1 2) (list 3 4))`, "(1 2 3 4)"},
		{"concat-nil-left", `(concat () (list 1 2))`, "(1 2)"},
		{"concat-nil-right", `(concat (list 1 2) ())`, "(1 2)"},
		{"dict-get", `(get "k" (dict "k" 7))`, "7"},
		{"put-returns-dict", `(put "b" 2 (dict "a" 1))`, `{"a": 1, "b": 2}`},
		{"type-int", `(type 1)`, "Int"},
		{"type-string", `(type "x")`, "String"},
		{"type-nil", `(type ())`, "Nil"},
		{"reverse-twice", `(reverse (reverse (list 1 2 3)))`, "(1 2 3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, errVal, ok := eval(t, tt.source)
			if !ok {
				t.Fatalf("unexpected error: %s", object.Repr(errVal))
			}
			if got := object.Repr(value); got != tt.want {
				t.Fatalf("%s = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

// errorType returns the symbol name stored under an error Dict's `type` key.
func errorType(errVal *object.Object) string {
	ks, vs := errVal.Dict.Entries()
	for i, k := range ks {
		if k.Kind == object.KindSymbol && k.Str == "type" && !object.IsNil(vs[i]) && vs[i].Kind == object.KindSymbol {
			return vs[i].Str
		}
	}
	return ""
}

func TestFirstOfNonListIsTypeError(t *testing.T) {
	_, errVal, ok := eval(t, `(first 1)`)
	if ok {
		t.Fatalf("expected TypeError")
	}
	if object.IsNil(errVal) || errVal.Kind != object.KindDict {
		t.Fatalf("error value kind = %v", errVal.Kind)
	}
	if got := errorType(errVal); got != "TypeError" {
		t.Fatalf("error type = %q, want TypeError", got)
	}
}

func TestDictGetMissingKeyIsKeyError(t *testing.T) {
	_, errVal, ok := eval(t, `(get "missing" (dict "a" 1))`)
	if ok {
		t.Fatalf("expected KeyError")
	}
	if object.IsNil(errVal) || errVal.Kind != object.KindDict {
		t.Fatalf("error value kind = %v", errVal.Kind)
	}
	if got := errorType(errVal); got != "KeyError" {
		t.Fatalf("error type = %q, want KeyError", got)
	}
}

func TestThrowSetsErrorSlot(t *testing.T) {
	value, _, ok := eval(t, `(try (throw "boom"))`)
	if !ok {
		t.Fatalf("try should recover a thrown value")
	}
	elems := object.ListSlice(value)
	if len(elems) != 2 {
		t.Fatalf("try result = %s", object.Repr(value))
	}
	if got := object.Repr(elems[1]); got != `"boom"` {
		t.Fatalf("thrown value = %s, want \"boom\"", got)
	}
}

func TestTracebackExcludesItsOwnCall(t *testing.T) {
	value, _, ok := eval(t, `(define f (fn () (traceback))) (f)`)
	if !ok {
		t.Fatalf("eval failed")
	}
	elems := object.ListSlice(value)
	for _, e := range elems {
		if object.Repr(e) == "(traceback)" {
			t.Fatalf("traceback must not include its own call frame, got %s", object.Repr(value))
		}
	}
}
