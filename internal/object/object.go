// Package object defines the tagged runtime value variants shared by the
// heap, the environment, the evaluation stack and the evaluator. Every
// variant carries the header fields the collector needs: a Kind tag, a GC
// Color, and an intrusive Next link into the heap's allocation list.
package object

import "fmt"

// Kind tags the variant held by an Object.
type Kind uint8

const (
	KindNil Kind = iota
	KindInt
	KindString
	KindSymbol
	KindCons
	KindDict
	KindPrimitive
	KindClosure
	KindMacro
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "Nil"
	case KindInt:
		return "Int"
	case KindString:
		return "String"
	case KindSymbol:
		return "Symbol"
	case KindCons:
		return "Cons"
	case KindDict:
		return "Dict"
	case KindPrimitive:
		return "Primitive"
	case KindClosure:
		return "Closure"
	case KindMacro:
		return "Macro"
	default:
		return "Unknown"
	}
}

// Color is the tri-color mark used by the collector in internal/heap.
type Color uint8

const (
	White Color = iota
	Gray
	Black
)

// Primitive is the signature every host-implemented callable must satisfy.
// It receives the caller's argument list (a proper Cons list or Nil) and
// returns a result value, or reports failure via ok=false — the caller is
// expected to have already set the VM's error slot.
type PrimitiveFunc func(args *Object) (result *Object, ok bool)

// Closure and Macro share this payload shape; Macro is distinguished only
// by Kind.
type Callable struct {
	Env    *Object // captured environment, a Cons chain of scopes (or Nil)
	Params *Object // bind target: Symbol, Nil, or Cons
	Body   *Object // list of body forms, proper list (possibly Nil)
}

// Object is the uniform heap cell. Exactly one of the payload fields below
// is meaningful for a given Kind; unused fields are zero. This flat layout
// (rather than an interface-typed variant) keeps the collector's "children
// of this object" step a fixed, branch-free table lookup per Kind.
type Object struct {
	Kind  Kind
	Color Color
	Next  *Object // intrusive link in the heap's allocation list

	Int    int64
	Str    string // String payload, or Symbol's textual name
	First  *Object
	Rest   *Object // Cons.rest; always Cons or Nil
	Dict   *DictData
	Prim   PrimitiveFunc
	PrimID string // name of the primitive, used by repr/print
	Call   *Callable
}

// DictData is the associative storage for KindDict. Keys are compared by
// object.Equals (see equals.go); entries preserve a stable order so that
// repr/print output is deterministic and iteration order doesn't depend on
// the underlying hash.
type DictData struct {
	keys   []*Object
	values []*Object
}

func NewDictData() *DictData {
	return &DictData{}
}

func (d *DictData) Len() int { return len(d.keys) }

func (d *DictData) Get(key *Object) (*Object, bool) {
	for i, k := range d.keys {
		if Equals(k, key) {
			return d.values[i], true
		}
	}
	return nil, false
}

// Put inserts or replaces the value bound to key. It never allocates a new
// DictData — callers that need copy-on-write semantics for a logically
// immutable Dict (see object.go invariants) must clone first.
func (d *DictData) Put(key, value *Object) {
	for i, k := range d.keys {
		if Equals(k, key) {
			d.values[i] = value
			return
		}
	}
	d.keys = append(d.keys, key)
	d.values = append(d.values, value)
}

func (d *DictData) Entries() ([]*Object, []*Object) {
	return d.keys, d.values
}

func (d *DictData) Clone() *DictData {
	nd := &DictData{
		keys:   make([]*Object, len(d.keys)),
		values: make([]*Object, len(d.values)),
	}
	copy(nd.keys, d.keys)
	copy(nd.values, d.values)
	return nd
}

// Children reports the per-Kind set of references the collector must trace,
// as fixed by spec: Cons -> {First, Rest}; Closure/Macro -> {Env, Params,
// Body}; Dict -> {keys, values} (no internal storage-node objects beyond
// the key/value slices themselves, which are plain Go slices, not heap
// objects); everything else has none.
func (o *Object) Children() []*Object {
	switch o.Kind {
	case KindCons:
		return []*Object{o.First, o.Rest}
	case KindClosure, KindMacro:
		if o.Call == nil {
			return nil
		}
		return []*Object{o.Call.Env, o.Call.Params, o.Call.Body}
	case KindDict:
		if o.Dict == nil {
			return nil
		}
		out := make([]*Object, 0, o.Dict.Len()*2)
		ks, vs := o.Dict.Entries()
		out = append(out, ks...)
		out = append(out, vs...)
		return out
	default:
		return nil
	}
}

func (o *Object) String() string {
	return Repr(o)
}

// TypeOf returns the variant name as seen by the `type` primitive.
func TypeOf(o *Object) string {
	if o == nil {
		return "Nil"
	}
	return o.Kind.String()
}

// IsNil reports whether o is the canonical empty-list/falsity value.
func IsNil(o *Object) bool {
	return o == nil || o.Kind == KindNil
}

// IsTruthy is the boolean coercion used by `if`: everything but Nil.
func IsTruthy(o *Object) bool {
	return !IsNil(o)
}

// AssertKind is a small helper used throughout the evaluator/builtins to
// produce a consistent "wrong variant" message.
func AssertKind(o *Object, k Kind) error {
	if o == nil || o.Kind != k {
		return fmt.Errorf("expected %s, got %s", k, TypeOf(o))
	}
	return nil
}
