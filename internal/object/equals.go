package object

// Equals implements the per-variant equality rules from the object model:
// strings/symbols compare by bytes, integers numerically, conses
// structurally, dicts by entry set, closures/macros by identity of
// env+params+body, primitives by identity.
func Equals(a, b *Object) bool {
	if a == b {
		return true
	}
	if IsNil(a) && IsNil(b) {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNil:
		return true
	case KindInt:
		return a.Int == b.Int
	case KindString, KindSymbol:
		return a.Str == b.Str
	case KindCons:
		return Equals(a.First, b.First) && Equals(a.Rest, b.Rest)
	case KindDict:
		return dictEquals(a.Dict, b.Dict)
	case KindPrimitive:
		return a.PrimID == b.PrimID
	case KindClosure, KindMacro:
		if a.Call == nil || b.Call == nil {
			return a.Call == b.Call
		}
		return a.Call.Env == b.Call.Env &&
			a.Call.Params == b.Call.Params &&
			a.Call.Body == b.Call.Body
	default:
		return false
	}
}

func dictEquals(a, b *DictData) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Len() != b.Len() {
		return false
	}
	ak, av := a.Entries()
	for i, k := range ak {
		v, ok := b.Get(k)
		if !ok || !Equals(av[i], v) {
			return false
		}
	}
	return true
}

// Compare implements the total order on equal-typed Int/String/Symbol/Cons
// pairs described in §3.2. It returns -1, 0, or 1, and a second value
// reporting whether the pair is comparable at all (Dict/Closure/Macro/
// Primitive are unordered, as are mixed-type pairs).
func Compare(a, b *Object) (int, bool) {
	if IsNil(a) && IsNil(b) {
		return 0, true
	}
	if IsNil(a) || IsNil(b) {
		if aKind(a) != aKind(b) {
			return 0, false
		}
	}
	ka, kb := aKind(a), aKind(b)
	if ka != kb {
		return 0, false
	}
	switch ka {
	case KindInt:
		switch {
		case a.Int < b.Int:
			return -1, true
		case a.Int > b.Int:
			return 1, true
		default:
			return 0, true
		}
	case KindString, KindSymbol:
		switch {
		case a.Str < b.Str:
			return -1, true
		case a.Str > b.Str:
			return 1, true
		default:
			return 0, true
		}
	case KindCons, KindNil:
		return compareLists(a, b)
	default:
		return 0, false
	}
}

func aKind(o *Object) Kind {
	if IsNil(o) {
		return KindNil
	}
	return o.Kind
}

// compareLists implements lexicographic ordering over proper lists: Nil is
// less than any non-empty list with the same comparable prefix, otherwise
// element-by-element.
func compareLists(a, b *Object) (int, bool) {
	for {
		aNil, bNil := IsNil(a), IsNil(b)
		switch {
		case aNil && bNil:
			return 0, true
		case aNil:
			return -1, true
		case bNil:
			return 1, true
		}
		if c, ok := Compare(a.First, b.First); !ok {
			return 0, false
		} else if c != 0 {
			return c, true
		}
		a, b = a.Rest, b.Rest
	}
}
