package object

// ListLen counts the elements of a proper list. Nil has length 0.
func ListLen(o *Object) int {
	n := 0
	for !IsNil(o) {
		n++
		o = o.Rest
	}
	return n
}

// ListSlice flattens a proper list into a Go slice, for callers (builtins,
// bind) that want random access. It does not validate properness; walking
// stops at the first non-Cons tail.
func ListSlice(o *Object) []*Object {
	var out []*Object
	for !IsNil(o) {
		if o.Kind != KindCons {
			break
		}
		out = append(out, o.First)
		o = o.Rest
	}
	return out
}

// IsProperList reports whether o is Nil or a chain of Cons ending in Nil.
func IsProperList(o *Object) bool {
	for !IsNil(o) {
		if o.Kind != KindCons {
			return false
		}
		o = o.Rest
	}
	return true
}
