package object

import (
	"fmt"
	"strconv"
	"strings"
)

// Repr renders the reader-faithful textual form of o: output that, fed back
// through the parser, reconstructs an equal value for Int/String/Nil/Cons/
// Symbol (see the round-trip property in spec §8).
func Repr(o *Object) string {
	var b strings.Builder
	writeRepr(&b, o)
	return b.String()
}

// Print renders the user-facing form: like Repr but strings are written
// without surrounding quotes, matching the `print` primitive's contract.
func Print(o *Object) string {
	if !IsNil(o) && o.Kind == KindString {
		return o.Str
	}
	var b strings.Builder
	writePrint(&b, o)
	return b.String()
}

func writePrint(b *strings.Builder, o *Object) {
	if !IsNil(o) && o.Kind == KindString {
		b.WriteString(o.Str)
		return
	}
	writeRepr(b, o)
}

func writeRepr(b *strings.Builder, o *Object) {
	switch {
	case IsNil(o):
		b.WriteString("()")
	case o.Kind == KindInt:
		b.WriteString(strconv.FormatInt(o.Int, 10))
	case o.Kind == KindString:
		writeEscapedString(b, o.Str)
	case o.Kind == KindSymbol:
		b.WriteString(o.Str)
	case o.Kind == KindCons:
		writeConsRepr(b, o)
	case o.Kind == KindDict:
		writeDictRepr(b, o)
	case o.Kind == KindPrimitive:
		fmt.Fprintf(b, "<primitive %s>", o.PrimID)
	case o.Kind == KindClosure:
		b.WriteString("<closure>")
	case o.Kind == KindMacro:
		b.WriteString("<macro>")
	default:
		b.WriteString("<unknown>")
	}
}

// writeConsRepr special-cases `(quote x)` so it prints as 'x, mirroring the
// reader's own quote-prefix desugaring.
func writeConsRepr(b *strings.Builder, o *Object) {
	if sym := quoteTarget(o); sym != nil {
		b.WriteByte('\'')
		writeRepr(b, sym)
		return
	}
	b.WriteByte('(')
	first := true
	cur := o
	for {
		if IsNil(cur) {
			break
		}
		if cur.Kind != KindCons {
			// improper tail; should not occur given the proper-list
			// invariant, but render defensively rather than panic.
			b.WriteString(". ")
			writeRepr(b, cur)
			break
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		writeRepr(b, cur.First)
		cur = cur.Rest
	}
	b.WriteByte(')')
}

// quoteTarget returns x if o is exactly (quote x), else nil.
func quoteTarget(o *Object) *Object {
	if o == nil || o.Kind != KindCons {
		return nil
	}
	if IsNil(o.First) || o.First.Kind != KindSymbol || o.First.Str != "quote" {
		return nil
	}
	rest := o.Rest
	if IsNil(rest) || rest.Kind != KindCons {
		return nil
	}
	if !IsNil(rest.Rest) {
		return nil
	}
	return rest.First
}

func writeDictRepr(b *strings.Builder, o *Object) {
	b.WriteString("{")
	if o.Dict != nil {
		ks, vs := o.Dict.Entries()
		for i := range ks {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRepr(b, ks[i])
			b.WriteString(": ")
			writeRepr(b, vs[i])
		}
	}
	b.WriteString("}")
}

// writeEscapedString renders s as a double-quoted source literal, escaping
// the known sequences and falling back to \0xNN for any other
// non-printable byte.
func writeEscapedString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(b, `\0x%02X`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
}
