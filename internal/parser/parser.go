// Package parser implements the reader half of the external scanner/parser
// contract (spec §6): it consumes the token stream from internal/lexer and
// emits completed expression objects, or reports that the input so far is
// an incomplete (but potentially completable) expression — the signal the
// REPL uses to switch to its `... ` continuation prompt — or a genuine
// syntax error with position and kind.
//
// Quote-prefix desugaring (`'x` -> `(quote x)`) happens here, at the
// reader, not in the evaluator: by the time an expression reaches
// internal/evaluator it is already an ordinary Cons headed by the `quote`
// symbol.
package parser

import (
	"fmt"

	"github.com/cwbudde/lispcore/internal/errors"
	"github.com/cwbudde/lispcore/internal/heap"
	"github.com/cwbudde/lispcore/internal/lexer"
	"github.com/cwbudde/lispcore/internal/object"
)

// ErrIncomplete is returned when the token stream ends in the middle of an
// open list or a quote prefix: more input could complete it. The REPL uses
// this to decide between `>>> ` and `... `; file mode treats it as a hard
// syntax error (unexpected EOF).
type ErrIncomplete struct {
	Pos lexer.Position
}

func (e ErrIncomplete) Error() string { return "unexpected EOF: incomplete expression" }

// Parser turns a token stream into expression objects. Its source is fixed
// at New; it cannot be fed more input, so the REPL re-parses its whole
// accumulated buffer with a fresh Parser after each line. While a list is
// being read the parser keeps an in-progress expression stack (builder),
// which is part of the VM's GC root set while a parse is in flight
// (spec §3.3).
type Parser struct {
	h      *heap.Heap
	file   string
	source string
	lx     *lexer.Lexer
	peeked *lexer.Token

	// building holds the elements read so far, in source order, for each
	// currently-open list, innermost last — the "parser's in-progress expression stack"
	// from the root set.
	building [][]*object.Object
	quotes   int // pending '-prefixes to wrap around the next expression
}

// New creates a Parser over source. file is used only for error messages
// (empty for REPL input).
func New(h *heap.Heap, source, file string) *Parser {
	return &Parser{h: h, file: file, source: source, lx: lexer.New(source)}
}

// GCRoots exposes the in-progress expression stack to the heap's root walk.
func (p *Parser) GCRoots() []*object.Object {
	var roots []*object.Object
	for _, frame := range p.building {
		roots = append(roots, frame...)
	}
	return roots
}

// InProgress reports whether the parser is in the middle of reading an
// expression (an open list, or a dangling quote prefix) — the REPL driver
// uses this to choose its prompt string.
func (p *Parser) InProgress() bool {
	return len(p.building) > 0 || p.quotes > 0
}

func (p *Parser) next() lexer.Token {
	if p.peeked != nil {
		t := *p.peeked
		p.peeked = nil
		return t
	}
	return p.lx.Next()
}

func (p *Parser) peek() lexer.Token {
	if p.peeked == nil {
		t := p.lx.Next()
		p.peeked = &t
	}
	return *p.peeked
}

// Next reads and returns the next complete top-level expression. At true
// end of input (no pending open list/quote) it returns (nil, io.EOF-like
// state) signalled by ok=false, err=nil.
func (p *Parser) Next() (expr *object.Object, ok bool, err error) {
	tok := p.peek()
	if tok.Type == lexer.EOF {
		if p.InProgress() {
			return nil, false, ErrIncomplete{Pos: tok.Pos}
		}
		return nil, false, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, false, err
	}
	return e, true, nil
}

func (p *Parser) parseExpr() (*object.Object, error) {
	tok := p.next()
	switch tok.Type {
	case lexer.EOF:
		return nil, ErrIncomplete{Pos: tok.Pos}
	case lexer.Int:
		return p.h.NewInt(tok.IntVal)
	case lexer.String:
		return p.h.NewString(tok.Literal)
	case lexer.Symbol:
		return p.h.NewSymbol(tok.Literal)
	case lexer.OpenParen:
		return p.parseList()
	case lexer.CloseParen:
		return nil, p.syntaxErr(tok, "unexpected ')'")
	case lexer.Quote:
		p.quotes++
		inner, err := p.parseExpr()
		p.quotes--
		if err != nil {
			return nil, err
		}
		quoteSym, err := p.h.NewSymbol("quote")
		if err != nil {
			return nil, err
		}
		return p.h.NewList(quoteSym, inner)
	default:
		return nil, p.syntaxErr(tok, fmt.Sprintf("unexpected token %q", tok.Literal))
	}
}

func (p *Parser) parseList() (*object.Object, error) {
	p.building = append(p.building, nil)
	depth := len(p.building) - 1

	for {
		tok := p.peek()
		if tok.Type == lexer.EOF {
			return nil, ErrIncomplete{Pos: tok.Pos}
		}
		if tok.Type == lexer.CloseParen {
			p.next()
			elems := p.building[depth]
			p.building = p.building[:depth]
			return p.h.NewList(elems...)
		}
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.building[depth] = append(p.building[depth], elem)
	}
}

func (p *Parser) syntaxErr(tok lexer.Token, msg string) error {
	return errors.NewSyntaxError(tok.Pos, msg, p.source, p.file)
}

// ParseAll reads every top-level expression from source. A trailing
// incomplete expression is reported as a hard SyntaxError (unexpected
// EOF) — this is the file-mode behavior spec §6 requires, as opposed to
// the REPL's continuation prompt.
func ParseAll(h *heap.Heap, source, file string) ([]*object.Object, error) {
	p := New(h, source, file)
	var out []*object.Object
	for {
		expr, ok, err := p.Next()
		if err != nil {
			if inc, isInc := err.(ErrIncomplete); isInc {
				return nil, errors.NewSyntaxError(inc.Pos, "unexpected EOF", source, file)
			}
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, expr)
	}
}
