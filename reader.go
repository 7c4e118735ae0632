package qbscript

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// ParseError reports where the reader stopped matching the grammar.
type ParseError struct {
	Offset     int    // byte offset into the input handed to Parse
	Expected   string // what the failing production wanted
	Found      string // the text at Offset, truncated
	Incomplete bool   // input ended inside an open call or list
}

func (e *ParseError) Error() string {
	if e.Found == "" {
		return fmt.Sprintf("offset %d: expected %s, found end of input", e.Offset, e.Expected)
	}
	return fmt.Sprintf("offset %d: expected %s, found %q", e.Offset, e.Expected, e.Found)
}

// IsIncomplete reports whether err is a ParseError caused by running out of input
// before a call or list was closed.
func IsIncomplete(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Incomplete
}

type reader struct {
	src string
	pos int
}

// Parse reads one expression from the front of input and returns it with the
// unconsumed remainder. Whitespace around the expression is consumed.
// Symbol and string payloads share input's memory.
func Parse(input string) (Elem, string, error) {
	r := &reader{src: input}
	e, err := r.expr()
	if err != nil {
		return Elem{}, input, err
	}
	return e, input[r.pos:], nil
}

func isWhitespace(ch rune) bool {
	return unicode.IsSpace(ch)
}

func isAtomChar(ch rune) bool {
	return !isWhitespace(ch) && ch != '(' && ch != ')' && ch != '[' && ch != ']'
}

func isNumberChar(ch rune) bool {
	return (ch >= '0' && ch <= '9') || ch == '-'
}

func (r *reader) peek() (rune, bool) {
	if r.pos >= len(r.src) {
		return 0, false
	}
	ch, _ := utf8.DecodeRuneInString(r.src[r.pos:])
	return ch, true
}

func (r *reader) skipWhitespace() {
	for {
		ch, ok := r.peek()
		if !ok || !isWhitespace(ch) {
			return
		}
		r.pos += utf8.RuneLen(ch)
	}
}

// takeWhile consumes the longest run of runes matching pred starting at from
// and returns the index just past it.
func (r *reader) takeWhile(from int, pred func(rune) bool) int {
	end := from
	for end < len(r.src) {
		ch, size := utf8.DecodeRuneInString(r.src[end:])
		if !pred(ch) {
			break
		}
		end += size
	}
	return end
}

func (r *reader) fail(expected string, incomplete bool) *ParseError {
	found := r.src[r.pos:]
	if len(found) > 16 {
		found = found[:16]
	}
	return &ParseError{Offset: r.pos, Expected: expected, Found: found, Incomplete: incomplete}
}

// expr tries single, list, call, string, number, symbol in that order.
func (r *reader) expr() (Elem, error) {
	r.skipWhitespace()
	ch, ok := r.peek()
	if !ok {
		return Elem{}, r.fail("expression", false)
	}

	var e Elem
	var err error
	switch {
	case ch == '[':
		e, err = r.seq(']', ListElem)
	case ch == '(':
		e, err = r.seq(')', CallElem)
	default:
		e, ok = r.atom()
		if !ok {
			err = r.fail("expression", false)
		}
	}
	if err != nil {
		return Elem{}, err
	}

	r.skipWhitespace()
	return e, nil
}

// the delimiters can only start a list or call, so those productions commit
func (r *reader) seq(closer byte, kind ElemKind) (Elem, error) {
	r.pos++
	items := []Elem{}
	for {
		r.skipWhitespace()
		if r.pos >= len(r.src) {
			return Elem{}, r.fail(fmt.Sprintf("%q", closer), true)
		}
		switch r.src[r.pos] {
		case closer:
			r.pos++
			return Elem{Kind: kind, Items: items}, nil
		case ')', ']':
			return Elem{}, r.fail(fmt.Sprintf("%q", closer), false)
		}
		item, err := r.expr()
		if err != nil {
			return Elem{}, err
		}
		items = append(items, item)
	}
}

func (r *reader) atom() (Elem, bool) {
	for _, production := range []func() (Elem, bool){r.single, r.str, r.number, r.symbol} {
		if e, ok := production(); ok {
			return e, true
		}
	}
	return Elem{}, false
}

func (r *reader) single() (Elem, bool) {
	if r.src[r.pos] != '#' {
		return Elem{}, false
	}
	start := r.pos + 1
	end := r.takeWhile(start, isAtomChar)
	if end == start {
		return Elem{}, false
	}
	r.pos = end
	return SingleOf(Sym(r.src[start:end])), true
}

// strings hold at least one character and cannot contain a quote
func (r *reader) str() (Elem, bool) {
	if r.src[r.pos] != '"' {
		return Elem{}, false
	}
	start := r.pos + 1
	end := r.takeWhile(start, func(ch rune) bool { return ch != '"' })
	if end == start || end >= len(r.src) {
		return Elem{}, false
	}
	r.pos = end + 1
	return AtomOf(Str(r.src[start:end])), true
}

// a run of digits and dashes that does not convert is left for symbol
func (r *reader) number() (Elem, bool) {
	end := r.takeWhile(r.pos, isNumberChar)
	if end == r.pos {
		return Elem{}, false
	}
	n, err := strconv.Atoi(r.src[r.pos:end])
	if err != nil {
		return Elem{}, false
	}
	r.pos = end
	return AtomOf(Num(n)), true
}

func (r *reader) symbol() (Elem, bool) {
	end := r.takeWhile(r.pos, isAtomChar)
	if end == r.pos {
		return Elem{}, false
	}
	name := r.src[r.pos:end]
	r.pos = end
	return AtomOf(Sym(name)), true
}
