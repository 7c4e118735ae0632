package qbscript

type AtomKind int

const (
	SymbolAtom AtomKind = iota
	StringAtom
	NumberAtom
)

// Atom is a leaf value. Two atoms are equal under == when kind and payload match.
type Atom struct {
	Kind AtomKind
	Text string // name for symbols, contents for strings
	Num  int
}

type ElemKind int

const (
	AtomElem   ElemKind = iota
	SingleElem          // quoted atom: #name
	CallElem            // (...)
	ListElem            // [...]
)

// Elem is a syntax node and, after evaluation, a value.
type Elem struct {
	Kind  ElemKind
	Atom  Atom   // AtomElem and SingleElem
	Items []Elem // CallElem and ListElem
}

func Sym(name string) Atom { return Atom{Kind: SymbolAtom, Text: name} }
func Str(s string) Atom    { return Atom{Kind: StringAtom, Text: s} }
func Num(n int) Atom       { return Atom{Kind: NumberAtom, Num: n} }

func AtomOf(a Atom) Elem        { return Elem{Kind: AtomElem, Atom: a} }
func SingleOf(a Atom) Elem      { return Elem{Kind: SingleElem, Atom: a} }
func CallOf(items ...Elem) Elem { return Elem{Kind: CallElem, Items: items} }
func ListOf(items ...Elem) Elem { return Elem{Kind: ListElem, Items: items} }

// SymbolElem is the unquoted symbol atom for name.
func SymbolElem(name string) Elem { return AtomOf(Sym(name)) }

// True is what predicates return on success.
func True() Elem { return SingleOf(Sym("t")) }

// False is the empty list, which doubles as the empty collection.
func False() Elem { return ListOf() }

func truth(b bool) Elem {
	if b {
		return True()
	}
	return False()
}

// IsAtomic reports whether e is an Atom or a Single.
func (e Elem) IsAtomic() bool {
	return e.Kind == AtomElem || e.Kind == SingleElem
}

// IsSeq reports whether e is a Call or a List.
func (e Elem) IsSeq() bool {
	return e.Kind == CallElem || e.Kind == ListElem
}

// IsSymbol reports whether e is the unquoted symbol name.
func (e Elem) IsSymbol(name string) bool {
	return e.Kind == AtomElem && e.Atom == Sym(name)
}

func (e Elem) symbolName() (string, bool) {
	if e.Kind == AtomElem && e.Atom.Kind == SymbolAtom {
		return e.Atom.Text, true
	}
	return "", false
}

// Equal compares two elems structurally. Sequences of different kinds are unequal.
// The language's own eq and ne do not use this; see equalAtoms.
func Equal(a, b Elem) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.IsAtomic() {
		return a.Atom == b.Atom
	}
	if len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if !Equal(a.Items[i], b.Items[i]) {
			return false
		}
	}
	return true
}
