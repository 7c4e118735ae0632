package qbscript

import "cmp"

// atoms and singles compare by kind and payload. If either side is a sequence the
// answer is false for both eq and ne.
func equalAtoms(a, b Elem, want bool) Elem {
	if !a.IsAtomic() || !b.IsAtomic() {
		return False()
	}
	return truth((a.Atom == b.Atom) == want)
}

// only two numbers are ordered; anything else compares false
func compareNumbers(a, b Elem, want int) Elem {
	if !isNumber(a) || !isNumber(b) {
		return False()
	}
	return truth(cmp.Compare(a.Atom.Num, b.Atom.Num) == want)
}

func isNumber(e Elem) bool {
	return e.IsAtomic() && e.Atom.Kind == NumberAtom
}
