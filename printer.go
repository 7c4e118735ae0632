package qbscript

import (
	"strconv"
	"strings"
)

// Print renders an elem in the same syntax the reader accepts.
func Print(e Elem) string {
	switch e.Kind {
	case AtomElem:
		return e.Atom.String()
	case SingleElem:
		return "#" + e.Atom.String()
	case CallElem:
		return "(" + printItems(e.Items) + ")"
	case ListElem:
		return "[" + printItems(e.Items) + "]"
	default:
		return "<unknown>"
	}
}

func printItems(items []Elem) string {
	arr := make([]string, len(items))
	for i, v := range items {
		arr[i] = Print(v)
	}
	return strings.Join(arr, " ")
}

func (e Elem) String() string {
	return Print(e)
}

// strings are printed verbatim inside quotes; the reader has no escapes
func (a Atom) String() string {
	switch a.Kind {
	case NumberAtom:
		return strconv.Itoa(a.Num)
	case StringAtom:
		return `"` + a.Text + `"`
	default:
		return a.Text
	}
}
