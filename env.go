package qbscript

import (
	"sort"

	"github.com/benbjohnson/immutable"
)

// Env maps names to the expressions bound by let and by procedure parameters.
// Bindings live in a persistent map, so Snapshot is O(1) and a snapshot never
// observes later Defines on its origin, or the other way around.
type Env struct {
	symbols *immutable.Map[string, Elem]
}

func NewEnv() *Env {
	return &Env{immutable.NewMap[string, Elem](nil)}
}

func (e *Env) Lookup(name string) (Elem, bool) {
	return e.symbols.Get(name)
}

func (e *Env) Define(name string, val Elem) {
	e.symbols = e.symbols.Set(name, val)
}

// Snapshot returns a copy of the environment for a procedure application.
func (e *Env) Snapshot() *Env {
	return &Env{e.symbols}
}

func (e *Env) Len() int {
	return e.symbols.Len()
}

// Names returns the bound names in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, e.symbols.Len())
	itr := e.symbols.Iterator()
	for !itr.Done() {
		k, _, _ := itr.Next()
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
