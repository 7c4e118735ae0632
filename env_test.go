package qbscript

import (
	"reflect"
	"testing"
)

func TestEnvDefine(t *testing.T) {
	env := NewEnv()
	if _, ok := env.Lookup("x"); ok {
		t.Fatal("fresh env has x")
	}
	env.Define("x", AtomOf(Num(1)))
	env.Define("x", AtomOf(Num(2)))
	val, ok := env.Lookup("x")
	if !ok || !Equal(val, AtomOf(Num(2))) {
		t.Errorf("expected 2, got %v %t", val, ok)
	}
	if env.Len() != 1 {
		t.Errorf("expected 1 binding, got %d", env.Len())
	}
}

func TestEnvSnapshot(t *testing.T) {
	env := NewEnv()
	env.Define("a", AtomOf(Num(1)))

	scope := env.Snapshot()
	scope.Define("b", AtomOf(Num(2)))
	scope.Define("a", AtomOf(Num(3)))
	env.Define("c", AtomOf(Num(4)))

	if val, _ := env.Lookup("a"); !Equal(val, AtomOf(Num(1))) {
		t.Errorf("snapshot write leaked into origin: a = %v", val)
	}
	if _, ok := env.Lookup("b"); ok {
		t.Error("snapshot binding leaked into origin")
	}
	if _, ok := scope.Lookup("c"); ok {
		t.Error("origin binding leaked into snapshot")
	}
	if !reflect.DeepEqual(scope.Names(), []string{"a", "b"}) {
		t.Errorf("unexpected snapshot names %v", scope.Names())
	}
}

func TestEnvNames(t *testing.T) {
	env := NewEnv()
	if names := env.Names(); len(names) != 0 {
		t.Errorf("expected no names, got %v", names)
	}
	for _, name := range []string{"reverse", "dec", "iota", "x"} {
		env.Define(name, ListOf())
	}
	if !reflect.DeepEqual(env.Names(), []string{"dec", "iota", "reverse", "x"}) {
		t.Errorf("unexpected names %v", env.Names())
	}
}
