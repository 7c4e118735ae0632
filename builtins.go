package qbscript

// cons prepends a to b when b is a sequence, otherwise pairs them.
func cons(call Elem, env *Env) Elem {
	a := Eval(operand(call, 1), env)
	b := Eval(operand(call, 2), env)
	if !b.IsSeq() {
		return ListOf(a, b)
	}
	items := make([]Elem, 0, len(b.Items)+1)
	items = append(items, a)
	return ListOf(append(items, b.Items...)...)
}

// appendForm is cons from the other end.
func appendForm(call Elem, env *Env) Elem {
	a := Eval(operand(call, 1), env)
	b := Eval(operand(call, 2), env)
	if !a.IsSeq() {
		return ListOf(a, b)
	}
	items := make([]Elem, 0, len(a.Items)+1)
	items = append(items, a.Items...)
	return ListOf(append(items, b)...)
}

func list(call Elem, env *Env) Elem {
	items := make([]Elem, len(call.Items)-1)
	for i, v := range call.Items[1:] {
		items[i] = Eval(v, env)
	}
	return ListOf(items...)
}

func head(call Elem, env *Env) Elem {
	x := Eval(operand(call, 1), env)
	if !x.IsSeq() || len(x.Items) == 0 {
		return False()
	}
	return x.Items[0]
}

func tail(call Elem, env *Env) Elem {
	x := Eval(operand(call, 1), env)
	if !x.IsSeq() || len(x.Items) == 0 {
		return False()
	}
	items := make([]Elem, len(x.Items)-1)
	copy(items, x.Items[1:])
	return ListOf(items...)
}

func atom(call Elem, env *Env) Elem {
	return truth(Eval(operand(call, 1), env).IsAtomic())
}

func not(call Elem, env *Env) Elem {
	return negate(Eval(operand(call, 1), env))
}

// negate is true only for an empty sequence. Atoms, even falsy-looking ones, negate to false.
func negate(x Elem) Elem {
	return truth(x.IsSeq() && len(x.Items) == 0)
}

func eq(call Elem, env *Env) Elem {
	a, b := operands(call, env)
	return equalAtoms(a, b, true)
}

func ne(call Elem, env *Env) Elem {
	a, b := operands(call, env)
	return equalAtoms(a, b, false)
}

func lt(call Elem, env *Env) Elem {
	a, b := operands(call, env)
	return compareNumbers(a, b, -1)
}

func gt(call Elem, env *Env) Elem {
	a, b := operands(call, env)
	return compareNumbers(a, b, 1)
}

// le and ge go through negate, so non-numeric operands make them true.
func le(call Elem, env *Env) Elem {
	return negate(gt(call, env))
}

func ge(call Elem, env *Env) Elem {
	return negate(lt(call, env))
}

func operands(call Elem, env *Env) (Elem, Elem) {
	a := Eval(operand(call, 1), env)
	b := Eval(operand(call, 2), env)
	return a, b
}

// if branches on the kind of the condition: any atom is true, any sequence,
// empty or not, is false.
func ifForm(call Elem, env *Env) Elem {
	c := Eval(operand(call, 1), env)
	t, f := operand(call, 2), operand(call, 3)
	if c.IsAtomic() {
		return Eval(t, env)
	}
	return Eval(f, env)
}

// cond clauses are [test result] lists; clauses of any other kind are skipped.
func cond(call Elem, env *Env) Elem {
	for _, clause := range call.Items[1:] {
		if clause.Kind != ListElem {
			continue
		}
		if Eval(operand(clause, 0), env).IsAtomic() {
			return Eval(operand(clause, 1), env)
		}
	}
	return False()
}

func add(call Elem, env *Env) Elem {
	sum := 0
	for _, v := range call.Items[1:] {
		if x := Eval(v, env); isNumber(x) {
			sum += x.Atom.Num
		}
	}
	return AtomOf(Num(sum))
}

// let binds the unevaluated expression, so a procedure can refer to its own name.
func let(call Elem, env *Env) Elem {
	target := operand(call, 1)
	name, ok := target.symbolName()
	if !ok {
		return call
	}
	env.Define(name, operand(call, 2))
	return target
}
