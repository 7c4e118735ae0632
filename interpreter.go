package qbscript

import "sort"

var forms map[string]form

func init() {
	forms = map[string]form{
		"cons":   cons,
		"append": appendForm,
		"list":   list,
		"head":   head,
		"tail":   tail,
		"atom":   atom,
		"not":    not,
		"eq":     eq,
		"ne":     ne,
		"lt":     lt,
		"gt":     gt,
		"le":     le,
		"ge":     ge,
		"if":     ifForm,
		"cond":   cond,
		"add":    add,
		"let":    let,
	}
}

// forms receive the whole unevaluated call and decide what to evaluate themselves
type form func(call Elem, env *Env) Elem

// Builtins returns the names handled by the evaluator itself, sorted.
func Builtins() []string {
	names := make([]string, 0, len(forms)+1)
	for name := range forms {
		names = append(names, name)
	}
	names = append(names, "fun")
	sort.Strings(names)
	return names
}

// Eval reduces e under env. Only let mutates env. Malformed programs evaluate to
// themselves; missing operands panic with *Fault.
func Eval(e Elem, env *Env) Elem {
	switch e.Kind {
	case AtomElem:
		if name, ok := e.symbolName(); ok {
			if val, bound := env.Lookup(name); bound {
				return val
			}
		}
		return e
	case SingleElem:
		return AtomOf(e.Atom)
	case CallElem:
		return evalCall(e, env)
	default:
		return e
	}
}

func evalCall(call Elem, env *Env) Elem {
	if len(call.Items) == 0 {
		return call
	}

	front := call.Items[0]
	if name, ok := front.symbolName(); ok {
		if f, isForm := forms[name]; isForm {
			return f(call, env)
		}

		// let stores the defining expression, so calling a procedure by name
		// substitutes it into the head and evaluates again
		val, bound := env.Lookup(name)
		if !bound {
			return call
		}
		items := make([]Elem, len(call.Items))
		copy(items, call.Items)
		items[0] = val
		return Eval(CallOf(items...), env)
	}

	if front.Kind == CallElem && len(front.Items) > 0 && front.Items[0].IsSymbol("fun") {
		return apply(front, call, env)
	}
	return call
}

// apply binds proc's parameters in a snapshot of env. Arguments are evaluated
// under the caller's env, in order; surplus arguments are ignored.
func apply(proc, call Elem, env *Env) Elem {
	params := operand(proc, 1)
	if params.Kind != ListElem {
		return call
	}

	scope := env.Snapshot()
	for i, param := range params.Items {
		if name, ok := param.symbolName(); ok {
			scope.Define(name, Eval(operand(call, i+1), env))
		}
	}
	return Eval(operand(proc, 2), scope)
}
