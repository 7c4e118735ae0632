package qbscript

import "fmt"

// Fault is the panic value raised when a form reaches for an operand that was
// never supplied, e.g. (head) or a procedure applied to too few arguments.
// Evaluation has no error channel, so a Fault is fatal; nothing in this package
// recovers it.
type Fault struct {
	Form  Elem // the call, clause or procedure that was short
	Index int  // position of the missing item within Form
}

func (f *Fault) Error() string {
	return fmt.Sprintf("missing item %d in %v", f.Index, f.Form)
}

// operand returns form.Items[i] or panics with a Fault.
func operand(form Elem, i int) Elem {
	if i >= len(form.Items) {
		panic(&Fault{Form: form, Index: i})
	}
	return form.Items[i]
}
