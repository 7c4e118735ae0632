package qbscript

import (
	"errors"
	"strings"
)

// Session owns the environment shared by every top-level form of one run.
type Session struct {
	Env *Env
}

func NewSession() *Session {
	return &Session{Env: NewEnv()}
}

// Run parses and evaluates the forms in src one at a time, handing each result
// to emit before the next form is read. It stops at the first parse error and
// returns the input from the start of the failed form along with the error,
// whose Offset is relative to src.
func (s *Session) Run(src string, emit func(Elem)) (string, error) {
	rest := src
	for strings.TrimSpace(rest) != "" {
		e, next, err := Parse(rest)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Offset += len(src) - len(rest)
			}
			return rest, err
		}
		val := Eval(e, s.Env)
		if emit != nil {
			emit(val)
		}
		rest = next
	}
	return "", nil
}
