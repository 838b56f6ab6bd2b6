package gocalc

import (
	"errors"
	"fmt"
)

var (
	ErrParse             = errors.New("parse error")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrUnknownIdentifier = errors.New("unknown identifier")
	ErrUnknownFunction   = errors.New("unknown function")
	ErrArity             = errors.New("wrong number of arguments")
	ErrInvalidEquation   = errors.New("invalid equation")
)

// EvaluationError reports malformed input: a syntax error or a token the evaluator
// cannot resolve. Numeric domain problems never produce one; they evaluate to NaN.
type EvaluationError struct {
	Input      string
	Pos        int
	Token      string
	Suggestion string
	Underlying error
}

func (e *EvaluationError) Error() string {
	msg := fmt.Sprintf("evaluate %q: %v", e.Input, e.Underlying)
	if e.Token != "" {
		msg += fmt.Sprintf(" near %q at %d", e.Token, e.Pos)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %s?)", e.Suggestion)
	}
	return msg
}

func (e *EvaluationError) Unwrap() error { return e.Underlying }

func newEvalError(input string, pos int, tok string, err error) *EvaluationError {
	return &EvaluationError{Input: input, Pos: pos, Token: tok, Underlying: err}
}
