package gocalc

import (
	"math"
	"strings"
)

// ============================================================
// Expression tree
// ============================================================

// node is one vertex of a parsed expression. render writes the node in helper-call
// syntax, which parses back to an equivalent tree.
type node interface {
	eval(e *env) (Value, error)
	render(b *strings.Builder)
}

type numberNode struct{ v float64 }

type imagNode struct{ v float64 }

type identNode struct {
	name string
	pos  int
}

type callNode struct {
	name string
	args []node
	pos  int
}

func (n *numberNode) eval(*env) (Value, error) { return Real(n.v), nil }
func (n *imagNode) eval(*env) (Value, error)   { return ComplexValue(Complex{Imag: n.v}), nil }

func (n *identNode) eval(e *env) (Value, error) {
	switch n.name {
	case "pi":
		return Real(math.Pi), nil
	case "e":
		return Real(math.E), nil
	}
	if v, ok := e.vars[n.name]; ok {
		return v, nil
	}
	return Value{}, &EvaluationError{
		Pos:        n.pos,
		Token:      n.name,
		Suggestion: suggestName(n.name),
		Underlying: ErrUnknownIdentifier,
	}
}

func (n *callNode) eval(e *env) (Value, error) {
	b := builtins[n.name]
	args := make([]Value, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(e)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	return b.fn(e, args), nil
}

func (n *numberNode) render(b *strings.Builder) { b.WriteString(formatReal(n.v)) }

func (n *imagNode) render(b *strings.Builder) {
	b.WriteString("Complex(0,")
	b.WriteString(formatReal(n.v))
	b.WriteByte(')')
}

func (n *identNode) render(b *strings.Builder) { b.WriteString(n.name) }

func (n *callNode) render(b *strings.Builder) {
	b.WriteString(n.name)
	b.WriteByte('(')
	for i, a := range n.args {
		if i > 0 {
			b.WriteByte(',')
		}
		a.render(b)
	}
	b.WriteByte(')')
}

func renderNode(n node) string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func call(name string, pos int, args ...node) *callNode {
	return &callNode{name: name, args: args, pos: pos}
}
