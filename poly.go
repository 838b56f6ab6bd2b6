package gocalc

import (
	"fmt"
	"math"
)

// ============================================================
// Polynomial coefficient extraction
// ============================================================

// maxPolyDegree bounds intermediate expansion; anything above degree 2 is rejected
// by the solver anyway.
const maxPolyDegree = 8

// poly holds coefficients indexed by power of the variable.
type poly []Value

var errNotPolynomial = fmt.Errorf("%w: not a polynomial in x", ErrInvalidEquation)

func constPoly(v Value) poly { return poly{v} }

func isZeroValue(v Value) bool { return v.z.IsZero() }

func (p poly) degree() int {
	for d := len(p) - 1; d >= 0; d-- {
		if !isZeroValue(p[d]) {
			return d
		}
	}
	return 0
}

func (p poly) coef(d int) Value {
	if d < len(p) {
		return p[d]
	}
	return Real(0)
}

func (p poly) isConst() bool { return p.degree() == 0 }

func combine(p, q poly, f func(a, b Value) Value) poly {
	n := max(len(p), len(q))
	out := make(poly, n)
	for d := range n {
		out[d] = f(p.coef(d), q.coef(d))
	}
	return out
}

func (p poly) mul(q poly) (poly, error) {
	dp, dq := p.degree(), q.degree()
	if dp+dq > maxPolyDegree {
		return nil, errNotPolynomial
	}
	out := make(poly, dp+dq+1)
	for d := range out {
		out[d] = Real(0)
	}
	for i := 0; i <= dp; i++ {
		for j := 0; j <= dq; j++ {
			out[i+j] = Add(out[i+j], Mul(p.coef(i), q.coef(j)))
		}
	}
	return out, nil
}

// realTerms keys real coefficients the way equations are usually written:
// "constant", "x", "x^2", ...
func (p poly) realTerms() map[string]float64 {
	out := map[string]float64{}
	for d := 0; d <= p.degree(); d++ {
		out[termKey(d)] = p.coef(d).Float64()
	}
	return out
}

func termKey(d int) string {
	switch d {
	case 0:
		return "constant"
	case 1:
		return "x"
	}
	return fmt.Sprintf("x^%d", d)
}

// expand turns the tree into a polynomial in variable. Subtrees free of the variable
// are folded with the same builtins evaluation uses.
func expand(n node, variable string, e *env) (poly, error) {
	switch n := n.(type) {
	case *identNode:
		if n.name == variable {
			return poly{Real(0), Real(1)}, nil
		}
	case *callNode:
		return expandCall(n, variable, e)
	}
	v, err := n.eval(e)
	if err != nil {
		return nil, err
	}
	return constPoly(v), nil
}

func expandCall(n *callNode, variable string, e *env) (poly, error) {
	args := make([]poly, len(n.args))
	allConst := true
	for i, a := range n.args {
		p, err := expand(a, variable, e)
		if err != nil {
			return nil, err
		}
		args[i] = p
		allConst = allConst && p.isConst()
	}
	if allConst {
		vals := make([]Value, len(args))
		for i, p := range args {
			vals[i] = p.coef(0)
		}
		return constPoly(builtins[n.name].fn(e, vals)), nil
	}

	switch n.name {
	case "add":
		return combine(args[0], args[1], Add), nil
	case "sub":
		return combine(args[0], args[1], Sub), nil
	case "neg":
		return combine(constPoly(Real(0)), args[0], Sub), nil
	case "mul":
		return args[0].mul(args[1])
	case "div":
		if !args[1].isConst() {
			return nil, errNotPolynomial
		}
		d := args[1].coef(0)
		return combine(args[0], nil, func(a, _ Value) Value { return Div(a, d) }), nil
	case "pow":
		return expandPow(args[0], args[1])
	}
	return nil, errNotPolynomial
}

func expandPow(base, exp poly) (poly, error) {
	if !exp.isConst() || exp.coef(0).IsComplex() {
		return nil, errNotPolynomial
	}
	k := exp.coef(0).Float64()
	if k < 0 || k > maxPolyDegree || k != math.Trunc(k) || int(k)*base.degree() > maxPolyDegree {
		return nil, errNotPolynomial
	}
	out := constPoly(Real(1))
	for range int(k) {
		var err error
		if out, err = out.mul(base); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p poly) hasComplex() bool {
	for _, c := range p {
		if c.IsComplex() && c.Complex().Imag != 0 {
			return true
		}
	}
	return false
}
