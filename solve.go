package gocalc

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ============================================================
// Equation solving
// ============================================================

type SolutionKind string

const (
	KindLinear     SolutionKind = "linear"
	KindQuadratic  SolutionKind = "quadratic"
	KindExpression SolutionKind = "expression"
	KindInvalid    SolutionKind = "invalid"
)

const (
	StatusUnique   = "unique"
	StatusInfinite = "infinite solutions"
	StatusNone     = "no solution"
	StatusInvalid  = "invalid expression"
)

// Solution is the outcome of solving (or, without an "=", evaluating) an input.
// Roots are ascending when real; a complex pair is listed +imag first.
type Solution struct {
	Kind         SolutionKind
	Status       string
	Roots        []Value
	Result       Value // KindExpression only
	Coefficients map[string]float64
	Err          error
}

func (s Solution) String() string { return s.Format(DefaultPrecision) }

func (s Solution) Format(prec int) string {
	switch {
	case s.Kind == KindInvalid:
		return StatusInvalid
	case s.Kind == KindExpression:
		return FormatResult(s.Result, prec)
	case s.Status != StatusUnique:
		return s.Status
	}
	parts := make([]string, len(s.Roots))
	for i, r := range s.Roots {
		parts[i] = FormatResult(r, prec)
	}
	return "x = " + strings.Join(parts, ", ")
}

func invalid(err error) Solution {
	return Solution{Kind: KindInvalid, Status: StatusInvalid, Err: err}
}

// SolveLinear solves b*x + c = 0.
func SolveLinear(b, c float64) Solution {
	s := Solution{Kind: KindLinear, Coefficients: map[string]float64{"x": b, "constant": c}}
	switch {
	case b == 0 && c == 0:
		s.Status = StatusInfinite
	case b == 0:
		s.Status = StatusNone
	default:
		s.Status = StatusUnique
		s.Roots = []Value{Real(-c / b)}
	}
	return s
}

// SolveQuadratic solves a*x^2 + b*x + c = 0, degrading to SolveLinear when a is zero.
// A negative discriminant yields the complex conjugate pair.
func SolveQuadratic(a, b, c float64) Solution {
	if a == 0 {
		return SolveLinear(b, c)
	}
	s := Solution{
		Kind:         KindQuadratic,
		Status:       StatusUnique,
		Coefficients: map[string]float64{"x^2": a, "x": b, "constant": c},
	}
	d := b*b - 4*a*c
	switch {
	case d < 0:
		re := -b / (2 * a)
		im := math.Sqrt(-d) / (2 * a)
		s.Roots = []Value{ComplexValue(NewComplex(re, im)), ComplexValue(NewComplex(re, -im))}
	case d == 0:
		s.Roots = []Value{Real(-b / (2 * a))}
	default:
		r1 := (-b + math.Sqrt(d)) / (2 * a)
		r2 := (-b - math.Sqrt(d)) / (2 * a)
		roots := []float64{r1, r2}
		sort.Float64s(roots)
		s.Roots = []Value{Real(roots[0]), Real(roots[1])}
	}
	return s
}

func SolveEquation(input string) Solution { return defaultEvaluator.SolveEquation(input) }

// SolveEquation solves a single-variable equation in x. Quadratics get both roots;
// everything else is treated as linear from its values at x = 0 and x = 1.
// Input without exactly one "=" is evaluated as a plain expression instead.
func (ev *Evaluator) SolveEquation(input string) Solution {
	sides := strings.Split(input, "=")
	if len(sides) != 2 {
		v, err := ev.Evaluate(input)
		if err != nil {
			return invalid(err)
		}
		return Solution{Kind: KindExpression, Status: StatusUnique, Result: v}
	}

	left, right := strings.TrimSpace(sides[0]), strings.TrimSpace(sides[1])
	if left == "" || right == "" {
		return invalid(fmt.Errorf("%w: empty side in %q", ErrInvalidEquation, input))
	}
	eq := left
	if stripSpace(right) != "0" {
		eq = left + "-(" + right + ")"
	}

	x, err := Compile(eq)
	if err != nil {
		return invalidEquation(input, err)
	}
	p, err := expand(x.root, "x", &env{angle: ev.opts.Angle, vars: ev.opts.Vars})
	if errors.Is(err, errNotPolynomial) {
		// sin(x)=0, 1/x=2 and the like: fall back to the straight-line estimate.
		return ev.solveLinearExpr(input, x, nil)
	}
	if err != nil {
		return invalidEquation(input, err)
	}

	if p.degree() == 2 {
		if p.hasComplex() {
			return invalid(fmt.Errorf("%w: complex quadratic coefficients", ErrInvalidEquation))
		}
		s := SolveQuadratic(p.coef(2).Float64(), p.coef(1).Float64(), p.coef(0).Float64())
		diag().Debug("solved quadratic", "input", input, "roots", len(s.Roots))
		return s
	}
	return ev.solveLinearExpr(input, x, p)
}

// invalidEquation reports err against the equation as the caller wrote it rather
// than the rearranged form that was compiled.
func invalidEquation(input string, err error) Solution {
	var ee *EvaluationError
	if errors.As(err, &ee) {
		ee.Input = input
	}
	return invalid(err)
}

// solveLinearExpr infers intercept f(0) and slope f(1)-f(0) by evaluation, so
// complex coefficients are handled. Anything that is not linear gets the root of
// the line through those two points. p is nil when the equation is not a polynomial.
func (ev *Evaluator) solveLinearExpr(input string, x *Expression, p poly) Solution {
	at := func(v float64) (Value, error) {
		return x.eval(ev.With("x", Real(v)).opts)
	}
	f0, err := at(0)
	if err != nil {
		return invalidEquation(input, err)
	}
	f1, err := at(1)
	if err != nil {
		return invalidEquation(input, err)
	}
	if !f0.IsFinite() || !f1.IsFinite() {
		return invalid(fmt.Errorf("%w: undefined at x = 0 or x = 1", ErrInvalidEquation))
	}

	s := Solution{Kind: KindLinear}
	if p != nil && p.degree() <= 1 && !p.hasComplex() {
		s.Coefficients = p.realTerms()
	}
	slope := Sub(f1, f0)
	switch {
	case isZeroValue(slope) && isZeroValue(f0):
		s.Status = StatusInfinite
	case isZeroValue(slope):
		s.Status = StatusNone
	default:
		s.Status = StatusUnique
		s.Roots = []Value{Div(Neg(f0), slope)}
	}
	return s
}
