package gocalc_test

import (
	"errors"
	"testing"

	"github.com/njchilds90/gocalc"
)

// ============================================================
// Equation solving
// ============================================================

func TestSolveEquation_Format(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2x+4=0", "x = -2"},
		{"x+2=0", "x = -2"},
		{"0x+0=0", "infinite solutions"},
		{"0x+5=0", "no solution"},
		{"3x=6", "x = 2"},
		{"x/2=4", "x = 8"},
		{"2(x+1)=x", "x = -2"},
		{"x^2-5x+6=0", "x = 2, 3"},
		{"x^2=4", "x = -2, 2"},
		{"x²-4x+4=0", "x = 2"},
		{"x^2+1=0", "x = i, -i"},
		{"x^2+2x+5=0", "x = -1+2i, -1-2i"},
		{"(x+1)(x-3)=0", "x = -1, 3"},
		{"x=x", "infinite solutions"},
		{"2x=x+x", "infinite solutions"},
		{"x+1=x", "no solution"},
		{"x^3=1", "x = 1"},
		{"sin(x)=0", "x = 0"},
		{"πx=π", "x = 1"},
		{"2πx=0", "x = 0"},
		{"1/x=2", "invalid expression"},
		{"=5", "invalid expression"},
		{"x=", "invalid expression"},
		{"2+3", "5"},
		{"1=2=3", "invalid expression"},
	}
	for _, c := range cases {
		if got := gocalc.SolveEquation(c.in).String(); got != c.want {
			t.Errorf("SolveEquation(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSolveEquation_Kinds(t *testing.T) {
	cases := map[string]gocalc.SolutionKind{
		"2x+4=0":    gocalc.KindLinear,
		"x^2-1=0":   gocalc.KindQuadratic,
		"0x^2+x=1":  gocalc.KindLinear,
		"7*6":       gocalc.KindExpression,
		"x^3=1":     gocalc.KindLinear,
		"sin(x)=1":  gocalc.KindLinear,
		"1/x=2":     gocalc.KindInvalid,
		"2+*3":      gocalc.KindInvalid,
		"x+1=x":     gocalc.KindLinear,
		"x^2+x^2=2": gocalc.KindQuadratic,
	}
	for in, want := range cases {
		if got := gocalc.SolveEquation(in).Kind; got != want {
			t.Errorf("SolveEquation(%q).Kind = %s, want %s", in, got, want)
		}
	}
}

func TestSolveEquation_InvalidCarriesError(t *testing.T) {
	s := gocalc.SolveEquation("1/x=2")
	if !errors.Is(s.Err, gocalc.ErrInvalidEquation) {
		t.Errorf("want ErrInvalidEquation, got %v", s.Err)
	}
	s = gocalc.SolveEquation("foo(x)=1")
	if !errors.Is(s.Err, gocalc.ErrUnknownFunction) {
		t.Errorf("want ErrUnknownFunction, got %v", s.Err)
	}
}

func TestSolveEquation_ErrorNamesEquation(t *testing.T) {
	for _, in := range []string{"πy=π", "sin(y)=x", "2x = y"} {
		s := gocalc.SolveEquation(in)
		var ee *gocalc.EvaluationError
		if !errors.As(s.Err, &ee) {
			t.Fatalf("SolveEquation(%q): want *EvaluationError, got %v", in, s.Err)
		}
		if !errors.Is(s.Err, gocalc.ErrUnknownIdentifier) || ee.Input != in {
			t.Errorf("SolveEquation(%q): got %v with input %q", in, s.Err, ee.Input)
		}
	}
}

func TestSolveEquation_NonPolynomialHasNoCoefficients(t *testing.T) {
	s := gocalc.SolveEquation("sin(x)=0")
	if s.Coefficients != nil {
		t.Errorf("want no coefficients, got %v", s.Coefficients)
	}
	if s = gocalc.SolveEquation("x^3=8"); s.Coefficients != nil {
		t.Errorf("want no coefficients for cubic, got %v", s.Coefficients)
	}
}

func TestSolveEquation_Coefficients(t *testing.T) {
	s := gocalc.SolveEquation("x^2-5x+6=0")
	want := map[string]float64{"x^2": 1, "x": -5, "constant": 6}
	for k, v := range want {
		if s.Coefficients[k] != v {
			t.Errorf("coefficient %s = %v, want %v", k, s.Coefficients[k], v)
		}
	}
}

func TestSolveEquation_ComplexLinear(t *testing.T) {
	s := gocalc.SolveEquation("(1+i)x=2")
	if s.Status != gocalc.StatusUnique || len(s.Roots) != 1 {
		t.Fatalf("got %+v", s)
	}
	if got := s.String(); got != "x = 1-i" {
		t.Errorf("got %q, want x = 1-i", got)
	}
}

func TestSolveEquation_UsesEvaluatorVars(t *testing.T) {
	ev := gocalc.NewEvaluator(gocalc.Options{}).With("a", gocalc.Real(3))
	if got := ev.SolveEquation("a*x=9").String(); got != "x = 3" {
		t.Errorf("got %q", got)
	}
}

func TestSolveEquation_Degrees(t *testing.T) {
	ev := gocalc.NewEvaluator(gocalc.Options{Angle: gocalc.Degrees})
	if got := ev.SolveEquation("x=sin(30)").String(); got != "x = 0.5" {
		t.Errorf("got %q", got)
	}
}

func TestSolveLinear(t *testing.T) {
	if s := gocalc.SolveLinear(2, -6); s.Status != gocalc.StatusUnique || s.Roots[0].Float64() != 3 {
		t.Errorf("2x-6=0: %+v", s)
	}
	if s := gocalc.SolveLinear(0, 0); s.Status != gocalc.StatusInfinite || len(s.Roots) != 0 {
		t.Errorf("0=0: %+v", s)
	}
	if s := gocalc.SolveLinear(0, 5); s.Status != gocalc.StatusNone {
		t.Errorf("5=0: %+v", s)
	}
}

func TestSolveQuadratic(t *testing.T) {
	s := gocalc.SolveQuadratic(1, -3, 2)
	if s.Kind != gocalc.KindQuadratic || len(s.Roots) != 2 {
		t.Fatalf("got %+v", s)
	}
	if s.Roots[0].Float64() != 1 || s.Roots[1].Float64() != 2 {
		t.Errorf("roots = %v, want 1, 2", s.Roots)
	}

	s = gocalc.SolveQuadratic(1, 0, 4)
	if !s.Roots[0].IsComplex() || s.Roots[0].Complex() != gocalc.NewComplex(0, 2) {
		t.Errorf("first root = %v, want 2i", s.Roots[0])
	}
	if s.Roots[1].Complex() != gocalc.NewComplex(0, -2) {
		t.Errorf("second root = %v, want -2i", s.Roots[1])
	}

	s = gocalc.SolveQuadratic(0, 2, 4)
	if s.Kind != gocalc.KindLinear || s.Roots[0].Float64() != -2 {
		t.Errorf("a=0 should degrade to linear, got %+v", s)
	}
}

func TestSolution_FormatPrecision(t *testing.T) {
	s := gocalc.SolveEquation("3x=1")
	if got := s.Format(3); got != "x = 0.333" {
		t.Errorf("got %q", got)
	}
}
