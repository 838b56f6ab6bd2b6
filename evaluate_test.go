package gocalc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/njchilds90/gocalc"
)

func eval(t *testing.T, expr string) gocalc.Value {
	t.Helper()
	v, err := gocalc.Evaluate(expr)
	if err != nil {
		t.Fatalf("Evaluate(%q): %v", expr, err)
	}
	return v
}

func display(v gocalc.Value) string { return gocalc.FormatResult(v, gocalc.DefaultPrecision) }

// ============================================================
// Calculator notation
// ============================================================

func TestEvaluate_Display(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"2+3", "5"},
		{"2(3+4)", "14"},
		{"(2)(3)", "6"},
		{"2^3", "8"},
		{"2^3^2", "512"},
		{"2**3", "8"},
		{"-2^2", "-4"},
		{"2^-1", "0.5"},
		{"10-4-3", "3"},
		{"12/4/3", "1"},
		{"0.1+0.2", "0.3"},
		{"5!", "120"},
		{"3²", "9"},
		{"2³", "8"},
		{"50%", "0.5"},
		{"√16", "4"},
		{"√(9)+1", "4"},
		{"2π", "6.2831853072"},
		{"ππ", "9.8696044011"},
		{"3×4÷2", "6"},
		{"ln(e)", "1"},
		{"log(1000)", "3"},
		{"log10(100)", "2"},
		{"exp(0)", "1"},
		{"nroot(-8,3)", "-2"},
		{"cbrt(27)", "3"},
		{"abs(-7)", "7"},
		{"sin⁻¹(1)", "1.5707963268"},
		{"arctan(1)*4", "3.1415926536"},
		{"sin(30°)", "0.5"},
		{"1e3+1", "1001"},
		{"[1+2]*3", "9"},
		{"1/3", "0.3333333333"},
		{"171!", "Infinity"},
		{"-171!", "-Infinity"},
	}
	for _, c := range cases {
		if got := display(eval(t, c.expr)); got != c.want {
			t.Errorf("%s = %s, want %s", c.expr, got, c.want)
		}
	}
}

func TestEvaluate_NaNResults(t *testing.T) {
	for _, expr := range []string{"1/0", "sqrt(-1)", "log(0)", "ln(-1)", "0^-1", "(-1)!", "2.5!", "tan(pi/2)"} {
		v := eval(t, expr)
		if !v.IsNaN() {
			t.Errorf("%s = %v, want NaN", expr, v)
		}
		if display(v) != "Error" {
			t.Errorf("%s displays %q, want Error", expr, display(v))
		}
	}
}

// ============================================================
// Complex results
// ============================================================

func TestEvaluate_Complex(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"2i+3i", "5i"},
		{"i*i", "-1"},
		{"(1+2i)(3-i)", "5+5i"},
		{"Complex(-1,0)^0.5", "i"},
		{"sqrt(Complex(-4,0))", "2i"},
		{"abs(3+4i)", "5"},
		{"conj(3+4i)", "3-4i"},
		{"re(3+4i)+im(3+4i)", "7"},
		{"e^(i*π)", "-1"},
		{"e^(iπ)", "-1"},
		{"πi", "3.1415926536i"},
		{"2πi", "6.2831853072i"},
		{"iπ", "3.1415926536i"},
		{"(2+2i)/(1+i)", "2"},
	}
	for _, c := range cases {
		if got := display(eval(t, c.expr)); got != c.want {
			t.Errorf("%s = %s, want %s", c.expr, got, c.want)
		}
	}
}

func TestEvaluate_ComplexKeepsKind(t *testing.T) {
	v := eval(t, "i*i")
	if !v.IsComplex() {
		t.Error("i*i should stay Complex")
	}
	if v := eval(t, "abs(3+4i)"); v.IsComplex() {
		t.Error("abs should return a real")
	}
}

func TestEvaluate_ComplexDivByZeroIsNaN(t *testing.T) {
	v := eval(t, "(1+i)/0i")
	if !v.IsComplex() || !v.IsNaN() {
		t.Errorf("(1+i)/0i = %v, want NaN complex", v)
	}
}

// ============================================================
// Angle mode
// ============================================================

func TestEvaluator_Degrees(t *testing.T) {
	ev := gocalc.NewEvaluator(gocalc.Options{Angle: gocalc.Degrees})
	cases := []struct {
		expr string
		want string
	}{
		{"sin(30)", "0.5"},
		{"cos(60)", "0.5"},
		{"tan(45)", "1"},
		{"asin(1)", "90"},
		{"sin(30°)", "0.5"},
		{"arg(i)", "1.5707963268"},
	}
	for _, c := range cases {
		v, err := ev.Evaluate(c.expr)
		if err != nil {
			t.Fatalf("%s: %v", c.expr, err)
		}
		if got := ev.Format(v); got != c.want {
			t.Errorf("deg %s = %s, want %s", c.expr, got, c.want)
		}
	}
}

func TestEvaluator_Precision(t *testing.T) {
	ev := gocalc.NewEvaluator(gocalc.Options{Precision: gocalc.Places(3)})
	v, err := ev.Evaluate("2/3")
	if err != nil {
		t.Fatal(err)
	}
	if got := ev.Format(v); got != "0.667" {
		t.Errorf("want 0.667, got %s", got)
	}
}

func TestEvaluator_PrecisionZero(t *testing.T) {
	cases := []struct {
		opts gocalc.Options
		want string
	}{
		{gocalc.Options{}, "0.6666666667"},
		{gocalc.Options{Precision: gocalc.Places(0)}, "1"},
		{gocalc.Options{Precision: gocalc.Places(-1)}, "0.6666666667"},
	}
	for _, c := range cases {
		ev := gocalc.NewEvaluator(c.opts)
		if got := ev.Format(gocalc.Real(2.0 / 3)); got != c.want {
			t.Errorf("Format(2/3) = %s, want %s", got, c.want)
		}
	}
}

func TestEvaluator_Vars(t *testing.T) {
	ev := gocalc.NewEvaluator(gocalc.Options{}).With("x", gocalc.Real(3)).With("ans", gocalc.Real(10))
	cases := map[string]float64{
		"2x":      6,
		"x(2)":    6,
		"x^2+1":   10,
		"ans/2":   5,
		"ans(x)":  30,
		"pi-π":    0,
		"2(x+1)x": 24,
	}
	for expr, want := range cases {
		v, err := ev.Evaluate(expr)
		if err != nil {
			t.Fatalf("%s: %v", expr, err)
		}
		if got := v.Float64(); math.Abs(got-want) > tol {
			t.Errorf("%s = %v, want %v", expr, got, want)
		}
	}
}

func TestEvaluator_WithDoesNotMutate(t *testing.T) {
	base := gocalc.NewEvaluator(gocalc.Options{})
	_ = base.With("x", gocalc.Real(1))
	if _, err := base.Evaluate("x"); !errors.Is(err, gocalc.ErrUnknownIdentifier) {
		t.Errorf("base evaluator should not see x, got %v", err)
	}
}

// ============================================================
// Errors
// ============================================================

func TestEvaluate_ParseErrors(t *testing.T) {
	for _, expr := range []string{"", "   ", "2+", "(1+2", "1+2)", "2 $ 3", "sin 30", "*3", "1,2", "3=4", "1.2.3", "5 3", "2 3i", "2^3 4"} {
		_, err := gocalc.Evaluate(expr)
		if !errors.Is(err, gocalc.ErrParse) {
			t.Errorf("Evaluate(%q): want ErrParse, got %v", expr, err)
		}
	}
}

func TestEvaluate_ErrorPosition(t *testing.T) {
	_, err := gocalc.Evaluate("1+2)")
	var ee *gocalc.EvaluationError
	if !errors.As(err, &ee) {
		t.Fatalf("want *EvaluationError, got %T", err)
	}
	if ee.Pos != 3 || ee.Token != ")" || ee.Input != "1+2)" {
		t.Errorf("got pos %d token %q input %q", ee.Pos, ee.Token, ee.Input)
	}
}

func TestEvaluate_UnknownFunctionSuggestion(t *testing.T) {
	_, err := gocalc.Evaluate("sqr(4)")
	if !errors.Is(err, gocalc.ErrUnknownFunction) {
		t.Fatalf("want ErrUnknownFunction, got %v", err)
	}
	var ee *gocalc.EvaluationError
	errors.As(err, &ee)
	if ee.Suggestion != "sqrt" {
		t.Errorf("suggestion = %q, want sqrt", ee.Suggestion)
	}
}

func TestEvaluate_UnknownIdentifier(t *testing.T) {
	_, err := gocalc.Evaluate("2*foo")
	if !errors.Is(err, gocalc.ErrUnknownIdentifier) {
		t.Fatalf("want ErrUnknownIdentifier, got %v", err)
	}
	var ee *gocalc.EvaluationError
	errors.As(err, &ee)
	if ee.Input != "2*foo" || ee.Token != "foo" {
		t.Errorf("got input %q token %q", ee.Input, ee.Token)
	}
}

func TestEvaluate_Arity(t *testing.T) {
	for _, expr := range []string{"nroot(8)", "sin(1,2)", "Complex(1)"} {
		if _, err := gocalc.Evaluate(expr); !errors.Is(err, gocalc.ErrArity) {
			t.Errorf("Evaluate(%q): want ErrArity, got %v", expr, err)
		}
	}
}

func TestAutoClose(t *testing.T) {
	cases := map[string]string{
		"(1+2":      "(1+2)",
		"sin(cos(0": "sin(cos(0))",
		"2*(3+4)":   "2*(3+4)",
		"1+2)":      "1+2)",
		"((1)+(2":   "((1)+(2))",
	}
	for in, want := range cases {
		if got := gocalc.AutoClose(in); got != want {
			t.Errorf("AutoClose(%q) = %q, want %q", in, got, want)
		}
	}
}

// ============================================================
// Rewrite
// ============================================================

func TestRewrite(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"2+3", "add(2,3)"},
		{"2(3+4)", "mul(2,add(3,4))"},
		{"2^3", "pow(2,3)"},
		{"2i+3i", "add(Complex(0,2),Complex(0,3))"},
		{"-x*(y+1)", "mul(neg(x),add(y,1))"},
		{"-3+1", "add(-3,1)"},
		{"ln(2)", "log(2)"},
		{"log(100)", "log10(100)"},
		{"sin⁻¹(0.5)", "asin(0.5)"},
		{"30°", "deg(30)"},
		{"5!", "factorial(5)"},
		{"√x", "sqrt(x)"},
		{"x²", "pow(x,2)"},
	}
	for _, c := range cases {
		got, err := gocalc.Rewrite(c.expr)
		if err != nil {
			t.Fatalf("Rewrite(%q): %v", c.expr, err)
		}
		if got != c.want {
			t.Errorf("Rewrite(%q) = %q, want %q", c.expr, got, c.want)
		}
	}
}

func TestRewrite_RoundTrip(t *testing.T) {
	for _, expr := range []string{
		"2+3", "2(3+4)", "2i+3i", "(1+2i)(3-i)", "ln(2)+log(100)", "sin⁻¹(0.5)",
		"2^3^2", "-2^2", "5!/3", "1e-7*3", "√(2)", "Abs(3-4i)", "30°",
	} {
		want := eval(t, expr)
		rewritten, err := gocalc.Rewrite(expr)
		if err != nil {
			t.Fatalf("Rewrite(%q): %v", expr, err)
		}
		got, err := gocalc.EvaluateRewritten(rewritten)
		if err != nil {
			t.Fatalf("EvaluateRewritten(%q): %v", rewritten, err)
		}
		if display(got) != display(want) || got.IsComplex() != want.IsComplex() {
			t.Errorf("%s: rewritten %s evaluates to %v, want %v", expr, rewritten, got, want)
		}
	}
}

func TestEvaluateRewritten_LogIsNatural(t *testing.T) {
	v, err := gocalc.EvaluateRewritten("log(e)")
	if err != nil {
		t.Fatal(err)
	}
	if display(v) != "1" {
		t.Errorf("log(e) in helper syntax = %v, want 1", v)
	}
}

func TestCompile_Reuse(t *testing.T) {
	x, err := gocalc.Compile("x^2-1")
	if err != nil {
		t.Fatal(err)
	}
	for in, want := range map[float64]float64{0: -1, 2: 3, -3: 8} {
		v, err := x.Eval(gocalc.Radians, map[string]gocalc.Value{"x": gocalc.Real(in)})
		if err != nil {
			t.Fatal(err)
		}
		if v.Float64() != want {
			t.Errorf("f(%v) = %v, want %v", in, v.Float64(), want)
		}
	}
}

func TestFunctions_Sorted(t *testing.T) {
	names := gocalc.Functions()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
}
