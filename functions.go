package gocalc

import (
	"fmt"
	"math"
	"sort"
)

// ============================================================
// Angle mode
// ============================================================

// AngleMode selects how real trig arguments (and real inverse trig results) are read.
// Complex arguments are always in radians.
type AngleMode string

const (
	Radians AngleMode = "rad"
	Degrees AngleMode = "deg"
)

func ParseAngleMode(s string) (AngleMode, error) {
	switch AngleMode(s) {
	case Radians, "":
		return Radians, nil
	case Degrees:
		return Degrees, nil
	}
	return "", fmt.Errorf("unknown angle mode %q (want rad or deg)", s)
}

// env is everything a tree walk can see besides the tree itself.
type env struct {
	angle AngleMode
	vars  map[string]Value
}

func (e *env) toRadians(x float64) float64 {
	if e.angle == Degrees {
		return x * math.Pi / 180
	}
	return x
}

func (e *env) fromRadians(x float64) float64 {
	if e.angle == Degrees {
		return x * 180 / math.Pi
	}
	return x
}

// ============================================================
// Helper dispatch: real/real stays real, anything else goes Complex
// ============================================================

func Add(a, b Value) Value {
	if bothReal(a, b) {
		return Real(a.z.Real + b.z.Real)
	}
	return ComplexValue(a.z.Add(b.z))
}

func Sub(a, b Value) Value {
	if bothReal(a, b) {
		return Real(a.z.Real - b.z.Real)
	}
	return ComplexValue(a.z.Sub(b.z))
}

func Mul(a, b Value) Value {
	if bothReal(a, b) {
		return Real(a.z.Real * b.z.Real)
	}
	return ComplexValue(a.z.Mul(b.z))
}

// Div is the expression form of division. Unlike Complex.Div it never fails:
// a real zero divisor gives NaN and a complex zero-magnitude divisor gives NaNComplex.
func Div(a, b Value) Value {
	if bothReal(a, b) {
		if b.z.Real == 0 {
			return realNaN()
		}
		return Real(a.z.Real / b.z.Real)
	}
	return ComplexValue(a.z.divOrNaN(b.z))
}

func Pow(a, b Value) Value {
	if bothReal(a, b) {
		return Real(realPow(a.z.Real, b.z.Real))
	}
	return ComplexValue(a.z.Pow(b.z))
}

func Neg(a Value) Value {
	if a.complex {
		return ComplexValue(a.z.Neg())
	}
	return Real(-a.z.Real)
}

// realPow follows math.Pow except that zero to a negative power is NaN, not +Inf.
func realPow(x, y float64) float64 {
	if x == 0 && y < 0 {
		return math.NaN()
	}
	return math.Pow(x, y)
}

func realLog(f func(float64) float64) func(float64) float64 {
	return func(x float64) float64 {
		if x <= 0 {
			return math.NaN()
		}
		return f(x)
	}
}

func realTan(x float64) float64 {
	c := math.Cos(x)
	if math.Abs(c) < degenerateEpsilon {
		return math.NaN()
	}
	return math.Sin(x) / c
}

func factorial(x float64) float64 {
	if x < 0 || x != math.Trunc(x) || math.IsNaN(x) {
		return math.NaN()
	}
	if x > 170 {
		return math.Inf(1)
	}
	r := 1.0
	for k := 2.0; k <= x; k++ {
		r *= k
	}
	return r
}

// nthRoot takes real odd roots of negative numbers, so nroot(-8, 3) is -2.
func nthRoot(x, n float64) float64 {
	if n == 0 {
		return math.NaN()
	}
	if x < 0 && n == math.Trunc(n) && math.Mod(n, 2) != 0 {
		return -math.Pow(-x, 1/n)
	}
	return realPow(x, 1/n)
}

// ============================================================
// Builtin table
// ============================================================

type builtin struct {
	arity int
	fn    func(e *env, args []Value) Value
}

func unaryFn(r func(float64) float64, c func(Complex) Complex) builtin {
	return builtin{1, func(_ *env, a []Value) Value {
		if a[0].complex {
			return ComplexValue(c(a[0].z))
		}
		return Real(r(a[0].z.Real))
	}}
}

func trigFn(r func(float64) float64, c func(Complex) Complex) builtin {
	return builtin{1, func(e *env, a []Value) Value {
		if a[0].complex {
			return ComplexValue(c(a[0].z))
		}
		return Real(r(e.toRadians(a[0].z.Real)))
	}}
}

func invTrigFn(r func(float64) float64, c func(Complex) Complex) builtin {
	return builtin{1, func(e *env, a []Value) Value {
		if a[0].complex {
			return ComplexValue(c(a[0].z))
		}
		return Real(e.fromRadians(r(a[0].z.Real)))
	}}
}

// realOnly builtins have no Complex form; a Complex argument yields NaNComplex.
func realOnly(r func(float64) float64) builtin {
	return unaryFn(r, func(Complex) Complex { return NaNComplex() })
}

func binaryFn(f func(a, b Value) Value) builtin {
	return builtin{2, func(_ *env, a []Value) Value { return f(a[0], a[1]) }}
}

func toReal(f func(Complex) float64) builtin {
	return builtin{1, func(_ *env, a []Value) Value {
		if a[0].complex {
			return Real(f(a[0].z))
		}
		return Real(f(Complex{Real: a[0].z.Real}))
	}}
}

var builtins = map[string]builtin{
	"add": binaryFn(Add),
	"sub": binaryFn(Sub),
	"mul": binaryFn(Mul),
	"div": binaryFn(Div),
	"pow": binaryFn(Pow),
	"neg": {1, func(_ *env, a []Value) Value { return Neg(a[0]) }},

	"abs":  toReal(Complex.Abs),
	"arg":  toReal(Complex.Arg),
	"re":   toReal(func(z Complex) float64 { return z.Real }),
	"im":   toReal(func(z Complex) float64 { return z.Imag }),
	"conj": unaryFn(func(x float64) float64 { return x }, Complex.Conj),

	"sqrt":  unaryFn(math.Sqrt, Complex.Sqrt),
	"cbrt":  unaryFn(math.Cbrt, func(z Complex) Complex { return z.Pow(Complex{Real: 1.0 / 3}) }),
	"exp":   unaryFn(math.Exp, Complex.Exp),
	"log":   unaryFn(realLog(math.Log), Complex.Log),
	"log10": unaryFn(realLog(math.Log10), Complex.Log10),
	"nroot": {2, func(_ *env, a []Value) Value {
		if bothReal(a[0], a[1]) {
			return Real(nthRoot(a[0].z.Real, a[1].z.Real))
		}
		return ComplexValue(a[0].z.Pow(complexOne.divOrNaN(a[1].z)))
	}},

	"sin":  trigFn(math.Sin, Complex.Sin),
	"cos":  trigFn(math.Cos, Complex.Cos),
	"tan":  trigFn(realTan, Complex.Tan),
	"asin": invTrigFn(math.Asin, Complex.Asin),
	"acos": invTrigFn(math.Acos, Complex.Acos),
	"atan": invTrigFn(math.Atan, Complex.Atan),

	"sinh":  unaryFn(math.Sinh, Complex.Sinh),
	"cosh":  unaryFn(math.Cosh, Complex.Cosh),
	"tanh":  unaryFn(math.Tanh, Complex.Tanh),
	"asinh": realOnly(math.Asinh),
	"acosh": realOnly(math.Acosh),
	"atanh": realOnly(math.Atanh),

	"factorial": realOnly(factorial),
	"percent": {1, func(_ *env, a []Value) Value {
		return Div(a[0], Real(100))
	}},
	// deg marks its argument as an angle in degrees.
	"deg": {1, func(e *env, a []Value) Value {
		if e.angle == Degrees {
			return a[0]
		}
		return Mul(a[0], Real(math.Pi/180))
	}},
	"Complex": {2, func(_ *env, a []Value) Value {
		if a[0].complex || a[1].complex {
			return ComplexValue(NaNComplex())
		}
		return ComplexValue(NewComplex(a[0].z.Real, a[1].z.Real))
	}},
}

// calculatorAliases maps calculator spellings onto builtin names. They apply to
// calculator notation only; helper-call syntax uses builtin names as-is, so there
// "log" is the natural logarithm.
var calculatorAliases = map[string]string{
	"ln":   "log",
	"log":  "log10",
	"Abs":  "abs",
	"Arg":  "arg",
	"Conj": "conj",

	"sin" + inverseSuffix:  "asin",
	"cos" + inverseSuffix:  "acos",
	"tan" + inverseSuffix:  "atan",
	"sinh" + inverseSuffix: "asinh",
	"cosh" + inverseSuffix: "acosh",
	"tanh" + inverseSuffix: "atanh",
	"arcsin":               "asin",
	"arccos":               "acos",
	"arctan":               "atan",
}

// Functions lists the builtin function names in sorted order.
func Functions() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
