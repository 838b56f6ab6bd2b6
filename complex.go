// Package gocalc provides the expression engine behind an interactive calculator.
//
// Design goals:
//   - Complex-aware arithmetic with NaN propagation instead of panics
//   - Calculator notation (implicit multiplication, unicode operators, i suffix)
//   - Tree evaluation over a tagged Real | Complex value
//   - Linear and quadratic equation solving with real or complex roots
//   - JSON tool and MCP-ready APIs
package gocalc

import (
	"math"
)

// ============================================================
// Complex
// ============================================================

// Complex is an immutable real+imaginary pair. Every method returns a new value.
type Complex struct {
	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
}

func NewComplex(re, im float64) Complex { return Complex{Real: re, Imag: im} }
func NaNComplex() Complex               { return Complex{Real: math.NaN(), Imag: math.NaN()} }

// degenerateEpsilon is the magnitude below which tan/atan denominators count as zero.
const degenerateEpsilon = 1e-15

var (
	complexOne  = Complex{Real: 1}
	complexI    = Complex{Imag: 1}
	complexNegI = Complex{Imag: -1}
)

func (z Complex) IsNaN() bool  { return math.IsNaN(z.Real) || math.IsNaN(z.Imag) }
func (z Complex) IsZero() bool { return z.Real == 0 && z.Imag == 0 }
func (z Complex) IsReal() bool { return z.Imag == 0 }

func (z Complex) Add(w Complex) Complex { return Complex{z.Real + w.Real, z.Imag + w.Imag} }
func (z Complex) Sub(w Complex) Complex { return Complex{z.Real - w.Real, z.Imag - w.Imag} }
func (z Complex) Neg() Complex          { return Complex{-z.Real, -z.Imag} }
func (z Complex) Conj() Complex         { return Complex{z.Real, -z.Imag} }
func (z Complex) Abs() float64          { return math.Sqrt(z.Real*z.Real + z.Imag*z.Imag) }
func (z Complex) Arg() float64          { return math.Atan2(z.Imag, z.Real) }

func (z Complex) Mul(w Complex) Complex {
	return Complex{
		z.Real*w.Real - z.Imag*w.Imag,
		z.Real*w.Imag + z.Imag*w.Real,
	}
}

// Div divides z by w. A divisor with exactly zero magnitude fails with ErrDivisionByZero.
func (z Complex) Div(w Complex) (Complex, error) {
	d := w.Real*w.Real + w.Imag*w.Imag
	if d == 0 {
		return Complex{}, ErrDivisionByZero
	}
	return z.quo(w, d), nil
}

func (z Complex) quo(w Complex, d float64) Complex {
	return Complex{
		(z.Real*w.Real + z.Imag*w.Imag) / d,
		(z.Imag*w.Real - z.Real*w.Imag) / d,
	}
}

// divOrNaN is the helper-call form of division: a zero-magnitude divisor yields NaN.
func (z Complex) divOrNaN(w Complex) Complex {
	q, err := z.Div(w)
	if err != nil {
		return NaNComplex()
	}
	return q
}

func (z Complex) Exp() Complex {
	r := math.Exp(z.Real)
	return Complex{r * math.Cos(z.Imag), r * math.Sin(z.Imag)}
}

// Log is the natural logarithm. log(0) is undefined and yields NaN.
func (z Complex) Log() Complex {
	if z.IsZero() {
		return NaNComplex()
	}
	return Complex{math.Log(z.Abs()), z.Arg()}
}

func (z Complex) Log10() Complex {
	l := z.Log()
	if l.IsNaN() {
		return NaNComplex()
	}
	return Complex{l.Real / math.Ln10, l.Imag / math.Ln10}
}

// Pow computes z^p as exp(p*log(z)), with 0^p special-cased.
func (z Complex) Pow(p Complex) Complex {
	if z.IsZero() {
		switch {
		case p.Real > 0 && p.Imag == 0:
			return Complex{}
		case p.IsZero():
			return complexOne
		default:
			return NaNComplex()
		}
	}
	l := z.Log()
	if l.IsNaN() {
		return NaNComplex()
	}
	return p.Mul(l).Exp()
}

func (z Complex) Sqrt() Complex { return z.Pow(Complex{Real: 0.5}) }

// mulI returns i*z.
func (z Complex) mulI() Complex { return Complex{-z.Imag, z.Real} }

func (z Complex) Sin() Complex {
	iz := z.mulI()
	num := iz.Exp().Sub(iz.Neg().Exp())
	return num.quo(Complex{Imag: 2}, 4)
}

func (z Complex) Cos() Complex {
	iz := z.mulI()
	num := iz.Exp().Add(iz.Neg().Exp())
	return Complex{num.Real / 2, num.Imag / 2}
}

// Tan returns NaN near the poles of cos instead of dividing by a tiny denominator.
func (z Complex) Tan() Complex {
	c := z.Cos()
	if c.Abs() < degenerateEpsilon {
		return NaNComplex()
	}
	return z.Sin().divOrNaN(c)
}

// Asin is -i*ln(iz + sqrt(1-z^2)).
func (z Complex) Asin() Complex {
	root := complexOne.Sub(z.Mul(z)).Sqrt()
	if root.IsNaN() {
		return NaNComplex()
	}
	l := z.mulI().Add(root).Log()
	if l.IsNaN() {
		return NaNComplex()
	}
	return complexNegI.Mul(l)
}

// Acos is -i*ln(z + i*sqrt(1-z^2)).
func (z Complex) Acos() Complex {
	root := complexOne.Sub(z.Mul(z)).Sqrt()
	if root.IsNaN() {
		return NaNComplex()
	}
	l := z.Add(root.mulI()).Log()
	if l.IsNaN() {
		return NaNComplex()
	}
	return complexNegI.Mul(l)
}

// Atan is (i/2)*ln((1-iz)/(1+iz)).
func (z Complex) Atan() Complex {
	iz := z.mulI()
	den := complexOne.Add(iz)
	if den.Abs() < degenerateEpsilon {
		return NaNComplex()
	}
	l := complexOne.Sub(iz).divOrNaN(den).Log()
	if l.IsNaN() {
		return NaNComplex()
	}
	return Complex{Imag: 0.5}.Mul(l)
}

func (z Complex) Sinh() Complex {
	d := z.Exp().Sub(z.Neg().Exp())
	return Complex{d.Real / 2, d.Imag / 2}
}

func (z Complex) Cosh() Complex {
	s := z.Exp().Add(z.Neg().Exp())
	return Complex{s.Real / 2, s.Imag / 2}
}

func (z Complex) Tanh() Complex {
	c := z.Cosh()
	if c.Abs() < degenerateEpsilon {
		return NaNComplex()
	}
	return z.Sinh().divOrNaN(c)
}

func (z Complex) String() string { return z.Format(DefaultPrecision) }

// Format renders z with both parts rounded to prec decimal places.
// A zero imaginary part prints as a plain real; a zero real part prints as i, -i or {imag}i.
func (z Complex) Format(prec int) string {
	if z.IsNaN() {
		return "NaN"
	}
	re := roundTo(z.Real, prec)
	im := roundTo(z.Imag, prec)
	if im == 0 {
		return formatReal(re)
	}
	if re == 0 {
		switch im {
		case 1:
			return "i"
		case -1:
			return "-i"
		}
		return formatReal(im) + "i"
	}
	sign := ""
	if im >= 0 {
		sign = "+"
	}
	return formatReal(re) + sign + formatReal(im) + "i"
}
