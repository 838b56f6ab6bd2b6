package gocalc

import (
	"math"
	"strconv"
	"strings"
)

// DefaultPrecision is the number of decimal places results are rounded to before display.
const DefaultPrecision = 10

// ============================================================
// Number formatting
// ============================================================

// roundTo rounds x to prec decimal places, suppressing floating-point noise such as
// 0.1+0.2 = 0.30000000000000004.
func roundTo(x float64, prec int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if prec < 0 {
		prec = DefaultPrecision
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', prec, 64), 64)
	if err != nil {
		return x
	}
	if r == 0 {
		return 0 // drop the sign of -0
	}
	return r
}

// formatReal renders x the way a calculator display shows a plain number: shortest
// round-trip digits, exponent form only for very large or very small magnitudes.
func formatReal(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}
	ax := math.Abs(x)
	if ax >= 1e21 || ax < 1e-6 {
		s := strconv.FormatFloat(x, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		n, err := strconv.Atoi(exp)
		if err != nil {
			return s
		}
		sign := "+"
		if n < 0 {
			sign = "-"
			n = -n
		}
		return mant + "e" + sign + strconv.Itoa(n)
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// FormatResult renders an evaluation result for display. NaN results show as "Error",
// infinite ones as "Infinity" or "-Infinity".
func FormatResult(v Value, prec int) string {
	if v.IsComplex() {
		z := v.Complex()
		if z.IsNaN() {
			return "Error"
		}
		if math.IsInf(z.Real, 0) || math.IsInf(z.Imag, 0) {
			return "Infinity"
		}
		return z.Format(prec)
	}
	f := v.Float64()
	switch {
	case math.IsNaN(f):
		return "Error"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return Complex{Real: f}.Format(prec)
}
