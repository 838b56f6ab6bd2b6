package gocalc

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ============================================================
// Complex literal parsing
// ============================================================

const numeralPattern = `[+-]?\d*\.?\d*(?:[eE][+-]?\d+)?`

var (
	pureImagRe = regexp.MustCompile(`^(` + numeralPattern + `)i$`)
	twoTermRe  = regexp.MustCompile(`^(` + numeralPattern + `)(` + numeralPattern + `i)?$`)
)

// ParseComplex converts text such as "3", "-2.5i", "i", "1e-3-4i" or "i+1" into a
// Complex. It never fails: unparseable input yields NaNComplex and a warning on the
// package logger.
func ParseComplex(text string) Complex {
	s := stripSpace(text)

	switch s {
	case "i", "+i":
		return complexI
	case "-i":
		return complexNegI
	}

	if m := pureImagRe.FindStringSubmatch(s); m != nil {
		return checkLiteral(text, Complex{Imag: unitCoefficient(m[1])})
	}

	if !strings.Contains(s, "i") {
		return checkLiteral(text, Complex{Real: parseNumeral(s)})
	}

	if m := twoTermRe.FindStringSubmatch(s); m != nil {
		z := Complex{Real: parseNumeral(m[1])}
		if m[2] != "" {
			z.Imag = unitCoefficient(strings.TrimSuffix(m[2], "i"))
		}
		return checkLiteral(text, z)
	}

	var z Complex
	for _, term := range splitTerms(s) {
		if coeff, ok := strings.CutSuffix(term, "i"); ok {
			z.Imag += unitCoefficient(coeff)
		} else {
			z.Real += parseNumeral(term)
		}
	}
	return checkLiteral(text, z)
}

func checkLiteral(text string, z Complex) Complex {
	if z.IsNaN() {
		diag().Warn("unparseable complex literal", "text", text)
		return NaNComplex()
	}
	return z
}

// unitCoefficient parses the coefficient in front of i, where "", "+" and "-" mean ±1.
func unitCoefficient(s string) float64 {
	switch s {
	case "", "+":
		return 1
	case "-":
		return -1
	}
	return parseNumeral(s)
}

// parseNumeral converts a numeral; the empty string is zero and anything else that
// fails to parse is NaN.
func parseNumeral(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// splitTerms splits s before every sign that is not part of an exponent.
func splitTerms(s string) []string {
	var out []string
	start := 0
	for i := 1; i < len(s); i++ {
		if s[i] != '+' && s[i] != '-' {
			continue
		}
		if (s[i-1] == 'e' || s[i-1] == 'E') && i >= 2 && (isDigit(s[i-2]) || s[i-2] == '.') {
			continue
		}
		out = append(out, s[start:i])
		start = i
	}
	return append(out, s[start:])
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
