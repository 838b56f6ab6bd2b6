package gocalc

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ============================================================
// Conversions: number bases, statistics, polar, DMS
// ============================================================

var ErrNotFinite = errors.New("value is not a finite real number")

// ToBase renders the floor of v in base "bin", "oct", "hex" or "dec" with the
// usual 0b/0o/0x prefixes. Hex digits are upper case.
func ToBase(v Value, base string) (string, error) {
	if v.IsComplex() || !v.IsFinite() {
		return "", ErrNotFinite
	}
	// Floats past 2^63 are still exact integers; big.Int keeps every digit.
	n, _ := big.NewFloat(math.Floor(v.Float64())).Int(nil)
	sign := ""
	if n.Sign() < 0 {
		sign = "-"
		n.Neg(n)
	}
	switch base {
	case "bin":
		return sign + "0b" + n.Text(2), nil
	case "oct":
		return sign + "0o" + n.Text(8), nil
	case "hex":
		return sign + "0x" + strings.ToUpper(n.Text(16)), nil
	case "dec", "":
		return sign + n.Text(10), nil
	}
	return "", fmt.Errorf("unknown base %q (want bin, oct, hex or dec)", base)
}

// Stats is the summary of a comma-separated list of numbers.
type Stats struct {
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"` // population standard deviation
}

// Statistics parses a comma-separated list such as "2, 4, 4, 4, 5, 5, 7, 9".
func Statistics(list string) (Stats, error) {
	var nums []float64
	for _, field := range strings.Split(list, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return Stats{}, fmt.Errorf("statistics: %q is not a number", strings.TrimSpace(field))
		}
		nums = append(nums, f)
	}
	var st Stats
	st.Count = len(nums)
	for _, n := range nums {
		st.Sum += n
	}
	st.Mean = st.Sum / float64(st.Count)
	var variance float64
	for _, n := range nums {
		variance += (n - st.Mean) * (n - st.Mean)
	}
	st.StdDev = math.Sqrt(variance / float64(st.Count))
	return st, nil
}

// ToPolar converts x,y to r,θ with θ in the given angle mode.
func ToPolar(x, y float64, mode AngleMode) (r, theta float64) {
	e := env{angle: mode}
	return math.Hypot(x, y), e.fromRadians(math.Atan2(y, x))
}

// ToRectangular converts r,θ (θ in the given angle mode) to x,y.
func ToRectangular(r, theta float64, mode AngleMode) (x, y float64) {
	e := env{angle: mode}
	t := e.toRadians(theta)
	return r * math.Cos(t), r * math.Sin(t)
}

// ToDMS renders decimal degrees as degrees, minutes and seconds: 30.5 is 30°30'0".
func ToDMS(deg float64) (string, error) {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return "", ErrNotFinite
	}
	a := math.Abs(deg)
	d := math.Floor(a)
	m := math.Floor((a - d) * 60)
	s := ((a-d)*60 - m) * 60
	sign := ""
	if deg < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%d°%d'%s\"", sign, int64(d), int64(m), FormatNumber(s)), nil
}

// FormatNumber renders a real number at DefaultPrecision.
func FormatNumber(x float64) string { return FormatResult(Real(x), DefaultPrecision) }
