package gocalc

import (
	"encoding/json"
	"math"
)

// ============================================================
// Value: tagged Real | Complex
// ============================================================

// Value is the result of evaluating an expression: either a plain real number or a
// Complex. A Complex value keeps its kind even when its imaginary part is zero.
type Value struct {
	z       Complex
	complex bool
}

func Real(f float64) Value         { return Value{z: Complex{Real: f}} }
func ComplexValue(z Complex) Value { return Value{z: z, complex: true} }
func realNaN() Value               { return Real(math.NaN()) }
func (v Value) IsComplex() bool    { return v.complex }
func (v Value) Float64() float64   { return v.z.Real }
func (v Value) Complex() Complex   { return v.z }
func (v Value) String() string     { return v.z.String() }
func (v Value) IsNaN() bool        { return v.z.IsNaN() }
func (v Value) Equal(other Value) bool {
	return v.complex == other.complex && v.z == other.z
}

// IsFinite reports whether every component of v is a finite number.
func (v Value) IsFinite() bool {
	return !math.IsNaN(v.z.Real) && !math.IsInf(v.z.Real, 0) &&
		!math.IsNaN(v.z.Imag) && !math.IsInf(v.z.Imag, 0)
}

func bothReal(a, b Value) bool { return !a.complex && !b.complex }

type valueJSON struct {
	Kind    string   `json:"kind"`
	Real    *float64 `json:"real"`
	Imag    *float64 `json:"imag,omitempty"`
	Display string   `json:"display"`
}

// jsonFloat maps NaN and infinities to null, which JSON cannot otherwise carry.
func jsonFloat(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func (v Value) MarshalJSON() ([]byte, error) {
	out := valueJSON{Kind: "real", Real: jsonFloat(v.z.Real), Display: FormatResult(v, DefaultPrecision)}
	if v.complex {
		out.Kind = "complex"
		out.Imag = jsonFloat(v.z.Imag)
	}
	return json.Marshal(out)
}
