// ABOUTME: Deterministic text rendering of evaluation results
// ABOUTME: Snaps near-integers within 1e-10 and renders complex numbers as a + bj

package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// epsilon is the snapping tolerance for zero and integral results.
const epsilon = 1e-10

// Format renders a value:
//   - integers as decimal digits;
//   - reals within epsilon of zero as "0", within epsilon of an integer as
//     that integer, otherwise as the shortest round-trip decimal;
//   - complex numbers with a negligible imaginary part as their real part,
//     otherwise as "a + bj", "a - bj" or "bj" with unit coefficients
//     written as a bare "j";
//   - pairs as "(a, b)".
func Format(v Value) string {
	switch v.kind {
	case KindInt:
		return v.BigInt().String()
	case KindReal:
		return formatReal(v.r)
	case KindComplex:
		return formatComplex(v.c)
	case KindPair:
		return "(" + formatReal(v.pair[0]) + ", " + formatReal(v.pair[1]) + ")"
	}
	return ""
}

func formatReal(r float64) string {
	switch {
	case math.IsNaN(r):
		return "nan"
	case math.IsInf(r, 1):
		return "inf"
	case math.IsInf(r, -1):
		return "-inf"
	case math.Abs(r) < epsilon:
		return "0"
	}
	if n := math.RoundToEven(r); math.Abs(r-n) < epsilon {
		i, _ := big.NewFloat(n).Int(nil)
		return i.String()
	}
	return reprFloat(r)
}

// reprFloat returns the shortest round-trip text, switching to exponent
// notation below 1e-4 and from 1e16 up.
func reprFloat(r float64) string {
	s := strconv.FormatFloat(r, 'e', -1, 64)
	exp, err := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return s
	}
	s = strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

func isUnit(x float64) bool {
	return math.Abs(x-1) < epsilon
}

func formatComplex(c complex128) string {
	a, b := real(c), imag(c)
	if math.Abs(b) < epsilon {
		return formatReal(a)
	}
	if math.Abs(a) < epsilon {
		switch {
		case isUnit(b):
			return "j"
		case isUnit(-b):
			return "-j"
		}
		return formatReal(b) + "j"
	}

	sign := " + "
	if b < 0 {
		sign = " - "
		b = -b
	}
	if isUnit(b) {
		return formatReal(a) + sign + "j"
	}
	return formatReal(a) + sign + formatReal(b) + "j"
}
