// ABOUTME: Tagged-union numeric value with integer, real, complex and pair variants
// ABOUTME: Implements promotion from exact integers to float64 and complex128

package calc

import (
	"math"
	"math/big"
)

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	KindInt ValueKind = iota
	KindReal
	KindComplex
	KindPair
)

// String returns the type name used in diagnostics.
func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindReal:
		return "float"
	case KindComplex:
		return "complex"
	case KindPair:
		return "tuple"
	default:
		return "unknown"
	}
}

// maxIntBits bounds exact integer results. Larger results fail with Overflow.
const maxIntBits = 100000

// Value is an evaluation result. The zero Value is the integer 0.
type Value struct {
	kind ValueKind
	i    *big.Int
	r    float64
	c    complex128
	pair [2]float64
}

// Int returns an integer value. The argument is not copied.
func Int(i *big.Int) Value {
	return Value{kind: KindInt, i: i}
}

// IntFrom returns an integer value from an int64.
func IntFrom(n int64) Value {
	return Value{kind: KindInt, i: big.NewInt(n)}
}

// Real returns a real value.
func Real(f float64) Value {
	return Value{kind: KindReal, r: f}
}

// Complex returns a complex value.
func Complex(c complex128) Value {
	return Value{kind: KindComplex, c: c}
}

// Pair returns a two-element value, as produced by polar.
func Pair(a, b float64) Value {
	return Value{kind: KindPair, pair: [2]float64{a, b}}
}

// Kind reports the variant.
func (v Value) Kind() ValueKind {
	return v.kind
}

// BigInt returns the integer payload, or nil if v is not an integer.
func (v Value) BigInt() *big.Int {
	if v.kind != KindInt {
		return nil
	}
	if v.i == nil {
		return new(big.Int)
	}
	return v.i
}

// Float returns the real payload. Only meaningful for KindReal.
func (v Value) Float() float64 {
	return v.r
}

// Complex128 returns the complex payload. Only meaningful for KindComplex.
func (v Value) Complex128() complex128 {
	return v.c
}

// PairValues returns both elements of a pair.
func (v Value) PairValues() (float64, float64) {
	return v.pair[0], v.pair[1]
}

// String renders the value with Format.
func (v Value) String() string {
	return Format(v)
}

// IsZero reports whether a numeric value equals zero.
func (v Value) IsZero() bool {
	switch v.kind {
	case KindInt:
		return v.BigInt().Sign() == 0
	case KindReal:
		return v.r == 0
	case KindComplex:
		return v.c == 0
	}
	return false
}

// toFloat converts an integer or real to float64.
func (v Value) toFloat() (float64, error) {
	switch v.kind {
	case KindInt:
		return bigToFloat(v.BigInt())
	case KindReal:
		return v.r, nil
	case KindComplex:
		return 0, failf(InvalidType, "must be real number, not complex")
	default:
		return 0, failf(InvalidType, "must be real number, not %s", v.kind)
	}
}

// toComplex converts any numeric value to complex128.
func (v Value) toComplex() (complex128, error) {
	switch v.kind {
	case KindComplex:
		return v.c, nil
	case KindInt, KindReal:
		f, err := v.toFloat()
		if err != nil {
			return 0, err
		}
		return complex(f, 0), nil
	default:
		return 0, failf(InvalidType, "must be a number, not %s", v.kind)
	}
}

// toInt returns the integer payload or an InvalidType failure.
func (v Value) toInt() (*big.Int, error) {
	if v.kind != KindInt {
		return nil, failf(InvalidType, "'%s' object cannot be interpreted as an integer", v.kind)
	}
	return v.BigInt(), nil
}

func bigToFloat(i *big.Int) (float64, error) {
	if i.IsInt64() {
		return float64(i.Int64()), nil
	}
	f, _ := new(big.Float).SetInt(i).Float64()
	if math.IsInf(f, 0) {
		return 0, failf(Overflow, "int too large to convert to float")
	}
	return f, nil
}

// checkIntSize enforces maxIntBits on an integer result.
func checkIntSize(i *big.Int) (Value, error) {
	if i.BitLen() > maxIntBits {
		return Value{}, failf(Overflow, "integer result exceeds %d bits", maxIntBits)
	}
	return Int(i), nil
}

// floatToInt converts an integral-valued float to an exact integer.
func floatToInt(f float64) (*big.Int, error) {
	if math.IsInf(f, 0) {
		return nil, failf(Overflow, "cannot convert float infinity to integer")
	}
	if math.IsNaN(f) {
		return nil, failf(InvalidOperation, "cannot convert float NaN to integer")
	}
	i, _ := big.NewFloat(f).Int(nil)
	return i, nil
}
