// ABOUTME: Arithmetic operators over the numeric tower with exact integer semantics
// ABOUTME: True division, flooring division, divisor-signed modulo and bounded exact powers

package calc

import (
	"math"
	"math/big"
	"math/cmplx"
)

// promote returns the widest numeric kind of the two operands.
func promote(a, b Value) ValueKind {
	if a.kind > b.kind {
		return a.kind
	}
	return b.kind
}

func unsupported(op TokenType, a, b Value) error {
	return failf(InvalidType, "unsupported operand type(s) for %s: '%s' and '%s'", opSymbol(op), a.kind, b.kind)
}

// realOperands converts both values to float64.
func realOperands(a, b Value) (float64, float64, error) {
	x, err := a.toFloat()
	if err != nil {
		return 0, 0, err
	}
	y, err := b.toFloat()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func complexOperands(a, b Value) (complex128, complex128, error) {
	x, err := a.toComplex()
	if err != nil {
		return 0, 0, err
	}
	y, err := b.toComplex()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// binaryOp applies an infix operator.
func binaryOp(op TokenType, a, b Value) (Value, error) {
	if a.kind == KindPair || b.kind == KindPair {
		return Value{}, unsupported(op, a, b)
	}
	switch op {
	case tokPlus, tokMinus, tokStar:
		return ringOp(op, a, b)
	case tokSlash:
		return trueDivide(a, b)
	case tokDoubleSlash:
		return floorDivide(a, b)
	case tokPercent:
		return modulo(a, b)
	case tokPower:
		return power(a, b)
	}
	return Value{}, failf(Unspecified, "unknown operator %s", op)
}

// unaryOp applies a prefix operator.
func unaryOp(op TokenType, v Value) (Value, error) {
	if v.kind == KindPair {
		return Value{}, failf(InvalidType, "bad operand type for unary %s: '%s'", opSymbol(op), v.kind)
	}
	if op == tokPlus {
		return v, nil
	}
	switch v.kind {
	case KindInt:
		return Int(new(big.Int).Neg(v.BigInt())), nil
	case KindReal:
		return Real(-v.r), nil
	default:
		return Complex(-v.c), nil
	}
}

func ringOp(op TokenType, a, b Value) (Value, error) {
	switch promote(a, b) {
	case KindInt:
		z := new(big.Int)
		switch op {
		case tokPlus:
			z.Add(a.BigInt(), b.BigInt())
		case tokMinus:
			z.Sub(a.BigInt(), b.BigInt())
		default:
			z.Mul(a.BigInt(), b.BigInt())
		}
		return checkIntSize(z)

	case KindReal:
		x, y, err := realOperands(a, b)
		if err != nil {
			return Value{}, err
		}
		switch op {
		case tokPlus:
			return Real(x + y), nil
		case tokMinus:
			return Real(x - y), nil
		default:
			return Real(x * y), nil
		}

	default:
		x, y, err := complexOperands(a, b)
		if err != nil {
			return Value{}, err
		}
		switch op {
		case tokPlus:
			return Complex(x + y), nil
		case tokMinus:
			return Complex(x - y), nil
		default:
			return Complex(x * y), nil
		}
	}
}

func trueDivide(a, b Value) (Value, error) {
	switch promote(a, b) {
	case KindInt:
		if b.BigInt().Sign() == 0 {
			return Value{}, errDivisionByZero("division")
		}
		// Exact quotient rounded once, so huge operands still divide correctly.
		f, _ := new(big.Rat).SetFrac(a.BigInt(), b.BigInt()).Float64()
		if math.IsInf(f, 0) {
			return Value{}, failf(Overflow, "integer division result too large for a float")
		}
		return Real(f), nil

	case KindReal:
		x, y, err := realOperands(a, b)
		if err != nil {
			return Value{}, err
		}
		if y == 0 {
			return Value{}, errDivisionByZero("float division")
		}
		return Real(x / y), nil

	default:
		x, y, err := complexOperands(a, b)
		if err != nil {
			return Value{}, err
		}
		if y == 0 {
			return Value{}, errDivisionByZero("complex division")
		}
		return Complex(x / y), nil
	}
}

func floorDivide(a, b Value) (Value, error) {
	switch promote(a, b) {
	case KindInt:
		if b.BigInt().Sign() == 0 {
			return Value{}, errDivisionByZero("integer division or modulo")
		}
		return Int(intFloorDiv(a.BigInt(), b.BigInt())), nil
	case KindReal:
		x, y, err := realOperands(a, b)
		if err != nil {
			return Value{}, err
		}
		if y == 0 {
			return Value{}, errDivisionByZero("float floor division")
		}
		q, _ := floatDivmod(x, y)
		return Real(q), nil
	default:
		return Value{}, unsupported(tokDoubleSlash, a, b)
	}
}

func modulo(a, b Value) (Value, error) {
	switch promote(a, b) {
	case KindInt:
		if b.BigInt().Sign() == 0 {
			return Value{}, errDivisionByZero("integer division or modulo")
		}
		return Int(intMod(a.BigInt(), b.BigInt())), nil
	case KindReal:
		x, y, err := realOperands(a, b)
		if err != nil {
			return Value{}, err
		}
		if y == 0 {
			return Value{}, errDivisionByZero("float modulo")
		}
		_, m := floatDivmod(x, y)
		return Real(m), nil
	default:
		return Value{}, unsupported(tokPercent, a, b)
	}
}

// intMod returns a mod b with the sign of b.
func intMod(a, b *big.Int) *big.Int {
	r := new(big.Int).Mod(a, b) // 0 <= r < |b|
	if r.Sign() != 0 && b.Sign() < 0 {
		r.Add(r, b)
	}
	return r
}

// intFloorDiv returns floor(a / b).
func intFloorDiv(a, b *big.Int) *big.Int {
	q := new(big.Int).Sub(a, intMod(a, b))
	return q.Quo(q, b)
}

// floatDivmod returns the floored quotient and the divisor-signed remainder.
func floatDivmod(x, y float64) (float64, float64) {
	mod := math.Mod(x, y)
	div := (x - mod) / y
	if mod != 0 {
		if (y < 0) != (mod < 0) {
			mod += y
			div -= 1
		}
	} else {
		mod = math.Copysign(0, y)
	}
	var floordiv float64
	if div != 0 {
		floordiv = math.Floor(div)
		if div-floordiv > 0.5 {
			floordiv++
		}
	} else {
		floordiv = math.Copysign(0, x/y)
	}
	return floordiv, mod
}

func power(a, b Value) (Value, error) {
	if a.kind == KindPair || b.kind == KindPair {
		return Value{}, unsupported(tokPower, a, b)
	}
	switch promote(a, b) {
	case KindInt:
		return intPow(a.BigInt(), b.BigInt())
	case KindReal:
		x, y, err := realOperands(a, b)
		if err != nil {
			return Value{}, err
		}
		return realPow(x, y)
	default:
		x, y, err := complexOperands(a, b)
		if err != nil {
			return Value{}, err
		}
		return complexPow(x, y)
	}
}

func intPow(base, exp *big.Int) (Value, error) {
	if exp.Sign() < 0 {
		if base.Sign() == 0 {
			return Value{}, failf(DivisionByZero, "0.0 cannot be raised to a negative power")
		}
		x, err := bigToFloat(base)
		if err != nil {
			return Value{}, err
		}
		y, err := bigToFloat(exp)
		if err != nil {
			return Value{}, err
		}
		return realPow(x, y)
	}

	abs := new(big.Int).Abs(base)
	switch {
	case abs.Sign() == 0:
		if exp.Sign() == 0 {
			return IntFrom(1), nil
		}
		return IntFrom(0), nil
	case abs.IsInt64() && abs.Int64() == 1:
		if base.Sign() < 0 && exp.Bit(0) == 1 {
			return IntFrom(-1), nil
		}
		return IntFrom(1), nil
	}

	// |base| >= 2, so the result has at least (bits(base)-1)*exp+1 bits.
	if !exp.IsInt64() || exp.Int64() > maxIntBits || int64(abs.BitLen()-1)*exp.Int64() > maxIntBits {
		return Value{}, failf(Overflow, "integer result exceeds %d bits", maxIntBits)
	}
	return checkIntSize(new(big.Int).Exp(base, exp, nil))
}

func realPow(x, y float64) (Value, error) {
	switch {
	case y == 0:
		return Real(1), nil
	case x == 0 && y < 0:
		return Value{}, failf(DivisionByZero, "0.0 cannot be raised to a negative power")
	case x < 0 && !math.IsInf(x, 0) && !math.IsInf(y, 0) && y != math.Trunc(y):
		// Negative base with a fractional exponent has a complex principal value.
		return complexPow(complex(x, 0), complex(y, 0))
	}
	r := math.Pow(x, y)
	if math.IsInf(r, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0) && !math.IsNaN(x) && !math.IsNaN(y) {
		return Value{}, failf(Overflow, "numerical result out of range")
	}
	return Real(r), nil
}

// maxExactComplexExp bounds exponents computed by repeated multiplication.
const maxExactComplexExp = 100

func complexPow(x, y complex128) (Value, error) {
	if y == 0 {
		return Complex(1), nil
	}
	if x == 0 {
		if imag(y) != 0 || real(y) < 0 {
			return Value{}, failf(DivisionByZero, "0.0 to a negative or complex power")
		}
		return Complex(0), nil
	}

	var r complex128
	if n := real(y); imag(y) == 0 && n == math.Trunc(n) && math.Abs(n) <= maxExactComplexExp {
		r = complexPowInt(x, int(math.Abs(n)))
		if n < 0 {
			r = 1 / r
		}
	} else {
		r = cmplx.Pow(x, y)
	}

	if cmplx.IsInf(r) && !cmplx.IsInf(x) && !cmplx.IsInf(y) {
		return Value{}, failf(Overflow, "complex exponentiation")
	}
	return Complex(r), nil
}

// complexPowInt computes x**n by squaring, keeping small integer powers exact.
func complexPowInt(x complex128, n int) complex128 {
	r := complex(1, 0)
	for n > 0 {
		if n&1 == 1 {
			r *= x
		}
		x *= x
		n >>= 1
	}
	return r
}
