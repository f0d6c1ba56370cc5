// ABOUTME: Implementations of the allow-listed math functions
// ABOUTME: Real functions report domain and range errors; sqrt, phase, polar and rect are complex-aware

package calc

import (
	"math"
	"math/big"
	"math/cmplx"
	"strconv"
)

// maxFactorial is the largest argument whose factorial fits in maxIntBits.
const maxFactorial = 10000

func builtinFunctions() []Function {
	return []Function{
		realFunc("sin", math.Sin, false),
		realFunc("cos", math.Cos, false),
		realFunc("tan", math.Tan, false),
		realFunc("asin", math.Asin, false),
		realFunc("acos", math.Acos, false),
		realFunc("atan", math.Atan, false),
		realFunc("sinh", math.Sinh, true),
		realFunc("cosh", math.Cosh, true),
		realFunc("tanh", math.Tanh, false),
		realFunc("asinh", math.Asinh, false),
		realFunc("acosh", math.Acosh, false),
		realFunc("atanh", math.Atanh, false),
		realFunc("exp", math.Exp, true),
		realFunc("degrees", func(x float64) float64 { return x * (180 / math.Pi) }, true),
		realFunc("radians", func(x float64) float64 { return x * (math.Pi / 180) }, false),

		{Name: "log", MinArgs: 1, MaxArgs: 2, Call: logFunc},
		{Name: "ln", MinArgs: 1, MaxArgs: 2, Call: logFunc},
		{Name: "log10", MinArgs: 1, MaxArgs: 1, Call: func(args []Value) (Value, error) {
			return logBase(args[0], math.Ln10, math.Log10)
		}},
		{Name: "log2", MinArgs: 1, MaxArgs: 1, Call: func(args []Value) (Value, error) {
			return logBase(args[0], math.Ln2, math.Log2)
		}},

		{Name: "sqrt", MinArgs: 1, MaxArgs: 1, Call: sqrtFunc},
		{Name: "cbrt", MinArgs: 1, MaxArgs: 1, Call: func(args []Value) (Value, error) {
			return power(args[0], Real(1.0/3.0))
		}},

		{Name: "ceil", MinArgs: 1, MaxArgs: 1, Call: integralFunc("ceil", math.Ceil)},
		{Name: "floor", MinArgs: 1, MaxArgs: 1, Call: integralFunc("floor", math.Floor)},
		{Name: "trunc", MinArgs: 1, MaxArgs: 1, Call: integralFunc("trunc", math.Trunc)},
		{Name: "round", MinArgs: 1, MaxArgs: 2, Call: roundFunc},

		{Name: "factorial", MinArgs: 1, MaxArgs: 1, Call: factorialFunc},
		{Name: "gcd", MinArgs: 0, MaxArgs: -1, Call: gcdFunc},
		{Name: "lcm", MinArgs: 0, MaxArgs: -1, Call: lcmFunc},
		{Name: "abs", MinArgs: 1, MaxArgs: 1, Call: absFunc},
		{Name: "pow", MinArgs: 2, MaxArgs: 3, Call: powFunc},
		{Name: "atan2", MinArgs: 2, MaxArgs: 2, Call: atan2Func},

		{Name: "real", MinArgs: 1, MaxArgs: 1, Call: realPartFunc},
		{Name: "imag", MinArgs: 1, MaxArgs: 1, Call: imagPartFunc},
		{Name: "conjugate", MinArgs: 1, MaxArgs: 1, Call: conjugateFunc},
		{Name: "phase", MinArgs: 1, MaxArgs: 1, Call: phaseFunc},
		{Name: "polar", MinArgs: 1, MaxArgs: 1, Call: polarFunc},
		{Name: "rect", MinArgs: 2, MaxArgs: 2, Call: rectFunc},
		{Name: "complex", MinArgs: 0, MaxArgs: 2, Call: complexFunc},
	}
}

// realFunc wraps a float64 function, classifying NaN results as domain
// errors and infinite results as range (canOverflow) or domain errors.
func realFunc(name string, fn func(float64) float64, canOverflow bool) Function {
	return Function{Name: name, MinArgs: 1, MaxArgs: 1, Call: func(args []Value) (Value, error) {
		x, err := args[0].toFloat()
		if err != nil {
			return Value{}, err
		}
		r, err := checkReal(x, fn(x), canOverflow)
		if err != nil {
			return Value{}, err
		}
		return Real(r), nil
	}}
}

func checkReal(x, r float64, canOverflow bool) (float64, error) {
	if math.IsNaN(r) && !math.IsNaN(x) {
		return 0, failf(InvalidOperation, "math domain error")
	}
	if math.IsInf(r, 0) && !math.IsInf(x, 0) && !math.IsNaN(x) {
		if canOverflow {
			return 0, failf(Overflow, "math range error")
		}
		return 0, failf(InvalidOperation, "math domain error")
	}
	return r, nil
}

// naturalLog returns ln(v) for a positive real, including integers too
// large to convert to float64.
func naturalLog(v Value) (float64, error) {
	if v.kind == KindInt {
		i := v.BigInt()
		if i.Sign() <= 0 {
			return 0, failf(InvalidOperation, "math domain error")
		}
		if i.BitLen() > 1000 {
			shift := i.BitLen() - 64
			top, _ := new(big.Float).SetInt(new(big.Int).Rsh(i, uint(shift))).Float64()
			return math.Log(top) + float64(shift)*math.Ln2, nil
		}
	}
	x, err := v.toFloat()
	if err != nil {
		return 0, err
	}
	return checkReal(x, math.Log(x), false)
}

func logFunc(args []Value) (Value, error) {
	num, err := naturalLog(args[0])
	if err != nil {
		return Value{}, err
	}
	if len(args) == 1 {
		return Real(num), nil
	}
	den, err := naturalLog(args[1])
	if err != nil {
		return Value{}, err
	}
	if den == 0 {
		return Value{}, errDivisionByZero("float division")
	}
	return Real(num / den), nil
}

// logBase uses the exact library function when the argument fits a float64.
func logBase(v Value, lnBase float64, exact func(float64) float64) (Value, error) {
	if v.kind == KindInt && v.BigInt().BitLen() > 1000 {
		ln, err := naturalLog(v)
		if err != nil {
			return Value{}, err
		}
		return Real(ln / lnBase), nil
	}
	x, err := v.toFloat()
	if err != nil {
		return Value{}, err
	}
	r, err := checkReal(x, exact(x), false)
	if err != nil {
		return Value{}, err
	}
	return Real(r), nil
}

func sqrtFunc(args []Value) (Value, error) {
	z, err := args[0].toComplex()
	if err != nil {
		return Value{}, err
	}
	return Complex(cmplx.Sqrt(z)), nil
}

// integralFunc rounds a real to an exact integer; integers pass through.
func integralFunc(name string, fn func(float64) float64) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		v := args[0]
		switch v.kind {
		case KindInt:
			return v, nil
		case KindReal:
			i, err := floatToInt(fn(v.r))
			if err != nil {
				return Value{}, err
			}
			return Int(i), nil
		}
		return Value{}, failf(InvalidType, "%s() argument must be real number, not %s", name, v.kind)
	}
}

func roundFunc(args []Value) (Value, error) {
	v := args[0]
	if v.kind != KindInt && v.kind != KindReal {
		return Value{}, failf(InvalidType, "round() argument must be real number, not %s", v.kind)
	}
	if len(args) == 1 {
		if v.kind == KindInt {
			return v, nil
		}
		i, err := floatToInt(math.RoundToEven(v.r))
		if err != nil {
			return Value{}, err
		}
		return Int(i), nil
	}

	nd, err := args[1].toInt()
	if err != nil {
		return Value{}, err
	}
	if v.kind == KindInt {
		return Int(roundIntDigits(v.BigInt(), nd)), nil
	}
	r, err := roundFloatDigits(v.r, nd)
	if err != nil {
		return Value{}, err
	}
	return Real(r), nil
}

// roundIntDigits rounds to a multiple of 10**-nd, ties to even.
func roundIntDigits(x, nd *big.Int) *big.Int {
	if nd.Sign() >= 0 {
		return x
	}
	if !nd.IsInt64() || -nd.Int64() > int64(len(x.String())) {
		return new(big.Int)
	}
	m := new(big.Int).Exp(big.NewInt(10), new(big.Int).Neg(nd), nil)
	q, r := new(big.Int).DivMod(x, m, new(big.Int)) // floor division for m > 0
	twice := new(big.Int).Lsh(r, 1)
	if c := twice.Cmp(m); c > 0 || (c == 0 && q.Bit(0) == 1) {
		q.Add(q, big.NewInt(1))
	}
	return q.Mul(q, m)
}

// roundFloatDigits rounds half to even on the exact decimal value of x.
func roundFloatDigits(x float64, nd *big.Int) (float64, error) {
	if math.IsInf(x, 0) || math.IsNaN(x) || x == 0 {
		return x, nil
	}
	switch {
	case !nd.IsInt64() && nd.Sign() > 0, nd.IsInt64() && nd.Int64() > 400:
		return x, nil
	case !nd.IsInt64() && nd.Sign() < 0, nd.IsInt64() && nd.Int64() < -400:
		return math.Copysign(0, x), nil
	}
	n := int(nd.Int64())
	if n >= 0 {
		r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', n, 64), 64)
		if err != nil {
			return 0, failf(Overflow, "rounded value too large to represent")
		}
		return r, nil
	}
	scale := math.Pow(10, float64(-n))
	z := math.RoundToEven(x/scale) * scale
	if math.IsInf(z, 0) {
		return 0, failf(Overflow, "rounded value too large to represent")
	}
	return z, nil
}

func factorialFunc(args []Value) (Value, error) {
	v := args[0]
	var n *big.Int
	switch v.kind {
	case KindInt:
		n = v.BigInt()
	case KindReal:
		if v.r != math.Trunc(v.r) || math.IsInf(v.r, 0) {
			return Value{}, failf(InvalidOperation, "factorial() only accepts integral values")
		}
		n, _ = floatToInt(v.r)
	default:
		return Value{}, failf(InvalidType, "must be real number, not %s", v.kind)
	}
	if n.Sign() < 0 {
		return Value{}, failf(InvalidOperation, "factorial() not defined for negative values")
	}
	if !n.IsInt64() || n.Int64() > maxFactorial {
		return Value{}, failf(Overflow, "factorial() argument should not exceed %d", maxFactorial)
	}
	if n.Int64() < 2 {
		return IntFrom(1), nil
	}
	return checkIntSize(new(big.Int).MulRange(1, n.Int64()))
}

func intArgs(args []Value) ([]*big.Int, error) {
	out := make([]*big.Int, len(args))
	for i, a := range args {
		n, err := a.toInt()
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func gcdFunc(args []Value) (Value, error) {
	ints, err := intArgs(args)
	if err != nil {
		return Value{}, err
	}
	g := new(big.Int)
	for _, n := range ints {
		g.GCD(nil, nil, g, new(big.Int).Abs(n))
	}
	return Int(g), nil
}

func lcmFunc(args []Value) (Value, error) {
	ints, err := intArgs(args)
	if err != nil {
		return Value{}, err
	}
	l := big.NewInt(1)
	for _, n := range ints {
		if n.Sign() == 0 {
			return IntFrom(0), nil
		}
		a := new(big.Int).Abs(n)
		g := new(big.Int).GCD(nil, nil, l, a)
		l.Mul(l, a.Quo(a, g))
		if l.BitLen() > maxIntBits {
			return Value{}, failf(Overflow, "integer result exceeds %d bits", maxIntBits)
		}
	}
	return Int(l), nil
}

func absFunc(args []Value) (Value, error) {
	v := args[0]
	switch v.kind {
	case KindInt:
		return Int(new(big.Int).Abs(v.BigInt())), nil
	case KindReal:
		return Real(math.Abs(v.r)), nil
	case KindComplex:
		r := cmplx.Abs(v.c)
		if math.IsInf(r, 0) && !cmplx.IsInf(v.c) {
			return Value{}, failf(Overflow, "absolute value too large")
		}
		return Real(r), nil
	}
	return Value{}, failf(InvalidType, "bad operand type for abs(): '%s'", v.kind)
}

func powFunc(args []Value) (Value, error) {
	if len(args) == 2 {
		return power(args[0], args[1])
	}
	for _, a := range args {
		if a.kind != KindInt {
			return Value{}, failf(InvalidType, "pow() 3rd argument not allowed unless all arguments are integers")
		}
	}
	x, y, m := args[0].BigInt(), args[1].BigInt(), args[2].BigInt()
	if m.Sign() == 0 {
		return Value{}, failf(InvalidOperation, "pow() 3rd argument cannot be 0")
	}
	mod := new(big.Int).Abs(m)
	base := new(big.Int).Mod(x, mod)
	exp := y
	if y.Sign() < 0 {
		inv := new(big.Int).ModInverse(base, mod)
		if inv == nil {
			return Value{}, failf(InvalidOperation, "base is not invertible for the given modulus")
		}
		base = inv
		exp = new(big.Int).Neg(y)
	}
	r := new(big.Int).Exp(base, exp, mod)
	if m.Sign() < 0 && r.Sign() != 0 {
		r.Add(r, m)
	}
	return Int(r), nil
}

func atan2Func(args []Value) (Value, error) {
	y, x, err := realOperands(args[0], args[1])
	if err != nil {
		return Value{}, err
	}
	return Real(math.Atan2(y, x)), nil
}

func realPartFunc(args []Value) (Value, error) {
	v := args[0]
	switch v.kind {
	case KindComplex:
		return Real(real(v.c)), nil
	case KindPair:
		return Value{}, failf(InvalidType, "'tuple' object has no attribute 'real'")
	}
	return v, nil
}

func imagPartFunc(args []Value) (Value, error) {
	v := args[0]
	switch v.kind {
	case KindInt:
		return IntFrom(0), nil
	case KindReal:
		return Real(0), nil
	case KindComplex:
		return Real(imag(v.c)), nil
	}
	return Value{}, failf(InvalidType, "'tuple' object has no attribute 'imag'")
}

func conjugateFunc(args []Value) (Value, error) {
	v := args[0]
	switch v.kind {
	case KindComplex:
		return Complex(cmplx.Conj(v.c)), nil
	case KindPair:
		return Value{}, failf(InvalidType, "'tuple' object has no attribute 'conjugate'")
	}
	return v, nil
}

func phaseFunc(args []Value) (Value, error) {
	z, err := args[0].toComplex()
	if err != nil {
		return Value{}, err
	}
	return Real(cmplx.Phase(z)), nil
}

func polarFunc(args []Value) (Value, error) {
	z, err := args[0].toComplex()
	if err != nil {
		return Value{}, err
	}
	r := cmplx.Abs(z)
	if math.IsInf(r, 0) && !cmplx.IsInf(z) {
		return Value{}, failf(Overflow, "absolute value too large")
	}
	return Pair(r, cmplx.Phase(z)), nil
}

func rectFunc(args []Value) (Value, error) {
	r, phi, err := realOperands(args[0], args[1])
	if err != nil {
		return Value{}, err
	}
	if phi == 0 {
		return Complex(complex(r, 0)), nil
	}
	z := cmplx.Rect(r, phi)
	if cmplx.IsNaN(z) && !math.IsNaN(r) && !math.IsNaN(phi) {
		return Value{}, failf(InvalidOperation, "math domain error")
	}
	return Complex(z), nil
}

func complexFunc(args []Value) (Value, error) {
	var re, im complex128
	var err error
	for i, a := range args {
		if a.kind == KindPair {
			return Value{}, failf(InvalidType, "complex() argument must be a string or a number, not 'tuple'")
		}
		var z complex128
		if z, err = a.toComplex(); err != nil {
			return Value{}, err
		}
		if i == 0 {
			re = z
		} else {
			im = z
		}
	}
	// complex(a, b) == a + b*1j, also for complex arguments
	return Complex(complex(real(re)-imag(im), imag(re)+real(im))), nil
}
