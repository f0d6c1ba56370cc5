package calc

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		// precedence and associativity
		{"2 + 3 * 4", "14"},
		{"(2 + 3) * 4", "20"},
		{"2 ^ 3 ^ 2", "512"},
		{"2 ** 3 ** 2", "512"},
		{"2^10", "1024"},
		{"-2**2", "-4"},
		{"(-2)**2", "4"},
		{"2**-1", "0.5"},
		{"10 - 4 - 3", "3"},
		{"+5", "5"},
		{"--5", "5"},

		// integer semantics
		{"10 mod 3", "1"},
		{"10 mod 3 + 1", "2"},
		{"10mod3", "1"},
		{"10mod 3", "1"},
		{"7.5mod2", "1.5"},
		{"10modx", "Error: Unknown identifier - name 'x' is not defined"},
		{"10mod", "Error: Invalid mathematical expression syntax"},
		{"7 / 2", "3.5"},
		{"4 / 2", "2"},
		{"7 // 2", "3"},
		{"-7 // 2", "-4"},
		{"-7 % 3", "2"},
		{"7 % -3", "-2"},
		{"7.5 % 2", "1.5"},
		{"2**100", "1267650600228229401496703205376"},
		{"factorial(5)", "120"},
		{"factorial(5.0)", "120"},
		{"gcd(12, 18)", "6"},
		{"gcd(12, 18, 8)", "2"},
		{"gcd()", "0"},
		{"lcm(4, 6)", "12"},
		{"lcm()", "1"},
		{"pow(2, 10)", "1024"},
		{"pow(2, 10, 1000)", "24"},
		{"pow(3, -1, 7)", "5"},

		// reals
		{"0.1 + 0.2", "0.30000000000000004"},
		{"1e-5", "1e-05"},
		{"1e20", "100000000000000000000"},
		{".5 * 3", "1.5"},
		{"pi", "3.141592653589793"},
		{"e", "2.718281828459045"},
		{"inf", "inf"},
		{"1e308 * 10", "inf"},
		{"sin(pi/2)", "1"},
		{"cos(0)", "1"},
		{"atan2(1, 1)", "0.7853981633974483"},
		{"degrees(pi)", "180"},
		{"exp(0)", "1"},
		{"log(e)", "1"},
		{"ln(1)", "0"},
		{"log(100, 10)", "2"},
		{"log10(1000)", "3"},
		{"log2(8)", "3"},
		{"ceil(2.1)", "3"},
		{"floor(-2.1)", "-3"},
		{"trunc(-2.7)", "-2"},
		{"round(2.5)", "2"},
		{"round(3.5)", "4"},
		{"round(3.14159, 2)", "3.14"},
		{"round(1234, -2)", "1200"},
		{"cbrt(27)", "3"},
		{"abs(-3)", "3"},
		{"abs(-2.5)", "2.5"},

		// complex
		{"sqrt(16)", "4"},
		{"sqrt(4)", "2"},
		{"sqrt(-1)", "j"},
		{"sqrt(-4)", "2j"},
		{"1j", "j"},
		{"-1j", "-j"},
		{"1+2j", "1 + 2j"},
		{"1-2j", "1 - 2j"},
		{"2 + 1j", "2 + j"},
		{"2 - 1j", "2 - j"},
		{"(1+2j)*(1-2j)", "5"},
		{"(1+2j)**2", "-3 + 4j"},
		{"abs(3+4j)", "5"},
		{"complex(1, 2)", "1 + 2j"},
		{"complex(2)", "2"},
		{"real(3+4j)", "3"},
		{"imag(3+4j)", "4"},
		{"conjugate(3+4j)", "3 - 4j"},
		{"phase(-1)", "3.141592653589793"},
		{"rect(2, 0)", "2"},
		{"polar(1)", "(1, 0)"},
		{"polar(3+4j)", "(5, 0.9272952180016122)"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, Calculate(tt.expr))
		})
	}
}

func TestCalculateErrors(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1/0", "Error: Division by zero"},
		{"1.0/0", "Error: Division by zero"},
		{"1 // 0", "Error: Division by zero"},
		{"5 % 0", "Error: Division by zero"},
		{"5 mod 0.0", "Error: Division by zero"},
		{"(1+1j)/0", "Error: Division by zero"},
		{"0 ** -1", "Error: Division by zero"},
		{"log(5, 1)", "Error: Division by zero"},

		{"log(-1)", "Error: Invalid mathematical operation - math domain error"},
		{"log(0)", "Error: Invalid mathematical operation - math domain error"},
		{"asin(2)", "Error: Invalid mathematical operation - math domain error"},
		{"acosh(0.5)", "Error: Invalid mathematical operation - math domain error"},
		{"factorial(-1)", "Error: Invalid mathematical operation - factorial() not defined for negative values"},
		{"factorial(2.5)", "Error: Invalid mathematical operation - factorial() only accepts integral values"},
		{"pow(2, 3, 0)", "Error: Invalid mathematical operation - pow() 3rd argument cannot be 0"},
		{"pow(2, -1, 4)", "Error: Invalid mathematical operation - base is not invertible for the given modulus"},
		{"ceil(nan)", "Error: Invalid mathematical operation - cannot convert float NaN to integer"},

		{"exp(1000)", "Error: Result too large to compute"},
		{"10.0 ** 400", "Error: Result too large to compute"},
		{"2 ** 1000000", "Error: Result too large to compute"},
		{"factorial(10000)", "Error: Result too large to compute"},
		{"floor(inf)", "Error: Result too large to compute"},
		{"10**400 * 1.0", "Error: Result too large to compute"},

		{"pi()", "Error: Invalid expression type - 'float' object is not callable"},
		{"sin(1, 2)", "Error: Invalid expression type - sin() takes exactly one argument (2 given)"},
		{"atan2(1)", "Error: Invalid expression type - atan2() takes exactly 2 arguments (1 given)"},
		{"log()", "Error: Invalid expression type - log() takes from 1 to 2 arguments (0 given)"},
		{"sin(1j)", "Error: Invalid expression type - must be real number, not complex"},
		{"gcd(2.5, 5)", "Error: Invalid expression type - 'float' object cannot be interpreted as an integer"},
		{"(1+2j) // 2", "Error: Invalid expression type - unsupported operand type(s) for //: 'complex' and 'int'"},
		{"polar(1) + 1", "Error: Invalid expression type - unsupported operand type(s) for +: 'tuple' and 'int'"},
		{"sin + 1", "Error: Invalid expression type - 'sin' is a function and must be called with arguments"},

		{"foo(2)", "Error: Unknown identifier - name 'foo' is not defined"},
		{"x + 1", "Error: Unknown identifier - name 'x' is not defined"},
		{"modulus(10)", "Error: Unknown identifier - name 'modulus' is not defined"},
		{"__import__(1)", "Error: Unknown identifier - name '__import__' is not defined"},

		{"", "Error: Invalid mathematical expression syntax"},
		{"   ", "Error: Invalid mathematical expression syntax"},
		{"2 +", "Error: Invalid mathematical expression syntax"},
		{"(2 + 3", "Error: Invalid mathematical expression syntax"},
		{"2 + 3)", "Error: Invalid mathematical expression syntax"},
		{"2 $ 3", "Error: Invalid mathematical expression syntax"},
		{"2 3", "Error: Invalid mathematical expression syntax"},
		{"2pi", "Error: Invalid mathematical expression syntax"},
		{"007", "Error: Invalid mathematical expression syntax"},
		{"__import__('os').system('ls')", "Error: Invalid mathematical expression syntax"},
		{"x = 2", "Error: Invalid mathematical expression syntax"},
		{"sin(,)", "Error: Invalid mathematical expression syntax"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, Calculate(tt.expr))
		})
	}
}

func TestLogOfHugeInteger(t *testing.T) {
	v, err := Evaluate("log(2**2000)")
	require.NoError(t, err)
	assert.InDelta(t, 2000*0.6931471805599453, v.Float(), 1e-9)

	v, err = Evaluate("log10(10**400)")
	require.NoError(t, err)
	assert.InDelta(t, 400, v.Float(), 1e-9)
}

func TestEvaluateKinds(t *testing.T) {
	tests := []struct {
		expr string
		kind ValueKind
	}{
		{"2 + 3", KindInt},
		{"7 / 7", KindReal},
		{"2.0", KindReal},
		{"2j", KindComplex},
		{"sqrt(4)", KindComplex},
		{"polar(1j)", KindPair},
		{"ceil(2.5)", KindInt},
	}
	for _, tt := range tests {
		v, err := Evaluate(tt.expr)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.kind, v.Kind(), tt.expr)
	}
}

func TestEvaluateFailureKinds(t *testing.T) {
	tests := []struct {
		expr   string
		target error
	}{
		{"1/0", ErrDivisionByZero},
		{"log(-1)", ErrInvalidOperation},
		{"exp(1000)", ErrOverflow},
		{"pi()", ErrInvalidType},
		{"foo", ErrUnknownIdentifier},
		{"2 +", ErrSyntax},
	}
	for _, tt := range tests {
		_, err := Evaluate(tt.expr)
		require.Error(t, err, tt.expr)
		assert.True(t, errors.Is(err, tt.target), "%s: got %v", tt.expr, err)

		var f *Failure
		require.True(t, errors.As(err, &f))
		assert.NotEmpty(t, f.Message)
	}
}

func TestFailureToBaseError(t *testing.T) {
	_, err := Evaluate("1/0")
	require.Error(t, err)

	base := err.(*Failure).ToBaseError()
	assert.Equal(t, "CALC_DIVISION_BY_ZERO", base.Code)
	assert.Equal(t, "DivisionByZero", base.Type)

	_, err = Evaluate("2 $ 3")
	require.Error(t, err)
	base = err.(*Failure).ToBaseError()
	assert.Equal(t, "CALC_SYNTAX_ERROR", base.Code)
	assert.Equal(t, 2, base.Context["position"])
}

func TestFailureError(t *testing.T) {
	_, err := Evaluate("2 $ 3")
	require.Error(t, err)
	assert.Equal(t, `SyntaxError: unexpected character '$' (at position 2)`, err.Error())
	assert.Equal(t, "Error: Invalid mathematical expression syntax", Describe(err))
	assert.Equal(t, "Error: boom", Describe(errors.New("boom")))
}

func TestCalculateIsPure(t *testing.T) {
	exprs := []string{"2 + 3 * 4", "sqrt(-4)", "1/0", "polar(3+4j)", "2**100"}
	want := make([]string, len(exprs))
	for i, e := range exprs {
		want[i] = Calculate(e)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				for j, e := range exprs {
					assert.Equal(t, want[j], Calculate(e))
				}
			}
		}()
	}
	wg.Wait()
}

func TestNestingLimit(t *testing.T) {
	deep := strings.Repeat("(", 500) + "1" + strings.Repeat(")", 500)
	assert.Equal(t, "Error: Invalid mathematical expression syntax", Calculate(deep))

	shallow := strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50)
	assert.Equal(t, "1", Calculate(shallow))
}

func TestCustomNamespace(t *testing.T) {
	ns := NewNamespace(
		map[string]Value{"answer": IntFrom(42)},
		[]Function{{
			Name: "double", MinArgs: 1, MaxArgs: 1,
			Call: func(args []Value) (Value, error) {
				return binaryOp(tokStar, args[0], IntFrom(2))
			},
		}},
	)
	ev := NewEvaluator(ns)

	assert.Equal(t, "84", ev.Calculate("double(answer)"))
	assert.Equal(t, "Error: Unknown identifier - name 'sin' is not defined", ev.Calculate("sin(1)"))
	assert.Equal(t, []string{"answer", "double"}, ns.Names())
}

func TestFunctionPanicIsUnspecified(t *testing.T) {
	ns := NewNamespace(nil, []Function{{
		Name: "boom", MinArgs: 0, MaxArgs: 0,
		Call: func([]Value) (Value, error) { panic("exploded") },
	}})

	_, err := NewEvaluator(ns).Evaluate("boom()")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnspecified))
	assert.Equal(t, "Error: exploded", NewEvaluator(ns).Calculate("boom()"))
}
