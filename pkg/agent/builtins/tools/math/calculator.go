// ABOUTME: Scientific calculator tool backed by the sandboxed calc evaluator
// ABOUTME: Never fails at the protocol level; evaluation failures render as text

package math

import (
	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins"
	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools"
	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
	atools "github.com/nilay320/MCP-Session-Code/pkg/agent/tools"
	"github.com/nilay320/MCP-Session-Code/pkg/calc"
	sdomain "github.com/nilay320/MCP-Session-Code/pkg/schema/domain"
)

// CalculatorToolName is the MCP name of the calculator tool.
const CalculatorToolName = "scientific_calculator"

// toolVersion is reported in both registry metadata and the tool itself.
const toolVersion = "1.0.0"

// CalculatorParams defines parameters for the calculator tool.
type CalculatorParams struct {
	Expression string `json:"expression"`
}

var calculatorParamSchema = &sdomain.Schema{
	Type: "object",
	Properties: map[string]sdomain.Property{
		"expression": {
			Type:        "string",
			Description: "Mathematical expression to evaluate, e.g. 'sin(pi/2) + 2^10' or 'sqrt(-4)'",
		},
	},
	Required: []string{"expression"},
}

func init() {
	tools.MustRegisterTool(CalculatorToolName, ScientificCalculator(), tools.ToolMetadata{
		Metadata: builtins.Metadata{
			Name:     CalculatorToolName,
			Category: "math",
			Tags:     []string{"math", "calculation", "complex", "trigonometry"},
			Version:  toolVersion,
		},
		ResourceUsage: tools.ResourceInfo{
			Memory:      "low",
			Network:     false,
			Concurrency: true,
		},
	})
}

// ScientificCalculator creates the calculator tool. Results are formatted
// deterministically: integral values print without a fraction, complex
// values as "a + bj", and failures as "Error: <message>".
func ScientificCalculator() domain.Tool {
	return NewScientificCalculator(calc.NewEvaluator(calc.DefaultNamespace()))
}

// NewScientificCalculator creates the calculator tool around ev.
func NewScientificCalculator(ev *calc.Evaluator) domain.Tool {
	fn := func(ctx *domain.ToolContext, params CalculatorParams) (string, error) {
		result := ev.Calculate(params.Expression)
		if ctx.Events != nil {
			ctx.Events.EmitCustom("evaluated", map[string]interface{}{
				"expression": params.Expression,
				"result":     result,
			})
		}
		return result, nil
	}

	return atools.NewToolBuilder(CalculatorToolName, "Evaluate a mathematical expression with real and complex arithmetic").
		WithFunction(fn).
		WithParameterSchema(calculatorParamSchema).
		WithOutputSchema(&sdomain.Schema{
			Type:        "string",
			Description: "Formatted result, or a message starting with 'Error:'",
		}).
		WithCategory("math").
		WithTags([]string{"math", "calculation", "complex", "trigonometry"}).
		WithVersion(toolVersion).
		WithUsageInstructions(`Evaluates a single arithmetic expression. No variables, assignment or statements.

Operators (highest precedence first):
- ** and ^: exponentiation, right-associative (2^3^2 = 512)
- unary + and -: -2**2 = -4
- *, /, // (floor division), % and mod (modulo, sign of the divisor)
- +, -

Numbers: integers (arbitrary precision), decimals, exponents (1e-3), and
imaginary literals (2j). Only sqrt and ** with a negative base and fractional
exponent move into the complex plane: sqrt(-4) = 2j, (-8)**0.5 is complex.
Other real functions reject inputs outside their domain: log(-1) is an error.

Constants: pi, e, tau, inf, nan
Functions: sin cos tan asin acos atan atan2 sinh cosh tanh asinh acosh atanh
log (optional base) log10 log2 ln exp sqrt cbrt pow abs ceil floor trunc round
degrees radians factorial gcd lcm real imag conjugate phase polar rect complex`).
		WithExamples([]domain.ToolExample{
			{
				Name:        "Precedence",
				Description: "Multiplication binds tighter than addition",
				Input:       map[string]interface{}{"expression": "2 + 3 * 4"},
				Output:      "14",
			},
			{
				Name:        "Complex result",
				Description: "Square root of a negative number",
				Input:       map[string]interface{}{"expression": "sqrt(-4)"},
				Output:      "2j",
			},
			{
				Name:        "Snapping",
				Description: "Results within 1e-10 of an integer print as that integer",
				Input:       map[string]interface{}{"expression": "sin(pi/2)"},
				Output:      "1",
			},
			{
				Name:        "Division by zero",
				Description: "Failures are returned as text",
				Input:       map[string]interface{}{"expression": "1/0"},
				Output:      "Error: Division by zero",
				Explanation: "The tool reports errors in its result rather than failing the call",
			},
		}).
		WithConstraints([]string{
			"Only the listed functions and constants are available",
			"Angles are in radians",
			"Integer results are exact; real results use float64",
		}).
		WithErrorGuidance(map[string]string{
			"Invalid mathematical expression syntax": "Check parentheses and operators; '=' and statements are not supported",
			"Unknown identifier":                     "Use one of the listed functions or constants",
			"Result too large to compute":            "Reduce exponents or factorial arguments",
		}).
		WithBehavior(true, false, false, "fast").
		Build()
}
