package math

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools"
	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
	"github.com/nilay320/MCP-Session-Code/pkg/dice"
	"github.com/nilay320/MCP-Session-Code/pkg/testutils/helpers"
	"github.com/nilay320/MCP-Session-Code/pkg/testutils/mocks"
)

type fixedSource struct {
	values []int
	i      int
}

func (s *fixedSource) IntN(n int) int {
	v := s.values[s.i%len(s.values)] % n
	s.i++
	return v
}

func TestToolsRegistered(t *testing.T) {
	for _, name := range []string{CalculatorToolName, DiceToolName} {
		tool, ok := tools.GetTool(name)
		require.True(t, ok, name)
		assert.Equal(t, name, tool.Name())

		meta, ok := tools.Tools.Metadata(name)
		require.True(t, ok, name)
		assert.Equal(t, "math", meta.Category)
		assert.False(t, meta.ResourceUsage.Network)
		assert.Equal(t, meta.Version, tool.Version())
	}
}

func TestScientificCalculator(t *testing.T) {
	tool := ScientificCalculator()

	tests := []struct {
		expression string
		want       string
	}{
		{"2 + 3 * 4", "14"},
		{"2 ^ 3 ^ 2", "512"},
		{"sin(pi/2)", "1"},
		{"sqrt(-4)", "2j"},
		{"10 mod 3", "1"},
		{"1/0", "Error: Division by zero"},
		{"foo(2)", "Error: Unknown identifier - name 'foo' is not defined"},
		{"2 +", "Error: Invalid mathematical expression syntax"},
	}
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			result, err := tool.Execute(helpers.CreateTestToolContext(), map[string]interface{}{
				"expression": tt.expression,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestScientificCalculatorComplexDomain(t *testing.T) {
	tool := ScientificCalculator()
	assert.Contains(t, tool.UsageInstructions(), "log(-1) is an error")

	run := func(expr string) string {
		result, err := tool.Execute(helpers.CreateTestToolContext(), map[string]interface{}{"expression": expr})
		require.NoError(t, err)
		return result.(string)
	}
	assert.Equal(t, "2j", run("sqrt(-4)"))
	assert.True(t, strings.HasSuffix(run("(-4)**0.5"), "j"))
	assert.True(t, strings.HasPrefix(run("log(-1)"), "Error: Invalid mathematical operation - "))
	assert.True(t, strings.HasPrefix(run("asin(2)"), "Error: Invalid mathematical operation - "))
}

func TestScientificCalculatorEmitsResult(t *testing.T) {
	emitter := mocks.NewMockEventEmitter(CalculatorToolName)
	ctx := helpers.CreateTestToolContext(helpers.WithTestEventEmitter(emitter))

	_, err := ScientificCalculator().Execute(ctx, map[string]interface{}{"expression": "gcd(12, 18)"})
	require.NoError(t, err)

	events := emitter.GetEventsByType("tool.scientific_calculator.evaluated")
	require.Len(t, events, 1)
	assert.Equal(t, "6", events[0].Data.(map[string]interface{})["result"])
}

func TestScientificCalculatorRequiresExpression(t *testing.T) {
	_, err := ScientificCalculator().Execute(helpers.CreateTestToolContext(), map[string]interface{}{})
	assert.ErrorContains(t, err, "missing required parameter 'expression'")
}

func TestRollDice(t *testing.T) {
	tool := NewRollDice(dice.NewRoller(&fixedSource{values: []int{3, 0, 5, 5}}))

	result, err := tool.Execute(helpers.CreateTestToolContext(), map[string]interface{}{
		"notation":  "2d6+3",
		"num_rolls": float64(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "Rolling 2d6+3 x2\nRoll 1: [4, 1] +3 = 8\nRoll 2: [6, 6] +3 = 15\nTotal: 23", result)
}

func TestRollDiceDefaultsToOneRoll(t *testing.T) {
	emitter := mocks.NewMockEventEmitter(DiceToolName)
	ctx := helpers.CreateTestToolContext(helpers.WithTestEventEmitter(emitter))
	tool := NewRollDice(dice.NewRoller(&fixedSource{values: []int{19}}))

	result, err := tool.Execute(ctx, map[string]interface{}{"notation": " D20 "})
	require.NoError(t, err)
	assert.Equal(t, "Rolling 1d20 x1\nRoll 1: [20] = 20", result)

	rolled := emitter.GetEventsByType("tool.roll_dice.rolled")
	require.Len(t, rolled, 1)
	assert.Equal(t, 20, rolled[0].Data.(map[string]interface{})["total"])
}

func TestRollDiceErrorsAreText(t *testing.T) {
	emitter := mocks.NewMockEventEmitter(DiceToolName)
	ctx := helpers.CreateTestToolContext(helpers.WithTestEventEmitter(emitter))

	tests := []struct {
		params map[string]interface{}
		want   string
	}{
		{map[string]interface{}{"notation": "abc"}, "Error: invalid dice notation 'abc': expected [N]dM[+K|-K], e.g. 2d6+3"},
		{map[string]interface{}{"notation": "d1"}, "Error: number of sides must be between 2 and 1000"},
		{map[string]interface{}{"notation": "d6", "num_rolls": 0}, "Error: number of rolls must be between 1 and 100"},
	}
	for _, tt := range tests {
		result, err := RollDice().Execute(ctx, tt.params)
		require.NoError(t, err)
		assert.Equal(t, tt.want, result)
	}
	assert.Len(t, emitter.GetEventsByType(domain.EventToolError), 3)
}
