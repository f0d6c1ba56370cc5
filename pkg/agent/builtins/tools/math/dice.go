// ABOUTME: Dice rolling tool for [N]dM[+K|-K] notation
// ABOUTME: Randomness comes from an injectable dice.Roller

package math

import (
	"fmt"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins"
	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools"
	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
	atools "github.com/nilay320/MCP-Session-Code/pkg/agent/tools"
	"github.com/nilay320/MCP-Session-Code/pkg/dice"
	sdomain "github.com/nilay320/MCP-Session-Code/pkg/schema/domain"
)

// DiceToolName is the MCP name of the dice tool.
const DiceToolName = "roll_dice"

// DiceParams defines parameters for the dice tool.
type DiceParams struct {
	Notation string `json:"notation"`
	NumRolls int    `json:"num_rolls"`
}

var diceParamSchema = &sdomain.Schema{
	Type: "object",
	Properties: map[string]sdomain.Property{
		"notation": {
			Type:        "string",
			Description: "Dice notation such as 'd20', '2d6' or '3d8+2'",
		},
		"num_rolls": {
			Type:        "integer",
			Description: fmt.Sprintf("How many times to roll (1-%d)", dice.MaxRolls),
			Default:     1,
		},
	},
	Required: []string{"notation"},
}

func init() {
	tools.MustRegisterTool(DiceToolName, RollDice(), tools.ToolMetadata{
		Metadata: builtins.Metadata{
			Name:     DiceToolName,
			Category: "math",
			Tags:     []string{"dice", "random", "games"},
			Version:  toolVersion,
		},
		ResourceUsage: tools.ResourceInfo{
			Memory:      "low",
			Network:     false,
			Concurrency: true,
		},
	})
}

// RollDice creates the dice tool using math/rand/v2.
func RollDice() domain.Tool {
	return NewRollDice(dice.NewRoller(nil))
}

// NewRollDice creates the dice tool around roller.
func NewRollDice(roller *dice.Roller) domain.Tool {
	fn := func(ctx *domain.ToolContext, params DiceParams) (string, error) {
		session, err := roller.Roll(params.Notation, params.NumRolls)
		if err != nil {
			if ctx.Events != nil {
				ctx.Events.EmitError(err)
			}
			return "Error: " + err.Error(), nil
		}
		if ctx.Events != nil {
			ctx.Events.EmitCustom("rolled", map[string]interface{}{
				"notation": session.Notation.String(),
				"rolls":    len(session.Rolls),
				"total":    session.Total(),
			})
		}
		return session.String(), nil
	}

	return atools.NewToolBuilder(DiceToolName, "Roll dice using standard dice notation").
		WithFunction(fn).
		WithParameterSchema(diceParamSchema).
		WithOutputSchema(&sdomain.Schema{
			Type:        "string",
			Description: "One line per roll plus a total, or a message starting with 'Error:'",
		}).
		WithCategory("math").
		WithTags([]string{"dice", "random", "games"}).
		WithVersion(toolVersion).
		WithUsageInstructions(fmt.Sprintf(`Rolls dice written as [N]dM[+K|-K]:
- N: number of dice, 1-%d (defaults to 1)
- M: sides per die, %d-%d
- K: optional modifier added to each roll, at most %d in magnitude

Whitespace is ignored and 'D' works as well as 'd'. Set num_rolls to repeat
the roll; the output then ends with the sum of all rolls.`, dice.MaxDice, dice.MinSides, dice.MaxSides, dice.MaxModifier)).
		WithExamples([]domain.ToolExample{
			{
				Name:        "Single die",
				Description: "Roll a twenty-sided die",
				Input:       map[string]interface{}{"notation": "d20"},
				Output:      "Rolling 1d20 x1\nRoll 1: [14] = 14",
			},
			{
				Name:        "Repeated roll with modifier",
				Description: "Roll 2d6+3 twice",
				Input:       map[string]interface{}{"notation": "2d6+3", "num_rolls": 2},
				Output:      "Rolling 2d6+3 x2\nRoll 1: [4, 1] +3 = 8\nRoll 2: [6, 6] +3 = 15\nTotal: 23",
			},
		}).
		WithConstraints([]string{
			"Randomness is not cryptographically secure",
		}).
		WithBehavior(false, false, false, "fast").
		Build()
}
