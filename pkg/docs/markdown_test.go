package docs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools"
	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
	atools "github.com/nilay320/MCP-Session-Code/pkg/agent/tools"
	sdomain "github.com/nilay320/MCP-Session-Code/pkg/schema/domain"
)

func testRegistry(t *testing.T) tools.ToolRegistry {
	t.Helper()
	r := tools.NewRegistry()

	dice := atools.NewToolBuilder("roll_dice", "Roll dice").
		WithFunction(func(p struct {
			Notation string `json:"notation"`
			NumRolls int    `json:"num_rolls"`
		}) string {
			return p.Notation
		}).
		WithParameterSchema(&sdomain.Schema{
			Type: "object",
			Properties: map[string]sdomain.Property{
				"notation":  {Type: "string", Description: "Dice notation | NdM+K"},
				"num_rolls": {Type: "integer", Default: 1},
			},
			Required: []string{"notation"},
		}).
		WithCategory("math").
		WithTags([]string{"dice", "random"}).
		WithConstraints([]string{"At most 100 dice"}).
		WithErrorGuidance(map[string]string{"Invalid dice notation": "Use NdM+K"}).
		WithExamples([]domain.ToolExample{{Name: "Two six-sided dice", Input: map[string]interface{}{"notation": "2d6"}}}).
		Build()
	require.NoError(t, r.RegisterTool("roll_dice", dice, tools.ToolMetadata{}))

	search := atools.NewToolBuilder("web_search", "Search the web").
		WithFunction(func() string { return "" }).
		WithCategory("web").
		Build()
	require.NoError(t, r.RegisterTool("web_search", search, tools.ToolMetadata{
		ResourceUsage: tools.ResourceInfo{Network: true},
	}))
	return r
}

func TestMarkdown(t *testing.T) {
	docs, err := FromRegistry(testRegistry(t))
	require.NoError(t, err)
	require.Len(t, docs, 2)

	cfg := DefaultConfig()
	cfg.Version = "1.0.0"
	md := Markdown(cfg, docs)

	assert.Contains(t, md, "# Tool Reference\n\n**Version:** 1.0.0\n\n")
	assert.Contains(t, md, "- [Math](#math)\n- [Web](#web)\n")
	assert.Contains(t, md, "## Math\n\n### roll_dice\n\nRoll dice\n\n")
	assert.Contains(t, md, "| **Tags** | dice, random |")
	assert.Contains(t, md, "| `notation` | string | yes |  | Dice notation \\| NdM+K |")
	assert.Contains(t, md, "| `num_rolls` | integer | no | `1` |  |")
	assert.Contains(t, md, "- At most 100 dice\n")
	assert.Contains(t, md, "| Invalid dice notation | Use NdM+K |")
	assert.Contains(t, md, "##### Example 1: Two six-sided dice\n\n**Input:**\n\n```json\n{\n  \"notation\": \"2d6\"\n}\n```")
	assert.Contains(t, md, "### web_search")
	assert.Contains(t, md, "| **Network** | yes |")
	assert.Less(t, strings.Index(md, "## Math"), strings.Index(md, "## Web"))
}

func TestMarkdownWithoutSchemasOrExamples(t *testing.T) {
	docs, err := FromRegistry(testRegistry(t))
	require.NoError(t, err)

	md := Markdown(Config{Title: "Tools"}, docs)
	assert.NotContains(t, md, "#### Parameters")
	assert.NotContains(t, md, "#### Examples")
}
