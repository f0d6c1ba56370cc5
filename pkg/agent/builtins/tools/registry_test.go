package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins"
	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
	atools "github.com/nilay320/MCP-Session-Code/pkg/agent/tools"
)

func stubTool(name, category string) domain.Tool {
	return atools.NewToolBuilder(name, "stub "+name).
		WithFunction(func() string { return name }).
		WithCategory(category).
		WithTags([]string{category}).
		WithUsageInstructions("call it").
		Build()
}

func TestRegisterToolFillsMetadata(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterTool("web_search", stubTool("web_search", "web"), ToolMetadata{
		ResourceUsage: ResourceInfo{Network: true, Memory: "low"},
	}))

	m, ok := r.Metadata("web_search")
	require.True(t, ok)
	assert.Equal(t, "web", m.Category)
	assert.Equal(t, "stub web_search", m.Description)
	assert.Equal(t, "call it", m.UsageInstructions)
	assert.Equal(t, "1.0.0", m.Version)
	assert.True(t, m.IsDeterministic)

	err := r.RegisterTool("other", stubTool("web_search", "web"), ToolMetadata{})
	assert.ErrorContains(t, err, "does not match registration name")

	err = r.RegisterTool("x", stubTool("x", "math"), ToolMetadata{ResourceUsage: ResourceInfo{Memory: "huge"}})
	assert.ErrorContains(t, err, "invalid memory usage level: huge")
}

func TestListByResourceUsage(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterTool("web_search", stubTool("web_search", "web"), ToolMetadata{ResourceUsage: ResourceInfo{Network: true}}))
	require.NoError(t, r.RegisterTool("roll_dice", stubTool("roll_dice", "math"), ToolMetadata{ResourceUsage: ResourceInfo{Memory: "low"}}))
	require.NoError(t, r.RegisterTool("generate_qr_code", stubTool("generate_qr_code", "utility"), ToolMetadata{ResourceUsage: ResourceInfo{Memory: "medium"}}))

	offline := false
	entries := r.ListByResourceUsage(ResourceCriteria{RequiresNetwork: &offline})
	assert.Equal(t, []string{"generate_qr_code", "roll_dice"}, entryNames(entries))

	entries = r.ListByResourceUsage(ResourceCriteria{MaxMemory: "low"})
	assert.Equal(t, []string{"roll_dice", "web_search"}, entryNames(entries))
}

func TestExportAndDocumentation(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterTool("roll_dice", stubTool("roll_dice", "math"), ToolMetadata{}))
	require.NoError(t, r.RegisterTool("generate_qr_code", stubTool("generate_qr_code", "utility"), ToolMetadata{}))

	catalog, err := r.ExportAllToMCP()
	require.NoError(t, err)
	assert.Equal(t, CatalogDescription, catalog.Description)
	assert.Equal(t, 2, catalog.Metadata["tool_count"])
	require.Len(t, catalog.Tools, 2)
	assert.Equal(t, "generate_qr_code", catalog.Tools[0].Name)

	def, err := r.ExportToMCP("roll_dice")
	require.NoError(t, err)
	assert.Equal(t, "stub roll_dice", def.Description)
	_, err = r.ExportToMCP("missing")
	assert.EqualError(t, err, "tool 'missing' not found")

	doc, err := r.GetToolDocumentation("roll_dice")
	require.NoError(t, err)
	assert.Equal(t, "math", doc.Category)
	assert.NotNil(t, doc.ParameterSchema)

	assert.True(t, r.Unregister("roll_dice"))
	_, ok := r.Metadata("roll_dice")
	assert.False(t, ok)
	r.Clear()
	assert.Equal(t, 0, r.Len())
}

func entryNames(entries []builtins.RegistryEntry[domain.Tool]) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Metadata.Name
	}
	return out
}
