// ABOUTME: Tool registry with resource usage tracking and MCP catalog export
// ABOUTME: Builtin tools register into the global Tools registry from init

package tools

import (
	"fmt"
	"sync"
	"time"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins"
	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
)

// ToolRegistry extends the base registry with tool-specific functionality.
type ToolRegistry interface {
	builtins.Registry[domain.Tool]

	// RegisterTool registers a tool, filling metadata gaps from the tool itself
	RegisterTool(name string, tool domain.Tool, metadata ToolMetadata) error

	// Metadata returns the enhanced metadata stored for name
	Metadata(name string) (ToolMetadata, bool)

	// ListByResourceUsage returns tools matching resource criteria
	ListByResourceUsage(criteria ResourceCriteria) []builtins.RegistryEntry[domain.Tool]

	ExportToMCP(name string) (domain.MCPToolDefinition, error)
	ExportAllToMCP() (MCPCatalog, error)

	GetToolDocumentation(name string) (ToolDocumentation, error)
}

// ToolMetadata extends base metadata for tools.
type ToolMetadata struct {
	builtins.Metadata `yaml:",inline"`
	ResourceUsage     ResourceInfo `json:"resource_usage,omitempty" yaml:"resource_usage,omitempty"`

	UsageInstructions    string               `json:"usage_instructions,omitempty" yaml:"usage_instructions,omitempty"`
	Examples             []domain.ToolExample `json:"examples,omitempty" yaml:"examples,omitempty"`
	Constraints          []string             `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	ErrorGuidance        map[string]string    `json:"error_guidance,omitempty" yaml:"error_guidance,omitempty"`
	IsDeterministic      bool                 `json:"is_deterministic" yaml:"is_deterministic"`
	IsDestructive        bool                 `json:"is_destructive" yaml:"is_destructive"`
	RequiresConfirmation bool                 `json:"requires_confirmation" yaml:"requires_confirmation"`
	EstimatedLatency     string               `json:"estimated_latency,omitempty" yaml:"estimated_latency,omitempty"`
}

// ResourceInfo describes resource requirements.
type ResourceInfo struct {
	Memory      string `json:"memory,omitempty" yaml:"memory,omitempty"` // "low", "medium", "high"
	Network     bool   `json:"network,omitempty" yaml:"network,omitempty"`
	Concurrency bool   `json:"concurrency,omitempty" yaml:"concurrency,omitempty"` // safe for concurrent calls
}

// ResourceCriteria filters tools by resource usage. Nil pointers match anything.
type ResourceCriteria struct {
	MaxMemory          string
	RequiresNetwork    *bool
	RequiresConcurrent *bool
}

// MCPCatalog is a catalog of tools in MCP format.
type MCPCatalog struct {
	Version     string                     `json:"version" yaml:"version"`
	Description string                     `json:"description" yaml:"description"`
	Tools       []domain.MCPToolDefinition `json:"tools" yaml:"tools"`
	Metadata    map[string]interface{}     `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ToolDocumentation gathers everything known about a tool.
type ToolDocumentation struct {
	Name                 string               `json:"name" yaml:"name"`
	Description          string               `json:"description" yaml:"description"`
	Category             string               `json:"category" yaml:"category"`
	Tags                 []string             `json:"tags" yaml:"tags"`
	Version              string               `json:"version" yaml:"version"`
	UsageInstructions    string               `json:"usage_instructions" yaml:"usage_instructions"`
	Examples             []domain.ToolExample `json:"examples" yaml:"examples"`
	Constraints          []string             `json:"constraints" yaml:"constraints"`
	ErrorGuidance        map[string]string    `json:"error_guidance" yaml:"error_guidance"`
	ResourceUsage        ResourceInfo         `json:"resource_usage" yaml:"resource_usage"`
	IsDeterministic      bool                 `json:"is_deterministic" yaml:"is_deterministic"`
	IsDestructive        bool                 `json:"is_destructive" yaml:"is_destructive"`
	RequiresConfirmation bool                 `json:"requires_confirmation" yaml:"requires_confirmation"`
	EstimatedLatency     string               `json:"estimated_latency" yaml:"estimated_latency"`
	ParameterSchema      interface{}          `json:"parameter_schema,omitempty" yaml:"parameter_schema,omitempty"`
	OutputSchema         interface{}          `json:"output_schema,omitempty" yaml:"output_schema,omitempty"`
}

// CatalogDescription names the exported catalog.
const CatalogDescription = "MCP Session Code tool catalog"

var memoryLevels = map[string]int{"low": 1, "medium": 2, "high": 3}

type toolRegistry struct {
	builtins.Registry[domain.Tool]
	toolMetadata map[string]ToolMetadata
	mu           sync.RWMutex
}

// Tools is the global registry for builtin tools.
var Tools ToolRegistry = NewRegistry()

// NewRegistry creates an empty tool registry, for tests and custom servers.
func NewRegistry() ToolRegistry {
	return &toolRegistry{
		Registry:     builtins.NewRegistry[domain.Tool](),
		toolMetadata: make(map[string]ToolMetadata),
	}
}

func (r *toolRegistry) RegisterTool(name string, tool domain.Tool, metadata ToolMetadata) error {
	if err := validateToolMetadata(name, tool, metadata); err != nil {
		return fmt.Errorf("invalid tool metadata: %w", err)
	}

	if metadata.Description == "" {
		metadata.Description = tool.Description()
	}
	if metadata.UsageInstructions == "" {
		metadata.UsageInstructions = tool.UsageInstructions()
	}
	if len(metadata.Examples) == 0 {
		metadata.Examples = tool.Examples()
	}
	if len(metadata.Constraints) == 0 {
		metadata.Constraints = tool.Constraints()
	}
	if metadata.ErrorGuidance == nil {
		metadata.ErrorGuidance = tool.ErrorGuidance()
	}
	if metadata.Category == "" {
		metadata.Category = tool.Category()
	}
	if len(metadata.Tags) == 0 {
		metadata.Tags = tool.Tags()
	}
	if metadata.Version == "" {
		metadata.Version = tool.Version()
	}
	if metadata.EstimatedLatency == "" {
		metadata.EstimatedLatency = tool.EstimatedLatency()
	}
	metadata.IsDeterministic = tool.IsDeterministic()
	metadata.IsDestructive = tool.IsDestructive()
	metadata.RequiresConfirmation = tool.RequiresConfirmation()

	if err := r.Register(name, tool, metadata.Metadata); err != nil {
		return err
	}

	r.mu.Lock()
	r.toolMetadata[name] = metadata
	r.mu.Unlock()
	return nil
}

func (r *toolRegistry) Metadata(name string) (ToolMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.toolMetadata[name]
	return m, ok
}

func (r *toolRegistry) ListByResourceUsage(criteria ResourceCriteria) []builtins.RegistryEntry[domain.Tool] {
	all := r.List()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []builtins.RegistryEntry[domain.Tool]
	for _, entry := range all {
		if metadata, ok := r.toolMetadata[entry.Metadata.Name]; ok && matchesResourceCriteria(metadata.ResourceUsage, criteria) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

func validateToolMetadata(name string, tool domain.Tool, metadata ToolMetadata) error {
	if tool == nil {
		return fmt.Errorf("tool '%s' is nil", name)
	}
	if tool.Name() != name {
		return fmt.Errorf("tool name '%s' does not match registration name '%s'", tool.Name(), name)
	}
	if m := metadata.ResourceUsage.Memory; m != "" && memoryLevels[m] == 0 {
		return fmt.Errorf("invalid memory usage level: %s", m)
	}
	return nil
}

func matchesResourceCriteria(info ResourceInfo, criteria ResourceCriteria) bool {
	if criteria.MaxMemory != "" && info.Memory != "" {
		maxLevel, maxOK := memoryLevels[criteria.MaxMemory]
		level, ok := memoryLevels[info.Memory]
		if maxOK && ok && level > maxLevel {
			return false
		}
	}
	if criteria.RequiresNetwork != nil && *criteria.RequiresNetwork != info.Network {
		return false
	}
	if criteria.RequiresConcurrent != nil && *criteria.RequiresConcurrent != info.Concurrency {
		return false
	}
	return true
}

func (r *toolRegistry) ExportToMCP(name string) (domain.MCPToolDefinition, error) {
	tool, found := r.Get(name)
	if !found {
		return domain.MCPToolDefinition{}, fmt.Errorf("tool '%s' not found", name)
	}
	return tool.ToMCPDefinition(), nil
}

// ExportAllToMCP exports every tool, ordered by name.
func (r *toolRegistry) ExportAllToMCP() (MCPCatalog, error) {
	all := r.List()

	catalog := MCPCatalog{
		Version:     "1.0.0",
		Description: CatalogDescription,
		Tools:       make([]domain.MCPToolDefinition, 0, len(all)),
		Metadata: map[string]interface{}{
			"generated_at": time.Now().UTC().Format(time.RFC3339),
			"tool_count":   len(all),
		},
	}
	for _, entry := range all {
		catalog.Tools = append(catalog.Tools, entry.Component.ToMCPDefinition())
	}
	return catalog, nil
}

func (r *toolRegistry) GetToolDocumentation(name string) (ToolDocumentation, error) {
	tool, found := r.Get(name)
	if !found {
		return ToolDocumentation{}, fmt.Errorf("tool '%s' not found", name)
	}

	doc := ToolDocumentation{
		Name:                 tool.Name(),
		Description:          tool.Description(),
		Category:             tool.Category(),
		Tags:                 tool.Tags(),
		Version:              tool.Version(),
		UsageInstructions:    tool.UsageInstructions(),
		Examples:             tool.Examples(),
		Constraints:          tool.Constraints(),
		ErrorGuidance:        tool.ErrorGuidance(),
		IsDeterministic:      tool.IsDeterministic(),
		IsDestructive:        tool.IsDestructive(),
		RequiresConfirmation: tool.RequiresConfirmation(),
		EstimatedLatency:     tool.EstimatedLatency(),
	}
	if s := tool.ParameterSchema(); s != nil {
		doc.ParameterSchema = s
	}
	if s := tool.OutputSchema(); s != nil {
		doc.OutputSchema = s
	}
	if metadata, ok := r.Metadata(name); ok {
		doc.ResourceUsage = metadata.ResourceUsage
	}
	return doc, nil
}

func (r *toolRegistry) Unregister(name string) bool {
	r.mu.Lock()
	delete(r.toolMetadata, name)
	r.mu.Unlock()
	return r.Registry.Unregister(name)
}

func (r *toolRegistry) Clear() {
	r.mu.Lock()
	r.toolMetadata = make(map[string]ToolMetadata)
	r.mu.Unlock()
	r.Registry.Clear()
}

// MustRegisterTool registers into the global registry or panics.
func MustRegisterTool(name string, tool domain.Tool, metadata ToolMetadata) {
	if err := Tools.RegisterTool(name, tool, metadata); err != nil {
		panic(fmt.Sprintf("failed to register tool '%s': %v", name, err))
	}
}

// GetTool looks a tool up in the global registry.
func GetTool(name string) (domain.Tool, bool) {
	return Tools.Get(name)
}

// MustGetTool looks a tool up in the global registry or panics.
func MustGetTool(name string) domain.Tool {
	return Tools.MustGet(name)
}
