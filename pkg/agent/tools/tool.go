package tools

// ABOUTME: Reflection-backed Tool implementation and its fluent builder
// ABOUTME: Carries schemas, guidance and behavioral hints published over MCP

import (
	"context"
	"reflect"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
	sdomain "github.com/nilay320/MCP-Session-Code/pkg/schema/domain"
)

var (
	contextType     = reflect.TypeOf((*context.Context)(nil)).Elem()
	toolContextType = reflect.TypeOf((*domain.ToolContext)(nil))
	errorType       = reflect.TypeOf((*error)(nil)).Elem()
)

// Tool implements domain.Tool by calling a Go function via reflection.
type Tool struct {
	name         string
	description  string
	fn           interface{}
	paramSchema  *sdomain.Schema
	outputSchema *sdomain.Schema

	usageInstructions string
	examples          []domain.ToolExample
	constraints       []string
	errorGuidance     map[string]string

	category string
	tags     []string
	version  string

	isDeterministic      bool
	isDestructive        bool
	requiresConfirmation bool
	estimatedLatency     string

	// Pre-computed type information
	fnType         reflect.Type
	fnValue        reflect.Value
	hasContext     bool
	hasToolContext bool
	paramType      reflect.Type // nil when the function takes no parameters
}

// NewTool creates a tool from fn and its parameter schema.
// Panics if fn is not a function with a supported signature.
func NewTool(name, description string, fn interface{}, paramSchema *sdomain.Schema) domain.Tool {
	return NewToolBuilder(name, description).
		WithFunction(fn).
		WithParameterSchema(paramSchema).
		Build()
}

// ToolBuilder configures a Tool step by step.
type ToolBuilder struct {
	tool *Tool
}

// NewToolBuilder starts a builder with default metadata.
func NewToolBuilder(name, description string) *ToolBuilder {
	return &ToolBuilder{
		tool: &Tool{
			name:             name,
			description:      description,
			version:          "1.0.0",
			isDeterministic:  true,
			estimatedLatency: "fast",
		},
	}
}

// WithFunction sets the function and pre-computes its signature.
// Panics if fn is not a function or takes more than one parameter
// besides the context.
func (b *ToolBuilder) WithFunction(fn interface{}) *ToolBuilder {
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func {
		panic("tool function must be a function")
	}
	fnType := fnValue.Type()

	t := b.tool
	t.fn = fn
	t.fnValue = fnValue
	t.fnType = fnType
	t.hasContext = false
	t.hasToolContext = false
	t.paramType = nil

	next := 0
	if fnType.NumIn() > 0 {
		first := fnType.In(0)
		switch {
		case first == toolContextType:
			t.hasToolContext = true
			next = 1
		case first.Implements(contextType):
			t.hasContext = true
			next = 1
		}
	}
	switch fnType.NumIn() - next {
	case 0:
	case 1:
		t.paramType = fnType.In(next)
	default:
		panic("tool function must take at most one parameter besides the context")
	}

	if fnType.NumOut() > 2 || (fnType.NumOut() == 2 && !fnType.Out(1).Implements(errorType)) {
		panic("tool function must return (result) or (result, error)")
	}
	return b
}

func (b *ToolBuilder) WithParameterSchema(schema *sdomain.Schema) *ToolBuilder {
	b.tool.paramSchema = schema
	return b
}

func (b *ToolBuilder) WithOutputSchema(schema *sdomain.Schema) *ToolBuilder {
	b.tool.outputSchema = schema
	return b
}

func (b *ToolBuilder) WithUsageInstructions(instructions string) *ToolBuilder {
	b.tool.usageInstructions = instructions
	return b
}

func (b *ToolBuilder) WithExamples(examples []domain.ToolExample) *ToolBuilder {
	b.tool.examples = examples
	return b
}

func (b *ToolBuilder) WithConstraints(constraints []string) *ToolBuilder {
	b.tool.constraints = constraints
	return b
}

// WithErrorGuidance maps error kinds to resolution hints.
func (b *ToolBuilder) WithErrorGuidance(guidance map[string]string) *ToolBuilder {
	b.tool.errorGuidance = guidance
	return b
}

func (b *ToolBuilder) WithCategory(category string) *ToolBuilder {
	b.tool.category = category
	return b
}

func (b *ToolBuilder) WithTags(tags []string) *ToolBuilder {
	b.tool.tags = tags
	return b
}

func (b *ToolBuilder) WithVersion(version string) *ToolBuilder {
	b.tool.version = version
	return b
}

// WithBehavior sets the behavioral hints. latency is "fast", "medium" or "slow".
func (b *ToolBuilder) WithBehavior(deterministic, destructive, requiresConfirmation bool, latency string) *ToolBuilder {
	b.tool.isDeterministic = deterministic
	b.tool.isDestructive = destructive
	b.tool.requiresConfirmation = requiresConfirmation
	b.tool.estimatedLatency = latency
	return b
}

// Build returns the configured tool. Panics if no function was set.
func (b *ToolBuilder) Build() domain.Tool {
	if b.tool.fn == nil {
		panic("tool function is required")
	}
	if b.tool.paramSchema == nil {
		b.tool.paramSchema = &sdomain.Schema{Type: "object"}
	}
	return b.tool
}

func (t *Tool) Name() string { return t.name }
func (t *Tool) Description() string { return t.description }
func (t *Tool) ParameterSchema() *sdomain.Schema { return t.paramSchema }
func (t *Tool) OutputSchema() *sdomain.Schema { return t.outputSchema }
func (t *Tool) UsageInstructions() string { return t.usageInstructions }
func (t *Tool) Examples() []domain.ToolExample { return t.examples }
func (t *Tool) Constraints() []string { return t.constraints }
func (t *Tool) ErrorGuidance() map[string]string { return t.errorGuidance }
func (t *Tool) Category() string { return t.category }
func (t *Tool) Tags() []string { return t.tags }
func (t *Tool) Version() string { return t.version }
func (t *Tool) IsDeterministic() bool { return t.isDeterministic }
func (t *Tool) IsDestructive() bool { return t.isDestructive }
func (t *Tool) RequiresConfirmation() bool { return t.requiresConfirmation }
func (t *Tool) EstimatedLatency() string { return t.estimatedLatency }

// ToMCPDefinition exports the tool in MCP format. Behavioral hints and
// guidance travel as annotations.
func (t *Tool) ToMCPDefinition() domain.MCPToolDefinition {
	annotations := map[string]interface{}{
		"deterministic":         t.isDeterministic,
		"destructive":           t.isDestructive,
		"requires_confirmation": t.requiresConfirmation,
		"estimated_latency":     t.estimatedLatency,
	}
	if t.category != "" {
		annotations["category"] = t.category
	}
	if len(t.tags) > 0 {
		annotations["tags"] = t.tags
	}
	if t.version != "" {
		annotations["version"] = t.version
	}
	if t.usageInstructions != "" {
		annotations["usage_instructions"] = t.usageInstructions
	}
	if len(t.examples) > 0 {
		annotations["examples"] = t.examples
	}
	if len(t.constraints) > 0 {
		annotations["constraints"] = t.constraints
	}
	if len(t.errorGuidance) > 0 {
		annotations["error_guidance"] = t.errorGuidance
	}

	def := domain.MCPToolDefinition{
		Name:        t.name,
		Description: t.description,
		InputSchema: t.paramSchema,
		Annotations: annotations,
	}
	if t.outputSchema != nil {
		def.OutputSchema = t.outputSchema
	}
	return def
}
