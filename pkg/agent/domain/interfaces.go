package domain

// ABOUTME: Core Tool interface and MCP export types
// ABOUTME: Every builtin tool implements Tool and is published through ToMCPDefinition

import (
	"github.com/nilay320/MCP-Session-Code/pkg/schema/domain"
)

// Tool represents an executable capability exposed to MCP clients.
// Tools describe their parameters with a JSON schema and carry guidance
// that is published alongside the schema.
type Tool interface {
	// Core functionality
	Name() string
	Description() string
	Execute(ctx *ToolContext, params interface{}) (interface{}, error)

	// Schema definitions
	ParameterSchema() *domain.Schema
	OutputSchema() *domain.Schema

	// Client guidance
	UsageInstructions() string
	Examples() []ToolExample
	Constraints() []string
	ErrorGuidance() map[string]string

	// Metadata
	Category() string
	Tags() []string
	Version() string

	// Behavioral hints
	IsDeterministic() bool
	IsDestructive() bool
	RequiresConfirmation() bool
	EstimatedLatency() string // "fast", "medium" or "slow"

	ToMCPDefinition() MCPToolDefinition
}

// ToolExample shows a concrete call and its result.
type ToolExample struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Scenario    string      `json:"scenario,omitempty" yaml:"scenario,omitempty"`
	Input       interface{} `json:"input" yaml:"input"`
	Output      interface{} `json:"output" yaml:"output"`
	Explanation string      `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// MCPToolDefinition represents a tool in Model Context Protocol format.
type MCPToolDefinition struct {
	Name         string                 `json:"name" yaml:"name"`
	Description  string                 `json:"description" yaml:"description"`
	InputSchema  interface{}            `json:"inputSchema,omitempty" yaml:"inputSchema,omitempty"`
	OutputSchema interface{}            `json:"outputSchema,omitempty" yaml:"outputSchema,omitempty"`
	Annotations  map[string]interface{} `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}
