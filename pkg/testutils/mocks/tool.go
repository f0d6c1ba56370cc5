// ABOUTME: Mock tool implementation with call tracking and a pluggable executor
// ABOUTME: Lets server tests drive success, error and panic paths

package mocks

import (
	"sync"
	"time"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
	sdomain "github.com/nilay320/MCP-Session-Code/pkg/schema/domain"
)

// ToolCall represents a recorded tool execution.
type ToolCall struct {
	Params    interface{}
	Result    interface{}
	Error     error
	Context   *domain.ToolContext
	Timestamp time.Time
	Duration  time.Duration
}

// MockTool is a mock implementation of domain.Tool.
type MockTool struct {
	ToolName        string
	ToolDescription string
	ToolCategory    string
	ToolTags        []string
	ToolVersion     string
	ParamSchema     *sdomain.Schema
	OutSchema       *sdomain.Schema
	DefaultOutput   interface{}

	// Executor replaces the default behavior of returning DefaultOutput
	Executor func(ctx *domain.ToolContext, params interface{}) (interface{}, error)

	UsageInstr      string
	ToolExamples    []domain.ToolExample
	ToolConstraints []string
	ErrorGuid       map[string]string

	mu          sync.RWMutex
	callHistory []ToolCall
}

// NewMockTool creates a new mock tool with default configuration.
func NewMockTool(name, description string) *MockTool {
	return &MockTool{
		ToolName:        name,
		ToolDescription: description,
		ToolCategory:    "test",
		ToolTags:        []string{"test", "mock"},
		ToolVersion:     "1.0.0",
		ParamSchema:     &sdomain.Schema{Type: "object"},
		DefaultOutput:   "mock result",
		ErrorGuid:       make(map[string]string),
	}
}

// WithExecutor sets a custom executor function.
func (t *MockTool) WithExecutor(executor func(ctx *domain.ToolContext, params interface{}) (interface{}, error)) *MockTool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Executor = executor
	return t
}

// WithParameterSchema sets the parameter schema.
func (t *MockTool) WithParameterSchema(schema *sdomain.Schema) *MockTool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ParamSchema = schema
	return t
}

// WithCategory sets the tool category.
func (t *MockTool) WithCategory(category string) *MockTool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ToolCategory = category
	return t
}

// Execute runs the executor, or returns DefaultOutput, and records the call.
func (t *MockTool) Execute(ctx *domain.ToolContext, params interface{}) (result interface{}, err error) {
	start := time.Now()
	defer func() {
		// Panics are recorded before being re-raised
		if r := recover(); r != nil {
			t.recordCall(params, nil, nil, ctx, start)
			panic(r)
		}
		t.recordCall(params, result, err, ctx, start)
	}()

	t.mu.RLock()
	executor := t.Executor
	output := t.DefaultOutput
	t.mu.RUnlock()

	if executor != nil {
		return executor(ctx, params)
	}
	return output, nil
}

func (t *MockTool) Name() string { return t.ToolName }
func (t *MockTool) Description() string { return t.ToolDescription }
func (t *MockTool) ParameterSchema() *sdomain.Schema { return t.ParamSchema }
func (t *MockTool) OutputSchema() *sdomain.Schema { return t.OutSchema }
func (t *MockTool) UsageInstructions() string { return t.UsageInstr }
func (t *MockTool) Examples() []domain.ToolExample { return t.ToolExamples }
func (t *MockTool) Constraints() []string { return t.ToolConstraints }
func (t *MockTool) ErrorGuidance() map[string]string { return t.ErrorGuid }
func (t *MockTool) Category() string { return t.ToolCategory }
func (t *MockTool) Tags() []string { return t.ToolTags }
func (t *MockTool) Version() string { return t.ToolVersion }
func (t *MockTool) IsDeterministic() bool { return true }
func (t *MockTool) IsDestructive() bool { return false }
func (t *MockTool) RequiresConfirmation() bool { return false }
func (t *MockTool) EstimatedLatency() string { return "fast" }

// ToMCPDefinition converts to an MCP tool definition.
func (t *MockTool) ToMCPDefinition() domain.MCPToolDefinition {
	return domain.MCPToolDefinition{
		Name:        t.ToolName,
		Description: t.ToolDescription,
		InputSchema: t.ParamSchema,
	}
}

// GetCallHistory returns a copy of the call history.
func (t *MockTool) GetCallHistory() []ToolCall {
	t.mu.RLock()
	defer t.mu.RUnlock()

	history := make([]ToolCall, len(t.callHistory))
	copy(history, t.callHistory)
	return history
}

// GetExecutionCount returns the total number of executions.
func (t *MockTool) GetExecutionCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.callHistory)
}

// Reset clears the call history.
func (t *MockTool) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.callHistory = nil
}

func (t *MockTool) recordCall(params, result interface{}, err error, ctx *domain.ToolContext, start time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.callHistory = append(t.callHistory, ToolCall{
		Params:    params,
		Result:    result,
		Error:     err,
		Context:   ctx,
		Timestamp: start,
		Duration:  time.Since(start),
	})
}
