// ABOUTME: Test context helpers for creating pre-configured tool contexts
// ABOUTME: Provides option-based builders for common tool test scenarios

package helpers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
	"github.com/nilay320/MCP-Session-Code/pkg/testutils/mocks"
)

// ContextOption configures a test ToolContext.
type ContextOption func(*ToolContextOptions)

// ToolContextOptions holds configuration for creating a test ToolContext.
type ToolContextOptions struct {
	State        domain.StateReader
	EventEmitter domain.EventEmitter
	Client       domain.ClientInfo
	RunID        string
	Retry        int
	Context      context.Context
}

// CreateTestToolContext creates a ToolContext for testing with sensible defaults.
func CreateTestToolContext(options ...ContextOption) *domain.ToolContext {
	opts := &ToolContextOptions{
		State:        domain.NewStateReader(nil),
		EventEmitter: mocks.NewMockEventEmitter("test-tool"),
		Client: domain.ClientInfo{
			Name:      "test-client",
			Version:   "0.0.0",
			Transport: "test",
		},
		RunID:   uuid.New().String(),
		Context: context.Background(),
	}

	for _, opt := range options {
		opt(opts)
	}

	return &domain.ToolContext{
		Context:   opts.Context,
		State:     opts.State,
		RunID:     opts.RunID,
		Retry:     opts.Retry,
		StartTime: time.Now(),
		Events:    opts.EventEmitter,
		Client:    opts.Client,
	}
}

// WithTestState sets the state values for the test context.
func WithTestState(values map[string]interface{}) ContextOption {
	return func(o *ToolContextOptions) {
		o.State = domain.NewStateReader(values)
	}
}

// WithTestEventEmitter sets the event emitter for the test context.
func WithTestEventEmitter(emitter domain.EventEmitter) ContextOption {
	return func(o *ToolContextOptions) {
		o.EventEmitter = emitter
	}
}

// WithTestRunID sets the run ID for the test context.
func WithTestRunID(runID string) ContextOption {
	return func(o *ToolContextOptions) {
		o.RunID = runID
	}
}

// WithTestRetry sets the retry count for the test context.
func WithTestRetry(retry int) ContextOption {
	return func(o *ToolContextOptions) {
		o.Retry = retry
	}
}

// WithTestContext sets the Go context for the test context.
func WithTestContext(ctx context.Context) ContextOption {
	return func(o *ToolContextOptions) {
		o.Context = ctx
	}
}

// WithTestClient sets the client info for the test context.
func WithTestClient(client domain.ClientInfo) ContextOption {
	return func(o *ToolContextOptions) {
		o.Client = client
	}
}

// CreateToolContextWithState creates a tool context with pre-populated state.
func CreateToolContextWithState(data map[string]interface{}) *domain.ToolContext {
	return CreateTestToolContext(WithTestState(data))
}

// CreateCanceledToolContext creates a tool context whose Go context is
// already canceled.
func CreateCanceledToolContext() *domain.ToolContext {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return CreateTestToolContext(WithTestContext(ctx))
}

// CreateToolContextWithTimeout creates a tool context with a deadline.
// Callers must call the returned cancel function.
func CreateToolContextWithTimeout(timeout time.Duration) (*domain.ToolContext, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	return CreateTestToolContext(WithTestContext(ctx)), cancel
}
