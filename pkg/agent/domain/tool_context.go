// ABOUTME: ToolContext carries cancellation, read-only server state and event emission into tools
// ABOUTME: Also defines the StateReader and EventEmitter contracts tools depend on

package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ToolContext provides execution context for a single tool call.
type ToolContext struct {
	// Standard Go context for cancellation and deadlines
	Context context.Context

	// Read-only settings provided by the server
	State StateReader

	RunID     string
	Retry     int
	StartTime time.Time

	// Optional; nil when nobody listens
	Events EventEmitter

	Client ClientInfo
}

// StateReader provides read-only access to key/value state.
type StateReader interface {
	Get(key string) (interface{}, bool)
	Values() map[string]interface{}
	Has(key string) bool
	Keys() []string
}

// EventEmitter allows tools to emit events.
type EventEmitter interface {
	Emit(eventType EventType, data interface{})
	EmitProgress(current, total int, message string)
	EmitMessage(message string)
	EmitError(err error)
	EmitCustom(eventName string, data interface{})
}

// ClientInfo identifies the MCP client that issued the call.
type ClientInfo struct {
	Name      string
	Version   string
	SessionID string
	Transport string // "stdio", "sse" or "cli"
}

// NewToolContext creates a tool context. An empty runID is replaced by a
// fresh UUID and a nil state by an empty one.
func NewToolContext(ctx context.Context, state StateReader, client ClientInfo, runID string) *ToolContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if state == nil {
		state = NewStateReader(nil)
	}
	if runID == "" {
		runID = uuid.New().String()
	}
	return &ToolContext{
		Context:   ctx,
		State:     state,
		RunID:     runID,
		StartTime: time.Now(),
		Client:    client,
	}
}

// WithRetry returns a copy with an updated retry count.
func (tc *ToolContext) WithRetry(retry int) *ToolContext {
	newTC := *tc
	newTC.Retry = retry
	return &newTC
}

// WithEventEmitter returns a copy that emits through emitter.
func (tc *ToolContext) WithEventEmitter(emitter EventEmitter) *ToolContext {
	newTC := *tc
	newTC.Events = emitter
	return &newTC
}

// WithContext returns a copy bound to ctx.
func (tc *ToolContext) WithContext(ctx context.Context) *ToolContext {
	newTC := *tc
	newTC.Context = ctx
	return &newTC
}

// Deadline returns the context deadline
func (tc *ToolContext) Deadline() (deadline time.Time, ok bool) {
	return tc.Context.Deadline()
}

// Done returns the context's done channel
func (tc *ToolContext) Done() <-chan struct{} {
	return tc.Context.Done()
}

// Err returns the context's error
func (tc *ToolContext) Err() error {
	return tc.Context.Err()
}

// Value returns a context value
func (tc *ToolContext) Value(key interface{}) interface{} {
	return tc.Context.Value(key)
}

// ElapsedTime returns how long the tool has been executing
func (tc *ToolContext) ElapsedTime() time.Duration {
	return time.Since(tc.StartTime)
}
