// ABOUTME: Event model for tool execution and server lifecycle monitoring
// ABOUTME: Provides event types, handlers, filters and the dispatcher contract

package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event represents something that happened while serving tool calls.
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Source    string                 `json:"source"`
	RunID     string                 `json:"run_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Data      interface{}            `json:"data,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Error     error                  `json:"error,omitempty"`
}

// EventType represents the type of event.
type EventType string

const (
	// Server lifecycle
	EventServerStart EventType = "server.start"
	EventServerStop  EventType = "server.stop"

	// Execution events
	EventProgress EventType = "progress"
	EventMessage  EventType = "message"

	// Tool events
	EventToolCall   EventType = "tool.call"
	EventToolResult EventType = "tool.result"
	EventToolError  EventType = "tool.error"
)

// NewEvent creates an event with a fresh ID and the current time.
func NewEvent(eventType EventType, source string, data interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now(),
		Data:      data,
		Metadata:  make(map[string]interface{}),
	}
}

// WithError returns a copy of the event with err attached.
func (e Event) WithError(err error) Event {
	e.Error = err
	return e
}

// WithMetadata returns a copy of the event with an extra metadata entry.
func (e Event) WithMetadata(key string, value interface{}) Event {
	metadata := make(map[string]interface{}, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		metadata[k] = v
	}
	metadata[key] = value
	e.Metadata = metadata
	return e
}

// IsError reports whether the event represents a failure.
func (e Event) IsError() bool {
	return e.Error != nil || e.Type == EventToolError
}

// ProgressEventData represents progress of a long-running tool.
type ProgressEventData struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

// ToolCallEventData records a tool invocation.
type ToolCallEventData struct {
	ToolName   string      `json:"tool_name"`
	Parameters interface{} `json:"parameters"`
	RequestID  string      `json:"request_id"`
}

// ToolResultEventData records the outcome of a tool invocation.
type ToolResultEventData struct {
	ToolName  string        `json:"tool_name"`
	Result    interface{}   `json:"result"`
	RequestID string        `json:"request_id"`
	Duration  time.Duration `json:"duration"`
}

// MessageEventData holds a free-form message.
type MessageEventData struct {
	Message string `json:"message"`
	Level   string `json:"level"` // info, warning, error
}

// EventHandler processes events.
type EventHandler interface {
	HandleEvent(event Event) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(event Event) error

// HandleEvent calls f(event).
func (f EventHandlerFunc) HandleEvent(event Event) error {
	return f(event)
}

// EventFilter reports whether an event should be delivered.
type EventFilter func(event Event) bool

// FilterByType matches any of the given types.
func FilterByType(eventTypes ...EventType) EventFilter {
	typeMap := make(map[EventType]bool)
	for _, t := range eventTypes {
		typeMap[t] = true
	}
	return func(event Event) bool {
		return typeMap[event.Type]
	}
}

// FilterBySource matches events emitted by source.
func FilterBySource(source string) EventFilter {
	return func(event Event) bool {
		return event.Source == source
	}
}

// FilterErrors matches only error events.
func FilterErrors() EventFilter {
	return func(event Event) bool {
		return event.IsError()
	}
}

// CombineFilters combines filters with AND logic.
func CombineFilters(filters ...EventFilter) EventFilter {
	return func(event Event) bool {
		for _, filter := range filters {
			if filter != nil && !filter(event) {
				return false
			}
		}
		return true
	}
}

// EventDispatcher distributes events to subscribers.
type EventDispatcher interface {
	// Subscribe adds a handler with optional filters and returns its ID
	Subscribe(handler EventHandler, filters ...EventFilter) string

	Unsubscribe(subscriptionID string)

	// Dispatch sends an event to all matching subscribers
	Dispatch(event Event)

	Close()
}

// MarshalJSON renders Error as a string.
func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	var errStr string
	if e.Error != nil {
		errStr = e.Error.Error()
	}
	return json.Marshal(&struct {
		*Alias
		Error string `json:"error,omitempty"`
	}{
		Alias: (*Alias)(&e),
		Error: errStr,
	})
}
