// ABOUTME: Mock event emitter with event recording, filtering, and verification
// ABOUTME: Produces the same event payloads as the server's tool emitter

package mocks

import (
	"fmt"
	"sync"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
)

// EventListener represents a callback for event notifications.
type EventListener func(event domain.Event)

// EventFilter represents a filter function for events.
type EventFilter func(event domain.Event) bool

// MockEventEmitter implements domain.EventEmitter for testing.
type MockEventEmitter struct {
	events    []domain.Event
	listeners []EventListener

	// Behavior hooks
	OnEmit         func(eventType domain.EventType, data interface{})
	OnEmitProgress func(current, total int, message string)
	OnEmitMessage  func(message string)
	OnEmitError    func(err error)
	OnEmitCustom   func(eventName string, data interface{})

	blockEvents bool
	source      string

	mu sync.RWMutex
}

// NewMockEventEmitter creates a new mock event emitter whose events carry
// source as their Source.
func NewMockEventEmitter(source string) *MockEventEmitter {
	return &MockEventEmitter{
		events:    make([]domain.Event, 0),
		listeners: make([]EventListener, 0),
		source:    source,
	}
}

// Emit records an event.
func (m *MockEventEmitter) Emit(eventType domain.EventType, data interface{}) {
	if m.OnEmit != nil {
		m.OnEmit(eventType, data)
	}
	m.record(domain.NewEvent(eventType, m.source, data))
}

// EmitProgress records a progress event.
func (m *MockEventEmitter) EmitProgress(current, total int, message string) {
	if m.OnEmitProgress != nil {
		m.OnEmitProgress(current, total, message)
	}
	m.Emit(domain.EventProgress, domain.ProgressEventData{
		Current: current,
		Total:   total,
		Message: message,
	})
}

// EmitMessage records a message event.
func (m *MockEventEmitter) EmitMessage(message string) {
	if m.OnEmitMessage != nil {
		m.OnEmitMessage(message)
	}
	m.Emit(domain.EventMessage, domain.MessageEventData{
		Message: message,
		Level:   "info",
	})
}

// EmitError records a tool error event.
func (m *MockEventEmitter) EmitError(err error) {
	if m.OnEmitError != nil {
		m.OnEmitError(err)
	}
	if err == nil {
		return
	}
	m.record(domain.NewEvent(domain.EventToolError, m.source, err.Error()).WithError(err))
}

// EmitCustom records an event of type "tool.<source>.<eventName>".
func (m *MockEventEmitter) EmitCustom(eventName string, data interface{}) {
	if m.OnEmitCustom != nil {
		m.OnEmitCustom(eventName, data)
	}
	m.Emit(domain.EventType(fmt.Sprintf("tool.%s.%s", m.source, eventName)), data)
}

// GetEvents returns all recorded events.
func (m *MockEventEmitter) GetEvents() []domain.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]domain.Event, len(m.events))
	copy(events, m.events)
	return events
}

// GetEventsByType returns events of a specific type.
func (m *MockEventEmitter) GetEventsByType(eventType domain.EventType) []domain.Event {
	return m.GetEventsByFilter(func(e domain.Event) bool { return e.Type == eventType })
}

// GetEventsByFilter returns events matching a filter.
func (m *MockEventEmitter) GetEventsByFilter(filter EventFilter) []domain.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var filtered []domain.Event
	for _, event := range m.events {
		if filter(event) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// Messages returns the text of every message and progress event, in order.
func (m *MockEventEmitter) Messages() []string {
	var out []string
	for _, event := range m.GetEvents() {
		switch d := event.Data.(type) {
		case domain.MessageEventData:
			out = append(out, d.Message)
		case domain.ProgressEventData:
			out = append(out, d.Message)
		}
	}
	return out
}

// AddListener adds an event listener.
func (m *MockEventEmitter) AddListener(listener EventListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, listener)
}

// SetBlockEvents blocks or unblocks event recording. Hooks still run.
func (m *MockEventEmitter) SetBlockEvents(block bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blockEvents = block
}

// Reset clears all events and listeners.
func (m *MockEventEmitter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = make([]domain.Event, 0)
	m.listeners = make([]EventListener, 0)
	m.blockEvents = false
}

// AssertEventEmitted checks if an event type was emitted.
func (m *MockEventEmitter) AssertEventEmitted(eventType domain.EventType) error {
	if len(m.GetEventsByType(eventType)) == 0 {
		return fmt.Errorf("expected event type %s to be emitted, but it wasn't", eventType)
	}
	return nil
}

// AssertEventCount checks the total number of events.
func (m *MockEventEmitter) AssertEventCount(expected int) error {
	m.mu.RLock()
	actual := len(m.events)
	m.mu.RUnlock()

	if actual != expected {
		return fmt.Errorf("expected %d events, got %d", expected, actual)
	}
	return nil
}

// AssertNoErrors checks that no error events were emitted.
func (m *MockEventEmitter) AssertNoErrors() error {
	errs := m.GetEventsByFilter(func(e domain.Event) bool { return e.IsError() })
	if len(errs) > 0 {
		return fmt.Errorf("expected no error events, but found %d", len(errs))
	}
	return nil
}

func (m *MockEventEmitter) record(event domain.Event) {
	m.mu.Lock()
	if m.blockEvents {
		m.mu.Unlock()
		return
	}
	m.events = append(m.events, event)
	listeners := make([]EventListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	// Notify listeners outside the lock
	for _, listener := range listeners {
		listener(event)
	}
}
