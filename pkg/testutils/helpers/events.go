// ABOUTME: Event testing utilities for capturing, filtering, and asserting events
// ABOUTME: EventCapture doubles as a dispatcher subscriber

package helpers

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
)

// EventCapture captures events for testing purposes.
type EventCapture struct {
	events []domain.Event
	mu     sync.RWMutex
}

// NewEventCapture creates a new event capture.
func NewEventCapture() *EventCapture {
	return &EventCapture{
		events: make([]domain.Event, 0),
	}
}

// Capture records an event.
func (ec *EventCapture) Capture(event domain.Event) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.events = append(ec.events, event)
}

// HandleEvent implements domain.EventHandler.
func (ec *EventCapture) HandleEvent(event domain.Event) error {
	ec.Capture(event)
	return nil
}

// GetEvents returns all captured events.
func (ec *EventCapture) GetEvents() []domain.Event {
	ec.mu.RLock()
	defer ec.mu.RUnlock()

	events := make([]domain.Event, len(ec.events))
	copy(events, ec.events)
	return events
}

// Len returns the number of captured events.
func (ec *EventCapture) Len() int {
	ec.mu.RLock()
	defer ec.mu.RUnlock()
	return len(ec.events)
}

// FilterByType filters events by type.
func (ec *EventCapture) FilterByType(eventType domain.EventType) []domain.Event {
	ec.mu.RLock()
	defer ec.mu.RUnlock()

	var filtered []domain.Event
	for _, event := range ec.events {
		if event.Type == eventType {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// WaitForCount polls until at least n events were captured or the timeout
// expires. It reports whether the count was reached.
func (ec *EventCapture) WaitForCount(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if ec.Len() >= n {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Clear clears all captured events.
func (ec *EventCapture) Clear() {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.events = make([]domain.Event, 0)
}

// EventAssertion provides fluent event assertions.
type EventAssertion struct {
	events []domain.Event
	errors []string
}

// AssertEvents creates a new event assertion.
func AssertEvents(events []domain.Event) *EventAssertion {
	return &EventAssertion{
		events: events,
		errors: make([]string, 0),
	}
}

// HasCount asserts the event count.
func (ea *EventAssertion) HasCount(expected int) *EventAssertion {
	if len(ea.events) != expected {
		ea.errors = append(ea.errors, fmt.Sprintf("expected %d events, got %d", expected, len(ea.events)))
	}
	return ea
}

// HasType asserts at least one event of the given type exists.
func (ea *EventAssertion) HasType(eventType domain.EventType) *EventAssertion {
	for _, event := range ea.events {
		if event.Type == eventType {
			return ea
		}
	}
	ea.errors = append(ea.errors, fmt.Sprintf("no event of type %s found", eventType))
	return ea
}

// HasTypeCount asserts the count of events of a specific type.
func (ea *EventAssertion) HasTypeCount(eventType domain.EventType, expected int) *EventAssertion {
	count := 0
	for _, event := range ea.events {
		if event.Type == eventType {
			count++
		}
	}
	if count != expected {
		ea.errors = append(ea.errors, fmt.Sprintf("expected %d events of type %s, got %d", expected, eventType, count))
	}
	return ea
}

// InOrder asserts the given types occur in order, not necessarily adjacent.
func (ea *EventAssertion) InOrder(types ...domain.EventType) *EventAssertion {
	typeIndex := 0
	for _, event := range ea.events {
		if typeIndex < len(types) && event.Type == types[typeIndex] {
			typeIndex++
		}
	}
	if typeIndex != len(types) {
		ea.errors = append(ea.errors, fmt.Sprintf("events not in expected order: %v", types))
	}
	return ea
}

// NoErrors asserts no error events occurred.
func (ea *EventAssertion) NoErrors() *EventAssertion {
	for _, event := range ea.events {
		if event.IsError() {
			ea.errors = append(ea.errors, fmt.Sprintf("found error event: %s", event.Type))
		}
	}
	return ea
}

// GetErrors returns all assertion errors.
func (ea *EventAssertion) GetErrors() []string {
	return ea.errors
}

// IsValid returns true if no assertion errors occurred.
func (ea *EventAssertion) IsValid() bool {
	return len(ea.errors) == 0
}

// String returns a string representation of all errors.
func (ea *EventAssertion) String() string {
	if ea.IsValid() {
		return "All event assertions passed"
	}
	return "Event assertion failures:\n" + strings.Join(ea.errors, "\n")
}
