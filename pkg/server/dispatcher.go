// ABOUTME: Asynchronous event dispatcher feeding server-side event handlers
// ABOUTME: Buffered in-order fan-out with filters, panic isolation and drop logging

package server

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
)

// eventDispatcher implements domain.EventDispatcher. Events are queued on a
// buffered channel and delivered by a single goroutine, so every subscriber
// sees events in dispatch order and a slow handler never blocks a tool call.
type eventDispatcher struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription
	eventChan     chan domain.Event
	closed        bool
	logger        *slog.Logger

	wg sync.WaitGroup
}

type subscription struct {
	id      string
	handler domain.EventHandler
	filters []domain.EventFilter
}

// NewEventDispatcher creates a dispatcher with the given buffer size
// (default 100). Close must be called to stop its goroutine.
func NewEventDispatcher(bufferSize int, logger *slog.Logger) domain.EventDispatcher {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}

	ed := &eventDispatcher{
		subscriptions: make(map[string]*subscription),
		eventChan:     make(chan domain.Event, bufferSize),
		logger:        logger,
	}

	ed.wg.Add(1)
	go ed.processEvents()
	return ed
}

// Subscribe returns "" for a nil handler. An event must pass every filter.
func (ed *eventDispatcher) Subscribe(handler domain.EventHandler, filters ...domain.EventFilter) string {
	if handler == nil {
		return ""
	}

	ed.mu.Lock()
	defer ed.mu.Unlock()

	sub := &subscription{
		id:      uuid.New().String(),
		handler: handler,
		filters: filters,
	}
	ed.subscriptions[sub.id] = sub
	return sub.id
}

func (ed *eventDispatcher) Unsubscribe(subscriptionID string) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	delete(ed.subscriptions, subscriptionID)
}

// Dispatch queues an event. Events sent after Close or while the buffer is
// full are dropped.
func (ed *eventDispatcher) Dispatch(event domain.Event) {
	ed.mu.RLock()
	defer ed.mu.RUnlock()

	if ed.closed {
		return
	}
	select {
	case ed.eventChan <- event:
	default:
		ed.logger.Warn("event buffer full, dropping event",
			"type", string(event.Type), "source", event.Source)
	}
}

// Close stops accepting events and waits until the queued ones are delivered.
func (ed *eventDispatcher) Close() {
	ed.mu.Lock()
	if ed.closed {
		ed.mu.Unlock()
		return
	}
	ed.closed = true
	close(ed.eventChan)
	ed.mu.Unlock()

	ed.wg.Wait()
}

func (ed *eventDispatcher) processEvents() {
	defer ed.wg.Done()
	for event := range ed.eventChan {
		ed.handleEvent(event)
	}
}

func (ed *eventDispatcher) handleEvent(event domain.Event) {
	ed.mu.RLock()
	matched := make([]*subscription, 0, len(ed.subscriptions))
	for _, sub := range ed.subscriptions {
		if matchesFilters(event, sub.filters) {
			matched = append(matched, sub)
		}
	}
	ed.mu.RUnlock()

	for _, sub := range matched {
		ed.deliver(sub, event)
	}
}

func (ed *eventDispatcher) deliver(sub *subscription, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			ed.logger.Error("event handler panicked",
				"subscription", sub.id, "type", string(event.Type), "panic", r)
		}
	}()

	if err := sub.handler.HandleEvent(event); err != nil {
		ed.logger.Warn("event handler failed",
			"subscription", sub.id, "type", string(event.Type), "error", err)
	}
}

func matchesFilters(event domain.Event, filters []domain.EventFilter) bool {
	for _, filter := range filters {
		if filter != nil && !filter(event) {
			return false
		}
	}
	return true
}
