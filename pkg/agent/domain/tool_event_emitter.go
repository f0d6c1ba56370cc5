// ABOUTME: EventEmitter implementation bound to one tool call
// ABOUTME: Stamps every event with the tool name, run ID and client

package domain

import (
	"fmt"
)

type toolEventEmitter struct {
	dispatcher EventDispatcher
	toolName   string
	runID      string
	client     string
}

// NewToolEventEmitter creates an emitter for one call of toolName.
func NewToolEventEmitter(dispatcher EventDispatcher, toolName, runID, client string) EventEmitter {
	return &toolEventEmitter{
		dispatcher: dispatcher,
		toolName:   toolName,
		runID:      runID,
		client:     client,
	}
}

// Emit dispatches an event enriched with tool context.
func (te *toolEventEmitter) Emit(eventType EventType, data interface{}) {
	if te.dispatcher == nil {
		return
	}
	event := NewEvent(eventType, te.toolName, data)
	event.RunID = te.runID
	event.Metadata["tool_name"] = te.toolName
	if te.client != "" {
		event.Metadata["client"] = te.client
	}
	te.dispatcher.Dispatch(event)
}

func (te *toolEventEmitter) EmitProgress(current, total int, message string) {
	te.Emit(EventProgress, ProgressEventData{
		Current: current,
		Total:   total,
		Message: message,
	})
}

func (te *toolEventEmitter) EmitMessage(message string) {
	te.Emit(EventMessage, MessageEventData{
		Message: message,
		Level:   "info",
	})
}

func (te *toolEventEmitter) EmitError(err error) {
	if err == nil || te.dispatcher == nil {
		return
	}
	event := NewEvent(EventToolError, te.toolName, err.Error()).WithError(err)
	event.RunID = te.runID
	event.Metadata["tool_name"] = te.toolName
	te.dispatcher.Dispatch(event)
}

// EmitCustom emits an event of type "tool.<name>.<eventName>".
func (te *toolEventEmitter) EmitCustom(eventName string, data interface{}) {
	te.Emit(EventType(fmt.Sprintf("tool.%s.%s", te.toolName, eventName)), data)
}
