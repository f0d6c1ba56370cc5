package helpers

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
	"github.com/nilay320/MCP-Session-Code/pkg/testutils/mocks"
)

func TestCreateTestToolContext(t *testing.T) {
	emitter := mocks.NewMockEventEmitter("roll_dice")
	ctx := CreateTestToolContext(
		WithTestRunID("run-1"),
		WithTestEventEmitter(emitter),
		WithTestState(map[string]interface{}{"search.max_results": 3}),
	)

	assert.Equal(t, "run-1", ctx.RunID)
	assert.Equal(t, "test-client", ctx.Client.Name)
	n, ok := domain.GetInt(ctx.State, "search.max_results")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	ctx.Events.EmitMessage("hello")
	ctx.Events.EmitError(errors.New("boom"))
	assert.Equal(t, []string{"hello"}, emitter.Messages())
	assert.Error(t, emitter.AssertNoErrors())
	assert.NoError(t, emitter.AssertEventCount(2))
}

func TestCanceledAndTimeoutContexts(t *testing.T) {
	assert.Error(t, CreateCanceledToolContext().Err())

	ctx, cancel := CreateToolContextWithTimeout(time.Hour)
	defer cancel()
	_, ok := ctx.Deadline()
	assert.True(t, ok)
}

func TestEventCaptureAssertions(t *testing.T) {
	capture := NewEventCapture()
	require.NoError(t, capture.HandleEvent(domain.NewEvent(domain.EventToolCall, "calc", nil)))
	capture.Capture(domain.NewEvent(domain.EventToolResult, "calc", "4"))

	assert.True(t, capture.WaitForCount(2, time.Second))
	assert.Len(t, capture.FilterByType(domain.EventToolResult), 1)

	a := AssertEvents(capture.GetEvents()).
		HasCount(2).
		HasType(domain.EventToolCall).
		InOrder(domain.EventToolCall, domain.EventToolResult).
		NoErrors()
	assert.True(t, a.IsValid(), a.String())

	a = AssertEvents(capture.GetEvents()).InOrder(domain.EventToolResult, domain.EventToolCall).HasTypeCount(domain.EventToolError, 1)
	assert.Len(t, a.GetErrors(), 2)

	capture.Clear()
	assert.Equal(t, 0, capture.Len())
}
