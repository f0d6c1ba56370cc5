// ABOUTME: Package testutils provides shared testing infrastructure for tools and the MCP server
// ABOUTME: Includes tool context builders, event capture and mock tools/emitters

/*
Package testutils provides the testing infrastructure shared by the tool,
server and CLI packages.

# Helpers

Context builders produce ready-to-use tool contexts:

	ctx := helpers.CreateTestToolContext()
	ctx := helpers.CreateToolContextWithState(map[string]interface{}{
		"search.api_key": "tvly-test",
	})

EventCapture subscribes to an event dispatcher and records what it sees:

	capture := helpers.NewEventCapture()
	dispatcher.Subscribe(capture)
	...
	assert.True(t, helpers.AssertEvents(capture.GetEvents()).
		HasType(domain.EventToolCall).
		InOrder(domain.EventToolCall, domain.EventToolResult).
		IsValid())

# Mocks

MockEventEmitter records everything a tool emits:

	emitter := mocks.NewMockEventEmitter("web_search")
	ctx := helpers.CreateTestToolContext(helpers.WithTestEventEmitter(emitter))
	_, _ = tool.Execute(ctx, params)
	require.NoError(t, emitter.AssertEventEmitted(domain.EventProgress))

MockTool is a domain.Tool with a pluggable executor and call history, used to
drive the MCP bridge through failure and panic paths.
*/
package testutils
