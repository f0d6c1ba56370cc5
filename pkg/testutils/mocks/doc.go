// ABOUTME: Mock implementations for testing tools and the MCP server.
// ABOUTME: Configurable mocks with call tracking and event recording.
// Package mocks provides mock implementations of core interfaces for
// testing purposes.
//
// Mock types include:
//   - MockTool: Tool with a pluggable executor and tracked executions
//   - MockEventEmitter: EventEmitter that records every event
package mocks
