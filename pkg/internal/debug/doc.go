// ABOUTME: Component-scoped debug logging for the evaluator, tool builder and MCP bridge.
// ABOUTME: Compiled in only with -tags debug; a no-op otherwise.
// Package debug provides component-scoped debug logging that is compiled in
// only with the debug build tag. Components are selected at startup with
// MCP_SERVER_DEBUG, for example MCP_SERVER_DEBUG=calc,server or
// MCP_SERVER_DEBUG=all.
//
// Output always goes to stderr because stdout carries the MCP stdio stream.
package debug
