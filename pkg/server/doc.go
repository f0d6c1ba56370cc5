// ABOUTME: MCP server that publishes registry tools over mcp-go transports
// ABOUTME: Bridges tool execution, events, logging and metrics

// Package server exposes the builtin tool registry as a Model Context
// Protocol server.
//
// Every enabled tool becomes an MCP tool whose input schema is the tool's
// parameter schema. Calls run with a domain.ToolContext carrying the
// configured read-only state, a per-call run ID and an event emitter wired
// to the server's dispatcher. Subscribers on that dispatcher log each event
// through slog and aggregate per-tool metrics.
//
// Domain failures are already rendered by tools as "Error: ..." text. An
// error returned from a tool (bad arguments, panics) becomes an MCP error
// result rather than a JSON-RPC protocol error.
//
// Basic usage:
//
//	srv, err := server.New(cfg, tools.Tools, logger)
//	if err != nil {
//		return err
//	}
//	defer srv.Close()
//	return srv.Serve(ctx)
package server
