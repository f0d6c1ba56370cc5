// ABOUTME: Serializable errors with codes, context and stack capture for tool and server failures.
// ABOUTME: Error lists collect independent problems such as configuration validation failures.
// Package errors provides error handling beyond standard Go errors. A
// BaseError carries a machine-readable code, a type, key/value context and
// a captured stack, and serializes to JSON for logs and MCP error payloads.
//
// Features:
//   - Serializable errors with JSON support
//   - Context enrichment for requests and operations
//   - Error lists for validation that reports every problem at once
package errors
