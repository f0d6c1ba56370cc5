// ABOUTME: Markdown reference documentation for registered tools
// ABOUTME: Rendered from the registry's ToolDocumentation records

// Package docs renders tool documentation as Markdown.
//
// The output groups tools by category and, for each tool, includes a
// metadata table, the parameter schema, usage instructions, constraints,
// error guidance and worked examples. It backs `mcp-server tools --markdown`.
package docs
