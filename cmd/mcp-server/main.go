// ABOUTME: Entry point for the mcp-server command
// ABOUTME: Links in the builtin tools and runs the cobra command tree

package main

import (
	"os"

	_ "github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools/math"
	_ "github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools/qrcode"
	_ "github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools/web"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
