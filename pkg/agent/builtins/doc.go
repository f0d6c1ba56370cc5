// ABOUTME: Generic component registry and the builtin tools that self-register into it.
// ABOUTME: Importing a tools subpackage for side effects makes its tools available.
// Package builtins provides a generic, thread-safe registry for named
// components with category, tag and free-text discovery. The tool registry
// in builtins/tools builds on it; the math, web and qrcode subpackages
// register their tools from init functions, so a blank import is enough to
// publish them:
//
//	import (
//	    _ "github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools/math"
//	    _ "github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools/qrcode"
//	    _ "github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools/web"
//	)
package builtins
