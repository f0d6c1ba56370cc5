// ABOUTME: Configuration management for the MCP server and CLI
// ABOUTME: Layers defaults, a YAML file, a .env file and environment variables

// Package config loads server configuration.
//
// Sources are applied in order, later ones winning:
//
//  1. built-in defaults (Default)
//  2. a YAML file: the one passed explicitly, or the first of
//     ~/.mcp-server.yaml, ./.mcp-server.yaml, ~/.config/mcp-server/config.yaml
//  3. a .env file, which only fills variables not already set
//  4. environment variables (TAVILY_API_KEY, MCP_SERVER_*)
//
// Command-line flags are applied by the caller after Load.
package config
