// ABOUTME: No-op debug logger for builds without -tags debug
// ABOUTME: Keeps call sites free of build-tag conditionals

//go:build !debug
// +build !debug

package debug

import "log"

// EnvVar selects the enabled components in debug builds.
const EnvVar = "MCP_SERVER_DEBUG"

// Printf is a no-op.
func Printf(component, format string, args ...interface{}) {}

// Println is a no-op.
func Println(component string, args ...interface{}) {}

// Enabled always reports false.
func Enabled(component string) bool { return false }

// SetLogger is a no-op.
func SetLogger(l *log.Logger) {}
