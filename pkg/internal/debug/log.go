// ABOUTME: Debug logger compiled with -tags debug, filtered by MCP_SERVER_DEBUG
// ABOUTME: Writes to stderr so the stdio transport is never corrupted
//go:build debug
// +build debug

package debug

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// EnvVar selects the enabled components.
const EnvVar = "MCP_SERVER_DEBUG"

var (
	mu     sync.RWMutex
	logger = log.New(os.Stderr, "[DEBUG] ", log.Ltime|log.Lmicroseconds|log.Lshortfile)

	// EnabledComponents holds the components parsed from MCP_SERVER_DEBUG.
	// "*" enables everything.
	EnabledComponents = parseComponents(os.Getenv(EnvVar))
)

func parseComponents(env string) map[string]bool {
	enabled := make(map[string]bool)
	env = strings.TrimSpace(env)
	if env == "" {
		return enabled
	}
	if env == "all" || env == "*" {
		enabled["*"] = true
		return enabled
	}
	for _, comp := range strings.Split(env, ",") {
		if comp = strings.TrimSpace(comp); comp != "" {
			enabled[comp] = true
		}
	}
	return enabled
}

// Printf logs a formatted message for component.
func Printf(component, format string, args ...interface{}) {
	if !Enabled(component) {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	_ = logger.Output(2, fmt.Sprintf("[%s] "+format, append([]interface{}{component}, args...)...))
}

// Println logs its arguments for component.
func Println(component string, args ...interface{}) {
	if !Enabled(component) {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	_ = logger.Output(2, fmt.Sprintln(append([]interface{}{"[" + component + "]"}, args...)...))
}

// Enabled reports whether component is being logged.
func Enabled(component string) bool {
	return EnabledComponents["*"] || EnabledComponents[component]
}

// SetLogger replaces the destination logger.
func SetLogger(l *log.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}
