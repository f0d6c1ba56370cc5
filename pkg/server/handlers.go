// ABOUTME: Event handlers subscribed by the server: slog logging and tool metrics
// ABOUTME: Metrics aggregate call counts, errors and latency per tool

package server

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
)

// LoggingEventHandler writes every event to a slog logger. Errors log at
// warn, results at info and everything else at debug.
type LoggingEventHandler struct {
	logger *slog.Logger
}

// NewLoggingEventHandler creates a handler logging through logger.
func NewLoggingEventHandler(logger *slog.Logger) *LoggingEventHandler {
	return &LoggingEventHandler{logger: logger}
}

// HandleEvent implements domain.EventHandler.
func (h *LoggingEventHandler) HandleEvent(event domain.Event) error {
	attrs := []slog.Attr{
		slog.String("type", string(event.Type)),
		slog.String("source", event.Source),
	}
	if event.RunID != "" {
		attrs = append(attrs, slog.String("run_id", event.RunID))
	}
	if client, ok := event.Metadata["client"].(string); ok {
		attrs = append(attrs, slog.String("client", client))
	}

	level := slog.LevelDebug
	msg := "event"
	switch data := event.Data.(type) {
	case domain.ToolCallEventData:
		msg = "tool call"
	case domain.ToolResultEventData:
		level = slog.LevelInfo
		msg = "tool result"
		attrs = append(attrs, slog.Duration("duration", data.Duration))
	case domain.ProgressEventData:
		msg = data.Message
		attrs = append(attrs, slog.Int("current", data.Current), slog.Int("total", data.Total))
	case domain.MessageEventData:
		msg = data.Message
	}
	if event.Type == domain.EventServerStart || event.Type == domain.EventServerStop {
		level = slog.LevelInfo
		msg = strings.ReplaceAll(string(event.Type), ".", " ")
		if m, ok := event.Data.(map[string]interface{}); ok {
			for k, v := range m {
				attrs = append(attrs, slog.Any(k, v))
			}
		}
	}
	if event.IsError() {
		level = slog.LevelWarn
		msg = "tool error"
		if event.Error != nil {
			attrs = append(attrs, slog.String("error", event.Error.Error()))
		}
	}

	h.logger.LogAttrs(context.Background(), level, msg, attrs...)
	return nil
}

// Metrics is a snapshot of tool activity.
type Metrics struct {
	ToolCalls  int                  `json:"tool_calls"`
	ErrorCount int                  `json:"error_count"`
	ToolStats  map[string]ToolStats `json:"tool_stats"`
}

// ToolStats summarizes one tool. Timings cover calls that returned a result.
type ToolStats struct {
	Calls         int     `json:"calls"`
	Errors        int     `json:"errors"`
	AverageTimeMs float64 `json:"average_time_ms"`
	FastestCallMs float64 `json:"fastest_call_ms"`
	SlowestCallMs float64 `json:"slowest_call_ms"`
}

// MetricsHandler aggregates tool.call, tool.result and tool.error events.
type MetricsHandler struct {
	mu         sync.RWMutex
	toolCalls  int
	errorCount int
	calls      map[string]int
	errors     map[string]int
	timings    map[string]*timing
}

// timing keeps running latency totals for one tool.
type timing struct {
	count            int
	total            time.Duration
	fastest, slowest time.Duration
}

func (t *timing) add(d time.Duration) {
	if t.count == 0 || d < t.fastest {
		t.fastest = d
	}
	if d > t.slowest {
		t.slowest = d
	}
	t.count++
	t.total += d
}

// NewMetricsHandler creates an empty metrics collector.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{
		calls:   make(map[string]int),
		errors:  make(map[string]int),
		timings: make(map[string]*timing),
	}
}

// HandleEvent implements domain.EventHandler.
func (h *MetricsHandler) HandleEvent(event domain.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch event.Type {
	case domain.EventToolCall:
		h.toolCalls++
		h.calls[event.Source]++
	case domain.EventToolError:
		h.errorCount++
		h.errors[event.Source]++
	case domain.EventToolResult:
		if data, ok := event.Data.(domain.ToolResultEventData); ok {
			t, ok := h.timings[event.Source]
			if !ok {
				t = &timing{}
				h.timings[event.Source] = t
			}
			t.add(data.Duration)
		}
	}
	return nil
}

// Snapshot returns the current metrics.
func (h *MetricsHandler) Snapshot() Metrics {
	h.mu.RLock()
	defer h.mu.RUnlock()

	metrics := Metrics{
		ToolCalls:  h.toolCalls,
		ErrorCount: h.errorCount,
		ToolStats:  make(map[string]ToolStats),
	}

	for tool, calls := range h.calls {
		stats := ToolStats{Calls: calls, Errors: h.errors[tool]}

		if t, ok := h.timings[tool]; ok && t.count > 0 {
			stats.AverageTimeMs = milliseconds(t.total) / float64(t.count)
			stats.FastestCallMs = milliseconds(t.fastest)
			stats.SlowestCallMs = milliseconds(t.slowest)
		}
		metrics.ToolStats[tool] = stats
	}
	return metrics
}

// Reset clears all collected metrics.
func (h *MetricsHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.toolCalls = 0
	h.errorCount = 0
	h.calls = make(map[string]int)
	h.errors = make(map[string]int)
	h.timings = make(map[string]*timing)
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
