package server

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
	"github.com/nilay320/MCP-Session-Code/pkg/logging"
	"github.com/nilay320/MCP-Session-Code/pkg/testutils/helpers"
)

// syncBuffer guards a bytes.Buffer written by handler goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestDispatcherFiltersAndUnsubscribe(t *testing.T) {
	d := NewEventDispatcher(10, logging.Discard())

	all := helpers.NewEventCapture()
	errs := helpers.NewEventCapture()
	allID := d.Subscribe(all)
	d.Subscribe(errs, domain.FilterErrors())
	assert.Empty(t, d.Subscribe(nil))

	d.Dispatch(domain.NewEvent(domain.EventToolCall, "roll_dice", nil))
	d.Dispatch(domain.NewEvent(domain.EventToolError, "roll_dice", "bad notation"))
	require.True(t, all.WaitForCount(2, time.Second))
	require.True(t, errs.WaitForCount(1, time.Second))

	d.Unsubscribe(allID)
	d.Dispatch(domain.NewEvent(domain.EventToolError, "roll_dice", "again"))
	d.Close()

	assert.Equal(t, 2, all.Len())
	assert.Equal(t, 2, errs.Len())
}

func TestDispatcherCloseFlushesAndDropsLateEvents(t *testing.T) {
	d := NewEventDispatcher(10, logging.Discard())
	capture := helpers.NewEventCapture()
	d.Subscribe(capture)

	for i := 0; i < 5; i++ {
		d.Dispatch(domain.NewEvent(domain.EventProgress, "web_search", domain.ProgressEventData{Current: i}))
	}
	d.Close()
	assert.Equal(t, 5, capture.Len())

	assert.NotPanics(t, func() {
		d.Dispatch(domain.NewEvent(domain.EventProgress, "web_search", nil))
		d.Close()
	})
	assert.Equal(t, 5, capture.Len())
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	d := NewEventDispatcher(500, logging.Discard())
	first := helpers.NewEventCapture()
	second := helpers.NewEventCapture()
	d.Subscribe(first)
	d.Subscribe(second)

	for i := 0; i < 100; i++ {
		d.Dispatch(domain.NewEvent(domain.EventToolCall, "scientific_calculator", i))
		d.Dispatch(domain.NewEvent(domain.EventToolResult, "scientific_calculator", i))
	}
	d.Close()

	for _, capture := range []*helpers.EventCapture{first, second} {
		events := capture.GetEvents()
		require.Len(t, events, 200)
		for i, e := range events {
			want := domain.EventToolCall
			if i%2 == 1 {
				want = domain.EventToolResult
			}
			assert.Equal(t, want, e.Type, "event %d", i)
			assert.Equal(t, i/2, e.Data)
		}
	}
}

func TestDispatcherIsolatesHandlerFailures(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewTextHandler(&out, nil))
	d := NewEventDispatcher(10, logger)

	d.Subscribe(domain.EventHandlerFunc(func(domain.Event) error { panic("handler exploded") }))
	d.Subscribe(domain.EventHandlerFunc(func(domain.Event) error { return stderrors.New("handler failed") }))
	capture := helpers.NewEventCapture()
	d.Subscribe(capture)

	d.Dispatch(domain.NewEvent(domain.EventToolCall, "generate_qr_code", nil))
	d.Close()

	assert.Equal(t, 1, capture.Len())
	assert.Contains(t, out.String(), "event handler panicked")
	assert.Contains(t, out.String(), "handler exploded")
	assert.Contains(t, out.String(), "event handler failed")
}

func TestLoggingEventHandler(t *testing.T) {
	var out syncBuffer
	h := NewLoggingEventHandler(slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})))

	result := domain.NewEvent(domain.EventToolResult, "scientific_calculator", domain.ToolResultEventData{Duration: 2 * time.Millisecond})
	result.RunID = "run-1"
	require.NoError(t, h.HandleEvent(result))
	require.NoError(t, h.HandleEvent(domain.NewEvent(domain.EventToolError, "roll_dice", "bad").WithError(stderrors.New("bad notation"))))
	require.NoError(t, h.HandleEvent(domain.NewEvent(domain.EventServerStart, "mcp-server", map[string]interface{}{"transport": "stdio"})))

	logged := out.String()
	assert.Contains(t, logged, `level=INFO msg="tool result" type=tool.result source=scientific_calculator run_id=run-1 duration=2ms`)
	assert.Contains(t, logged, `level=WARN msg="tool error"`)
	assert.Contains(t, logged, `error="bad notation"`)
	assert.Contains(t, logged, `msg="server start"`)
	assert.Contains(t, logged, "transport=stdio")
}

func TestMetricsHandler(t *testing.T) {
	h := NewMetricsHandler()
	for _, d := range []time.Duration{10 * time.Millisecond, 30 * time.Millisecond} {
		require.NoError(t, h.HandleEvent(domain.NewEvent(domain.EventToolCall, "web_search", nil)))
		require.NoError(t, h.HandleEvent(domain.NewEvent(domain.EventToolResult, "web_search", domain.ToolResultEventData{Duration: d})))
	}
	require.NoError(t, h.HandleEvent(domain.NewEvent(domain.EventToolCall, "roll_dice", nil)))
	require.NoError(t, h.HandleEvent(domain.NewEvent(domain.EventToolError, "roll_dice", "bad")))

	m := h.Snapshot()
	assert.Equal(t, 3, m.ToolCalls)
	assert.Equal(t, 1, m.ErrorCount)
	assert.Equal(t, ToolStats{Calls: 2, AverageTimeMs: 20, FastestCallMs: 10, SlowestCallMs: 30}, m.ToolStats["web_search"])
	assert.Equal(t, ToolStats{Calls: 1, Errors: 1}, m.ToolStats["roll_dice"])

	h.Reset()
	assert.Zero(t, h.Snapshot().ToolCalls)
}

func TestMetricsHandlerKeepsRunningTotals(t *testing.T) {
	h := NewMetricsHandler()
	for i := 1; i <= 10000; i++ {
		require.NoError(t, h.HandleEvent(domain.NewEvent(domain.EventToolCall, "roll_dice", nil)))
		require.NoError(t, h.HandleEvent(domain.NewEvent(domain.EventToolResult, "roll_dice",
			domain.ToolResultEventData{Duration: time.Duration(i%3+1) * time.Millisecond})))
	}

	stats := h.Snapshot().ToolStats["roll_dice"]
	assert.Equal(t, 10000, stats.Calls)
	assert.Equal(t, 1.0, stats.FastestCallMs)
	assert.Equal(t, 3.0, stats.SlowestCallMs)
	assert.InDelta(t, 2.0, stats.AverageTimeMs, 0.001)

	require.Len(t, h.timings, 1)
	assert.Equal(t, 10000, h.timings["roll_dice"].count)
}
