package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mathtools "github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools/math"
	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools"
	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
	"github.com/nilay320/MCP-Session-Code/pkg/config"
	"github.com/nilay320/MCP-Session-Code/pkg/errors"
	"github.com/nilay320/MCP-Session-Code/pkg/logging"
	"github.com/nilay320/MCP-Session-Code/pkg/testutils/helpers"
	"github.com/nilay320/MCP-Session-Code/pkg/testutils/mocks"
)

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type callResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}

type listResult struct {
	Tools []struct {
		Name        string                 `json:"name"`
		InputSchema map[string]interface{} `json:"inputSchema"`
		Annotations map[string]interface{} `json:"annotations"`
	} `json:"tools"`
}

func newTestRegistry(t *testing.T) tools.ToolRegistry {
	t.Helper()
	r := tools.NewRegistry()
	require.NoError(t, r.RegisterTool(mathtools.CalculatorToolName, mathtools.ScientificCalculator(), tools.ToolMetadata{
		ResourceUsage: tools.ResourceInfo{Memory: "low"},
	}))

	failing := mocks.NewMockTool("failing_tool", "always fails").
		WithExecutor(func(*domain.ToolContext, interface{}) (interface{}, error) {
			return nil, stderrors.New("boom")
		})
	require.NoError(t, r.RegisterTool("failing_tool", failing, tools.ToolMetadata{}))

	panicking := mocks.NewMockTool("panicking_tool", "always panics").
		WithExecutor(func(*domain.ToolContext, interface{}) (interface{}, error) {
			panic("kaboom")
		})
	require.NoError(t, r.RegisterTool("panicking_tool", panicking, tools.ToolMetadata{}))

	network := mocks.NewMockTool("network_tool", "needs the network")
	require.NoError(t, r.RegisterTool("network_tool", network, tools.ToolMetadata{
		ResourceUsage: tools.ResourceInfo{Network: true},
	}))
	return r
}

func newTestServer(t *testing.T, cfg *config.Config, r tools.ToolRegistry) *Server {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	s, err := New(cfg, r, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func send(t *testing.T, s *Server, method string, params interface{}) rpcResponse {
	t.Helper()
	msg, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	require.NoError(t, err)

	reply := s.MCPServer().HandleMessage(context.Background(), msg)
	require.NotNil(t, reply)
	data, err := json.Marshal(reply)
	require.NoError(t, err)

	var resp rpcResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp
}

func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) callResult {
	t.Helper()
	resp := send(t, s, "tools/call", map[string]interface{}{"name": name, "arguments": args})
	require.Nil(t, resp.Error)

	var result callResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	require.Len(t, result.Content, 1)
	return result
}

func TestListTools(t *testing.T) {
	s := newTestServer(t, nil, newTestRegistry(t))

	resp := send(t, s, "tools/list", map[string]interface{}{})
	require.Nil(t, resp.Error)

	var list listResult
	require.NoError(t, json.Unmarshal(resp.Result, &list))

	names := make([]string, 0, len(list.Tools))
	for _, tool := range list.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"failing_tool", "network_tool", "panicking_tool", "scientific_calculator"}, names)
	assert.Equal(t, []string{"failing_tool", "network_tool", "panicking_tool", "scientific_calculator"}, s.ToolNames())

	for _, tool := range list.Tools {
		if tool.Name != mathtools.CalculatorToolName {
			continue
		}
		assert.Equal(t, "object", tool.InputSchema["type"])
		assert.Equal(t, []interface{}{"expression"}, tool.InputSchema["required"])
		assert.Equal(t, true, tool.Annotations["readOnlyHint"])
		assert.Equal(t, true, tool.Annotations["idempotentHint"])
	}
}

func TestOfflineAndDisabledTools(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.Offline = true
	cfg.Tools.Disabled = []string{"panicking_tool"}

	s := newTestServer(t, cfg, newTestRegistry(t))
	assert.Equal(t, []string{"failing_tool", "scientific_calculator"}, s.ToolNames())
}

func TestNoToolsEnabled(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.Enabled = []string{"does_not_exist"}

	_, err := New(cfg, newTestRegistry(t), logging.Discard())
	require.Error(t, err)
	assert.Equal(t, ErrCodeNoTools, errors.CodeOf(err))
}

func TestCallCalculator(t *testing.T) {
	s := newTestServer(t, nil, newTestRegistry(t))
	capture := helpers.NewEventCapture()
	s.Events().Subscribe(capture, domain.FilterByType(domain.EventToolCall, domain.EventToolResult))

	result := callTool(t, s, mathtools.CalculatorToolName, map[string]interface{}{"expression": "2 ^ 3 ^ 2"})
	assert.False(t, result.IsError)
	assert.Equal(t, "512", result.Content[0].Text)

	result = callTool(t, s, mathtools.CalculatorToolName, map[string]interface{}{"expression": "1/0"})
	assert.False(t, result.IsError, "domain failures are rendered text")
	assert.Equal(t, "Error: Division by zero", result.Content[0].Text)

	require.True(t, capture.WaitForCount(4, time.Second))
	helpers.AssertEvents(capture.GetEvents()).
		HasTypeCount(domain.EventToolCall, 2).
		HasTypeCount(domain.EventToolResult, 2)

	require.Eventually(t, func() bool {
		return s.Metrics().ToolStats[mathtools.CalculatorToolName].Calls == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, s.Metrics().ToolCalls)
}

func TestCallInvalidArguments(t *testing.T) {
	s := newTestServer(t, nil, newTestRegistry(t))

	result := callTool(t, s, mathtools.CalculatorToolName, nil)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "missing required parameter 'expression'")
	assert.True(t, len(result.Content[0].Text) > 7 && result.Content[0].Text[:7] == "Error: ")
}

func TestCallToolError(t *testing.T) {
	s := newTestServer(t, nil, newTestRegistry(t))
	capture := helpers.NewEventCapture()
	s.Events().Subscribe(capture, domain.FilterErrors())

	result := callTool(t, s, "failing_tool", map[string]interface{}{})
	assert.True(t, result.IsError)
	assert.Equal(t, "Error: boom", result.Content[0].Text)

	require.True(t, capture.WaitForCount(1, time.Second))
	event := capture.GetEvents()[0]
	assert.Equal(t, "failing_tool", event.Source)
	assert.EqualError(t, event.Error, "boom")

	require.Eventually(t, func() bool {
		return s.Metrics().ErrorCount == 1
	}, time.Second, 5*time.Millisecond)
}

func TestCallToolPanic(t *testing.T) {
	s := newTestServer(t, nil, newTestRegistry(t))

	result := callTool(t, s, "panicking_tool", map[string]interface{}{})
	assert.True(t, result.IsError)
	assert.Equal(t, "Error: tool panicking_tool panicked: kaboom", result.Content[0].Text)

	// the server keeps serving
	result = callTool(t, s, mathtools.CalculatorToolName, map[string]interface{}{"expression": "10 mod 3"})
	assert.Equal(t, "1", result.Content[0].Text)
}

func TestToolContextCarriesStateAndClient(t *testing.T) {
	var seen *domain.ToolContext
	probe := mocks.NewMockTool("probe", "records its context").
		WithExecutor(func(ctx *domain.ToolContext, _ interface{}) (interface{}, error) {
			seen = ctx
			return map[string]int{"answer": 42}, nil
		})
	r := tools.NewRegistry()
	require.NoError(t, r.RegisterTool("probe", probe, tools.ToolMetadata{}))

	cfg := config.Default()
	cfg.Search.APIKey = "tvly-test"
	s := newTestServer(t, cfg, r)

	resp := send(t, s, "initialize", map[string]interface{}{
		"protocolVersion": "2024-11-05",
		"capabilities":    map[string]interface{}{},
		"clientInfo":      map[string]interface{}{"name": "inspector", "version": "0.9.0"},
	})
	require.Nil(t, resp.Error)

	result := callTool(t, s, "probe", map[string]interface{}{})
	assert.Equal(t, `{"answer":42}`, result.Content[0].Text)

	require.NotNil(t, seen)
	key, ok := domain.GetString(seen.State, "search.api_key")
	assert.True(t, ok)
	assert.Equal(t, "tvly-test", key)
	assert.Equal(t, "inspector", seen.Client.Name)
	assert.Equal(t, "0.9.0", seen.Client.Version)
	assert.Equal(t, config.TransportStdio, seen.Client.Transport)
	assert.NotEmpty(t, seen.RunID)
	assert.NotNil(t, seen.Events)
}

type stringer struct{ n int }

func (s stringer) String() string { return fmt.Sprintf("stringer %d", s.n) }

func TestRender(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{"plain", "plain"},
		{stringer{3}, "stringer 3"},
		{[]int{1, 2}, "[1,2]"},
	}
	for _, tt := range tests {
		got, err := render(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := render(make(chan int))
	assert.ErrorContains(t, err, "encode result")
}
