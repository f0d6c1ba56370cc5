// ABOUTME: Builds the mcp-go server from the tool registry and configuration
// ABOUTME: Each tool call gets a ToolContext, events, panic recovery and text rendering

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins"
	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools"
	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
	"github.com/nilay320/MCP-Session-Code/pkg/config"
	"github.com/nilay320/MCP-Session-Code/pkg/errors"
	"github.com/nilay320/MCP-Session-Code/pkg/internal/debug"
)

// Error codes produced by the bridge.
const (
	ErrCodeToolPanic = "TOOL_PANIC"
	ErrCodeNoTools   = "SERVER_NO_TOOLS"
)

// Server wraps an mcp-go server exposing registry tools.
type Server struct {
	cfg      *config.Config
	registry tools.ToolRegistry
	logger   *slog.Logger

	mcp     *mcpserver.MCPServer
	events  domain.EventDispatcher
	metrics *MetricsHandler
	state   domain.StateReader
	names   []string

	// client info by session ID, recorded on initialize
	clients sync.Map
}

// New creates a server for every tool in registry that the configuration
// enables. A nil registry means the global tools.Tools.
func New(cfg *config.Config, registry tools.ToolRegistry, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if registry == nil {
		registry = tools.Tools
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:      cfg,
		registry: registry,
		logger:   logger,
		events:   NewEventDispatcher(cfg.Server.EventBuffer, logger),
		metrics:  NewMetricsHandler(),
		state:    domain.NewStateReader(cfg.ToolState()),
	}
	s.events.Subscribe(NewLoggingEventHandler(logger))
	s.events.Subscribe(s.metrics, domain.FilterByType(
		domain.EventToolCall, domain.EventToolResult, domain.EventToolError))

	hooks := &mcpserver.Hooks{}
	hooks.AddAfterInitialize(s.rememberClient)

	s.mcp = mcpserver.NewMCPServer(
		cfg.Server.Name,
		cfg.Server.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
		mcpserver.WithHooks(hooks),
	)

	for _, entry := range s.selectTools() {
		tool, err := toMCPTool(entry.Component)
		if err != nil {
			s.events.Close()
			return nil, err
		}
		s.mcp.AddTool(tool, s.handlerFor(entry.Component))
		s.names = append(s.names, entry.Metadata.Name)
		debug.Printf("server", "registered tool %s", entry.Metadata.Name)
	}
	if len(s.names) == 0 {
		s.events.Close()
		return nil, errors.NewErrorWithCode(ErrCodeNoTools, "no tools are enabled")
	}
	return s, nil
}

// selectTools applies the offline switch and the allow and deny lists.
func (s *Server) selectTools() []builtins.RegistryEntry[domain.Tool] {
	entries := s.registry.List()
	if s.cfg.Tools.Offline {
		network := false
		entries = s.registry.ListByResourceUsage(tools.ResourceCriteria{RequiresNetwork: &network})
	}

	selected := entries[:0:0]
	for _, entry := range entries {
		if s.cfg.ToolEnabled(entry.Metadata.Name) {
			selected = append(selected, entry)
		}
	}
	return selected
}

// toMCPTool converts a registry tool, carrying its parameter schema as the
// raw input schema and its behavioral hints as MCP annotations.
func toMCPTool(t domain.Tool) (mcp.Tool, error) {
	schema, err := json.Marshal(t.ParameterSchema())
	if err != nil {
		return mcp.Tool{}, fmt.Errorf("encode schema for %s: %w", t.Name(), err)
	}

	tool := mcp.NewToolWithRawSchema(t.Name(), t.Description(), schema)
	tool.Annotations = mcp.ToolAnnotation{
		Title:           t.Name(),
		ReadOnlyHint:    boolPtr(!t.IsDestructive()),
		DestructiveHint: boolPtr(t.IsDestructive()),
		IdempotentHint:  boolPtr(t.IsDeterministic()),
		OpenWorldHint:   boolPtr(!t.IsDeterministic()),
	}
	return tool, nil
}

func boolPtr(b bool) *bool { return &b }

func (s *Server) rememberClient(ctx context.Context, _ any, req *mcp.InitializeRequest, _ *mcp.InitializeResult) {
	info := req.Params.ClientInfo
	s.clients.Store(sessionID(ctx), info)
	s.logger.Info("client initialized", "client", info.Name, "version", info.Version)
}

func sessionID(ctx context.Context) string {
	if session := mcpserver.ClientSessionFromContext(ctx); session != nil {
		return session.SessionID()
	}
	return ""
}

func (s *Server) clientInfo(ctx context.Context) domain.ClientInfo {
	client := domain.ClientInfo{
		SessionID: sessionID(ctx),
		Transport: s.cfg.Server.Transport,
	}
	if v, ok := s.clients.Load(client.SessionID); ok {
		info := v.(mcp.Implementation)
		client.Name = info.Name
		client.Version = info.Version
	}
	return client
}

func (s *Server) handlerFor(tool domain.Tool) mcpserver.ToolHandlerFunc {
	name := tool.Name()
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		if args == nil {
			args = map[string]interface{}{}
		}

		client := s.clientInfo(ctx)
		runID := uuid.New().String()
		emitter := domain.NewToolEventEmitter(s.events, name, runID, client.Name)
		tc := domain.NewToolContext(ctx, s.state, client, runID).WithEventEmitter(emitter)

		emitter.Emit(domain.EventToolCall, domain.ToolCallEventData{
			ToolName:   name,
			Parameters: args,
			RequestID:  runID,
		})

		result, err := execute(tc, tool, args)
		if err != nil {
			emitter.EmitError(err)
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}

		text, err := render(result)
		if err != nil {
			emitter.EmitError(err)
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}

		emitter.Emit(domain.EventToolResult, domain.ToolResultEventData{
			ToolName:  name,
			Result:    text,
			RequestID: runID,
			Duration:  time.Since(tc.StartTime),
		})
		return mcp.NewToolResultText(text), nil
	}
}

// execute runs the tool, turning a panic into an error.
func execute(tc *domain.ToolContext, tool domain.Tool, args map[string]interface{}) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			debug.Printf("server", "tool %s panicked: %v", tool.Name(), r)
			err = errors.NewErrorWithCode(ErrCodeToolPanic, fmt.Sprintf("tool %s panicked: %v", tool.Name(), r)).
				WithContext("run_id", tc.RunID)
		}
	}()
	return tool.Execute(tc, args)
}

// render turns a tool result into the text content of the MCP response.
func render(result interface{}) (string, error) {
	switch v := result.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(data), nil
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *mcpserver.MCPServer { return s.mcp }

// Events returns the dispatcher receiving tool and lifecycle events.
func (s *Server) Events() domain.EventDispatcher { return s.events }

// Metrics returns a snapshot of tool activity.
func (s *Server) Metrics() Metrics { return s.metrics.Snapshot() }

// ToolNames lists the exposed tools in name order.
func (s *Server) ToolNames() []string {
	return append([]string(nil), s.names...)
}

// Close flushes pending events and stops the dispatcher.
func (s *Server) Close() {
	s.events.Close()
}
