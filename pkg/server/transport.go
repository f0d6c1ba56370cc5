// ABOUTME: Stdio and SSE transports for the MCP server
// ABOUTME: Emits server lifecycle events and shuts down on context cancellation

package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/domain"
	"github.com/nilay320/MCP-Session-Code/pkg/config"
)

const defaultShutdownTimeout = 5 * time.Second

// Serve runs the configured transport until ctx is cancelled or the
// client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	switch s.cfg.Server.Transport {
	case config.TransportSSE:
		return s.ServeSSE(ctx)
	case config.TransportStdio, "":
		return s.ServeStdio(ctx, os.Stdin, os.Stdout)
	}
	return fmt.Errorf("unsupported transport %q", s.cfg.Server.Transport)
}

// ServeStdio speaks JSON-RPC over in and out. End of input stops the server.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := mcpserver.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	s.lifecycle(domain.EventServerStart, config.TransportStdio)
	defer s.lifecycle(domain.EventServerStop, config.TransportStdio)

	err := stdio.Listen(ctx, in, out)
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// ServeSSE listens on the configured address and shuts down gracefully when
// ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context) error {
	var opts []mcpserver.SSEOption
	if base := s.cfg.Server.BaseURL; base != "" {
		opts = append(opts, mcpserver.WithBaseURL(base))
	}
	sse := mcpserver.NewSSEServer(s.mcp, opts...)

	s.lifecycle(domain.EventServerStart, config.TransportSSE)
	defer s.lifecycle(domain.EventServerStop, config.TransportSSE)

	errCh := make(chan error, 1)
	go func() {
		errCh <- sse.Start(s.cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := sse.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown sse server: %w", err)
	}
	return nil
}

func (s *Server) lifecycle(eventType domain.EventType, transport string) {
	data := map[string]interface{}{
		"transport": transport,
		"tools":     len(s.names),
	}
	if transport == config.TransportSSE {
		data["addr"] = s.cfg.Server.Addr
	}
	s.events.Dispatch(domain.NewEvent(eventType, s.cfg.Server.Name, data))
}
