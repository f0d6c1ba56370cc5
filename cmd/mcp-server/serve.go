package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nilay320/MCP-Session-Code/pkg/agent/builtins/tools"
	"github.com/nilay320/MCP-Session-Code/pkg/server"
	"github.com/nilay320/MCP-Session-Code/pkg/util/profiling"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		transport  string
		addr       string
		offline    bool
		profileDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio or SSE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("transport") {
				a.cfg.Server.Transport = transport
			}
			if flags.Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if flags.Changed("offline") {
				a.cfg.Tools.Offline = offline
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			if profileDir != "" {
				profiler := profiling.New(profileDir, "serve", a.logger)
				if err := profiler.Start(); err != nil {
					return err
				}
				defer func() {
					if err := profiler.Stop(); err != nil {
						a.logger.Error("write profiles", "error", err)
					}
				}()
			}

			srv, err := server.New(a.cfg, tools.Tools, a.logger)
			if err != nil {
				return err
			}
			defer srv.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("starting mcp server",
				"name", a.cfg.Server.Name,
				"transport", a.cfg.Server.Transport,
				"tools", srv.ToolNames())
			err = srv.Serve(ctx)

			m := srv.Metrics()
			a.logger.Info("mcp server stopped", "tool_calls", m.ToolCalls, "errors", m.ErrorCount)
			return err
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "transport: stdio or sse")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address for the sse transport")
	cmd.Flags().BoolVar(&offline, "offline", false, "hide tools that need network access")
	cmd.Flags().StringVar(&profileDir, "profile-dir", "", "write CPU and heap profiles to this directory")
	return cmd
}
