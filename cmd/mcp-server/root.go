// ABOUTME: Root command with configuration and logging shared by all subcommands
// ABOUTME: Loads config once in PersistentPreRunE and stores it on the app

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nilay320/MCP-Session-Code/pkg/config"
	"github.com/nilay320/MCP-Session-Code/pkg/logging"
)

// app holds state built before any subcommand runs.
type app struct {
	configFile string
	envFile    string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "mcp-server",
		Short: "MCP tool server with a scientific calculator, dice, web search and QR codes",
		Long: `mcp-server exposes a sandboxed scientific calculator, a dice roller,
Tavily web search and a QR code generator as Model Context Protocol tools.

Configuration is read from ~/.mcp-server.yaml, ./.mcp-server.yaml or
~/.config/mcp-server/config.yaml, then .env, then MCP_SERVER_* variables.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: search standard locations)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "dotenv file to load (default .env)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newServeCmd(a),
		newCalcCmd(),
		newReplCmd(),
		newRollCmd(),
		newToolsCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: a.configFile,
		EnvFile:    a.envFile,
	})
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	if cfg.Source != "" {
		logger.Debug("loaded config", "file", cfg.Source)
	}
	return nil
}
