package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nilay320/MCP-Session-Code/pkg/errors"
	"github.com/nilay320/MCP-Session-Code/pkg/search"
)

// Environment variables read by Load.
const (
	EnvTransport = "MCP_SERVER_TRANSPORT"
	EnvAddr      = "MCP_SERVER_ADDR"
	EnvLogLevel  = "MCP_SERVER_LOG_LEVEL"
	EnvLogFormat = "MCP_SERVER_LOG_FORMAT"
	EnvOffline   = "MCP_SERVER_OFFLINE"
)

// Transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// ErrCodeInvalidConfig marks configuration that failed validation.
const ErrCodeInvalidConfig = "CONFIG_INVALID"

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Search  search.Config `yaml:"search"`
	Tools   ToolsConfig   `yaml:"tools"`

	// Source is the YAML file that was loaded, if any
	Source string `yaml:"-"`
}

// ServerConfig controls the MCP transport.
type ServerConfig struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	Transport string `yaml:"transport"`
	Addr      string `yaml:"addr"`
	// BaseURL is the externally visible URL of the SSE endpoint
	BaseURL         string        `yaml:"base_url"`
	EventBuffer     int           `yaml:"event_buffer"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ToolsConfig selects which registered tools are exposed.
type ToolsConfig struct {
	// Enabled, when non-empty, is an allow list
	Enabled  []string `yaml:"enabled"`
	Disabled []string `yaml:"disabled"`
	// Offline hides every tool that needs network access
	Offline bool `yaml:"offline"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:            "mcp-server",
			Version:         "1.0.0",
			Transport:       TransportStdio,
			Addr:            ":8080",
			EventBuffer:     100,
			ShutdownTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Search: search.Config{
			BaseURL:     search.DefaultBaseURL,
			MaxResults:  search.DefaultMaxResults,
			MaxTokens:   search.DefaultMaxTokens,
			SearchDepth: search.DefaultSearchDepth,
			Timeout:     search.DefaultTimeout,
		},
	}
}

// LoadOptions point Load at explicit files.
type LoadOptions struct {
	// ConfigFile must exist when set; otherwise standard locations are tried
	ConfigFile string
	// EnvFile defaults to ".env"; a missing file is not an error
	EnvFile string
}

// Load builds the configuration from all sources and validates it.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	if opts.ConfigFile != "" {
		if err := cfg.loadYAMLFile(opts.ConfigFile); err != nil {
			return nil, err
		}
	} else {
		for _, path := range standardPaths() {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := cfg.loadYAMLFile(path); err != nil {
				return nil, err
			}
			break
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func standardPaths() []string {
	paths := []string{".mcp-server.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = []string{
			filepath.Join(home, ".mcp-server.yaml"),
			".mcp-server.yaml",
			filepath.Join(home, ".config", "mcp-server", "config.yaml"),
		}
	}
	return paths
}

// loadYAMLFile merges a YAML file over the current values.
func (c *Config) loadYAMLFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrap(err, "parse config file "+path).WithCode(ErrCodeInvalidConfig)
	}
	c.Source = path
	return nil
}

// applyEnv overrides values from environment variables.
func (c *Config) applyEnv() error {
	if val := os.Getenv(search.APIKeyEnvVar); val != "" {
		c.Search.APIKey = val
	}
	if val := os.Getenv(EnvTransport); val != "" {
		c.Server.Transport = val
	}
	if val := os.Getenv(EnvAddr); val != "" {
		c.Server.Addr = val
	}
	if val := os.Getenv(EnvLogLevel); val != "" {
		c.Logging.Level = val
	}
	if val := os.Getenv(EnvLogFormat); val != "" {
		c.Logging.Format = val
	}
	if val := os.Getenv(EnvOffline); val != "" {
		offline, err := strconv.ParseBool(val)
		if err != nil {
			return errors.NewErrorWithCode(ErrCodeInvalidConfig,
				fmt.Sprintf("%s must be a boolean, got %q", EnvOffline, val))
		}
		c.Tools.Offline = offline
	}
	return nil
}

// Validate reports every problem found, not just the first.
func (c *Config) Validate() error {
	problems := errors.NewErrorList()

	switch c.Server.Transport {
	case TransportStdio:
	case TransportSSE:
		if c.Server.Addr == "" {
			problems.Addf("server.addr is required for the sse transport")
		}
	default:
		problems.Addf("server.transport must be %q or %q, got %q", TransportStdio, TransportSSE, c.Server.Transport)
	}
	if c.Server.Name == "" {
		problems.Addf("server.name must not be empty")
	}
	if c.Server.EventBuffer < 0 {
		problems.Addf("server.event_buffer must not be negative")
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Logging.Level) {
		problems.Addf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	if !slices.Contains([]string{"text", "json"}, c.Logging.Format) {
		problems.Addf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	if c.Search.MaxResults < 0 || c.Search.MaxResults > 20 {
		problems.Addf("search.max_results must be between 0 and 20, got %d", c.Search.MaxResults)
	}
	if c.Search.MaxTokens < 0 {
		problems.Addf("search.max_tokens must not be negative")
	}
	if d := c.Search.SearchDepth; d != "" && d != "basic" && d != "advanced" {
		problems.Addf("search.search_depth must be basic or advanced, got %q", d)
	}

	for _, name := range c.Tools.Enabled {
		if slices.Contains(c.Tools.Disabled, name) {
			problems.Addf("tool %q is both enabled and disabled", name)
		}
	}

	if problems.IsEmpty() {
		return nil
	}
	return errors.Wrap(problems, "invalid configuration").WithCode(ErrCodeInvalidConfig)
}

// ToolEnabled applies the allow and deny lists. Network filtering is left
// to the caller, which knows each tool's resource usage.
func (c *Config) ToolEnabled(name string) bool {
	if len(c.Tools.Enabled) > 0 && !slices.Contains(c.Tools.Enabled, name) {
		return false
	}
	return !slices.Contains(c.Tools.Disabled, name)
}

// ToolState is the read-only state handed to every tool call.
func (c *Config) ToolState() map[string]interface{} {
	state := map[string]interface{}{
		search.StateKeyMaxResults: c.Search.MaxResults,
		search.StateKeyMaxTokens:  c.Search.MaxTokens,
	}
	if c.Search.APIKey != "" {
		state[search.StateKeyAPIKey] = c.Search.APIKey
	}
	if c.Search.BaseURL != "" {
		state[search.StateKeyBaseURL] = c.Search.BaseURL
	}
	if c.Search.SearchDepth != "" {
		state[search.StateKeySearchDepth] = c.Search.SearchDepth
	}
	return state
}
