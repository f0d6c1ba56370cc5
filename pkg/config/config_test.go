package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilay320/MCP-Session-Code/pkg/errors"
	"github.com/nilay320/MCP-Session-Code/pkg/search"
)

// isolate points HOME at an empty directory and clears the variables Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{search.APIKeyEnvVar, EnvTransport, EnvAddr, EnvLogLevel, EnvLogFormat, EnvOffline} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return home
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(home, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "mcp-server", cfg.Server.Name)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "https://api.tavily.com", cfg.Search.BaseURL)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, 4000, cfg.Search.MaxTokens)
	assert.Equal(t, 30*time.Second, cfg.Search.Timeout)
	assert.Empty(t, cfg.Source)
	assert.True(t, cfg.ToolEnabled("web_search"))
}

func TestLoadLayers(t *testing.T) {
	home := isolate(t)
	file := writeFile(t, filepath.Join(home, ".config", "mcp-server", "config.yaml"), `
server:
  transport: sse
  addr: ":9000"
logging:
  level: debug
search:
  max_results: 3
  timeout: 10s
tools:
  disabled: [roll_dice]
`)
	envFile := writeFile(t, filepath.Join(home, "test.env"), "TAVILY_API_KEY=tvly-from-dotenv\nMCP_SERVER_ADDR=:7000\n")
	t.Setenv(EnvAddr, ":6000")

	cfg, err := Load(LoadOptions{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, file, cfg.Source)
	assert.Equal(t, TransportSSE, cfg.Server.Transport)
	assert.Equal(t, ":6000", cfg.Server.Addr, "existing environment wins over .env")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 3, cfg.Search.MaxResults)
	assert.Equal(t, 10*time.Second, cfg.Search.Timeout)
	assert.Equal(t, "tvly-from-dotenv", cfg.Search.APIKey)
	assert.False(t, cfg.ToolEnabled("roll_dice"))

	state := cfg.ToolState()
	assert.Equal(t, "tvly-from-dotenv", state[search.StateKeyAPIKey])
	assert.Equal(t, 3, state[search.StateKeyMaxResults])
}

func TestLoadExplicitFileErrors(t *testing.T) {
	home := isolate(t)

	_, err := Load(LoadOptions{ConfigFile: filepath.Join(home, "nope.yaml")})
	assert.ErrorContains(t, err, "read config file")

	bad := writeFile(t, filepath.Join(home, "bad.yaml"), "server: [unclosed")
	_, err = Load(LoadOptions{ConfigFile: bad})
	assert.Equal(t, ErrCodeInvalidConfig, errors.CodeOf(err))
}

func TestLoadOfflineEnv(t *testing.T) {
	home := isolate(t)
	t.Setenv(EnvOffline, "yes please")
	_, err := Load(LoadOptions{EnvFile: filepath.Join(home, "missing.env")})
	assert.ErrorContains(t, err, "MCP_SERVER_OFFLINE must be a boolean")

	t.Setenv(EnvOffline, "true")
	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(home, "missing.env")})
	require.NoError(t, err)
	assert.True(t, cfg.Tools.Offline)
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := Default()
	cfg.Server.Transport = "websocket"
	cfg.Logging.Level = "verbose"
	cfg.Search.MaxResults = 50
	cfg.Tools.Enabled = []string{"web_search"}
	cfg.Tools.Disabled = []string{"web_search"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidConfig, errors.CodeOf(err))
	for _, want := range []string{
		`server.transport must be "stdio" or "sse", got "websocket"`,
		`logging.level must be one of debug, info, warn, error, got "verbose"`,
		"search.max_results must be between 0 and 20, got 50",
		`tool "web_search" is both enabled and disabled`,
	} {
		assert.Contains(t, err.Error(), want)
	}

	cfg = Default()
	cfg.Server.Transport = TransportSSE
	cfg.Server.Addr = ""
	assert.ErrorContains(t, cfg.Validate(), "server.addr is required for the sse transport")
}

func TestToolEnabledAllowList(t *testing.T) {
	cfg := Default()
	cfg.Tools.Enabled = []string{"scientific_calculator"}
	assert.True(t, cfg.ToolEnabled("scientific_calculator"))
	assert.False(t, cfg.ToolEnabled("generate_qr_code"))
}
