package profiling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilay320/MCP-Session-Code/pkg/calc"
	"github.com/nilay320/MCP-Session-Code/pkg/logging"
)

func TestProfilerWritesProfiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profiles")
	p := New(dir, "serve", logging.Discard())

	require.NoError(t, p.Stop(), "stop before start is a no-op")
	require.NoError(t, p.Start())
	assert.ErrorContains(t, p.Start(), "already running")

	for i := 0; i < 200; i++ {
		calc.Calculate("factorial(50) / 3 ** 20 + sin(pi/7)")
	}
	require.NoError(t, p.Stop())

	for _, path := range []string{p.CPUProfilePath(), p.HeapProfilePath()} {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Positive(t, info.Size(), path)
	}
	assert.Equal(t, filepath.Join(dir, "serve.cpu.pprof"), p.CPUProfilePath())
}
