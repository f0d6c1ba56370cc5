// ABOUTME: CPU and heap profiling for long-running server sessions
// ABOUTME: Enabled from the serve command with --profile-dir

package profiling

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"
)

// Profiler records one CPU profile session and a final heap snapshot.
type Profiler struct {
	dir    string
	name   string
	logger *slog.Logger

	mu      sync.Mutex
	cpuFile *os.File
}

// New creates a profiler writing under dir. Nothing is recorded until Start.
func New(dir, name string, logger *slog.Logger) *Profiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Profiler{dir: dir, name: name, logger: logger}
}

// CPUProfilePath is where Start writes the CPU profile.
func (p *Profiler) CPUProfilePath() string {
	return filepath.Join(p.dir, p.name+".cpu.pprof")
}

// HeapProfilePath is where Stop writes the heap profile.
func (p *Profiler) HeapProfilePath() string {
	return filepath.Join(p.dir, p.name+".heap.pprof")
}

// Start begins CPU profiling. Only one CPU profile may run per process.
func (p *Profiler) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cpuFile != nil {
		return fmt.Errorf("profiler %s already running", p.name)
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}

	f, err := os.Create(p.CPUProfilePath())
	if err != nil {
		return fmt.Errorf("create cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("start cpu profile: %w", err)
	}
	p.cpuFile = f
	p.logger.Debug("cpu profiling started", "file", f.Name())
	return nil
}

// Stop ends CPU profiling and writes a heap profile. Calling Stop without
// Start is a no-op.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cpuFile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := p.cpuFile.Close()
	p.cpuFile = nil
	if err != nil {
		return fmt.Errorf("close cpu profile: %w", err)
	}

	f, err := os.Create(p.HeapProfilePath())
	if err != nil {
		return fmt.Errorf("create heap profile: %w", err)
	}
	defer f.Close()

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("write heap profile: %w", err)
	}
	p.logger.Info("profiles written", "cpu", p.CPUProfilePath(), "heap", p.HeapProfilePath())
	return nil
}
