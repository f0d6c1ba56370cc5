// Package profiling captures CPU and heap profiles of a running server.
//
// A Profiler writes <name>.cpu.pprof while running and <name>.heap.pprof
// when stopped, both under its directory. Inspect them with `go tool pprof`.
package profiling
