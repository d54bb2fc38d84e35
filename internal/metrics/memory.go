// Package metrics samples runtime memory statistics for the --details
// report, the TUI metrics panel and the /health endpoint.
package metrics

import (
	"runtime"
	"time"
)

// MemorySnapshot is one reading of the Go runtime's memory statistics.
type MemorySnapshot struct {
	HeapAlloc   uint64        `json:"heapAlloc"`
	HeapSys     uint64        `json:"heapSys"`
	HeapObjects uint64        `json:"heapObjects"`
	Sys         uint64        `json:"sys"`
	NumGC       uint32        `json:"numGC"`
	GCPause     time.Duration `json:"gcPauseNs"` // cumulative
	Goroutines  int           `json:"goroutines"`
}

// ReadMemory samples the runtime. It stops the world briefly, so callers
// sample on a timer or once per request.
func ReadMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		HeapSys:     m.HeapSys,
		HeapObjects: m.HeapObjects,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		GCPause:     time.Duration(m.PauseTotalNs),
		Goroutines:  runtime.NumGoroutine(),
	}
}

// GCSince returns the collections and pause time accumulated between prev
// and s. A prev taken after s yields zeros.
func (s MemorySnapshot) GCSince(prev MemorySnapshot) (cycles uint32, pause time.Duration) {
	if s.NumGC < prev.NumGC {
		return 0, 0
	}
	return s.NumGC - prev.NumGC, max(s.GCPause-prev.GCPause, 0)
}
