package tui

import (
	"strings"
	"testing"
	"time"
)

func memSample(heap uint64) MemStatsMsg {
	return MemStatsMsg{
		HeapAlloc:   heap,
		HeapSys:     1024 * 1024 * 80,
		NumGC:       10,
		GCPause:     1500 * time.Microsecond,
		HeapObjects: 1234,
		Goroutines:  8,
	}
}

func TestMetricsModel_UpdateMemStats(t *testing.T) {
	m := NewMetricsModel()

	msg := memSample(1024 * 1024 * 50)
	m.UpdateMemStats(msg)

	if m.heapAlloc != msg.HeapAlloc {
		t.Errorf("expected heapAlloc %d, got %d", msg.HeapAlloc, m.heapAlloc)
	}
	if m.heapSys != msg.HeapSys {
		t.Errorf("expected heapSys %d, got %d", msg.HeapSys, m.heapSys)
	}
	if m.numGC != msg.NumGC {
		t.Errorf("expected numGC %d, got %d", msg.NumGC, m.numGC)
	}
	if m.numGoroutine != msg.Goroutines {
		t.Errorf("expected numGoroutine %d, got %d", msg.Goroutines, m.numGoroutine)
	}
	if m.heap.Len() != 1 || m.heap.Last() != float64(msg.HeapAlloc) {
		t.Errorf("expected one heap sample of %d, got len=%d last=%f", msg.HeapAlloc, m.heap.Len(), m.heap.Last())
	}
}

func TestMetricsModel_View(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(60, 6)
	m.UpdateMemStats(memSample(1024 * 1024 * 50))
	m.UpdateMemStats(memSample(1024 * 1024 * 25))

	view := m.View()
	for _, want := range []string{"Heap:", "25.0 MiB", "GC:", "10 (1.50ms)", "Goroutines", "Objects", "Heap trend", "█"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestMetricsModel_SetSizeResizesHistory(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(50, 20)

	if m.width != 50 || m.height != 20 {
		t.Errorf("expected 50x20, got %dx%d", m.width, m.height)
	}
	if m.heap.Cap() != 34 {
		t.Errorf("expected heap history capacity 34, got %d", m.heap.Cap())
	}

	m.SetSize(10, 5)
	if m.heap.Cap() != 34 {
		t.Errorf("narrow panels must keep the previous capacity, got %d", m.heap.Cap())
	}
}

func TestFormatMetricCol(t *testing.T) {
	col := formatMetricCol("Memory:", "50.0 MiB", 30)
	if !strings.Contains(col, "Memory") {
		t.Error("expected column to contain label")
	}
	if !strings.Contains(col, "50.0 MiB") {
		t.Error("expected column to contain value")
	}
}

func TestMetricsModel_UpdateSysStats(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(100, 6)
	m.UpdateSysStats(SysStatsMsg{CPUPercent: 12.5, MemPercent: 40})

	if m.cpuPercent != 12.5 || m.memPercent != 40 {
		t.Errorf("expected 12.5/40, got %f/%f", m.cpuPercent, m.memPercent)
	}
	view := m.View()
	for _, want := range []string{"CPU:", "12.5%", "Host mem:", "40.0%"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}
