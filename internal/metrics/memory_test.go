package metrics

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestReadMemory(t *testing.T) {
	snap := ReadMemory()

	if snap.HeapAlloc == 0 || snap.Sys == 0 {
		t.Errorf("empty sample %+v", snap)
	}
	if snap.HeapSys < snap.HeapAlloc {
		t.Errorf("HeapSys %d should cover HeapAlloc %d", snap.HeapSys, snap.HeapAlloc)
	}
	if snap.Goroutines < 1 {
		t.Errorf("Goroutines = %d", snap.Goroutines)
	}
}

func TestGCSince(t *testing.T) {
	before := ReadMemory()
	runtime.GC()
	after := ReadMemory()

	cycles, pause := after.GCSince(before)
	if cycles < 1 {
		t.Errorf("cycles = %d after a forced collection", cycles)
	}
	if pause < 0 {
		t.Errorf("pause = %v", pause)
	}

	if c, p := before.GCSince(after); c != 0 || p != 0 {
		t.Errorf("reversed GCSince = %d, %v; want zeros", c, p)
	}

	a := MemorySnapshot{NumGC: 7, GCPause: 3 * time.Millisecond}
	b := MemorySnapshot{NumGC: 4, GCPause: time.Millisecond}
	if c, p := a.GCSince(b); c != 3 || p != 2*time.Millisecond {
		t.Errorf("GCSince = %d, %v; want 3, 2ms", c, p)
	}
}

func TestMemorySnapshot_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(MemorySnapshot{HeapAlloc: 1, NumGC: 2, GCPause: 1500})
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"heapAlloc":1`, `"numGC":2`, `"gcPauseNs":1500`, `"goroutines":0`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("expected %s in %s", key, data)
		}
	}
}
