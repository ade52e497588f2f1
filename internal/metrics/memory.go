package metrics

import "runtime"

// MemorySnapshot holds a point-in-time runtime memory reading, taken around a
// snippet run when --verbose is set.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by the program
	Sys          uint64 // total bytes obtained from the OS
	Mallocs      uint64 // cumulative heap allocations
	NumGC        uint32 // completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryDelta is the difference between two snapshots.
type MemoryDelta struct {
	Mallocs      uint64
	NumGC        uint32
	PauseTotalNs uint64
	// HeapAllocAfter is the live heap at the end of the window.
	HeapAllocAfter uint64
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct {
	read func(*runtime.MemStats)
}

// NewMemoryCollector creates a collector backed by runtime.ReadMemStats.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{read: runtime.ReadMemStats}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	mc.read(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		Sys:          m.Sys,
		Mallocs:      m.Mallocs,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Delta returns what changed between before and after. Counters that went
// backwards (which the runtime never does) are reported as zero.
func Delta(before, after MemorySnapshot) MemoryDelta {
	d := MemoryDelta{HeapAllocAfter: after.HeapAlloc}
	if after.Mallocs > before.Mallocs {
		d.Mallocs = after.Mallocs - before.Mallocs
	}
	if after.NumGC > before.NumGC {
		d.NumGC = after.NumGC - before.NumGC
	}
	if after.PauseTotalNs > before.PauseTotalNs {
		d.PauseTotalNs = after.PauseTotalNs - before.PauseTotalNs
	}
	return d
}
