package profiler

import (
	"fmt"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-vertex/common"
)

// Stats is one measured span of work.
type Stats struct {
	// Requests is the number of resolution requests completed in the span.
	Requests int
	Elapsed  time.Duration
	// PerSecond is Requests divided by Elapsed, zero for an empty span.
	PerSecond float64
	// HeapMB is the live heap at the end of the span.
	HeapMB float64
	// AllocMB is the memory allocated during the span, freed or not.
	AllocMB float64
	// GCs is the number of collections that ran during the span.
	GCs uint32
}

func (s Stats) String() string {
	return fmt.Sprintf("%d requests in %s (%.1f/s) | Heap: %.2f MB | Alloc: %.2f MB | GC: %d",
		s.Requests, s.Elapsed.Round(time.Microsecond), s.PerSecond, s.HeapMB, s.AllocMB, s.GCs)
}

// Profiler measures resolution throughput and memory churn between Start and Stop.
type Profiler struct {
	start           time.Time
	memStats        runtime.MemStats
	startGCCount    uint32
	startTotalAlloc uint64
}

// NewProfiler creates a new Profiler. Start must be called before Stop.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{}
}

// Start begins a measured span, snapshotting the allocator counters.
func (p *Profiler) Start() {
	runtime.ReadMemStats(&p.memStats)
	p.startGCCount = p.memStats.NumGC
	p.startTotalAlloc = p.memStats.TotalAlloc
	p.start = time.Now()
}

// Stop ends the span started by Start and logs its statistics at Info level.
//
// Parameters:
//   - requests: the number of requests completed during the span
//
// Returns:
//   - Stats: the statistics of the span
func (p *Profiler) Stop(requests int) Stats {
	elapsed := time.Since(p.start)
	runtime.ReadMemStats(&p.memStats)

	s := Stats{
		Requests: requests,
		Elapsed:  elapsed,
		HeapMB:   float64(p.memStats.Alloc) / 1024 / 1024,
		AllocMB:  float64(p.memStats.TotalAlloc-p.startTotalAlloc) / 1024 / 1024,
		GCs:      p.memStats.NumGC - p.startGCCount,
	}
	if elapsed > 0 {
		s.PerSecond = float64(requests) / elapsed.Seconds()
	}

	common.Logger().Info("resolution profile",
		"requests", s.Requests,
		"elapsed", s.Elapsed,
		"per_second", s.PerSecond,
		"heap_mb", s.HeapMB,
		"gc", s.GCs,
	)
	return s
}
