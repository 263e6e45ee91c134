package profiler

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Stats is a single profiler report covering one update interval.
type Stats struct {
	FPS         float64
	Frames      int
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to its logger at a configurable interval.
type Profiler struct {
	logger         *zap.Logger
	now            func() time.Time
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithLogger sets the logger stats are written to. A nil logger is ignored.
func WithLogger(l *zap.Logger) ProfilerOption {
	return func(p *Profiler) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithInterval sets how often stats are reported. Non-positive values keep the default.
//
// Parameters:
//   - d: the report interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// withClock replaces the time source.
func withClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
		p.lastTime = now()
	}
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second and output is discarded until a logger is set.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		logger:         zap.NewNop(),
		now:            time.Now,
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc is live heap, TotalAlloc only grows (churn), Sys is the process footprint.
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	p.last = Stats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		Frames:      p.frameCount,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     gcCount,
		LastPauseUs: lastPauseUs,
		MaxPauseUs:  maxPauseUs,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
	}

	p.logger.Info("frame stats",
		zap.Float64("fps", p.last.FPS),
		zap.Float64("heap_mb", p.last.HeapMB),
		zap.Float64("alloc_rate_mb_s", p.last.AllocRateMB),
		zap.Uint32("gc", gcCount),
		zap.Uint64("gc_last_us", lastPauseUs),
		zap.Uint64("gc_max_us", maxPauseUs),
		zap.Float64("sys_mb", p.last.SysMB),
	)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recent report, or the zero Stats before the first one.
func (p *Profiler) Last() Stats {
	return p.last
}
