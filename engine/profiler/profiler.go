package profiler

import (
	"log"
	"runtime"
	"sync"
	"time"
)

// Stats is one reporting window of loop rates and memory figures.
type Stats struct {
	FPS         float64
	TPS         float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
	Status      string
}

// Profiler tracks render frame rate, tick rate and memory statistics.
// Frames and ticks arrive from different goroutines; counters are guarded by mu.
type Profiler struct {
	mu             *sync.Mutex
	frameCount     int
	tickCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	status         func() string
	now            func() time.Time
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often stats are reported. Values <= 0 are ignored.
//
// Parameters:
//   - d: the reporting interval
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

// WithStatus appends a caller-provided status string (scroll offset, regime) to each report.
//
// Parameters:
//   - status: function returning the status text
//
// Returns:
//   - ProfilerOption: option function to apply
func WithStatus(status func() string) ProfilerOption {
	return func(p *Profiler) {
		p.status = status
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		mu:             &sync.Mutex{},
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// EngineTick counts one engine tick. Ticks are reported alongside frames on the next Tick.
func (p *Profiler) EngineTick() {
	p.mu.Lock()
	p.tickCount++
	p.mu.Unlock()
}

// Tick should be called once per rendered frame.
// When the update interval has elapsed it logs and returns the window's statistics.
//
// Returns:
//   - Stats: the statistics for the elapsed window
//   - bool: true if stats were produced this tick, false otherwise
func (p *Profiler) Tick() (Stats, bool) {
	p.mu.Lock()
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		p.mu.Unlock()
		return Stats{}, false
	}

	secs := elapsed.Seconds()
	s := Stats{
		FPS: float64(p.frameCount) / secs,
		TPS: float64(p.tickCount) / secs,
	}

	runtime.ReadMemStats(&p.memStats)
	s.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	s.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	// TotalAlloc only grows; the delta is the churn for this window.
	s.AllocRateMB = float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / secs

	s.GCCount = p.memStats.NumGC
	if s.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	p.frameCount = 0
	p.tickCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	status := p.status
	p.mu.Unlock()

	if status != nil {
		s.Status = status()
	}

	log.Printf("[Profiler] FPS: %.2f | TPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB | %s",
		s.FPS, s.TPS, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB, s.Status)
	return s, true
}
