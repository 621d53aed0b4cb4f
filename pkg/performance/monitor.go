package performance

import (
	"fmt"
	"sync"
	"time"
)

// RollingAverage maintains a rolling average of durations over a fixed window
type RollingAverage struct {
	samples []time.Duration
	sum     time.Duration
	index   int
	filled  bool
	mu      sync.RWMutex
}

// NewRollingAverage creates a rolling average over the last windowSize samples
func NewRollingAverage(windowSize int) *RollingAverage {
	if windowSize < 1 {
		windowSize = 1
	}
	return &RollingAverage{samples: make([]time.Duration, windowSize)}
}

// Add records a new sample, evicting the oldest once the window is full
func (r *RollingAverage) Add(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.filled {
		r.sum -= r.samples[r.index]
	}
	r.samples[r.index] = d
	r.sum += d

	r.index++
	if r.index == len(r.samples) {
		r.index = 0
		r.filled = true
	}
}

// Average returns the mean of the samples in the window, or zero when empty
func (r *RollingAverage) Average() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := r.count()
	if n == 0 {
		return 0
	}
	return r.sum / time.Duration(n)
}

// Count returns the number of samples currently in the window
func (r *RollingAverage) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count()
}

func (r *RollingAverage) count() int {
	if r.filled {
		return len(r.samples)
	}
	return r.index
}

// FrameMonitor tracks how long the game loop spends updating and drawing
type FrameMonitor struct {
	budget      time.Duration
	updateTimes *RollingAverage
	drawTimes   *RollingAverage
	frameTimes  *RollingAverage
	lateFrames  int
	totalFrames int
	startTime   time.Time
	mu          sync.RWMutex
}

// FrameReport contains aggregated frame timing metrics
type FrameReport struct {
	AvgUpdateMs   float64
	AvgDrawMs     float64
	AvgFrameMs    float64
	LateRate      float64 // percentage of frames over budget
	TotalFrames   int
	LateFrames    int
	IsHealthy     bool
	UptimeSeconds int64
}

// String formats the report for a single log line
func (r FrameReport) String() string {
	return fmt.Sprintf("update=%.2fms draw=%.2fms frame=%.2fms late=%d/%d (%.1f%%) healthy=%t uptime=%ds",
		r.AvgUpdateMs, r.AvgDrawMs, r.AvgFrameMs, r.LateFrames, r.TotalFrames, r.LateRate, r.IsHealthy, r.UptimeSeconds)
}

// NewFrameMonitor creates a monitor averaging over windowSize frames.
// budget is the time one frame may take (1/60s at 60fps).
func NewFrameMonitor(windowSize int, budget time.Duration) *FrameMonitor {
	return &FrameMonitor{
		budget:      budget,
		updateTimes: NewRollingAverage(windowSize),
		drawTimes:   NewRollingAverage(windowSize),
		frameTimes:  NewRollingAverage(windowSize),
		startTime:   time.Now(),
	}
}

// RecordFrame records the update and draw durations of one frame
func (m *FrameMonitor) RecordFrame(update, draw time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.updateTimes.Add(update)
	m.drawTimes.Add(draw)
	m.frameTimes.Add(update + draw)

	m.totalFrames++
	if update+draw > m.budget {
		m.lateFrames++
	}
}

// Report generates a report with the current metrics
func (m *FrameMonitor) Report() FrameReport {
	m.mu.RLock()
	defer m.mu.RUnlock()

	avgFrame := m.frameTimes.Average()

	lateRate := 0.0
	if m.totalFrames > 0 {
		lateRate = float64(m.lateFrames) / float64(m.totalFrames) * 100.0
	}

	return FrameReport{
		AvgUpdateMs:   ms(m.updateTimes.Average()),
		AvgDrawMs:     ms(m.drawTimes.Average()),
		AvgFrameMs:    ms(avgFrame),
		LateRate:      lateRate,
		TotalFrames:   m.totalFrames,
		LateFrames:    m.lateFrames,
		IsHealthy:     lateRate < 1.0 && avgFrame <= m.budget,
		UptimeSeconds: int64(time.Since(m.startTime).Seconds()),
	}
}

// Frames returns the number of frames recorded
func (m *FrameMonitor) Frames() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalFrames
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
