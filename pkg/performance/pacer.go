package performance

import (
	"log"
	"sync"
	"time"
)

// PaceMode is the current draw rate of the game loop
type PaceMode int

const (
	PaceNormal PaceMode = iota // Draw every frame (60fps target)
	PaceHalf                   // Draw every 2nd frame (30fps effective)
	PaceThird                  // Draw every 3rd frame (20fps effective)
)

// String returns human-readable mode name
func (m PaceMode) String() string {
	switch m {
	case PaceNormal:
		return "Normal(60fps)"
	case PaceHalf:
		return "Half(30fps)"
	case PaceThird:
		return "Third(20fps)"
	default:
		return "Unknown"
	}
}

// FramePacer skips draws when drawing is too slow for the frame budget.
// Updates keep running every frame, and animations are timed by the clock,
// so a skipped draw drops a frame without slowing any transition.
type FramePacer struct {
	mode            PaceMode
	frameCounter    uint64
	consecutiveSlow int
	consecutiveGood int

	// Average draw times above slow or below good count towards a mode change
	slowThreshold time.Duration
	goodThreshold time.Duration

	// Hysteresis counters to prevent mode thrashing
	enterHalfAfter  int
	enterThirdAfter int
	exitNormalAfter int
	exitToHalfAfter int

	mu sync.Mutex
}

// NewFramePacer creates a pacer with defaults tuned for a 60fps loop
func NewFramePacer() *FramePacer {
	return &FramePacer{
		mode:          PaceNormal,
		slowThreshold: 30 * time.Millisecond,
		goodThreshold: 20 * time.Millisecond,

		enterHalfAfter:  3,
		enterThirdAfter: 5,
		exitNormalAfter: 60,
		exitToHalfAfter: 30,
	}
}

// SetThresholds changes the slow and good average draw times
func (p *FramePacer) SetThresholds(slow, good time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.slowThreshold = slow
	p.goodThreshold = good
	log.Printf("FramePacer: Thresholds updated (slow>%v, good<%v)", slow, good)
}

// ShouldDraw reports whether the current frame should be drawn, given the
// latest frame report. Call it once per frame.
func (p *FramePacer) ShouldDraw(report FrameReport) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCounter++
	p.updateModeLocked(time.Duration(report.AvgDrawMs * float64(time.Millisecond)))

	switch p.mode {
	case PaceHalf:
		return p.frameCounter%2 == 0
	case PaceThird:
		return p.frameCounter%3 == 0
	default:
		return true
	}
}

// Must be called with p.mu held
func (p *FramePacer) updateModeLocked(avgDraw time.Duration) {
	switch {
	case avgDraw > p.slowThreshold:
		p.consecutiveSlow++
		p.consecutiveGood = 0
	case avgDraw < p.goodThreshold:
		p.consecutiveGood++
		p.consecutiveSlow = 0
	default:
		// Middle zone - reset counters to prevent premature transitions
		p.consecutiveSlow = 0
		p.consecutiveGood = 0
	}

	switch p.mode {
	case PaceNormal:
		if p.consecutiveSlow >= p.enterHalfAfter {
			p.mode = PaceHalf
			p.consecutiveSlow = 0
			log.Printf("FramePacer: Draws too slow, entering %s", p.mode)
		}
	case PaceHalf:
		if p.consecutiveSlow >= p.enterThirdAfter {
			p.mode = PaceThird
			p.consecutiveSlow = 0
			log.Printf("FramePacer: Draws still too slow, entering %s", p.mode)
		} else if p.consecutiveGood >= p.exitNormalAfter {
			p.mode = PaceNormal
			p.consecutiveGood = 0
			log.Printf("FramePacer: Performance recovered, returning to %s", p.mode)
		}
	case PaceThird:
		if p.consecutiveGood >= p.exitToHalfAfter {
			p.mode = PaceHalf
			p.consecutiveGood = 0
			log.Printf("FramePacer: Performance improving, upgrading to %s", p.mode)
		}
	}
}

// Mode returns the current pace mode
func (p *FramePacer) Mode() PaceMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// Reset returns the pacer to drawing every frame
func (p *FramePacer) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode != PaceNormal {
		log.Printf("FramePacer: Reset to %s", PaceNormal)
	}
	p.mode = PaceNormal
	p.frameCounter = 0
	p.consecutiveSlow = 0
	p.consecutiveGood = 0
}
