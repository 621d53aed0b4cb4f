package timeline

import (
	"container/heap"
	"time"
)

// Queue runs deferred callbacks from the game loop. Nothing here is safe for
// concurrent use; every method is expected to be called from the render thread.
type Queue struct {
	now    time.Time
	seq    uint64
	timers timerHeap
	frames []func()
}

type timer struct {
	due time.Time
	seq uint64
	fn  func()
}

// NewQueue creates a queue whose clock starts at now
func NewQueue(now time.Time) *Queue {
	return &Queue{now: now}
}

// Now returns the queue's current clock value
func (q *Queue) Now() time.Time {
	return q.now
}

// After schedules fn to run once the clock has advanced by d
func (q *Queue) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	q.seq++
	heap.Push(&q.timers, &timer{due: q.now.Add(d), seq: q.seq, fn: fn})
}

// NextFrame schedules fn for the start of the next Tick
func (q *Queue) NextFrame(fn func()) {
	q.frames = append(q.frames, fn)
}

// Tick advances the clock to now. Frame callbacks queued before the call run
// first, then every timer due by now in due order. Frame callbacks see the
// clock at now, or at the earliest due timer if that comes sooner. Timers
// scheduled while running see the clock at their parent's due time, so
// chains stay exact regardless of frame jitter.
func (q *Queue) Tick(now time.Time) {
	frameTime := now
	if q.timers.Len() > 0 && q.timers[0].due.Before(frameTime) {
		frameTime = q.timers[0].due
	}
	if frameTime.After(q.now) {
		q.now = frameTime
	}

	frames := q.frames
	q.frames = nil
	for _, fn := range frames {
		fn()
	}

	for q.timers.Len() > 0 && !q.timers[0].due.After(now) {
		t := heap.Pop(&q.timers).(*timer)
		q.now = t.due
		t.fn()
	}

	if now.After(q.now) {
		q.now = now
	}
}

// Advance is Tick relative to the current clock
func (q *Queue) Advance(d time.Duration) {
	q.Tick(q.now.Add(d))
}

// Pending returns the number of queued timers and frame callbacks
func (q *Queue) Pending() int {
	return q.timers.Len() + len(q.frames)
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) { *h = append(*h, x.(*timer)) }

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
