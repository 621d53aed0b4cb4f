package motion

import (
	"math"
	"time"
)

// Curve maps linear progress in [0,1] to eased progress
type Curve func(t float64) float64

// Linear is the identity curve
func Linear(t float64) float64 { return t }

// EaseOutExpo starts fast and settles slowly, close to
// cubic-bezier(0.19, 1, 0.22, 1)
func EaseOutExpo(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

// EaseOut is a quadratic ease-out
func EaseOut(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// Tween animates a value of type T between two states over a duration
type Tween[T any] struct {
	from, to T
	start    time.Time
	dur      time.Duration
	curve    Curve
	lerp     func(a, b T, t float64) T
}

// NewTween creates a tween resting at value
func NewTween[T any](value T, lerp func(a, b T, t float64) T) Tween[T] {
	return Tween[T]{from: value, to: value, curve: EaseOutExpo, lerp: lerp}
}

// SetCurve changes the easing used by subsequent transitions
func (tw *Tween[T]) SetCurve(c Curve) {
	tw.curve = c
}

// Set starts a transition from the value at now towards to. A non-positive
// duration jumps straight to the target.
func (tw *Tween[T]) Set(now time.Time, to T, d time.Duration) {
	tw.from = tw.Value(now)
	tw.to = to
	tw.start = now
	tw.dur = d
}

// Jump moves to value immediately, cancelling any transition
func (tw *Tween[T]) Jump(value T) {
	tw.from = value
	tw.to = value
	tw.dur = 0
}

// Value returns the interpolated value at now
func (tw *Tween[T]) Value(now time.Time) T {
	p := tw.progress(now)
	if p >= 1 {
		return tw.to
	}
	return tw.lerp(tw.from, tw.to, tw.curve(p))
}

// Target returns the value the tween is heading to
func (tw *Tween[T]) Target() T {
	return tw.to
}

// Done reports whether the transition has finished at now
func (tw *Tween[T]) Done(now time.Time) bool {
	return tw.progress(now) >= 1
}

func (tw *Tween[T]) progress(now time.Time) float64 {
	if tw.dur <= 0 {
		return 1
	}
	p := float64(now.Sub(tw.start)) / float64(tw.dur)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Lerp interpolates between two floats
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
