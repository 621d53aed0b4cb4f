package carousel

import (
	"fmt"
	"strings"

	"carousel-frame/pkg/gesture"
)

// Policy decides what happens to a navigation request that arrives while
// another navigation is still running its timers
type Policy int

const (
	// PolicyQueue remembers the latest request and starts it once the
	// in-flight navigation settles
	PolicyQueue Policy = iota
	// PolicyDrop ignores requests until the in-flight navigation settles
	PolicyDrop
	// PolicyOverlap starts every request immediately. Timers of earlier
	// navigations still fire against the current state, which can leave more
	// than one card in focus under rapid input.
	PolicyOverlap
)

// String returns the policy name used in settings files
func (p Policy) String() string {
	switch p {
	case PolicyQueue:
		return "queue"
	case PolicyDrop:
		return "drop"
	case PolicyOverlap:
		return "overlap"
	default:
		return "unknown"
	}
}

// ParsePolicy parses a policy name as written by String
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "queue":
		return PolicyQueue, nil
	case "drop":
		return PolicyDrop, nil
	case "overlap":
		return PolicyOverlap, nil
	default:
		return PolicyQueue, fmt.Errorf("unknown navigation policy %q", s)
	}
}

type options struct {
	policy         Policy
	closeOnSelect  bool
	swipeThreshold float64
}

// Option configures a Controller
type Option func(*options)

// WithPolicy sets the overlapping-navigation policy
func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithCloseOnSelect closes the overlay shortly after a card is picked
func WithCloseOnSelect(enabled bool) Option {
	return func(o *options) { o.closeOnSelect = enabled }
}

// WithSwipeThreshold sets the minimum swipe displacement. Non-positive values
// keep the default.
func WithSwipeThreshold(units float64) Option {
	return func(o *options) {
		if units > 0 {
			o.swipeThreshold = units
		}
	}
}

func defaultOptions() options {
	return options{
		policy:         PolicyQueue,
		closeOnSelect:  false,
		swipeThreshold: gesture.DefaultThreshold,
	}
}
