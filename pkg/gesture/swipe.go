package gesture

// DefaultThreshold is the minimum displacement, in layout units, along the
// dominant axis before a drag counts as a swipe
const DefaultThreshold = 30.0

// Direction is the navigation intent of a swipe
type Direction int

const (
	None     Direction = iota
	Forward            // swipe left or up
	Backward           // swipe right or down
)

// String returns a human-readable direction name
func (d Direction) String() string {
	switch d {
	case None:
		return "None"
	case Forward:
		return "Forward"
	case Backward:
		return "Backward"
	default:
		return "Unknown"
	}
}

// Classify maps a drag displacement to a direction. The axis with the larger
// displacement wins and must exceed threshold; ties are ignored.
func Classify(dx, dy, threshold float64) Direction {
	ax, ay := abs(dx), abs(dy)

	switch {
	case ax > ay && ax > threshold:
		if dx < 0 {
			return Forward
		}
		return Backward
	case ay > ax && ay > threshold:
		if dy < 0 {
			return Forward
		}
		return Backward
	default:
		return None
	}
}

// Tracker pairs touch-down and touch-up positions into displacements
type Tracker struct {
	startX, startY float64
	active         bool
}

// Begin records the start of a drag
func (t *Tracker) Begin(x, y float64) {
	t.startX = x
	t.startY = y
	t.active = true
}

// Active reports whether a drag is in progress
func (t *Tracker) Active() bool {
	return t.active
}

// End finishes the drag and returns its displacement. ok is false when no
// drag was in progress.
func (t *Tracker) End(x, y float64) (dx, dy float64, ok bool) {
	if !t.active {
		return 0, 0, false
	}
	t.active = false
	return x - t.startX, y - t.startY, true
}

// Cancel drops any drag in progress
func (t *Tracker) Cancel() {
	t.active = false
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
