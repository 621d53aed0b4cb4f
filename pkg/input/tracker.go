package input

import "github.com/veandco/go-sdl2/sdl"

// KeyPressTracker turns polled keyboard state into key-down edges
type KeyPressTracker struct {
	pressed map[sdl.Scancode]bool
}

// NewKeyPressTracker creates a new KeyPressTracker
func NewKeyPressTracker() KeyPressTracker {
	return KeyPressTracker{
		pressed: make(map[sdl.Scancode]bool),
	}
}

// IsPressed checks if a key was just pressed (not held)
func (kpt *KeyPressTracker) IsPressed(keyState []uint8, scancode sdl.Scancode) bool {
	if int(scancode) >= len(keyState) {
		return false
	}
	isCurrentlyPressed := keyState[scancode] != 0
	wasPressed := kpt.pressed[scancode]

	kpt.pressed[scancode] = isCurrentlyPressed

	return isCurrentlyPressed && !wasPressed
}

// FirstPressed polls every scancode and returns the first one that was just
// pressed. All of them are polled so held keys do not fire on a later call.
func (kpt *KeyPressTracker) FirstPressed(keyState []uint8, scancodes ...sdl.Scancode) (sdl.Scancode, bool) {
	var (
		first sdl.Scancode
		found bool
	)
	for _, sc := range scancodes {
		if kpt.IsPressed(keyState, sc) && !found {
			first = sc
			found = true
		}
	}
	return first, found
}

// Edge is a change of a button between two polls
type Edge int

const (
	EdgeNone Edge = iota
	EdgeDown
	EdgeUp
)

// MousePressTracker turns polled mouse button state into press and release edges
type MousePressTracker struct {
	// Keyed by SDL button mask (e.g. sdl.ButtonLMask())
	pressed map[uint32]bool
}

// NewMousePressTracker creates a new MousePressTracker
func NewMousePressTracker() MousePressTracker {
	return MousePressTracker{
		pressed: make(map[uint32]bool),
	}
}

// Poll reports whether the button went down or up since the last poll
func (mpt *MousePressTracker) Poll(mouseState uint32, buttonMask uint32) Edge {
	isCurrentlyPressed := (mouseState & buttonMask) != 0
	wasPressed := mpt.pressed[buttonMask]

	mpt.pressed[buttonMask] = isCurrentlyPressed

	switch {
	case isCurrentlyPressed && !wasPressed:
		return EdgeDown
	case !isCurrentlyPressed && wasPressed:
		return EdgeUp
	default:
		return EdgeNone
	}
}
