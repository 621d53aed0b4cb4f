package carousel

import (
	"errors"
	"log"

	"carousel-frame/pkg/gesture"
)

type overlayState int

const (
	overlayClosed overlayState = iota
	overlayOpen
	overlayClosing
)

// navigation is one SnapTo request moving through its phases
type navigation struct {
	prev int
	next int
}

// Controller owns the image list, the active index and the overlay, and
// sequences card and viewer transitions through a Renderer. It must only be
// used from the goroutine that drives the renderer's scheduler.
type Controller struct {
	images []string
	r      Renderer
	opts   options

	active int
	built  bool

	// navigation bookkeeping
	inFlight  int
	target    int // where the carousel ends up once pending work settles
	queued    int
	hasQueued bool
	// cards between their retreat and the matching advance
	retreating map[int]int

	overlay    overlayState
	overlayGen uint64
}

// New creates a controller for images. The list is copied and never changes
// afterwards.
func New(images []string, r Renderer, opts ...Option) (*Controller, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	if r == nil {
		return nil, errors.New("carousel: renderer is nil")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Controller{
		images:     append([]string(nil), images...),
		r:          r,
		opts:       o,
		retreating: make(map[int]int),
	}
	return c, nil
}

// Build creates the cards and dots, shows the first image and lays out the
// stack. A second layout pass runs two frames later so hosts that only start
// transitions after the first paint still animate into place.
func (c *Controller) Build() {
	if c.built {
		return
	}
	c.built = true

	for i, ref := range c.images {
		c.r.CreateCard(i, ref)
	}
	for i := range c.images {
		c.r.CreateDot(i)
	}

	c.r.SetViewer(c.images[0], restingViewer())
	c.ApplyStackLayout()

	c.r.NextFrame(func() {
		c.r.NextFrame(c.ApplyStackLayout)
	})

	log.Printf("Carousel built | images=%d | policy=%s | closeOnSelect=%t", len(c.images), c.opts.policy, c.opts.closeOnSelect)
}

// ApplyStackLayout puts the active card in focus, every other card in its
// stack position, and refreshes the dots. A card that is still retreating
// stays in the stack even while it is the active one.
func (c *Controller) ApplyStackLayout() {
	for i := range c.images {
		if c.retreating[i] > 0 {
			c.r.SetCardState(i, StackState(i))
			continue
		}
		c.r.SetCardState(i, LayoutFor(i, c.active))
	}
	c.refreshDots()
}

// SnapTo navigates to target, clamped into range
func (c *Controller) SnapTo(target int) {
	target = c.clamp(target)

	if c.inFlight > 0 {
		switch c.opts.policy {
		case PolicyDrop:
			log.Printf("SnapTo dropped | target=%d | inFlight=%d", target, c.inFlight)
			return
		case PolicyQueue:
			if target == c.target {
				return
			}
			c.queued = target
			c.hasQueued = true
			c.target = target
			return
		}
	}

	if target == c.active {
		return
	}
	c.start(target)
}

// Next navigates one card forward
func (c *Controller) Next() {
	c.SnapTo(c.base() + 1)
}

// Prev navigates one card back
func (c *Controller) Prev() {
	c.SnapTo(c.base() - 1)
}

// SelectCard navigates to the picked card and, when configured, closes the
// overlay once the card has come forward. With the overlay open the backdrop
// morphs to the picked image.
func (c *Controller) SelectCard(index int) {
	index = c.clamp(index)
	if c.overlay == overlayOpen {
		c.morphBackdrop(index)
	}
	c.SnapTo(index)

	if c.opts.closeOnSelect && c.overlay == overlayOpen {
		gen := c.overlayGen
		c.r.After(SelectCloseDelay, func() {
			if c.overlayGen == gen {
				c.CloseOverlay()
			}
		})
	}
}

// HandleKey applies a navigation key. Keys are ignored while the overlay is
// not open.
func (c *Controller) HandleKey(k Key) {
	if c.overlay != overlayOpen {
		return
	}

	switch k {
	case KeyRight:
		c.Next()
	case KeyLeft:
		c.Prev()
	case KeyEnter, KeyEscape:
		c.CloseOverlay()
	}
}

// HandleSwipe navigates on a drag of (dx, dy) layout units
func (c *Controller) HandleSwipe(dx, dy float64) {
	switch gesture.Classify(dx, dy, c.opts.swipeThreshold) {
	case gesture.Forward:
		c.Next()
	case gesture.Backward:
		c.Prev()
	}
}

// SwipeThreshold returns the displacement a drag must exceed to navigate
func (c *Controller) SwipeThreshold() float64 {
	return c.opts.swipeThreshold
}

// Active returns the index of the card in focus
func (c *Controller) Active() int {
	return c.active
}

// Target returns the index the carousel settles on once pending navigation completes
func (c *Controller) Target() int {
	if c.inFlight == 0 {
		return c.active
	}
	return c.target
}

// Navigating reports whether any navigation still has timers pending
func (c *Controller) Navigating() bool {
	return c.inFlight > 0
}

// Len returns the number of images
func (c *Controller) Len() int {
	return len(c.images)
}

// Image returns the reference of image i, clamped into range
func (c *Controller) Image(i int) string {
	return c.images[c.clamp(i)]
}

func (c *Controller) start(target int) {
	nav := navigation{prev: c.active, next: target}
	c.inFlight++
	c.target = target
	c.retreat(nav)
}

// retreat sends the previous card back into the stack
func (c *Controller) retreat(nav navigation) {
	c.retreating[nav.prev]++
	c.r.SetCardMarker(nav.prev, MarkerRetreating)
	c.r.SetCardState(nav.prev, StackState(nav.prev))

	c.r.After(RetreatDuration, func() { c.advance(nav) })
}

// advance brings the target card forward and swaps the viewer image
func (c *Controller) advance(nav navigation) {
	c.retreating[nav.prev]--
	if c.retreating[nav.prev] <= 0 {
		delete(c.retreating, nav.prev)
	}
	c.active = nav.next

	c.r.SetCardMarker(nav.next, MarkerAdvancing)
	c.r.SetCardState(nav.next, FocusState())
	c.refreshDots()
	c.crossfade(c.images[nav.next])

	c.r.After(AdvanceDuration, func() { c.settle(nav) })
}

// settle clears the transient markers and starts any queued request
func (c *Controller) settle(nav navigation) {
	c.r.SetCardMarker(nav.prev, MarkerIdle)
	c.r.SetCardMarker(nav.next, MarkerIdle)
	c.inFlight--

	if c.inFlight > 0 || !c.hasQueued {
		return
	}
	c.hasQueued = false
	if c.queued != c.active {
		c.start(c.queued)
	}
}

func (c *Controller) refreshDots() {
	for i := range c.images {
		c.r.SetDot(i, i == c.active)
	}
}

func (c *Controller) base() int {
	if c.opts.policy == PolicyQueue {
		return c.Target()
	}
	return c.active
}

func (c *Controller) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(c.images) {
		return len(c.images) - 1
	}
	return i
}
