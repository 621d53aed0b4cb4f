package carousel

import (
	"fmt"
	"time"

	"carousel-frame/pkg/timeline"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fakeRenderer records the last state pushed for every element and schedules
// through a real timeline queue driven by a virtual clock
type fakeRenderer struct {
	*timeline.Queue

	cards   []string
	dots    int
	states  map[int]CardState
	markers map[int]Marker
	dotOn   map[int]bool

	viewerRef string
	viewer    ViewerState
	clones    map[int]ViewerState
	cloneRefs map[int]string
	nextClone int

	overlayVisible bool
	released       int
	bounds         map[int]Rect
	backdropRef    string
	backdropFrom   Rect
	backdropTo     Rect

	stateCalls int
	log        []string
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		Queue:     timeline.NewQueue(epoch),
		states:    map[int]CardState{},
		markers:   map[int]Marker{},
		dotOn:     map[int]bool{},
		clones:    map[int]ViewerState{},
		cloneRefs: map[int]string{},
		bounds:    map[int]Rect{},
	}
}

func (f *fakeRenderer) record(format string, args ...any) {
	f.log = append(f.log, fmt.Sprintf(format, args...))
}

func (f *fakeRenderer) CreateCard(index int, ref string) {
	f.cards = append(f.cards, ref)
	f.record("card %d %s", index, ref)
}

func (f *fakeRenderer) CreateDot(index int) {
	f.dots++
	f.record("dot %d", index)
}

func (f *fakeRenderer) SetCardState(index int, state CardState) {
	f.states[index] = state
	f.stateCalls++
}

func (f *fakeRenderer) SetCardMarker(index int, marker Marker) {
	f.markers[index] = marker
	f.record("marker %d %s", index, marker)
}

func (f *fakeRenderer) SetDot(index int, on bool) {
	f.dotOn[index] = on
}

func (f *fakeRenderer) SetViewer(ref string, state ViewerState) {
	if ref != "" {
		f.viewerRef = ref
	}
	f.viewer = state
}

func (f *fakeRenderer) CloneViewer() int {
	f.nextClone++
	f.clones[f.nextClone] = f.viewer
	f.cloneRefs[f.nextClone] = f.viewerRef
	return f.nextClone
}

func (f *fakeRenderer) SetViewerClone(id int, state ViewerState) {
	if _, ok := f.clones[id]; ok {
		f.clones[id] = state
	}
}

func (f *fakeRenderer) RemoveViewerClone(id int) {
	delete(f.clones, id)
	delete(f.cloneRefs, id)
}

func (f *fakeRenderer) ShowOverlay() {
	f.overlayVisible = true
	f.record("overlay show")
}

func (f *fakeRenderer) HideOverlay() {
	f.overlayVisible = false
	f.record("overlay hide")
}

func (f *fakeRenderer) ReleaseOverlay() {
	f.released++
	f.record("overlay release")
}

func (f *fakeRenderer) CardBounds(index int) Rect {
	return f.bounds[index]
}

func (f *fakeRenderer) ViewportSize() (float64, float64) {
	return 1920, 1080
}

func (f *fakeRenderer) MorphBackdrop(ref string, from, to Rect, d time.Duration) {
	f.backdropRef = ref
	f.backdropFrom = from
	f.backdropTo = to
	f.record("backdrop %s", ref)
}

func (f *fakeRenderer) focused() []int {
	var out []int
	for i := range f.cards {
		if f.states[i].InFocus {
			out = append(out, i)
		}
	}
	return out
}

func (f *fakeRenderer) dotsOn() []int {
	var out []int
	for i := 0; i < f.dots; i++ {
		if f.dotOn[i] {
			out = append(out, i)
		}
	}
	return out
}
