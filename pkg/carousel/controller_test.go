package carousel

import (
	"fmt"
	"testing"
	"time"

	"carousel-frame/pkg/gesture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settleAll covers every timer a single navigation or overlay change can queue
const settleAll = 3 * time.Second

func sixImages() []string {
	images := make([]string, 6)
	for i := range images {
		images[i] = fmt.Sprintf("assets/images/%d.jpg", i)
	}
	return images
}

func newBuilt(t *testing.T, n int, opts ...Option) (*Controller, *fakeRenderer) {
	t.Helper()
	images := make([]string, n)
	for i := range images {
		images[i] = fmt.Sprintf("img-%d", i)
	}
	f := newFakeRenderer()
	c, err := New(images, f, opts...)
	require.NoError(t, err)
	c.Build()
	// two ticks flush the deferred second layout pass
	f.Advance(settleAll)
	f.Advance(settleAll)
	require.Zero(t, f.Pending())
	return c, f
}

func TestNew_RejectsEmptyList(t *testing.T) {
	_, err := New(nil, newFakeRenderer())
	assert.ErrorIs(t, err, ErrNoImages)

	_, err = New([]string{"a"}, nil)
	assert.Error(t, err)
}

func TestNew_CopiesImageList(t *testing.T) {
	images := []string{"a", "b"}
	c, err := New(images, newFakeRenderer())
	require.NoError(t, err)

	images[0] = "changed"
	assert.Equal(t, "a", c.Image(0))
}

func TestBuild(t *testing.T) {
	images := sixImages()
	f := newFakeRenderer()
	c, err := New(images, f)
	require.NoError(t, err)

	c.Build()

	assert.Equal(t, images, f.cards, "one card per image in list order")
	assert.Equal(t, 6, f.dots)
	assert.Equal(t, images[0], f.viewerRef)
	assert.Equal(t, 1.0, f.viewer.Opacity)
	assert.Equal(t, []int{0}, f.focused())
	assert.Equal(t, []int{0}, f.dotsOn())
	for i := 1; i < 6; i++ {
		assert.Equal(t, StackState(i), f.states[i])
	}

	t.Run("second layout pass two frames later", func(t *testing.T) {
		calls := f.stateCalls
		f.Advance(16 * time.Millisecond)
		assert.Equal(t, calls, f.stateCalls)
		f.Advance(16 * time.Millisecond)
		assert.Equal(t, calls+6, f.stateCalls)
	})

	t.Run("build is idempotent", func(t *testing.T) {
		c.Build()
		assert.Len(t, f.cards, 6)
	})
}

func TestSnapTo_Phases(t *testing.T) {
	c, f := newBuilt(t, 6)

	c.SnapTo(3)

	// Phase A: only the previous card moves
	assert.Equal(t, 0, c.Active())
	assert.True(t, c.Navigating())
	assert.Equal(t, MarkerRetreating, f.markers[0])
	assert.Equal(t, StackState(0), f.states[0])
	assert.Equal(t, "img-0", f.viewerRef)

	f.Advance(RetreatDuration - time.Millisecond)
	assert.Equal(t, 0, c.Active(), "phase B waits for the retreat to finish")

	// Phase B
	f.Advance(time.Millisecond)
	assert.Equal(t, 3, c.Active())
	assert.Equal(t, MarkerAdvancing, f.markers[3])
	assert.Equal(t, FocusState(), f.states[3])
	assert.Equal(t, []int{3}, f.dotsOn())
	assert.Equal(t, "img-3", f.viewerRef)

	// Settled
	f.Advance(AdvanceDuration)
	assert.Equal(t, MarkerIdle, f.markers[0])
	assert.Equal(t, MarkerIdle, f.markers[3])
	assert.False(t, c.Navigating())
	assert.Equal(t, []int{3}, f.focused())
}

func TestSnapTo_ClampsAndNoOps(t *testing.T) {
	t.Run("before start", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		before := len(f.log)
		calls := f.stateCalls

		c.SnapTo(-1)

		assert.Equal(t, 0, c.Active())
		assert.False(t, c.Navigating())
		assert.Equal(t, before, len(f.log))
		assert.Equal(t, calls, f.stateCalls)
		assert.Equal(t, 0, f.Pending())
	})

	t.Run("past end", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.SnapTo(5)
		f.Advance(settleAll)
		require.Equal(t, 5, c.Active())
		calls := f.stateCalls

		c.SnapTo(6)

		assert.Equal(t, 5, c.Active())
		assert.False(t, c.Navigating())
		assert.Equal(t, calls, f.stateCalls)
	})

	t.Run("same index", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.SnapTo(2)
		f.Advance(settleAll)
		states := map[int]CardState{}
		for k, v := range f.states {
			states[k] = v
		}

		c.SnapTo(2)
		f.Advance(settleAll)

		assert.Equal(t, 2, c.Active())
		assert.Equal(t, states, f.states)
	})
}

func TestSnapTo_AlwaysEndsOnClampedTarget(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for start := 0; start < n; start++ {
			for target := -2; target <= n+1; target++ {
				name := fmt.Sprintf("n=%d/start=%d/target=%d", n, start, target)
				t.Run(name, func(t *testing.T) {
					c, f := newBuilt(t, n)
					c.SnapTo(start)
					f.Advance(settleAll)

					c.SnapTo(target)
					f.Advance(settleAll)

					want := target
					if want < 0 {
						want = 0
					}
					if want > n-1 {
						want = n - 1
					}
					assert.Equal(t, want, c.Active())
					assert.Equal(t, []int{want}, f.focused(), "exactly one card in focus")
					assert.Equal(t, []int{want}, f.dotsOn())
					for i := 0; i < n; i++ {
						if i != want {
							assert.Equal(t, StackState(i), f.states[i])
						}
						assert.Equal(t, MarkerIdle, f.markers[i])
					}
				})
			}
		}
	}
}

func TestBackgroundStateIgnoresHistory(t *testing.T) {
	c, f := newBuilt(t, 6)
	for _, target := range []int{4, 1, 5, 0, 2} {
		c.SnapTo(target)
		f.Advance(settleAll)
	}
	c.OpenOverlay()
	f.Advance(settleAll)

	for i := 0; i < 6; i++ {
		if i == c.Active() {
			continue
		}
		assert.Equal(t, StackState(i), f.states[i], "card %d", i)
	}
}

func TestViewerCrossfade(t *testing.T) {
	c, f := newBuilt(t, 6)

	c.SnapTo(3)
	f.Advance(RetreatDuration)

	require.Len(t, f.clones, 1)
	var clone int
	for id := range f.clones {
		clone = id
	}
	assert.Equal(t, "img-0", f.cloneRefs[clone], "clone keeps the old image")
	assert.Equal(t, "img-3", f.viewerRef)
	assert.Equal(t, ViewerState{Opacity: 0, Scale: 1.1, OffsetY: 20}, f.viewer)

	// next frame: old image starts leaving
	f.Advance(time.Millisecond)
	assert.Equal(t, 0.0, f.clones[clone].Opacity)
	assert.Equal(t, 0.9, f.clones[clone].Scale)
	assert.Equal(t, -20.0, f.clones[clone].OffsetY)
	assert.Equal(t, 0.0, f.viewer.Opacity, "live image waits for the settle delay")

	f.Advance(ViewerSettleDelay)
	assert.Equal(t, ViewerState{Opacity: 1, Scale: 1, Transition: ViewerFadeDuration}, f.viewer)
	assert.Len(t, f.clones, 1)

	f.Advance(ViewerFadeDuration)
	assert.Empty(t, f.clones, "clone removed once the fade completes")
}

func TestHandleKey(t *testing.T) {
	t.Run("ignored while overlay closed", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.HandleKey(KeyRight)
		c.HandleKey(KeyLeft)
		f.Advance(settleAll)
		assert.Equal(t, 0, c.Active())
		assert.False(t, c.Navigating())
	})

	t.Run("arrows navigate while open", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.OpenOverlay()

		c.HandleKey(KeyRight)
		f.Advance(settleAll)
		assert.Equal(t, 1, c.Active())

		c.HandleKey(KeyLeft)
		f.Advance(settleAll)
		assert.Equal(t, 0, c.Active())

		c.HandleKey(KeyLeft)
		f.Advance(settleAll)
		assert.Equal(t, 0, c.Active(), "clamped at start")
	})

	for _, k := range []Key{KeyEnter, KeyEscape} {
		t.Run(fmt.Sprintf("key %d closes", k), func(t *testing.T) {
			c, f := newBuilt(t, 6)
			c.OpenOverlay()
			c.HandleKey(k)
			assert.False(t, c.OverlayOpen())

			c.HandleKey(KeyRight)
			f.Advance(settleAll)
			assert.Equal(t, 0, c.Active(), "closing overlay stops key navigation")
		})
	}
}

func TestOverlay(t *testing.T) {
	t.Run("open morphs backdrop from active card", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.SnapTo(2)
		f.Advance(settleAll)
		f.bounds[2] = Rect{X: 100, Y: 50, W: 400, H: 250}

		c.OpenOverlay()

		assert.True(t, c.OverlayOpen())
		assert.True(t, f.overlayVisible)
		assert.Equal(t, "img-2", f.backdropRef)
		assert.Equal(t, Rect{X: 100, Y: 50, W: 400, H: 250}, f.backdropFrom)
		assert.Equal(t, Rect{W: 1920, H: 1080}, f.backdropTo, "backdrop grows to the viewport")
		assert.Equal(t, []int{2}, f.focused())
	})

	t.Run("open twice is a no-op", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.OpenOverlay()
		n := len(f.log)
		c.OpenOverlay()
		assert.Equal(t, n, len(f.log))
	})

	t.Run("close releases after exit transition", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.OpenOverlay()
		c.CloseOverlay()

		assert.False(t, f.overlayVisible)
		f.Advance(OverlayExitDuration - time.Millisecond)
		assert.Equal(t, 0, f.released)
		f.Advance(time.Millisecond)
		assert.Equal(t, 1, f.released)
	})

	t.Run("close while closed does nothing", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.CloseOverlay()
		f.Advance(settleAll)
		assert.Equal(t, 0, f.released)
	})

	t.Run("reopen during exit cancels release", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.OpenOverlay()
		c.CloseOverlay()
		f.Advance(100 * time.Millisecond)
		c.OpenOverlay()
		f.Advance(settleAll)

		assert.Equal(t, 0, f.released)
		assert.True(t, c.OverlayOpen())
	})
}

func TestSelectCard(t *testing.T) {
	t.Run("navigates", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.OpenOverlay()
		c.SelectCard(4)
		f.Advance(settleAll)

		assert.Equal(t, 4, c.Active())
		assert.True(t, c.OverlayOpen(), "overlay stays open by default")
	})

	t.Run("closes overlay when configured", func(t *testing.T) {
		c, f := newBuilt(t, 6, WithCloseOnSelect(true))
		c.OpenOverlay()
		c.SelectCard(4)

		f.Advance(SelectCloseDelay - time.Millisecond)
		assert.True(t, c.OverlayOpen())
		f.Advance(time.Millisecond)
		assert.False(t, c.OverlayOpen())

		f.Advance(settleAll)
		assert.Equal(t, 4, c.Active())
		assert.Equal(t, 1, f.released)
	})

	t.Run("morphs backdrop to the picked image", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.OpenOverlay()
		f.Advance(settleAll)
		f.bounds[3] = Rect{X: 700, Y: 300, W: 320, H: 200}

		c.SelectCard(3)
		assert.Equal(t, "img-3", f.backdropRef)
		assert.Equal(t, Rect{X: 700, Y: 300, W: 320, H: 200}, f.backdropFrom)
		assert.Equal(t, Rect{W: 1920, H: 1080}, f.backdropTo)

		f.Advance(settleAll)
		assert.Equal(t, 3, c.Active())
		assert.Equal(t, "img-3", f.backdropRef)
	})

	t.Run("out of range pick is clamped", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.OpenOverlay()
		c.SelectCard(42)
		f.Advance(settleAll)

		assert.Equal(t, 5, c.Active())
		assert.Equal(t, "img-5", f.backdropRef)
	})

	t.Run("backdrop untouched while overlay closed", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.SelectCard(2)
		f.Advance(settleAll)

		assert.Equal(t, 2, c.Active())
		assert.Empty(t, f.backdropRef)
	})

	t.Run("no close when overlay reopened meanwhile", func(t *testing.T) {
		c, f := newBuilt(t, 6, WithCloseOnSelect(true))
		c.OpenOverlay()
		c.SelectCard(4)
		c.CloseOverlay()
		c.OpenOverlay()
		f.Advance(settleAll)

		assert.True(t, c.OverlayOpen())
	})
}

func TestStackLayoutDuringRetreat(t *testing.T) {
	t.Run("relayout keeps the retreating card in the stack", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.SnapTo(3)
		f.Advance(100 * time.Millisecond)

		c.ApplyStackLayout()
		assert.Empty(t, f.focused(), "nothing in focus between the phases")
		assert.Equal(t, StackState(0), f.states[0])

		f.Advance(settleAll)
		assert.Equal(t, 3, c.Active())
		assert.Equal(t, []int{3}, f.focused())
	})

	t.Run("reopening the overlay mid navigation", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.OpenOverlay()
		c.HandleKey(KeyRight)
		f.Advance(100 * time.Millisecond)
		c.HandleKey(KeyEscape)
		f.Advance(100 * time.Millisecond)

		c.OpenOverlay()
		f.Advance(settleAll)

		assert.Equal(t, 1, c.Active())
		assert.Equal(t, []int{1}, f.focused())
		assert.Equal(t, []int{1}, f.dotsOn())
	})

	t.Run("relayout after the advance focuses the new card", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.SnapTo(2)
		f.Advance(RetreatDuration + 10*time.Millisecond)

		c.ApplyStackLayout()
		assert.Equal(t, []int{2}, f.focused())

		f.Advance(settleAll)
		assert.Equal(t, []int{2}, f.focused())
	})
}

func TestHandleSwipe(t *testing.T) {
	c, f := newBuilt(t, 6)
	assert.Equal(t, gesture.DefaultThreshold, c.SwipeThreshold())

	c.HandleSwipe(-120, 10)
	f.Advance(settleAll)
	assert.Equal(t, 1, c.Active(), "left swipe goes forward")

	c.HandleSwipe(5, -90)
	f.Advance(settleAll)
	assert.Equal(t, 2, c.Active(), "up swipe goes forward")

	c.HandleSwipe(90, 0)
	f.Advance(settleAll)
	assert.Equal(t, 1, c.Active(), "right swipe goes back")

	c.HandleSwipe(20, 10)
	f.Advance(settleAll)
	assert.Equal(t, 1, c.Active(), "short drag ignored")

	t.Run("right swipe at start clamps", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.HandleSwipe(80, 0)
		f.Advance(settleAll)
		assert.Equal(t, 0, c.Active())
	})

	t.Run("custom threshold", func(t *testing.T) {
		c, f := newBuilt(t, 6, WithSwipeThreshold(100))
		assert.Equal(t, 100.0, c.SwipeThreshold())
		c.HandleSwipe(-80, 0)
		f.Advance(settleAll)
		assert.Equal(t, 0, c.Active())
	})
}

func TestOverlappingNavigation(t *testing.T) {
	t.Run("overlap reproduces the unguarded race", func(t *testing.T) {
		c, f := newBuilt(t, 6, WithPolicy(PolicyOverlap))
		c.SnapTo(3)
		f.Advance(100 * time.Millisecond)
		c.SnapTo(4)
		f.Advance(settleAll)

		assert.Equal(t, 4, c.Active())
		assert.Equal(t, []int{3, 4}, f.focused(), "stale phase B leaves card 3 in focus")
	})

	t.Run("drop ignores requests in flight", func(t *testing.T) {
		c, f := newBuilt(t, 6, WithPolicy(PolicyDrop))
		c.SnapTo(3)
		f.Advance(100 * time.Millisecond)
		c.SnapTo(4)
		f.Advance(settleAll)

		assert.Equal(t, 3, c.Active())
		assert.Equal(t, []int{3}, f.focused())

		c.SnapTo(4)
		f.Advance(settleAll)
		assert.Equal(t, 4, c.Active())
	})

	t.Run("queue runs the latest request after settling", func(t *testing.T) {
		c, f := newBuilt(t, 6, WithPolicy(PolicyQueue))
		c.SnapTo(3)
		f.Advance(100 * time.Millisecond)
		c.SnapTo(1)
		c.SnapTo(5)
		assert.Equal(t, 5, c.Target())

		f.Advance(RetreatDuration + AdvanceDuration)
		assert.Equal(t, 3, c.Active())
		assert.True(t, c.Navigating(), "queued request started")

		f.Advance(settleAll)
		assert.Equal(t, 5, c.Active())
		assert.Equal(t, []int{5}, f.focused())
		assert.False(t, c.Navigating())
	})

	t.Run("queue accumulates relative steps", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.OpenOverlay()
		for i := 0; i < 3; i++ {
			c.HandleKey(KeyRight)
		}
		f.Advance(2 * settleAll)

		assert.Equal(t, 3, c.Active())
		assert.Equal(t, []int{3}, f.focused())
	})

	t.Run("queue back to the in-flight origin", func(t *testing.T) {
		c, f := newBuilt(t, 6)
		c.SnapTo(2)
		c.SnapTo(0)
		f.Advance(2 * settleAll)

		assert.Equal(t, 0, c.Active())
		assert.Equal(t, []int{0}, f.focused())
	})
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicyQueue, false},
		{"queue", PolicyQueue, false},
		{" Drop ", PolicyDrop, false},
		{"OVERLAP", PolicyOverlap, false},
		{"sometimes", PolicyQueue, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Policy {
	t.Helper()
	p, err := ParsePolicy(s)
	require.NoError(t, err)
	return p
}
