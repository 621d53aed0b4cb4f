package carousel

func restingViewer() ViewerState {
	return ViewerState{Opacity: 1, Scale: 1}
}

// crossfade swaps the viewer image using two overlapping layers: a clone of
// the old image fades out while the live layer, already showing ref, fades
// and scales in. A single layer cannot blend between two sources.
func (c *Controller) crossfade(ref string) {
	clone := c.r.CloneViewer()
	c.r.SetViewer(ref, ViewerState{Opacity: 0, Scale: 1.1, OffsetY: 20})

	c.r.NextFrame(func() {
		c.r.SetViewerClone(clone, ViewerState{
			Opacity:    0,
			Scale:      0.9,
			OffsetY:    -20,
			Transition: ViewerFadeDuration,
		})

		c.r.After(ViewerSettleDelay, func() {
			enter := restingViewer()
			enter.Transition = ViewerFadeDuration
			c.r.SetViewer("", enter)

			c.r.After(ViewerFadeDuration, func() {
				c.r.RemoveViewerClone(clone)
			})
		})
	})
}
