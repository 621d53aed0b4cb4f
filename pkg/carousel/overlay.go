package carousel

// OpenOverlay reveals the gallery overlay and zooms the backdrop out of the
// active card's current on-screen box
func (c *Controller) OpenOverlay() {
	if c.overlay == overlayOpen {
		return
	}
	c.overlay = overlayOpen
	// invalidates any pending release or select-close
	c.overlayGen++

	c.r.ShowOverlay()

	// geometry must be read after the overlay is visible
	c.morphBackdrop(c.active)

	c.ApplyStackLayout()
}

// morphBackdrop grows the backdrop from card index's box to the viewport
func (c *Controller) morphBackdrop(index int) {
	w, h := c.r.ViewportSize()
	from := c.r.CardBounds(index)
	c.r.MorphBackdrop(c.images[index], from, Rect{W: w, H: h}, BackdropDuration)
}

// CloseOverlay starts the overlay exit and releases it once the exit
// transition has finished
func (c *Controller) CloseOverlay() {
	if c.overlay != overlayOpen {
		return
	}
	c.overlay = overlayClosing
	gen := c.overlayGen

	c.r.HideOverlay()
	c.r.After(OverlayExitDuration, func() {
		if c.overlayGen != gen || c.overlay != overlayClosing {
			return
		}
		c.overlay = overlayClosed
		c.r.ReleaseOverlay()
	})
}

// OverlayOpen reports whether the overlay is open. An overlay that is
// playing its exit transition counts as closed.
func (c *Controller) OverlayOpen() bool {
	return c.overlay == overlayOpen
}
