package hwdraw

import "github.com/gogpu/hwdraw/internal/tess"

// Clip intersects the current clip region with a path. The path is
// transformed to device space with the active transform and rasterized on
// the CPU with the even-odd rule; the resulting coverage multiplies into
// the active mask. The first Clip on a context allocates the mask lazily.
//
// When the active mask is shared with a saved state, it is cloned first so
// the outer state's clip is unaffected by this call.
func (c *Context) Clip(path *Path) {
	st := c.top()

	if st.mask == nil {
		m, err := newMask(c.ctx, c.width, c.height)
		if err != nil {
			c.recordErr(err)
			return
		}
		st.mask = m
	} else if st.mask.shared() {
		clone, err := st.mask.clone(c.ctx)
		if err != nil {
			c.recordErr(err)
			return
		}
		st.mask.release()
		st.mask = clone
	}

	device := path.Transform(st.transform)
	polys := tess.Flatten(pathEvents(device), c.tolerance())
	st.mask.intersect(polys)
}

// ClipRect intersects the clip region with an axis-aligned rectangle in
// user space.
func (c *Context) ClipRect(r Rect) {
	c.Clip(r.Path())
}
