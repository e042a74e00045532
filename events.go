package hwdraw

import "github.com/gogpu/hwdraw/internal/tess"

// eventConverter turns path elements into a flat stream of tessellation
// events. Begin events are deferred until a subpath produces its first edge,
// so bare MoveTo calls generate nothing.
type eventConverter struct {
	events []tess.Event

	start   Point // first point of the current subpath
	current Point // last point reached
	began   bool  // Begin has been emitted for the current subpath
	pending bool  // start is valid but Begin not yet emitted
}

// pathEvents converts a path into tessellation events.
func pathEvents(p *Path) []tess.Event {
	var c eventConverter
	c.events = make([]tess.Event, 0, len(p.Elements())+2)
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case MoveTo:
			c.moveTo(e.Point)
		case LineTo:
			c.lineTo(e.Point)
		case QuadTo:
			c.quadTo(e.Control, e.Point)
		case CubicTo:
			c.cubicTo(e.Control1, e.Control2, e.Point)
		case Close:
			c.close()
		}
	}
	c.finish()
	return c.events
}

func tp(p Point) tess.Point {
	return tess.Pt(float32(p.X), float32(p.Y))
}

func (c *eventConverter) moveTo(p Point) {
	c.endSubpath(false)
	c.start = p
	c.current = p
	c.pending = true
}

// beginEdge emits the deferred Begin before the subpath's first edge. An
// edge with no preceding MoveTo starts a subpath at the current point.
func (c *eventConverter) beginEdge() {
	if c.began {
		return
	}
	if !c.pending {
		c.start = c.current
	}
	c.events = append(c.events, tess.Begin(tp(c.start)))
	c.began = true
	c.pending = false
}

func (c *eventConverter) lineTo(p Point) {
	c.beginEdge()
	c.events = append(c.events, tess.Line(tp(c.current), tp(p)))
	c.current = p
}

func (c *eventConverter) quadTo(ctrl, p Point) {
	c.beginEdge()
	c.events = append(c.events, tess.Quad(tp(c.current), tp(ctrl), tp(p)))
	c.current = p
}

func (c *eventConverter) cubicTo(c1, c2, p Point) {
	c.beginEdge()
	c.events = append(c.events, tess.Cubic(tp(c.current), tp(c1), tp(c2), tp(p)))
	c.current = p
}

func (c *eventConverter) close() {
	if c.began {
		last := c.current
		if last.Coincident(c.start) {
			// The subpath already returns to its start; report the
			// endpoints as equal so no closing edge is synthesized.
			last = c.start
		}
		c.events = append(c.events, tess.End(tp(c.start), tp(last), true))
	}
	// The pen returns to the subpath start.
	c.current = c.start
	c.began = false
	c.pending = true
}

// endSubpath terminates an in-progress subpath. Subpaths with no edges are
// discarded.
func (c *eventConverter) endSubpath(closed bool) {
	if !c.began {
		c.pending = false
		return
	}
	c.events = append(c.events, tess.End(tp(c.start), tp(c.current), closed))
	c.began = false
	c.pending = false
}

func (c *eventConverter) finish() {
	c.endSubpath(false)
}
