package tess

import "math"

// vec is a float64 2D vector used for stroke offset math.
type vec struct {
	x, y float64
}

func (v vec) add(w vec) vec       { return vec{v.x + w.x, v.y + w.y} }
func (v vec) sub(w vec) vec       { return vec{v.x - w.x, v.y - w.y} }
func (v vec) scale(s float64) vec { return vec{v.x * s, v.y * s} }
func (v vec) dot(w vec) float64   { return v.x*w.x + v.y*w.y }
func (v vec) cross(w vec) float64 { return v.x*w.y - v.y*w.x }
func (v vec) length() float64     { return math.Hypot(v.x, v.y) }

func (v vec) normalize() (vec, bool) {
	l := v.length()
	if l == 0 {
		return vec{}, false
	}
	return vec{v.x / l, v.y / l}, true
}

// perp returns the vector rotated 90 degrees counter-clockwise (the left
// normal of a direction vector).
func (v vec) perp() vec { return vec{-v.y, v.x} }

func toVec(p Point) vec { return vec{float64(p.X), float64(p.Y)} }

// Stroke tessellates the outline of the path described by events, emitting
// triangles through sink. Each flattened segment becomes a quad of the
// stroke width; corners are filled according to opts.Join and open subpath
// ends according to opts.Cap.
//
// Dash patterns are not supported: a non-empty opts.Dash fails with
// ErrUnsupportedStyle before any geometry is emitted.
func Stroke(events []Event, opts StrokeOptions, sink Sink) error {
	if len(opts.Dash) > 0 {
		return ErrUnsupportedStyle
	}
	if opts.Width <= 0 {
		return nil
	}

	s := stroker{
		sink:       sink,
		half:       float64(opts.Width) / 2,
		join:       opts.Join,
		cap:        opts.Cap,
		miterLimit: float64(opts.miterLimit()),
		tolerance:  float64(opts.tolerance()),
	}
	for _, pl := range flattenEvents(events, opts.tolerance()) {
		s.strokePolyline(pl.pts, pl.closed)
	}
	return nil
}

type stroker struct {
	sink       Sink
	half       float64
	join       LineJoin
	cap        LineCap
	miterLimit float64
	tolerance  float64
}

func (s *stroker) strokePolyline(pts []Point, closed bool) {
	n := len(pts)
	if n < 2 {
		return
	}

	segCount := n - 1
	if closed {
		segCount = n
	}

	// Segment directions. Degenerate segments were dropped during
	// flattening, so every direction normalizes.
	dirs := make([]vec, 0, segCount)
	for i := 0; i < segCount; i++ {
		a := toVec(pts[i])
		b := toVec(pts[(i+1)%n])
		d, ok := b.sub(a).normalize()
		if !ok {
			d = vec{1, 0}
		}
		dirs = append(dirs, d)

		s.emitSegment(a, b, d)
	}

	if closed {
		for i := 0; i < n; i++ {
			prev := dirs[(i+segCount-1)%segCount]
			s.emitJoin(toVec(pts[i]), prev, dirs[i])
		}
		return
	}

	for i := 1; i < n-1; i++ {
		s.emitJoin(toVec(pts[i]), dirs[i-1], dirs[i])
	}
	s.emitCap(toVec(pts[0]), dirs[0].scale(-1))
	s.emitCap(toVec(pts[n-1]), dirs[segCount-1])
}

// emitSegment emits the rectangular body of one stroked segment.
func (s *stroker) emitSegment(a, b, dir vec) {
	offset := dir.perp().scale(s.half)
	s.quad(a.add(offset), b.add(offset), b.sub(offset), a.sub(offset))
}

// emitJoin fills the wedge between two segments meeting at p, where d0 is
// the incoming and d1 the outgoing direction.
func (s *stroker) emitJoin(p, d0, d1 vec) {
	cross := d0.cross(d1)
	if math.Abs(cross) < 1e-12 && d0.dot(d1) > 0 {
		return // collinear, no wedge
	}

	// The outer side of the corner is opposite the turn direction.
	n0 := d0.perp().scale(s.half)
	n1 := d1.perp().scale(s.half)
	if cross > 0 {
		n0 = n0.scale(-1)
		n1 = n1.scale(-1)
	}
	outer0 := p.add(n0)
	outer1 := p.add(n1)

	switch s.join {
	case JoinRound:
		if via, ok := n0.add(n1).normalize(); ok {
			s.fan(p, outer0, outer1, via)
		}
		return
	case JoinMiter:
		u0, _ := n0.normalize()
		u1, _ := n1.normalize()
		bisector, ok := u0.add(u1).normalize()
		if ok {
			cosHalf := bisector.dot(u0)
			if cosHalf > 0 && 1/cosHalf <= s.miterLimit {
				m := p.add(bisector.scale(s.half / cosHalf))
				s.tri(p, outer0, m)
				s.tri(p, m, outer1)
				return
			}
		}
		// Fall through to bevel when the miter exceeds the limit.
	case JoinBevel:
	}
	s.tri(p, outer0, outer1)
}

// emitCap closes an open subpath end at p, with dir pointing outward away
// from the path body.
func (s *stroker) emitCap(p, dir vec) {
	offset := dir.perp().scale(s.half)
	switch s.cap {
	case CapButt:
	case CapSquare:
		ext := dir.scale(s.half)
		s.quad(p.add(offset), p.add(offset).add(ext), p.sub(offset).add(ext), p.sub(offset))
	case CapRound:
		// Semicircle from +offset to -offset, passing through dir.
		s.fan(p, p.add(offset), p.sub(offset), dir)
	}
}

// fan fills the arc wedge around center from point a to point b at the
// stroke radius. via is an outward direction the arc must pass through; it
// disambiguates the sweep orientation.
func (s *stroker) fan(center, a, b, via vec) {
	va := a.sub(center)
	vb := b.sub(center)
	start := math.Atan2(va.y, va.x)
	end := math.Atan2(vb.y, vb.x)

	// Shortest sweep first, then flip if it misses the via direction.
	sweep := end - start
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	for sweep < -math.Pi {
		sweep += 2 * math.Pi
	}
	mid := start + sweep/2
	if (vec{math.Cos(mid), math.Sin(mid)}).dot(via) < 0 {
		if sweep >= 0 {
			sweep -= 2 * math.Pi
		} else {
			sweep += 2 * math.Pi
		}
	}

	// Bound the chord deviation by the flattening tolerance.
	maxStep := math.Pi / 4
	if s.tolerance < s.half {
		maxStep = 2 * math.Acos(1-s.tolerance/s.half)
	}
	steps := int(math.Ceil(math.Abs(sweep) / maxStep))
	if steps < 1 {
		steps = 1
	}

	prev := a
	for i := 1; i <= steps; i++ {
		angle := start + sweep*float64(i)/float64(steps)
		next := center.add(vec{math.Cos(angle), math.Sin(angle)}.scale(s.half))
		s.tri(center, prev, next)
		prev = next
	}
}

func (s *stroker) tri(a, b, c vec) {
	i0 := s.sink.AddVertex(float32(a.x), float32(a.y))
	i1 := s.sink.AddVertex(float32(b.x), float32(b.y))
	i2 := s.sink.AddVertex(float32(c.x), float32(c.y))
	s.sink.AddTriangle(i0, i1, i2)
}

func (s *stroker) quad(a, b, c, d vec) {
	i0 := s.sink.AddVertex(float32(a.x), float32(a.y))
	i1 := s.sink.AddVertex(float32(b.x), float32(b.y))
	i2 := s.sink.AddVertex(float32(c.x), float32(c.y))
	i3 := s.sink.AddVertex(float32(d.x), float32(d.y))
	s.sink.AddTriangle(i0, i1, i2)
	s.sink.AddTriangle(i0, i2, i3)
}
