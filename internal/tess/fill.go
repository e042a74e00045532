package tess

import "sort"

// fillEdge is a non-horizontal line segment prepared for the sweep.
// Endpoints are ordered so y0 < y1; winding is +1 for segments that
// originally pointed downward and -1 otherwise.
type fillEdge struct {
	x0, y0 float64
	x1, y1 float64
	wind   int

	// per-slab scratch
	xa, xb, xm float64
}

// xAt returns the edge's x coordinate at height y.
func (e *fillEdge) xAt(y float64) float64 {
	if e.y1 == e.y0 {
		return e.x0
	}
	return e.x0 + (y-e.y0)*(e.x1-e.x0)/(e.y1-e.y0)
}

// Fill tessellates the interior of the path described by events under the
// given winding rule, emitting triangles through sink.
//
// The interior is decomposed into horizontal slabs bounded by edge endpoint
// heights. Within each slab the active edges are sorted by x and winding is
// accumulated left to right; every inside span contributes one trapezoid
// (two triangles). Subpaths are treated as implicitly closed, as is
// conventional for filling.
func Fill(events []Event, opts FillOptions, sink Sink) error {
	polys := flattenEvents(events, opts.tolerance())

	var edges []fillEdge
	addEdge := func(a, b Point) {
		if a.Y == b.Y {
			return // horizontal edges never cross a scanline midpoint
		}
		e := fillEdge{
			x0: float64(a.X), y0: float64(a.Y),
			x1: float64(b.X), y1: float64(b.Y),
			wind: 1,
		}
		if e.y0 > e.y1 {
			e.x0, e.x1 = e.x1, e.x0
			e.y0, e.y1 = e.y1, e.y0
			e.wind = -1
		}
		edges = append(edges, e)
	}

	for _, pl := range polys {
		pts := pl.pts
		for i := 1; i < len(pts); i++ {
			addEdge(pts[i-1], pts[i])
		}
		// Filling implicitly closes every subpath.
		if pts[len(pts)-1] != pts[0] {
			addEdge(pts[len(pts)-1], pts[0])
		}
	}
	if len(edges) == 0 {
		return nil
	}

	// Slab boundaries: every distinct endpoint height.
	ys := make([]float64, 0, len(edges)*2)
	for i := range edges {
		ys = append(ys, edges[i].y0, edges[i].y1)
	}
	sort.Float64s(ys)
	ys = dedupeFloat64s(ys)

	active := make([]*fillEdge, 0, len(edges))
	inside := func(winding int) bool {
		if opts.Rule == EvenOdd {
			return winding%2 != 0
		}
		return winding != 0
	}

	for i := 0; i+1 < len(ys); i++ {
		ya, yb := ys[i], ys[i+1]
		if yb <= ya {
			continue
		}
		ym := 0.5 * (ya + yb)

		active = active[:0]
		for j := range edges {
			e := &edges[j]
			if e.y0 <= ym && ym < e.y1 {
				e.xa = e.xAt(ya)
				e.xb = e.xAt(yb)
				e.xm = e.xAt(ym)
				active = append(active, e)
			}
		}
		if len(active) < 2 {
			continue
		}
		sort.Slice(active, func(a, b int) bool {
			return active[a].xm < active[b].xm
		})

		winding := 0
		var left *fillEdge
		for _, e := range active {
			was := inside(winding)
			winding += e.wind
			now := inside(winding)
			switch {
			case !was && now:
				left = e
			case was && !now && left != nil:
				emitTrapezoid(sink, left, e, ya, yb)
				left = nil
			}
		}
	}
	return nil
}

// emitTrapezoid emits the slab span between edges l and r as two triangles.
// Degenerate spans with no area are skipped.
func emitTrapezoid(sink Sink, l, r *fillEdge, ya, yb float64) {
	if r.xa-l.xa <= 0 && r.xb-l.xb <= 0 {
		return
	}
	v0 := sink.AddVertex(float32(l.xa), float32(ya))
	v1 := sink.AddVertex(float32(r.xa), float32(ya))
	v2 := sink.AddVertex(float32(r.xb), float32(yb))
	v3 := sink.AddVertex(float32(l.xb), float32(yb))
	sink.AddTriangle(v0, v1, v2)
	sink.AddTriangle(v0, v2, v3)
}

// dedupeFloat64s removes adjacent duplicates from a sorted slice in place.
func dedupeFloat64s(s []float64) []float64 {
	out := s[:0]
	for i, v := range s {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
