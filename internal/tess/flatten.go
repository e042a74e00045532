package tess

import "math"

// flattenQuad appends line-segment endpoints approximating a quadratic
// Bezier to dst, excluding the start point. Uses recursive de Casteljau
// subdivision: the curve is flat enough when the control point's deviation
// from the chord midpoint is within tolerance.
func flattenQuad(dst []Point, x0, y0, cx, cy, x1, y1, tol float64) []Point {
	midX := 0.25*x0 + 0.5*cx + 0.25*x1
	midY := 0.25*y0 + 0.5*cy + 0.25*y1
	chordMidX := 0.5 * (x0 + x1)
	chordMidY := 0.5 * (y0 + y1)

	dx := midX - chordMidX
	dy := midY - chordMidY

	if dx*dx+dy*dy <= tol*tol {
		return append(dst, Pt(float32(x1), float32(y1)))
	}

	// De Casteljau subdivision at t=0.5
	ax := 0.5 * (x0 + cx)
	ay := 0.5 * (y0 + cy)
	bx := 0.5 * (cx + x1)
	by := 0.5 * (cy + y1)
	mx := 0.5 * (ax + bx)
	my := 0.5 * (ay + by)

	dst = flattenQuad(dst, x0, y0, ax, ay, mx, my, tol)
	return flattenQuad(dst, mx, my, bx, by, x1, y1, tol)
}

// flattenCubic appends line-segment endpoints approximating a cubic Bezier
// to dst, excluding the start point. The flatness test checks both control
// points against the chord; the factor of 16 is the cubic approximation
// error bound.
func flattenCubic(dst []Point, x0, y0, c1x, c1y, c2x, c2y, x1, y1, tol float64) []Point {
	ux := 3*c1x - 2*x0 - x1
	uy := 3*c1y - 2*y0 - y1
	vx := 3*c2x - x0 - 2*x1
	vy := 3*c2y - y0 - 2*y1

	distSq := math.Max(ux*ux+uy*uy, vx*vx+vy*vy)

	if distSq <= 16*tol*tol {
		return append(dst, Pt(float32(x1), float32(y1)))
	}

	// De Casteljau subdivision at t=0.5
	abx := 0.5 * (x0 + c1x)
	aby := 0.5 * (y0 + c1y)
	bcx := 0.5 * (c1x + c2x)
	bcy := 0.5 * (c1y + c2y)
	cdx := 0.5 * (c2x + x1)
	cdy := 0.5 * (c2y + y1)
	abcx := 0.5 * (abx + bcx)
	abcy := 0.5 * (aby + bcy)
	bcdx := 0.5 * (bcx + cdx)
	bcdy := 0.5 * (bcy + cdy)
	mx := 0.5 * (abcx + bcdx)
	my := 0.5 * (abcy + bcdy)

	dst = flattenCubic(dst, x0, y0, abx, aby, abcx, abcy, mx, my, tol)
	return flattenCubic(dst, mx, my, bcdx, bcdy, cdx, cdy, x1, y1, tol)
}

// Flatten converts an event stream into flattened subpaths at the given
// tolerance. Each returned slice is one subpath's vertices; callers that
// fill treat every subpath as closed.
func Flatten(events []Event, tolerance float32) [][]Point {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	lines := flattenEvents(events, tolerance)
	out := make([][]Point, len(lines))
	for i, pl := range lines {
		out[i] = pl.pts
	}
	return out
}

// polyline is one flattened subpath.
type polyline struct {
	pts    []Point
	closed bool
}

// flattenEvents converts an event stream into flattened subpaths. Zero
// length segments are dropped. A Closed end whose last point does not
// coincide with the first gets an explicit closing segment.
func flattenEvents(events []Event, tol float32) []polyline {
	var out []polyline
	var cur []Point
	t := float64(tol)

	push := func(p Point) {
		if n := len(cur); n > 0 && cur[n-1] == p {
			return
		}
		cur = append(cur, p)
	}

	for _, ev := range events {
		switch ev.Kind {
		case KindBegin:
			cur = append([]Point(nil), ev.From)

		case KindLine:
			push(ev.To)

		case KindQuad:
			cur = flattenQuad(cur,
				float64(ev.From.X), float64(ev.From.Y),
				float64(ev.Ctrl1.X), float64(ev.Ctrl1.Y),
				float64(ev.To.X), float64(ev.To.Y), t)

		case KindCubic:
			cur = flattenCubic(cur,
				float64(ev.From.X), float64(ev.From.Y),
				float64(ev.Ctrl1.X), float64(ev.Ctrl1.Y),
				float64(ev.Ctrl2.X), float64(ev.Ctrl2.Y),
				float64(ev.To.X), float64(ev.To.Y), t)

		case KindEnd:
			if len(cur) >= 2 {
				closed := ev.Closed
				if closed && cur[len(cur)-1] == cur[0] {
					// Drop the duplicated endpoint; closure is implied.
					cur = cur[:len(cur)-1]
				}
				out = append(out, polyline{pts: cur, closed: closed})
			}
			cur = nil
		}
	}
	return out
}
