package hwdraw

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing, starting a new subpath.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path represents a vector path built from move/line/curve/close commands.
type Path struct {
	elements []PathElement
	current  Point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.current = pt
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: Pt(x, y)})
	p.current = Pt(x, y)
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    Pt(x, y),
	})
	p.current = Pt(x, y)
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
}

// Elements returns the path's element sequence. The slice is owned by the
// path and must not be modified.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// Clear removes all elements, retaining capacity for reuse.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.current = Point{}
}

// Transform returns a copy of the path with m applied to every point.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{elements: make([]PathElement, len(p.elements))}
	for i, el := range p.elements {
		switch e := el.(type) {
		case MoveTo:
			out.elements[i] = MoveTo{Point: m.TransformPoint(e.Point)}
		case LineTo:
			out.elements[i] = LineTo{Point: m.TransformPoint(e.Point)}
		case QuadTo:
			out.elements[i] = QuadTo{
				Control: m.TransformPoint(e.Control),
				Point:   m.TransformPoint(e.Point),
			}
		case CubicTo:
			out.elements[i] = CubicTo{
				Control1: m.TransformPoint(e.Control1),
				Control2: m.TransformPoint(e.Control2),
				Point:    m.TransformPoint(e.Point),
			}
		case Close:
			out.elements[i] = e
		}
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the path's control
// polygon. Curve control points are included, so the box may be slightly
// larger than the exact curve bounds.
func (p *Path) Bounds() Rect {
	first := true
	var r Rect
	grow := func(pt Point) {
		if first {
			r = Rect{X0: pt.X, Y0: pt.Y, X1: pt.X, Y1: pt.Y}
			first = false
			return
		}
		if pt.X < r.X0 {
			r.X0 = pt.X
		}
		if pt.X > r.X1 {
			r.X1 = pt.X
		}
		if pt.Y < r.Y0 {
			r.Y0 = pt.Y
		}
		if pt.Y > r.Y1 {
			r.Y1 = pt.Y
		}
	}
	for _, el := range p.elements {
		switch e := el.(type) {
		case MoveTo:
			grow(e.Point)
		case LineTo:
			grow(e.Point)
		case QuadTo:
			grow(e.Control)
			grow(e.Point)
		case CubicTo:
			grow(e.Control1)
			grow(e.Control2)
			grow(e.Point)
		}
	}
	return r
}
