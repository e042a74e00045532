package hwdraw

import "math"

// Rect is an axis-aligned rectangle given by its min and max corners.
// It is used both for device-space regions and for normalized texture
// coordinates in 0..1 atlas space.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRect creates a Rect from two corner points, normalizing so that
// X0 <= X1 and Y0 <= Y1.
func NewRect(x0, y0, x1, y1 float64) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// RectFromSize creates a Rect from an origin and a size.
func RectFromSize(x, y, w, h float64) Rect {
	return NewRect(x, y, x+w, y+h)
}

// Width returns the rectangle width.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the rectangle height.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// IsEmpty reports whether the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Intersect returns the intersection of two rectangles. The result may be
// empty.
func (r Rect) Intersect(s Rect) Rect {
	out := Rect{
		X0: math.Max(r.X0, s.X0),
		Y0: math.Max(r.Y0, s.Y0),
		X1: math.Min(r.X1, s.X1),
		Y1: math.Min(r.Y1, s.Y1),
	}
	return out
}

// Overlaps reports whether two rectangles share any interior area.
func (r Rect) Overlaps(s Rect) bool {
	return !r.Intersect(s).IsEmpty()
}

// Path returns the rectangle as a closed path.
func (r Rect) Path() *Path {
	p := NewPath()
	p.MoveTo(r.X0, r.Y0)
	p.LineTo(r.X1, r.Y0)
	p.LineTo(r.X1, r.Y1)
	p.LineTo(r.X0, r.Y1)
	p.Close()
	return p
}
