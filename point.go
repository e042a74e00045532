package hwdraw

import "math"

// Point represents a 2D point or vector in user or device space.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (p Point) Normalize() Point {
	length := p.Length()
	if length == 0 {
		return Point{}
	}
	return Point{X: p.X / length, Y: p.Y / length}
}

// coincidentTolerance is the absolute distance, in device units, under which
// two path points are considered the same point. Used when deciding whether
// a subpath is already closed.
const coincidentTolerance = 0.01

// approxEq reports whether a and b are within coincidentTolerance.
func approxEq(a, b float64) bool {
	return math.Abs(a-b) < coincidentTolerance
}

// Coincident reports whether p and q are the same point within the 0.01
// device-unit tolerance used for implicit subpath closing.
func (p Point) Coincident(q Point) bool {
	return approxEq(p.X, q.X) && approxEq(p.Y, q.Y)
}
