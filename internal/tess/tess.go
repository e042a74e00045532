// Package tess converts path event streams into triangle geometry.
//
// The package exposes two tessellators: Fill, which triangulates the
// interior of a path under a nonzero or even-odd winding rule, and Stroke,
// which triangulates the outline of a path with configurable caps and joins.
// Both flatten Bezier curves to line segments with an adaptive tolerance and
// emit geometry through a caller-supplied Sink, so the caller decides how a
// 2D position becomes a full vertex (UV, color) and where it is stored.
package tess

import "errors"

// ErrUnsupportedStyle is returned when a stroke requests a dash pattern.
// Dashed stroking is deliberately unimplemented.
var ErrUnsupportedStyle = errors.New("tess: dash patterns are not supported")

// Point is a 2D position in device-independent user space.
type Point struct {
	X, Y float32
}

// Pt creates a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// EventKind discriminates path events.
type EventKind uint8

// Path event kinds.
const (
	// KindBegin starts a new subpath at From.
	KindBegin EventKind = iota

	// KindLine is a line segment From -> To.
	KindLine

	// KindQuad is a quadratic Bezier From -> To with control Ctrl1.
	KindQuad

	// KindCubic is a cubic Bezier From -> To with controls Ctrl1, Ctrl2.
	KindCubic

	// KindEnd terminates the current subpath. First and Last carry the
	// subpath endpoints; Closed reports whether the subpath closes back to
	// First (either explicitly or because Last coincides with First).
	KindEnd
)

// Event is one element of a path event stream. Every KindBegin is matched by
// exactly one KindEnd before the stream ends or another KindBegin starts.
type Event struct {
	Kind         EventKind
	From, To     Point // segment endpoints; From doubles as Begin's start
	Ctrl1, Ctrl2 Point // curve control points
	First, Last  Point // subpath endpoints, set on KindEnd
	Closed       bool  // set on KindEnd
}

// Begin creates a subpath start event.
func Begin(at Point) Event {
	return Event{Kind: KindBegin, From: at}
}

// Line creates a line event.
func Line(from, to Point) Event {
	return Event{Kind: KindLine, From: from, To: to}
}

// Quad creates a quadratic curve event.
func Quad(from, ctrl, to Point) Event {
	return Event{Kind: KindQuad, From: from, Ctrl1: ctrl, To: to}
}

// Cubic creates a cubic curve event.
func Cubic(from, c1, c2, to Point) Event {
	return Event{Kind: KindCubic, From: from, Ctrl1: c1, Ctrl2: c2, To: to}
}

// End creates a subpath end event.
func End(first, last Point, closed bool) Event {
	return Event{Kind: KindEnd, First: first, Last: last, Closed: closed}
}

// Sink receives tessellated triangle geometry. AddVertex maps a position to
// a full vertex in the caller's buffer and returns its index; AddTriangle
// appends three previously returned indices. Indices are local to one Fill
// or Stroke call: the first AddVertex of a call returns the call's base
// index.
type Sink interface {
	AddVertex(x, y float32) uint32
	AddTriangle(a, b, c uint32)
}

// FillRule selects the winding rule for Fill.
type FillRule uint8

// Fill rules.
const (
	// NonZero fills regions with a nonzero winding number.
	NonZero FillRule = iota

	// EvenOdd fills regions crossed by an odd number of edges.
	EvenOdd
)

// LineCap selects the shape of stroke endpoints.
type LineCap uint8

// Line caps.
const (
	CapButt LineCap = iota
	CapSquare
	CapRound
)

// LineJoin selects the shape of stroke corners.
type LineJoin uint8

// Line joins.
const (
	JoinMiter LineJoin = iota
	JoinBevel
	JoinRound
)

// DefaultTolerance is the default flattening tolerance in device units.
// The tessellated polyline deviates from the true curve by at most this
// distance.
const DefaultTolerance = 0.25

// FillOptions configures Fill.
type FillOptions struct {
	// Rule is the winding rule. Default NonZero.
	Rule FillRule

	// Tolerance is the curve flattening tolerance.
	// If 0, DefaultTolerance is used.
	Tolerance float32
}

// StrokeOptions configures Stroke.
type StrokeOptions struct {
	// Width is the stroke width. Values <= 0 produce no geometry.
	Width float32

	// Cap is applied at both ends of open subpaths.
	Cap LineCap

	// Join is applied at interior corners.
	Join LineJoin

	// MiterLimit bounds the ratio of miter length to stroke width before a
	// miter join falls back to bevel. If 0, 4 is used.
	MiterLimit float32

	// Dash requests a dash pattern. Non-empty patterns are rejected with
	// ErrUnsupportedStyle before any geometry is emitted.
	Dash []float32

	// Tolerance is the curve flattening tolerance.
	// If 0, DefaultTolerance is used.
	Tolerance float32
}

func (o FillOptions) tolerance() float32 {
	if o.Tolerance <= 0 {
		return DefaultTolerance
	}
	return o.Tolerance
}

func (o StrokeOptions) tolerance() float32 {
	if o.Tolerance <= 0 {
		return DefaultTolerance
	}
	return o.Tolerance
}

func (o StrokeOptions) miterLimit() float32 {
	if o.MiterLimit <= 0 {
		return 4
	}
	return o.MiterLimit
}
