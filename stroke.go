package hwdraw

import "github.com/gogpu/hwdraw/internal/tess"

// FillRule determines how self-intersecting paths are filled.
type FillRule uint8

const (
	// FillRuleNonZero fills where the winding number is nonzero.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd fills where the crossing count is odd.
	FillRuleEvenOdd
)

func (r FillRule) tess() tess.FillRule {
	if r == FillRuleEvenOdd {
		return tess.EvenOdd
	}
	return tess.NonZero
}

// LineCap is the shape at the ends of open stroked subpaths.
type LineCap uint8

const (
	// CapButt ends the stroke flat at the endpoint.
	CapButt LineCap = iota
	// CapSquare extends the stroke past the endpoint by half its width.
	CapSquare
	// CapRound caps the stroke with a semicircle.
	CapRound
)

func (c LineCap) tess() tess.LineCap {
	switch c {
	case CapSquare:
		return tess.CapSquare
	case CapRound:
		return tess.CapRound
	}
	return tess.CapButt
}

// LineJoin is the shape at corners between stroke segments.
type LineJoin uint8

const (
	// JoinMiter extends the outer edges to a point, limited by MiterLimit.
	JoinMiter LineJoin = iota
	// JoinBevel cuts the corner with a straight edge.
	JoinBevel
	// JoinRound rounds the corner with an arc.
	JoinRound
)

func (j LineJoin) tess() tess.LineJoin {
	switch j {
	case JoinBevel:
		return tess.JoinBevel
	case JoinRound:
		return tess.JoinRound
	}
	return tess.JoinMiter
}

// StrokeStyle describes how paths are stroked. The zero value strokes
// nothing; use DefaultStrokeStyle for sensible defaults.
type StrokeStyle struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64

	// Dash is the on/off dash pattern in user-space units. Dashing is
	// not supported; a non-empty pattern makes Stroke record
	// ErrUnsupported without emitting geometry.
	Dash       []float64
	DashOffset float64
}

// DefaultStrokeStyle returns a 1-unit-wide stroke with butt caps and miter
// joins.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{
		Width:      1,
		Cap:        CapButt,
		Join:       JoinMiter,
		MiterLimit: 10,
	}
}

func (s StrokeStyle) tess(tolerance float32) tess.StrokeOptions {
	opts := tess.StrokeOptions{
		Width:      float32(s.Width),
		Cap:        s.Cap.tess(),
		Join:       s.Join.tess(),
		MiterLimit: float32(s.MiterLimit),
		Tolerance:  tolerance,
	}
	if len(s.Dash) > 0 {
		opts.Dash = make([]float32, len(s.Dash))
		for i, d := range s.Dash {
			opts.Dash[i] = float32(d)
		}
	}
	return opts
}
