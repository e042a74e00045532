package hwdraw

// uvWhite is the UV sentinel pointing at the center of the 1x1 white
// texture. Non-textured paints carry it so every shader permutation can
// sample a paint texture unconditionally.
var uvWhite = [2]float32{0.5, 0.5}

// GradientStop is one color stop of a gradient, with Offset in [0, 1].
type GradientStop struct {
	Offset float64
	Color  RGBA
}

// Brush describes how filled or stroked geometry is painted.
type Brush interface {
	isBrush()
}

// SolidBrush paints a single color.
type SolidBrush struct {
	Color RGBA
}

func (SolidBrush) isBrush() {}

// NewSolidBrush creates a solid color brush.
func NewSolidBrush(c RGBA) SolidBrush {
	return SolidBrush{Color: c}
}

// LinearGradientBrush blends between exactly two stops along the segment
// from Start to End, in user space. Gradients with more than two stops are
// not supported.
type LinearGradientBrush struct {
	Start Point
	End   Point
	Stops []GradientStop
}

func (LinearGradientBrush) isBrush() {}

// RadialGradientBrush blends between exactly two stops by distance from
// Center, reaching the last stop at Radius.
type RadialGradientBrush struct {
	Center Point
	Radius float64
	Stops  []GradientStop
}

func (RadialGradientBrush) isBrush() {}

// SweepGradientBrush sweeps stops around a center angle. Rendering it is
// not implemented; drawing with it records ErrUnimplemented.
type SweepGradientBrush struct {
	Center Point
	Stops  []GradientStop
}

func (SweepGradientBrush) isBrush() {}

// ImageBrush paints with an image texture. Transform maps user-space
// (destination) points into image pixel coordinates.
type ImageBrush struct {
	Image     *Image
	Transform Matrix
	Interp    InterpolationMode
}

func (ImageBrush) isBrush() {}

// paint is a resolved brush: everything a draw needs beyond geometry.
type paint struct {
	kind    PaintKind
	color   [4]uint8  // per-vertex color
	texture TextureID // paint texture; zero means the white texture

	// uv maps a user-space vertex position to texture coordinates.
	// nil means the white sentinel.
	uv func(x, y float32) [2]float32

	// gradient uniforms, meaning depends on kind
	gradA      [2]float32 // start or center
	gradB      [2]float32 // end (linear)
	gradRadius float32    // radius (radial)
	gradColor0 [4]float32
	gradColor1 [4]float32
}

var white = [4]uint8{255, 255, 255, 255}

// resolvePaint validates a brush and extracts its paint parameters.
// Unsupported brushes return the matching sentinel error before any
// geometry is produced.
func resolvePaint(b Brush) (paint, error) {
	switch br := b.(type) {
	case SolidBrush:
		return paint{kind: PaintSolid, color: br.Color.Bytes()}, nil

	case LinearGradientBrush:
		c0, c1, err := twoStops(br.Stops)
		if err != nil {
			return paint{}, err
		}
		return paint{
			kind:       PaintLinearGradient,
			color:      white,
			gradA:      [2]float32{float32(br.Start.X), float32(br.Start.Y)},
			gradB:      [2]float32{float32(br.End.X), float32(br.End.Y)},
			gradColor0: c0,
			gradColor1: c1,
		}, nil

	case RadialGradientBrush:
		c0, c1, err := twoStops(br.Stops)
		if err != nil {
			return paint{}, err
		}
		if br.Radius <= 0 {
			return paint{}, ErrUnsupported
		}
		return paint{
			kind:       PaintRadialGradient,
			color:      white,
			gradA:      [2]float32{float32(br.Center.X), float32(br.Center.Y)},
			gradRadius: float32(br.Radius),
			gradColor0: c0,
			gradColor1: c1,
		}, nil

	case SweepGradientBrush:
		return paint{}, ErrUnimplemented

	case ImageBrush:
		if br.Image == nil || br.Image.tex == nil {
			return paint{}, ErrUnsupported
		}
		m := br.Transform
		w := float32(br.Image.width)
		h := float32(br.Image.height)
		return paint{
			kind:    PaintTextured,
			color:   white,
			texture: br.Image.tex.id,
			uv: func(x, y float32) [2]float32 {
				p := m.TransformPoint(Pt(float64(x), float64(y)))
				return [2]float32{float32(p.X) / w, float32(p.Y) / h}
			},
		}, nil
	}
	return paint{}, ErrUnsupported
}

// twoStops converts a two-stop list into premultiplied float colors.
func twoStops(stops []GradientStop) (c0, c1 [4]float32, err error) {
	if len(stops) != 2 {
		return c0, c1, ErrUnsupported
	}
	return premul(stops[0].Color), premul(stops[1].Color), nil
}

func premul(c RGBA) [4]float32 {
	a := float32(c.A)
	return [4]float32{
		float32(c.R) * a,
		float32(c.G) * a,
		float32(c.B) * a,
		a,
	}
}
