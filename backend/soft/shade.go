package soft

import (
	"math"

	"github.com/gogpu/hwdraw"
)

// shade evaluates the fragment stage of one draw: paint color, gradient
// mixing, and mask multiplication, mirroring the generated shader
// permutations.
type shade struct {
	prog     *programData
	uniforms map[string][9]float32
	paint    *textureData
	mask     *textureData
	toMask   bool
}

func (s *shade) fragment(v0, v1, v2 hwdraw.Vertex, w0, w1, w2, fx, fy float32) [4]float32 {
	wx := w0*v0.Pos[0] + w1*v1.Pos[0] + w2*v2.Pos[0]
	wy := w0*v0.Pos[1] + w1*v1.Pos[1] + w2*v2.Pos[1]

	var col [4]float32
	switch {
	case s.has("grad_start"):
		col = s.linearGradient(wx, wy)
	case s.has("grad_center"):
		col = s.radialGradient(wx, wy)
	default:
		col = s.paintColor(v0, v1, v2, w0, w1, w2)
	}

	if mm, ok := s.uniforms["mask_mvp"]; ok {
		mu, mv := apply(mm, wx, wy)
		m := sample(s.mask, mu, mv)
		a := m[1] // green channel
		col[0] *= a
		col[1] *= a
		col[2] *= a
		col[3] *= a
	}

	if s.toMask {
		a := col[3]
		return [4]float32{a, a, a, a}
	}
	return col
}

func (s *shade) has(name string) bool {
	_, ok := s.uniforms[name]
	return ok
}

// paintColor samples the paint texture (premultiplied) and multiplies by
// the interpolated straight-alpha vertex color.
func (s *shade) paintColor(v0, v1, v2 hwdraw.Vertex, w0, w1, w2 float32) [4]float32 {
	u := w0*v0.UV[0] + w1*v1.UV[0] + w2*v2.UV[0]
	v := w0*v0.UV[1] + w1*v1.UV[1] + w2*v2.UV[1]
	tex := sample(s.paint, u, v)

	var vc [4]float32
	for ch := 0; ch < 4; ch++ {
		vc[ch] = (w0*float32(v0.Color[ch]) + w1*float32(v1.Color[ch]) + w2*float32(v2.Color[ch])) / 255
	}

	a := vc[3]
	return [4]float32{
		tex[0] * vc[0] * a,
		tex[1] * vc[1] * a,
		tex[2] * vc[2] * a,
		tex[3] * a,
	}
}

func (s *shade) linearGradient(x, y float32) [4]float32 {
	start := s.uniforms["grad_start"]
	end := s.uniforms["grad_end"]
	ax := end[0] - start[0]
	ay := end[1] - start[1]
	den := ax*ax + ay*ay
	var t float32
	if den > 0 {
		t = clamp01(((x-start[0])*ax + (y-start[1])*ay) / den)
	}
	return s.mixStops(t)
}

func (s *shade) radialGradient(x, y float32) [4]float32 {
	center := s.uniforms["grad_center"]
	radius := s.uniforms["grad_radius"][0]
	var t float32
	if radius > 0 {
		dx := x - center[0]
		dy := y - center[1]
		t = clamp01(sqrt32(dx*dx+dy*dy) / radius)
	}
	return s.mixStops(t)
}

func (s *shade) mixStops(t float32) [4]float32 {
	c0 := s.uniforms["grad_color0"]
	c1 := s.uniforms["grad_color1"]
	var out [4]float32
	for ch := 0; ch < 4; ch++ {
		out[ch] = c0[ch] + (c1[ch]-c0[ch])*t
	}
	return out
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// sample reads a texture at normalized coordinates with the texture's
// interpolation and clamp addressing. A nil or empty texture samples
// opaque white.
func sample(t *textureData, u, v float32) [4]float32 {
	if t == nil || t.width == 0 || t.height == 0 {
		return [4]float32{1, 1, 1, 1}
	}
	x := u * float32(t.width)
	y := v * float32(t.height)

	if t.interp == hwdraw.InterpNearest {
		return texel(t, int(x), int(y))
	}

	x -= 0.5
	y -= 0.5
	ix, iy := int(math.Floor(float64(x))), int(math.Floor(float64(y)))
	fx, fy := x-float32(ix), y-float32(iy)

	c00 := texel(t, ix, iy)
	c10 := texel(t, ix+1, iy)
	c01 := texel(t, ix, iy+1)
	c11 := texel(t, ix+1, iy+1)

	var out [4]float32
	for ch := 0; ch < 4; ch++ {
		top := c00[ch] + (c10[ch]-c00[ch])*fx
		bot := c01[ch] + (c11[ch]-c01[ch])*fx
		out[ch] = top + (bot-top)*fy
	}
	return out
}

func texel(t *textureData, x, y int) [4]float32 {
	x = clampi(x, 0, t.width-1)
	y = clampi(y, 0, t.height-1)
	i := (y*t.width + x) * 4
	return [4]float32{
		float32(t.pix[i]) / 255,
		float32(t.pix[i+1]) / 255,
		float32(t.pix[i+2]) / 255,
		float32(t.pix[i+3]) / 255,
	}
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
