package hwdraw

import (
	"github.com/gogpu/hwdraw/internal/raster"
	"github.com/gogpu/hwdraw/internal/tess"
)

// mask is a clip mask: a viewport-sized CPU coverage buffer paired with a
// GPU texture. The coverage buffer is authoritative; the texture upload is
// deferred until the first masked draw after a change.
//
// Masks are shared by reference across saved render states and reference
// counted, with the last holder releasing the texture. Clipping through a
// shared mask clones it first (copy on write), so restoring an outer state
// sees the mask as it was when saved.
type mask struct {
	tex      *texture
	coverage []uint8
	width    int
	height   int
	dirty    bool
	refs     int
}

// newMask creates an all-opaque mask covering the viewport.
func newMask(ctx GPUContext, width, height int) (*mask, error) {
	tex, err := newTexture(ctx, InterpNearest, RepeatClamp)
	if err != nil {
		return nil, err
	}
	cov := make([]uint8, width*height)
	for i := range cov {
		cov[i] = 255
	}
	return &mask{
		tex:      tex,
		coverage: cov,
		width:    width,
		height:   height,
		dirty:    true,
		refs:     1,
	}, nil
}

func (m *mask) retain() *mask {
	m.refs++
	return m
}

func (m *mask) release() {
	if m == nil {
		return
	}
	m.refs--
	if m.refs <= 0 {
		m.tex.release()
	}
}

// shared reports whether another render state also holds this mask.
func (m *mask) shared() bool {
	return m.refs > 1
}

// clone copies the coverage buffer into a fresh mask with its own texture.
func (m *mask) clone(ctx GPUContext) (*mask, error) {
	tex, err := newTexture(ctx, InterpNearest, RepeatClamp)
	if err != nil {
		return nil, err
	}
	cov := make([]uint8, len(m.coverage))
	copy(cov, m.coverage)
	return &mask{
		tex:      tex,
		coverage: cov,
		width:    m.width,
		height:   m.height,
		dirty:    true,
		refs:     1,
	}, nil
}

// intersect rasterizes device-space subpaths with the even-odd rule and
// multiplies the result into the coverage buffer.
func (m *mask) intersect(polys [][]tess.Point) {
	r := raster.NewRasterizer(m.width, m.height)
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		pts := make([][2]float32, len(poly))
		for i, p := range poly {
			pts[i] = [2]float32{p.X, p.Y}
		}
		r.AddPolygon(pts)
	}
	raster.Intersect(m.coverage, r.Rasterize(raster.EvenOdd))
	m.dirty = true
}

// upload pushes the coverage buffer to the GPU texture if it changed since
// the last upload. Coverage expands to RGBA with every channel set to the
// coverage value; shaders sample the green channel.
func (m *mask) upload() error {
	if !m.dirty {
		return nil
	}
	pixels := make([]byte, len(m.coverage)*4)
	for i, c := range m.coverage {
		pixels[i*4+0] = c
		pixels[i*4+1] = c
		pixels[i*4+2] = c
		pixels[i*4+3] = c
	}
	if err := m.tex.ctx.WriteTexture(m.tex.id, m.width, m.height, FormatRGBA8, pixels); err != nil {
		return backendErr("upload clip mask", err)
	}
	m.dirty = false
	return nil
}
