package hwdraw

import (
	"github.com/gogpu/hwdraw/internal/tess"
)

// renderState is one entry of the save/restore stack. The transform is
// copied on Save; the mask is shared by reference until a Clip modifies it.
type renderState struct {
	transform Matrix
	mask      *mask
}

// Context draws one frame into a render target. It is created from a
// Source and must be used from the goroutine that owns the Source.
//
// Drawing methods do not return errors; the first failure is recorded and
// later calls degrade to best-effort no-ops. Status drains the recorded
// error.
type Context struct {
	source *Source
	ctx    GPUContext

	width  int
	height int

	states []renderState
	status error
}

func newContext(s *Source, width, height int) *Context {
	return &Context{
		source: s,
		ctx:    s.ctx,
		width:  width,
		height: height,
		states: []renderState{{transform: Identity()}},
	}
}

// Size returns the render target dimensions in device pixels.
func (c *Context) Size() (width, height int) {
	return c.width, c.height
}

// recordErr stores the first error encountered since the last Status call.
func (c *Context) recordErr(err error) {
	if err == nil {
		return
	}
	if c.status == nil {
		c.status = err
	}
	Logger().Debug("draw error recorded", "err", err)
}

// Status returns the first error recorded by drawing calls since the
// previous Status call, and resets the accumulator.
func (c *Context) Status() error {
	err := c.status
	c.status = nil
	return err
}

func (c *Context) top() *renderState {
	return &c.states[len(c.states)-1]
}

// Save pushes a copy of the current render state. The active clip mask is
// shared with the saved entry, not copied.
func (c *Context) Save() error {
	st := c.top()
	next := renderState{transform: st.transform}
	if st.mask != nil {
		next.mask = st.mask.retain()
	}
	c.states = append(c.states, next)
	return nil
}

// Restore pops the render state pushed by the matching Save. Restoring at
// the base of the stack fails with ErrUnbalancedStack and leaves the base
// state intact.
func (c *Context) Restore() error {
	if len(c.states) <= 1 {
		return ErrUnbalancedStack
	}
	st := c.top()
	st.mask.release()
	c.states = c.states[:len(c.states)-1]
	return nil
}

// Transform left-multiplies the current transform: a point is transformed
// by the existing transform first, then by m.
func (c *Context) Transform(m Matrix) {
	st := c.top()
	st.transform = m.Multiply(st.transform)
}

// SetTransform replaces the current transform.
func (c *Context) SetTransform(m Matrix) {
	c.top().transform = m
}

// CurrentTransform returns the active transform.
func (c *Context) CurrentTransform() Matrix {
	return c.top().transform
}

// tolerance returns the flattening tolerance in user-space units.
func (c *Context) tolerance() float32 {
	return float32(c.source.opts.Tolerance)
}

// Fill fills a path with a brush under the current transform and clip.
func (c *Context) Fill(path *Path, brush Brush, rule FillRule) {
	p, err := resolvePaint(brush)
	if err != nil {
		c.recordErr(err)
		return
	}
	sink := &vertexSink{src: c.source, color: p.color, uv: p.uv}
	opts := tess.FillOptions{Rule: rule.tess(), Tolerance: c.tolerance()}
	if err := tess.Fill(pathEvents(path), opts, sink); err != nil {
		c.source.resetGeometry()
		c.recordErr(err)
		return
	}
	c.recordErr(c.submit(p, TargetColor))
}

// FillRect fills an axis-aligned rectangle.
func (c *Context) FillRect(r Rect, brush Brush) {
	c.Fill(r.Path(), brush, FillRuleNonZero)
}

// Stroke strokes a path with a brush under the current transform and
// clip. Dash patterns are unsupported and record ErrUnsupported without
// emitting geometry.
func (c *Context) Stroke(path *Path, brush Brush, style StrokeStyle) {
	p, err := resolvePaint(brush)
	if err != nil {
		c.recordErr(err)
		return
	}
	sink := &vertexSink{src: c.source, color: p.color, uv: p.uv}
	if err := tess.Stroke(pathEvents(path), style.tess(c.tolerance()), sink); err != nil {
		c.source.resetGeometry()
		if err == tess.ErrUnsupportedStyle {
			err = ErrUnsupported
		}
		c.recordErr(err)
		return
	}
	c.recordErr(c.submit(p, TargetColor))
}

// Clear fills a region with a color, ignoring the current transform. With
// no region and no active clip the backend's full-target clear is used.
func (c *Context) Clear(region *Rect, color RGBA) {
	st := c.top()
	if region == nil && st.mask == nil {
		c.ctx.Clear(color)
		return
	}
	r := RectFromSize(0, 0, float64(c.width), float64(c.height))
	if region != nil {
		r = *region
	}
	saved := st.transform
	st.transform = Identity()
	c.FillRect(r, NewSolidBrush(color))
	c.top().transform = saved
}

// Finish flushes pending backend work for the frame. The save stack must
// be balanced; any leftover entries are released.
func (c *Context) Finish() error {
	for len(c.states) > 1 {
		if err := c.Restore(); err != nil {
			break
		}
	}
	c.top().mask.release()
	c.top().mask = nil
	if err := c.ctx.Flush(); err != nil {
		return backendErr("flush", err)
	}
	return nil
}

// vertexSink maps tessellator positions to full vertices in the source's
// shared scratch buffers.
type vertexSink struct {
	src   *Source
	color [4]uint8
	uv    func(x, y float32) [2]float32
}

func (s *vertexSink) AddVertex(x, y float32) uint32 {
	v := Vertex{Pos: [2]float32{x, y}, UV: uvWhite, Color: s.color}
	if s.uv != nil {
		v.UV = s.uv(x, y)
	}
	s.src.vertices = append(s.src.vertices, v)
	return uint32(len(s.src.vertices) - 1)
}

func (s *vertexSink) AddTriangle(a, b, c uint32) {
	s.src.indices = append(s.src.indices, a, b, c)
}

// submit uploads the scratch geometry and issues one draw with the paint's
// shader permutation. The scratch buffers are cleared afterwards whether
// or not the draw succeeds.
func (c *Context) submit(p paint, target TargetKind) error {
	src := c.source
	defer src.resetGeometry()
	if len(src.indices) == 0 {
		return nil
	}

	st := c.top()
	maskKind := MaskNone
	maskTex := src.white.id
	if st.mask != nil {
		if err := st.mask.upload(); err != nil {
			return err
		}
		maskKind = MaskTextured
		maskTex = st.mask.tex.id
	}

	prog, err := src.shaders.programFor(ShaderKey{Paint: p.kind, Mask: maskKind, Target: target})
	if err != nil {
		return err
	}

	if err := src.ctx.WriteVertices(src.buffer.id, src.vertices, src.indices); err != nil {
		return backendErr("write vertices", err)
	}

	paintTex := p.texture
	if paintTex == 0 {
		paintTex = src.white.id
	}

	op := DrawOp{
		Buffer:       src.buffer.id,
		Program:      prog.prog.id,
		PaintTexture: paintTex,
		MaskTexture:  maskTex,
		Transform:    st.transform.Mat3(),
		IndexCount:   len(src.indices),
		Viewport:     [2]int{c.width, c.height},
		Uniforms:     c.uniformsFor(prog, p, st),
	}
	if err := src.ctx.Draw(op); err != nil {
		return backendErr("draw", err)
	}
	return nil
}

// uniformsFor resolves the uniform values for one draw. Locations were
// resolved when the program was compiled.
func (c *Context) uniformsFor(prog *shaderProgram, p paint, st *renderState) []Uniform {
	uniforms := make([]Uniform, 0, 7)
	add := func(name string, kind UniformKind, value [9]float32) {
		if loc, ok := prog.uniform(name); ok {
			uniforms = append(uniforms, Uniform{Location: loc, Kind: kind, Value: value})
		}
	}
	vec2 := func(v [2]float32) [9]float32 { return [9]float32{v[0], v[1]} }
	vec4 := func(v [4]float32) [9]float32 { return [9]float32{v[0], v[1], v[2], v[3]} }

	add("mvp", UniformMat3, st.transform.Mat3())
	add("viewport", UniformVec2, [9]float32{float32(c.width), float32(c.height)})

	if st.mask != nil {
		// Mask UVs are device pixels normalized to [0,1].
		mm := Scale(1/float64(st.mask.width), 1/float64(st.mask.height)).Multiply(st.transform)
		add("mask_mvp", UniformMat3, mm.Mat3())
	}

	switch p.kind {
	case PaintLinearGradient:
		add("grad_start", UniformVec2, vec2(p.gradA))
		add("grad_end", UniformVec2, vec2(p.gradB))
		add("grad_color0", UniformVec4, vec4(p.gradColor0))
		add("grad_color1", UniformVec4, vec4(p.gradColor1))
	case PaintRadialGradient:
		add("grad_center", UniformVec2, vec2(p.gradA))
		add("grad_radius", UniformFloat, [9]float32{p.gradRadius})
		add("grad_color0", UniformVec4, vec4(p.gradColor0))
		add("grad_color1", UniformVec4, vec4(p.gradColor1))
	}
	return uniforms
}
