// Package soft is a software implementation of the hwdraw GPU capability
// interface. It rasterizes submitted triangles into an in-memory pixmap,
// evaluating the same paint, gradient, and mask semantics as the generated
// shaders. It backs headless rendering and the package tests.
package soft

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/hwdraw"
)

type textureData struct {
	width  int
	height int
	pix    []byte // RGBA, premultiplied
	interp hwdraw.InterpolationMode
	repeat hwdraw.RepeatStrategy
}

type bufferData struct {
	vertices []hwdraw.Vertex
	indices  []uint32
}

type programData struct {
	module   hwdraw.ShaderModule
	uniforms map[string]hwdraw.UniformID
	names    map[hwdraw.UniformID]string
}

// Context is a software render target implementing hwdraw.GPUContext.
type Context struct {
	width  int
	height int
	pix    []uint8 // RGBA, premultiplied

	textures map[hwdraw.TextureID]*textureData
	buffers  map[hwdraw.BufferID]*bufferData
	programs map[hwdraw.ProgramID]*programData
	nextID   uint64

	draws   int
	flushes int
}

// New creates a software context with a width x height target.
func New(width, height int) *Context {
	return &Context{
		width:    width,
		height:   height,
		pix:      make([]uint8, width*height*4),
		textures: make(map[hwdraw.TextureID]*textureData),
		buffers:  make(map[hwdraw.BufferID]*bufferData),
		programs: make(map[hwdraw.ProgramID]*programData),
	}
}

// Pixels returns the premultiplied RGBA target buffer.
func (c *Context) Pixels() []uint8 { return c.pix }

// At returns the premultiplied RGBA pixel at (x, y).
func (c *Context) At(x, y int) [4]uint8 {
	i := (y*c.width + x) * 4
	return [4]uint8{c.pix[i], c.pix[i+1], c.pix[i+2], c.pix[i+3]}
}

// DrawCount returns how many draw operations have executed.
func (c *Context) DrawCount() int { return c.draws }

// FlushCount returns how many flushes have executed.
func (c *Context) FlushCount() int { return c.flushes }

func (c *Context) id() uint64 {
	c.nextID++
	return c.nextID
}

// Clear implements hwdraw.GPUContext.
func (c *Context) Clear(color hwdraw.RGBA) {
	b := color.Bytes()
	a := float64(b[3]) / 255
	pm := [4]uint8{
		uint8(float64(b[0]) * a),
		uint8(float64(b[1]) * a),
		uint8(float64(b[2]) * a),
		b[3],
	}
	for i := 0; i < len(c.pix); i += 4 {
		c.pix[i] = pm[0]
		c.pix[i+1] = pm[1]
		c.pix[i+2] = pm[2]
		c.pix[i+3] = pm[3]
	}
}

// Flush implements hwdraw.GPUContext. All work is synchronous, so only the
// counter advances.
func (c *Context) Flush() error {
	c.flushes++
	return nil
}

// CreateTexture implements hwdraw.GPUContext.
func (c *Context) CreateTexture(interp hwdraw.InterpolationMode, repeat hwdraw.RepeatStrategy) (hwdraw.TextureID, error) {
	id := hwdraw.TextureID(c.id())
	c.textures[id] = &textureData{interp: interp, repeat: repeat}
	return id, nil
}

// DeleteTexture implements hwdraw.GPUContext.
func (c *Context) DeleteTexture(id hwdraw.TextureID) {
	delete(c.textures, id)
}

// WriteTexture implements hwdraw.GPUContext.
func (c *Context) WriteTexture(id hwdraw.TextureID, width, height int, format hwdraw.ImageFormat, data []byte) error {
	t, ok := c.textures[id]
	if !ok {
		return fmt.Errorf("soft: unknown texture %d", id)
	}
	if len(data) < width*height*format.Bytes() {
		return fmt.Errorf("soft: texture data too short")
	}
	t.width, t.height = width, height
	t.pix = make([]byte, width*height*4)
	writePixels(t.pix, data, width*height, format)
	return nil
}

// WriteSubtexture implements hwdraw.GPUContext.
func (c *Context) WriteSubtexture(id hwdraw.TextureID, x, y, width, height int, format hwdraw.ImageFormat, data []byte) error {
	t, ok := c.textures[id]
	if !ok {
		return fmt.Errorf("soft: unknown texture %d", id)
	}
	if x < 0 || y < 0 || x+width > t.width || y+height > t.height {
		return fmt.Errorf("soft: subtexture out of bounds")
	}
	for row := 0; row < height; row++ {
		dst := t.pix[((y+row)*t.width+x)*4:]
		src := data[row*width*format.Bytes():]
		writePixels(dst, src, width, format)
	}
	return nil
}

func writePixels(dst, src []byte, pixels int, format hwdraw.ImageFormat) {
	if format == hwdraw.FormatGray8 {
		for i := 0; i < pixels; i++ {
			g := src[i]
			dst[i*4+0] = g
			dst[i*4+1] = g
			dst[i*4+2] = g
			dst[i*4+3] = g
		}
		return
	}
	copy(dst[:pixels*4], src[:pixels*4])
}

// SetTextureInterpolation implements hwdraw.GPUContext.
func (c *Context) SetTextureInterpolation(id hwdraw.TextureID, interp hwdraw.InterpolationMode) {
	if t, ok := c.textures[id]; ok {
		t.interp = interp
	}
}

// MaxTextureSize implements hwdraw.GPUContext.
func (c *Context) MaxTextureSize() (int, int) {
	return 4096, 4096
}

// CreateVertexBuffer implements hwdraw.GPUContext.
func (c *Context) CreateVertexBuffer() (hwdraw.BufferID, error) {
	id := hwdraw.BufferID(c.id())
	c.buffers[id] = &bufferData{}
	return id, nil
}

// DeleteVertexBuffer implements hwdraw.GPUContext.
func (c *Context) DeleteVertexBuffer(id hwdraw.BufferID) {
	delete(c.buffers, id)
}

// WriteVertices implements hwdraw.GPUContext.
func (c *Context) WriteVertices(id hwdraw.BufferID, vertices []hwdraw.Vertex, indices []uint32) error {
	b, ok := c.buffers[id]
	if !ok {
		return fmt.Errorf("soft: unknown buffer %d", id)
	}
	b.vertices = append(b.vertices[:0], vertices...)
	b.indices = append(b.indices[:0], indices...)
	return nil
}

// CreateProgram implements hwdraw.GPUContext. The module's WGSL is not
// compiled; draws interpret the permutation directly.
func (c *Context) CreateProgram(module hwdraw.ShaderModule) (hwdraw.ProgramID, error) {
	id := hwdraw.ProgramID(c.id())
	c.programs[id] = &programData{
		module:   module,
		uniforms: make(map[string]hwdraw.UniformID),
		names:    make(map[hwdraw.UniformID]string),
	}
	return id, nil
}

// DeleteProgram implements hwdraw.GPUContext.
func (c *Context) DeleteProgram(id hwdraw.ProgramID) {
	delete(c.programs, id)
}

// UniformLocation implements hwdraw.GPUContext.
func (c *Context) UniformLocation(id hwdraw.ProgramID, name string) (hwdraw.UniformID, error) {
	p, ok := c.programs[id]
	if !ok {
		return 0, fmt.Errorf("soft: unknown program %d", id)
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc, nil
	}
	loc := hwdraw.UniformID(c.id())
	p.uniforms[name] = loc
	p.names[loc] = name
	return loc, nil
}

// Draw implements hwdraw.GPUContext, rasterizing the indexed triangles
// with the permutation's paint and mask semantics.
func (c *Context) Draw(op hwdraw.DrawOp) error {
	buf, ok := c.buffers[op.Buffer]
	if !ok {
		return fmt.Errorf("soft: unknown buffer %d", op.Buffer)
	}
	prog, ok := c.programs[op.Program]
	if !ok {
		return fmt.Errorf("soft: unknown program %d", op.Program)
	}
	n := op.IndexCount
	if n <= 0 || n > len(buf.indices) {
		n = len(buf.indices)
	}

	uniforms := make(map[string][9]float32, len(op.Uniforms))
	for _, u := range op.Uniforms {
		if name, ok := prog.names[u.Location]; ok {
			uniforms[name] = u.Value
		}
	}

	sh := shade{
		prog:     prog,
		uniforms: uniforms,
		paint:    c.textures[op.PaintTexture],
		mask:     c.textures[op.MaskTexture],
		toMask:   strings.HasSuffix(prog.module.Label, "/mask-layer"),
	}

	c.draws++
	for i := 0; i+2 < n; i += 3 {
		c.triangle(op, &sh,
			buf.vertices[buf.indices[i]],
			buf.vertices[buf.indices[i+1]],
			buf.vertices[buf.indices[i+2]])
	}
	return nil
}

// apply transforms a user-space position by the draw's column-major mat3.
func apply(m [9]float32, x, y float32) (float32, float32) {
	return m[0]*x + m[3]*y + m[6], m[1]*x + m[4]*y + m[7]
}

func (c *Context) triangle(op hwdraw.DrawOp, sh *shade, v0, v1, v2 hwdraw.Vertex) {
	x0, y0 := apply(op.Transform, v0.Pos[0], v0.Pos[1])
	x1, y1 := apply(op.Transform, v1.Pos[0], v1.Pos[1])
	x2, y2 := apply(op.Transform, v2.Pos[0], v2.Pos[1])

	area := (x1-x0)*(y2-y0) - (x2-x0)*(y1-y0)
	if area == 0 {
		return
	}

	minX := int(math.Floor(float64(min3(x0, x1, x2))))
	maxX := int(math.Ceil(float64(max3(x0, x1, x2))))
	minY := int(math.Floor(float64(min3(y0, y1, y2))))
	maxY := int(math.Ceil(float64(max3(y0, y1, y2))))
	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, c.width)
	maxY = min(maxY, c.height)

	for py := minY; py < maxY; py++ {
		for px := minX; px < maxX; px++ {
			fx := float32(px) + 0.5
			fy := float32(py) + 0.5

			w0 := ((x1-fx)*(y2-fy) - (x2-fx)*(y1-fy)) / area
			w1 := ((x2-fx)*(y0-fy) - (x0-fx)*(y2-fy)) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			src := sh.fragment(v0, v1, v2, w0, w1, w2, fx, fy)
			if src[3] <= 0 && !sh.toMask {
				continue
			}
			c.blend(px, py, src)
		}
	}
}

// blend composites a premultiplied source color src-over into the target.
func (c *Context) blend(x, y int, src [4]float32) {
	i := (y*c.width + x) * 4
	inv := 1 - src[3]
	for ch := 0; ch < 4; ch++ {
		v := src[ch]*255 + float32(c.pix[i+ch])*inv
		if v > 255 {
			v = 255
		}
		c.pix[i+ch] = uint8(v + 0.5)
	}
}

func min3(a, b, c float32) float32 { return minf(a, minf(b, c)) }
func max3(a, b, c float32) float32 { return maxf(a, maxf(b, c)) }

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
