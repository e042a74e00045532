package hwdraw

// Opaque backend resource handles. Zero is never a valid handle.
type (
	// TextureID identifies a texture owned by a GPUContext.
	TextureID uint64
	// BufferID identifies a vertex/index buffer pair owned by a GPUContext.
	BufferID uint64
	// ProgramID identifies a compiled shader program owned by a GPUContext.
	ProgramID uint64
	// UniformID identifies a uniform location within a program.
	UniformID uint64
)

// InterpolationMode selects how textures are sampled.
type InterpolationMode uint8

const (
	// InterpNearest samples the nearest texel.
	InterpNearest InterpolationMode = iota
	// InterpLinear samples with bilinear filtering.
	InterpLinear
)

// RepeatStrategy selects texture addressing outside [0, 1].
type RepeatStrategy uint8

const (
	// RepeatClamp clamps coordinates to the edge texel.
	RepeatClamp RepeatStrategy = iota
	// RepeatTile wraps coordinates, tiling the texture.
	RepeatTile
)

// ImageFormat describes pixel data passed to texture writes.
type ImageFormat uint8

const (
	// FormatRGBA8 is 8-bit-per-channel RGBA, premultiplied alpha.
	FormatRGBA8 ImageFormat = iota
	// FormatGray8 is single-channel 8-bit coverage.
	FormatGray8
)

// Bytes returns the byte size of one pixel in the format.
func (f ImageFormat) Bytes() int {
	if f == FormatGray8 {
		return 1
	}
	return 4
}

// Vertex is one tessellated vertex. Solid fills carry the UV sentinel
// (0.5, 0.5) pointing into the 1x1 white texture, so a single shader path
// serves both solid and textured paints.
type Vertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [4]uint8
}

// ShaderModule is one compiled shader permutation. WGSL carries the
// generated source, SPIRV the naga-compiled words; a backend consumes
// whichever form it prefers.
type ShaderModule struct {
	Label string
	WGSL  string
	SPIRV []uint32
}

// UniformKind tags the payload of a Uniform.
type UniformKind uint8

const (
	// UniformFloat is a single float32 in Value[0].
	UniformFloat UniformKind = iota
	// UniformVec2 uses Value[0:2].
	UniformVec2
	// UniformVec4 uses Value[0:4].
	UniformVec4
	// UniformMat3 uses all nine entries, column-major.
	UniformMat3
)

// Uniform is one resolved uniform binding for a draw.
type Uniform struct {
	Location UniformID
	Kind     UniformKind
	Value    [9]float32
}

// DrawOp is a single draw submission. Vertices are in user space;
// Transform maps them to device pixels. GPU backends pass Transform to the
// program's mvp uniform (already present in Uniforms); the software backend
// applies it directly.
type DrawOp struct {
	Buffer  BufferID
	Program ProgramID

	// PaintTexture binds texture unit 0; zero means no texture.
	PaintTexture TextureID
	// MaskTexture binds texture unit 1; zero means no mask.
	MaskTexture TextureID

	Uniforms []Uniform

	// Transform is the user-to-device mat3, column-major.
	Transform [9]float32

	// IndexCount is the number of indices to draw from the buffer.
	IndexCount int

	// Viewport is the render target size in pixels.
	Viewport [2]int
}

// GPUContext is the capability surface a rendering backend provides. All
// methods are called from the single goroutine driving the pipeline.
type GPUContext interface {
	// Clear fills the whole render target with a color.
	Clear(color RGBA)
	// Flush submits all pending work to the device.
	Flush() error

	// CreateTexture allocates an empty texture with the given sampling
	// parameters.
	CreateTexture(interp InterpolationMode, repeat RepeatStrategy) (TextureID, error)
	// DeleteTexture frees a texture.
	DeleteTexture(id TextureID)
	// WriteTexture replaces a texture's full contents, resizing it.
	WriteTexture(id TextureID, width, height int, format ImageFormat, data []byte) error
	// WriteSubtexture writes a rectangular region of a texture.
	WriteSubtexture(id TextureID, x, y, width, height int, format ImageFormat, data []byte) error
	// SetTextureInterpolation changes a texture's sampling mode.
	SetTextureInterpolation(id TextureID, interp InterpolationMode)
	// MaxTextureSize returns the largest supported texture dimensions.
	MaxTextureSize() (width, height int)

	// CreateVertexBuffer allocates an empty vertex/index buffer pair.
	CreateVertexBuffer() (BufferID, error)
	// DeleteVertexBuffer frees a buffer pair.
	DeleteVertexBuffer(id BufferID)
	// WriteVertices replaces the buffer contents. The caller guarantees
	// every index is in range.
	WriteVertices(id BufferID, vertices []Vertex, indices []uint32) error

	// CreateProgram compiles and links a shader module.
	CreateProgram(module ShaderModule) (ProgramID, error)
	// DeleteProgram frees a program.
	DeleteProgram(id ProgramID)
	// UniformLocation resolves a named uniform in a program.
	UniformLocation(id ProgramID, name string) (UniformID, error)

	// Draw executes one draw operation. Fragment output is premultiplied
	// alpha; the backend composites with premultiplied source-over
	// (out = src + dst * (1 - src.a)).
	Draw(op DrawOp) error
}
