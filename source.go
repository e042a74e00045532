package hwdraw

// SourceOptions configures a Source.
type SourceOptions struct {
	// Tolerance is the curve flattening tolerance in user-space units.
	// If 0, a default of 0.25 is used.
	Tolerance float64

	// AtlasSize is the side length of the glyph atlas texture. If 0, the
	// backend's maximum texture dimension is used; explicit sizes larger
	// than the backend maximum are clamped to it.
	AtlasSize int
}

// DefaultSourceOptions returns the default configuration.
func DefaultSourceOptions() SourceOptions {
	return SourceOptions{
		Tolerance: 0.25,
		AtlasSize: 0,
	}
}

// fallbackAtlasSize is used only when the backend does not report a
// maximum texture size.
const fallbackAtlasSize = 2048

// Source owns the GPU resources shared by every render context drawn from
// it: the 1x1 white texture, the shared vertex/index buffer, the shader
// permutation cache, and the glyph atlas. A Source and the contexts it
// produces must be used from a single goroutine.
type Source struct {
	ctx  GPUContext
	opts SourceOptions

	white   *texture
	buffer  *vertexBuffer
	shaders *shaderCache

	// atlas is nil while checked out by a text draw.
	atlas *glyphAtlas

	// scratch geometry for the draw being assembled
	vertices []Vertex
	indices  []uint32

	released bool
}

// NewSource creates a Source on top of a backend context.
func NewSource(ctx GPUContext, opts SourceOptions) (*Source, error) {
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultSourceOptions().Tolerance
	}
	maxW, maxH := ctx.MaxTextureSize()
	m := min(maxW, maxH)
	if opts.AtlasSize <= 0 {
		if m > 0 {
			opts.AtlasSize = m
		} else {
			opts.AtlasSize = fallbackAtlasSize
		}
	}
	if m > 0 && opts.AtlasSize > m {
		opts.AtlasSize = m
	}

	white, err := newTexture(ctx, InterpNearest, RepeatClamp)
	if err != nil {
		return nil, err
	}
	if err := ctx.WriteTexture(white.id, 1, 1, FormatRGBA8, []byte{255, 255, 255, 255}); err != nil {
		white.release()
		return nil, backendErr("write white texture", err)
	}

	buffer, err := newVertexBuffer(ctx)
	if err != nil {
		white.release()
		return nil, err
	}

	atlas, err := newGlyphAtlas(ctx, opts.AtlasSize)
	if err != nil {
		buffer.release()
		white.release()
		return nil, err
	}

	return &Source{
		ctx:     ctx,
		opts:    opts,
		white:   white,
		buffer:  buffer,
		shaders: newShaderCache(ctx),
		atlas:   atlas,
	}, nil
}

// Release frees every GPU resource the source owns. Contexts created from
// the source must be finished first. Release is idempotent.
func (s *Source) Release() {
	if s.released {
		return
	}
	s.released = true
	s.shaders.release()
	if s.atlas != nil {
		s.atlas.release()
		s.atlas = nil
	}
	s.buffer.release()
	s.white.release()
}

// RenderContext starts drawing a frame of the given size in device pixels.
func (s *Source) RenderContext(width, height int) *Context {
	return newContext(s, width, height)
}

// checkoutAtlas detaches the glyph atlas so a text draw can use it without
// the source being re-entered. restoreAtlas puts it back; callers pair the
// two with defer so every exit path restores the atlas.
func (s *Source) checkoutAtlas() *glyphAtlas {
	a := s.atlas
	s.atlas = nil
	return a
}

func (s *Source) restoreAtlas(a *glyphAtlas) {
	s.atlas = a
}

// resetGeometry clears the scratch vertex data, retaining capacity.
func (s *Source) resetGeometry() {
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
}
