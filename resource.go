package hwdraw

// Resource wrappers tie backend handles to their owning context and make
// release idempotent: the backend delete call happens exactly once no
// matter how many times release is invoked.

type texture struct {
	ctx      GPUContext
	id       TextureID
	released bool
}

func newTexture(ctx GPUContext, interp InterpolationMode, repeat RepeatStrategy) (*texture, error) {
	id, err := ctx.CreateTexture(interp, repeat)
	if err != nil {
		return nil, backendErr("create texture", err)
	}
	return &texture{ctx: ctx, id: id}, nil
}

func (t *texture) release() {
	if t == nil || t.released {
		return
	}
	t.released = true
	t.ctx.DeleteTexture(t.id)
}

type vertexBuffer struct {
	ctx      GPUContext
	id       BufferID
	released bool
}

func newVertexBuffer(ctx GPUContext) (*vertexBuffer, error) {
	id, err := ctx.CreateVertexBuffer()
	if err != nil {
		return nil, backendErr("create vertex buffer", err)
	}
	return &vertexBuffer{ctx: ctx, id: id}, nil
}

func (b *vertexBuffer) release() {
	if b == nil || b.released {
		return
	}
	b.released = true
	b.ctx.DeleteVertexBuffer(b.id)
}

type program struct {
	ctx      GPUContext
	id       ProgramID
	released bool
}

func (p *program) release() {
	if p == nil || p.released {
		return
	}
	p.released = true
	p.ctx.DeleteProgram(p.id)
}
