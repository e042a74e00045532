package hwdraw

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
)

// shaderProgram is one compiled permutation with its uniform locations
// resolved at creation time.
type shaderProgram struct {
	key      ShaderKey
	prog     *program
	uniforms map[string]UniformID
	module   ShaderModule
}

func (p *shaderProgram) uniform(name string) (UniformID, bool) {
	id, ok := p.uniforms[name]
	return id, ok
}

// shaderCache builds shader permutations on demand and memoizes both
// successes and failures, so a key that failed to compile never retries.
type shaderCache struct {
	ctx      GPUContext
	programs map[ShaderKey]*shaderProgram
	failures map[ShaderKey]error
}

func newShaderCache(ctx GPUContext) *shaderCache {
	return &shaderCache{
		ctx:      ctx,
		programs: make(map[ShaderKey]*shaderProgram),
		failures: make(map[ShaderKey]error),
	}
}

// programFor returns the compiled program for a permutation, compiling it
// on first use.
func (c *shaderCache) programFor(key ShaderKey) (*shaderProgram, error) {
	if p, ok := c.programs[key]; ok {
		return p, nil
	}
	if err, ok := c.failures[key]; ok {
		return nil, err
	}

	p, err := c.compile(key)
	if err != nil {
		cerr := &ShaderCompileError{Key: key, Err: err}
		c.failures[key] = cerr
		Logger().Warn("shader compile failed", "key", key.String(), "err", err)
		return nil, cerr
	}
	c.programs[key] = p
	Logger().Debug("shader compiled", "key", key.String())
	return p, nil
}

func (c *shaderCache) compile(key ShaderKey) (*shaderProgram, error) {
	src := shaderSource(key)

	spirv, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("naga: %w", err)
	}
	words, err := spirvWords(spirv)
	if err != nil {
		return nil, err
	}

	module := ShaderModule{Label: key.String(), WGSL: src, SPIRV: words}
	id, err := c.ctx.CreateProgram(module)
	if err != nil {
		return nil, err
	}
	p := &shaderProgram{
		key:      key,
		prog:     &program{ctx: c.ctx, id: id},
		uniforms: make(map[string]UniformID),
		module:   module,
	}
	for _, name := range uniformNames(key) {
		loc, err := c.ctx.UniformLocation(id, name)
		if err != nil {
			p.prog.release()
			return nil, fmt.Errorf("uniform %q: %w", name, err)
		}
		p.uniforms[name] = loc
	}
	return p, nil
}

// release frees every compiled program. Cached failures are kept; the
// cache is only released together with its owning Source.
func (c *shaderCache) release() {
	for _, p := range c.programs {
		p.prog.release()
	}
	c.programs = make(map[ShaderKey]*shaderProgram)
}

// spirvWords reinterprets naga's SPIR-V byte output as little-endian
// 32-bit words.
func spirvWords(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("spir-v length %d is not word aligned", len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return words, nil
}
