package hwdraw

import (
	"errors"
	"fmt"
)

// mockGPU records capability calls for assertions. Texture contents are
// tracked by size only.
type mockGPU struct {
	nextID uint64

	textures map[TextureID][2]int // id -> width, height
	buffers  map[BufferID]bool
	programs map[ProgramID]ShaderModule
	uniforms map[string]UniformID

	clears        []RGBA
	flushes       int
	vertexWrites  int
	lastVertices  []Vertex
	lastIndices   []uint32
	draws         []DrawOp
	subWrites     int
	programCount  int
	failProgram   bool
	failedKeys    int
	deletedTex    []TextureID
	deletedBufs   []BufferID
	deletedProgs  []ProgramID
	maxTexSide    int
	interpChanges int
}

func newMockGPU() *mockGPU {
	return &mockGPU{
		textures:   make(map[TextureID][2]int),
		buffers:    make(map[BufferID]bool),
		programs:   make(map[ProgramID]ShaderModule),
		uniforms:   make(map[string]UniformID),
		maxTexSide: 4096,
	}
}

func (m *mockGPU) id() uint64 {
	m.nextID++
	return m.nextID
}

func (m *mockGPU) Clear(color RGBA) {
	m.clears = append(m.clears, color)
}

func (m *mockGPU) Flush() error {
	m.flushes++
	return nil
}

func (m *mockGPU) CreateTexture(interp InterpolationMode, repeat RepeatStrategy) (TextureID, error) {
	id := TextureID(m.id())
	m.textures[id] = [2]int{0, 0}
	return id, nil
}

func (m *mockGPU) DeleteTexture(id TextureID) {
	m.deletedTex = append(m.deletedTex, id)
	delete(m.textures, id)
}

func (m *mockGPU) WriteTexture(id TextureID, w, h int, format ImageFormat, data []byte) error {
	if _, ok := m.textures[id]; !ok {
		return fmt.Errorf("mock: unknown texture %d", id)
	}
	if len(data) < w*h*format.Bytes() {
		return fmt.Errorf("mock: short texture data")
	}
	m.textures[id] = [2]int{w, h}
	return nil
}

func (m *mockGPU) WriteSubtexture(id TextureID, x, y, w, h int, format ImageFormat, data []byte) error {
	if _, ok := m.textures[id]; !ok {
		return fmt.Errorf("mock: unknown texture %d", id)
	}
	m.subWrites++
	return nil
}

func (m *mockGPU) SetTextureInterpolation(id TextureID, interp InterpolationMode) {
	m.interpChanges++
}

func (m *mockGPU) MaxTextureSize() (int, int) {
	return m.maxTexSide, m.maxTexSide
}

func (m *mockGPU) CreateVertexBuffer() (BufferID, error) {
	id := BufferID(m.id())
	m.buffers[id] = true
	return id, nil
}

func (m *mockGPU) DeleteVertexBuffer(id BufferID) {
	m.deletedBufs = append(m.deletedBufs, id)
	delete(m.buffers, id)
}

func (m *mockGPU) WriteVertices(id BufferID, vertices []Vertex, indices []uint32) error {
	if !m.buffers[id] {
		return fmt.Errorf("mock: unknown buffer %d", id)
	}
	m.vertexWrites++
	m.lastVertices = append([]Vertex(nil), vertices...)
	m.lastIndices = append([]uint32(nil), indices...)
	return nil
}

func (m *mockGPU) CreateProgram(module ShaderModule) (ProgramID, error) {
	if m.failProgram {
		m.failedKeys++
		return 0, errors.New("mock: program rejected")
	}
	id := ProgramID(m.id())
	m.programs[id] = module
	m.programCount++
	return id, nil
}

func (m *mockGPU) DeleteProgram(id ProgramID) {
	m.deletedProgs = append(m.deletedProgs, id)
	delete(m.programs, id)
}

func (m *mockGPU) UniformLocation(id ProgramID, name string) (UniformID, error) {
	if _, ok := m.programs[id]; !ok {
		return 0, fmt.Errorf("mock: unknown program %d", id)
	}
	key := fmt.Sprintf("%d/%s", id, name)
	if loc, ok := m.uniforms[key]; ok {
		return loc, nil
	}
	loc := UniformID(m.id())
	m.uniforms[key] = loc
	return loc, nil
}

func (m *mockGPU) Draw(op DrawOp) error {
	m.draws = append(m.draws, op)
	return nil
}

// newTestSource builds a source on a mock with a small atlas.
func newTestSource(t interface{ Fatalf(string, ...any) }) (*Source, *mockGPU) {
	gpu := newMockGPU()
	src, err := NewSource(gpu, SourceOptions{AtlasSize: 128})
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	return src, gpu
}
