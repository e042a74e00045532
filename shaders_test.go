package hwdraw

import (
	"errors"
	"strings"
	"testing"
)

func TestShaderSourceIsPureFunctionOfKey(t *testing.T) {
	key := ShaderKey{Paint: PaintLinearGradient, Mask: MaskTextured, Target: TargetColor}
	if shaderSource(key) != shaderSource(key) {
		t.Error("same key produced different sources")
	}
}

func TestShaderSourcePermutations(t *testing.T) {
	tests := []struct {
		name     string
		key      ShaderKey
		contains []string
		excludes []string
	}{
		{
			name:     "solid unmasked",
			key:      ShaderKey{Paint: PaintSolid},
			contains: []string{"textureSample(paint_tex", "return 1.0;"},
			excludes: []string{"mask_mvp", "mask_tex", "grad_"},
		},
		{
			name:     "solid masked",
			key:      ShaderKey{Paint: PaintSolid, Mask: MaskTextured},
			contains: []string{"mask_mvp", "mask_tex", ".g;"},
		},
		{
			name:     "linear gradient",
			key:      ShaderKey{Paint: PaintLinearGradient},
			contains: []string{"grad_start", "grad_end", "mix(globals.grad_color0"},
			excludes: []string{"grad_center", "grad_radius"},
		},
		{
			name:     "radial gradient",
			key:      ShaderKey{Paint: PaintRadialGradient},
			contains: []string{"grad_center", "grad_radius", "distance("},
			excludes: []string{"grad_start"},
		},
		{
			name:     "mask layer target",
			key:      ShaderKey{Paint: PaintSolid, Target: TargetMaskLayer},
			contains: []string{"vec4<f32>(color.a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := shaderSource(tt.key)
			for _, want := range tt.contains {
				if !strings.Contains(src, want) {
					t.Errorf("source missing %q", want)
				}
			}
			for _, not := range tt.excludes {
				if strings.Contains(src, not) {
					t.Errorf("source unexpectedly contains %q", not)
				}
			}
		})
	}
}

// Every permutation must emit premultiplied alpha: the vertex color is
// premultiplied before it tints the paint, matching the source-over blend
// state Draw documents.
func TestShaderSourcePremultipliesVertexColor(t *testing.T) {
	keys := []ShaderKey{
		{Paint: PaintSolid},
		{Paint: PaintTextured},
		{Paint: PaintLinearGradient},
		{Paint: PaintRadialGradient},
	}
	for _, key := range keys {
		src := shaderSource(key)
		if !strings.Contains(src, "in.color.rgb * in.color.a") {
			t.Errorf("key %v: fragment does not premultiply the vertex color", key)
		}
		if strings.Contains(src, "* in.color;") {
			t.Errorf("key %v: fragment tints with the straight-alpha vertex color", key)
		}
	}
}

func TestUniformNamesMatchSource(t *testing.T) {
	keys := []ShaderKey{
		{Paint: PaintSolid},
		{Paint: PaintSolid, Mask: MaskTextured},
		{Paint: PaintLinearGradient},
		{Paint: PaintRadialGradient, Mask: MaskTextured},
		{Paint: PaintTextured, Target: TargetMaskLayer},
	}
	for _, key := range keys {
		src := shaderSource(key)
		for _, name := range uniformNames(key) {
			if !strings.Contains(src, name) {
				t.Errorf("key %v: uniform %q not in source", key, name)
			}
		}
	}
}

func TestShaderCacheReusesPrograms(t *testing.T) {
	gpu := newMockGPU()
	cache := newShaderCache(gpu)
	key := ShaderKey{Paint: PaintSolid}

	p1, err := cache.programFor(key)
	if err != nil {
		t.Fatalf("programFor: %v", err)
	}
	p2, err := cache.programFor(key)
	if err != nil {
		t.Fatalf("programFor: %v", err)
	}
	if p1 != p2 {
		t.Error("same key compiled twice")
	}
	if gpu.programCount != 1 {
		t.Errorf("programs created = %d, want 1", gpu.programCount)
	}

	// A different mask kind is a new permutation.
	if _, err := cache.programFor(ShaderKey{Paint: PaintSolid, Mask: MaskTextured}); err != nil {
		t.Fatalf("programFor masked: %v", err)
	}
	if gpu.programCount != 2 {
		t.Errorf("programs created = %d, want 2", gpu.programCount)
	}
}

func TestShaderCacheCachesFailures(t *testing.T) {
	gpu := newMockGPU()
	gpu.failProgram = true
	cache := newShaderCache(gpu)
	key := ShaderKey{Paint: PaintSolid}

	_, err1 := cache.programFor(key)
	if err1 == nil {
		t.Fatal("expected compile failure")
	}
	var sce *ShaderCompileError
	if !errors.As(err1, &sce) || sce.Key != key {
		t.Fatalf("err = %v, want ShaderCompileError for %v", err1, key)
	}

	_, err2 := cache.programFor(key)
	if err2 != err1 {
		t.Error("failure not returned from cache")
	}
	if gpu.failedKeys != 1 {
		t.Errorf("backend compile attempts = %d, want 1", gpu.failedKeys)
	}
}

func TestShaderCacheResolvesUniformsOnce(t *testing.T) {
	gpu := newMockGPU()
	cache := newShaderCache(gpu)
	key := ShaderKey{Paint: PaintRadialGradient, Mask: MaskTextured}

	p, err := cache.programFor(key)
	if err != nil {
		t.Fatalf("programFor: %v", err)
	}
	for _, name := range uniformNames(key) {
		if _, ok := p.uniform(name); !ok {
			t.Errorf("uniform %q not resolved", name)
		}
	}
}
