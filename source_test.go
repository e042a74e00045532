package hwdraw

import "testing"

func TestAtlasDefaultsToBackendMax(t *testing.T) {
	gpu := newMockGPU()
	gpu.maxTexSide = 512

	src, err := NewSource(gpu, SourceOptions{})
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	defer src.Release()

	if src.opts.AtlasSize != 512 {
		t.Errorf("atlas size = %d, want backend max 512", src.opts.AtlasSize)
	}
	if got := gpu.textures[src.atlas.tex.id]; got != [2]int{512, 512} {
		t.Errorf("atlas texture sized %v, want [512 512]", got)
	}
}

func TestAtlasSizeClampedToBackendMax(t *testing.T) {
	gpu := newMockGPU()
	gpu.maxTexSide = 256

	src, err := NewSource(gpu, SourceOptions{AtlasSize: 1024})
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	defer src.Release()

	if src.opts.AtlasSize != 256 {
		t.Errorf("atlas size = %d, want clamped 256", src.opts.AtlasSize)
	}
}

func TestAtlasExplicitSizeKept(t *testing.T) {
	gpu := newMockGPU()

	src, err := NewSource(gpu, SourceOptions{AtlasSize: 128})
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	defer src.Release()

	if src.opts.AtlasSize != 128 {
		t.Errorf("atlas size = %d, want requested 128", src.opts.AtlasSize)
	}
}
