package hwdraw

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func testFont(t *testing.T) *Font {
	t.Helper()
	f, err := ParseFont(goregular.TTF)
	if err != nil {
		t.Fatalf("ParseFont: %v", err)
	}
	return f
}

func testAtlas(t *testing.T, size int) (*glyphAtlas, *mockGPU) {
	t.Helper()
	gpu := newMockGPU()
	a, err := newGlyphAtlas(gpu, size)
	if err != nil {
		t.Fatalf("newGlyphAtlas: %v", err)
	}
	return a, gpu
}

func TestAtlasSameGlyphRasterizedOnce(t *testing.T) {
	a, gpu := testAtlas(t, 256)
	defer a.release()
	f := testFont(t)
	g := f.GlyphIndex('A')
	if g == 0 {
		t.Fatal("no glyph for 'A'")
	}

	e1, err := a.glyph(f, g, 16, 0)
	if err != nil {
		t.Fatalf("glyph: %v", err)
	}
	e2, err := a.glyph(f, g, 16, 0)
	if err != nil {
		t.Fatalf("glyph: %v", err)
	}
	if e1 != e2 {
		t.Error("cache miss for identical glyph request")
	}
	if e1.uv != e2.uv {
		t.Errorf("uv differs: %v vs %v", e1.uv, e2.uv)
	}
	if a.rasterizations != 1 {
		t.Errorf("rasterizations = %d, want 1", a.rasterizations)
	}
	if gpu.subWrites != 1 {
		t.Errorf("subtexture writes = %d, want 1", gpu.subWrites)
	}
}

func TestAtlasDistinctGlyphsDisjoint(t *testing.T) {
	a, _ := testAtlas(t, 256)
	defer a.release()
	f := testFont(t)

	e1, err := a.glyph(f, f.GlyphIndex('A'), 16, 0)
	if err != nil {
		t.Fatalf("glyph A: %v", err)
	}
	e2, err := a.glyph(f, f.GlyphIndex('B'), 16, 0)
	if err != nil {
		t.Fatalf("glyph B: %v", err)
	}
	if e1 == e2 {
		t.Fatal("distinct glyphs share an entry")
	}
	r1 := NewRect(e1.uv.X0, e1.uv.Y0, e1.uv.X1, e1.uv.Y1)
	r2 := NewRect(e2.uv.X0, e2.uv.Y0, e2.uv.X1, e2.uv.Y1)
	if r1.Overlaps(r2) {
		t.Errorf("atlas regions overlap: %v and %v", e1.uv, e2.uv)
	}
}

func TestAtlasSizeAndSubpixelChangeKey(t *testing.T) {
	a, _ := testAtlas(t, 256)
	defer a.release()
	f := testFont(t)
	g := f.GlyphIndex('A')

	if _, err := a.glyph(f, g, 16, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := a.glyph(f, g, 24, 0); err != nil {
		t.Fatal(err)
	}
	if a.rasterizations != 2 {
		t.Errorf("rasterizations after size change = %d, want 2", a.rasterizations)
	}
	if _, err := a.glyph(f, g, 16, 0.5); err != nil {
		t.Fatal(err)
	}
	if a.rasterizations != 3 {
		t.Errorf("rasterizations after subpixel change = %d, want 3", a.rasterizations)
	}
}

func TestAtlasQuantizesNearbySizes(t *testing.T) {
	a, _ := testAtlas(t, 256)
	defer a.release()
	f := testFont(t)
	g := f.GlyphIndex('A')

	// Sizes within a quarter-pixel bucket share an entry.
	if _, err := a.glyph(f, g, 16.0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := a.glyph(f, g, 16.05, 0); err != nil {
		t.Fatal(err)
	}
	if a.rasterizations != 1 {
		t.Errorf("rasterizations = %d, want 1", a.rasterizations)
	}
}

func TestAtlasExhaustion(t *testing.T) {
	a, _ := testAtlas(t, 16)
	defer a.release()
	f := testFont(t)

	var sawExhausted bool
	for r := 'A'; r <= 'Z'; r++ {
		g := f.GlyphIndex(r)
		if g == 0 {
			continue
		}
		if _, err := a.glyph(f, g, 14, 0); err != nil {
			if !errors.Is(err, ErrAtlasExhausted) {
				t.Fatalf("glyph %c: %v", r, err)
			}
			sawExhausted = true
			break
		}
	}
	if !sawExhausted {
		t.Error("16px atlas never reported exhaustion for 26 glyphs")
	}
}

func TestWhitespaceGlyphHasNoAtlasRegion(t *testing.T) {
	a, gpu := testAtlas(t, 256)
	defer a.release()
	f := testFont(t)
	g := f.GlyphIndex(' ')
	if g == 0 {
		t.Skip("font has no space glyph")
	}

	e, err := a.glyph(f, g, 16, 0)
	if err != nil {
		t.Fatalf("glyph: %v", err)
	}
	if e.width != 0 || e.height != 0 {
		t.Errorf("space glyph bitmap %dx%d, want empty", e.width, e.height)
	}
	if gpu.subWrites != 0 {
		t.Errorf("subtexture writes = %d, want 0", gpu.subWrites)
	}
}

func TestGlyphAdvancePositive(t *testing.T) {
	f := testFont(t)
	adv, err := f.GlyphAdvance(f.GlyphIndex('M'), 16)
	if err != nil {
		t.Fatalf("GlyphAdvance: %v", err)
	}
	if adv <= 0 || adv > 32 {
		t.Errorf("advance = %v, want a plausible positive width", adv)
	}
}
