package hwdraw

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/hwdraw/internal/alloc"
)

// GlyphID is a glyph index within a font.
type GlyphID uint16

// Font is a parsed font usable for text drawing. Fonts carry an identity
// used in atlas cache keys, so parse each font once and reuse it.
type Font struct {
	id   uint32
	font *sfnt.Font
	buf  sfnt.Buffer
}

var nextFontID uint32

// ParseFont parses TTF or OTF font data.
func ParseFont(data []byte) (*Font, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	nextFontID++
	return &Font{id: nextFontID, font: f}, nil
}

// GlyphIndex looks up the glyph for a rune, or 0 if the font has none.
func (f *Font) GlyphIndex(r rune) GlyphID {
	gi, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return GlyphID(gi)
}

// GlyphAdvance returns the horizontal advance of a glyph at the given
// pixel size.
func (f *Font) GlyphAdvance(g GlyphID, size float64) (float64, error) {
	adv, err := f.font.GlyphAdvance(&f.buf, sfnt.GlyphIndex(g), floatToFixed(size), font.HintingNone)
	if err != nil {
		return 0, err
	}
	return fixedToFloat(adv), nil
}

// ppem sizes are quantized to quarter-pixel buckets for cache keys.
const ppemBucketScale = 4

// subpixelBuckets is the number of horizontal subpixel phases cached per
// glyph.
const subpixelBuckets = 4

// glyphKey identifies one cached glyph bitmap.
type glyphKey struct {
	font     uint32
	glyph    GlyphID
	ppem     uint16 // size in quarter-pixel buckets
	subpixel uint8
}

// glyphEntry is one cached glyph: its atlas placement and metrics.
type glyphEntry struct {
	// uv is the glyph's normalized rectangle in the atlas texture.
	uv Rect
	// width, height are the bitmap dimensions in pixels.
	width, height int
	// bearingX, bearingY offset the bitmap's top-left from the pen
	// position, in pixels. bearingY is negative above the baseline.
	bearingX, bearingY float64
}

// glyphAtlas caches rasterized glyph coverage in a single shelf-packed
// texture. Entries are write-once; there is no eviction, so a long-lived
// atlas can fill up and further distinct glyphs fail with
// ErrAtlasExhausted.
type glyphAtlas struct {
	ctx  GPUContext
	tex  *texture
	size int

	alloc   *alloc.ShelfAllocator
	entries map[glyphKey]*glyphEntry

	// rasterizations counts cache misses, exposed for tests.
	rasterizations int
}

func newGlyphAtlas(ctx GPUContext, size int) (*glyphAtlas, error) {
	tex, err := newTexture(ctx, InterpNearest, RepeatClamp)
	if err != nil {
		return nil, err
	}
	// Size the texture up front so subtexture writes land in place.
	if err := ctx.WriteTexture(tex.id, size, size, FormatRGBA8, make([]byte, size*size*4)); err != nil {
		tex.release()
		return nil, backendErr("initialize glyph atlas", err)
	}
	return &glyphAtlas{
		ctx:     ctx,
		tex:     tex,
		size:    size,
		alloc:   alloc.NewShelfAllocator(size, size, 1),
		entries: make(map[glyphKey]*glyphEntry),
	}, nil
}

func (a *glyphAtlas) release() {
	a.tex.release()
}

// key quantizes a glyph request into a cache key.
func (a *glyphAtlas) key(f *Font, g GlyphID, size float64, subpixelX float64) glyphKey {
	frac := subpixelX - math.Floor(subpixelX)
	return glyphKey{
		font:     f.id,
		glyph:    g,
		ppem:     uint16(math.Round(size * ppemBucketScale)),
		subpixel: uint8(frac*subpixelBuckets) % subpixelBuckets,
	}
}

// glyph returns the cached entry for a glyph, rasterizing and packing it
// on first use. Lookups are O(1); a full atlas returns ErrAtlasExhausted.
func (a *glyphAtlas) glyph(f *Font, g GlyphID, size float64, subpixelX float64) (*glyphEntry, error) {
	k := a.key(f, g, size, subpixelX)
	if e, ok := a.entries[k]; ok {
		return e, nil
	}

	phase := float64(k.subpixel) / subpixelBuckets
	bitmap, w, h, bx, by, err := rasterizeGlyph(f, g, float64(k.ppem)/ppemBucketScale, phase)
	if err != nil {
		return nil, err
	}
	a.rasterizations++

	if w == 0 || h == 0 {
		// Whitespace glyph: cache a zero-size entry, no atlas space.
		e := &glyphEntry{}
		a.entries[k] = e
		return e, nil
	}

	region, err := a.alloc.Allocate(w, h)
	if err != nil {
		if errors.Is(err, alloc.ErrFull) {
			return nil, ErrAtlasExhausted
		}
		return nil, err
	}

	// Coverage expands to premultiplied white RGBA so glyphs tint by
	// vertex color.
	pixels := make([]byte, w*h*4)
	for i, c := range bitmap {
		pixels[i*4+0] = c
		pixels[i*4+1] = c
		pixels[i*4+2] = c
		pixels[i*4+3] = c
	}
	if err := a.ctx.WriteSubtexture(a.tex.id, region.X, region.Y, w, h, FormatRGBA8, pixels); err != nil {
		return nil, backendErr("write glyph", err)
	}

	fs := float64(a.size)
	e := &glyphEntry{
		uv: Rect{
			X0: float64(region.X) / fs,
			Y0: float64(region.Y) / fs,
			X1: float64(region.X+w) / fs,
			Y1: float64(region.Y+h) / fs,
		},
		width:    w,
		height:   h,
		bearingX: bx,
		bearingY: by,
	}
	a.entries[k] = e
	return e, nil
}

// rasterizeGlyph renders a glyph outline into an 8-bit coverage bitmap.
// The returned bearings position the bitmap relative to the pen.
func rasterizeGlyph(f *Font, g GlyphID, ppem float64, phase float64) (bitmap []uint8, w, h int, bearingX, bearingY float64, err error) {
	segs, err := f.font.LoadGlyph(&f.buf, sfnt.GlyphIndex(g), floatToFixed(ppem), nil)
	if err != nil {
		return nil, 0, 0, 0, 0, err
	}
	if len(segs) == 0 {
		return nil, 0, 0, 0, 0, nil
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(p fixed.Point26_6) {
		x, y := fixedToFloat(p.X)+phase, fixedToFloat(p.Y)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	for _, seg := range segs {
		for i := 0; i < segArgs(seg.Op); i++ {
			grow(seg.Args[i])
		}
	}

	x0 := math.Floor(minX)
	y0 := math.Floor(minY)
	w = int(math.Ceil(maxX) - x0)
	h = int(math.Ceil(maxY) - y0)
	if w <= 0 || h <= 0 {
		return nil, 0, 0, 0, 0, nil
	}

	z := vector.NewRasterizer(w, h)
	tx := func(p fixed.Point26_6) (float32, float32) {
		return float32(fixedToFloat(p.X) + phase - x0), float32(fixedToFloat(p.Y) - y0)
	}
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			x, y := tx(seg.Args[0])
			z.MoveTo(x, y)
		case sfnt.SegmentOpLineTo:
			x, y := tx(seg.Args[0])
			z.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := tx(seg.Args[0])
			x, y := tx(seg.Args[1])
			z.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := tx(seg.Args[0])
			c2x, c2y := tx(seg.Args[1])
			x, y := tx(seg.Args[2])
			z.CubeTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	z.ClosePath()

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst.Pix, w, h, x0, y0, nil
}

func segArgs(op sfnt.SegmentOp) int {
	switch op {
	case sfnt.SegmentOpQuadTo:
		return 2
	case sfnt.SegmentOpCubeTo:
		return 3
	}
	return 1
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
