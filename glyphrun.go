package hwdraw

// Glyph is one positioned glyph within a run. Offset is the pen position
// relative to the run origin, in user-space units; the glyph bitmap is
// placed at the pen plus its bearings.
type Glyph struct {
	Font *Font
	ID   GlyphID

	Offset Point

	// Color overrides the run color for this glyph when non-nil.
	Color *RGBA
}

// GlyphRun is a pre-shaped sequence of glyphs sharing a size and default
// color. Shaping (cluster mapping, bidi, advances) happens upstream; the
// run carries only resolved glyphs and positions.
type GlyphRun struct {
	Glyphs []Glyph
	Size   float64
	Color  RGBA
}
