// Package text turns strings into pre-shaped glyph runs for drawing.
//
// Shaping uses go-text/typesetting's HarfBuzz implementation, so kerning,
// ligatures, and complex scripts come out correctly. Bidirectional text is
// segmented with the Unicode bidi algorithm and shaped run by run in
// visual order.
//
// The package produces hwdraw.GlyphRun values; rasterization and caching
// happen in the drawing pipeline's glyph atlas.
package text

import (
	"bytes"

	"github.com/go-text/typesetting/font"

	"github.com/gogpu/hwdraw"
)

// Face is a font prepared for both shaping and rasterization. The same
// font data backs a typesetting font for HarfBuzz and an hwdraw font for
// the glyph atlas, so glyph indices agree between the two.
type Face struct {
	shape *font.Font
	draw  *hwdraw.Font
}

// NewFace parses TTF or OTF font data.
func NewFace(data []byte) (*Face, error) {
	tf, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	df, err := hwdraw.ParseFont(data)
	if err != nil {
		return nil, err
	}
	return &Face{shape: tf.Font, draw: df}, nil
}

// DrawFont returns the rasterization-side font, usable directly in
// hwdraw.Glyph values.
func (f *Face) DrawFont() *hwdraw.Font {
	return f.draw
}
