package text

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/hwdraw"
)

// Shaper converts strings into positioned glyph runs. It carries HarfBuzz
// buffer state and is not safe for concurrent use; the drawing pipeline it
// feeds is single-goroutine anyway.
type Shaper struct {
	hb shaping.HarfbuzzShaper
}

// NewShaper creates a shaper.
func NewShaper() *Shaper {
	return &Shaper{}
}

// Shape shapes a string at the given pixel size. The returned run's glyph
// offsets start at the pen origin and advance left to right in visual
// order; advance is the total width of the shaped text.
func (s *Shaper) Shape(face *Face, str string, size float64, color hwdraw.RGBA) (*hwdraw.GlyphRun, float64) {
	run := &hwdraw.GlyphRun{Size: size, Color: color}
	if face == nil || str == "" {
		return run, 0
	}

	runes := []rune(str)
	gface := font.NewFace(face.shape)

	var penX float64
	for _, seg := range visualRuns(str, len(runes)) {
		input := shaping.Input{
			Text:      runes,
			RunStart:  seg.start,
			RunEnd:    seg.end,
			Direction: seg.dir,
			Face:      gface,
			Size:      fixed.Int26_6(size * 64),
			Script:    runScript(runes[seg.start:seg.end]),
			Language:  language.NewLanguage("en"),
		}
		out := s.hb.Shape(input)
		for _, g := range out.Glyphs {
			xOff := fixedToFloat(g.XOffset)
			yOff := fixedToFloat(g.YOffset)
			run.Glyphs = append(run.Glyphs, hwdraw.Glyph{
				Font: face.draw,
				ID:   hwdraw.GlyphID(uint16(g.GlyphID)),
				// HarfBuzz offsets are y-up; drawing space is y-down.
				Offset: hwdraw.Pt(penX+xOff, -yOff),
			})
			penX += fixedToFloat(g.XAdvance)
		}
	}
	return run, penX
}

// visualRun is one directional run in visual order, as rune indices into
// the original text.
type visualRun struct {
	start int
	end   int // exclusive
	dir   di.Direction
}

// visualRuns applies the Unicode bidi algorithm and returns the text's
// directional runs in visual order. On bidi failure the whole text is
// treated as one left-to-right run.
func visualRuns(str string, runeCount int) []visualRun {
	p := bidi.Paragraph{}
	if _, err := p.SetString(str); err != nil {
		return []visualRun{{start: 0, end: runeCount, dir: di.DirectionLTR}}
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return []visualRun{{start: 0, end: runeCount, dir: di.DirectionLTR}}
	}

	runs := make([]visualRun, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		r := ordering.Run(i)
		start, end := r.Pos() // rune indices, end inclusive
		dir := di.DirectionLTR
		if r.Direction() == bidi.RightToLeft {
			dir = di.DirectionRTL
		}
		runs = append(runs, visualRun{start: start, end: end + 1, dir: dir})
	}
	return runs
}

// runScript returns the script of the first non-space rune in a run.
func runScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
