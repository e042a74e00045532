package hwdraw

// DrawText draws a pre-shaped glyph run with its origin at a point in user
// space. Glyph bitmaps come from the source's atlas; a glyph that fails to
// rasterize is skipped with a warning and the rest of the run still
// renders. An exhausted atlas records ErrAtlasExhausted.
func (c *Context) DrawText(run *GlyphRun, at Point) {
	if run == nil || len(run.Glyphs) == 0 {
		return
	}

	// The atlas is checked out for the duration of the draw so a
	// re-entrant use of the source cannot observe it mid-update. Every
	// exit path restores it.
	atlas := c.source.checkoutAtlas()
	if atlas == nil {
		c.recordErr(ErrUnsupported)
		return
	}
	defer c.source.restoreAtlas(atlas)

	src := c.source
	runColor := run.Color.Bytes()

	for _, g := range run.Glyphs {
		if g.Font == nil {
			continue
		}
		pen := Pt(at.X+g.Offset.X, at.Y+g.Offset.Y)

		entry, err := atlas.glyph(g.Font, g.ID, run.Size, pen.X)
		if err != nil {
			if err == ErrAtlasExhausted {
				c.recordErr(err)
				continue
			}
			Logger().Warn("glyph rasterization failed",
				"font", g.Font.id, "glyph", g.ID, "err", err)
			continue
		}
		if entry.width == 0 || entry.height == 0 {
			continue
		}

		color := runColor
		if g.Color != nil {
			color = g.Color.Bytes()
		}

		x0 := float32(pen.X + entry.bearingX)
		y0 := float32(pen.Y + entry.bearingY)
		x1 := x0 + float32(entry.width)
		y1 := y0 + float32(entry.height)
		u0, v0 := float32(entry.uv.X0), float32(entry.uv.Y0)
		u1, v1 := float32(entry.uv.X1), float32(entry.uv.Y1)

		base := uint32(len(src.vertices))
		src.vertices = append(src.vertices,
			Vertex{Pos: [2]float32{x0, y0}, UV: [2]float32{u0, v0}, Color: color},
			Vertex{Pos: [2]float32{x1, y0}, UV: [2]float32{u1, v0}, Color: color},
			Vertex{Pos: [2]float32{x1, y1}, UV: [2]float32{u1, v1}, Color: color},
			Vertex{Pos: [2]float32{x0, y1}, UV: [2]float32{u0, v1}, Color: color},
		)
		src.indices = append(src.indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}

	c.recordErr(c.submit(paint{kind: PaintTextured, texture: atlas.tex.id}, TargetColor))
}
