// Package raster provides scanline coverage rasterization for clip masks.
//
// The rasterizer converts closed polygons into an 8-bit coverage buffer.
// Antialiasing uses exact horizontal span coverage combined with vertical
// supersampling. Both nonzero and even-odd fill rules are supported.
package raster

import (
	"math"
	"sort"
)

// FillRule selects how overlapping regions combine.
type FillRule int

const (
	// NonZero fills where the winding number is nonzero.
	NonZero FillRule = iota
	// EvenOdd fills where the crossing count is odd.
	EvenOdd
)

// subsamples is the number of vertical sample rows per pixel.
const subsamples = 4

type edge struct {
	// Endpoints are ordered so y0 < y1; wind records the original
	// direction (+1 downward, -1 upward).
	x0, y0, x1, y1 float32
	wind           int
}

// Rasterizer accumulates polygon edges and produces a coverage buffer.
// It is not safe for concurrent use.
type Rasterizer struct {
	width  int
	height int
	edges  []edge
	minY   float32
	maxY   float32
}

// NewRasterizer creates a rasterizer for a width x height coverage buffer.
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{
		width:  width,
		height: height,
		minY:   float32(height),
		maxY:   0,
	}
}

// Size returns the buffer dimensions.
func (r *Rasterizer) Size() (width, height int) {
	return r.width, r.height
}

// Reset clears all accumulated edges so the rasterizer can be reused.
func (r *Rasterizer) Reset() {
	r.edges = r.edges[:0]
	r.minY = float32(r.height)
	r.maxY = 0
}

// AddEdge adds one polygon edge. Horizontal edges contribute nothing and
// are dropped.
func (r *Rasterizer) AddEdge(x0, y0, x1, y1 float32) {
	if y0 == y1 {
		return
	}
	wind := 1
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
		wind = -1
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, wind: wind})
	if y0 < r.minY {
		r.minY = y0
	}
	if y1 > r.maxY {
		r.maxY = y1
	}
}

// AddPolygon adds a closed polygon. The final point is connected back to
// the first.
func (r *Rasterizer) AddPolygon(pts [][2]float32) {
	if len(pts) < 3 {
		return
	}
	for i := 0; i < len(pts); i++ {
		j := (i + 1) % len(pts)
		r.AddEdge(pts[i][0], pts[i][1], pts[j][0], pts[j][1])
	}
}

type crossing struct {
	x    float32
	wind int
}

// Rasterize computes the coverage buffer for the accumulated edges. The
// returned slice has width*height entries in row-major order, each in
// [0, 255].
func (r *Rasterizer) Rasterize(rule FillRule) []uint8 {
	out := make([]uint8, r.width*r.height)
	if len(r.edges) == 0 || r.width <= 0 || r.height <= 0 {
		return out
	}

	y0 := int(math.Floor(float64(r.minY)))
	y1 := int(math.Ceil(float64(r.maxY)))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > r.height {
		y1 = r.height
	}

	acc := make([]float32, r.width)
	var xs []crossing

	for y := y0; y < y1; y++ {
		for i := range acc {
			acc[i] = 0
		}
		for s := 0; s < subsamples; s++ {
			sy := float32(y) + (float32(s)+0.5)/subsamples
			xs = xs[:0]
			for _, e := range r.edges {
				if sy < e.y0 || sy >= e.y1 {
					continue
				}
				t := (sy - e.y0) / (e.y1 - e.y0)
				xs = append(xs, crossing{x: e.x0 + t*(e.x1-e.x0), wind: e.wind})
			}
			if len(xs) == 0 {
				continue
			}
			sort.Slice(xs, func(a, b int) bool { return xs[a].x < xs[b].x })

			wind := 0
			for i := 0; i < len(xs)-1; i++ {
				wind += xs[i].wind
				inside := false
				switch rule {
				case NonZero:
					inside = wind != 0
				case EvenOdd:
					inside = wind%2 != 0
				}
				if inside {
					accumulateSpan(acc, xs[i].x, xs[i+1].x)
				}
			}
		}
		row := out[y*r.width : (y+1)*r.width]
		for x := range row {
			c := acc[x] * (255.0 / subsamples)
			if c > 255 {
				c = 255
			}
			row[x] = uint8(c + 0.5)
		}
	}
	return out
}

// accumulateSpan adds the horizontal coverage of [xs, xe) to acc, with
// exact fractional coverage at the span edges.
func accumulateSpan(acc []float32, xs, xe float32) {
	if xe <= xs {
		return
	}
	w := float32(len(acc))
	if xs < 0 {
		xs = 0
	}
	if xe > w {
		xe = w
	}
	if xe <= xs {
		return
	}

	ix0 := int(xs)
	ix1 := int(xe)
	if ix0 == ix1 {
		acc[ix0] += xe - xs
		return
	}
	acc[ix0] += float32(ix0+1) - xs
	for x := ix0 + 1; x < ix1; x++ {
		acc[x] += 1
	}
	if ix1 < len(acc) {
		acc[ix1] += xe - float32(ix1)
	}
}

// Intersect multiplies dst coverage by src coverage in place. Both slices
// must have the same length.
func Intersect(dst, src []uint8) {
	for i := range dst {
		dst[i] = uint8((uint16(dst[i])*uint16(src[i]) + 127) / 255)
	}
}
