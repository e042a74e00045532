// Package alloc provides a shelf-packing rectangle allocator for texture
// atlases.
//
// The shelf-packing algorithm divides the atlas into horizontal "shelves".
// Each new rectangle is placed on an existing shelf if it fits, or a new
// shelf is opened below the last one. Freed regions are not reclaimed; the
// allocator is intended for write-once atlases such as glyph caches.
package alloc

import (
	"errors"
	"fmt"
)

// ErrFull is returned when no free region can fit the requested rectangle.
var ErrFull = errors.New("alloc: atlas is full")

// Region is an allocated rectangle inside the atlas.
type Region struct {
	// X is the left edge of the region.
	X int
	// Y is the top edge of the region.
	Y int
	// Width is the region width.
	Width int
	// Height is the region height.
	Height int
}

// String returns a string representation of the region.
func (r Region) String() string {
	return fmt.Sprintf("Region(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// shelf is one horizontal strip of the atlas.
type shelf struct {
	y      int // top Y coordinate
	height int // strip height, fixed by the first allocation
	nextX  int // next available X position
}

// ShelfAllocator allocates rectangular regions within a fixed-size area
// using shelf packing. It is not safe for concurrent use; the rendering
// pipeline that owns it is single-threaded.
type ShelfAllocator struct {
	width   int
	height  int
	padding int

	shelves []shelf
	nextY   int // top of the next new shelf

	allocCount int
	usedArea   int
}

// NewShelfAllocator creates an allocator for a width x height area with the
// given padding between allocations.
func NewShelfAllocator(width, height, padding int) *ShelfAllocator {
	if padding < 0 {
		padding = 0
	}
	return &ShelfAllocator{
		width:   width,
		height:  height,
		padding: padding,
	}
}

// Size returns the dimensions of the managed area.
func (a *ShelfAllocator) Size() (width, height int) {
	return a.width, a.height
}

// maxShelfWaste bounds how much taller than a request a reused shelf may
// be. A 10-high rectangle never lands on a shelf taller than 20; a new
// shelf is opened instead while vertical space remains.
const maxShelfWaste = 2

// Allocate reserves a w x h region. It first tries existing shelves whose
// height can hold the request without excessive waste, then opens a new
// shelf. Returns ErrFull when neither is possible.
func (a *ShelfAllocator) Allocate(w, h int) (Region, error) {
	if w <= 0 || h <= 0 {
		return Region{}, fmt.Errorf("alloc: invalid region size %dx%d", w, h)
	}
	if w > a.width || h > a.height {
		return Region{}, ErrFull
	}

	// Best fit: the shelf with the least wasted height.
	best := -1
	for i := range a.shelves {
		s := &a.shelves[i]
		if h > s.height || s.height > h*maxShelfWaste || s.nextX+w > a.width {
			continue
		}
		if best < 0 || s.height < a.shelves[best].height {
			best = i
		}
	}

	if best < 0 && a.nextY+h <= a.height {
		// Open a new shelf.
		a.shelves = append(a.shelves, shelf{y: a.nextY, height: h})
		a.nextY += h + a.padding
		best = len(a.shelves) - 1
	}
	if best < 0 {
		// No room for a new shelf; the waste bound no longer applies,
		// take any shelf that can hold the request.
		for i := range a.shelves {
			s := &a.shelves[i]
			if h > s.height || s.nextX+w > a.width {
				continue
			}
			if best < 0 || s.height < a.shelves[best].height {
				best = i
			}
		}
		if best < 0 {
			return Region{}, ErrFull
		}
	}

	s := &a.shelves[best]
	r := Region{X: s.nextX, Y: s.y, Width: w, Height: h}
	s.nextX += w + a.padding

	a.allocCount++
	a.usedArea += w * h
	return r, nil
}

// AllocCount returns the number of successful allocations.
func (a *ShelfAllocator) AllocCount() int { return a.allocCount }

// Utilization returns the fraction of the total area that has been
// allocated, in the range [0, 1].
func (a *ShelfAllocator) Utilization() float64 {
	total := a.width * a.height
	if total == 0 {
		return 0
	}
	return float64(a.usedArea) / float64(total)
}
