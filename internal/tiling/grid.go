package tiling

import "math"

// Grid describes the tile matrix covering the configured extent at one
// resolution level. Indices i/j are absolute grid coordinates relative to
// the marco zero anchor; normalized coordinates are offsets from MinI/MinJ.
type Grid struct {
	Level    int
	TileSize float64
	MinI     int
	MinJ     int
	MaxI     int
	MaxJ     int
}

func (g Grid) Width() int {
	return g.MaxI - g.MinI + 1
}

func (g Grid) Height() int {
	return g.MaxJ - g.MinJ + 1
}

// HilbertOrder is the smallest curve order whose square side covers the
// grid, never below 1.
func (g Grid) HilbertOrder() int {
	side := g.Width()
	if g.Height() > side {
		side = g.Height()
	}
	order := int(math.Ceil(math.Log2(float64(side))))
	if order < 1 {
		order = 1
	}
	return order
}

// Side is the Hilbert curve side length (a power of two).
func (g Grid) Side() int {
	return 1 << g.HilbertOrder()
}

// MaxDistance is the exclusive upper bound of valid Hilbert distances.
func (g Grid) MaxDistance() int64 {
	side := int64(g.Side())
	return side * side
}
