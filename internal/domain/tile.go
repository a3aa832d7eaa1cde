package domain

// BBox is an axis-aligned bounding box in projected metres
// (SIRGAS 2000 / Brazil Albers).
type BBox struct {
	XMin float64 `json:"x_min"`
	YMin float64 `json:"y_min"`
	XMax float64 `json:"x_max"`
	YMax float64 `json:"y_max"`
}

// Contains reports whether the projected point lies inside the box.
// The lower/left edges are inclusive, matching the grid cell convention.
func (b BBox) Contains(x, y float64) bool {
	return x >= b.XMin && x < b.XMax && y >= b.YMin && y < b.YMax
}

// Tile is one cell of the Hilbert grid at a given level. Tiles are pure
// values computed on demand; they are never mutated.
type Tile struct {
	ID              string `json:"id"`
	Level           int    `json:"level"`
	BBox            BBox   `json:"bbox"`
	GridI           int    `json:"grid_i"`
	GridJ           int    `json:"grid_j"`
	NormalizedI     int    `json:"normalized_i"`
	NormalizedJ     int    `json:"normalized_j"`
	HilbertDistance int64  `json:"hilbert_distance"`
}

// Center returns the tile centroid in projected metres.
func (t Tile) Center() (x, y float64) {
	return (t.BBox.XMin + t.BBox.XMax) / 2, (t.BBox.YMin + t.BBox.YMax) / 2
}

// Size returns the tile edge length in metres.
func (t Tile) Size() float64 {
	return t.BBox.XMax - t.BBox.XMin
}

// LevelInfo describes the grid at one resolution level.
type LevelInfo struct {
	Level        int     `json:"level"`
	TileSize     float64 `json:"tile_size"`
	MinI         int     `json:"min_i"`
	MinJ         int     `json:"min_j"`
	MaxI         int     `json:"max_i"`
	MaxJ         int     `json:"max_j"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	HilbertOrder int     `json:"hilbert_order"`
	TileCount    int64   `json:"tile_count"`
	Extent       BBox    `json:"extent"`
}
